package ups

import (
	"context"
	"strconv"
	"strings"

	"github.com/Jatin123lodhi/shipping-carrier-integration-service/pkg/carrier"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// APIClient defines the transport-level interface to the UPS API. The two
// implementations are the HTTP client for production and a mock for tests;
// both classify their failures into normalized carrier errors at the edge,
// where the raw signals (status codes, bodies, socket errors) still exist.
type APIClient interface {
	// ExchangeToken performs one client-credentials exchange against the
	// OAuth token endpoint.
	ExchangeToken(ctx context.Context) (*TokenResponse, *carrier.Error)

	// GetRates posts a rating request. authorization is the full header
	// value, e.g. "Bearer <token>".
	GetRates(ctx context.Context, authorization string, req *RateRequestWire) (*RateResponseWire, *carrier.Error)
}

// ============================================================================
// OAuth token endpoint types
// ============================================================================

// TokenSeconds is the token lifetime in seconds. UPS serves the field as a
// JSON string while sandbox fixtures serve a bare number; both decode.
type TokenSeconds int64

// UnmarshalJSON accepts either a JSON number or a quoted numeric string.
func (s *TokenSeconds) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)
	if raw == "" || raw == "null" {
		*s = 0
		return nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return err
	}
	*s = TokenSeconds(v)
	return nil
}

// TokenResponse is the body returned by POST /security/v1/oauth/token.
type TokenResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresIn   TokenSeconds `json:"expires_in"`
	IssuedAt    string       `json:"issued_at,omitempty"`
}

// Validate checks the structural contract of the token response. A missing
// or zero expires_in is not a violation; the store assumes a default
// lifetime instead.
func (t *TokenResponse) Validate() error {
	return validation.ValidateStruct(t,
		validation.Field(&t.AccessToken, validation.Required),
		validation.Field(&t.TokenType, validation.Required),
	)
}

// ============================================================================
// Rating endpoint types (match the UPS Rating API v1 JSON structure)
// ============================================================================

// RateRequestWire is the envelope for POST /api/rating/v1/Rate.
type RateRequestWire struct {
	RateRequest RateRequestBody `json:"RateRequest"`
}

// RateRequestBody is the rating request payload.
type RateRequestBody struct {
	Request  RequestInfo `json:"Request"`
	Shipment Shipment    `json:"Shipment"`
}

// RequestInfo controls rating behavior. RequestOption "Shop" returns rates
// for all available services.
type RequestInfo struct {
	RequestOption        string               `json:"RequestOption"`
	TransactionReference TransactionReference `json:"TransactionReference,omitempty"`
}

// TransactionReference echoes a caller-supplied correlation value.
type TransactionReference struct {
	CustomerContext string `json:"CustomerContext,omitempty"`
}

// Shipment describes the shipment being rated.
type Shipment struct {
	Shipper  ShipParty     `json:"Shipper"`
	ShipTo   ShipParty     `json:"ShipTo"`
	ShipFrom ShipParty     `json:"ShipFrom"`
	Package  []PackageWire `json:"Package"`
}

// ShipParty is a shipper, ship-to, or ship-from party.
type ShipParty struct {
	Name    string      `json:"Name,omitempty"`
	Address AddressWire `json:"Address"`
}

// AddressWire is a UPS-format address.
type AddressWire struct {
	AddressLine       []string `json:"AddressLine,omitempty"`
	City              string   `json:"City,omitempty"`
	StateProvinceCode string   `json:"StateProvinceCode,omitempty"`
	PostalCode        string   `json:"PostalCode"`
	CountryCode       string   `json:"CountryCode"`
}

// CodeDescription is the ubiquitous UPS code/description pair.
type CodeDescription struct {
	Code        string `json:"Code"`
	Description string `json:"Description,omitempty"`
}

// PackageWire is a single package in UPS wire format. Numeric values are
// strings on the wire.
type PackageWire struct {
	PackagingType CodeDescription `json:"PackagingType"`
	Dimensions    *DimensionsWire `json:"Dimensions,omitempty"`
	PackageWeight WeightWire      `json:"PackageWeight"`
}

// DimensionsWire carries package dimensions.
type DimensionsWire struct {
	UnitOfMeasurement CodeDescription `json:"UnitOfMeasurement"`
	Length            string          `json:"Length"`
	Width             string          `json:"Width"`
	Height            string          `json:"Height"`
}

// WeightWire carries package weight.
type WeightWire struct {
	UnitOfMeasurement CodeDescription `json:"UnitOfMeasurement"`
	Weight            string          `json:"Weight"`
}

// RateResponseWire is the envelope returned by the rating endpoint.
type RateResponseWire struct {
	RateResponse RateResponseBody `json:"RateResponse"`
}

// RateResponseBody is the rating response payload.
type RateResponseBody struct {
	Response      ResponseStatus  `json:"Response"`
	RatedShipment []RatedShipment `json:"RatedShipment"`
}

// ResponseStatus carries the response status and transaction echo.
type ResponseStatus struct {
	ResponseStatus       CodeDescription      `json:"ResponseStatus"`
	TransactionReference TransactionReference `json:"TransactionReference,omitempty"`
}

// RatedShipment is one rated service option.
type RatedShipment struct {
	Service            CodeDescription     `json:"Service"`
	TotalCharges       ChargeWire          `json:"TotalCharges"`
	GuaranteedDelivery *GuaranteedDelivery `json:"GuaranteedDelivery,omitempty"`
	RatedShipmentAlert []CodeDescription   `json:"RatedShipmentAlert,omitempty"`
}

// ChargeWire is a monetary amount in UPS wire format.
type ChargeWire struct {
	CurrencyCode  string `json:"CurrencyCode"`
	MonetaryValue string `json:"MonetaryValue"`
}

// GuaranteedDelivery carries transit-time commitments.
type GuaranteedDelivery struct {
	BusinessDaysInTransit string `json:"BusinessDaysInTransit,omitempty"`
	DeliveryByTime        string `json:"DeliveryByTime,omitempty"`
}

// Validate checks the structural contract of the rating response. A 2xx
// transport status does not guarantee a structurally valid payload, so this
// runs on every response before mapping.
func (r *RateResponseWire) Validate() error {
	return validation.ValidateStruct(&r.RateResponse,
		validation.Field(&r.RateResponse.RatedShipment, validation.Required),
	)
}

// Validate checks one rated shipment.
func (s RatedShipment) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Service, validation.Required),
		validation.Field(&s.TotalCharges, validation.Required),
	)
}

// Validate checks a service code/description pair.
func (c CodeDescription) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Code, validation.Required),
	)
}

// Validate checks a monetary amount.
func (c ChargeWire) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.CurrencyCode, validation.Required, validation.Length(3, 3)),
		validation.Field(&c.MonetaryValue, validation.Required),
	)
}
