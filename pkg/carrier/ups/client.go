// Package ups provides integration with the UPS Rating API, including the
// OAuth client-credentials token lifecycle.
package ups

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/Jatin123lodhi/shipping-carrier-integration-service/pkg/carrier"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"
)

const carrierName = "ups"

// rateContext prefixes messages of defects that escape the rate-quote flow.
const rateContext = "ups rate quote"

// Config holds UPS gateway configuration.
type Config struct {
	ClientID     string
	ClientSecret string
	BaseURL      string
	TokenURL     string        // optional token endpoint override
	Timeout      time.Duration // per-call transport timeout
	UseMock      bool          // when true, uses a mock API client

	// Extra carries forward-compatible carrier-specific settings. It is an
	// explicit mapping; nothing reads it via dynamic lookup.
	Extra map[string]string
}

// Client is the UPS carrier gateway. It implements the carrier.Carrier
// interface, executing the rate-quote operation end to end: validate,
// authenticate, transform, call, validate response, map. Only rate quoting
// is supported; the remaining operations report themselves unsupported.
type Client struct {
	config    Config
	apiClient APIClient
	tokens    *TokenStore
	logger    *otelzap.Logger
	tracer    trace.Tracer
}

// New creates a new UPS gateway. If cfg.UseMock is true, it uses a mock API
// client; otherwise it talks to the real UPS endpoints.
func New(cfg Config, logger *otelzap.Logger, tracer trace.Tracer) *Client {
	var apiClient APIClient

	if cfg.UseMock {
		apiClient = NewMockAPIClient()
	} else {
		apiClient = NewHTTPAPIClient(HTTPAPIClientConfig{
			BaseURL:      cfg.BaseURL,
			TokenURL:     cfg.TokenURL,
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Timeout:      cfg.Timeout,
		})
	}

	return NewWithAPIClient(cfg, apiClient, logger, tracer)
}

// NewWithAPIClient creates a new UPS gateway with a custom API client.
// This is useful for injecting mock clients in tests.
func NewWithAPIClient(cfg Config, apiClient APIClient, logger *otelzap.Logger, tracer trace.Tracer) *Client {
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("")
	}
	return &Client{
		config:    cfg,
		apiClient: apiClient,
		tokens:    NewTokenStore(apiClient, logger),
		logger:    logger,
		tracer:    tracer,
	}
}

// Name returns the carrier name.
func (c *Client) Name() string {
	return carrierName
}

// SupportsOperation reports whether the gateway implements the operation.
func (c *Client) SupportsOperation(op carrier.Operation) bool {
	return op == carrier.OpRateQuote
}

// Tokens returns the gateway's token store, exposed for forced-refresh
// scenarios.
func (c *Client) Tokens() *TokenStore {
	return c.tokens
}

// GetRates returns normalized rate quotes from UPS.
//
// Invalid requests are rejected before any network activity. Every error
// leaving this method is stamped with this gateway's carrier identifier,
// and any defect escaping the flow is caught here and converted, so no raw
// panic crosses the component boundary.
func (c *Client) GetRates(ctx context.Context, req *carrier.RateRequest) (res carrier.Result[carrier.RateResponse]) {
	defer func() {
		if r := recover(); r != nil {
			err, ok := r.(error)
			if !ok {
				err = fmt.Errorf("%v", r)
			}
			c.logger.Error("UPS rate quote panicked", zap.Error(err))
			res = carrier.Fail[carrier.RateResponse](
				carrier.FromUnexpected(err, carrierName, rateContext))
		}
	}()

	ctx, span := c.tracer.Start(ctx, "ups.GetRates")
	defer span.End()

	c.logger.Info("Getting UPS rates",
		zap.String("origin_postal", req.Origin.PostalCode),
		zap.String("destination_postal", req.Destination.PostalCode),
		zap.Int("package_count", len(req.Packages)),
	)

	if err := req.Validate(); err != nil {
		return carrier.Fail[carrier.RateResponse](
			carrier.FromValidationError(err).WithCarrier(carrierName))
	}

	tokenRes := c.tokens.GetValidToken(ctx)
	if !tokenRes.OK {
		return carrier.Fail[carrier.RateResponse](tokenRes.Err.WithCarrier(carrierName))
	}
	cred := tokenRes.Value

	wireReq := rateRequestToWire(req)

	wireResp, cerr := c.apiClient.GetRates(ctx, cred.TokenType+" "+cred.AccessToken, wireReq)
	if cerr != nil {
		c.logger.Error("UPS API error", zap.Error(cerr))
		return carrier.Fail[carrier.RateResponse](cerr.WithCarrier(carrierName))
	}

	if err := wireResp.Validate(); err != nil {
		return carrier.Fail[carrier.RateResponse](
			carrier.FromValidationError(err).WithCarrier(carrierName))
	}

	resp, cerr := rateResponseFromWire(wireResp)
	if cerr != nil {
		return carrier.Fail[carrier.RateResponse](cerr.WithCarrier(carrierName))
	}
	return carrier.Ok(*resp)
}

// CreateShipment is not supported by this gateway.
func (c *Client) CreateShipment(ctx context.Context, req *carrier.ShipmentRequest) carrier.Result[carrier.ShipmentResponse] {
	return carrier.Fail[carrier.ShipmentResponse](carrier.Unsupported(carrierName, carrier.OpCreateShipment))
}

// GetTracking is not supported by this gateway.
func (c *Client) GetTracking(ctx context.Context, trackingNumber string) carrier.Result[carrier.TrackingInfo] {
	return carrier.Fail[carrier.TrackingInfo](carrier.Unsupported(carrierName, carrier.OpTracking))
}

// ValidateAddress is not supported by this gateway.
func (c *Client) ValidateAddress(ctx context.Context, addr *carrier.Address) carrier.Result[carrier.Address] {
	return carrier.Fail[carrier.Address](carrier.Unsupported(carrierName, carrier.OpAddressValidation))
}

// ============================================================================
// Conversion helpers: carrier models -> wire models
// ============================================================================

func rateRequestToWire(req *carrier.RateRequest) *RateRequestWire {
	return &RateRequestWire{
		RateRequest: RateRequestBody{
			Request: RequestInfo{
				RequestOption: "Shop",
				TransactionReference: TransactionReference{
					CustomerContext: req.Reference,
				},
			},
			Shipment: Shipment{
				Shipper:  addressToParty(req.Origin),
				ShipFrom: addressToParty(req.Origin),
				ShipTo:   addressToParty(req.Destination),
				Package:  packagesToWire(req.Packages),
			},
		},
	}
}

func addressToParty(addr carrier.Address) ShipParty {
	lines := make([]string, 0, 2)
	if addr.Line1 != "" {
		lines = append(lines, addr.Line1)
	}
	if addr.Line2 != "" {
		lines = append(lines, addr.Line2)
	}

	return ShipParty{
		Name: addr.Name,
		Address: AddressWire{
			AddressLine:       lines,
			City:              addr.City,
			StateProvinceCode: addr.ProvinceCode,
			PostalCode:        addr.PostalCode,
			CountryCode:       addr.CountryCode,
		},
	}
}

func packagesToWire(pkgs []carrier.Package) []PackageWire {
	result := make([]PackageWire, len(pkgs))
	for i, p := range pkgs {
		wire := PackageWire{
			// 02 = customer supplied package
			PackagingType: CodeDescription{Code: "02", Description: "Package"},
			PackageWeight: WeightWire{
				UnitOfMeasurement: CodeDescription{Code: weightUnitCode(p.WeightUnit)},
				Weight:            formatDecimal(p.Weight),
			},
		}
		if p.Length > 0 && p.Width > 0 && p.Height > 0 {
			wire.Dimensions = &DimensionsWire{
				UnitOfMeasurement: CodeDescription{Code: dimensionUnitCode(p.DimensionUnit)},
				Length:            formatDecimal(p.Length),
				Width:             formatDecimal(p.Width),
				Height:            formatDecimal(p.Height),
			}
		}
		result[i] = wire
	}
	return result
}

func weightUnitCode(u carrier.WeightUnit) string {
	if u == carrier.WeightKG {
		return "KGS"
	}
	return "LBS"
}

func dimensionUnitCode(u carrier.DimensionUnit) string {
	if u == carrier.DimensionCM {
		return "CM"
	}
	return "IN"
}

func formatDecimal(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ============================================================================
// Conversion helpers: wire models -> carrier models
// ============================================================================

func rateResponseFromWire(resp *RateResponseWire) (*carrier.RateResponse, *carrier.Error) {
	quotes := make([]carrier.RateQuote, len(resp.RateResponse.RatedShipment))
	for i, rated := range resp.RateResponse.RatedShipment {
		total, err := strconv.ParseFloat(rated.TotalCharges.MonetaryValue, 64)
		if err != nil {
			return nil, carrier.FromSchemaViolation(
				fmt.Sprintf("rated shipment %d: total charge %q is not numeric", i, rated.TotalCharges.MonetaryValue),
				nil)
		}
		if total < 0 {
			return nil, carrier.FromSchemaViolation(
				fmt.Sprintf("rated shipment %d: total charge is negative", i), nil)
		}

		quote := carrier.RateQuote{
			Carrier:      carrierName,
			ServiceCode:  rated.Service.Code,
			ServiceLevel: serviceLevelName(rated.Service),
			TotalCost:    total,
			Currency:     rated.TotalCharges.CurrencyCode,
		}

		if gd := rated.GuaranteedDelivery; gd != nil {
			if days, err := strconv.Atoi(gd.BusinessDaysInTransit); err == nil && days > 0 {
				quote.EstimatedTransitDays = &days
			}
			if gd.DeliveryByTime != "" {
				quote.Metadata = map[string]string{"deliveryByTime": gd.DeliveryByTime}
			}
		}

		quotes[i] = quote
	}

	return &carrier.RateResponse{
		Quotes:    quotes,
		RequestID: resp.RateResponse.Response.TransactionReference.CustomerContext,
	}, nil
}

// serviceLevelName maps a UPS service code to a human-readable level,
// preferring the description UPS sent when the code is unknown.
func serviceLevelName(svc CodeDescription) string {
	names := map[string]string{
		"01": "UPS Next Day Air",
		"02": "UPS 2nd Day Air",
		"03": "UPS Ground",
		"12": "UPS 3 Day Select",
		"13": "UPS Next Day Air Saver",
		"14": "UPS Next Day Air Early",
		"59": "UPS 2nd Day Air A.M.",
		"65": "UPS Worldwide Saver",
	}
	if name, ok := names[svc.Code]; ok {
		return name
	}
	if svc.Description != "" {
		return svc.Description
	}
	return "UPS Service " + svc.Code
}

// Ensure Client implements the Carrier interface
var _ carrier.Carrier = (*Client)(nil)
