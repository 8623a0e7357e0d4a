package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/Jatin123lodhi/shipping-carrier-integration-service/pkg/carrier"
	"go.uber.org/zap"
)

// ============================================================================
// Transport DTOs
// ============================================================================

type addressPayload struct {
	Name         string `json:"name,omitempty"`
	Company      string `json:"company,omitempty"`
	Line1        string `json:"line1,omitempty"`
	Line2        string `json:"line2,omitempty"`
	City         string `json:"city,omitempty"`
	ProvinceCode string `json:"provinceCode,omitempty"`
	PostalCode   string `json:"postalCode"`
	CountryCode  string `json:"countryCode"`
}

type packagePayload struct {
	Length        float64 `json:"length,omitempty"`
	Width         float64 `json:"width,omitempty"`
	Height        float64 `json:"height,omitempty"`
	DimensionUnit string  `json:"dimensionUnit,omitempty"`
	Weight        float64 `json:"weight"`
	WeightUnit    string  `json:"weightUnit,omitempty"`
}

type rateRequestPayload struct {
	Carrier     string           `json:"carrier,omitempty"`
	Origin      addressPayload   `json:"origin"`
	Destination addressPayload   `json:"destination"`
	Packages    []packagePayload `json:"packages"`
	Reference   string           `json:"reference,omitempty"`
}

type rateQuotePayload struct {
	Carrier               string            `json:"carrier"`
	ServiceLevel          string            `json:"serviceLevel"`
	ServiceCode           string            `json:"serviceCode"`
	TotalCost             float64           `json:"totalCost"`
	Currency              string            `json:"currency"`
	EstimatedTransitDays  *int              `json:"estimatedTransitDays,omitempty"`
	EstimatedDeliveryDate *time.Time        `json:"estimatedDeliveryDate,omitempty"`
	Metadata              map[string]string `json:"metadata,omitempty"`
}

type rateResponsePayload struct {
	Quotes    []rateQuotePayload `json:"quotes"`
	RequestID string             `json:"requestId,omitempty"`
}

type errorPayload struct {
	Severity   string `json:"severity"`
	Code       string `json:"code"`
	Message    string `json:"message"`
	Carrier    string `json:"carrier,omitempty"`
	HTTPStatus int    `json:"httpStatus,omitempty"`
	Retryable  bool   `json:"retryable"`
}

type errorEnvelope struct {
	Error errorPayload `json:"error"`
}

// ============================================================================
// Handlers
// ============================================================================

func (s *Server) handleRates(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		json.NewEncoder(w).Encode(errorEnvelope{Error: errorPayload{
			Severity: string(carrier.SeverityClient),
			Code:     "METHOD_NOT_ALLOWED",
			Message:  "method not allowed, use POST",
		}})
		return
	}

	var payload rateRequestPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(errorEnvelope{Error: errorPayload{
			Severity: string(carrier.SeverityValidation),
			Code:     carrier.CodeValidationError,
			Message:  "invalid request body: " + err.Error(),
		}})
		return
	}

	name := payload.Carrier
	if name == "" {
		name = "ups"
	}

	gw, cerr := s.registry.Get(name)
	if cerr != nil {
		s.writeError(w, http.StatusNotFound, cerr)
		return
	}
	if !gw.SupportsOperation(carrier.OpRateQuote) {
		s.writeError(w, http.StatusNotImplemented, carrier.Unsupported(name, carrier.OpRateQuote))
		return
	}

	req := payloadToRateRequest(&payload)

	start := time.Now()
	res := gw.GetRates(r.Context(), req)
	duration := time.Since(start).Seconds()

	if !res.OK {
		s.metrics.RecordRequest("get_rates", name, "error", duration)
		s.metrics.RecordError(res.Err.Carrier, string(res.Err.Severity), res.Err.Code)
		s.logger.Warn("Rate request failed",
			zap.String("carrier", name),
			zap.String("code", res.Err.Code),
			zap.String("severity", string(res.Err.Severity)),
		)
		s.writeError(w, httpStatusForSeverity(res.Err.Severity), res.Err)
		return
	}

	s.metrics.RecordRequest("get_rates", name, "ok", duration)
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(rateResponseToPayload(&res.Value))
}

func (s *Server) handleCarriers(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string][]string{"carriers": s.registry.Names()})
}

func (s *Server) writeError(w http.ResponseWriter, status int, cerr *carrier.Error) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorEnvelope{Error: errorPayload{
		Severity:   string(cerr.Severity),
		Code:       cerr.Code,
		Message:    cerr.Message,
		Carrier:    cerr.Carrier,
		HTTPStatus: cerr.HTTPStatus,
		Retryable:  carrier.IsRetryable(cerr),
	}})
}

// httpStatusForSeverity maps a normalized severity to the status this
// service answers with. Upstream faults surface as gateway errors.
func httpStatusForSeverity(sev carrier.Severity) int {
	switch sev {
	case carrier.SeverityValidation, carrier.SeverityClient:
		return http.StatusBadRequest
	case carrier.SeverityRateLimit:
		return http.StatusTooManyRequests
	case carrier.SeverityAuth, carrier.SeverityServer:
		return http.StatusBadGateway
	case carrier.SeverityNetwork:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// ============================================================================
// Conversion helpers
// ============================================================================

func payloadToRateRequest(p *rateRequestPayload) *carrier.RateRequest {
	packages := make([]carrier.Package, len(p.Packages))
	for i, pkg := range p.Packages {
		packages[i] = carrier.Package{
			Length:        pkg.Length,
			Width:         pkg.Width,
			Height:        pkg.Height,
			DimensionUnit: dimensionUnit(pkg.DimensionUnit),
			Weight:        pkg.Weight,
			WeightUnit:    weightUnit(pkg.WeightUnit),
		}
	}
	return &carrier.RateRequest{
		Origin:      payloadToAddress(p.Origin),
		Destination: payloadToAddress(p.Destination),
		Packages:    packages,
		Reference:   p.Reference,
	}
}

func payloadToAddress(p addressPayload) carrier.Address {
	return carrier.Address{
		Name:         p.Name,
		Company:      p.Company,
		Line1:        p.Line1,
		Line2:        p.Line2,
		City:         p.City,
		ProvinceCode: p.ProvinceCode,
		PostalCode:   p.PostalCode,
		CountryCode:  p.CountryCode,
	}
}

func weightUnit(s string) carrier.WeightUnit {
	if s == string(carrier.WeightKG) {
		return carrier.WeightKG
	}
	return carrier.WeightLB
}

func dimensionUnit(s string) carrier.DimensionUnit {
	if s == string(carrier.DimensionCM) {
		return carrier.DimensionCM
	}
	return carrier.DimensionIN
}

func rateResponseToPayload(resp *carrier.RateResponse) rateResponsePayload {
	quotes := make([]rateQuotePayload, len(resp.Quotes))
	for i, q := range resp.Quotes {
		quotes[i] = rateQuotePayload{
			Carrier:               q.Carrier,
			ServiceLevel:          q.ServiceLevel,
			ServiceCode:           q.ServiceCode,
			TotalCost:             q.TotalCost,
			Currency:              q.Currency,
			EstimatedTransitDays:  q.EstimatedTransitDays,
			EstimatedDeliveryDate: q.EstimatedDeliveryDate,
			Metadata:              q.Metadata,
		}
	}
	return rateResponsePayload{Quotes: quotes, RequestID: resp.RequestID}
}
