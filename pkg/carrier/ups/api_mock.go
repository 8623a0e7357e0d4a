package ups

import (
	"context"
	"time"

	"github.com/Jatin123lodhi/shipping-carrier-integration-service/pkg/carrier"
	"github.com/google/uuid"
)

// MockAPIClient is a mock implementation of APIClient for testing. Call
// counters let tests assert how many transport calls an operation caused,
// including the zero-call guarantees around validation failures and token
// reuse.
type MockAPIClient struct {
	SimulateErrors  bool
	SimulateLatency time.Duration

	OnExchangeToken func(ctx context.Context) (*TokenResponse, *carrier.Error)
	OnGetRates      func(ctx context.Context, authorization string, req *RateRequestWire) (*RateResponseWire, *carrier.Error)

	// Counters and captured arguments, updated on every call.
	ExchangeTokenCalls int
	GetRatesCalls      int
	LastAuthorization  string
}

// NewMockAPIClient creates a new mock API client with default behavior.
func NewMockAPIClient() *MockAPIClient {
	return &MockAPIClient{}
}

// ExchangeToken returns a mock token.
func (m *MockAPIClient) ExchangeToken(ctx context.Context) (*TokenResponse, *carrier.Error) {
	m.ExchangeTokenCalls++

	if m.SimulateLatency > 0 {
		time.Sleep(m.SimulateLatency)
	}

	if m.SimulateErrors {
		return nil, carrier.FromHTTPResponse(401, "Unauthorized",
			[]byte(`{"error":"invalid_client"}`), carrierName)
	}

	if m.OnExchangeToken != nil {
		return m.OnExchangeToken(ctx)
	}

	return &TokenResponse{
		AccessToken: "mock-token-" + uuid.New().String()[:8],
		TokenType:   "Bearer",
		ExpiresIn:   3600,
		IssuedAt:    time.Now().Format(time.RFC3339),
	}, nil
}

// GetRates returns mock rated shipments.
func (m *MockAPIClient) GetRates(ctx context.Context, authorization string, req *RateRequestWire) (*RateResponseWire, *carrier.Error) {
	m.GetRatesCalls++
	m.LastAuthorization = authorization

	if m.SimulateLatency > 0 {
		time.Sleep(m.SimulateLatency)
	}

	if m.SimulateErrors {
		return nil, carrier.FromHTTPResponse(500, "Internal Server Error",
			[]byte(`{"message":"Simulated API error"}`), carrierName)
	}

	if m.OnGetRates != nil {
		return m.OnGetRates(ctx, authorization, req)
	}

	return &RateResponseWire{
		RateResponse: RateResponseBody{
			Response: ResponseStatus{
				ResponseStatus: CodeDescription{Code: "1", Description: "Success"},
				TransactionReference: TransactionReference{
					CustomerContext: req.RateRequest.Request.TransactionReference.CustomerContext,
				},
			},
			RatedShipment: []RatedShipment{
				{
					Service:      CodeDescription{Code: "03", Description: "UPS Ground"},
					TotalCharges: ChargeWire{CurrencyCode: "USD", MonetaryValue: "15.50"},
					GuaranteedDelivery: &GuaranteedDelivery{
						BusinessDaysInTransit: "5",
					},
				},
				{
					Service:      CodeDescription{Code: "02", Description: "UPS 2nd Day Air"},
					TotalCharges: ChargeWire{CurrencyCode: "USD", MonetaryValue: "25.75"},
					GuaranteedDelivery: &GuaranteedDelivery{
						BusinessDaysInTransit: "2",
						DeliveryByTime:        "11:00 P.M.",
					},
				},
				{
					Service:      CodeDescription{Code: "01", Description: "UPS Next Day Air"},
					TotalCharges: ChargeWire{CurrencyCode: "USD", MonetaryValue: "45.00"},
					GuaranteedDelivery: &GuaranteedDelivery{
						BusinessDaysInTransit: "1",
						DeliveryByTime:        "10:30 A.M.",
					},
				},
			},
		},
	}, nil
}

var _ APIClient = (*MockAPIClient)(nil)
