// Package mock provides a mock carrier implementation for testing.
package mock

import (
	"context"
	"fmt"
	"time"

	"github.com/Jatin123lodhi/shipping-carrier-integration-service/pkg/carrier"
)

// Client is a mock carrier for testing. It supports the rate-quote operation
// with canned quotes; behavior is overridable per test via OnGetRates.
type Client struct {
	name string

	OnGetRates func(ctx context.Context, req *carrier.RateRequest) carrier.Result[carrier.RateResponse]

	// GetRatesCalls counts invocations of GetRates.
	GetRatesCalls int
}

// New creates a new mock carrier.
func New(name string) *Client {
	return &Client{name: name}
}

// Name returns the carrier name.
func (c *Client) Name() string {
	return c.name
}

// SupportsOperation reports rate quoting as the only supported operation.
func (c *Client) SupportsOperation(op carrier.Operation) bool {
	return op == carrier.OpRateQuote
}

// GetRates returns mock rate quotes.
func (c *Client) GetRates(ctx context.Context, req *carrier.RateRequest) carrier.Result[carrier.RateResponse] {
	c.GetRatesCalls++

	if c.OnGetRates != nil {
		return c.OnGetRates(ctx, req)
	}

	transitStandard := 5
	transitExpress := 2
	delivery := time.Now().AddDate(0, 0, transitStandard)

	return carrier.Ok(carrier.RateResponse{
		RequestID: fmt.Sprintf("%s-req-%d", c.name, time.Now().UnixNano()),
		Quotes: []carrier.RateQuote{
			{
				Carrier:               c.name,
				ServiceLevel:          "Standard",
				ServiceCode:           "STD",
				TotalCost:             12.50,
				Currency:              "USD",
				EstimatedTransitDays:  &transitStandard,
				EstimatedDeliveryDate: &delivery,
			},
			{
				Carrier:              c.name,
				ServiceLevel:         "Express",
				ServiceCode:          "EXP",
				TotalCost:            28.00,
				Currency:             "USD",
				EstimatedTransitDays: &transitExpress,
			},
		},
	})
}

// CreateShipment is not supported by the mock carrier.
func (c *Client) CreateShipment(ctx context.Context, req *carrier.ShipmentRequest) carrier.Result[carrier.ShipmentResponse] {
	return carrier.Fail[carrier.ShipmentResponse](carrier.Unsupported(c.name, carrier.OpCreateShipment))
}

// GetTracking is not supported by the mock carrier.
func (c *Client) GetTracking(ctx context.Context, trackingNumber string) carrier.Result[carrier.TrackingInfo] {
	return carrier.Fail[carrier.TrackingInfo](carrier.Unsupported(c.name, carrier.OpTracking))
}

// ValidateAddress is not supported by the mock carrier.
func (c *Client) ValidateAddress(ctx context.Context, addr *carrier.Address) carrier.Result[carrier.Address] {
	return carrier.Fail[carrier.Address](carrier.Unsupported(c.name, carrier.OpAddressValidation))
}

var _ carrier.Carrier = (*Client)(nil)
