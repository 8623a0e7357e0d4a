// Package carrier provides the carrier-agnostic domain model, the normalized
// error taxonomy, and the interface every shipping-carrier gateway implements.
package carrier

import (
	"context"
)

// Operation identifies a carrier operation for capability checks.
type Operation string

const (
	OpRateQuote         Operation = "rate_quote"
	OpCreateShipment    Operation = "create_shipment"
	OpTracking          Operation = "tracking"
	OpAddressValidation Operation = "address_validation"
)

// Carrier defines the interface that all shipping-carrier gateways implement.
// A gateway declares which operations it supports; calling an unsupported
// operation returns an OPERATION_NOT_SUPPORTED error rather than panicking or
// hanging.
type Carrier interface {
	// Name returns the carrier identifier (e.g., "ups").
	Name() string

	// SupportsOperation reports whether the gateway implements the given
	// operation end to end.
	SupportsOperation(op Operation) bool

	// GetRates returns normalized rate quotes for a shipment.
	GetRates(ctx context.Context, req *RateRequest) Result[RateResponse]

	// CreateShipment creates a new shipment with the carrier.
	CreateShipment(ctx context.Context, req *ShipmentRequest) Result[ShipmentResponse]

	// GetTracking retrieves tracking information for a shipment.
	GetTracking(ctx context.Context, trackingNumber string) Result[TrackingInfo]

	// ValidateAddress validates and normalizes an address with the carrier.
	ValidateAddress(ctx context.Context, addr *Address) Result[Address]
}

// Unsupported builds the normalized error returned by gateways for
// operations they do not implement.
func Unsupported(carrierName string, op Operation) *Error {
	return NewError(SeverityClient, CodeOperationNotSupported,
		"operation "+string(op)+" is not supported").
		WithCarrier(carrierName)
}
