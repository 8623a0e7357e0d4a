package carrier

import (
	"time"
)

// WeightUnit represents weight measurement unit.
type WeightUnit string

const (
	WeightKG WeightUnit = "kg"
	WeightLB WeightUnit = "lb"
)

// DimensionUnit represents dimension measurement unit.
type DimensionUnit string

const (
	DimensionCM DimensionUnit = "cm"
	DimensionIN DimensionUnit = "in"
)

// Address represents a shipping address.
type Address struct {
	Name          string
	Company       string
	Line1         string
	Line2         string
	City          string
	ProvinceCode  string // e.g., "ON", "NY", "CA"
	PostalCode    string
	CountryCode   string // ISO 3166-1 alpha-2, e.g., "US", "CA"
	Phone         string
	IsResidential bool
}

// Package represents a package to be rated or shipped.
type Package struct {
	Length        float64
	Width         float64
	Height        float64
	DimensionUnit DimensionUnit
	Weight        float64
	WeightUnit    WeightUnit
	Description   string
	DeclaredValue float64
	Currency      string
}

// Credential is a time-limited access artifact obtained through a
// client-credentials exchange. It is immutable: a refresh produces a new
// Credential and replaces the old one wholesale, it never mutates in place.
type Credential struct {
	AccessToken string
	TokenType   string
	ExpiresAt   time.Time
}

// ============================================================================
// Request/Response Types
// ============================================================================

// RateRequest is the carrier-agnostic request for rate quotes.
type RateRequest struct {
	Origin      Address
	Destination Address
	Packages    []Package
	Reference   string
}

// RateQuote is a single normalized rate option.
type RateQuote struct {
	Carrier               string
	ServiceLevel          string
	ServiceCode           string
	TotalCost             float64
	Currency              string // ISO 4217, 3 letters
	EstimatedTransitDays  *int
	EstimatedDeliveryDate *time.Time
	Metadata              map[string]string
}

// RateResponse is the normalized rate quote response. A successful response
// always carries at least one quote.
type RateResponse struct {
	Quotes    []RateQuote
	RequestID string
}

// ShipmentRequest is the request for creating a shipment.
type ShipmentRequest struct {
	Origin      Address
	Destination Address
	Packages    []Package
	ServiceCode string
	Reference   string
}

// ShipmentResponse is the response from creating a shipment.
type ShipmentResponse struct {
	ShipmentID     string
	TrackingNumber string
	Carrier        string
	TotalCharged   float64
	Currency       string
}

// TrackingEvent represents a single tracking event.
type TrackingEvent struct {
	Timestamp   time.Time
	Description string
	Location    string
}

// TrackingInfo is the normalized tracking response.
type TrackingInfo struct {
	TrackingNumber string
	Status         string
	Events         []TrackingEvent
}
