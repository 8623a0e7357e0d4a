package carrier

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Validate checks a rate request against the domain schema. Gateways call
// this before any network activity so invalid input never reaches a carrier.
func (r *RateRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Origin),
		validation.Field(&r.Destination),
		validation.Field(&r.Packages, validation.Required),
	)
}

// Validate checks that an address carries enough structure for rating.
func (a Address) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.PostalCode, validation.Required),
		validation.Field(&a.CountryCode, validation.Required, validation.Length(2, 2)),
	)
}

// Validate checks package dimensions and weight.
func (p Package) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Weight, validation.Required, validation.Min(0.0).Exclusive()),
		validation.Field(&p.Length, validation.Min(0.0)),
		validation.Field(&p.Width, validation.Min(0.0)),
		validation.Field(&p.Height, validation.Min(0.0)),
		validation.Field(&p.DeclaredValue, validation.Min(0.0)),
		validation.Field(&p.Currency, validation.Length(3, 3)),
	)
}

// FromValidationError converts an ozzo validation error into a normalized
// VALIDATION error, flattening per-field failures into the details map.
func FromValidationError(err error) *Error {
	return FromSchemaViolation(err.Error(), ValidationDetails(err))
}

// ValidationDetails flattens a validation error into a field→message map
// suitable for Error.Details.
func ValidationDetails(err error) map[string]any {
	verrs, ok := err.(validation.Errors)
	if !ok {
		return nil
	}
	details := make(map[string]any, len(verrs))
	for field, ferr := range verrs {
		details[field] = ferr.Error()
	}
	return details
}
