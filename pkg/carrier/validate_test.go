package carrier_test

import (
	"testing"

	"github.com/Jatin123lodhi/shipping-carrier-integration-service/pkg/carrier"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRateRequest() *carrier.RateRequest {
	return &carrier.RateRequest{
		Origin: carrier.Address{
			City:        "New York",
			PostalCode:  "10001",
			CountryCode: "US",
		},
		Destination: carrier.Address{
			City:        "Los Angeles",
			PostalCode:  "90001",
			CountryCode: "US",
		},
		Packages: []carrier.Package{
			{Length: 10, Width: 10, Height: 10, Weight: 5, WeightUnit: carrier.WeightLB},
		},
	}
}

func TestRateRequest_Validate_OK(t *testing.T) {
	assert.NoError(t, validRateRequest().Validate())
}

func TestRateRequest_Validate_NegativeWeight(t *testing.T) {
	req := validRateRequest()
	req.Packages[0].Weight = -1

	assert.Error(t, req.Validate())
}

func TestRateRequest_Validate_ZeroWeight(t *testing.T) {
	req := validRateRequest()
	req.Packages[0].Weight = 0

	assert.Error(t, req.Validate())
}

func TestRateRequest_Validate_NoPackages(t *testing.T) {
	req := validRateRequest()
	req.Packages = nil

	assert.Error(t, req.Validate())
}

func TestRateRequest_Validate_MissingPostalCode(t *testing.T) {
	req := validRateRequest()
	req.Destination.PostalCode = ""

	assert.Error(t, req.Validate())
}

func TestRateRequest_Validate_BadCountryCode(t *testing.T) {
	req := validRateRequest()
	req.Origin.CountryCode = "USA"

	assert.Error(t, req.Validate())
}

func TestFromValidationError(t *testing.T) {
	req := validRateRequest()
	req.Origin.PostalCode = ""

	err := req.Validate()
	require.Error(t, err)

	cerr := carrier.FromValidationError(err)
	assert.Equal(t, carrier.SeverityValidation, cerr.Severity)
	assert.Equal(t, carrier.CodeValidationError, cerr.Code)
	assert.NotEmpty(t, cerr.Details)
}
