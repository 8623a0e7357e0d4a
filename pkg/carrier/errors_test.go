package carrier_test

import (
	"errors"
	"testing"
	"time"

	"github.com/Jatin123lodhi/shipping-carrier-integration-service/pkg/carrier"
	"github.com/stretchr/testify/assert"
)

func TestError_Error(t *testing.T) {
	err := carrier.NewError(carrier.SeverityClient, "HTTP_400", "Invalid postal code").WithCarrier("ups")
	assert.Equal(t, "ups error (CLIENT/HTTP_400): Invalid postal code", err.Error())
}

func TestError_ErrorWithCause(t *testing.T) {
	cause := errors.New("network timeout")
	err := carrier.NewError(carrier.SeverityNetwork, carrier.CodeNetworkTimeout, "request timed out").
		WithCarrier("ups").
		WithCause(cause)
	assert.Contains(t, err.Error(), "request timed out")
	assert.Contains(t, err.Error(), "network timeout")
}

func TestError_ErrorWithoutCarrier(t *testing.T) {
	err := carrier.NewError(carrier.SeverityUnknown, carrier.CodeUnexpectedError, "boom")
	assert.Equal(t, "carrier error (UNKNOWN/UNEXPECTED_ERROR): boom", err.Error())
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := carrier.NewError(carrier.SeverityNetwork, carrier.CodeNetworkError, "failed").WithCause(cause)
	assert.True(t, errors.Is(err, cause))
}

func TestError_Is(t *testing.T) {
	err1 := carrier.NewError(carrier.SeverityClient, "HTTP_400", "one message").WithCarrier("ups")
	err2 := carrier.NewError(carrier.SeverityServer, "HTTP_400", "another message")

	// Same code should match regardless of other fields
	assert.True(t, errors.Is(err1, err2))
}

func TestError_IsNot(t *testing.T) {
	err1 := carrier.NewError(carrier.SeverityClient, "HTTP_400", "msg")
	err2 := carrier.NewError(carrier.SeverityClient, "HTTP_404", "msg")
	assert.False(t, errors.Is(err1, err2))
}

func TestError_WithDetail(t *testing.T) {
	err := carrier.NewError(carrier.SeverityServer, "HTTP_500", "oops").
		WithDetail("requestId", "abc").
		WithDetail("attempt", 1)

	assert.Equal(t, "abc", err.Details["requestId"])
	assert.Equal(t, 1, err.Details["attempt"])
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  *carrier.Error
		want bool
	}{
		{"network", carrier.NewError(carrier.SeverityNetwork, carrier.CodeNetworkTimeout, ""), true},
		{"server", carrier.NewError(carrier.SeverityServer, "HTTP_500", ""), true},
		{"rate limit", carrier.NewError(carrier.SeverityRateLimit, "HTTP_429", ""), true},
		{"client", carrier.NewError(carrier.SeverityClient, "HTTP_400", ""), false},
		{"validation", carrier.NewError(carrier.SeverityValidation, carrier.CodeValidationError, ""), false},
		{"unknown", carrier.NewError(carrier.SeverityUnknown, carrier.CodeUnexpectedError, ""), false},
		{"auth generic", carrier.NewError(carrier.SeverityAuth, "HTTP_401", ""), false},
		{"auth token expired", carrier.NewError(carrier.SeverityAuth, carrier.CodeTokenExpired, ""), true},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, carrier.IsRetryable(tt.err))
		})
	}
}

func TestRetryDelay_RateLimitWithRetryAfter(t *testing.T) {
	err := carrier.NewError(carrier.SeverityRateLimit, "HTTP_429", "slow down").
		WithDetail(carrier.DetailRetryAfter, 30*time.Second)

	delay, ok := carrier.RetryDelay(err)
	assert.True(t, ok)
	assert.Equal(t, 30*time.Second, delay)
}

func TestRetryDelay_Absent(t *testing.T) {
	tests := []struct {
		name string
		err  *carrier.Error
	}{
		{"rate limit without retryAfter", carrier.NewError(carrier.SeverityRateLimit, "HTTP_429", "")},
		{"server error with retryAfter", carrier.NewError(carrier.SeverityServer, "HTTP_503", "").
			WithDetail(carrier.DetailRetryAfter, 30*time.Second)},
		{"nil", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := carrier.RetryDelay(tt.err)
			assert.False(t, ok)
		})
	}
}
