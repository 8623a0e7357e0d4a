package carrier_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/Jatin123lodhi/shipping-carrier-integration-service/pkg/carrier"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyHTTPStatus(t *testing.T) {
	tests := []struct {
		status int
		want   carrier.Severity
	}{
		{401, carrier.SeverityAuth},
		{403, carrier.SeverityAuth},
		{429, carrier.SeverityRateLimit},
		{400, carrier.SeverityClient},
		{404, carrier.SeverityClient},
		{422, carrier.SeverityClient},
		{499, carrier.SeverityClient},
		{500, carrier.SeverityServer},
		{502, carrier.SeverityServer},
		{503, carrier.SeverityServer},
		{599, carrier.SeverityServer},
		{100, carrier.SeverityUnknown},
		{200, carrier.SeverityUnknown},
		{302, carrier.SeverityUnknown},
		{0, carrier.SeverityUnknown},
		{-1, carrier.SeverityUnknown},
		{600, carrier.SeverityUnknown},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("status_%d", tt.status), func(t *testing.T) {
			assert.Equal(t, tt.want, carrier.ClassifyHTTPStatus(tt.status))
		})
	}
}

func TestFromHTTPResponse_MessageField(t *testing.T) {
	body := []byte(`{"message":"Invalid shipper number","error":"ignored"}`)
	err := carrier.FromHTTPResponse(400, "Bad Request", body, "ups")

	assert.Equal(t, carrier.SeverityClient, err.Severity)
	assert.Equal(t, "HTTP_400", err.Code)
	assert.Equal(t, "Invalid shipper number", err.Message)
	assert.Equal(t, "ups", err.Carrier)
	assert.Equal(t, 400, err.HTTPStatus)
	assert.Equal(t, string(body), err.Details[carrier.DetailResponseBody])
}

func TestFromHTTPResponse_ErrorField(t *testing.T) {
	err := carrier.FromHTTPResponse(401, "Unauthorized", []byte(`{"error":"invalid_client"}`), "ups")

	assert.Equal(t, carrier.SeverityAuth, err.Severity)
	assert.Equal(t, "HTTP_401", err.Code)
	assert.Equal(t, "invalid_client", err.Message)
}

func TestFromHTTPResponse_ErrorsArray(t *testing.T) {
	body := []byte(`{"errors":[{"code":"250002","message":"Invalid Authentication Information"}]}`)
	err := carrier.FromHTTPResponse(403, "Forbidden", body, "ups")

	assert.Equal(t, carrier.SeverityAuth, err.Severity)
	assert.Equal(t, "Invalid Authentication Information", err.Message)
}

func TestFromHTTPResponse_FallbackStatusLine(t *testing.T) {
	tests := []struct {
		name string
		body []byte
	}{
		{"empty body", nil},
		{"non-JSON body", []byte("<html>Service Unavailable</html>")},
		{"JSON without known fields", []byte(`{"detail":"nope"}`)},
		{"errors array without message", []byte(`{"errors":[{"code":"X"}]}`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := carrier.FromHTTPResponse(503, "Service Unavailable", tt.body, "ups")
			assert.Equal(t, "HTTP 503: Service Unavailable", err.Message)
			assert.Equal(t, carrier.SeverityServer, err.Severity)
		})
	}
}

func TestFromNetworkFailure_Timeout(t *testing.T) {
	cause := errors.New("dial tcp: i/o timeout")
	err := carrier.FromNetworkFailure(cause, "ups", 30*time.Second)

	assert.Equal(t, carrier.SeverityNetwork, err.Severity)
	assert.Equal(t, carrier.CodeNetworkTimeout, err.Code)
	assert.Contains(t, err.Message, "30s")
	assert.True(t, errors.Is(err, cause))
}

func TestFromNetworkFailure_TimeoutUnknownDuration(t *testing.T) {
	err := carrier.FromNetworkFailure(errors.New("ETIMEDOUT"), "ups", 0)

	assert.Equal(t, carrier.CodeNetworkTimeout, err.Code)
	assert.Equal(t, "request timed out", err.Message)
}

func TestFromNetworkFailure_DeadlineExceeded(t *testing.T) {
	err := carrier.FromNetworkFailure(
		fmt.Errorf("posting rate request: %w", context.DeadlineExceeded), "ups", 5*time.Second)

	assert.Equal(t, carrier.CodeNetworkTimeout, err.Code)
}

func TestFromNetworkFailure_ConnectionRefused(t *testing.T) {
	tests := []string{
		"dial tcp 127.0.0.1:443: connect: connection refused",
		"ECONNREFUSED",
		"getaddrinfo ENOTFOUND onlinetools.ups.com",
		"lookup onlinetools.ups.com: no such host",
		"Network is unreachable",
	}

	for _, msg := range tests {
		t.Run(msg, func(t *testing.T) {
			err := carrier.FromNetworkFailure(errors.New(msg), "ups", 30*time.Second)
			assert.Equal(t, carrier.CodeConnectionFailed, err.Code)
			assert.Equal(t, "failed to connect to carrier endpoint", err.Message)
		})
	}
}

func TestFromNetworkFailure_Passthrough(t *testing.T) {
	err := carrier.FromNetworkFailure(errors.New("tls: handshake failure"), "ups", 30*time.Second)

	assert.Equal(t, carrier.SeverityNetwork, err.Severity)
	assert.Equal(t, carrier.CodeNetworkError, err.Code)
	assert.Equal(t, "tls: handshake failure", err.Message)
}

func TestFromMalformedPayload(t *testing.T) {
	cause := errors.New("invalid character '<' looking for beginning of value")
	err := carrier.FromMalformedPayload(cause, "ups", "<html>oops</html>")

	assert.Equal(t, carrier.SeverityServer, err.Severity)
	assert.Equal(t, carrier.CodeJSONParseError, err.Code)
	assert.Equal(t, "<html>oops</html>", err.Details[carrier.DetailResponseText])
	assert.True(t, errors.Is(err, cause))
}

func TestFromMalformedPayload_TruncatesResponseText(t *testing.T) {
	raw := strings.Repeat("x", 2000)
	err := carrier.FromMalformedPayload(errors.New("unexpected EOF"), "ups", raw)

	text, ok := err.Details[carrier.DetailResponseText].(string)
	require.True(t, ok)
	assert.Len(t, text, 500)
}

func TestFromSchemaViolation(t *testing.T) {
	err := carrier.FromSchemaViolation("missing RatedShipment", map[string]any{"field": "RatedShipment"})

	assert.Equal(t, carrier.SeverityValidation, err.Severity)
	assert.Equal(t, carrier.CodeValidationError, err.Code)
	assert.Equal(t, "missing RatedShipment", err.Message)
	assert.Equal(t, "RatedShipment", err.Details["field"])
}

func TestFromUnexpected_ContextPrefix(t *testing.T) {
	err := carrier.FromUnexpected(errors.New("boom"), "ups", "ups rate quote")

	assert.Equal(t, carrier.SeverityUnknown, err.Severity)
	assert.Equal(t, carrier.CodeUnexpectedError, err.Code)
	assert.Equal(t, "ups rate quote: boom", err.Message)
}

func TestFromUnexpected_NoContext(t *testing.T) {
	err := carrier.FromUnexpected(errors.New("boom"), "ups", "")
	assert.Equal(t, "boom", err.Message)
}
