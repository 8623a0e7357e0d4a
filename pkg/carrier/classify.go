package carrier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"
)

// responseTextLimit bounds how much of an unparseable response body is
// carried inside an error's details.
const responseTextLimit = 500

// ClassifyHTTPStatus maps an HTTP status code to an error severity.
// The mapping is total: every integer classifies to something.
func ClassifyHTTPStatus(status int) Severity {
	switch {
	case status == 401 || status == 403:
		return SeverityAuth
	case status == 429:
		return SeverityRateLimit
	case status >= 400 && status < 500:
		return SeverityClient
	case status >= 500 && status < 600:
		return SeverityServer
	default:
		return SeverityUnknown
	}
}

// FromHTTPResponse normalizes a non-2xx HTTP response into an Error.
// The human-readable message is probed out of common error-body shapes in
// priority order: a top-level "message" string, then a top-level "error"
// string, then the first element of an "errors" array carrying a "message"
// field. When nothing matches, the status line itself becomes the message.
func FromHTTPResponse(status int, statusText string, body []byte, carrierName string) *Error {
	message := extractErrorMessage(body)
	if message == "" {
		message = fmt.Sprintf("HTTP %d: %s", status, statusText)
	}

	return NewError(ClassifyHTTPStatus(status), fmt.Sprintf("HTTP_%d", status), message).
		WithCarrier(carrierName).
		WithStatus(status).
		WithDetail(DetailResponseBody, string(body))
}

func extractErrorMessage(body []byte) string {
	var parsed map[string]any
	if err := json.Unmarshal(body, &parsed); err != nil {
		return ""
	}

	if msg, ok := parsed["message"].(string); ok && msg != "" {
		return msg
	}
	if msg, ok := parsed["error"].(string); ok && msg != "" {
		return msg
	}
	if errs, ok := parsed["errors"].([]any); ok && len(errs) > 0 {
		if first, ok := errs[0].(map[string]any); ok {
			if msg, ok := first["message"].(string); ok && msg != "" {
				return msg
			}
		}
	}
	return ""
}

// FromNetworkFailure normalizes a transport-level failure (timeout, refused
// connection, DNS failure) into a NETWORK error. Timeouts are recognized via
// net.Error and context.DeadlineExceeded as well as the usual message
// substrings, so wrapped platform errors classify the same way.
func FromNetworkFailure(err error, carrierName string, timeout time.Duration) *Error {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	lower := strings.ToLower(msg)

	switch {
	case isTimeout(err) || strings.Contains(lower, "timeout") || strings.Contains(lower, "etimedout"):
		message := "request timed out"
		if timeout > 0 {
			message = fmt.Sprintf("request timed out after %s", timeout)
		}
		return NewError(SeverityNetwork, CodeNetworkTimeout, message).
			WithCarrier(carrierName).
			WithCause(err)
	case strings.Contains(lower, "econnrefused") ||
		strings.Contains(lower, "connection refused") ||
		strings.Contains(lower, "enotfound") ||
		strings.Contains(lower, "no such host") ||
		strings.Contains(lower, "network"):
		return NewError(SeverityNetwork, CodeConnectionFailed, "failed to connect to carrier endpoint").
			WithCarrier(carrierName).
			WithCause(err)
	default:
		if msg == "" {
			msg = "network failure"
		}
		return NewError(SeverityNetwork, CodeNetworkError, msg).
			WithCarrier(carrierName).
			WithCause(err)
	}
}

func isTimeout(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// FromMalformedPayload normalizes a JSON decode failure on a carrier
// response. The offending text is truncated so the error stays bounded no
// matter what the carrier sent back.
func FromMalformedPayload(err error, carrierName, rawText string) *Error {
	if len(rawText) > responseTextLimit {
		rawText = rawText[:responseTextLimit]
	}
	return NewError(SeverityServer, CodeJSONParseError, "failed to parse carrier response").
		WithCarrier(carrierName).
		WithCause(err).
		WithDetail(DetailResponseText, rawText)
}

// FromSchemaViolation normalizes a structural mismatch between a payload and
// its expected schema.
func FromSchemaViolation(message string, details map[string]any) *Error {
	e := NewError(SeverityValidation, CodeValidationError, message)
	for k, v := range details {
		e.WithDetail(k, v)
	}
	return e
}

// FromUnexpected is the catch-all for defects that escaped every other
// classification. A non-empty context string prefixes the message.
func FromUnexpected(err error, carrierName, context string) *Error {
	msg := "unexpected error"
	if err != nil {
		msg = err.Error()
	}
	if context != "" {
		msg = context + ": " + msg
	}
	return NewError(SeverityUnknown, CodeUnexpectedError, msg).
		WithCarrier(carrierName).
		WithCause(err)
}
