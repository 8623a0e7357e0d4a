package carrier

import (
	"fmt"
	"time"
)

// Severity classifies the nature of a normalized carrier error.
// The set is closed: every error produced by this package carries
// exactly one of these values.
type Severity string

const (
	SeverityClient     Severity = "CLIENT"
	SeverityServer     Severity = "SERVER"
	SeverityNetwork    Severity = "NETWORK"
	SeverityAuth       Severity = "AUTH"
	SeverityRateLimit  Severity = "RATE_LIMIT"
	SeverityValidation Severity = "VALIDATION"
	SeverityUnknown    Severity = "UNKNOWN"
)

// Machine-readable error codes shared across carriers.
const (
	CodeValidationError       = "VALIDATION_ERROR"
	CodeJSONParseError        = "JSON_PARSE_ERROR"
	CodeNetworkTimeout        = "NETWORK_TIMEOUT"
	CodeConnectionFailed      = "CONNECTION_FAILED"
	CodeNetworkError          = "NETWORK_ERROR"
	CodeUnexpectedError       = "UNEXPECTED_ERROR"
	CodeTokenExpired          = "TOKEN_EXPIRED"
	CodeOperationNotSupported = "OPERATION_NOT_SUPPORTED"
	CodeCarrierNotFound       = "CARRIER_NOT_FOUND"
)

// Detail keys used in Error.Details.
const (
	DetailResponseBody = "responseBody"
	DetailResponseText = "responseText"
	DetailRetryAfter   = "retryAfter"
)

// Error is the carrier-agnostic, normalized form of a carrier failure.
// Severity and Code are always set. HTTPStatus is set only when the
// failure originated from an HTTP response.
type Error struct {
	Severity   Severity
	Code       string
	Message    string
	Carrier    string
	HTTPStatus int
	Details    map[string]any
	Cause      error
}

// Error implements the error interface.
func (e *Error) Error() string {
	carrier := e.Carrier
	if carrier == "" {
		carrier = "carrier"
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s error (%s/%s): %s: %v", carrier, e.Severity, e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s error (%s/%s): %s", carrier, e.Severity, e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is: two carrier errors match when their codes match.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewError creates a new normalized carrier error.
func NewError(severity Severity, code, message string) *Error {
	return &Error{
		Severity: severity,
		Code:     code,
		Message:  message,
	}
}

// WithCarrier stamps the error with a carrier identifier, overriding any
// carrier tag set deeper in the stack.
func (e *Error) WithCarrier(carrier string) *Error {
	e.Carrier = carrier
	return e
}

// WithStatus records the HTTP status the failure originated from.
func (e *Error) WithStatus(status int) *Error {
	e.HTTPStatus = status
	return e
}

// WithCause attaches the underlying cause.
func (e *Error) WithCause(err error) *Error {
	e.Cause = err
	return e
}

// WithDetail attaches a single detail entry.
func (e *Error) WithDetail(key string, value any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any, 1)
	}
	e.Details[key] = value
	return e
}

// IsRetryable reports whether a caller may reasonably retry the failed
// operation. NETWORK, SERVER, and RATE_LIMIT failures are retryable; AUTH
// failures only when the token expired mid-flight. The core never retries
// on its own; this predicate is advisory for callers.
func IsRetryable(err *Error) bool {
	if err == nil {
		return false
	}
	switch err.Severity {
	case SeverityNetwork, SeverityServer, SeverityRateLimit:
		return true
	case SeverityAuth:
		return err.Code == CodeTokenExpired
	default:
		return false
	}
}

// RetryDelay returns the delay a rate-limited caller should wait before
// retrying. It is present only for RATE_LIMIT errors that carry a
// retry-after value.
func RetryDelay(err *Error) (time.Duration, bool) {
	if err == nil || err.Severity != SeverityRateLimit {
		return 0, false
	}
	d, ok := err.Details[DetailRetryAfter].(time.Duration)
	if !ok || d <= 0 {
		return 0, false
	}
	return d, true
}
