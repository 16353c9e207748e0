// Package errors provides the error taxonomy for the Hypersave SDK.
//
// Every failure surfaced by the SDK is a *Error carrying a Kind
// discriminant, a message, an optional HTTP status and the fields that
// belong to its kind. Callers branch on Kind instead of on transport
// error shapes.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind is the machine-readable category of an Error.
type Kind string

const (
	KindAuthentication Kind = "authentication"
	KindValidation     Kind = "validation"
	KindNotFound       Kind = "not_found"
	KindRateLimit      Kind = "rate_limit"
	KindTimeout        Kind = "timeout"
	KindNetwork        Kind = "network"
	KindServer         Kind = "server"
	KindParse          Kind = "parse"
	KindGeneric        Kind = "generic"
)

// DefaultTimeoutMillis is used for 408 responses that do not report a timeout.
const DefaultTimeoutMillis = 30000

// String returns the kind name.
func (k Kind) String() string { return string(k) }

// Retryable reports whether errors of this kind may succeed if the call is
// repeated later. Client errors (4xx other than 408/429) and parse failures
// are not retryable.
func (k Kind) Retryable() bool {
	switch k {
	case KindRateLimit, KindTimeout, KindNetwork, KindServer:
		return true
	default:
		return false
	}
}

// Error is the single error type returned by the SDK.
type Error struct {
	Kind       Kind
	Message    string
	StatusCode int   // HTTP status code (0 when no response was received)
	Cause      error // underlying error, if any

	// Validation
	Details map[string]any

	// NotFound
	ResourceType string
	ResourceID   string

	// RateLimit; 0 means the server did not say.
	RetryAfterSeconds int

	// Timeout
	TimeoutMillis int

	// Parse
	RawResponse string

	// RequestID is the X-Request-ID sent with the failing call.
	RequestID string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	msg := e.Message
	if e.StatusCode > 0 {
		msg = fmt.Sprintf("%s (HTTP %d)", msg, e.StatusCode)
	}
	if e.Cause != nil {
		return fmt.Sprintf("hypersave: %s: %s: %v", e.Kind, msg, e.Cause)
	}
	return fmt.Sprintf("hypersave: %s: %s", e.Kind, msg)
}

// Unwrap returns the underlying error for error chain compatibility.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// Is matches another *Error by kind so that
// errors.Is(err, &Error{Kind: KindTimeout}) works.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e == nil || t == nil {
		return false
	}
	return t.Kind == e.Kind
}

// Retryable reports whether the call that produced e may be retried.
func (e *Error) Retryable() bool {
	return e != nil && e.Kind.Retryable()
}

// IsKind reports whether err, or any error it wraps, is an *Error of kind k.
func IsKind(err error, k Kind) bool {
	return KindOf(err) == k
}

// KindOf returns the Kind of the first *Error in err's chain, or "" when
// err was not produced by the SDK.
func KindOf(err error) Kind {
	var e *Error
	if stderrors.As(err, &e) && e != nil {
		return e.Kind
	}
	return ""
}

// As returns the first *Error in err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	if stderrors.As(err, &e) && e != nil {
		return e, true
	}
	return nil, false
}

// ------------------------------
// Constructors
// ------------------------------

func orDefault(msg, def string) string {
	if msg == "" {
		return def
	}
	return msg
}

// NewAuthentication builds an authentication error with status 401.
func NewAuthentication(message string) *Error {
	return &Error{Kind: KindAuthentication, Message: orDefault(message, "Invalid or missing API key"), StatusCode: 401}
}

// NewValidation builds a validation error with status 400.
func NewValidation(message string, details map[string]any) *Error {
	return &Error{Kind: KindValidation, Message: orDefault(message, "Validation failed"), StatusCode: 400, Details: cloneDetails(details)}
}

// NewNotFound builds a not-found error with status 404.
func NewNotFound(message, resourceType, resourceID string) *Error {
	if message == "" && resourceType != "" {
		if resourceID != "" {
			message = fmt.Sprintf("%s not found: %s", resourceType, resourceID)
		} else {
			message = resourceType + " not found"
		}
	}
	return &Error{
		Kind:         KindNotFound,
		Message:      orDefault(message, "Resource not found"),
		StatusCode:   404,
		ResourceType: resourceType,
		ResourceID:   resourceID,
	}
}

// NewRateLimit builds a rate-limit error with status 429.
func NewRateLimit(message string, retryAfterSeconds int) *Error {
	if retryAfterSeconds < 0 {
		retryAfterSeconds = 0
	}
	return &Error{Kind: KindRateLimit, Message: orDefault(message, "Rate limit exceeded"), StatusCode: 429, RetryAfterSeconds: retryAfterSeconds}
}

// NewTimeout builds a timeout error with status 408.
func NewTimeout(timeoutMillis int, message string) *Error {
	return &Error{
		Kind:          KindTimeout,
		Message:       orDefault(message, fmt.Sprintf("Request timed out after %dms", timeoutMillis)),
		StatusCode:    408,
		TimeoutMillis: timeoutMillis,
	}
}

// NewNetwork builds a network error. No status code is attached since no
// response was received.
func NewNetwork(message string, cause error) *Error {
	return &Error{Kind: KindNetwork, Message: orDefault(message, "Network error"), Cause: cause}
}

// NewServer builds a server error. A zero status defaults to 500.
func NewServer(message string, statusCode int) *Error {
	if statusCode == 0 {
		statusCode = 500
	}
	return &Error{Kind: KindServer, Message: orDefault(message, "Internal server error"), StatusCode: statusCode}
}

// NewParse builds a parse error keeping the raw payload for diagnostics.
func NewParse(message, rawResponse string) *Error {
	return &Error{Kind: KindParse, Message: orDefault(message, "Failed to parse response"), RawResponse: rawResponse}
}

// NewGeneric builds an unclassified error.
func NewGeneric(message string, statusCode int, cause error) *Error {
	return &Error{Kind: KindGeneric, Message: orDefault(message, "Unknown error"), StatusCode: statusCode, Cause: cause}
}

func cloneDetails(in map[string]any) map[string]any {
	if in == nil {
		return nil
	}
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
