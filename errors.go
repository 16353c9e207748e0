package hypersave

import (
	hserrors "github.com/Hypersave-AI/hypersave-sdk/internal/errors"
)

// Error is returned by every failing Client method. Branch on Kind, or use
// the Is* helpers below.
type Error = hserrors.Error

// ErrorKind is the category of an Error.
type ErrorKind = hserrors.Kind

// Error kinds.
const (
	KindAuthentication = hserrors.KindAuthentication
	KindValidation     = hserrors.KindValidation
	KindNotFound       = hserrors.KindNotFound
	KindRateLimit      = hserrors.KindRateLimit
	KindTimeout        = hserrors.KindTimeout
	KindNetwork        = hserrors.KindNetwork
	KindServer         = hserrors.KindServer
	KindParse          = hserrors.KindParse
	KindGeneric        = hserrors.KindGeneric
)

// IsKind reports whether err (or an error it wraps) is an *Error of kind k.
func IsKind(err error, k ErrorKind) bool { return hserrors.IsKind(err, k) }

// KindOf returns the kind of err, or "" if err did not come from the SDK.
func KindOf(err error) ErrorKind { return hserrors.KindOf(err) }

// AsError extracts the *Error from err's chain.
func AsError(err error) (*Error, bool) { return hserrors.As(err) }

// IsRetryable reports whether err is worth retrying later: rate limits,
// timeouts, network and server failures.
func IsRetryable(err error) bool {
	e, ok := hserrors.As(err)
	return ok && e.Retryable()
}

// IsAuthentication reports whether err is an authentication failure.
func IsAuthentication(err error) bool { return IsKind(err, KindAuthentication) }

// IsNotFound reports whether err is a not-found failure.
func IsNotFound(err error) bool { return IsKind(err, KindNotFound) }

// IsRateLimit reports whether err is a rate-limit failure.
func IsRateLimit(err error) bool { return IsKind(err, KindRateLimit) }

// IsTimeout reports whether err is a timeout.
func IsTimeout(err error) bool { return IsKind(err, KindTimeout) }

// ClassifyByStatus maps an HTTP status and message to an *Error the same
// way the client does for API responses.
func ClassifyByStatus(statusCode int, message string, details map[string]any) *Error {
	return hserrors.ClassifyByStatus(statusCode, message, details)
}
