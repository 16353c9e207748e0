package errors

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// ClassifyByStatus maps an HTTP status, a user-facing message and the
// optional details object of an error envelope to an *Error.
//
// The mapping is total and has no side effects:
//   - 400 Validation (details kept)
//   - 401, 403 Authentication
//   - 404 NotFound
//   - 408 Timeout (details.timeoutMillis, default 30000)
//   - 429 RateLimit (details.retryAfterSeconds)
//   - 500, 502, 503, 504 Server
//   - anything else Generic
func ClassifyByStatus(statusCode int, message string, details map[string]any) *Error {
	switch statusCode {
	case 400:
		return NewValidation(message, details)
	case 401, 403:
		e := NewAuthentication(message)
		e.StatusCode = statusCode
		return e
	case 404:
		return NewNotFound(message, detailString(details, "resourceType"), detailString(details, "resourceId"))
	case 408:
		ms, ok := detailInt(details, "timeoutMillis")
		if !ok {
			ms = DefaultTimeoutMillis
		}
		return NewTimeout(ms, message)
	case 429:
		secs, _ := detailInt(details, "retryAfterSeconds")
		return NewRateLimit(message, secs)
	case 500, 502, 503, 504:
		return NewServer(message, statusCode)
	default:
		return NewGeneric(message, statusCode, nil)
	}
}

func detailString(details map[string]any, key string) string {
	if s, ok := details[key].(string); ok {
		return s
	}
	return ""
}

// detailInt reads an integer field that may have been decoded as any JSON
// number type or sent as a numeric string.
func detailInt(details map[string]any, key string) (int, bool) {
	v, ok := details[key]
	if !ok || v == nil {
		return 0, false
	}
	switch n := v.(type) {
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case float32:
		return floatToInt(float64(n))
	case float64:
		return floatToInt(n)
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i), true
		}
		if f, err := n.Float64(); err == nil {
			return floatToInt(f)
		}
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(n)); err == nil {
			return i, true
		}
	}
	return 0, false
}

func floatToInt(f float64) (int, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f > math.MaxInt32 || f < math.MinInt32 {
		return 0, false
	}
	return int(math.Ceil(f)), true
}

// ParseRetryAfter interprets a Retry-After header given in delta-seconds.
// HTTP-date values are not supported and yield (0, false).
func ParseRetryAfter(header string) (int, bool) {
	header = strings.TrimSpace(header)
	if header == "" {
		return 0, false
	}
	secs, err := strconv.Atoi(header)
	if err != nil || secs < 0 {
		return 0, false
	}
	return secs, true
}
