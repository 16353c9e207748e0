package api

import (
	"net/http"

	"github.com/Hypersave-AI/hypersave-sdk/internal/types"
)

// Header names sent with every call.
const (
	HeaderAPIKey    = "X-API-Key"
	HeaderUserID    = "X-User-ID"
	HeaderRequestID = "X-Request-ID"
)

// HTTPClient interface for dependency injection
type HTTPClient = types.HTTPClient

// Call describes one request handed to the Dispatcher.
type Call struct {
	// Operation names the SDK method; used only for logs and metrics.
	Operation string
	Method    string
	Path      string // relative, must begin with "/"
	Body      any    // JSON-encoded when non-nil
	// UserID is the per-call override for the user header.
	UserID string
}

func supportedMethod(m string) bool {
	switch m {
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete:
		return true
	}
	return false
}

// resolveUserID returns the effective user id of a call: the explicit
// override, then the user id carried by the body, then the default.
func resolveUserID(call Call, defaultUserID string) string {
	if call.UserID != "" {
		return call.UserID
	}
	if id := bodyUserID(call.Body); id != "" {
		return id
	}
	return defaultUserID
}

func bodyUserID(body any) string {
	switch b := body.(type) {
	case nil:
		return ""
	case types.UserScoped:
		return b.BodyUserID()
	case map[string]any:
		if s, ok := b["userId"].(string); ok {
			return s
		}
	case map[string]string:
		return b["userId"]
	}
	return ""
}

// buildHeaders derives the request headers from the dispatcher settings and
// the call. It returns a fresh header map on every invocation.
func buildHeaders(apiKey, userAgent, userID, requestID string) http.Header {
	h := make(http.Header, 6)
	h.Set("Content-Type", "application/json")
	h.Set("Accept", "application/json")
	h.Set(HeaderAPIKey, apiKey)
	if userAgent != "" {
		h.Set("User-Agent", userAgent)
	}
	if requestID != "" {
		h.Set(HeaderRequestID, requestID)
	}
	if userID != "" {
		h.Set(HeaderUserID, userID)
	}
	return h
}
