package hypersave

// This file defines functional options that configure the Client during
// construction, plus the per-call options accepted by every method.

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Option configures a Client during construction in New.
//
// A failing option aborts New with a validation error.
type Option func(*Client) error

// WithBaseURL points the client at a different API host. Trailing slashes are
// removed.
func WithBaseURL(raw string) Option {
	return func(c *Client) error {
		raw = strings.TrimSpace(raw)
		u, err := url.Parse(raw)
		if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
			return fmt.Errorf("invalid base URL %q", raw)
		}
		c.baseURL = strings.TrimRight(raw, "/")
		return nil
	}
}

// WithTimeout sets the per-call timeout. The value must be greater than zero.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) error {
		if d <= 0 {
			return fmt.Errorf("timeout must be > 0")
		}
		c.timeout = d
		return nil
	}
}

// WithDefaultUserID sets the user id sent when neither the call nor its body
// names one.
func WithDefaultUserID(userID string) Option {
	return func(c *Client) error {
		c.defaultUserID = strings.TrimSpace(userID)
		return nil
	}
}

// WithHTTPClient injects a custom *http.Client, useful for custom TLS,
// proxies or tracing transports. The client is copied; its Timeout should
// be left zero since the SDK enforces its own per-call timeout.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) error {
		if hc == nil {
			return fmt.Errorf("nil http client")
		}
		cp := *hc
		c.http = &cp
		return nil
	}
}

// WithDebugLogging logs every request/response dump at debug level when
// enabled is true. The API key is redacted from dumps, but bodies are not;
// do not enable in production.
func WithDebugLogging(enabled bool) Option {
	return func(c *Client) error {
		c.debug = enabled
		return nil
	}
}

// WithLogger sets the logger for per-call and debug output. Without it the
// SDK logs nothing unless debug logging is on, which uses the global logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) error {
		c.logger = &l
		return nil
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) error {
		c.userAgent = ua
		return nil
	}
}

// --------------------------------------------------------------------
// Per-call options
// --------------------------------------------------------------------

// CallOption adjusts a single call.
type CallOption func(*callOptions)

type callOptions struct {
	userID string
}

// AsUser sends the call on behalf of userID, overriding the user id in the
// request body and the client default.
func AsUser(userID string) CallOption {
	return func(o *callOptions) { o.userID = userID }
}

func callUser(opts []CallOption) string {
	var o callOptions
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o.userID
}
