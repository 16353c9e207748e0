package hypersave

import (
	"net/http"
	"net/http/httputil"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

const redacted = "[REDACTED]"

// debugTransport logs full request/response dumps at debug level.
//
// Enable with WithDebugLogging(true) or by setting HYPERSAVE_DEBUG=true (or
// DEBUG=true). The API key is replaced by [REDACTED] in every dump; bodies
// are logged as-is and may contain user data.
type debugTransport struct {
	base   http.RoundTripper
	secret string
	logger *zerolog.Logger
}

func (dt *debugTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if reqDump, err := httputil.DumpRequestOut(req, true); err == nil {
		dt.logger.Debug().Str("method", req.Method).Str("url", req.URL.String()).Str("request_dump", dt.scrub(reqDump)).Msg("HTTP request")
	}

	resp, err := dt.base.RoundTrip(req)
	if err != nil {
		dt.logger.Error().Err(err).Str("method", req.Method).Str("url", req.URL.String()).Msg("HTTP request failed")
		return nil, err
	}

	if respDump, err := httputil.DumpResponse(resp, true); err == nil {
		dt.logger.Debug().Str("method", req.Method).Str("url", req.URL.String()).Int("status_code", resp.StatusCode).Str("response_dump", dt.scrub(respDump)).Msg("HTTP response")
	}
	return resp, nil
}

func (dt *debugTransport) scrub(dump []byte) string {
	if dt.secret == "" {
		return string(dump)
	}
	return strings.ReplaceAll(string(dump), dt.secret, redacted)
}

// installDebugTransport wraps the client's transport once.
func (c *Client) installDebugTransport() {
	if _, ok := c.http.Transport.(*debugTransport); ok {
		return
	}
	base := c.http.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	c.http.Transport = &debugTransport{base: base, secret: c.apiKey, logger: c.logger}
}

// debugLoggingRequested reports whether HYPERSAVE_DEBUG=true or DEBUG=true
// is set in the environment.
func debugLoggingRequested() bool {
	return os.Getenv("HYPERSAVE_DEBUG") == "true" || os.Getenv("DEBUG") == "true"
}
