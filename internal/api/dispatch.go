package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	hserrors "github.com/Hypersave-AI/hypersave-sdk/internal/errors"
)

// DefaultTimeout bounds a single call when the caller configures none.
const DefaultTimeout = 30 * time.Second

// errCallTimeout is the cancellation cause installed on the per-call
// context; it distinguishes our own timer from a parent deadline.
var errCallTimeout = errors.New("hypersave: call timeout elapsed")

// Settings configures a Dispatcher. Settings are copied at construction.
type Settings struct {
	HTTPClient    HTTPClient
	BaseURL       string
	APIKey        string
	Timeout       time.Duration
	DefaultUserID string
	UserAgent     string
	Logger        *zerolog.Logger
}

// Dispatcher performs every network exchange of the SDK. It is immutable
// and safe for concurrent use.
type Dispatcher struct {
	http          HTTPClient
	baseURL       string
	apiKey        string
	timeout       time.Duration
	defaultUserID string
	userAgent     string
	logger        *zerolog.Logger
}

// NewDispatcher returns a Dispatcher for s. Zero values fall back to
// http.DefaultClient, DefaultTimeout and a disabled logger.
func NewDispatcher(s Settings) *Dispatcher {
	d := &Dispatcher{
		http:          s.HTTPClient,
		baseURL:       strings.TrimRight(s.BaseURL, "/"),
		apiKey:        s.APIKey,
		timeout:       s.Timeout,
		defaultUserID: s.DefaultUserID,
		userAgent:     s.UserAgent,
		logger:        s.Logger,
	}
	if d.http == nil {
		d.http = http.DefaultClient
	}
	if d.timeout <= 0 {
		d.timeout = DefaultTimeout
	}
	if d.logger == nil {
		nop := zerolog.Nop()
		d.logger = &nop
	}
	return d
}

// BaseURL returns the normalized base URL.
func (d *Dispatcher) BaseURL() string { return d.baseURL }

// Timeout returns the per-call timeout.
func (d *Dispatcher) Timeout() time.Duration { return d.timeout }

// DefaultUserID returns the configured default user id.
func (d *Dispatcher) DefaultUserID() string { return d.defaultUserID }

// Execute performs call and decodes the success body into a new T.
func Execute[T any](ctx context.Context, d *Dispatcher, call Call) (*T, error) {
	var out T
	if err := d.Do(ctx, call, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Do performs exactly one HTTP exchange for call. On success the JSON body
// is decoded into out (which may be nil to discard it). Every failure is
// returned as a *hserrors.Error.
func (d *Dispatcher) Do(ctx context.Context, call Call, out any) error {
	requestID := uuid.NewString()
	start := time.Now()

	callCtx, cancel := context.WithTimeoutCause(ctx, d.timeout, errCallTimeout)
	defer cancel()

	status, err := d.roundTrip(callCtx, call, requestID, out)

	var hsErr *hserrors.Error
	if err != nil {
		hsErr = d.translate(callCtx, err, requestID)
	}
	d.observe(call, requestID, status, time.Since(start), hsErr)
	if hsErr != nil {
		return hsErr
	}
	return nil
}

// transportError marks failures of the HTTP exchange itself (dial, TLS,
// connection reset, body read) as opposed to local programming errors.
type transportError struct{ err error }

func (e *transportError) Error() string { return e.err.Error() }
func (e *transportError) Unwrap() error { return e.err }

func (d *Dispatcher) roundTrip(ctx context.Context, call Call, requestID string, out any) (int, error) {
	req, err := d.newRequest(ctx, call, requestID)
	if err != nil {
		return 0, err
	}

	resp, err := d.http.Do(req)
	if err != nil {
		return 0, &transportError{err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, &transportError{err: err}
	}
	if err := handleResponse(resp, body, out); err != nil {
		err.RequestID = requestID
		return resp.StatusCode, err
	}
	return resp.StatusCode, nil
}

func (d *Dispatcher) newRequest(ctx context.Context, call Call, requestID string) (*http.Request, error) {
	if !supportedMethod(call.Method) {
		return nil, fmt.Errorf("unsupported method %q", call.Method)
	}
	if !strings.HasPrefix(call.Path, "/") {
		return nil, fmt.Errorf("path %q must begin with /", call.Path)
	}

	var body io.Reader
	if call.Body != nil {
		payload, err := json.Marshal(call.Body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, call.Method, d.baseURL+call.Path, body)
	if err != nil {
		return nil, err
	}
	req.Header = buildHeaders(d.apiKey, d.userAgent, resolveUserID(call, d.defaultUserID), requestID)
	return req, nil
}

// translate is the single point where raw failures become SDK errors. An
// *hserrors.Error found in the chain is returned as is; only errors created
// here get requestID.
func (d *Dispatcher) translate(ctx context.Context, err error, requestID string) *hserrors.Error {
	var hsErr *hserrors.Error
	if errors.As(err, &hsErr) && hsErr != nil {
		return hsErr
	}
	e := d.classifyFailure(ctx, err)
	e.RequestID = requestID
	return e
}

func (d *Dispatcher) classifyFailure(ctx context.Context, err error) *hserrors.Error {
	timeoutMillis := int(d.timeout / time.Millisecond)
	switch {
	case errors.Is(context.Cause(ctx), errCallTimeout),
		errors.Is(err, context.DeadlineExceeded),
		isNetTimeout(err):
		e := hserrors.NewTimeout(timeoutMillis, "")
		e.Cause = err
		return e
	case errors.Is(err, context.Canceled):
		return hserrors.NewGeneric("Request canceled", 0, err)
	}

	var te *transportError
	if errors.As(err, &te) {
		return hserrors.NewNetwork(transportMessage(te.err), te.err)
	}
	return hserrors.NewGeneric(err.Error(), 0, err)
}

func isNetTimeout(err error) bool {
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

// transportMessage strips the method/URL prefix that *url.Error adds.
func transportMessage(err error) string {
	var ue *url.Error
	if errors.As(err, &ue) && ue.Err != nil {
		return ue.Err.Error()
	}
	return err.Error()
}

func (d *Dispatcher) observe(call Call, requestID string, status int, elapsed time.Duration, err *hserrors.Error) {
	outcome := outcomeOK
	if err != nil {
		outcome = err.Kind.String()
	}
	requestsTotal.WithLabelValues(call.Operation, outcome).Inc()
	requestDuration.WithLabelValues(call.Operation).Observe(elapsed.Seconds())

	ev := d.logger.Debug().
		Str("operation", call.Operation).
		Str("method", call.Method).
		Str("path", call.Path).
		Str("request_id", requestID).
		Int("status_code", status).
		Dur("elapsed", elapsed)
	if err != nil {
		ev.Str("error_kind", err.Kind.String()).Err(err).Msg("hypersave request failed")
		return
	}
	ev.Msg("hypersave request completed")
}

// ------------------------------
// Response handling
// ------------------------------

// envelope is the part of every response body the dispatcher inspects.
type envelope struct {
	Success json.RawMessage `json:"success"`
	Error   json.RawMessage `json:"error"`
	Message json.RawMessage `json:"message"`
	Details json.RawMessage `json:"details"`
}

// failed reports an explicit "success": false. Any other value, including
// a missing field or a non-boolean, does not mark a failure.
func (env envelope) failed() bool {
	return string(bytes.TrimSpace(env.Success)) == "false"
}

func handleResponse(resp *http.Response, body []byte, out any) *hserrors.Error {
	status := resp.StatusCode
	ok := status >= 200 && status < 300

	if !isJSONContentType(resp.Header.Get("Content-Type")) {
		text := string(body)
		if !ok {
			msg := strings.TrimSpace(text)
			if msg == "" {
				msg = http.StatusText(status)
			}
			return hserrors.ClassifyByStatus(status, msg, retryAfterDetails(resp, nil))
		}
		return hserrors.NewParse("Expected JSON response", text)
	}

	env, err := parseEnvelope(body)
	if err != nil {
		if !ok {
			msg := strings.TrimSpace(string(body))
			if msg == "" {
				msg = http.StatusText(status)
			}
			return hserrors.ClassifyByStatus(status, msg, retryAfterDetails(resp, nil))
		}
		e := hserrors.NewParse("Invalid JSON response", string(body))
		e.Cause = err
		return e
	}

	if !ok || env.failed() {
		details := decodeDetails(env.Details)
		return hserrors.ClassifyByStatus(status, envelopeMessage(env), retryAfterDetails(resp, details))
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		e := hserrors.NewParse("Response does not match expected shape", string(body))
		e.Cause = err
		return e
	}
	return nil
}

func isJSONContentType(ct string) bool {
	if ct == "" {
		return false
	}
	media, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return strings.Contains(strings.ToLower(ct), "application/json")
	}
	return media == "application/json" || strings.HasSuffix(media, "+json")
}

// parseEnvelope fails only for syntactically invalid JSON. Valid bodies that
// are not objects yield an empty envelope.
func parseEnvelope(body []byte) (envelope, error) {
	var env envelope
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return env, errors.New("empty JSON body")
	}
	if !json.Valid(trimmed) {
		return env, errors.New("malformed JSON body")
	}
	if trimmed[0] != '{' {
		return env, nil
	}
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return envelope{}, err
	}
	return env, nil
}

// envelopeMessage resolves the user-facing message: error, then message,
// then a fixed fallback.
func envelopeMessage(env envelope) string {
	if s := rawText(env.Error); s != "" {
		return s
	}
	if s := rawText(env.Message); s != "" {
		return s
	}
	return "Request failed"
}

// rawText reads a JSON string, or the "message" field of a JSON object.
func rawText(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var obj struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil {
		return obj.Message
	}
	return ""
}

func decodeDetails(raw json.RawMessage) map[string]any {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err == nil {
		return m
	}
	var v any
	if err := json.Unmarshal(raw, &v); err == nil {
		return map[string]any{"value": v}
	}
	return nil
}

// retryAfterDetails fills retryAfterSeconds from the Retry-After header of a
// 429 when the body did not supply it. details is never mutated.
func retryAfterDetails(resp *http.Response, details map[string]any) map[string]any {
	if resp.StatusCode != http.StatusTooManyRequests {
		return details
	}
	if _, present := details["retryAfterSeconds"]; present {
		return details
	}
	secs, ok := hserrors.ParseRetryAfter(resp.Header.Get("Retry-After"))
	if !ok {
		return details
	}
	merged := make(map[string]any, len(details)+1)
	for k, v := range details {
		merged[k] = v
	}
	merged["retryAfterSeconds"] = secs
	return merged
}
