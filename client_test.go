package hypersave

import (
	"context"
	"net/http"
	"sync/atomic"
	"testing"
	"time"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func TestNew_EmptyAPIKey(t *testing.T) {
	var calls int32
	hc := &http.Client{Transport: roundTripFunc(func(*http.Request) (*http.Response, error) {
		atomic.AddInt32(&calls, 1)
		return nil, context.Canceled
	})}

	for _, key := range []string{"", "   "} {
		c, err := New(key, WithHTTPClient(hc))
		if c != nil {
			t.Fatalf("expected nil client for key %q", key)
		}
		if !IsAuthentication(err) {
			t.Fatalf("expected authentication error, got %v", err)
		}
		e, _ := AsError(err)
		if e.Message != "Invalid or missing API key" {
			t.Fatalf("message = %q", e.Message)
		}
	}
	if atomic.LoadInt32(&calls) != 0 {
		t.Fatalf("constructor must not perform I/O")
	}
}

func TestNew_Defaults(t *testing.T) {
	c, err := New("k")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if c.BaseURL() != DefaultBaseURL {
		t.Fatalf("base url = %q", c.BaseURL())
	}
	if c.Timeout() != 30*time.Second {
		t.Fatalf("timeout = %v", c.Timeout())
	}
	if c.DefaultUserID() != "" {
		t.Fatalf("default user = %q", c.DefaultUserID())
	}
	if c.userAgent != "hypersave-go/"+Version {
		t.Fatalf("user agent = %q", c.userAgent)
	}
}

func TestNew_InvalidOptionsAreValidationErrors(t *testing.T) {
	cases := map[string]Option{
		"zero timeout":     WithTimeout(0),
		"negative timeout": WithTimeout(-time.Second),
		"nil http client":  WithHTTPClient(nil),
		"empty base url":   WithBaseURL(""),
		"relative url":     WithBaseURL("/v1"),
		"bad scheme":       WithBaseURL("ftp://example.com"),
	}
	for name, opt := range cases {
		t.Run(name, func(t *testing.T) {
			c, err := New("k", opt)
			if c != nil || !IsKind(err, KindValidation) {
				t.Fatalf("expected validation error, got client=%v err=%v", c, err)
			}
		})
	}
}

func TestOptions_Apply(t *testing.T) {
	c, err := New("k",
		WithBaseURL("http://localhost:8080///"),
		WithTimeout(5*time.Second),
		WithDefaultUserID(" u1 "),
		WithUserAgent("agent/1"),
	)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if c.BaseURL() != "http://localhost:8080" {
		t.Fatalf("base url = %q", c.BaseURL())
	}
	if c.Timeout() != 5*time.Second {
		t.Fatalf("timeout = %v", c.Timeout())
	}
	if c.DefaultUserID() != "u1" {
		t.Fatalf("default user = %q", c.DefaultUserID())
	}
	if c.userAgent != "agent/1" {
		t.Fatalf("user agent = %q", c.userAgent)
	}
}

func TestWithHTTPClient_DoesNotMutateCaller(t *testing.T) {
	hc := &http.Client{}
	c, err := New("k", WithHTTPClient(hc), WithDebugLogging(true))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if hc.Transport != nil {
		t.Fatalf("caller's client was modified")
	}
	if _, ok := c.http.Transport.(*debugTransport); !ok {
		t.Fatalf("expected debugTransport on the copy")
	}
}

func TestCallUser_LastWins(t *testing.T) {
	if got := callUser(nil); got != "" {
		t.Fatalf("got %q", got)
	}
	if got := callUser([]CallOption{AsUser("a"), nil, AsUser("b")}); got != "b" {
		t.Fatalf("got %q", got)
	}
}
