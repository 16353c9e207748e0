package errors

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyByStatus_Table(t *testing.T) {
	t.Parallel()
	details := map[string]any{"field": "content"}
	cases := []struct {
		status int
		kind   Kind
	}{
		{400, KindValidation},
		{401, KindAuthentication},
		{403, KindAuthentication},
		{404, KindNotFound},
		{408, KindTimeout},
		{429, KindRateLimit},
		{500, KindServer},
		{502, KindServer},
		{503, KindServer},
		{504, KindServer},
		{418, KindGeneric},
		{200, KindGeneric},
		{501, KindGeneric},
		{0, KindGeneric},
	}
	for _, c := range cases {
		got := ClassifyByStatus(c.status, "boom", details)
		require.NotNil(t, got, "status %d", c.status)
		assert.Equal(t, c.kind, got.Kind, "status %d", c.status)
		assert.Equal(t, "boom", got.Message, "status %d", c.status)
	}
}

func TestClassifyByStatus_PreservesFields(t *testing.T) {
	t.Parallel()

	v := ClassifyByStatus(400, "bad input", map[string]any{"field": "query"})
	assert.Equal(t, map[string]any{"field": "query"}, v.Details)
	assert.Equal(t, 400, v.StatusCode)

	a := ClassifyByStatus(403, "forbidden", nil)
	assert.Equal(t, 403, a.StatusCode)

	s := ClassifyByStatus(503, "down", nil)
	assert.Equal(t, 503, s.StatusCode)

	g := ClassifyByStatus(418, "teapot", nil)
	assert.Equal(t, 418, g.StatusCode)

	nf := ClassifyByStatus(404, "gone", map[string]any{"resourceType": "memory", "resourceId": "m1"})
	assert.Equal(t, "memory", nf.ResourceType)
	assert.Equal(t, "m1", nf.ResourceID)
	assert.Equal(t, "gone", nf.Message)
}

func TestClassifyByStatus_TimeoutAndRateLimitDetails(t *testing.T) {
	t.Parallel()

	assert.Equal(t, DefaultTimeoutMillis, ClassifyByStatus(408, "slow", nil).TimeoutMillis)
	assert.Equal(t, 5000, ClassifyByStatus(408, "slow", map[string]any{"timeoutMillis": float64(5000)}).TimeoutMillis)
	assert.Equal(t, 7000, ClassifyByStatus(408, "slow", map[string]any{"timeoutMillis": json.Number("7000")}).TimeoutMillis)

	assert.Equal(t, 0, ClassifyByStatus(429, "slow down", nil).RetryAfterSeconds)
	assert.Equal(t, 12, ClassifyByStatus(429, "slow down", map[string]any{"retryAfterSeconds": float64(12)}).RetryAfterSeconds)
	assert.Equal(t, 3, ClassifyByStatus(429, "slow down", map[string]any{"retryAfterSeconds": "3"}).RetryAfterSeconds)
	assert.Equal(t, 0, ClassifyByStatus(429, "slow down", map[string]any{"retryAfterSeconds": "soon"}).RetryAfterSeconds)
}

func TestClassifyByStatus_Deterministic(t *testing.T) {
	t.Parallel()
	details := map[string]any{"retryAfterSeconds": float64(4), "timeoutMillis": float64(10)}
	for _, status := range []int{400, 401, 403, 404, 408, 429, 500, 502, 503, 504, 299, -1} {
		first := ClassifyByStatus(status, "m", details)
		second := ClassifyByStatus(status, "m", details)
		assert.Equal(t, first, second, "status %d", status)
	}
}

func TestClassifyByStatus_DoesNotAliasDetails(t *testing.T) {
	t.Parallel()
	details := map[string]any{"field": "content"}
	e := ClassifyByStatus(400, "bad", details)
	details["field"] = "changed"
	assert.Equal(t, "content", e.Details["field"])
}

func TestClassifyByStatus_KeepsEmptyDetails(t *testing.T) {
	t.Parallel()
	e := ClassifyByStatus(400, "bad", map[string]any{})
	require.NotNil(t, e.Details)
	assert.Empty(t, e.Details)
	assert.Nil(t, ClassifyByStatus(400, "bad", nil).Details)
}

func TestParseRetryAfter(t *testing.T) {
	t.Parallel()
	cases := []struct {
		in   string
		want int
		ok   bool
	}{
		{"", 0, false},
		{"30", 30, true},
		{" 5 ", 5, true},
		{"-1", 0, false},
		{"Wed, 21 Oct 2015 07:28:00 GMT", 0, false},
	}
	for _, c := range cases {
		got, ok := ParseRetryAfter(c.in)
		assert.Equal(t, c.want, got, c.in)
		assert.Equal(t, c.ok, ok, c.in)
	}
}
