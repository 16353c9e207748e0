package hsfake

import (
	"context"
	"net/http"
)

type bodyKey struct{}

// withBody stashes the decoded request body since record consumes r.Body.
func withBody(ctx context.Context, body map[string]any) context.Context {
	return context.WithValue(ctx, bodyKey{}, body)
}

func bodyFrom(r *http.Request) map[string]any {
	if b, ok := r.Context().Value(bodyKey{}).(map[string]any); ok && b != nil {
		return b
	}
	return map[string]any{}
}
