package api

import (
	"context"
	"net/http"

	"github.com/Hypersave-AI/hypersave-sdk/internal/types"
)

// Ask answers a natural-language question from the user's memories.
func Ask(ctx context.Context, d *Dispatcher, req types.AskRequest, userID string) (*types.AskResponse, error) {
	if err := types.ValidateRequired(req.Query, "query"); err != nil {
		return nil, err
	}
	if err := types.ValidateNonNegative(req.MaxSources, "maxSources"); err != nil {
		return nil, err
	}
	return Execute[types.AskResponse](ctx, d, Call{
		Operation: "ask",
		Method:    http.MethodPost,
		Path:      "/v1/ask",
		Body:      req,
		UserID:    userID,
	})
}

// Search runs a semantic search over memories.
func Search(ctx context.Context, d *Dispatcher, req types.SearchRequest, userID string) (*types.SearchResponse, error) {
	if err := types.ValidateRequired(req.Query, "query"); err != nil {
		return nil, err
	}
	if err := types.ValidateNonNegative(req.Limit, "limit"); err != nil {
		return nil, err
	}
	return Execute[types.SearchResponse](ctx, d, Call{
		Operation: "search",
		Method:    http.MethodPost,
		Path:      "/v1/search",
		Body:      req,
		UserID:    userID,
	})
}

// Query runs a structured query over memories.
func Query(ctx context.Context, d *Dispatcher, req types.QueryRequest, userID string) (*types.QueryResponse, error) {
	if err := types.ValidateRequired(req.Query, "query"); err != nil {
		return nil, err
	}
	return Execute[types.QueryResponse](ctx, d, Call{
		Operation: "query",
		Method:    http.MethodPost,
		Path:      "/v1/query",
		Body:      req,
		UserID:    userID,
	})
}
