package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/Hypersave-AI/hypersave-sdk/internal/types"
)

// Enhanced v7 surface.

// SearchChunks runs chunk-level retrieval over ingested documents.
func SearchChunks(ctx context.Context, d *Dispatcher, req types.ChunkSearchRequest, userID string) (*types.ChunkSearchResponse, error) {
	if err := types.ValidateRequired(req.Query, "query"); err != nil {
		return nil, err
	}
	if err := types.ValidateNonNegative(req.Limit, "limit"); err != nil {
		return nil, err
	}
	return Execute[types.ChunkSearchResponse](ctx, d, Call{
		Operation: "v7_search_chunks",
		Method:    http.MethodPost,
		Path:      "/api/v7/search/chunks",
		Body:      req,
		UserID:    userID,
	})
}

// Ingest submits a document for chunking and indexing.
func Ingest(ctx context.Context, d *Dispatcher, req types.IngestRequest, userID string) (*types.IngestResponse, error) {
	if err := types.ValidateOneOf(req.Content, req.URL, "content", "url"); err != nil {
		return nil, err
	}
	if err := types.ValidateNonNegative(req.ChunkSize, "chunkSize"); err != nil {
		return nil, err
	}
	if err := types.ValidateNonNegative(req.ChunkOverlap, "chunkOverlap"); err != nil {
		return nil, err
	}
	return Execute[types.IngestResponse](ctx, d, Call{
		Operation: "v7_ingest",
		Method:    http.MethodPost,
		Path:      "/api/v7/ingest",
		Body:      req,
		UserID:    userID,
	})
}

// GetIngestStatus reports the progress of an ingestion job.
func GetIngestStatus(ctx context.Context, d *Dispatcher, jobID, userID string) (*types.IngestStatusResponse, error) {
	if err := types.ValidateRequired(jobID, "jobId"); err != nil {
		return nil, err
	}
	return Execute[types.IngestStatusResponse](ctx, d, Call{
		Operation: "v7_ingest_status",
		Method:    http.MethodGet,
		Path:      "/api/v7/ingest/status/" + url.PathEscape(jobID),
		UserID:    userID,
	})
}

// ExtractEntities runs entity and relation extraction over text.
func ExtractEntities(ctx context.Context, d *Dispatcher, req types.ExtractEntitiesRequest, userID string) (*types.ExtractEntitiesResponse, error) {
	if err := types.ValidateRequired(req.Text, "text"); err != nil {
		return nil, err
	}
	return Execute[types.ExtractEntitiesResponse](ctx, d, Call{
		Operation: "v7_extract_entities",
		Method:    http.MethodPost,
		Path:      "/api/v7/extract/entities",
		Body:      req,
		UserID:    userID,
	})
}

// ListEntities pages through stored entities.
func ListEntities(ctx context.Context, d *Dispatcher, req types.ListEntitiesRequest, userID string) (*types.ListEntitiesResponse, error) {
	if err := types.ValidateNonNegative(req.Limit, "limit"); err != nil {
		return nil, err
	}
	if err := types.ValidateNonNegative(req.Offset, "offset"); err != nil {
		return nil, err
	}
	q := url.Values{}
	setString(q, "type", req.Type)
	setInt(q, "limit", req.Limit)
	setInt(q, "offset", req.Offset)
	return Execute[types.ListEntitiesResponse](ctx, d, Call{
		Operation: "v7_list_entities",
		Method:    http.MethodGet,
		Path:      withQuery("/api/v7/entities", q),
		UserID:    firstNonEmpty(userID, req.UserID),
	})
}
