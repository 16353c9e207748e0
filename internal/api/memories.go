package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Hypersave-AI/hypersave-sdk/internal/types"
)

// firstNonEmpty returns the first non-empty value.
func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// withQuery appends the non-empty values of q to path.
func withQuery(path string, q url.Values) string {
	if len(q) == 0 {
		return path
	}
	return path + "?" + q.Encode()
}

func setInt(q url.Values, key string, n int) {
	if n > 0 {
		q.Set(key, strconv.Itoa(n))
	}
}

func setString(q url.Values, key, v string) {
	if v != "" {
		q.Set(key, v)
	}
}

// Save stores new content as a memory.
func Save(ctx context.Context, d *Dispatcher, req types.SaveRequest, userID string) (*types.SaveResponse, error) {
	if err := types.ValidateRequired(req.Content, "content"); err != nil {
		return nil, err
	}
	return Execute[types.SaveResponse](ctx, d, Call{
		Operation: "save",
		Method:    http.MethodPost,
		Path:      "/v1/save",
		Body:      req,
		UserID:    userID,
	})
}

// GetSaveStatus reports the progress of an asynchronous save.
func GetSaveStatus(ctx context.Context, d *Dispatcher, saveID, userID string) (*types.SaveStatusResponse, error) {
	if err := types.ValidateRequired(saveID, "saveId"); err != nil {
		return nil, err
	}
	return Execute[types.SaveStatusResponse](ctx, d, Call{
		Operation: "save_status",
		Method:    http.MethodGet,
		Path:      "/v1/save/status/" + url.PathEscape(saveID),
		UserID:    userID,
	})
}

// ListMemories pages through stored memories.
func ListMemories(ctx context.Context, d *Dispatcher, req types.ListMemoriesRequest, userID string) (*types.ListMemoriesResponse, error) {
	if err := types.ValidateNonNegative(req.Limit, "limit"); err != nil {
		return nil, err
	}
	if err := types.ValidateNonNegative(req.Offset, "offset"); err != nil {
		return nil, err
	}
	q := url.Values{}
	setInt(q, "limit", req.Limit)
	setInt(q, "offset", req.Offset)
	setString(q, "type", req.Type)
	return Execute[types.ListMemoriesResponse](ctx, d, Call{
		Operation: "list_memories",
		Method:    http.MethodGet,
		Path:      withQuery("/v1/memories", q),
		UserID:    firstNonEmpty(userID, req.UserID),
	})
}

// GetMemory fetches one memory by id.
func GetMemory(ctx context.Context, d *Dispatcher, memoryID, userID string) (*types.MemoryResponse, error) {
	if err := types.ValidateRequired(memoryID, "memoryId"); err != nil {
		return nil, err
	}
	return Execute[types.MemoryResponse](ctx, d, Call{
		Operation: "get_memory",
		Method:    http.MethodGet,
		Path:      "/v1/memory/" + url.PathEscape(memoryID),
		UserID:    userID,
	})
}

// UpdateMemory replaces the mutable fields of a memory.
func UpdateMemory(ctx context.Context, d *Dispatcher, memoryID string, req types.UpdateMemoryRequest, userID string) (*types.MemoryResponse, error) {
	if err := types.ValidateRequired(memoryID, "memoryId"); err != nil {
		return nil, err
	}
	return Execute[types.MemoryResponse](ctx, d, Call{
		Operation: "update_memory",
		Method:    http.MethodPut,
		Path:      "/v1/memory/" + url.PathEscape(memoryID),
		Body:      req,
		UserID:    userID,
	})
}

// DeleteMemory removes a memory by id.
func DeleteMemory(ctx context.Context, d *Dispatcher, memoryID, userID string) (*types.DeleteResponse, error) {
	if err := types.ValidateRequired(memoryID, "memoryId"); err != nil {
		return nil, err
	}
	return Execute[types.DeleteResponse](ctx, d, Call{
		Operation: "delete_memory",
		Method:    http.MethodDelete,
		Path:      "/v1/memory/" + url.PathEscape(memoryID),
		UserID:    userID,
	})
}
