package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/Hypersave-AI/hypersave-sdk/internal/types"
)

// GetProfile returns the learned profile of the effective user.
func GetProfile(ctx context.Context, d *Dispatcher, userID string) (*types.ProfileResponse, error) {
	return Execute[types.ProfileResponse](ctx, d, Call{
		Operation: "get_profile",
		Method:    http.MethodGet,
		Path:      "/v1/profile",
		UserID:    userID,
	})
}

// UpdateProfile changes profile fields of the effective user.
func UpdateProfile(ctx context.Context, d *Dispatcher, req types.UpdateProfileRequest, userID string) (*types.ProfileResponse, error) {
	return Execute[types.ProfileResponse](ctx, d, Call{
		Operation: "update_profile",
		Method:    http.MethodPut,
		Path:      "/v1/profile",
		Body:      req,
		UserID:    userID,
	})
}

// GetGraph returns the knowledge graph, optionally centred on an entity.
func GetGraph(ctx context.Context, d *Dispatcher, req types.GraphRequest, userID string) (*types.GraphResponse, error) {
	if err := types.ValidateNonNegative(req.Depth, "depth"); err != nil {
		return nil, err
	}
	if err := types.ValidateNonNegative(req.Limit, "limit"); err != nil {
		return nil, err
	}
	q := url.Values{}
	setString(q, "entity", req.Entity)
	setInt(q, "depth", req.Depth)
	setInt(q, "limit", req.Limit)
	return Execute[types.GraphResponse](ctx, d, Call{
		Operation: "get_graph",
		Method:    http.MethodGet,
		Path:      withQuery("/v1/graph", q),
		UserID:    firstNonEmpty(userID, req.UserID),
	})
}

// Remind schedules a reminder.
func Remind(ctx context.Context, d *Dispatcher, req types.RemindRequest, userID string) (*types.ReminderResponse, error) {
	if err := types.ValidateRequired(req.Message, "message"); err != nil {
		return nil, err
	}
	return Execute[types.ReminderResponse](ctx, d, Call{
		Operation: "remind",
		Method:    http.MethodPost,
		Path:      "/v1/remind",
		Body:      req,
		UserID:    userID,
	})
}

// ListReminders returns the pending reminders of the effective user.
func ListReminders(ctx context.Context, d *Dispatcher, userID string) (*types.RemindersResponse, error) {
	return Execute[types.RemindersResponse](ctx, d, Call{
		Operation: "list_reminders",
		Method:    http.MethodGet,
		Path:      "/v1/remind",
		UserID:    userID,
	})
}

// GetUsage reports plan consumption for the API key.
func GetUsage(ctx context.Context, d *Dispatcher, userID string) (*types.UsageResponse, error) {
	return Execute[types.UsageResponse](ctx, d, Call{
		Operation: "get_usage",
		Method:    http.MethodGet,
		Path:      "/v1/usage",
		UserID:    userID,
	})
}

// Health probes the service.
func Health(ctx context.Context, d *Dispatcher) (*types.HealthResponse, error) {
	return Execute[types.HealthResponse](ctx, d, Call{
		Operation: "health",
		Method:    http.MethodGet,
		Path:      "/health",
	})
}
