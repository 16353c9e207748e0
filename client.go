package hypersave

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Hypersave-AI/hypersave-sdk/internal/api"
	hserrors "github.com/Hypersave-AI/hypersave-sdk/internal/errors"
)

// DefaultBaseURL is the production Hypersave API.
const DefaultBaseURL = "https://api.hypersave.io"

// DefaultTimeout bounds every call unless WithTimeout is given.
const DefaultTimeout = api.DefaultTimeout

// Version is reported in the User-Agent header.
const Version = "0.3.0"

// --------------------------------------------------------------------
// Client core
// --------------------------------------------------------------------

// Client talks to the Hypersave API. It is immutable after New returns and
// safe for concurrent use by multiple goroutines.
type Client struct {
	baseURL       string
	apiKey        string // sent as X-API-Key on every call
	timeout       time.Duration
	defaultUserID string
	userAgent     string
	debug         bool

	http   *http.Client
	logger *zerolog.Logger
	disp   *api.Dispatcher
}

// New constructs a Client for apiKey. An empty key fails immediately with an
// authentication error; no request is made.
func New(apiKey string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, hserrors.NewAuthentication("")
	}

	c := &Client{
		baseURL:   DefaultBaseURL,
		apiKey:    apiKey,
		timeout:   DefaultTimeout,
		userAgent: "hypersave-go/" + Version,
		http:      &http.Client{},
	}

	// Auto-enable debug via env variable without changing code.
	if debugLoggingRequested() {
		c.debug = true
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			if e, ok := hserrors.As(err); ok {
				return nil, e
			}
			ve := hserrors.NewValidation(err.Error(), nil)
			ve.Cause = err
			return nil, ve
		}
	}

	// Silent unless the caller passed a logger or asked for debug output.
	if c.logger == nil {
		if c.debug {
			c.logger = &log.Logger
		} else {
			nop := zerolog.Nop()
			c.logger = &nop
		}
	}
	if c.debug {
		c.installDebugTransport()
	}

	c.disp = api.NewDispatcher(api.Settings{
		HTTPClient:    c.http,
		BaseURL:       c.baseURL,
		APIKey:        c.apiKey,
		Timeout:       c.timeout,
		DefaultUserID: c.defaultUserID,
		UserAgent:     c.userAgent,
		Logger:        c.logger,
	})
	c.baseURL = c.disp.BaseURL()
	return c, nil
}

// BaseURL returns the API base URL with trailing slashes removed.
func (c *Client) BaseURL() string { return c.baseURL }

// Timeout returns the per-call timeout.
func (c *Client) Timeout() time.Duration { return c.timeout }

// DefaultUserID returns the user id sent when a call names none.
func (c *Client) DefaultUserID() string { return c.defaultUserID }

// --------------------------------------------------------------------
// Memory operations - delegated to internal/api
// --------------------------------------------------------------------

// Save stores content as a new memory.
func (c *Client) Save(ctx context.Context, req SaveRequest, opts ...CallOption) (*SaveResponse, error) {
	return api.Save(ctx, c.disp, req, callUser(opts))
}

// GetSaveStatus reports the progress of an asynchronous save.
func (c *Client) GetSaveStatus(ctx context.Context, saveID string, opts ...CallOption) (*SaveStatusResponse, error) {
	return api.GetSaveStatus(ctx, c.disp, saveID, callUser(opts))
}

// ListMemories pages through stored memories.
func (c *Client) ListMemories(ctx context.Context, req ListMemoriesRequest, opts ...CallOption) (*ListMemoriesResponse, error) {
	return api.ListMemories(ctx, c.disp, req, callUser(opts))
}

// GetMemory fetches a memory by id.
func (c *Client) GetMemory(ctx context.Context, memoryID string, opts ...CallOption) (*MemoryResponse, error) {
	return api.GetMemory(ctx, c.disp, memoryID, callUser(opts))
}

// UpdateMemory changes the content, title, tags or metadata of a memory.
func (c *Client) UpdateMemory(ctx context.Context, memoryID string, req UpdateMemoryRequest, opts ...CallOption) (*MemoryResponse, error) {
	return api.UpdateMemory(ctx, c.disp, memoryID, req, callUser(opts))
}

// DeleteMemory removes a memory by id.
func (c *Client) DeleteMemory(ctx context.Context, memoryID string, opts ...CallOption) (*DeleteResponse, error) {
	return api.DeleteMemory(ctx, c.disp, memoryID, callUser(opts))
}

// --------------------------------------------------------------------
// Retrieval operations
// --------------------------------------------------------------------

// Ask answers a question from the user's memories.
func (c *Client) Ask(ctx context.Context, req AskRequest, opts ...CallOption) (*AskResponse, error) {
	return api.Ask(ctx, c.disp, req, callUser(opts))
}

// Search runs a semantic search.
func (c *Client) Search(ctx context.Context, req SearchRequest, opts ...CallOption) (*SearchResponse, error) {
	return api.Search(ctx, c.disp, req, callUser(opts))
}

// Query runs a structured query.
func (c *Client) Query(ctx context.Context, req QueryRequest, opts ...CallOption) (*QueryResponse, error) {
	return api.Query(ctx, c.disp, req, callUser(opts))
}

// --------------------------------------------------------------------
// Profile, graph, reminders, usage
// --------------------------------------------------------------------

// GetProfile returns the learned profile of the effective user.
func (c *Client) GetProfile(ctx context.Context, opts ...CallOption) (*ProfileResponse, error) {
	return api.GetProfile(ctx, c.disp, callUser(opts))
}

// UpdateProfile changes profile fields of the effective user.
func (c *Client) UpdateProfile(ctx context.Context, req UpdateProfileRequest, opts ...CallOption) (*ProfileResponse, error) {
	return api.UpdateProfile(ctx, c.disp, req, callUser(opts))
}

// GetGraph returns the knowledge graph around an entity.
func (c *Client) GetGraph(ctx context.Context, req GraphRequest, opts ...CallOption) (*GraphResponse, error) {
	return api.GetGraph(ctx, c.disp, req, callUser(opts))
}

// Remind schedules a reminder.
func (c *Client) Remind(ctx context.Context, req RemindRequest, opts ...CallOption) (*ReminderResponse, error) {
	return api.Remind(ctx, c.disp, req, callUser(opts))
}

// ListReminders returns pending reminders.
func (c *Client) ListReminders(ctx context.Context, opts ...CallOption) (*RemindersResponse, error) {
	return api.ListReminders(ctx, c.disp, callUser(opts))
}

// GetUsage reports plan consumption.
func (c *Client) GetUsage(ctx context.Context, opts ...CallOption) (*UsageResponse, error) {
	return api.GetUsage(ctx, c.disp, callUser(opts))
}

// Health probes the service.
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	return api.Health(ctx, c.disp)
}

// --------------------------------------------------------------------
// v7 operations
// --------------------------------------------------------------------

// SearchChunks runs chunk-level retrieval over ingested documents.
func (c *Client) SearchChunks(ctx context.Context, req ChunkSearchRequest, opts ...CallOption) (*ChunkSearchResponse, error) {
	return api.SearchChunks(ctx, c.disp, req, callUser(opts))
}

// Ingest submits a document for chunking and indexing.
func (c *Client) Ingest(ctx context.Context, req IngestRequest, opts ...CallOption) (*IngestResponse, error) {
	return api.Ingest(ctx, c.disp, req, callUser(opts))
}

// GetIngestStatus reports the progress of an ingestion job.
func (c *Client) GetIngestStatus(ctx context.Context, jobID string, opts ...CallOption) (*IngestStatusResponse, error) {
	return api.GetIngestStatus(ctx, c.disp, jobID, callUser(opts))
}

// ExtractEntities runs entity and relation extraction over text.
func (c *Client) ExtractEntities(ctx context.Context, req ExtractEntitiesRequest, opts ...CallOption) (*ExtractEntitiesResponse, error) {
	return api.ExtractEntities(ctx, c.disp, req, callUser(opts))
}

// ListEntities pages through stored entities.
func (c *Client) ListEntities(ctx context.Context, req ListEntitiesRequest, opts ...CallOption) (*ListEntitiesResponse, error) {
	return api.ListEntities(ctx, c.disp, req, callUser(opts))
}
