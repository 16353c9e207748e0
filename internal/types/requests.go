package types

import "time"

// ------------------------------
// Request Types
// ------------------------------

// UserScope is embedded by request bodies that may name the user they act
// for. The value is serialized as "userId" and also used for the user
// header when no per-call override is given.
type UserScope struct {
	UserID string `json:"userId,omitempty"`
}

// BodyUserID implements UserScoped.
func (u UserScope) BodyUserID() string { return u.UserID }

// SaveRequest holds parameters for storing a new memory
type SaveRequest struct {
	UserScope
	Content  string         `json:"content"`
	Title    string         `json:"title,omitempty"`
	Type     string         `json:"type,omitempty"`
	Source   string         `json:"source,omitempty"`
	Tags     []string       `json:"tags,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
	// Async asks the server to process the save in the background; poll
	// GetSaveStatus with the returned id.
	Async bool `json:"async,omitempty"`
}

// AskRequest holds a natural-language question answered from memory
type AskRequest struct {
	UserScope
	Query          string `json:"query"`
	Context        string `json:"context,omitempty"`
	MaxSources     int    `json:"maxSources,omitempty"`
	IncludeSources bool   `json:"includeSources,omitempty"`
}

// SearchRequest holds semantic search parameters
type SearchRequest struct {
	UserScope
	Query     string   `json:"query"`
	Limit     int      `json:"limit,omitempty"`
	Threshold float64  `json:"threshold,omitempty"`
	Types     []string `json:"types,omitempty"`
	Tags      []string `json:"tags,omitempty"`
}

// QueryRequest holds a structured query over memories
type QueryRequest struct {
	UserScope
	Query   string         `json:"query"`
	Mode    string         `json:"mode,omitempty"`
	Filters map[string]any `json:"filters,omitempty"`
	Limit   int            `json:"limit,omitempty"`
}

// ListMemoriesRequest holds pagination parameters for listing memories
type ListMemoriesRequest struct {
	UserScope
	Limit  int
	Offset int
	Type   string
}

// UpdateMemoryRequest holds the mutable fields of a memory
type UpdateMemoryRequest struct {
	UserScope
	Content  string         `json:"content,omitempty"`
	Title    string         `json:"title,omitempty"`
	Tags     []string       `json:"tags,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// UpdateProfileRequest holds profile fields to change
type UpdateProfileRequest struct {
	UserScope
	Name        string         `json:"name,omitempty"`
	Preferences map[string]any `json:"preferences,omitempty"`
	Facts       []string       `json:"facts,omitempty"`
}

// GraphRequest holds knowledge-graph traversal parameters
type GraphRequest struct {
	UserScope
	Entity string
	Depth  int
	Limit  int
}

// RemindRequest schedules a reminder
type RemindRequest struct {
	UserScope
	Message    string     `json:"message"`
	RemindAt   *time.Time `json:"remindAt,omitempty"`
	Context    string     `json:"context,omitempty"`
	Recurrence string     `json:"recurrence,omitempty"`
}

// ChunkSearchRequest holds v7 chunk-level search parameters
type ChunkSearchRequest struct {
	UserScope
	Query       string   `json:"query"`
	Limit       int      `json:"limit,omitempty"`
	MinScore    float64  `json:"minScore,omitempty"`
	DocumentIDs []string `json:"documentIds,omitempty"`
	Rerank      bool     `json:"rerank,omitempty"`
}

// IngestRequest holds a v7 document ingestion job. Exactly one of Content or
// URL must be set.
type IngestRequest struct {
	UserScope
	Content         string         `json:"content,omitempty"`
	URL             string         `json:"url,omitempty"`
	Title           string         `json:"title,omitempty"`
	MimeType        string         `json:"mimeType,omitempty"`
	ChunkSize       int            `json:"chunkSize,omitempty"`
	ChunkOverlap    int            `json:"chunkOverlap,omitempty"`
	ExtractEntities bool           `json:"extractEntities,omitempty"`
	Metadata        map[string]any `json:"metadata,omitempty"`
}

// ExtractEntitiesRequest holds text to run v7 entity extraction on
type ExtractEntitiesRequest struct {
	UserScope
	Text  string   `json:"text"`
	Types []string `json:"types,omitempty"`
	Save  bool     `json:"save,omitempty"`
}

// ListEntitiesRequest holds pagination parameters for stored entities
type ListEntitiesRequest struct {
	UserScope
	Type   string
	Limit  int
	Offset int
}
