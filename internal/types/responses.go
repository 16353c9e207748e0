package types

// ------------------------------
// Response Types
// ------------------------------

// Every response embeds the success flag of the API envelope.

// SaveResponse acknowledges a save
type SaveResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id"`
	Status  string `json:"status,omitempty"`
	Message string `json:"message,omitempty"`
}

// SaveStatusResponse reports the progress of an async save
type SaveStatusResponse struct {
	Success  bool    `json:"success"`
	ID       string  `json:"id"`
	Status   string  `json:"status"`
	Progress float64 `json:"progress,omitempty"`
	MemoryID string  `json:"memoryId,omitempty"`
	Error    string  `json:"error,omitempty"`
}

// AskResponse carries a generated answer and its sources
type AskResponse struct {
	Success    bool     `json:"success"`
	Answer     string   `json:"answer"`
	Sources    []Source `json:"sources,omitempty"`
	Confidence float64  `json:"confidence,omitempty"`
}

// SearchResult is a Memory with its relevance score
type SearchResult struct {
	Memory
	Score float64 `json:"score"`
}

// SearchResponse wraps the /v1/search result
type SearchResponse struct {
	Success bool           `json:"success"`
	Results []SearchResult `json:"results"`
	Total   int            `json:"total"`
}

// QueryResponse wraps the /v1/query result
type QueryResponse struct {
	Success bool           `json:"success"`
	Results []SearchResult `json:"results"`
	Total   int            `json:"total"`
	Answer  string         `json:"answer,omitempty"`
}

// ListMemoriesResponse mirrors the backend list shape
type ListMemoriesResponse struct {
	Success  bool     `json:"success"`
	Memories []Memory `json:"memories"`
	Total    int      `json:"total"`
	Limit    int      `json:"limit,omitempty"`
	Offset   int      `json:"offset,omitempty"`
	HasMore  bool     `json:"hasMore,omitempty"`
}

// MemoryResponse wraps a single memory
type MemoryResponse struct {
	Success bool   `json:"success"`
	Memory  Memory `json:"memory"`
}

// DeleteResponse acknowledges a deletion
type DeleteResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id,omitempty"`
	Deleted bool   `json:"deleted"`
	Message string `json:"message,omitempty"`
}

// ProfileResponse wraps the user profile
type ProfileResponse struct {
	Success bool    `json:"success"`
	Profile Profile `json:"profile"`
}

// GraphResponse carries a knowledge-graph neighbourhood
type GraphResponse struct {
	Success bool        `json:"success"`
	Nodes   []GraphNode `json:"nodes"`
	Edges   []GraphEdge `json:"edges"`
}

// ReminderResponse wraps a created reminder
type ReminderResponse struct {
	Success  bool     `json:"success"`
	Reminder Reminder `json:"reminder"`
}

// RemindersResponse lists reminders
type RemindersResponse struct {
	Success   bool       `json:"success"`
	Reminders []Reminder `json:"reminders"`
}

// UsageResponse wraps usage counters
type UsageResponse struct {
	Success bool  `json:"success"`
	Usage   Usage `json:"usage"`
}

// ChunkSearchResponse wraps v7 chunk search hits
type ChunkSearchResponse struct {
	Success bool    `json:"success"`
	Chunks  []Chunk `json:"chunks"`
	Total   int     `json:"total"`
}

// IngestResponse acknowledges a v7 ingestion job
type IngestResponse struct {
	Success    bool   `json:"success"`
	JobID      string `json:"jobId"`
	DocumentID string `json:"documentId,omitempty"`
	Status     string `json:"status"`
	ChunkCount int    `json:"chunkCount,omitempty"`
}

// IngestStatusResponse reports v7 ingestion progress
type IngestStatusResponse struct {
	Success         bool    `json:"success"`
	JobID           string  `json:"jobId"`
	Status          string  `json:"status"`
	Progress        float64 `json:"progress,omitempty"`
	ChunksProcessed int     `json:"chunksProcessed,omitempty"`
	ChunkCount      int     `json:"chunkCount,omitempty"`
	Error           string  `json:"error,omitempty"`
}

// ExtractEntitiesResponse carries v7 entity extraction output
type ExtractEntitiesResponse struct {
	Success   bool       `json:"success"`
	Entities  []Entity   `json:"entities"`
	Relations []Relation `json:"relations,omitempty"`
}

// ListEntitiesResponse lists stored entities
type ListEntitiesResponse struct {
	Success  bool     `json:"success"`
	Entities []Entity `json:"entities"`
	Total    int      `json:"total"`
}

// HealthResponse is the service health probe
type HealthResponse struct {
	Success bool   `json:"success"`
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}
