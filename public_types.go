package hypersave

import "github.com/Hypersave-AI/hypersave-sdk/internal/types"

// Public type aliases so SDK consumers can import only the hypersave package.
type (
	// Requests
	UserScope              = types.UserScope
	SaveRequest            = types.SaveRequest
	AskRequest             = types.AskRequest
	SearchRequest          = types.SearchRequest
	QueryRequest           = types.QueryRequest
	ListMemoriesRequest    = types.ListMemoriesRequest
	UpdateMemoryRequest    = types.UpdateMemoryRequest
	UpdateProfileRequest   = types.UpdateProfileRequest
	GraphRequest           = types.GraphRequest
	RemindRequest          = types.RemindRequest
	ChunkSearchRequest     = types.ChunkSearchRequest
	IngestRequest          = types.IngestRequest
	ExtractEntitiesRequest = types.ExtractEntitiesRequest
	ListEntitiesRequest    = types.ListEntitiesRequest

	// Domain entities
	Memory    = types.Memory
	Source    = types.Source
	Profile   = types.Profile
	GraphNode = types.GraphNode
	GraphEdge = types.GraphEdge
	Reminder  = types.Reminder
	Usage     = types.Usage
	Chunk     = types.Chunk
	Entity    = types.Entity
	Relation  = types.Relation

	// Responses
	SaveResponse            = types.SaveResponse
	SaveStatusResponse      = types.SaveStatusResponse
	AskResponse             = types.AskResponse
	SearchResult            = types.SearchResult
	SearchResponse          = types.SearchResponse
	QueryResponse           = types.QueryResponse
	ListMemoriesResponse    = types.ListMemoriesResponse
	MemoryResponse          = types.MemoryResponse
	DeleteResponse          = types.DeleteResponse
	ProfileResponse         = types.ProfileResponse
	GraphResponse           = types.GraphResponse
	ReminderResponse        = types.ReminderResponse
	RemindersResponse       = types.RemindersResponse
	UsageResponse           = types.UsageResponse
	ChunkSearchResponse     = types.ChunkSearchResponse
	IngestResponse          = types.IngestResponse
	IngestStatusResponse    = types.IngestStatusResponse
	ExtractEntitiesResponse = types.ExtractEntitiesResponse
	ListEntitiesResponse    = types.ListEntitiesResponse
	HealthResponse          = types.HealthResponse
)
