package types

import "time"

// ------------------------------
// Domain Types
// ------------------------------

// Memory is a stored unit of knowledge
type Memory struct {
	ID        string         `json:"id"`
	Content   string         `json:"content"`
	Title     string         `json:"title,omitempty"`
	Type      string         `json:"type,omitempty"`
	Source    string         `json:"source,omitempty"`
	Tags      []string       `json:"tags,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt,omitempty"`
}

// Source is a memory cited by an answer
type Source struct {
	MemoryID string  `json:"memoryId"`
	Content  string  `json:"content"`
	Score    float64 `json:"score"`
}

// Profile is the learned profile of a user
type Profile struct {
	UserID      string         `json:"userId"`
	Name        string         `json:"name,omitempty"`
	Preferences map[string]any `json:"preferences,omitempty"`
	Facts       []string       `json:"facts,omitempty"`
	MemoryCount int            `json:"memoryCount"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt,omitempty"`
}

// GraphNode is an entity in the knowledge graph
type GraphNode struct {
	ID         string         `json:"id"`
	Label      string         `json:"label"`
	Type       string         `json:"type,omitempty"`
	Properties map[string]any `json:"properties,omitempty"`
}

// GraphEdge is a relation between two graph nodes
type GraphEdge struct {
	Source string  `json:"source"`
	Target string  `json:"target"`
	Type   string  `json:"type"`
	Weight float64 `json:"weight,omitempty"`
}

// Reminder is a scheduled or triggered reminder
type Reminder struct {
	ID         string     `json:"id"`
	Message    string     `json:"message"`
	RemindAt   *time.Time `json:"remindAt,omitempty"`
	Recurrence string     `json:"recurrence,omitempty"`
	Status     string     `json:"status,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
}

// Usage reports plan consumption for the API key
type Usage struct {
	Plan              string    `json:"plan"`
	PeriodStart       time.Time `json:"periodStart"`
	PeriodEnd         time.Time `json:"periodEnd"`
	Requests          int64     `json:"requests"`
	RequestLimit      int64     `json:"requestLimit"`
	Memories          int64     `json:"memories"`
	MemoryLimit       int64     `json:"memoryLimit"`
	StorageBytes      int64     `json:"storageBytes"`
	StorageLimitBytes int64     `json:"storageLimitBytes"`
}

// Chunk is a v7 document chunk returned by chunk search
type Chunk struct {
	ID         string         `json:"id"`
	DocumentID string         `json:"documentId"`
	Content    string         `json:"content"`
	Score      float64        `json:"score"`
	Position   int            `json:"position"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

// Entity is a named entity extracted by v7
type Entity struct {
	ID         string  `json:"id,omitempty"`
	Name       string  `json:"name"`
	Type       string  `json:"type"`
	Confidence float64 `json:"confidence,omitempty"`
	Mentions   int     `json:"mentions,omitempty"`
}

// Relation links two extracted entities
type Relation struct {
	Source     string  `json:"source"`
	Target     string  `json:"target"`
	Type       string  `json:"type"`
	Confidence float64 `json:"confidence,omitempty"`
}
