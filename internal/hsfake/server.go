// Package hsfake is an in-process stand-in for the Hypersave HTTP API used
// by tests. It keeps memories, reminders and ingestion jobs in memory and
// speaks the same JSON envelope as the real service.
package hsfake

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/mux"
)

// Recorded is one request seen by the fake.
type Recorded struct {
	Method    string
	Path      string
	Query     string
	UserID    string
	RequestID string
	Body      map[string]any
}

type memory struct {
	ID        string         `json:"id"`
	UserID    string         `json:"-"`
	Content   string         `json:"content"`
	Title     string         `json:"title,omitempty"`
	Type      string         `json:"type,omitempty"`
	Tags      []string       `json:"tags,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// Server is a fake Hypersave API.
type Server struct {
	APIKey string

	srv *httptest.Server

	mu        sync.Mutex
	seq       int
	memories  map[string]*memory
	reminders []map[string]any
	jobs      map[string]string
	requests  []Recorded
}

// New starts a fake that accepts apiKey.
func New(apiKey string) *Server {
	s := &Server{
		APIKey:   apiKey,
		memories: map[string]*memory{},
		jobs:     map[string]string{},
	}
	s.srv = httptest.NewServer(s.router())
	return s
}

// URL is the base URL of the fake.
func (s *Server) URL() string { return s.srv.URL }

// Close shuts the fake down.
func (s *Server) Close() { s.srv.Close() }

// Requests returns a copy of the recorded requests.
func (s *Server) Requests() []Recorded {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Recorded, len(s.requests))
	copy(out, s.requests)
	return out
}

// LastRequest returns the most recent request, if any.
func (s *Server) LastRequest() (Recorded, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return Recorded{}, false
	}
	return s.requests[len(s.requests)-1], true
}

func (s *Server) router() http.Handler {
	r := mux.NewRouter()
	r.Use(s.record, s.authenticate)

	r.HandleFunc("/health", s.health).Methods(http.MethodGet)

	v1 := r.PathPrefix("/v1").Subrouter()
	v1.HandleFunc("/save", s.save).Methods(http.MethodPost)
	v1.HandleFunc("/save/status/{id}", s.saveStatus).Methods(http.MethodGet)
	v1.HandleFunc("/ask", s.ask).Methods(http.MethodPost)
	v1.HandleFunc("/search", s.search).Methods(http.MethodPost)
	v1.HandleFunc("/query", s.search).Methods(http.MethodPost)
	v1.HandleFunc("/memories", s.listMemories).Methods(http.MethodGet)
	v1.HandleFunc("/memory/{id}", s.getMemory).Methods(http.MethodGet)
	v1.HandleFunc("/memory/{id}", s.updateMemory).Methods(http.MethodPut)
	v1.HandleFunc("/memory/{id}", s.deleteMemory).Methods(http.MethodDelete)
	v1.HandleFunc("/profile", s.profile).Methods(http.MethodGet, http.MethodPut)
	v1.HandleFunc("/graph", s.graph).Methods(http.MethodGet)
	v1.HandleFunc("/remind", s.remind).Methods(http.MethodPost)
	v1.HandleFunc("/remind", s.listReminders).Methods(http.MethodGet)
	v1.HandleFunc("/usage", s.usage).Methods(http.MethodGet)

	v7 := r.PathPrefix("/api/v7").Subrouter()
	v7.HandleFunc("/search/chunks", s.searchChunks).Methods(http.MethodPost)
	v7.HandleFunc("/ingest", s.ingest).Methods(http.MethodPost)
	v7.HandleFunc("/ingest/status/{id}", s.ingestStatus).Methods(http.MethodGet)
	v7.HandleFunc("/extract/entities", s.extractEntities).Methods(http.MethodPost)
	v7.HandleFunc("/entities", s.listEntities).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "route not found", nil)
	})
	return r
}

// ------------------------------
// Middleware
// ------------------------------

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := Recorded{
			Method:    r.Method,
			Path:      r.URL.Path,
			Query:     r.URL.RawQuery,
			UserID:    r.Header.Get("X-User-ID"),
			RequestID: r.Header.Get("X-Request-ID"),
		}
		if r.Body != nil && r.ContentLength != 0 {
			var body map[string]any
			if err := json.NewDecoder(r.Body).Decode(&body); err == nil {
				rec.Body = body
			}
		}
		s.mu.Lock()
		s.requests = append(s.requests, rec)
		s.mu.Unlock()

		ctx := r.Context()
		next.ServeHTTP(w, r.WithContext(withBody(ctx, rec.Body)))
	})
}

func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-API-Key") != s.APIKey {
			writeError(w, http.StatusUnauthorized, "Invalid API key", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ------------------------------
// Handlers
// ------------------------------

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "status": "ok", "version": "fake"})
}

func (s *Server) save(w http.ResponseWriter, r *http.Request) {
	body := bodyFrom(r)
	content, _ := body["content"].(string)
	if strings.TrimSpace(content) == "" {
		writeError(w, http.StatusBadRequest, "content is required", map[string]any{"field": "content"})
		return
	}
	now := time.Now().UTC()
	s.mu.Lock()
	s.seq++
	m := &memory{
		ID:        fmt.Sprintf("mem_%d", s.seq),
		UserID:    r.Header.Get("X-User-ID"),
		Content:   content,
		Title:     str(body["title"]),
		Type:      str(body["type"]),
		Tags:      strSlice(body["tags"]),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if md, ok := body["metadata"].(map[string]any); ok {
		m.Metadata = md
	}
	s.memories[m.ID] = m
	s.mu.Unlock()

	status := "completed"
	if async, _ := body["async"].(bool); async {
		status = "pending"
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "id": m.ID, "status": status})
}

func (s *Server) saveStatus(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	s.mu.Lock()
	_, ok := s.memories[id]
	s.mu.Unlock()
	if !ok {
		writeError(w, http.StatusNotFound, "save not found", map[string]any{"resourceType": "save", "resourceId": id})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "id": id, "status": "completed", "progress": 1, "memoryId": id})
}

func (s *Server) ask(w http.ResponseWriter, r *http.Request) {
	query := str(bodyFrom(r)["query"])
	hits := s.match(r.Header.Get("X-User-ID"), query)
	sources := make([]map[string]any, 0, len(hits))
	answer := "I don't know."
	for i, m := range hits {
		if i == 0 {
			answer = m.Content
		}
		sources = append(sources, map[string]any{"memoryId": m.ID, "content": m.Content, "score": 1.0})
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "answer": answer, "sources": sources})
}

func (s *Server) search(w http.ResponseWriter, r *http.Request) {
	body := bodyFrom(r)
	hits := s.match(r.Header.Get("X-User-ID"), str(body["query"]))
	if limit := intOf(body["limit"]); limit > 0 && len(hits) > limit {
		hits = hits[:limit]
	}
	results := make([]map[string]any, 0, len(hits))
	for _, m := range hits {
		results = append(results, memoryResult(m, 1.0))
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "results": results, "total": len(results)})
}

func (s *Server) listMemories(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	offset, _ := strconv.Atoi(q.Get("offset"))
	all := s.userMemories(r.Header.Get("X-User-ID"))
	total := len(all)
	if offset > len(all) {
		offset = len(all)
	}
	all = all[offset:]
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"memories": all,
		"total":    total,
		"limit":    limit,
		"offset":   offset,
		"hasMore":  offset+len(all) < total,
	})
}

func (s *Server) getMemory(w http.ResponseWriter, r *http.Request) {
	m, ok := s.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "memory": m})
}

func (s *Server) updateMemory(w http.ResponseWriter, r *http.Request) {
	m, ok := s.lookup(w, r)
	if !ok {
		return
	}
	body := bodyFrom(r)
	s.mu.Lock()
	if c := str(body["content"]); c != "" {
		m.Content = c
	}
	if t := str(body["title"]); t != "" {
		m.Title = t
	}
	if tags := strSlice(body["tags"]); tags != nil {
		m.Tags = tags
	}
	m.UpdatedAt = time.Now().UTC()
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "memory": m})
}

func (s *Server) deleteMemory(w http.ResponseWriter, r *http.Request) {
	m, ok := s.lookup(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	delete(s.memories, m.ID)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "id": m.ID, "deleted": true})
}

func (s *Server) profile(w http.ResponseWriter, r *http.Request) {
	userID := r.Header.Get("X-User-ID")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "user id is required", map[string]any{"field": "userId"})
		return
	}
	profile := map[string]any{"userId": userID, "memoryCount": len(s.userMemories(userID))}
	if r.Method == http.MethodPut {
		body := bodyFrom(r)
		if name := str(body["name"]); name != "" {
			profile["name"] = name
		}
		if facts := strSlice(body["facts"]); facts != nil {
			profile["facts"] = facts
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "profile": profile})
}

func (s *Server) graph(w http.ResponseWriter, r *http.Request) {
	entity := r.URL.Query().Get("entity")
	nodes := []map[string]any{}
	edges := []map[string]any{}
	if entity != "" {
		nodes = append(nodes, map[string]any{"id": entity, "label": entity, "type": "entity"})
		for _, m := range s.match(r.Header.Get("X-User-ID"), entity) {
			nodes = append(nodes, map[string]any{"id": m.ID, "label": m.Title, "type": "memory"})
			edges = append(edges, map[string]any{"source": entity, "target": m.ID, "type": "mentioned_in"})
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "nodes": nodes, "edges": edges})
}

func (s *Server) remind(w http.ResponseWriter, r *http.Request) {
	body := bodyFrom(r)
	msg := str(body["message"])
	if msg == "" {
		writeError(w, http.StatusBadRequest, "message is required", map[string]any{"field": "message"})
		return
	}
	s.mu.Lock()
	s.seq++
	rem := map[string]any{
		"id":        fmt.Sprintf("rem_%d", s.seq),
		"message":   msg,
		"status":    "scheduled",
		"createdAt": time.Now().UTC(),
	}
	if at, ok := body["remindAt"]; ok {
		rem["remindAt"] = at
	}
	s.reminders = append(s.reminders, rem)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "reminder": rem})
}

func (s *Server) listReminders(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	out := make([]map[string]any, len(s.reminders))
	copy(out, s.reminders)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "reminders": out})
}

func (s *Server) usage(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	reqs, mems := len(s.requests), len(s.memories)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "usage": map[string]any{
		"plan":         "free",
		"requests":     reqs,
		"requestLimit": 1000,
		"memories":     mems,
		"memoryLimit":  100,
	}})
}

func (s *Server) searchChunks(w http.ResponseWriter, r *http.Request) {
	hits := s.match(r.Header.Get("X-User-ID"), str(bodyFrom(r)["query"]))
	chunks := make([]map[string]any, 0, len(hits))
	for i, m := range hits {
		chunks = append(chunks, map[string]any{"id": fmt.Sprintf("%s#0", m.ID), "documentId": m.ID, "content": m.Content, "score": 1.0, "position": i})
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "chunks": chunks, "total": len(chunks)})
}

func (s *Server) ingest(w http.ResponseWriter, r *http.Request) {
	body := bodyFrom(r)
	if str(body["content"]) == "" && str(body["url"]) == "" {
		writeError(w, http.StatusBadRequest, "content or url is required", nil)
		return
	}
	s.mu.Lock()
	s.seq++
	id := fmt.Sprintf("job_%d", s.seq)
	s.jobs[id] = "completed"
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "jobId": id, "documentId": "doc_" + id, "status": "queued"})
}

func (s *Server) ingestStatus(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	s.mu.Lock()
	status, ok := s.jobs[id]
	s.mu.Unlock()
	if !ok {
		writeError(w, http.StatusNotFound, "job not found", map[string]any{"resourceType": "ingest", "resourceId": id})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "jobId": id, "status": status, "progress": 1})
}

func (s *Server) extractEntities(w http.ResponseWriter, r *http.Request) {
	text := str(bodyFrom(r)["text"])
	entities := []map[string]any{}
	seen := map[string]bool{}
	for _, word := range strings.Fields(text) {
		word = strings.Trim(word, ".,;:!?\"'()")
		if word == "" || seen[word] {
			continue
		}
		if first := word[0]; first >= 'A' && first <= 'Z' {
			seen[word] = true
			entities = append(entities, map[string]any{"name": word, "type": "proper_noun", "confidence": 0.9, "mentions": 1})
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "entities": entities})
}

func (s *Server) listEntities(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "entities": []any{}, "total": 0})
}

// ------------------------------
// Helpers
// ------------------------------

func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (*memory, bool) {
	id := mux.Vars(r)["id"]
	s.mu.Lock()
	m, ok := s.memories[id]
	s.mu.Unlock()
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]any{
			"success": false,
			"message": "memory not found",
			"details": map[string]any{"resourceType": "memory", "resourceId": id},
		})
		return nil, false
	}
	return m, true
}

func (s *Server) userMemories(userID string) []*memory {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*memory, 0, len(s.memories))
	for _, m := range s.memories {
		if userID == "" || m.UserID == userID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Server) match(userID, query string) []*memory {
	query = strings.ToLower(strings.TrimSpace(query))
	var out []*memory
	for _, m := range s.userMemories(userID) {
		if query == "" {
			continue
		}
		for _, term := range strings.Fields(query) {
			if strings.Contains(strings.ToLower(m.Content), term) {
				out = append(out, m)
				break
			}
		}
	}
	return out
}

func memoryResult(m *memory, score float64) map[string]any {
	return map[string]any{
		"id":        m.ID,
		"content":   m.Content,
		"title":     m.Title,
		"type":      m.Type,
		"tags":      m.Tags,
		"createdAt": m.CreatedAt,
		"score":     score,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string, details map[string]any) {
	body := map[string]any{"success": false, "error": msg}
	if details != nil {
		body["details"] = details
	}
	writeJSON(w, status, body)
}

func str(v any) string {
	s, _ := v.(string)
	return s
}

func intOf(v any) int {
	f, _ := v.(float64)
	return int(f)
}

func strSlice(v any) []string {
	raw, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, x := range raw {
		if s, ok := x.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
