package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	hserrors "github.com/Hypersave-AI/hypersave-sdk/internal/errors"
	"github.com/Hypersave-AI/hypersave-sdk/internal/types"
)

type seen struct {
	method string
	uri    string
	userID string
	body   map[string]any
}

// recorder answers every request with an empty success envelope.
func recorder(t *testing.T) (*Dispatcher, *[]seen) {
	t.Helper()
	var got []seen
	d := newTestDispatcher(t, func(w http.ResponseWriter, r *http.Request) {
		s := seen{method: r.Method, uri: r.URL.RequestURI(), userID: r.Header.Get(HeaderUserID)}
		if raw, _ := io.ReadAll(r.Body); len(raw) > 0 {
			_ = json.Unmarshal(raw, &s.body)
		}
		got = append(got, s)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"success":true}`)
	})
	return d, &got
}

func TestEndpoints_RouteTable(t *testing.T) {
	ctx := context.Background()
	cases := []struct {
		name   string
		call   func(d *Dispatcher) error
		method string
		uri    string
	}{
		{"save", func(d *Dispatcher) error { _, err := Save(ctx, d, types.SaveRequest{Content: "c"}, ""); return err }, "POST", "/v1/save"},
		{"save status", func(d *Dispatcher) error { _, err := GetSaveStatus(ctx, d, "s/1", ""); return err }, "GET", "/v1/save/status/s%2F1"},
		{"ask", func(d *Dispatcher) error { _, err := Ask(ctx, d, types.AskRequest{Query: "q"}, ""); return err }, "POST", "/v1/ask"},
		{"search", func(d *Dispatcher) error { _, err := Search(ctx, d, types.SearchRequest{Query: "q"}, ""); return err }, "POST", "/v1/search"},
		{"query", func(d *Dispatcher) error { _, err := Query(ctx, d, types.QueryRequest{Query: "q"}, ""); return err }, "POST", "/v1/query"},
		{"list memories", func(d *Dispatcher) error {
			_, err := ListMemories(ctx, d, types.ListMemoriesRequest{Limit: 5, Offset: 10, Type: "note"}, "")
			return err
		}, "GET", "/v1/memories?limit=5&offset=10&type=note"},
		{"list memories bare", func(d *Dispatcher) error { _, err := ListMemories(ctx, d, types.ListMemoriesRequest{}, ""); return err }, "GET", "/v1/memories"},
		{"get memory", func(d *Dispatcher) error { _, err := GetMemory(ctx, d, "m 1", ""); return err }, "GET", "/v1/memory/m%201"},
		{"update memory", func(d *Dispatcher) error {
			_, err := UpdateMemory(ctx, d, "m1", types.UpdateMemoryRequest{Content: "new"}, "")
			return err
		}, "PUT", "/v1/memory/m1"},
		{"delete memory", func(d *Dispatcher) error { _, err := DeleteMemory(ctx, d, "m1", ""); return err }, "DELETE", "/v1/memory/m1"},
		{"get profile", func(d *Dispatcher) error { _, err := GetProfile(ctx, d, ""); return err }, "GET", "/v1/profile"},
		{"update profile", func(d *Dispatcher) error {
			_, err := UpdateProfile(ctx, d, types.UpdateProfileRequest{Name: "n"}, "")
			return err
		}, "PUT", "/v1/profile"},
		{"graph", func(d *Dispatcher) error {
			_, err := GetGraph(ctx, d, types.GraphRequest{Entity: "Ada Lovelace", Depth: 2}, "")
			return err
		}, "GET", "/v1/graph?depth=2&entity=Ada+Lovelace"},
		{"remind", func(d *Dispatcher) error { _, err := Remind(ctx, d, types.RemindRequest{Message: "m"}, ""); return err }, "POST", "/v1/remind"},
		{"list reminders", func(d *Dispatcher) error { _, err := ListReminders(ctx, d, ""); return err }, "GET", "/v1/remind"},
		{"usage", func(d *Dispatcher) error { _, err := GetUsage(ctx, d, ""); return err }, "GET", "/v1/usage"},
		{"health", func(d *Dispatcher) error { _, err := Health(ctx, d); return err }, "GET", "/health"},
		{"chunks", func(d *Dispatcher) error {
			_, err := SearchChunks(ctx, d, types.ChunkSearchRequest{Query: "q"}, "")
			return err
		}, "POST", "/api/v7/search/chunks"},
		{"ingest", func(d *Dispatcher) error {
			_, err := Ingest(ctx, d, types.IngestRequest{URL: "https://x"}, "")
			return err
		}, "POST", "/api/v7/ingest"},
		{"ingest status", func(d *Dispatcher) error { _, err := GetIngestStatus(ctx, d, "j1", ""); return err }, "GET", "/api/v7/ingest/status/j1"},
		{"extract", func(d *Dispatcher) error {
			_, err := ExtractEntities(ctx, d, types.ExtractEntitiesRequest{Text: "t"}, "")
			return err
		}, "POST", "/api/v7/extract/entities"},
		{"entities", func(d *Dispatcher) error {
			_, err := ListEntities(ctx, d, types.ListEntitiesRequest{Type: "person", Limit: 3}, "")
			return err
		}, "GET", "/api/v7/entities?limit=3&type=person"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d, got := recorder(t)
			require.NoError(t, tc.call(d))
			require.Len(t, *got, 1)
			assert.Equal(t, tc.method, (*got)[0].method)
			assert.Equal(t, tc.uri, (*got)[0].uri)
		})
	}
}

func TestEndpoints_BodyIsSentAsJSON(t *testing.T) {
	d, got := recorder(t)
	req := types.SaveRequest{Content: "hello", Tags: []string{"a"}, Async: true}
	req.UserID = "body-user"
	_, err := Save(context.Background(), d, req, "")
	require.NoError(t, err)

	require.Len(t, *got, 1)
	s := (*got)[0]
	assert.Equal(t, "hello", s.body["content"])
	assert.Equal(t, []any{"a"}, s.body["tags"])
	assert.Equal(t, true, s.body["async"])
	assert.Equal(t, "body-user", s.body["userId"])
	assert.Equal(t, "body-user", s.userID)
}

func TestEndpoints_GetCarriesRequestUser(t *testing.T) {
	d, got := recorder(t)
	_, err := ListMemories(context.Background(), d, types.ListMemoriesRequest{UserScope: types.UserScope{UserID: "from-req"}}, "")
	require.NoError(t, err)
	_, err = ListMemories(context.Background(), d, types.ListMemoriesRequest{UserScope: types.UserScope{UserID: "from-req"}}, "override")
	require.NoError(t, err)

	require.Len(t, *got, 2)
	assert.Equal(t, "from-req", (*got)[0].userID)
	assert.Equal(t, "override", (*got)[1].userID)
	assert.Nil(t, (*got)[0].body)
}

func TestEndpoints_LocalValidation(t *testing.T) {
	ctx := context.Background()
	cases := map[string]func(d *Dispatcher) error{
		"save empty":   func(d *Dispatcher) error { _, err := Save(ctx, d, types.SaveRequest{}, ""); return err },
		"status empty": func(d *Dispatcher) error { _, err := GetSaveStatus(ctx, d, " ", ""); return err },
		"list negative": func(d *Dispatcher) error {
			_, err := ListMemories(ctx, d, types.ListMemoriesRequest{Offset: -1}, "")
			return err
		},
		"get empty": func(d *Dispatcher) error { _, err := GetMemory(ctx, d, "", ""); return err },
		"update empty": func(d *Dispatcher) error {
			_, err := UpdateMemory(ctx, d, "", types.UpdateMemoryRequest{}, "")
			return err
		},
		"delete empty": func(d *Dispatcher) error { _, err := DeleteMemory(ctx, d, "", ""); return err },
		"ask empty":    func(d *Dispatcher) error { _, err := Ask(ctx, d, types.AskRequest{}, ""); return err },
		"ask negative": func(d *Dispatcher) error {
			_, err := Ask(ctx, d, types.AskRequest{Query: "q", MaxSources: -1}, "")
			return err
		},
		"query empty":    func(d *Dispatcher) error { _, err := Query(ctx, d, types.QueryRequest{}, ""); return err },
		"graph negative": func(d *Dispatcher) error { _, err := GetGraph(ctx, d, types.GraphRequest{Depth: -1}, ""); return err },
		"remind empty":   func(d *Dispatcher) error { _, err := Remind(ctx, d, types.RemindRequest{}, ""); return err },
		"chunks empty":   func(d *Dispatcher) error { _, err := SearchChunks(ctx, d, types.ChunkSearchRequest{}, ""); return err },
		"ingest neither": func(d *Dispatcher) error { _, err := Ingest(ctx, d, types.IngestRequest{}, ""); return err },
		"ingest chunk": func(d *Dispatcher) error {
			_, err := Ingest(ctx, d, types.IngestRequest{Content: "c", ChunkSize: -1}, "")
			return err
		},
		"job empty": func(d *Dispatcher) error { _, err := GetIngestStatus(ctx, d, "", ""); return err },
		"extract empty": func(d *Dispatcher) error {
			_, err := ExtractEntities(ctx, d, types.ExtractEntitiesRequest{}, "")
			return err
		},
		"entities negative": func(d *Dispatcher) error {
			_, err := ListEntities(ctx, d, types.ListEntitiesRequest{Limit: -1}, "")
			return err
		},
	}
	for name, fn := range cases {
		t.Run(name, func(t *testing.T) {
			d, got := recorder(t)
			requireKind(t, fn(d), hserrors.KindValidation)
			assert.Empty(t, *got)
		})
	}
}
