package hypersave

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hypersave-AI/hypersave-sdk/internal/hsfake"
)

func newFakeClient(t *testing.T, opts ...Option) (*Client, *hsfake.Server) {
	t.Helper()
	fake := hsfake.New("test-key")
	t.Cleanup(fake.Close)
	c, err := New("test-key", append([]Option{WithBaseURL(fake.URL())}, opts...)...)
	require.NoError(t, err)
	return c, fake
}

func TestMemoryLifecycle(t *testing.T) {
	ctx := context.Background()
	c, fake := newFakeClient(t, WithDefaultUserID("u1"))

	saved, err := c.Save(ctx, SaveRequest{Content: "Alice likes green tea", Title: "tea", Tags: []string{"prefs"}})
	require.NoError(t, err)
	assert.True(t, saved.Success)
	assert.Equal(t, "completed", saved.Status)
	require.NotEmpty(t, saved.ID)

	last, _ := fake.LastRequest()
	assert.Equal(t, http.MethodPost, last.Method)
	assert.Equal(t, "/v1/save", last.Path)
	assert.Equal(t, "u1", last.UserID)
	assert.NotEmpty(t, last.RequestID)
	assert.Equal(t, "Alice likes green tea", last.Body["content"])

	got, err := c.GetMemory(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice likes green tea", got.Memory.Content)
	assert.Equal(t, []string{"prefs"}, got.Memory.Tags)

	upd, err := c.UpdateMemory(ctx, saved.ID, UpdateMemoryRequest{Content: "Alice likes oolong"})
	require.NoError(t, err)
	assert.Equal(t, "Alice likes oolong", upd.Memory.Content)

	list, err := c.ListMemories(ctx, ListMemoriesRequest{Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, list.Total)
	last, _ = fake.LastRequest()
	assert.Equal(t, "limit=10", last.Query)

	del, err := c.DeleteMemory(ctx, saved.ID)
	require.NoError(t, err)
	assert.True(t, del.Deleted)

	_, err = c.GetMemory(ctx, saved.ID)
	require.Error(t, err)
	e, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, KindNotFound, e.Kind)
	assert.Equal(t, http.StatusNotFound, e.StatusCode)
	assert.Equal(t, "memory not found", e.Message)
	assert.Equal(t, "memory", e.ResourceType)
	assert.Equal(t, saved.ID, e.ResourceID)
	assert.NotEmpty(t, e.RequestID)
}

func TestRetrieval(t *testing.T) {
	ctx := context.Background()
	c, _ := newFakeClient(t)

	_, err := c.Save(ctx, SaveRequest{Content: "The launch is on Friday"}, AsUser("u1"))
	require.NoError(t, err)
	_, err = c.Save(ctx, SaveRequest{Content: "Unrelated note"}, AsUser("u2"))
	require.NoError(t, err)

	ans, err := c.Ask(ctx, AskRequest{Query: "when is the launch"}, AsUser("u1"))
	require.NoError(t, err)
	assert.Equal(t, "The launch is on Friday", ans.Answer)
	require.Len(t, ans.Sources, 1)

	res, err := c.Search(ctx, SearchRequest{Query: "launch", UserScope: UserScope{UserID: "u1"}})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Total)

	q, err := c.Query(ctx, QueryRequest{Query: "note"}, AsUser("u2"))
	require.NoError(t, err)
	require.Len(t, q.Results, 1)
	assert.Equal(t, "Unrelated note", q.Results[0].Content)
}

func TestProfileGraphRemindersUsage(t *testing.T) {
	ctx := context.Background()
	c, fake := newFakeClient(t)

	_, err := c.GetProfile(ctx)
	assert.True(t, IsKind(err, KindValidation), "profile without a user should be rejected by the API, got %v", err)

	prof, err := c.UpdateProfile(ctx, UpdateProfileRequest{Name: "Alice"}, AsUser("u1"))
	require.NoError(t, err)
	assert.Equal(t, "u1", prof.Profile.UserID)
	assert.Equal(t, "Alice", prof.Profile.Name)

	_, err = c.Save(ctx, SaveRequest{Content: "Bob met Alice"}, AsUser("u1"))
	require.NoError(t, err)
	g, err := c.GetGraph(ctx, GraphRequest{Entity: "alice", Depth: 1}, AsUser("u1"))
	require.NoError(t, err)
	assert.Len(t, g.Nodes, 2)
	assert.Len(t, g.Edges, 1)
	last, _ := fake.LastRequest()
	assert.Contains(t, last.Query, "entity=alice")

	at := time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)
	rem, err := c.Remind(ctx, RemindRequest{Message: "call Bob", RemindAt: &at})
	require.NoError(t, err)
	assert.Equal(t, "scheduled", rem.Reminder.Status)
	require.NotNil(t, rem.Reminder.RemindAt)
	assert.True(t, at.Equal(*rem.Reminder.RemindAt))

	rems, err := c.ListReminders(ctx)
	require.NoError(t, err)
	assert.Len(t, rems.Reminders, 1)

	usage, err := c.GetUsage(ctx)
	require.NoError(t, err)
	assert.Equal(t, "free", usage.Usage.Plan)
	assert.EqualValues(t, 1000, usage.Usage.RequestLimit)

	h, err := c.Health(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ok", h.Status)
}

func TestV7Operations(t *testing.T) {
	ctx := context.Background()
	c, fake := newFakeClient(t)

	job, err := c.Ingest(ctx, IngestRequest{Content: "Paris is in France", Title: "geo"})
	require.NoError(t, err)
	assert.Equal(t, "queued", job.Status)
	last, _ := fake.LastRequest()
	assert.Equal(t, "/api/v7/ingest", last.Path)

	st, err := c.AwaitIngest(ctx, job.JobID)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, st.Status)

	_, err = c.Save(ctx, SaveRequest{Content: "Paris trip planned"})
	require.NoError(t, err)
	chunks, err := c.SearchChunks(ctx, ChunkSearchRequest{Query: "paris"})
	require.NoError(t, err)
	assert.Equal(t, 1, chunks.Total)

	ents, err := c.ExtractEntities(ctx, ExtractEntitiesRequest{Text: "Alice flew to Paris."})
	require.NoError(t, err)
	names := make([]string, 0, len(ents.Entities))
	for _, e := range ents.Entities {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{"Alice", "Paris"}, names)

	list, err := c.ListEntities(ctx, ListEntitiesRequest{Limit: 5})
	require.NoError(t, err)
	assert.Equal(t, 0, list.Total)

	_, err = c.GetIngestStatus(ctx, "job_missing")
	assert.True(t, IsNotFound(err))
}

func TestAwaitSave(t *testing.T) {
	ctx := context.Background()
	c, _ := newFakeClient(t)

	saved, err := c.Save(ctx, SaveRequest{Content: "async note", Async: true})
	require.NoError(t, err)
	assert.Equal(t, "pending", saved.Status)

	st, err := c.AwaitSave(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, st.Status)
	assert.Equal(t, saved.ID, st.MemoryID)
}

func TestWrongAPIKey(t *testing.T) {
	fake := hsfake.New("right")
	t.Cleanup(fake.Close)
	c, err := New("wrong", WithBaseURL(fake.URL()))
	require.NoError(t, err)

	_, err = c.Health(context.Background())
	e, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, KindAuthentication, e.Kind)
	assert.Equal(t, http.StatusUnauthorized, e.StatusCode)
	assert.Equal(t, "Invalid API key", e.Message)
}

func TestLocalValidationSkipsNetwork(t *testing.T) {
	ctx := context.Background()
	c, fake := newFakeClient(t)

	checks := map[string]func() error{
		"save":        func() error { _, err := c.Save(ctx, SaveRequest{Content: "  "}); return err },
		"get memory":  func() error { _, err := c.GetMemory(ctx, ""); return err },
		"ask":         func() error { _, err := c.Ask(ctx, AskRequest{}); return err },
		"search":      func() error { _, err := c.Search(ctx, SearchRequest{Query: "x", Limit: -1}); return err },
		"remind":      func() error { _, err := c.Remind(ctx, RemindRequest{}); return err },
		"ingest":      func() error { _, err := c.Ingest(ctx, IngestRequest{}); return err },
		"extract":     func() error { _, err := c.ExtractEntities(ctx, ExtractEntitiesRequest{}); return err },
		"save status": func() error { _, err := c.GetSaveStatus(ctx, ""); return err },
	}
	for name, fn := range checks {
		t.Run(name, func(t *testing.T) {
			assert.True(t, IsKind(fn(), KindValidation))
		})
	}
	assert.Empty(t, fake.Requests())
}

func TestClient_ConcurrentCalls(t *testing.T) {
	ctx := context.Background()
	c, fake := newFakeClient(t)

	const n = 20
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		go func() {
			_, err := c.Health(ctx)
			errs <- err
		}()
	}
	for i := 0; i < n; i++ {
		require.NoError(t, <-errs)
	}

	ids := map[string]bool{}
	for _, r := range fake.Requests() {
		ids[r.RequestID] = true
	}
	assert.Len(t, ids, n, "every call carries a distinct request id")
}

func TestClient_TimeoutOnSlowServer(t *testing.T) {
	release := make(chan struct{})
	rt := roundTripFunc(func(r *http.Request) (*http.Response, error) {
		select {
		case <-r.Context().Done():
			return nil, r.Context().Err()
		case <-release:
			return nil, context.Canceled
		}
	})
	defer close(release)

	c, err := New("k", WithBaseURL("http://example.com"), WithTimeout(40*time.Millisecond), WithHTTPClient(&http.Client{Transport: rt}))
	require.NoError(t, err)

	start := time.Now()
	_, err = c.Health(context.Background())
	e, ok := AsError(err)
	require.True(t, ok)
	assert.Equal(t, KindTimeout, e.Kind)
	assert.Equal(t, 40, e.TimeoutMillis)
	assert.Less(t, time.Since(start), 2*time.Second)
}
