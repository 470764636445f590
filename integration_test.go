package vecquery

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

// flakyBackend simulates the tunneled retrieval service: every endpoint can
// be told to fail a number of times with 502 before succeeding.
type flakyBackend struct {
	mu       sync.Mutex
	failures map[string]int // path -> remaining 502 responses
	calls    []string
	results  string
}

func newFlakyBackend() *flakyBackend {
	return &flakyBackend{
		failures: map[string]int{},
		results: `{"results":[
			{"content":"doc A","correlation":0.93,"tokens":128,"metadata":{"source":"doc1"}},
			{"content":"doc B","correlation":0.71,"tokens":64}
		]}`,
	}
}

func (b *flakyBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	path := r.URL.Path
	b.calls = append(b.calls, path)
	if b.failures[path] > 0 {
		b.failures[path]--
		w.WriteHeader(http.StatusBadGateway)
		return
	}

	switch path {
	case "/health", "/search/configure", "/query/submit", "/query/retrieve", "/search/rerank":
		w.WriteHeader(http.StatusOK)
	case "/search/results":
		_, _ = w.Write([]byte(b.results))
	default:
		http.NotFound(w, r)
	}
}

func (b *flakyBackend) count(path string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, c := range b.calls {
		if c == path {
			n++
		}
	}
	return n
}

func newTestClient(t *testing.T, srvURL string) *Client {
	t.Helper()
	c, err := New(
		WithBaseURL(srvURL),
		WithRetry(3, time.Millisecond),
		WithTimeouts(time.Second, time.Second),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func TestWorkflow_EndToEnd(t *testing.T) {
	backend := newFlakyBackend()
	srv := httptest.NewServer(backend)
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	ctx := context.Background()

	if status := c.Health(ctx); !status.Connected {
		t.Fatalf("health: %+v", status)
	}

	mixed := 70
	err := c.Config().Apply(ctx, ConfigParams{
		DocCorrelation:  0.9,
		RecallNumber:    20,
		RetrievalWeight: WeightMixed,
		MixedPercentage: &mixed,
		RerankEnabled:   true,
	})
	if err != nil {
		t.Fatalf("configure: %v", err)
	}

	results, err := c.Search(ctx, "climate policy", "emissions")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("results = %d, want 2", len(results))
	}
	if results[0].Content != "doc A" || results[0].Correlation != 0.93 {
		t.Errorf("first result = %+v", results[0])
	}

	// Rerank enabled: the workflow must have touched every endpoint once.
	for _, path := range []string{"/query/submit", "/query/retrieve", "/search/rerank", "/search/results"} {
		if backend.count(path) != 1 {
			t.Errorf("%s called %d times, want 1", path, backend.count(path))
		}
	}

	snap := c.Snapshot()
	if snap.LastQuery != "climate policy" || len(snap.Results) != 2 {
		t.Errorf("snapshot = %+v", snap)
	}
	if snap.Warning != "" || snap.Err != nil {
		t.Errorf("clean run left warning=%q err=%v", snap.Warning, snap.Err)
	}
}

func TestWorkflow_RecoversFromTransientFailures(t *testing.T) {
	backend := newFlakyBackend()
	backend.failures["/query/submit"] = 2 // recovered within 3 attempts
	srv := httptest.NewServer(backend)
	defer srv.Close()

	c := newTestClient(t, srv.URL)

	results, err := c.Search(context.Background(), "q")
	if err != nil {
		t.Fatalf("search should survive two 502s on submit: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("results = %d, want 2", len(results))
	}
	if backend.count("/query/submit") != 3 {
		t.Errorf("submit hits = %d, want 3", backend.count("/query/submit"))
	}
}

func TestWorkflow_ExhaustedRetriesFailWithoutClobbering(t *testing.T) {
	backend := newFlakyBackend()
	srv := httptest.NewServer(backend)
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	ctx := context.Background()

	if _, err := c.Search(ctx, "first query"); err != nil {
		t.Fatalf("seed search: %v", err)
	}

	backend.mu.Lock()
	backend.failures["/query/retrieve"] = 10 // never recovers
	backend.mu.Unlock()

	_, err := c.Search(ctx, "second query")
	if !errors.Is(err, ErrServerTransient) {
		t.Fatalf("expected transient classification, got %v", err)
	}

	snap := c.Snapshot()
	if snap.LastQuery != "first query" || len(snap.Results) != 2 {
		t.Error("failed search must not clobber prior session state")
	}
	if snap.Err == nil {
		t.Error("terminal error should be recorded on the session")
	}
}

func TestWorkflow_RerankFailureDowngradedToWarning(t *testing.T) {
	backend := newFlakyBackend()
	backend.failures["/search/rerank"] = 10
	srv := httptest.NewServer(backend)
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	ctx := context.Background()

	if err := c.Config().Apply(ctx, ConfigParams{
		DocCorrelation:  0.85,
		RecallNumber:    10,
		RetrievalWeight: WeightSemantic,
		RerankEnabled:   true,
	}); err != nil {
		t.Fatalf("configure: %v", err)
	}

	results, err := c.Search(ctx, "q")
	if err != nil {
		t.Fatalf("rerank failure must not fail the search: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("results = %d, want 2", len(results))
	}

	snap := c.Snapshot()
	if snap.Warning == "" {
		t.Error("expected a rerank warning on the session")
	}
	if snap.Err != nil {
		t.Errorf("rerank downgrade must not record an error: %v", snap.Err)
	}
	if backend.count("/search/results") != 1 {
		t.Error("fetch must still run after a failed rerank")
	}
}

func TestWorkflow_HealthFailureIsAdvisoryOnly(t *testing.T) {
	backend := newFlakyBackend()
	backend.failures["/health"] = 10
	srv := httptest.NewServer(backend)
	defer srv.Close()

	c := newTestClient(t, srv.URL)
	ctx := context.Background()

	status := c.Health(ctx)
	if status.Connected {
		t.Fatal("expected disconnected report")
	}
	if backend.count("/health") != 1 {
		t.Errorf("health hits = %d, want 1 (probe never retries)", backend.count("/health"))
	}

	// The advisory flag does not gate the workflow.
	if _, err := c.Search(ctx, "q"); err != nil {
		t.Fatalf("search must run regardless of probe outcome: %v", err)
	}
}

func TestWorkflow_InvalidConfigNeverReachesBackend(t *testing.T) {
	backend := newFlakyBackend()
	srv := httptest.NewServer(backend)
	defer srv.Close()

	c := newTestClient(t, srv.URL)

	err := c.Config().Apply(context.Background(), ConfigParams{
		DocCorrelation:  1.5,
		RecallNumber:    10,
		RetrievalWeight: WeightMixed,
	})
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
	if backend.count("/search/configure") != 0 {
		t.Error("invalid candidate must not produce a network call")
	}
}
