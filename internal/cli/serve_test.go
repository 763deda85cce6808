package cli

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/boxroute/pkg/cache"
	"github.com/matzehuels/boxroute/pkg/layout"
	"github.com/matzehuels/boxroute/pkg/observability"
	"github.com/matzehuels/boxroute/pkg/pipeline"
)

func testServer() http.Handler {
	logger := log.New(io.Discard)
	runner := pipeline.NewRunner(cache.NewMemoryCache(8), nil, logger)
	return newServer(runner, pipeline.Options{}, logger)
}

func post(t *testing.T, h http.Handler, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/v1/layout", strings.NewReader(string(data)))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return v
}

func TestHealthz(t *testing.T) {
	rec := httptest.NewRecorder()
	testServer().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	got := decode[map[string]string](t, rec)
	if got["status"] != "ok" || got["version"] == "" || !strings.HasPrefix(got["go"], "go") {
		t.Errorf("body = %v", got)
	}
}

func TestLayoutEndpoint(t *testing.T) {
	h := testServer()
	body := map[string]any{
		"diagram": twoBlocks,
		"options": map[string]any{"formats": []string{"text", "json"}},
	}

	rec := post(t, h, body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	resp := decode[layoutResponse](t, rec)
	if !resp.Complete || resp.Cached {
		t.Errorf("complete=%v cached=%v, want complete fresh layout", resp.Complete, resp.Cached)
	}
	if resp.RunID == "" {
		t.Error("run_id should be set")
	}
	stats := resp.Stats
	stats.LayoutMS, stats.RenderMS = 0, 0
	if diff := cmp.Diff(layoutStats{Blocks: 2, Connections: 1, Routed: 1}, stats); diff != "" {
		t.Errorf("stats mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(resp.Artifacts["text"], "| A |") {
		t.Errorf("text artifact:\n%s", resp.Artifacts["text"])
	}
	if _, err := layout.Unmarshal([]byte(resp.Artifacts["json"])); err != nil {
		t.Errorf("json artifact: %v", err)
	}

	again := decode[layoutResponse](t, post(t, h, body))
	if !again.Cached {
		t.Error("second identical request should reuse the cached layout")
	}
}

func TestLayoutEndpointErrors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
		code   string
	}{
		{"bad json", `{"diagram":`, http.StatusBadRequest, "INVALID_INPUT"},
		{"unknown field", `{"diagram":"","colour":"red"}`, http.StatusBadRequest, "INVALID_INPUT"},
		{"syntax", `{"diagram":"box text\n"}`, http.StatusBadRequest, "PARSE_ERROR"},
		{"unresolved", `{"diagram":"connection A B\n"}`, http.StatusBadRequest, "UNRESOLVED_BLOCK"},
		{"bad format", `{"diagram":"","options":{"formats":["png"]}}`, http.StatusBadRequest, "INVALID_FORMAT"},
		{"bad input format", `{"diagram":"","format":"yaml"}`, http.StatusBadRequest, "INVALID_FORMAT"},
		{"huge grid", `{"diagram":"","options":{"width":100000}}`, http.StatusBadRequest, "INVALID_CONFIG"},
	}

	h := testServer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/v1/layout", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != tt.status {
				t.Errorf("status = %d, want %d (body %s)", rec.Code, tt.status, rec.Body.String())
			}
			if got := decode[errorResponse](t, rec); got.Code != tt.code {
				t.Errorf("code = %q, want %q (%s)", got.Code, tt.code, got.Message)
			}
		})
	}
}

func TestMergeOptions(t *testing.T) {
	base := pipeline.Options{Placement: "connectivity", Width: 80, Policy: "permissive", Penalty: 7}
	got := mergeOptions(base, pipeline.Options{Width: 40, Formats: []string{"svg"}})

	if got.Placement != "connectivity" || got.Policy != "permissive" || got.Penalty != 7 {
		t.Errorf("base values not applied: %+v", got)
	}
	if got.Width != 40 {
		t.Errorf("Width = %d, want request value 40", got.Width)
	}
	if diff := cmp.Diff([]string{"svg"}, got.Formats); diff != "" {
		t.Errorf("Formats mismatch (-want +got):\n%s", diff)
	}
}

type serverRecorder struct {
	observability.NoopServerHooks
	mu       sync.Mutex
	statuses []int
}

func (r *serverRecorder) OnResponse(_ context.Context, _, _ string, status int, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.statuses = append(r.statuses, status)
}

func TestServerHooks(t *testing.T) {
	rec := &serverRecorder{}
	observability.SetServerHooks(rec)
	t.Cleanup(observability.Reset)

	h := testServer()
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))
	post(t, h, map[string]any{"diagram": "connection A B\n"})

	if diff := cmp.Diff([]int{http.StatusOK, http.StatusBadRequest}, rec.statuses); diff != "" {
		t.Errorf("statuses mismatch (-want +got):\n%s", diff)
	}
}
