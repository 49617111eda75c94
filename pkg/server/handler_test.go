package server

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/mikeboe/research-agent/pkg/config"
	"github.com/mikeboe/research-agent/pkg/research"
)

func newTestHandler() (*gin.Engine, *Handler) {
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{} // no credentials: fallback mode
	engine := research.NewEngine(nil, nil, research.NewHistory())
	handler := NewHandler(NewService(engine, cfg), NewMemoryLogHandler(100))

	r := gin.New()
	handler.RegisterRoutes(r)
	return r, handler
}

func TestStartResearchValidation(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{"Empty query", `{"query": "", "depth": "quick"}`, http.StatusBadRequest},
		{"Whitespace query", `{"query": "   "}`, http.StatusBadRequest},
		{"Malformed JSON", `{"query": `, http.StatusBadRequest},
		{"Valid", `{"query": "quantum computing", "depth": "quick"}`, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := newTestHandler()

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/research", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d (body: %s)", w.Code, tt.wantStatus, w.Body.String())
			}
		})
	}
}

func TestStartResearchReturnsFullRecord(t *testing.T) {
	r, _ := newTestHandler()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/research",
		strings.NewReader(`{"query": "quantum computing", "depth": "quick"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", w.Code, w.Body.String())
	}
	if got := w.Header().Get("X-Request-ID"); got == "" {
		t.Error("response missing X-Request-ID header")
	}

	var record research.ResearchRecord
	if err := json.Unmarshal(w.Body.Bytes(), &record); err != nil {
		t.Fatalf("failed to decode record: %v", err)
	}
	if record.Query != "quantum computing" || record.Depth != "quick" {
		t.Errorf("record = %+v, want echoed query and depth", record)
	}
	if len(record.Plan.SearchQueries) != 3 {
		t.Errorf("got %d search queries, want 3 for quick depth", len(record.Plan.SearchQueries))
	}
	if record.SourcesSearched != 3 {
		t.Errorf("SourcesSearched = %d, want 3", record.SourcesSearched)
	}
	if !record.DemoMode {
		t.Error("demo_mode = false, want true without credentials")
	}

	// Every field of the record must be present in the JSON payload.
	var raw map[string]json.RawMessage
	_ = json.Unmarshal(w.Body.Bytes(), &raw)
	for _, key := range []string{"id", "query", "depth", "plan", "sources_searched", "findings", "report", "timestamp", "demo_mode"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("response JSON missing key %q", key)
		}
	}
}

func TestGetHistoryCapsAtTen(t *testing.T) {
	r, h := newTestHandler()

	for i := 0; i < 12; i++ {
		w := httptest.NewRecorder()
		body := fmt.Sprintf(`{"query": "topic %d", "depth": "quick"}`, i)
		req := httptest.NewRequest(http.MethodPost, "/api/research", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("run %d failed with status %d", i, w.Code)
		}
	}
	if h.Service.Engine.History.Len() != 12 {
		t.Fatalf("history holds %d records, want 12", h.Service.Engine.History.Len())
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/history", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var records []research.ResearchRecord
	if err := json.Unmarshal(w.Body.Bytes(), &records); err != nil {
		t.Fatalf("failed to decode history: %v", err)
	}
	if len(records) != 10 {
		t.Fatalf("history returned %d records, want 10", len(records))
	}
	// Insertion order, most recent last.
	if records[0].Query != "topic 2" || records[9].Query != "topic 11" {
		t.Errorf("unexpected window: first = %q, last = %q", records[0].Query, records[9].Query)
	}
}

func TestGetHistoryEmpty(t *testing.T) {
	r, _ := newTestHandler()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/history", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if got := strings.TrimSpace(w.Body.String()); got != "[]" {
		t.Errorf("empty history body = %q, want []", got)
	}
}

func TestGetStatus(t *testing.T) {
	r, _ := newTestHandler()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/status", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var status Status
	if err := json.Unmarshal(w.Body.Bytes(), &status); err != nil {
		t.Fatalf("failed to decode status: %v", err)
	}
	if status.Status != "operational" {
		t.Errorf("status = %q, want operational", status.Status)
	}
	if !status.DemoMode {
		t.Error("demo_mode = false, want true without credentials")
	}
	if status.Features.AIPlanning || status.Features.WebSearch || status.Features.Synthesis {
		t.Errorf("features = %+v, want all disabled without credentials", status.Features)
	}
}

func TestStatusReflectsIndependentProviders(t *testing.T) {
	tests := []struct {
		name       string
		cfg        *config.Config
		wantAI     bool
		wantSearch bool
	}{
		{"Both", &config.Config{OpenAIAPIKey: "k", SerperAPIKey: "k"}, true, true},
		{"AI only", &config.Config{OpenAIAPIKey: "k"}, true, false},
		{"Search only", &config.Config{SerperAPIKey: "k"}, false, true},
		{"Neither", &config.Config{}, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(research.NewEngine(nil, nil, research.NewHistory()), tt.cfg)
			status := svc.Status()
			if status.Features.AIPlanning != tt.wantAI || status.Features.Synthesis != tt.wantAI {
				t.Errorf("AI features = %+v, want %v", status.Features, tt.wantAI)
			}
			if status.Features.WebSearch != tt.wantSearch {
				t.Errorf("web_search = %v, want %v", status.Features.WebSearch, tt.wantSearch)
			}
			if status.DemoMode != !tt.wantAI {
				t.Errorf("demo_mode = %v, want %v", status.DemoMode, !tt.wantAI)
			}
		})
	}
}

func TestGetLogs(t *testing.T) {
	r, h := newTestHandler()

	logger := slog.New(h.Logs)
	logger.Info("research started", "query", "x")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/logs", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var entries []LogEntry
	if err := json.Unmarshal(w.Body.Bytes(), &entries); err != nil {
		t.Fatalf("failed to decode logs: %v", err)
	}
	if len(entries) != 1 || entries[0].Message != "research started" {
		t.Errorf("entries = %+v, want the single logged record", entries)
	}
}
