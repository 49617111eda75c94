package server

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// LogEntry is one captured log record, exposed via the logs endpoint.
type LogEntry struct {
	Timestamp time.Time              `json:"timestamp"`
	Level     string                 `json:"level"`
	Message   string                 `json:"message"`
	Metadata  map[string]interface{} `json:"metadata"`
}

// MemoryLogHandler is a slog.Handler that keeps the most recent records in
// memory. The server fans records out to this handler alongside the
// terminal handler so collaborators can inspect recent activity.
type MemoryLogHandler struct {
	mu      sync.RWMutex
	entries []LogEntry
	max     int
}

func NewMemoryLogHandler(max int) *MemoryLogHandler {
	if max <= 0 {
		max = 500
	}
	return &MemoryLogHandler{max: max}
}

func (h *MemoryLogHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return true // Capture everything
}

func (h *MemoryLogHandler) Handle(ctx context.Context, r slog.Record) error {
	// Extract attributes to a plain map
	attrs := make(map[string]interface{})
	r.Attrs(func(a slog.Attr) bool {
		attrs[a.Key] = a.Value.Any()
		return true
	})

	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries = append(h.entries, LogEntry{
		Timestamp: r.Time,
		Level:     r.Level.String(),
		Message:   r.Message,
		Metadata:  attrs,
	})
	if len(h.entries) > h.max {
		h.entries = h.entries[len(h.entries)-h.max:]
	}
	return nil
}

func (h *MemoryLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	// For simplicity we don't build a new handler chain here; the base
	// functionality is enough for the logs endpoint.
	return h
}

func (h *MemoryLogHandler) WithGroup(name string) slog.Handler {
	return h
}

// Recent returns a copy of the last n captured entries, oldest first.
func (h *MemoryLogHandler) Recent(n int) []LogEntry {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if n > len(h.entries) {
		n = len(h.entries)
	}
	out := make([]LogEntry, n)
	copy(out, h.entries[len(h.entries)-n:])
	return out
}
