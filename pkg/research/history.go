package research

import "sync"

// History is an append-only, in-memory store of completed research runs.
// Concurrent research requests append through a mutex; records are
// immutable once appended.
type History struct {
	mu      sync.RWMutex
	records []ResearchRecord
}

func NewHistory() *History {
	return &History{}
}

// Append adds a finished record to the history.
func (h *History) Append(record ResearchRecord) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = append(h.records, record)
}

// Len returns the total number of stored records.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.records)
}

// Recent returns a copy of the last n records in insertion order, most
// recent last. It returns fewer when the history is shorter than n.
func (h *History) Recent(n int) []ResearchRecord {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if n > len(h.records) {
		n = len(h.records)
	}
	out := make([]ResearchRecord, n)
	copy(out, h.records[len(h.records)-n:])
	return out
}
