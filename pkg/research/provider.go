package research

import (
	"context"
	"fmt"
)

// Completer issues a single completion request to an AI provider and
// returns the raw text response. Implementations make exactly one outbound
// call per invocation, no retries.
type Completer interface {
	Complete(ctx context.Context, prompt string, temperature float64) (string, error)
}

// Searcher issues a single web search and returns up to 5 results.
type Searcher interface {
	Search(ctx context.Context, query string) ([]SearchResult, error)
}

// ProviderError wraps any failure of an outbound provider call: transport
// error, non-2xx status, or an unparseable response body. Stages recover
// from it locally via fallback; it is never surfaced to callers.
type ProviderError struct {
	Op  string
	Err error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s: %v", e.Op, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
