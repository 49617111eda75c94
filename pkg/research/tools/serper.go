package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mikeboe/research-agent/pkg/research"
)

const (
	serperURL = "https://google.serper.dev/search"

	// maxResults caps how many organic results a single search returns.
	maxResults = 5
)

// SerperClient performs Google searches through the Serper API. One
// outbound request per Search call, no retries. The bounded client
// timeout keeps an unresponsive provider from blocking a run forever.
type SerperClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewSerperClient(apiKey string) *SerperClient {
	return &SerperClient{
		apiKey:  apiKey,
		baseURL: serperURL,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

type serperRequest struct {
	Q   string `json:"q"`
	Num int    `json:"num"`
}

type serperResponse struct {
	Organic []research.SearchResult `json:"organic"`
}

// Search runs one web search and returns up to 5 organic results.
func (c *SerperClient) Search(ctx context.Context, query string) ([]research.SearchResult, error) {
	body, err := json.Marshal(serperRequest{Q: query, Num: maxResults})
	if err != nil {
		return nil, &research.ProviderError{Op: "search", Err: fmt.Errorf("failed to marshal request body: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, &research.ProviderError{Op: "search", Err: fmt.Errorf("failed to create HTTP request: %w", err)}
	}
	req.Header.Set("X-API-KEY", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &research.ProviderError{Op: "search", Err: fmt.Errorf("failed to make API request: %w", err)}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &research.ProviderError{Op: "search", Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &research.ProviderError{
			Op:  "search",
			Err: fmt.Errorf("API returned non-200 status code: %d, body: %s", resp.StatusCode, string(respBody)),
		}
	}

	var parsed serperResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, &research.ProviderError{Op: "search", Err: fmt.Errorf("failed to unmarshal response: %w", err)}
	}

	results := parsed.Organic
	if len(results) > maxResults {
		results = results[:maxResults]
	}
	return results, nil
}
