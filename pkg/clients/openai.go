package clients

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"

	"github.com/mikeboe/research-agent/pkg/research"
)

// DefaultModel is the completion model used when none is configured.
const DefaultModel = "gpt-3.5-turbo"

// OpenAIClient issues single-shot completion requests against the OpenAI
// chat completions API. Every pipeline prompt asks for JSON, so requests
// run in JSON mode.
type OpenAIClient struct {
	llm *openai.LLM
}

func NewOpenAIClient(apiKey, model string) (*OpenAIClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key is empty")
	}
	if model == "" {
		model = DefaultModel
	}

	llm, err := openai.New(
		openai.WithToken(apiKey),
		openai.WithModel(model),
		openai.WithHTTPClient(&http.Client{Timeout: 60 * time.Second}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to init OpenAI client: %w", err)
	}

	return &OpenAIClient{llm: llm}, nil
}

// Complete sends one completion request and returns the raw text of the
// first choice. No retries; failures surface as a ProviderError for the
// caller's fallback logic.
func (c *OpenAIClient) Complete(ctx context.Context, prompt string, temperature float64) (string, error) {
	resp, err := c.llm.GenerateContent(ctx,
		[]llms.MessageContent{
			llms.TextParts(schema.ChatMessageTypeHuman, prompt),
		},
		llms.WithTemperature(temperature),
		llms.WithJSONMode(),
	)
	if err != nil {
		return "", &research.ProviderError{Op: "complete", Err: err}
	}
	if len(resp.Choices) == 0 {
		return "", &research.ProviderError{Op: "complete", Err: fmt.Errorf("llm returned no choices")}
	}
	return resp.Choices[0].Content, nil
}
