package genai

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	chromem "github.com/philippgille/chromem-go"

	apperrors "github.com/brainloxlabs/coursebot-go/internal/errors"
	"github.com/brainloxlabs/coursebot-go/internal/ratelimit"
)

const (
	// OpenAIEmbeddingModel is the model used for generating embeddings
	OpenAIEmbeddingModel = openai.EmbeddingModelTextEmbedding3Small

	// OpenAIAPIRateLimit is a conservative requests per minute budget
	OpenAIAPIRateLimit = 500
)

// OpenAIClient generates embeddings via the OpenAI API.
type OpenAIClient struct {
	client      openai.Client
	configured  bool
	rateLimiter *ratelimit.Limiter
}

// NewOpenAIClient creates an OpenAI embedding client.
func NewOpenAIClient(apiKey string) *OpenAIClient {
	return &OpenAIClient{
		client:      openai.NewClient(option.WithAPIKey(apiKey)),
		configured:  apiKey != "",
		rateLimiter: ratelimit.NewPerMinute(OpenAIAPIRateLimit),
	}
}

// Embed generates an embedding vector for the given text.
func (c *OpenAIClient) Embed(ctx context.Context, text string) ([]float32, error) {
	if !c.configured {
		return nil, fmt.Errorf("openai API key not configured")
	}
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("empty or whitespace-only text cannot be embedded")
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	resp, err := c.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Input: openai.EmbeddingNewParamsInputUnion{
			OfString: openai.String(text),
		},
		Model: OpenAIEmbeddingModel,
	})
	if err != nil {
		return nil, apperrors.NewEmbeddingError("openai", err)
	}
	if len(resp.Data) == 0 || len(resp.Data[0].Embedding) == 0 {
		return nil, apperrors.NewEmbeddingError("openai", fmt.Errorf("empty embedding returned"))
	}

	values := make([]float32, len(resp.Data[0].Embedding))
	for i, v := range resp.Data[0].Embedding {
		values[i] = float32(v)
	}
	return values, nil
}

// IsConfigured returns true if the API key is set
func (c *OpenAIClient) IsConfigured() bool {
	return c.configured
}

// EmbeddingFunc adapts the client to chromem-go.
func (c *OpenAIClient) EmbeddingFunc() chromem.EmbeddingFunc {
	return func(ctx context.Context, text string) ([]float32, error) {
		return c.Embed(ctx, text)
	}
}
