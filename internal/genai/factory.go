package genai

import (
	"fmt"

	chromem "github.com/philippgille/chromem-go"

	"github.com/brainloxlabs/coursebot-go/internal/config"
)

// Embedder generates embedding vectors and reports whether it is
// usable. Both provider clients implement it.
type Embedder interface {
	IsConfigured() bool
	EmbeddingFunc() chromem.EmbeddingFunc
}

// NewEmbedder builds the embedding client selected by configuration.
// Returns an error for unknown providers; an empty API key yields a
// client whose IsConfigured reports false.
func NewEmbedder(cfg *config.Config) (Embedder, error) {
	switch cfg.EmbeddingProvider {
	case config.ProviderGemini:
		return NewGeminiClient(cfg.GeminiAPIKey), nil
	case config.ProviderOpenAI:
		return NewOpenAIClient(cfg.OpenAIAPIKey), nil
	default:
		return nil, fmt.Errorf("unknown embedding provider: %s", cfg.EmbeddingProvider)
	}
}
