package genai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brainloxlabs/coursebot-go/internal/config"
)

func TestNewEmbedder(t *testing.T) {
	t.Parallel()

	gemini, err := NewEmbedder(&config.Config{
		EmbeddingProvider: config.ProviderGemini,
		GeminiAPIKey:      "key",
	})
	require.NoError(t, err)
	assert.IsType(t, &GeminiClient{}, gemini)
	assert.True(t, gemini.IsConfigured())

	oai, err := NewEmbedder(&config.Config{
		EmbeddingProvider: config.ProviderOpenAI,
	})
	require.NoError(t, err)
	assert.IsType(t, &OpenAIClient{}, oai)
	assert.False(t, oai.IsConfigured())

	_, err = NewEmbedder(&config.Config{EmbeddingProvider: "cohere"})
	assert.Error(t, err)
}
