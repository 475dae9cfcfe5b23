package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSentinelErrors(t *testing.T) {
	t.Parallel()

	wrapped := fmt.Errorf("loading catalog: %w", ErrCatalogUnavailable)
	assert.True(t, errors.Is(wrapped, ErrCatalogUnavailable))
	assert.False(t, errors.Is(wrapped, ErrIndexUnavailable))
}

func TestValidationError(t *testing.T) {
	t.Parallel()

	err := NewValidationError("query", "must not be empty")
	assert.Equal(t, "validation failed on query: must not be empty", err.Error())
}

func TestScrapeError(t *testing.T) {
	t.Parallel()

	cause := errors.New("connection refused")
	err := NewScrapeError("https://brainlox.com/courses", 0, cause)
	assert.Contains(t, err.Error(), "brainlox.com")
	assert.True(t, errors.Is(err, cause))

	withStatus := NewScrapeError("https://brainlox.com/courses", 503, cause)
	assert.Contains(t, withStatus.Error(), "status=503")
}

func TestEmbeddingError(t *testing.T) {
	t.Parallel()

	cause := errors.New("quota exceeded")
	err := NewEmbeddingError("gemini", cause)
	require.Contains(t, err.Error(), "gemini")
	assert.True(t, errors.Is(err, cause))
}
