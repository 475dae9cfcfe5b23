package genai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGeminiClient(t *testing.T, handler http.HandlerFunc) *GeminiClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewGeminiClient("test-key")
	c.baseURL = srv.URL
	c.httpClient = srv.Client()
	return c
}

func TestGeminiEmbed_Success(t *testing.T) {
	t.Parallel()

	c := newTestGeminiClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Contains(t, r.URL.Path, "embedContent")

		resp := map[string]any{
			"embedding": map[string]any{"values": []float32{0.1, 0.2, 0.3}},
		}
		_ = json.NewEncoder(w).Encode(resp)
	})

	values, err := c.Embed(context.Background(), "Category: Java\nTitle: Java Basics")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, values)
}

func TestGeminiEmbed_EmptyText(t *testing.T) {
	t.Parallel()

	c := NewGeminiClient("test-key")
	_, err := c.Embed(context.Background(), "   ")
	assert.Error(t, err)
}

func TestGeminiEmbed_MissingKey(t *testing.T) {
	t.Parallel()

	c := NewGeminiClient("")
	assert.False(t, c.IsConfigured())

	_, err := c.Embed(context.Background(), "text")
	assert.Error(t, err)
}

func TestGeminiEmbed_RetriesServerErrors(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	c := newTestGeminiClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		resp := map[string]any{
			"embedding": map[string]any{"values": []float32{0.5}},
		}
		_ = json.NewEncoder(w).Encode(resp)
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	values, err := c.Embed(ctx, "text")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.5}, values)
	assert.Equal(t, int32(2), calls.Load())
}

func TestGeminiEmbed_NonRetryableAPIError(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	c := newTestGeminiClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		resp := map[string]any{
			"error": map[string]any{
				"code":    400,
				"message": "invalid argument",
				"status":  "INVALID_ARGUMENT",
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	})

	_, err := c.Embed(context.Background(), "text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "INVALID_ARGUMENT")
	assert.Equal(t, int32(1), calls.Load())
}

func TestApplyJitter_Bounds(t *testing.T) {
	t.Parallel()

	base := 2 * time.Second
	for range 50 {
		d := applyJitter(base)
		assert.GreaterOrEqual(t, d, time.Duration(float64(base)*0.74))
		assert.LessOrEqual(t, d, time.Duration(float64(base)*1.26))
	}
}
