package scraper

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/brainloxlabs/coursebot-go/internal/errors"
)

func TestGet_Success(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(5*time.Second, 0)
	resp, err := c.Get(context.Background(), srv.URL)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestGet_PermanentErrorNotRetried(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(5*time.Second, 3)
	_, err := c.Get(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())

	var scrapeErr *apperrors.ScrapeError
	require.ErrorAs(t, err, &scrapeErr)
	assert.Equal(t, http.StatusNotFound, scrapeErr.StatusCode)
}

func TestGetPageText(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html><body><div>$10 per session</div><p>Java Basics</p></body></html>"))
	}))
	defer srv.Close()

	c := NewClient(5*time.Second, 0)
	text, err := c.GetPageText(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Contains(t, text, "$10 per session")
	assert.Contains(t, text, "Java Basics")
}

func TestRetryWithBackoff_StopsOnPermanent(t *testing.T) {
	t.Parallel()

	var calls int
	sentinel := errors.New("gone")
	err := RetryWithBackoff(context.Background(), 5, time.Millisecond, func() error {
		calls++
		return Permanent(sentinel)
	})

	assert.ErrorIs(t, err, sentinel)
	assert.Equal(t, 1, calls)
}

func TestRetryWithBackoff_RetriesTransient(t *testing.T) {
	t.Parallel()

	var calls int
	err := RetryWithBackoff(context.Background(), 5, time.Millisecond, func() error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetryWithBackoff_ExhaustsRetries(t *testing.T) {
	t.Parallel()

	var calls int
	err := RetryWithBackoff(context.Background(), 2, time.Millisecond, func() error {
		calls++
		return errors.New("always fails")
	})

	require.Error(t, err)
	assert.Equal(t, 3, calls)
}
