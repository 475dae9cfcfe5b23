package warmup

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brainloxlabs/coursebot-go/internal/logger"
	"github.com/brainloxlabs/coursebot-go/internal/scraper"
	"github.com/brainloxlabs/coursebot-go/internal/storage"
)

const catalogPage = `<html><body>
<div>$10 per session Java Basics: Learn core Java 5 Lessons View Details</div>
<div>$12 per session Python for Kids: Fun projects 8 Lessons View Details</div>
</body></html>`

func TestRun_FullPipeline(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(catalogPage))
	}))
	defer srv.Close()

	db, err := storage.NewTestDB()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	jsonPath := filepath.Join(t.TempDir(), "processed_courses.json")

	stats, err := Run(context.Background(),
		db,
		scraper.NewClient(5*time.Second, 0),
		nil,
		logger.New("error"),
		Options{CatalogURL: srv.URL, JSONPath: jsonPath},
	)
	require.NoError(t, err)

	assert.Equal(t, int64(2), stats.Extracted.Load())
	assert.Equal(t, int64(2), stats.Persisted.Load())
	assert.Equal(t, int64(0), stats.Indexed.Load())

	count, err := db.CountCourses(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	exported, err := storage.ImportJSON(jsonPath)
	require.NoError(t, err)
	assert.Len(t, exported, 2)
}

func TestRun_EmptyPageFails(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html><body>nothing here</body></html>"))
	}))
	defer srv.Close()

	db, err := storage.NewTestDB()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	_, err = Run(context.Background(),
		db,
		scraper.NewClient(5*time.Second, 0),
		nil,
		logger.New("error"),
		Options{CatalogURL: srv.URL},
	)
	assert.Error(t, err)
}

func TestRun_ScrapeFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	db, err := storage.NewTestDB()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	_, err = Run(context.Background(),
		db,
		scraper.NewClient(5*time.Second, 0),
		nil,
		logger.New("error"),
		Options{CatalogURL: srv.URL},
	)
	assert.Error(t, err)
}
