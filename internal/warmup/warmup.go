// Package warmup runs the catalog ingestion pipeline: scrape the
// catalog page, extract course records, persist them, and build the
// vector index.
package warmup

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	apperrors "github.com/brainloxlabs/coursebot-go/internal/errors"
	"github.com/brainloxlabs/coursebot-go/internal/logger"
	"github.com/brainloxlabs/coursebot-go/internal/metrics"
	"github.com/brainloxlabs/coursebot-go/internal/rag"
	"github.com/brainloxlabs/coursebot-go/internal/scraper"
	"github.com/brainloxlabs/coursebot-go/internal/scraper/brainlox"
	"github.com/brainloxlabs/coursebot-go/internal/storage"
)

// Stats tracks ingestion pipeline counts.
// All fields use atomic operations for concurrent access.
type Stats struct {
	Extracted atomic.Int64
	Persisted atomic.Int64
	Indexed   atomic.Int64
}

// Options configures an ingestion run.
type Options struct {
	CatalogURL   string
	JSONPath     string           // Export path for the processed catalog, empty to skip
	RebuildIndex bool             // Drop and re-embed the vector index instead of reusing it
	Metrics      *metrics.Metrics // Optional metrics recorder
}

// Run executes the full pipeline. The vector database may be nil when
// semantic search is disabled; indexing is skipped then.
func Run(ctx context.Context, db *storage.DB, client *scraper.Client, vdb *rag.VectorDB, log *logger.Logger, opts Options) (*Stats, error) {
	stats := &Stats{}
	log = log.WithModule("warmup")
	start := time.Now()

	pageText, err := client.GetPageText(ctx, opts.CatalogURL)
	if err != nil {
		recordScrape(opts.Metrics, "error", start)
		return stats, fmt.Errorf("scrape catalog: %w", err)
	}
	recordScrape(opts.Metrics, "success", start)

	courses := brainlox.Extract(pageText)
	if len(courses) == 0 {
		return stats, fmt.Errorf("no courses extracted from %s: %w", opts.CatalogURL, apperrors.ErrCatalogUnavailable)
	}
	stats.Extracted.Store(int64(len(courses)))
	log.WithField("count", len(courses)).Info("extracted courses from catalog page")

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := db.ReplaceAllCourses(gctx, courses); err != nil {
			return fmt.Errorf("persist courses: %w", err)
		}
		stats.Persisted.Store(int64(len(courses)))
		return nil
	})

	if opts.JSONPath != "" {
		g.Go(func() error {
			if err := storage.ExportJSON(opts.JSONPath, courses); err != nil {
				return fmt.Errorf("export catalog JSON: %w", err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return stats, err
	}

	if vdb != nil {
		indexErr := vdb.Initialize(ctx, courses)
		if indexErr == nil && opts.RebuildIndex {
			indexErr = vdb.Rebuild(ctx, courses)
		}
		if indexErr != nil {
			return stats, fmt.Errorf("build vector index: %w", indexErr)
		}
		stats.Indexed.Store(int64(vdb.Count()))
	}

	if opts.Metrics != nil {
		opts.Metrics.CatalogCourses.Set(float64(len(courses)))
		opts.Metrics.CatalogLastLoaded.SetToCurrentTime()
	}

	log.WithFields(map[string]any{
		"courses":     len(courses),
		"indexed":     stats.Indexed.Load(),
		"duration_ms": time.Since(start).Milliseconds(),
	}).Info("catalog ingestion complete")

	return stats, nil
}

func recordScrape(m *metrics.Metrics, status string, start time.Time) {
	if m == nil {
		return
	}
	m.ScraperRequestsTotal.WithLabelValues(status).Inc()
	m.ScraperDurationSeconds.Observe(time.Since(start).Seconds())
}
