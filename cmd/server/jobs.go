// Package main provides the course Q&A server entry point.
package main

import (
	"context"
	"time"

	"github.com/brainloxlabs/coursebot-go/internal/catalog"
	"github.com/brainloxlabs/coursebot-go/internal/config"
	"github.com/brainloxlabs/coursebot-go/internal/logger"
	"github.com/brainloxlabs/coursebot-go/internal/metrics"
	"github.com/brainloxlabs/coursebot-go/internal/query"
	"github.com/brainloxlabs/coursebot-go/internal/rag"
	"github.com/brainloxlabs/coursebot-go/internal/scraper"
	"github.com/brainloxlabs/coursebot-go/internal/sentry"
	"github.com/brainloxlabs/coursebot-go/internal/snapshot"
	"github.com/brainloxlabs/coursebot-go/internal/storage"
	"github.com/brainloxlabs/coursebot-go/internal/warmup"
)

// refreshCatalog periodically re-scrapes the catalog, rebuilds the
// vector index, and swaps a fresh snapshot into the router. An empty
// database triggers an immediate first run.
func refreshCatalog(ctx context.Context, cfg *config.Config, db *storage.DB, client *scraper.Client, vectorDB *rag.VectorDB, router *query.Router, m *metrics.Metrics, log *logger.Logger) {
	log = log.WithModule("refresh")

	if count, err := db.CountCourses(ctx); err == nil && count == 0 {
		runRefresh(ctx, cfg, db, client, vectorDB, router, m, log)
	}

	ticker := time.NewTicker(cfg.RefreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("Catalog refresh job stopped")
			return
		case <-ticker.C:
			runRefresh(ctx, cfg, db, client, vectorDB, router, m, log)
		}
	}
}

func runRefresh(ctx context.Context, cfg *config.Config, db *storage.DB, client *scraper.Client, vectorDB *rag.VectorDB, router *query.Router, m *metrics.Metrics, log *logger.Logger) {
	stats, err := warmup.Run(ctx, db, client, vectorDB, log, warmup.Options{
		CatalogURL:   cfg.CatalogURL,
		JSONPath:     cfg.CatalogJSONPath(),
		RebuildIndex: true,
		Metrics:      m,
	})
	if err != nil {
		m.CatalogRefreshes.WithLabelValues("error").Inc()
		sentry.CaptureException(err)
		log.WithError(err).Error("Catalog refresh failed, keeping previous snapshot")
		return
	}

	cat, err := catalog.LoadFromRepository(ctx, db)
	if err != nil {
		m.CatalogRefreshes.WithLabelValues("error").Inc()
		log.WithError(err).Error("Failed to reload catalog after refresh")
		return
	}

	router.SetCatalog(cat)
	m.CatalogRefreshes.WithLabelValues("success").Inc()
	log.WithFields(map[string]any{
		"courses": stats.Persisted.Load(),
		"indexed": stats.Indexed.Load(),
	}).Info("Catalog refreshed")
}

// uploadSnapshots periodically backs up the catalog database to object
// storage.
func uploadSnapshots(ctx context.Context, cfg *config.Config, db *storage.DB, mgr *snapshot.Manager, m *metrics.Metrics, log *logger.Logger) {
	log = log.WithModule("snapshot")

	ticker := time.NewTicker(cfg.SnapshotInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("Snapshot job stopped")
			return
		case <-ticker.C:
			if _, err := mgr.Upload(ctx, db); err != nil {
				m.SnapshotOpsTotal.WithLabelValues("upload", "error").Inc()
				sentry.CaptureException(err)
				log.WithError(err).Error("Snapshot upload failed")
				continue
			}
			m.SnapshotOpsTotal.WithLabelValues("upload", "success").Inc()
		}
	}
}
