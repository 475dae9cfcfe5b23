// Package main provides the course Q&A server entry point.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/brainloxlabs/coursebot-go/internal/buildinfo"
	"github.com/brainloxlabs/coursebot-go/internal/catalog"
	"github.com/brainloxlabs/coursebot-go/internal/config"
	"github.com/brainloxlabs/coursebot-go/internal/genai"
	"github.com/brainloxlabs/coursebot-go/internal/logger"
	"github.com/brainloxlabs/coursebot-go/internal/metrics"
	"github.com/brainloxlabs/coursebot-go/internal/objstore"
	"github.com/brainloxlabs/coursebot-go/internal/query"
	"github.com/brainloxlabs/coursebot-go/internal/rag"
	"github.com/brainloxlabs/coursebot-go/internal/scraper"
	"github.com/brainloxlabs/coursebot-go/internal/sentry"
	"github.com/brainloxlabs/coursebot-go/internal/snapshot"
	"github.com/brainloxlabs/coursebot-go/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewWithOptions(cfg.LogLevel, logger.Options{
		BetterStackToken:    cfg.BetterStackToken,
		BetterStackEndpoint: cfg.BetterStackEndpoint,
	})
	log.Info("Starting coursebot server")

	if err := sentry.Initialize(sentry.Config{
		DSN:         cfg.SentryDSN,
		Environment: cfg.SentryEnvironment,
		Release:     buildinfo.Version,
		SampleRate:  cfg.SentrySampleRate,
	}); err != nil {
		log.WithError(err).Warn("Failed to initialize Sentry, error tracking disabled")
	}
	defer sentry.Flush(2 * time.Second)

	// Optional snapshot restore before the database is opened, so a
	// fresh instance can serve from the last backup.
	var snapshotMgr *snapshot.Manager
	if cfg.SnapshotEnabled {
		store, err := objstore.New(context.Background(), objstore.Config{
			Endpoint:    cfg.S3Endpoint,
			AccessKeyID: cfg.S3AccessKeyID,
			SecretKey:   cfg.S3SecretAccessKey,
			BucketName:  cfg.S3Bucket,
		})
		if err != nil {
			log.WithError(err).Fatal("Failed to create object store client")
		}
		snapshotMgr = snapshot.New(store, snapshot.Config{SnapshotKey: cfg.SnapshotKey}, log)
		if err := snapshotMgr.RestoreIfMissing(context.Background(), cfg.SQLitePath()); err != nil {
			log.WithError(err).Warn("Failed to restore catalog snapshot, starting empty")
		}
	}

	db, err := storage.New(cfg.SQLitePath())
	if err != nil {
		log.WithError(err).Fatal("Failed to open database")
	}
	defer func() { _ = db.Close() }()
	log.WithField("path", cfg.SQLitePath()).Info("Database connected")

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	registry.MustRegister(collectors.NewBuildInfoCollector())
	m := metrics.New(registry)

	scraperClient := scraper.NewClient(cfg.ScraperTimeout, cfg.ScraperMaxRetries)

	// Vector database is optional; without an embedding API key the
	// router degrades to text matching only.
	var vectorDB *rag.VectorDB
	if cfg.HasEmbeddingProvider() {
		embedder, err := genai.NewEmbedder(cfg)
		if err != nil {
			log.WithError(err).Fatal("Failed to create embedding client")
		}
		vectorDB, err = rag.NewVectorDB(cfg.VectorStorePath(), embedder.EmbeddingFunc(), log)
		if err != nil {
			log.WithError(err).Warn("Failed to create vector database, semantic search disabled")
			vectorDB = nil
		}
	} else {
		log.Info("No embedding API key configured, semantic search disabled")
	}

	// Serve whatever the database already holds; the refresh job keeps
	// it current afterwards.
	cat, err := catalog.LoadFromRepository(context.Background(), db)
	if err != nil {
		log.WithError(err).Fatal("Failed to load catalog")
	}
	log.WithField("courses", cat.Len()).Info("Catalog snapshot loaded")
	m.CatalogCourses.Set(float64(cat.Len()))

	if vectorDB != nil {
		if err := vectorDB.Initialize(context.Background(), cat.Courses()); err != nil {
			log.WithError(err).Warn("Failed to initialize vector store")
		}
	}

	router := query.NewRouter(cat, searcherOrNil(vectorDB), log, m, cfg.SearchTopK, cfg.SearchThreshold)

	if cfg.LogLevel == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(securityHeadersMiddleware())
	engine.Use(requestIDMiddleware())
	engine.Use(loggingMiddleware(log))
	engine.Use(sentryMiddleware())

	setupRoutes(engine, cfg, router, db, vectorDB, registry, log, m)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      engine,
		ReadTimeout:  config.ServerHTTPRead,
		WriteTimeout: config.ServerHTTPWrite,
		IdleTimeout:  config.ServerHTTPIdle,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var wg sync.WaitGroup

	// Periodic catalog refresh
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer func() {
			if r := recover(); r != nil {
				log.WithField("panic", r).Error("Panic in catalog refresh goroutine")
			}
		}()
		refreshCatalog(ctx, cfg, db, scraperClient, vectorDB, router, m, log)
	}()

	// Periodic snapshot upload
	if snapshotMgr != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					log.WithField("panic", r).Error("Panic in snapshot goroutine")
				}
			}()
			uploadSnapshots(ctx, cfg, db, snapshotMgr, m, log)
		}()
	}

	go func() {
		log.WithField("port", cfg.Port).Info("Server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")
	cancel()

	goDone := make(chan struct{})
	go func() {
		wg.Wait()
		close(goDone)
	}()

	select {
	case <-goDone:
		log.Info("All background goroutines stopped")
	case <-time.After(5 * time.Second):
		log.Warn("Timeout waiting for goroutines to stop")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Server forced to shutdown")
	}

	if err := db.Close(); err != nil {
		log.WithError(err).Error("Failed to close database")
	}

	log.Info("Server stopped")
}

// searcherOrNil avoids handing the router a non-nil interface wrapping
// a nil *rag.VectorDB.
func searcherOrNil(vdb *rag.VectorDB) query.Searcher {
	if vdb == nil {
		return nil
	}
	return vdb
}
