// Command warmup runs the catalog ingestion pipeline once: scrape the
// catalog page, extract and persist course records, export the
// processed JSON, and build the vector index.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/brainloxlabs/coursebot-go/internal/config"
	"github.com/brainloxlabs/coursebot-go/internal/genai"
	"github.com/brainloxlabs/coursebot-go/internal/logger"
	"github.com/brainloxlabs/coursebot-go/internal/rag"
	"github.com/brainloxlabs/coursebot-go/internal/scraper"
	"github.com/brainloxlabs/coursebot-go/internal/storage"
	"github.com/brainloxlabs/coursebot-go/internal/warmup"
)

var (
	rebuildFlag = flag.Bool("rebuild-index", false, "Drop and re-embed the vector index")
	skipIndex   = flag.Bool("skip-index", false, "Skip vector index building")
	timeoutFlag = flag.Duration("timeout", 10*time.Minute, "Overall pipeline timeout")
)

func main() {
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel)
	log.Info("Starting catalog warmup")

	db, err := storage.New(cfg.SQLitePath())
	if err != nil {
		log.WithError(err).Fatal("Failed to open database")
	}
	defer func() { _ = db.Close() }()

	var vectorDB *rag.VectorDB
	if !*skipIndex && cfg.HasEmbeddingProvider() {
		embedder, err := genai.NewEmbedder(cfg)
		if err != nil {
			log.WithError(err).Fatal("Failed to create embedding client")
		}
		vectorDB, err = rag.NewVectorDB(cfg.VectorStorePath(), embedder.EmbeddingFunc(), log)
		if err != nil {
			log.WithError(err).Fatal("Failed to create vector database")
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeoutFlag)
	defer cancel()

	stats, err := warmup.Run(ctx, db,
		scraper.NewClient(cfg.ScraperTimeout, cfg.ScraperMaxRetries),
		vectorDB, log,
		warmup.Options{
			CatalogURL:   cfg.CatalogURL,
			JSONPath:     cfg.CatalogJSONPath(),
			RebuildIndex: *rebuildFlag,
		})
	if err != nil {
		log.WithError(err).Fatal("Warmup failed")
	}

	log.WithFields(map[string]any{
		"extracted": stats.Extracted.Load(),
		"persisted": stats.Persisted.Load(),
		"indexed":   stats.Indexed.Load(),
	}).Info("Warmup complete")
}
