// Package config provides application configuration management.
// It loads settings from environment variables and provides defaults for
// the server, scraper, embeddings, and snapshot features.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Embedding provider identifiers.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// Config holds all application configuration
type Config struct {
	// Server Configuration
	Port            string
	LogLevel        string
	ShutdownTimeout time.Duration

	// Data Configuration
	DataDir         string        // Directory for SQLite database and vector store
	RefreshInterval time.Duration // How often the background job re-scrapes the catalog

	// Scraper Configuration
	CatalogURL        string // Course listing page to scrape
	ScraperTimeout    time.Duration
	ScraperMaxRetries int

	// Embedding Configuration
	EmbeddingProvider string // "gemini" or "openai"
	GeminiAPIKey      string
	OpenAIAPIKey      string

	// Search Configuration
	SearchTopK      int     // Candidates requested per semantic search
	SearchThreshold float32 // Minimum similarity score (inclusive)

	// Metrics Authentication
	MetricsUsername string // Username for /metrics Basic Auth
	MetricsPassword string // Password for /metrics Basic Auth (empty = no auth)

	// Sentry
	SentryDSN         string
	SentryEnvironment string
	SentrySampleRate  float64

	// Better Stack log shipping
	BetterStackToken    string
	BetterStackEndpoint string

	// Snapshot backup (S3-compatible object storage)
	SnapshotEnabled   bool
	SnapshotInterval  time.Duration
	S3Endpoint        string
	S3AccessKeyID     string
	S3SecretAccessKey string
	S3Bucket          string
	SnapshotKey       string
}

// Load reads configuration from environment variables.
// It attempts to load a .env file first, then reads from env vars.
func Load() (*Config, error) {
	// Ignore error if .env file doesn't exist
	_ = godotenv.Load()

	cfg := &Config{
		Port:            getEnv(EnvPort, "10000"),
		LogLevel:        getEnv(EnvLogLevel, "info"),
		ShutdownTimeout: getDurationEnv(EnvShutdownTimeout, 30*time.Second),

		DataDir:         getEnv(EnvDataDir, "./data"),
		RefreshInterval: getDurationEnv(EnvRefreshInterval, 24*time.Hour),

		CatalogURL:        getEnv(EnvCatalogURL, "https://brainlox.com/courses/category/technical"),
		ScraperTimeout:    getDurationEnv(EnvScraperTimeout, ScraperRequest),
		ScraperMaxRetries: getIntEnv(EnvScraperMaxRetries, 5),

		EmbeddingProvider: getEnv(EnvEmbeddingProvider, ProviderGemini),
		GeminiAPIKey:      getEnv(EnvGeminiAPIKey, ""),
		OpenAIAPIKey:      getEnv(EnvOpenAIAPIKey, ""),

		SearchTopK:      getIntEnv(EnvSearchTopK, 5),
		SearchThreshold: float32(getFloatEnv(EnvSearchThreshold, 0.6)),

		MetricsUsername: getEnv(EnvMetricsUsername, "prometheus"),
		MetricsPassword: getEnv(EnvMetricsPassword, ""),

		SentryDSN:         getEnv(EnvSentryDSN, ""),
		SentryEnvironment: getEnv(EnvSentryEnvironment, "production"),
		SentrySampleRate:  getFloatEnv(EnvSentrySampleRate, 1.0),

		BetterStackToken:    getEnv(EnvBetterStackToken, ""),
		BetterStackEndpoint: getEnv(EnvBetterStackEndpoint, ""),

		SnapshotEnabled:   getBoolEnv(EnvSnapshotEnabled, false),
		SnapshotInterval:  getDurationEnv(EnvSnapshotInterval, 6*time.Hour),
		S3Endpoint:        getEnv(EnvS3Endpoint, ""),
		S3AccessKeyID:     getEnv(EnvS3AccessKeyID, ""),
		S3SecretAccessKey: getEnv(EnvS3SecretAccessKey, ""),
		S3Bucket:          getEnv(EnvS3Bucket, ""),
		SnapshotKey:       getEnv(EnvSnapshotKey, "snapshots/catalog.db.zst"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks if required configuration values are set
func (c *Config) Validate() error {
	var errs []error

	if c.Port == "" {
		errs = append(errs, errors.New(EnvPort+" is required"))
	}
	if c.DataDir == "" {
		errs = append(errs, errors.New(EnvDataDir+" is required"))
	}
	if c.CatalogURL == "" {
		errs = append(errs, errors.New(EnvCatalogURL+" is required"))
	}
	if c.ScraperTimeout <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive, got %v", EnvScraperTimeout, c.ScraperTimeout))
	}
	if c.ScraperMaxRetries < 0 {
		errs = append(errs, fmt.Errorf("%s cannot be negative, got %d", EnvScraperMaxRetries, c.ScraperMaxRetries))
	}
	if c.SearchTopK <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive, got %d", EnvSearchTopK, c.SearchTopK))
	}
	if c.SearchThreshold < 0 || c.SearchThreshold > 1 {
		errs = append(errs, fmt.Errorf("%s must be in [0,1], got %v", EnvSearchThreshold, c.SearchThreshold))
	}
	if c.EmbeddingProvider != ProviderGemini && c.EmbeddingProvider != ProviderOpenAI {
		errs = append(errs, fmt.Errorf("%s must be %q or %q, got %q",
			EnvEmbeddingProvider, ProviderGemini, ProviderOpenAI, c.EmbeddingProvider))
	}
	if c.SnapshotEnabled {
		if c.S3Endpoint == "" || c.S3AccessKeyID == "" || c.S3SecretAccessKey == "" || c.S3Bucket == "" {
			errs = append(errs, errors.New("snapshot backup enabled but S3 settings are incomplete"))
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// SQLitePath returns the full path to the SQLite catalog database file
func (c *Config) SQLitePath() string {
	return filepath.Join(c.DataDir, "catalog.db")
}

// VectorStorePath returns the persistence directory for the vector store
func (c *Config) VectorStorePath() string {
	return filepath.Join(c.DataDir, "chromem", "courses")
}

// CatalogJSONPath returns the path of the exported JSON catalog
func (c *Config) CatalogJSONPath() string {
	return filepath.Join(c.DataDir, "processed_courses.json")
}

// EmbeddingAPIKey returns the API key for the configured embedding provider.
func (c *Config) EmbeddingAPIKey() string {
	if c.EmbeddingProvider == ProviderOpenAI {
		return c.OpenAIAPIKey
	}
	return c.GeminiAPIKey
}

// HasEmbeddingProvider returns true if the configured provider has an API key.
func (c *Config) HasEmbeddingProvider() bool {
	return c.EmbeddingAPIKey() != ""
}

// getEnv retrieves environment variable with fallback to default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getIntEnv retrieves integer environment variable with fallback to default value
func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getDurationEnv retrieves duration environment variable with fallback to default value
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// getFloatEnv retrieves float64 environment variable with fallback to default value
func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// getBoolEnv retrieves boolean environment variable with fallback to default value
func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
