// Package config defines environment variable keys for configuration.
package config

//nolint:gosec // Environment variable keys are not credentials.
const (
	// Server
	EnvPort            = "COURSEBOT_PORT"
	EnvLogLevel        = "COURSEBOT_LOG_LEVEL"
	EnvShutdownTimeout = "COURSEBOT_SHUTDOWN_TIMEOUT"

	// Data
	EnvDataDir         = "COURSEBOT_DATA_DIR"
	EnvRefreshInterval = "COURSEBOT_REFRESH_INTERVAL"

	// Scraper
	EnvCatalogURL        = "COURSEBOT_CATALOG_URL"
	EnvScraperTimeout    = "COURSEBOT_SCRAPER_TIMEOUT"
	EnvScraperMaxRetries = "COURSEBOT_SCRAPER_MAX_RETRIES"

	// Embeddings
	EnvEmbeddingProvider = "COURSEBOT_EMBEDDING_PROVIDER"
	EnvGeminiAPIKey      = "COURSEBOT_GEMINI_API_KEY"
	EnvOpenAIAPIKey      = "COURSEBOT_OPENAI_API_KEY"

	// Search
	EnvSearchTopK      = "COURSEBOT_SEARCH_TOP_K"
	EnvSearchThreshold = "COURSEBOT_SEARCH_THRESHOLD"

	// Metrics Auth
	EnvMetricsUsername = "COURSEBOT_METRICS_USERNAME"
	EnvMetricsPassword = "COURSEBOT_METRICS_PASSWORD"

	// Sentry
	EnvSentryDSN         = "COURSEBOT_SENTRY_DSN"
	EnvSentryEnvironment = "COURSEBOT_SENTRY_ENVIRONMENT"
	EnvSentrySampleRate  = "COURSEBOT_SENTRY_SAMPLE_RATE"

	// Better Stack
	EnvBetterStackToken    = "COURSEBOT_BETTERSTACK_TOKEN"
	EnvBetterStackEndpoint = "COURSEBOT_BETTERSTACK_ENDPOINT"

	// Snapshot backup
	EnvSnapshotEnabled   = "COURSEBOT_SNAPSHOT_ENABLED"
	EnvSnapshotInterval  = "COURSEBOT_SNAPSHOT_INTERVAL"
	EnvS3Endpoint        = "COURSEBOT_S3_ENDPOINT"
	EnvS3AccessKeyID     = "COURSEBOT_S3_ACCESS_KEY_ID"
	EnvS3SecretAccessKey = "COURSEBOT_S3_SECRET_ACCESS_KEY"
	EnvS3Bucket          = "COURSEBOT_S3_BUCKET"
	EnvSnapshotKey       = "COURSEBOT_SNAPSHOT_KEY"
)
