package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Port:              "10000",
		LogLevel:          "info",
		ShutdownTimeout:   30 * time.Second,
		DataDir:           "./data",
		RefreshInterval:   24 * time.Hour,
		CatalogURL:        "https://brainlox.com/courses/category/technical",
		ScraperTimeout:    60 * time.Second,
		ScraperMaxRetries: 5,
		EmbeddingProvider: ProviderGemini,
		SearchTopK:        5,
		SearchThreshold:   0.6,
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "10000", cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 5, cfg.SearchTopK)
	assert.InDelta(t, 0.6, float64(cfg.SearchThreshold), 1e-6)
	assert.Equal(t, ProviderGemini, cfg.EmbeddingProvider)
	assert.False(t, cfg.SnapshotEnabled)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv(EnvPort, "8080")
	t.Setenv(EnvSearchTopK, "10")
	t.Setenv(EnvSearchThreshold, "0.75")
	t.Setenv(EnvEmbeddingProvider, ProviderOpenAI)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 10, cfg.SearchTopK)
	assert.InDelta(t, 0.75, float64(cfg.SearchThreshold), 1e-6)
	assert.Equal(t, ProviderOpenAI, cfg.EmbeddingProvider)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv(EnvSearchTopK, "not-a-number")
	t.Setenv(EnvScraperTimeout, "soon")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.SearchTopK)
	assert.Equal(t, ScraperRequest, cfg.ScraperTimeout)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"missing port", func(c *Config) { c.Port = "" }, true},
		{"missing data dir", func(c *Config) { c.DataDir = "" }, true},
		{"missing catalog url", func(c *Config) { c.CatalogURL = "" }, true},
		{"zero scraper timeout", func(c *Config) { c.ScraperTimeout = 0 }, true},
		{"negative retries", func(c *Config) { c.ScraperMaxRetries = -1 }, true},
		{"zero top k", func(c *Config) { c.SearchTopK = 0 }, true},
		{"threshold above one", func(c *Config) { c.SearchThreshold = 1.5 }, true},
		{"unknown provider", func(c *Config) { c.EmbeddingProvider = "cohere" }, true},
		{"snapshot without s3", func(c *Config) { c.SnapshotEnabled = true }, true},
		{
			"snapshot with s3",
			func(c *Config) {
				c.SnapshotEnabled = true
				c.S3Endpoint = "https://acc.r2.cloudflarestorage.com"
				c.S3AccessKeyID = "key"
				c.S3SecretAccessKey = "secret"
				c.S3Bucket = "coursebot"
			},
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDerivedPaths(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.DataDir = "/data"

	assert.Equal(t, "/data/catalog.db", cfg.SQLitePath())
	assert.Equal(t, "/data/chromem/courses", cfg.VectorStorePath())
	assert.Equal(t, "/data/processed_courses.json", cfg.CatalogJSONPath())
}

func TestEmbeddingAPIKey(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.GeminiAPIKey = "gem"
	cfg.OpenAIAPIKey = "oai"

	assert.Equal(t, "gem", cfg.EmbeddingAPIKey())
	cfg.EmbeddingProvider = ProviderOpenAI
	assert.Equal(t, "oai", cfg.EmbeddingAPIKey())
	assert.True(t, cfg.HasEmbeddingProvider())
}
