package config

import "time"

// Timeout constants shared across the application.
//
// The HTTP server timeouts are sized for short JSON requests: query
// resolution is in-memory except for one embedding call, so even the
// semantic-search path completes well under ten seconds.
const (
	// ScraperRequest is the per-request timeout for catalog scraping.
	ScraperRequest = 60 * time.Second

	// QueryProcessing bounds a single /ask request, including the
	// embedding call made by the semantic-search branch.
	QueryProcessing = 15 * time.Second

	// ServerHTTPRead is the HTTP server read timeout.
	ServerHTTPRead = 10 * time.Second

	// ServerHTTPWrite is the HTTP server write timeout.
	ServerHTTPWrite = 20 * time.Second

	// ServerHTTPIdle is the HTTP server idle timeout for keep-alive connections.
	ServerHTTPIdle = 90 * time.Second

	// EmbeddingRequest is the per-call timeout for embedding providers.
	EmbeddingRequest = 30 * time.Second
)
