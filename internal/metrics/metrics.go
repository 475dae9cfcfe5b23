package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Query pipeline metrics
	QueriesTotal         *prometheus.CounterVec
	QueryDurationSeconds *prometheus.HistogramVec

	// Similarity search metrics
	SearchResultsReturned prometheus.Histogram
	SearchErrorsTotal     prometheus.Counter

	// Embedding metrics
	EmbeddingRequestsTotal  *prometheus.CounterVec
	EmbeddingDurationSecond *prometheus.HistogramVec

	// Scraper metrics
	ScraperRequestsTotal   *prometheus.CounterVec
	ScraperDurationSeconds prometheus.Histogram

	// Catalog metrics
	CatalogCourses    prometheus.Gauge
	CatalogRefreshes  *prometheus.CounterVec
	CatalogLastLoaded prometheus.Gauge

	// Snapshot metrics
	SnapshotOpsTotal *prometheus.CounterVec

	// HTTP metrics
	HTTPErrorsTotal *prometheus.CounterVec
}

// New creates a new Metrics instance with all metrics registered
func New(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		QueriesTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "coursebot_queries_total",
				Help: "Total number of resolved queries by route",
			},
			[]string{"route"}, // route: category_list, grouped_list, title_match, similarity, fallback
		),

		QueryDurationSeconds: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "coursebot_query_duration_seconds",
				Help:    "Query resolution duration in seconds by route",
				Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 2, 5, 15},
			},
			[]string{"route"},
		),

		SearchResultsReturned: promauto.With(registry).NewHistogram(
			prometheus.HistogramOpts{
				Name:    "coursebot_search_results_returned",
				Help:    "Number of similarity results surviving the threshold per search",
				Buckets: []float64{0, 1, 2, 3, 4, 5},
			},
		),

		SearchErrorsTotal: promauto.With(registry).NewCounter(
			prometheus.CounterOpts{
				Name: "coursebot_search_errors_total",
				Help: "Total number of similarity search failures",
			},
		),

		EmbeddingRequestsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "coursebot_embedding_requests_total",
				Help: "Total number of embedding API requests by provider and status",
			},
			[]string{"provider", "status"}, // status: success, error
		),

		EmbeddingDurationSecond: promauto.With(registry).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "coursebot_embedding_duration_seconds",
				Help:    "Embedding API request duration in seconds by provider",
				Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
			},
			[]string{"provider"},
		),

		ScraperRequestsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "coursebot_scraper_requests_total",
				Help: "Total number of catalog scraper requests by status",
			},
			[]string{"status"}, // status: success, error, timeout
		),

		ScraperDurationSeconds: promauto.With(registry).NewHistogram(
			prometheus.HistogramOpts{
				Name:    "coursebot_scraper_duration_seconds",
				Help:    "Catalog scrape duration in seconds",
				Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30, 60},
			},
		),

		CatalogCourses: promauto.With(registry).NewGauge(
			prometheus.GaugeOpts{
				Name: "coursebot_catalog_courses",
				Help: "Number of courses in the active catalog snapshot",
			},
		),

		CatalogRefreshes: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "coursebot_catalog_refreshes_total",
				Help: "Total number of catalog refresh attempts by status",
			},
			[]string{"status"}, // status: success, error
		),

		CatalogLastLoaded: promauto.With(registry).NewGauge(
			prometheus.GaugeOpts{
				Name: "coursebot_catalog_last_loaded_timestamp_seconds",
				Help: "Unix timestamp of the last successful catalog load",
			},
		),

		SnapshotOpsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "coursebot_snapshot_operations_total",
				Help: "Total number of snapshot operations by operation and status",
			},
			[]string{"operation", "status"}, // operation: upload, download
		),

		HTTPErrorsTotal: promauto.With(registry).NewCounterVec(
			prometheus.CounterOpts{
				Name: "coursebot_http_errors_total",
				Help: "Total HTTP errors by type",
			},
			[]string{"error_type"},
		),
	}

	return m
}

// NewWithDefaultRegistry creates a Metrics instance backed by a fresh
// registry, mainly for tests.
func NewWithDefaultRegistry() (*Metrics, *prometheus.Registry) {
	registry := prometheus.NewRegistry()
	return New(registry), registry
}
