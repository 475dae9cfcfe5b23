// Package main provides the course Q&A server entry point.
package main

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/brainloxlabs/coursebot-go/internal/config"
	"github.com/brainloxlabs/coursebot-go/internal/logger"
	"github.com/brainloxlabs/coursebot-go/internal/metrics"
	"github.com/brainloxlabs/coursebot-go/internal/query"
	"github.com/brainloxlabs/coursebot-go/internal/rag"
	"github.com/brainloxlabs/coursebot-go/internal/storage"
)

// askRequest is the payload for the question endpoint.
type askRequest struct {
	Question string `json:"question" binding:"required"`
}

// setupRoutes configures all HTTP routes
func setupRoutes(engine *gin.Engine, cfg *config.Config, router *query.Router, db *storage.DB, vectorDB *rag.VectorDB, registry *prometheus.Registry, log *logger.Logger, m *metrics.Metrics) {
	// Liveness probe - process is up, no dependency checks.
	healthHandler := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
	engine.GET("/healthz", healthHandler)
	engine.HEAD("/healthz", healthHandler)

	// Readiness probe - full dependency check.
	readyHandler := func(c *gin.Context) {
		if err := db.Ready(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "not ready",
				"reason": err.Error(),
			})
			return
		}

		courseCount, _ := db.CountCourses(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{
			"status":   "ready",
			"database": "connected",
			"catalog": gin.H{
				"courses": courseCount,
				"indexed": vectorDB.Count(),
			},
		})
	}
	engine.GET("/ready", readyHandler)
	engine.HEAD("/ready", readyHandler)

	// Question endpoint. The router never fails; malformed JSON is the
	// only error surface.
	engine.POST("/ask", func(c *gin.Context) {
		var req askRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			m.HTTPErrorsTotal.WithLabelValues("bad_request").Inc()
			c.JSON(http.StatusBadRequest, gin.H{"error": "question is required"})
			return
		}
		if strings.TrimSpace(req.Question) == "" {
			m.HTTPErrorsTotal.WithLabelValues("bad_request").Inc()
			c.JSON(http.StatusBadRequest, gin.H{"error": "question is required"})
			return
		}

		answer := router.Answer(c.Request.Context(), req.Question)
		c.JSON(http.StatusOK, gin.H{"answer": answer})
	})

	// Prometheus metrics, behind basic auth when credentials are set.
	metricsHandler := gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	if cfg.MetricsPassword != "" {
		authorized := engine.Group("/", gin.BasicAuth(gin.Accounts{
			cfg.MetricsUsername: cfg.MetricsPassword,
		}))
		authorized.GET("/metrics", metricsHandler)
	} else {
		engine.GET("/metrics", metricsHandler)
		log.Warn("Metrics endpoint is unauthenticated, set metrics credentials in production")
	}
}
