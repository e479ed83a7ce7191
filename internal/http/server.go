// Package http provides HTTP server implementation and request handlers.
package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/allisson/luhnify/internal/config"
	apperrors "github.com/allisson/luhnify/internal/errors"
	"github.com/allisson/luhnify/internal/httputil"
	luhnHTTP "github.com/allisson/luhnify/internal/luhn/http"
	"github.com/allisson/luhnify/internal/metrics"
)

// Server is the public API server.
type Server struct {
	server      *http.Server
	router      *gin.Engine
	logger      *slog.Logger
	rateLimiter *RateLimiter
	ready       atomic.Bool
}

// NewServer creates a new HTTP server. SetupRouter must be called before Start.
func NewServer(host string, port int, logger *slog.Logger) *Server {
	return &Server{
		logger: logger,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// SetupRouter wires middleware and routes. metricsProvider may be nil when
// metrics are disabled.
func (s *Server) SetupRouter(
	cfg *config.Config,
	generatorHandler *luhnHTTP.GeneratorHandler,
	metricsProvider *metrics.Provider,
) {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if metricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(
			metricsProvider.MeterProvider(),
			cfg.MetricsNamespace,
			"/health", "/ready",
		))
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)
	router.NoRoute(func(c *gin.Context) {
		httputil.HandleErrorGin(c, apperrors.ErrNotFound, s.logger)
	})

	v1 := router.Group("/v1")
	luhn := v1.Group("/luhn")
	if cfg.RateLimitEnabled {
		s.rateLimiter = NewRateLimiter(cfg.RateLimitRequestsPerSec, cfg.RateLimitBurst, s.logger)
		luhn.Use(s.rateLimiter.Middleware())
	}
	{
		luhn.POST("/generate", generatorHandler.GenerateHandler)
		luhn.POST("/generate/download", generatorHandler.DownloadHandler)
		luhn.POST("/validate", generatorHandler.ValidateHandler)
	}

	s.router = router
	s.server.Handler = router
	s.ready.Store(true)
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.server.Handler
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start(ctx context.Context) error {
	if s.server.Handler == nil {
		if s.router == nil {
			return fmt.Errorf("router is not configured")
		}
		s.server.Handler = s.router
	}

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown marks the server not ready, drains connections and stops the rate limiter.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	s.ready.Store(false)

	err := s.server.Shutdown(ctx)

	if s.rateLimiter != nil {
		s.rateLimiter.Close()
		s.rateLimiter = nil
	}

	return err
}

func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports ready once routes are wired and until shutdown begins.
func (s *Server) readinessHandler(c *gin.Context) {
	if !s.ready.Load() {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": gin.H{"generator": "error"},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ready",
		"components": gin.H{"generator": "ok"},
	})
}
