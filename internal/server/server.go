package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/agentstation/utc"
	"github.com/rs/zerolog"

	"github.com/anxiangsir/homepage/cmd/application"
	"github.com/anxiangsir/homepage/internal/server/cache"
	"github.com/anxiangsir/homepage/internal/server/metrics"
	"github.com/anxiangsir/homepage/internal/server/middleware"
	"github.com/anxiangsir/homepage/pkg/constants"
	"github.com/anxiangsir/homepage/pkg/errors"
)

// Server holds the HTTP server state and dependencies.
type Server struct {
	app       application.Application
	cache     *cache.Cache
	metrics   *metrics.Recorder
	limiter   *middleware.RateLimiter
	logger    *zerolog.Logger
	config    Config
	startTime time.Time
}

// New creates a new server instance with the given configuration.
func New(app application.Application, cfg Config) (*Server, error) {
	logger := app.Logger()

	if cfg.StarsCacheTTL <= 0 {
		cfg.StarsCacheTTL = constants.StarsCacheTTL
	}
	if cfg.SiteDir != "" {
		info, err := os.Stat(cfg.SiteDir)
		if err != nil {
			return nil, errors.NewConfigError("server", "site directory not accessible", err)
		}
		if !info.IsDir() {
			return nil, errors.NewConfigError("server", fmt.Sprintf("%s is not a directory", cfg.SiteDir), nil)
		}
	}

	s := &Server{
		app:       app,
		cache:     cache.New(cfg.StarsCacheTTL, constants.CacheCleanupInterval),
		logger:    logger,
		config:    cfg,
		startTime: utc.Now().Time,
	}
	if cfg.MetricsEnabled {
		s.metrics = metrics.New()
	}
	if cfg.RateLimit > 0 {
		s.limiter = middleware.NewRateLimiter(cfg.RateLimit, logger)
	}

	logger.Debug().
		Str("site_dir", cfg.SiteDir).
		Int("rate_limit", cfg.RateLimit).
		Bool("metrics", cfg.MetricsEnabled).
		Msg("Server instance created")
	return s, nil
}

// Handler returns the configured http.Handler with middleware chain applied.
func (s *Server) Handler() http.Handler {
	return s.setupRouter()
}

// Addr returns the host:port the server should listen on.
func (s *Server) Addr() string {
	return fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
}

// HTTPServer returns an http.Server for the handler using the configured
// timeouts.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         s.Addr(),
		Handler:      s.Handler(),
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}
}

// Shutdown stops background services.
func (s *Server) Shutdown(_ context.Context) error {
	if s.limiter != nil {
		s.limiter.Stop()
	}
	s.logger.Info().Msg("Server background services stopped")
	return nil
}

// Cache returns the server's cache instance.
func (s *Server) Cache() *cache.Cache {
	return s.cache
}

// Metrics returns the metrics recorder, or nil when metrics are disabled.
func (s *Server) Metrics() *metrics.Recorder {
	return s.metrics
}

// StartTime returns the server start time for uptime calculations.
func (s *Server) StartTime() time.Time {
	return s.startTime
}
