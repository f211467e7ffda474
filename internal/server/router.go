package server

import (
	"net/http"

	"github.com/anxiangsir/homepage/internal/server/handlers"
	"github.com/anxiangsir/homepage/internal/server/middleware"
)

// setupRouter creates the HTTP handler with routes and middleware.
func (s *Server) setupRouter() http.Handler {
	mux := http.NewServeMux()

	var m handlers.Metrics
	if s.metrics != nil {
		m = s.metrics
	}
	h := handlers.New(s.app, s.cache, m, s.logger)

	s.registerRoutes(mux, h)

	return s.applyMiddleware(mux)
}

// registerRoutes registers all HTTP routes.
func (s *Server) registerRoutes(mux *http.ServeMux, h *handlers.Handlers) {
	api := corsConfig(s.config.CORSOrigins)

	mux.Handle("/api/chat", middleware.CORS(middleware.ChatCORSConfig())(http.HandlerFunc(h.HandleChat)))
	mux.Handle("/api/chat-log", middleware.CORS(api)(http.HandlerFunc(h.HandleChatLog)))
	mux.Handle("/api/sessions", middleware.CORS(api)(http.HandlerFunc(h.HandleSessions)))
	mux.Handle("/api/scholar", middleware.CORS(api)(http.HandlerFunc(h.HandleScholar)))
	mux.Handle("/api/stars", middleware.CORS(api)(http.HandlerFunc(h.HandleStars)))
	mux.HandleFunc("/api/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"Not found"}`))
	})

	mux.HandleFunc("/health", h.HandleHealth)

	if s.metrics != nil {
		mux.Handle("/metrics", s.metrics.Handler())
	}

	if s.config.SiteDir != "" {
		mux.Handle("/", http.FileServer(http.Dir(s.config.SiteDir)))
	} else {
		// Favicon handler (return 204 No Content to avoid 404 logs)
		mux.HandleFunc("/favicon.ico", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		})
	}
}

// applyMiddleware wraps handler with middleware chain.
func (s *Server) applyMiddleware(handler http.Handler) http.Handler {
	if s.limiter != nil {
		handler = middleware.RateLimit(s.limiter)(handler)
	}

	var observers []middleware.Observer
	if s.metrics != nil {
		observers = append(observers, s.metrics.ObserveRequest)
	}

	// Logging and recovery (always enabled)
	return middleware.Chain(
		middleware.Recovery(s.logger),
		middleware.Logger(s.logger, observers...),
	)(handler)
}

// corsConfig returns the API CORS configuration for origins.
func corsConfig(origins []string) middleware.CORSConfig {
	cfg := middleware.DefaultCORSConfig()
	if len(origins) > 0 {
		cfg.AllowedOrigins = origins
	}
	return cfg
}
