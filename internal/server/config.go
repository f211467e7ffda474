package server

import (
	"time"

	"github.com/anxiangsir/homepage/pkg/constants"
)

// Config holds server configuration.
type Config struct {
	// Server settings
	Host string
	Port int

	// SiteDir is served as static files; empty serves the API only.
	SiteDir string

	// CORS settings for the non-chat endpoints; empty allows all origins.
	CORSOrigins []string

	// Performance settings
	RateLimit     int // Requests per minute per IP (0 to disable)
	StarsCacheTTL time.Duration

	// HTTP timeouts
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	// Features
	MetricsEnabled bool
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Host:           "localhost",
		Port:           8080,
		RateLimit:      60,
		StarsCacheTTL:  constants.StarsCacheTTL,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   30 * time.Second,
		IdleTimeout:    120 * time.Second,
		MetricsEnabled: true,
	}
}
