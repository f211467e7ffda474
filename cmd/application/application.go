// Package application provides the application interface for homepage
// commands and the HTTP server.
//
// Commands accept this interface rather than the concrete App type so they
// can be tested against internal/cmd/application.Mock.
package application

import (
	"github.com/rs/zerolog"

	"github.com/anxiangsir/homepage/internal/config"
	"github.com/anxiangsir/homepage/internal/scholar"
	"github.com/anxiangsir/homepage/internal/store"
	"github.com/anxiangsir/homepage/internal/transport"
	"github.com/anxiangsir/homepage/pkg/render"
	"github.com/anxiangsir/homepage/pkg/stars"
)

// Application provides what commands need.
//
// Thread Safety: All methods must be safe for concurrent access.
type Application interface {
	// Config returns the loaded configuration.
	Config() *config.Config

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// HTTPClient returns the client used for data files.
	HTTPClient() *transport.Client

	// Stars returns the star loader built from configuration.
	Stars() (*stars.Loader, error)

	// Scholar returns the citation service (lazy-initialized, cached).
	Scholar() (*scholar.Service, error)

	// Store returns the chat log store. It returns (nil, nil) when no
	// database is configured.
	Store() (store.Store, error)

	// Renderer returns a publication renderer for mode, reading the
	// configured data files.
	Renderer(mode render.PageMode) *render.Renderer

	// OutputFormat returns the configured output format (json, yaml, table).
	OutputFormat() string

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
