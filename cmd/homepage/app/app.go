// Package app provides the application context and dependency management
// for the homepage CLI. It centralizes configuration, logging and the lazily
// built services (star loader, Scholar client, chat log store) that commands
// and the HTTP server share.
package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/anxiangsir/homepage/cmd/application"
	"github.com/anxiangsir/homepage/internal/cmd/output"
	"github.com/anxiangsir/homepage/internal/config"
	"github.com/anxiangsir/homepage/internal/scholar"
	"github.com/anxiangsir/homepage/internal/store"
	"github.com/anxiangsir/homepage/internal/transport"
	"github.com/anxiangsir/homepage/pkg/constants"
	"github.com/anxiangsir/homepage/pkg/errors"
	"github.com/anxiangsir/homepage/pkg/publications"
	"github.com/anxiangsir/homepage/pkg/render"
	"github.com/anxiangsir/homepage/pkg/stars"
)

// App represents the homepage application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	// Configuration
	config *config.Config

	// Logger
	logger *zerolog.Logger

	// Lazily built services
	mu      sync.RWMutex
	client  *transport.Client
	loader  *stars.Loader
	scholar *scholar.Service
	store   store.Store
	opened  bool
}

var _ application.Application = (*App)(nil)

// New creates a new App instance with the given version information.
// Configuration is loaded from the environment and config files and can be
// replaced using functional options.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	cfg, err := LoadConfig("")
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	app.config = cfg

	logger := NewLogger(cfg)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *config.Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the configured output format, detecting it from the
// terminal when unset.
func (a *App) OutputFormat() string {
	return string(output.DetectFormat(a.config.Output))
}

// HTTPClient returns the client used for data files and Scholar requests.
func (a *App) HTTPClient() *transport.Client {
	a.mu.RLock()
	if a.client != nil {
		c := a.client
		a.mu.RUnlock()
		return c
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.client == nil {
		a.client = transport.New()
	}
	return a.client
}

// Stars returns the star loader, creating it on first use.
func (a *App) Stars() (*stars.Loader, error) {
	a.mu.RLock()
	if a.loader != nil {
		l := a.loader
		a.mu.RUnlock()
		return l, nil
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()

	// Double-check after acquiring write lock
	if a.loader != nil {
		return a.loader, nil
	}

	l, err := a.buildLoader()
	if err != nil {
		return nil, errors.WrapResource("create", "star loader", "", err)
	}
	a.loader = l
	return l, nil
}

func (a *App) buildLoader() (*stars.Loader, error) {
	policy, err := stars.ParsePolicy(a.config.StarPolicy)
	if err != nil {
		return nil, err
	}

	opts := []stars.LoaderOption{
		stars.WithPolicy(policy),
		stars.WithDelay(a.config.StarDelay),
	}
	if len(a.config.Repos) > 0 {
		repos := make([]stars.RepoRef, 0, len(a.config.Repos))
		for _, s := range a.config.Repos {
			ref, err := stars.ParseRepo(s)
			if err != nil {
				return nil, err
			}
			repos = append(repos, ref)
		}
		opts = append(opts, stars.WithRepos(repos))
	}

	fetcher := stars.NewFetcher(transport.NewGitHub(a.config.GitHubToken), a.config.GitHubAPIURL)
	return stars.NewLoader(fetcher, opts...), nil
}

// Scholar returns the citation service, creating it on first use. The last
// scraped count is persisted when a chat log database is configured.
func (a *App) Scholar() (*scholar.Service, error) {
	a.mu.RLock()
	if a.scholar != nil {
		s := a.scholar
		a.mu.RUnlock()
		return s, nil
	}
	a.mu.RUnlock()

	st, err := a.Store()
	if err != nil {
		a.logger.Warn().Err(err).Msg("Citation count will not be persisted")
		st = nil
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.scholar != nil {
		return a.scholar, nil
	}

	cfg := scholar.DefaultConfig()
	if a.config.ScholarURL != "" {
		cfg.URL = a.config.ScholarURL
	}
	var persist scholar.Persister
	if st != nil {
		persist = st
	}
	a.scholar = scholar.New(cfg, scholar.NewClient(), persist)
	return a.scholar, nil
}

// Store returns the chat log store, opening it on first use. It returns
// (nil, nil) when no database is configured. A failed open is not cached, so
// a later call retries.
func (a *App) Store() (store.Store, error) {
	a.mu.RLock()
	if a.opened {
		st := a.store
		a.mu.RUnlock()
		return st, nil
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.opened {
		return a.store, nil
	}

	path := a.config.ChatLogDB
	if path == "" {
		a.opened = true
		return nil, nil
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), constants.DirPermissions); err != nil {
			return nil, errors.WrapIO("create", filepath.Dir(path), err)
		}
	}
	st, err := store.Open(path)
	if err != nil {
		return nil, err
	}
	a.logger.Debug().Str("path", path).Msg("Chat log store opened")
	a.store = st
	a.opened = true
	return st, nil
}

// Renderer returns a publication renderer for mode reading the configured
// selected list and catalog. Relative file locations resolve against the
// site directory.
func (a *App) Renderer(mode render.PageMode) *render.Renderer {
	client := a.HTTPClient()
	root := a.config.SiteDir
	return render.New(render.Config{
		Mode:       mode,
		Layout:     render.DefaultLayout(mode),
		AuthorName: a.config.AuthorName,
	},
		publications.OpenSource(a.config.SelectedURL, root, client),
		publications.OpenSource(a.config.CatalogURL, root, client),
	)
}

// Shutdown performs graceful shutdown of the application and closes the
// chat log store if it was opened.
func (a *App) Shutdown(_ context.Context) error {
	a.mu.Lock()
	st := a.store
	a.store = nil
	a.opened = false
	a.mu.Unlock()

	if st == nil {
		return nil
	}
	if err := st.Close(); err != nil {
		return errors.WrapResource("close", "chat log store", "", err)
	}
	return nil
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(cfg *config.Config) Option {
	return func(a *App) error {
		if err := cfg.Validate(); err != nil {
			return err
		}
		a.config = cfg
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithStore sets the chat log store (useful for testing).
func WithStore(st store.Store) Option {
	return func(a *App) error {
		a.store = st
		a.opened = true
		return nil
	}
}

// WithHTTPClient sets the client used for data files.
func WithHTTPClient(c *transport.Client) Option {
	return func(a *App) error {
		a.client = c
		return nil
	}
}

// normalizeList splits comma separated entries, which viper yields when a
// list comes from an environment variable.
func normalizeList(items []string) []string {
	var out []string
	for _, item := range items {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
