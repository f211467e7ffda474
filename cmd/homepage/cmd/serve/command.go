// Package serve provides the HTTP server command.
package serve

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/anxiangsir/homepage/cmd/application"
	"github.com/anxiangsir/homepage/internal/cmd/emoji"
	"github.com/anxiangsir/homepage/internal/server"
	"github.com/anxiangsir/homepage/pkg/constants"
)

// NewCommand creates the serve command using app context.
func NewCommand(app application.Application) *cobra.Command {
	defaults := server.DefaultConfig()

	cmd := &cobra.Command{
		Use:     "serve",
		Aliases: []string{"server"},
		GroupID: "core",
		Short:   "Serve the site and its JSON API",
		Long: `Serve the site directory as static files together with the JSON API:

  POST /api/chat        placeholder chat reply
  GET  /api/scholar     Google Scholar citation count (cached for a day)
  POST /api/chat-log    store a chat message (needs chatlog_db)
  GET  /api/chat-log    messages of one session
  GET  /api/sessions    chat sessions, newest first
  GET  /api/stars       GitHub star counts (cached)
  GET  /health          health check
  GET  /metrics         Prometheus metrics

Requests are logged, panics recovered and clients rate limited per IP.
The server shuts down gracefully on SIGINT or SIGTERM.`,
		Example: `  # Serve the current directory on localhost:8080
  homepage serve

  # Serve a rendered site on all interfaces
  homepage serve --site-dir _site --host 0.0.0.0 --port 3000

  # API only, without rate limiting
  homepage serve --no-static --rate-limit 0`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServer(cmd, app)
		},
	}

	cmd.Flags().Int("port", defaults.Port, "Server port")
	cmd.Flags().String("host", defaults.Host, "Bind address")
	cmd.Flags().StringSlice("cors-origins", []string{}, "Allowed CORS origins for the API (comma-separated, default all)")
	cmd.Flags().Int("rate-limit", defaults.RateLimit, "Requests per minute per IP (0 to disable)")
	cmd.Flags().Duration("stars-cache-ttl", defaults.StarsCacheTTL, "How long fetched star counts are served from cache")
	cmd.Flags().Duration("read-timeout", defaults.ReadTimeout, "HTTP read timeout")
	cmd.Flags().Duration("write-timeout", defaults.WriteTimeout, "HTTP write timeout")
	cmd.Flags().Duration("idle-timeout", defaults.IdleTimeout, "HTTP idle timeout")
	cmd.Flags().Bool("metrics", defaults.MetricsEnabled, "Enable the /metrics endpoint")
	cmd.Flags().Bool("no-static", false, "Serve the API only")

	return cmd
}

// runServer starts the server and blocks until the command context ends.
func runServer(cmd *cobra.Command, app application.Application) error {
	cfg := parseConfig(cmd, app.Config().SiteDir)
	logger := app.Logger()

	logger.Info().
		Str("host", cfg.Host).
		Int("port", cfg.Port).
		Str("site_dir", cfg.SiteDir).
		Int("rate_limit", cfg.RateLimit).
		Bool("metrics", cfg.MetricsEnabled).
		Msg("Starting server")

	srv, err := server.New(app, cfg)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	ln, err := net.Listen("tcp", srv.Addr())
	if err != nil {
		return fmt.Errorf("listening on %s: %w", srv.Addr(), err)
	}

	// cmd.Context() carries the signal handling set up in main.go
	return serve(cmd.Context(), ln, srv, logger, cmd.OutOrStdout())
}

// parseConfig parses command flags into server configuration.
func parseConfig(cmd *cobra.Command, siteDir string) server.Config {
	port := mustGetInt(cmd, "port")
	host := mustGetString(cmd, "host")

	// Environment overrides apply unless the flag was given
	if envPort := os.Getenv("HTTP_PORT"); envPort != "" && !cmd.Flags().Changed("port") {
		if p, err := parsePort(envPort); err == nil {
			port = p
		}
	}
	if envHost := os.Getenv("HTTP_HOST"); envHost != "" && !cmd.Flags().Changed("host") {
		host = envHost
	}
	if mustGetBool(cmd, "no-static") {
		siteDir = ""
	}

	return server.Config{
		Host:           host,
		Port:           port,
		SiteDir:        siteDir,
		CORSOrigins:    mustGetStringSlice(cmd, "cors-origins"),
		RateLimit:      mustGetInt(cmd, "rate-limit"),
		StarsCacheTTL:  mustGetDuration(cmd, "stars-cache-ttl"),
		ReadTimeout:    mustGetDuration(cmd, "read-timeout"),
		WriteTimeout:   mustGetDuration(cmd, "write-timeout"),
		IdleTimeout:    mustGetDuration(cmd, "idle-timeout"),
		MetricsEnabled: mustGetBool(cmd, "metrics"),
	}
}

// parsePort safely parses a port string to integer.
func parsePort(portStr string) (int, error) {
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return 0, fmt.Errorf("invalid port number: %s", portStr)
	}
	if port < 1 || port > 65535 {
		return 0, fmt.Errorf("port out of range: %d", port)
	}
	return port, nil
}

// serve runs the HTTP server on ln until ctx is cancelled, then shuts it
// down gracefully.
func serve(ctx context.Context, ln net.Listener, srv *server.Server, logger *zerolog.Logger, out io.Writer) error {
	httpServer := srv.HTTPServer()
	serverErr := make(chan error, 1)

	go func() {
		logger.Info().Str("addr", ln.Addr().String()).Msg("HTTP server listening")
		_, _ = fmt.Fprintf(out, "%s Serving on http://%s\n", emoji.Rocket, ln.Addr())
		_, _ = fmt.Fprintln(out, "   Press Ctrl+C to stop")

		if err := httpServer.Serve(ln); err != nil && err != http.ErrServerClosed {
			serverErr <- fmt.Errorf("server failed: %w", err)
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		_ = srv.Shutdown(context.Background())
		return err
	case <-ctx.Done():
		logger.Info().Msg("Shutdown signal received via context")
		_, _ = fmt.Fprintf(out, "\n%s Shutting down server...\n", emoji.Stop)

		// The parent context is already cancelled
		shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn().Err(err).Msg("Background services shutdown had issues")
		}
		<-serverErr

		logger.Info().Msg("Server stopped gracefully")
		return nil
	}
}

// mustGetInt retrieves an int flag value or panics if the flag doesn't exist.
func mustGetInt(cmd *cobra.Command, name string) int {
	val, err := cmd.Flags().GetInt(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}

func mustGetString(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}

func mustGetBool(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}

func mustGetStringSlice(cmd *cobra.Command, name string) []string {
	val, err := cmd.Flags().GetStringSlice(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}

func mustGetDuration(cmd *cobra.Command, name string) time.Duration {
	val, err := cmd.Flags().GetDuration(name)
	if err != nil {
		panic("programming error: failed to get flag " + name + ": " + err.Error())
	}
	return val
}
