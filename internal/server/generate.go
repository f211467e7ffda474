// Package server provides the HTTP server of the homepage: the static site
// plus the /api endpoints used by its scripts.
//
// The architecture follows the pattern: CLI → App → Server → Router → Handlers
//
// Usage:
//
//	cfg := server.DefaultConfig()
//	cfg.SiteDir = "./_site"
//
//	srv, err := server.New(app, cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer srv.Shutdown(context.Background())
//
//	http.ListenAndServe(srv.Addr(), srv.Handler())
package server

//go:generate gomarkdoc --output README.md .
