// Package constants provides shared constants used throughout the homepage
// codebase: timeouts, file permissions, endpoint defaults and the fixed
// strings the rendered pages and API depend on.
package constants

import "time"

// Timeout constants
const (
	// DefaultHTTPTimeout is the standard timeout for outbound HTTP requests
	DefaultHTTPTimeout = 30 * time.Second

	// ScholarFetchTimeout bounds a single Google Scholar profile scrape
	ScholarFetchTimeout = 10 * time.Second

	// DefaultStarDelay is the pause between sequential GitHub requests
	DefaultStarDelay = 200 * time.Millisecond

	// ShutdownTimeout is how long the HTTP server drains connections
	ShutdownTimeout = 5 * time.Second
)

// File permission constants
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Cache constants
const (
	// StarsCacheTTL is how long fetched star counts are served from memory
	StarsCacheTTL = 10 * time.Minute

	// ScholarCacheTTL is how long a scraped citation count is considered fresh
	ScholarCacheTTL = 24 * time.Hour

	// CacheCleanupInterval is how often to clean expired cache entries
	CacheCleanupInterval = 30 * time.Minute
)

// Remote endpoints
const (
	// GitHubAPIURL is the base URL of the public GitHub REST API
	GitHubAPIURL = "https://api.github.com"

	// ScholarUserID identifies the Google Scholar profile
	ScholarUserID = "1ckaPgwAAAAJ"

	// ScholarURL is the Google Scholar profile page scraped for citations
	ScholarURL = "https://scholar.google.com/citations?user=" + ScholarUserID + "&hl=en"

	// FallbackCitations is served when neither cache nor scrape has a value
	FallbackCitations = 1114
)

// Site defaults
const (
	// DefaultAuthorName is the author highlighted in publication author lists
	DefaultAuthorName = "Xiang An"

	// DefaultSelectedPath is the selected publications data file, relative to the site root
	DefaultSelectedPath = "_data/selected_publications.json"

	// DefaultCatalogPath is the full publications catalog, relative to the site root
	DefaultCatalogPath = "_data/publications.json"

	// ChatPlaceholderReply is the fixed reply of the chat endpoint
	ChatPlaceholderReply = "升级中！"

	// TimeFormatISO8601 matches JavaScript's Date.prototype.toISOString
	TimeFormatISO8601 = "2006-01-02T15:04:05.000Z07:00"
)
