// Package config holds the settings shared by every homepage command.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/anxiangsir/homepage/pkg/constants"
	"github.com/anxiangsir/homepage/pkg/errors"
)

// Config holds the application configuration loaded from config files,
// environment variables, .env files and flags.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Output  string

	// Config file
	ConfigFile string

	// Site layout
	SiteDir string
	OutDir  string
	Pages   []string

	// Publication data
	SelectedURL string
	CatalogURL  string
	AuthorName  string

	// GitHub stars
	GitHubAPIURL string
	GitHubToken  string
	StarPolicy   string
	StarDelay    time.Duration
	Repos        []string

	// API backends
	ScholarURL string
	ChatLogDB  string

	// Logging configuration. An empty LogLevel defers to the verbose and
	// quiet flags.
	LogLevel  string
	LogFormat string
	LogOutput string
}

// Defaults returns the configuration used when nothing is set.
func Defaults() *Config {
	return &Config{
		Output:       "table",
		SiteDir:      ".",
		OutDir:       "_site",
		Pages:        []string{"index.html", "publications.html"},
		SelectedURL:  constants.DefaultSelectedPath,
		CatalogURL:   constants.DefaultCatalogPath,
		AuthorName:   constants.DefaultAuthorName,
		GitHubAPIURL: constants.GitHubAPIURL,
		StarPolicy:   "sequential",
		StarDelay:    constants.DefaultStarDelay,
		ScholarURL:   constants.ScholarURL,
		LogFormat:    "auto",
		LogOutput:    "stderr",
	}
}

// SetDefaults registers Defaults with v.
func SetDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("output", d.Output)
	v.SetDefault("site_dir", d.SiteDir)
	v.SetDefault("out_dir", d.OutDir)
	v.SetDefault("pages", d.Pages)
	v.SetDefault("selected_url", d.SelectedURL)
	v.SetDefault("catalog_url", d.CatalogURL)
	v.SetDefault("author_name", d.AuthorName)
	v.SetDefault("github_api_url", d.GitHubAPIURL)
	v.SetDefault("star_policy", d.StarPolicy)
	v.SetDefault("star_delay", d.StarDelay)
	v.SetDefault("scholar_url", d.ScholarURL)
}

// FromViper builds a Config from v.
func FromViper(v *viper.Viper) *Config {
	return &Config{
		Verbose:      v.GetBool("verbose"),
		Quiet:        v.GetBool("quiet"),
		NoColor:      v.GetBool("no-color"),
		Output:       v.GetString("output"),
		ConfigFile:   v.ConfigFileUsed(),
		SiteDir:      v.GetString("site_dir"),
		OutDir:       v.GetString("out_dir"),
		Pages:        v.GetStringSlice("pages"),
		SelectedURL:  v.GetString("selected_url"),
		CatalogURL:   v.GetString("catalog_url"),
		AuthorName:   v.GetString("author_name"),
		GitHubAPIURL: v.GetString("github_api_url"),
		GitHubToken:  GetString(v, "GITHUB_TOKEN"),
		StarPolicy:   v.GetString("star_policy"),
		StarDelay:    v.GetDuration("star_delay"),
		Repos:        v.GetStringSlice("repos"),
		ScholarURL:   v.GetString("scholar_url"),
		ChatLogDB:    v.GetString("chatlog_db"),
		LogLevel:     os.Getenv("LOG_LEVEL"),
		LogFormat:    getEnvOrDefault("LOG_FORMAT", "auto"),
		LogOutput:    getEnvOrDefault("LOG_OUTPUT", "stderr"),
	}
}

// Validate checks values that would otherwise fail late.
func (c *Config) Validate() error {
	if c.SiteDir == "" {
		return errors.NewConfigError("site_dir", "must not be empty", nil)
	}
	if c.StarDelay < 0 {
		return errors.NewConfigError("star_delay", "must not be negative", nil)
	}
	switch strings.ToLower(c.StarPolicy) {
	case "", "sequential", "parallel":
	default:
		return errors.NewConfigError("star_policy", "must be sequential or parallel, got "+c.StarPolicy, nil)
	}
	return nil
}

// GetString returns key from v, falling back to the process environment
// when v has no value for it.
func GetString(v *viper.Viper, key string) string {
	if value := v.GetString(key); value != "" {
		return value
	}
	return os.Getenv(key)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
