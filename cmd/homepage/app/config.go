package app

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/anxiangsir/homepage/internal/config"
)

// envKeys are read from the environment even when no config key names them.
var envKeys = []string{
	"GITHUB_TOKEN",
	"CHATLOG_DB",
	"HTTP_HOST",
	"HTTP_PORT",
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (applied by the commands)
// 2. Environment variables
// 3. .env files
// 4. Config file (configFile, or .homepage.yaml in $HOME or the working directory)
// 5. Defaults
func LoadConfig(configFile string) (*config.Config, error) {
	// Load .env files first (before Viper env binding)
	loadEnvFiles()

	v := viper.New()
	config.SetDefaults(v)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	bindEnvKeys(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", configFile, err)
		}
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(".homepage")
		// Read config file (ignore error if not found)
		_ = v.ReadInConfig()
	}

	cfg := config.FromViper(v)
	cfg.Pages = normalizeList(cfg.Pages)
	cfg.Repos = normalizeList(cfg.Repos)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// UpdateFromFlags copies the global flag values into c. Flags win over every
// other source.
func UpdateFromFlags(c *config.Config, verbose, quiet, noColor bool, format, logLevel string) {
	c.Verbose = verbose
	c.Quiet = quiet
	c.NoColor = noColor
	if format != "" {
		c.Output = format
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}

// loadEnvFiles loads environment variables from .env files.
// .env.local overrides .env
func loadEnvFiles() {
	for _, envFile := range []string{".env.local", ".env"} {
		_ = godotenv.Load(envFile)
	}
}

func bindEnvKeys(v *viper.Viper) {
	for _, key := range envKeys {
		if err := v.BindEnv(key); err != nil {
			// Log warning but continue - this isn't critical
			fmt.Fprintf(os.Stderr, "Warning: failed to bind environment variable %s: %v\n", key, err)
		}
	}
}
