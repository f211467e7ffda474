package app

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/anxiangsir/homepage/internal/config"
)

// TestDetermineLogLevel tests the log level precedence logic.
func TestDetermineLogLevel(t *testing.T) {
	tests := []struct {
		name     string
		config   *config.Config
		expected string
	}{
		{name: "default level when no flags set", config: &config.Config{}, expected: "info"},
		{name: "verbose flag sets debug", config: &config.Config{Verbose: true}, expected: "debug"},
		{name: "quiet flag sets warn", config: &config.Config{Quiet: true}, expected: "warn"},
		{name: "quiet wins over verbose", config: &config.Config{Verbose: true, Quiet: true}, expected: "warn"},
		{name: "explicit log-level overrides verbose", config: &config.Config{LogLevel: "error", Verbose: true}, expected: "error"},
		{name: "explicit log-level overrides quiet", config: &config.Config{LogLevel: "trace", Quiet: true}, expected: "trace"},
		{name: "invalid log-level falls back to info", config: &config.Config{LogLevel: "loud"}, expected: "info"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, determineLogLevel(tt.config))
		})
	}
}

func TestNewLogger(t *testing.T) {
	logger := NewLogger(&config.Config{LogLevel: "warn", LogFormat: "json", LogOutput: "discard"})
	assert.Equal(t, "warn", logger.GetLevel().String())
}
