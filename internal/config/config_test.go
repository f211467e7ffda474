package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anxiangsir/homepage/pkg/constants"
)

func TestFromViperDefaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	cfg := FromViper(v)
	assert.Equal(t, ".", cfg.SiteDir)
	assert.Equal(t, []string{"index.html", "publications.html"}, cfg.Pages)
	assert.Equal(t, constants.DefaultSelectedPath, cfg.SelectedURL)
	assert.Equal(t, constants.DefaultAuthorName, cfg.AuthorName)
	assert.Equal(t, "sequential", cfg.StarPolicy)
	assert.Equal(t, 200*time.Millisecond, cfg.StarDelay)
	require.NoError(t, cfg.Validate())
}

func TestFromViperOverrides(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "from-env")

	v := viper.New()
	SetDefaults(v)
	v.Set("star_policy", "parallel")
	v.Set("star_delay", "1s")
	v.Set("pages", []string{"index.html"})

	cfg := FromViper(v)
	assert.Equal(t, "parallel", cfg.StarPolicy)
	assert.Equal(t, time.Second, cfg.StarDelay)
	assert.Equal(t, []string{"index.html"}, cfg.Pages)
	assert.Equal(t, "from-env", cfg.GitHubToken)

	v.Set("GITHUB_TOKEN", "from-viper")
	assert.Equal(t, "from-viper", FromViper(v).GitHubToken)
}

func TestValidate(t *testing.T) {
	cfg := Defaults()
	cfg.StarPolicy = "bursty"
	assert.Error(t, cfg.Validate())

	cfg = Defaults()
	cfg.StarDelay = -time.Second
	assert.Error(t, cfg.Validate())

	cfg = Defaults()
	cfg.SiteDir = ""
	assert.Error(t, cfg.Validate())
}
