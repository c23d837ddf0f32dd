package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSEOMatchesStockThresholds(t *testing.T) {
	seo := DefaultSEO()
	assert.Equal(t, 0.5, seo.MinKeywordDensity)
	assert.Equal(t, 2.5, seo.MaxKeywordDensity)
	assert.Equal(t, 300, seo.MinContentLength)
	assert.Equal(t, 1500, seo.OptimalContentLength)
	assert.Equal(t, 2, seo.MinInternalLinks)
	assert.Equal(t, 1, seo.MinExternalLinks)
	assert.NoError(t, seo.Validate())
}

func TestLoadFromFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "seo.yaml")
	yamlDoc := `
seo:
  min_keyword_density: 1
  max_keyword_density: 3
  min_content_length: 200
  optimal_content_length: 1000
  min_internal_links: 3
  min_external_links: 2
site:
  name: Test Blog
  url: https://blog.example.com
cache:
  backend: none
  ttl: 5m
`
	require.NoError(t, os.WriteFile(path, []byte(yamlDoc), 0644))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("PORT", "9999")
	t.Setenv("SITE_URL", "https://override.example.com")
	t.Setenv("RATE_LIMIT", "10")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 1.0, cfg.SEO.MinKeywordDensity)
	assert.Equal(t, 3, cfg.SEO.MinInternalLinks)
	assert.Equal(t, "Test Blog", cfg.Site.Name)
	assert.Equal(t, "https://override.example.com", cfg.Site.URL)
	assert.Equal(t, "9999", cfg.Server.Port)
	assert.Equal(t, 10.0, cfg.Server.RateLimit)
	assert.Equal(t, "none", cfg.Cache.Backend)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
}

func TestLoadWithoutFileUsesDefaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultSEO(), cfg.SEO)
	assert.Equal(t, "AI SEO Blog Generator", cfg.Site.Name)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"inverted density band", func(c *Config) { c.SEO.MaxKeywordDensity = 0.1 }, true},
		{"negative links", func(c *Config) { c.SEO.MinInternalLinks = -1 }, true},
		{"content thresholds", func(c *Config) { c.SEO.OptimalContentLength = 10 }, true},
		{"unknown cache", func(c *Config) { c.Cache.Backend = "memcached" }, true},
		{"zero rate", func(c *Config) { c.Server.RateLimit = 0 }, true},
		{"burst below one", func(c *Config) { c.Server.RateBurst = 0.5 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
