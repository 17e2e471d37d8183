package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, DefaultAPIURL, cfg.API.URL)
	assert.Equal(t, 10*time.Second, cfg.API.Timeout)
	assert.Equal(t, 5*time.Minute, cfg.Cache.StaleTime)
	assert.Equal(t, 15*time.Minute, cfg.Cache.CacheTime)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 768, cfg.UI.MobileBreakpoint)
	assert.Equal(t, 8*time.Second, cfg.UI.CarouselInterval)
	require.NoError(t, cfg.Validate())
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "portfolio.yaml")
	content := `
api:
  url: http://localhost:9000
cache:
  staleTime: 1m
  cacheTime: 2m
ui:
  mobileBreakpoint: 640
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	t.Setenv("PORTFOLIO_SERVER_PORT", "9999")
	t.Setenv("PORTFOLIO_INTEGRATIONS_MAPSKEY", "maps-key")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9000", cfg.API.URL)
	assert.Equal(t, time.Minute, cfg.Cache.StaleTime)
	assert.Equal(t, 2*time.Minute, cfg.Cache.CacheTime)
	assert.Equal(t, 640, cfg.UI.MobileBreakpoint)
	assert.Equal(t, "9999", cfg.Server.Port)
	assert.Equal(t, "maps-key", cfg.Integrations.MapsKey)
}

func TestLoad_PlainPortEnv(t *testing.T) {
	t.Setenv("PORT", "3000")
	cfg, err := Load(filepath.Join("testdata", "missing-is-fine.yaml"))
	require.Error(t, err, "explicit config file must exist")

	t.Chdir(t.TempDir())
	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, "3000", cfg.Server.Port)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{name: "valid default config", modify: func(c *Config) {}, wantErr: false},
		{name: "relative api url", modify: func(c *Config) { c.API.URL = "/api" }, wantErr: true},
		{name: "zero timeout", modify: func(c *Config) { c.API.Timeout = 0 }, wantErr: true},
		{name: "cache time shorter than stale time", modify: func(c *Config) { c.Cache.CacheTime = time.Second }, wantErr: true},
		{name: "missing port", modify: func(c *Config) { c.Server.Port = "" }, wantErr: true},
		{name: "zero breakpoint", modify: func(c *Config) { c.UI.MobileBreakpoint = 0 }, wantErr: true},
		{name: "zero stale time is allowed", modify: func(c *Config) { c.Cache.StaleTime = 0 }, wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSMTPEnabled(t *testing.T) {
	assert.False(t, SMTPConfig{}.Enabled())
	assert.True(t, SMTPConfig{User: "u", Pass: "p"}.Enabled())
}

func TestLoad_LegacySMTPEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("SMTP_USER", "me@example.com")
	t.Setenv("SMTP_PASS", "app-password")
	t.Setenv("TO_EMAIL", "inbox@example.com")
	t.Setenv("PORTFOLIO_SMTP_HOST", "smtp.example.com")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.True(t, cfg.SMTP.Enabled())
	assert.Equal(t, "inbox@example.com", cfg.SMTP.To)
	assert.Equal(t, "smtp.example.com", cfg.SMTP.Host)
	assert.Equal(t, "587", cfg.SMTP.Port)
}
