package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.json"), true)

	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, BackendSQLite, cfg.Favorites.Backend)
	assert.Equal(t, 30*time.Second, cfg.App.RequestTimeoutDuration())
	assert.Zero(t, cfg.App.RefreshIntervalDuration())
}

func TestLoad_MissingFileRequired(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"), false)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := writeConfig(t, `{
		"server": {"address": ":9090"},
		"logger": {"level": "debug"},
		"app": {
			"default_feed_url": "https://example.com/feed.xml",
			"refresh_interval": "5m",
			"feed_names": {"https://example.com/feed.xml": "Example"}
		},
		"favorites": {"backend": "memory"}
	}`)

	cfg, err := Load(path, false)

	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	assert.Equal(t, ":9090", cfg.Server.Address)
	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, "30s", cfg.App.RequestTimeout)
	assert.Equal(t, 5*time.Minute, cfg.App.RefreshIntervalDuration())
	assert.Equal(t, "Example", cfg.App.FeedNames["https://example.com/feed.xml"])
	assert.Equal(t, BackendMemory, cfg.Favorites.Backend)
}

func TestLoad_InvalidJSON(t *testing.T) {
	path := writeConfig(t, `{"server": `)

	_, err := Load(path, false)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse JSON")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"bad feed url", func(c *Config) { c.App.DefaultFeedURL = "not a url" }, "default_feed_url"},
		{"bad timeout", func(c *Config) { c.App.RequestTimeout = "soon" }, "request_timeout"},
		{"negative refresh", func(c *Config) { c.App.RefreshInterval = "-1s" }, "refresh_interval"},
		{"unknown backend", func(c *Config) { c.Favorites.Backend = "redis" }, "unknown favorites.backend"},
		{"sqlite without path", func(c *Config) { c.Favorites.SQLitePath = "" }, "sqlite_path"},
		{"postgres without user", func(c *Config) {
			c.Favorites.Backend = BackendPostgres
			c.Database.Password = "secret"
		}, "username"},
		{"postgres without password", func(c *Config) {
			c.Favorites.Backend = BackendPostgres
			c.Database.Username = "feedview"
		}, "password"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := New()
			tt.mutate(cfg)

			err := cfg.Validate()

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDatabaseConfig_DSN(t *testing.T) {
	db := DatabaseConfig{
		Host:     "db",
		Port:     5433,
		Username: "feedview",
		Password: "p@ss",
		DBName:   "favorites",
		SSLMode:  "disable",
	}

	assert.Equal(t, "postgres://feedview:p%40ss@db:5433/favorites?sslmode=disable", db.DSN())
}
