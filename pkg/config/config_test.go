package config

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, "http://localhost:8000", cfg.API.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.API.Timeout)
	assert.Equal(t, "dev_secret", cfg.Session.Secret)
	assert.True(t, strings.HasSuffix(cfg.Session.Path, ".edusight/session") ||
		strings.Contains(cfg.Session.Path, ".edusight"))
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, "./exports", cfg.Exports.Dir)
	assert.Equal(t, 8000, cfg.Stub.Port)
	assert.Equal(t, time.Hour, cfg.Stub.CodeTTL)
	assert.Nil(t, cfg.Stub.AllowedOrigins)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("ENV", EnvProduction)
	t.Setenv("API_BASE_URL", "https://api.example.com/")
	t.Setenv("HTTP_TIMEOUT", "5s")
	t.Setenv("SESSION_FILE", "/tmp/custom-session")
	t.Setenv("STUB_CODE_TTL", "15m")
	t.Setenv("ALLOWED_ORIGINS", "http://localhost:3000, https://app.example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, EnvProduction, cfg.Env)
	assert.Equal(t, "https://api.example.com", cfg.API.BaseURL, "trailing slash is trimmed")
	assert.Equal(t, 5*time.Second, cfg.API.Timeout)
	assert.Equal(t, "/tmp/custom-session", cfg.Session.Path)
	assert.Equal(t, 15*time.Minute, cfg.Stub.CodeTTL)
	assert.Equal(t, []string{"http://localhost:3000", "https://app.example.com"}, cfg.Stub.AllowedOrigins)
}

func TestBadDurationFallsBack(t *testing.T) {
	t.Setenv("HTTP_TIMEOUT", "not-a-duration")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, cfg.API.Timeout)
}
