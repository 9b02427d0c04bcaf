package core

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "http://localhost:3000/api", cfg.API.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.API.Timeout)
	assert.Equal(t, 12*time.Hour, cfg.Session.TTL)
	assert.Equal(t, "INFO", cfg.Logging.Level)
	require.NoError(t, cfg.Validate())
}

func TestLoadFromFileMissingIsNotAnError(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml")))
	assert.Equal(t, "http://localhost:3000/api", cfg.API.BaseURL)
}

func TestLoadFromFileMergesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"api:\n  base_url: https://comanda.example.com/api\nlogging:\n  level: DEBUG\n"), 0o644))

	cfg := DefaultConfig()
	require.NoError(t, cfg.LoadFromFile(path))

	assert.Equal(t, "https://comanda.example.com/api", cfg.API.BaseURL)
	assert.Equal(t, "DEBUG", cfg.Logging.Level)
	// Untouched keys keep their defaults.
	assert.Equal(t, 15*time.Second, cfg.API.Timeout)
}

func TestLoadFromFileMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api: [not a map"), 0o644))

	cfg := DefaultConfig()
	assert.Error(t, cfg.LoadFromFile(path))
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api:\n  base_url: http://from-file:3000/api\n"), 0o644))
	t.Setenv("COMANDA_API_URL", "http://from-env:4000/api")
	t.Setenv("COMANDA_API_TIMEOUT", "30")

	cfg := DefaultConfig()
	require.NoError(t, cfg.LoadFromFile(path))
	cfg.LoadFromEnv()

	assert.Equal(t, "http://from-env:4000/api", cfg.API.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.API.Timeout)
}

func TestEnvIgnoresGarbageTimeout(t *testing.T) {
	t.Setenv("COMANDA_API_TIMEOUT", "pronto")

	cfg := DefaultConfig()
	cfg.LoadFromEnv()

	assert.Equal(t, 15*time.Second, cfg.API.Timeout)
}

func TestOtelEndpointEnvEnablesTelemetry(t *testing.T) {
	t.Setenv("COMANDA_OTEL_ENDPOINT", "collector:4317")

	cfg := DefaultConfig()
	cfg.LoadFromEnv()

	assert.True(t, cfg.Telemetry.Enabled)
	assert.Equal(t, "collector:4317", cfg.Telemetry.Endpoint)
}

func TestOptionsOverrideEnv(t *testing.T) {
	t.Setenv("COMANDA_API_URL", "http://from-env:4000/api")

	cfg, err := NewConfig(WithAPIURL("http://from-flag:5000/api"))
	require.NoError(t, err)

	assert.Equal(t, "http://from-flag:5000/api", cfg.API.BaseURL)
}

func TestValidateRejectsBrokenValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"url without scheme", func(c *Config) { c.API.BaseURL = "localhost:3000" }},
		{"empty url", func(c *Config) { c.API.BaseURL = "" }},
		{"zero timeout", func(c *Config) { c.API.Timeout = 0 }},
		{"no session backend", func(c *Config) { c.Session.File = ""; c.Session.RedisURL = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidConfiguration)
		})
	}
}

func TestWithTimeoutRejectsNonPositive(t *testing.T) {
	_, err := NewConfig(WithTimeout(-time.Second))
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
}

func TestWithRedisSessionSwitchesBackend(t *testing.T) {
	cfg, err := NewConfig(WithRedisSession("redis://localhost:6379/0"))
	require.NoError(t, err)
	assert.Equal(t, "redis://localhost:6379/0", cfg.Session.RedisURL)
}
