package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.App.HTTPPort)
	assert.Equal(t, 10, cfg.App.ShutdownTimeoutSeconds)
	assert.True(t, cfg.App.ViewsEnabled)
	assert.Equal(t, "lenient", cfg.Registry.ValidationMode)
	assert.Equal(t, "stdout", cfg.Logger.OutputPath)
	assert.Equal(t, "user-registry-service", cfg.Logger.ServiceName)
	assert.False(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 10.0, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, 20, cfg.RateLimit.BurstCapacity)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr())
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	content := "HTTP_PORT=9090\nVALIDATION_MODE=strict\nVIEWS_ENABLED=false\nRATE_LIMIT_BURST=5\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.env"), []byte(content), 0o600))

	t.Setenv("RATE_LIMIT_BURST", "7")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.App.HTTPPort)
	assert.Equal(t, "strict", cfg.Registry.ValidationMode)
	assert.False(t, cfg.App.ViewsEnabled)
	assert.Equal(t, 7, cfg.RateLimit.BurstCapacity, "environment overrides the file")
}

func TestLoadConfig_ProductionLoggerDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "production")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.App.Env)
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, "json", cfg.Logger.Format)
	assert.True(t, cfg.Logger.EnableSampling)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg, err := LoadConfig(t.TempDir())
		require.NoError(t, err)
		return cfg
	}

	tests := []struct {
		name     string
		mutate   func(*Config)
		contains string
	}{
		{"bad port", func(c *Config) { c.App.HTTPPort = "http" }, "HTTP_PORT"},
		{"port out of range", func(c *Config) { c.App.HTTPPort = "70000" }, "HTTP_PORT"},
		{"zero shutdown timeout", func(c *Config) { c.App.ShutdownTimeoutSeconds = 0 }, "SHUTDOWN_TIMEOUT_SECONDS"},
		{"unknown validation mode", func(c *Config) { c.Registry.ValidationMode = "loose" }, "VALIDATION_MODE"},
		{"unknown log format", func(c *Config) { c.Logger.Format = "xml" }, "LOG_FORMAT"},
		{"rate limit without rps", func(c *Config) {
			c.RateLimit.Enabled = true
			c.RateLimit.RequestsPerSecond = 0
		}, "RATE_LIMIT_RPS"},
		{"rate limit without redis", func(c *Config) {
			c.RateLimit.Enabled = true
			c.Redis.Host = ""
		}, "REDIS_HOST"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}
