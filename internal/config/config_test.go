package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

const testToml = `
[development]
host = "localhost"
port = 8000
log_level = "debug"
prometheus_metrics_port = "2112"
rate_limit_allowed_per_min = 100
plan_cache_size_mb = 8
plan_cache_ttl_seconds = 60

[production]
host = "0.0.0.0"
port = 9000
log_level = "info"
prometheus_metrics_port = "2113"
redis_host = "redis"
redis_port = "6379"
allowed_origins = ["https://plans.example.com"]
`

func writeTestConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func noEnv(string) (string, bool) {
	return "", false
}

func TestLoad(t *testing.T) {
	path := writeTestConfig(t, testToml)

	cfg, err := Load("dev", path)
	require.NoError(t, err)
	assert.Equal(t, "dev", cfg.Environment)
	assert.Equal(t, 8000, cfg.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 100, cfg.RateLimitAllowedPerMin)
	assert.False(t, cfg.RedisEnabled())

	cfg, err = Load("production", path)
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.Port)
	assert.True(t, cfg.RedisEnabled())
	assert.Equal(t, []string{"https://plans.example.com"}, cfg.AllowedOrigins)
}

func TestLoad_UnknownEnv(t *testing.T) {
	path := writeTestConfig(t, testToml)

	cfg, err := Load("staging", path)
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "unknown env")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("dev", filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
}

func TestLoad_DefaultOrigins(t *testing.T) {
	var tml Toml
	tml.Development = &Config{Port: 8000, PrometheusMetricsPort: "2112"}

	cfg, err := load(&tml, "dev", noEnv)
	require.NoError(t, err)
	assert.Equal(t, DefaultAllowedOrigins, cfg.AllowedOrigins)
}

func TestLoad_EnvOverrides(t *testing.T) {
	env := map[string]string{
		"ALLOWED_ORIGINS": "https://a.example.com, https://b.example.com,",
		"API_HOST":        "127.0.0.1",
		"API_PORT":        "8081",
	}
	lookup := func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}

	tml := Toml{Development: &Config{Host: "localhost", Port: 8000, PrometheusMetricsPort: "2112"}}
	cfg, err := load(&tml, "development", lookup)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1", cfg.Host)
	assert.Equal(t, 8081, cfg.Port)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.AllowedOrigins)

	env["API_PORT"] = "eighty"
	tml = Toml{Development: &Config{Port: 8000, PrometheusMetricsPort: "2112"}}
	_, err = load(&tml, "development", lookup)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid API_PORT")
}

func TestConfig_Validate(t *testing.T) {
	cfg := &Config{
		Port:                   0,
		RateLimitAllowedPerMin: -1,
		PlanCacheSizeMB:        -5,
	}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 4)

	cfg = &Config{Port: 8000, PrometheusMetricsPort: "2112"}
	assert.NoError(t, cfg.Validate())
}

func TestToml_Get_MissingSection(t *testing.T) {
	tml := Toml{Development: &Config{}}
	_, err := tml.Get("prod")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no config section")
}
