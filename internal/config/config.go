package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"go.uber.org/multierr"
)

var DefaultAllowedOrigins = []string{
	"http://localhost:3000",
	"http://localhost:8080",
	"http://127.0.0.1:3000",
}

type Config struct {
	Environment string `toml:"environment"`
	Host        string `toml:"host"`
	Port        int    `toml:"port"`
	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`
	SentryEnabled bool   `toml:"sentry_enabled"`
	// metrics
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`
	// redis is optional, used for rate limiting when set
	RedisHost string `toml:"redis_host"`
	RedisPort string `toml:"redis_port"`
	// requests per minute per client, 0 disables rate limiting
	RateLimitAllowedPerMin int `toml:"rate_limit_allowed_per_min"`
	// CORS
	AllowedOrigins []string `toml:"allowed_origins"`
	// plan response cache
	PlanCacheSizeMB     int `toml:"plan_cache_size_mb"`
	PlanCacheTTLSeconds int `toml:"plan_cache_ttl_seconds"`
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	var cfg *Config
	switch strings.ToLower(env) {
	case "dev", "development":
		cfg = t.Development
	case "prod", "production":
		cfg = t.Production
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
	if cfg == nil {
		return nil, fmt.Errorf("no config section for env: %s", env)
	}
	return cfg, nil
}

// Load reads the TOML file at path, picks the section for env and applies
// environment overrides (ALLOWED_ORIGINS, API_HOST, API_PORT).
func Load(env, path string) (*Config, error) {
	var t Toml
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("decode config file %s: %w", path, err)
	}
	return load(&t, env, os.LookupEnv)
}

func load(t *Toml, env string, lookupEnv func(string) (string, bool)) (*Config, error) {
	cfg, err := t.Get(env)
	if err != nil {
		return nil, err
	}

	if cfg.Environment == "" {
		cfg.Environment = strings.ToLower(env)
	}

	if origins, ok := lookupEnv("ALLOWED_ORIGINS"); ok && origins != "" {
		cfg.AllowedOrigins = nil
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
			}
		}
	}
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = DefaultAllowedOrigins
	}

	if host, ok := lookupEnv("API_HOST"); ok && host != "" {
		cfg.Host = host
	}
	if portStr, ok := lookupEnv("API_PORT"); ok && portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, fmt.Errorf("invalid API_PORT [%s]: %w", portStr, err)
		}
		cfg.Port = port
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate reports every invalid field at once.
func (c *Config) Validate() error {
	var err error
	if c.Port <= 0 || c.Port > 65535 {
		err = multierr.Append(err, fmt.Errorf("port out of range: %d", c.Port))
	}
	if c.PrometheusMetricsPort == "" {
		err = multierr.Append(err, errors.New("prometheus metrics port not set"))
	}
	if c.RateLimitAllowedPerMin < 0 {
		err = multierr.Append(err, fmt.Errorf("negative rate limit: %d", c.RateLimitAllowedPerMin))
	}
	if c.PlanCacheSizeMB < 0 {
		err = multierr.Append(err, fmt.Errorf("negative plan cache size: %d", c.PlanCacheSizeMB))
	}
	if c.PlanCacheTTLSeconds < 0 {
		err = multierr.Append(err, fmt.Errorf("negative plan cache ttl: %d", c.PlanCacheTTLSeconds))
	}
	return err
}

func (c *Config) RedisEnabled() bool {
	return c.RedisHost != ""
}
