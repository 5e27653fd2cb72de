package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	DefaultRecomputeInterval      = 5 * time.Minute
	DefaultRecomputeBatchSize     = 100
	DefaultRecomputeRateLimit     = 6
	DefaultStatsCacheSizeBytes    = 10 * 1024 * 1024
	DefaultStatsCacheTTLSeconds   = 60
	DefaultDurationsAnomalyPolicy = "abs"
)

var DefaultCorsAllowedOrigins = []string{"http://localhost:8080", "http://localhost:3000"}

type Config struct {
	Environment string `toml:"environment"`
	Host        string `toml:"host"`
	Port        int    `toml:"port"`

	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`

	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`
	SentryEnabled bool   `toml:"sentry_enabled"`

	CorsAllowedOrigins []string `toml:"cors_allowed_origins"`

	// postgres
	PostgresHost   string `toml:"postgres_host"`
	PostgresPort   string `toml:"postgres_port"`
	PostgresDBName string `toml:"postgres_db_name"`

	// redis (owner sessions, rate limiting)
	RedisHost string `toml:"redis_host"`
	RedisPort string `toml:"redis_port"`

	// rest durations pipeline
	DurationsRecomputeEnabled  bool     `toml:"durations_recompute_enabled"`
	DurationsRecomputeInterval Duration `toml:"durations_recompute_interval"`
	DurationsRecomputeBatch    int      `toml:"durations_recompute_batch"`
	DurationsAnomalyPolicy     string   `toml:"durations_anomaly_policy"`
	RecomputeRateLimitPerMin   int      `toml:"recompute_rate_limit_per_min"`

	// stats cache
	StatsCacheSizeBytes  int `toml:"stats_cache_size_bytes"`
	StatsCacheTTLSeconds int `toml:"stats_cache_ttl_seconds"`

	// mcp
	MCPEnabled bool `toml:"mcp_enabled"`
	MCPOwnerID int  `toml:"mcp_owner_id"`
}

// Duration lets TOML carry values like "5m" or "90s".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("parse duration [%s]: %w", text, err)
	}
	d.Duration = parsed
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	switch strings.ToLower(env) {
	case "dev", "development":
		if t.Development == nil {
			return nil, errors.New("development config missing")
		}
		t.Development.Environment = "development"
		return t.Development, nil
	case "prod", "production":
		if t.Production == nil {
			return nil, errors.New("production config missing")
		}
		t.Production.Environment = "production"
		return t.Production, nil
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
}

// Load reads the TOML file at path and returns the section for env,
// with defaults applied and validated.
func Load(env, path string) (*Config, error) {
	var t Toml
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("decode config file [%s]: %w", path, err)
	}

	cfg, err := t.Get(env)
	if err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid [%s] config: %w", env, err)
	}

	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.DurationsRecomputeInterval.Duration <= 0 {
		c.DurationsRecomputeInterval.Duration = DefaultRecomputeInterval
	}
	if c.DurationsRecomputeBatch <= 0 {
		c.DurationsRecomputeBatch = DefaultRecomputeBatchSize
	}
	if c.DurationsAnomalyPolicy == "" {
		c.DurationsAnomalyPolicy = DefaultDurationsAnomalyPolicy
	}
	if c.RecomputeRateLimitPerMin <= 0 {
		c.RecomputeRateLimitPerMin = DefaultRecomputeRateLimit
	}
	if c.StatsCacheSizeBytes <= 0 {
		c.StatsCacheSizeBytes = DefaultStatsCacheSizeBytes
	}
	if c.StatsCacheTTLSeconds <= 0 {
		c.StatsCacheTTLSeconds = DefaultStatsCacheTTLSeconds
	}
	if len(c.CorsAllowedOrigins) == 0 {
		c.CorsAllowedOrigins = DefaultCorsAllowedOrigins
	}
}

func (c *Config) Validate() error {
	var errs []error
	if c.Port <= 0 {
		errs = append(errs, errors.New("port must be set"))
	}
	if c.PostgresHost == "" || c.PostgresPort == "" || c.PostgresDBName == "" {
		errs = append(errs, errors.New("postgres host, port and db name must be set"))
	}
	switch c.DurationsAnomalyPolicy {
	case "abs", "flag":
	default:
		errs = append(errs, fmt.Errorf("unknown durations anomaly policy: %s", c.DurationsAnomalyPolicy))
	}
	if c.MCPEnabled && c.MCPOwnerID <= 0 {
		errs = append(errs, errors.New("mcp_owner_id must be set when mcp is enabled"))
	}
	return errors.Join(errs...)
}
