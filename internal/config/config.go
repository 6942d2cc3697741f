// Package config defines the top-level configuration for the momentum bot
// and provides validation helpers.
package config

import (
	"fmt"
	"strings"
	"time"
)

// Config is the root configuration structure. Fields are populated from a TOML
// file and then optionally overridden by MOMENTUMBOT_* environment variables.
type Config struct {
	Market   MarketConfig   `toml:"market"`
	Postgres PostgresConfig `toml:"postgres"`
	Redis    RedisConfig    `toml:"redis"`
	S3       S3Config       `toml:"s3"`
	Scan     ScanConfig     `toml:"scan"`
	Server   ServerConfig   `toml:"server"`
	Notify   NotifyConfig   `toml:"notify"`
	Mode     string         `toml:"mode"`
	LogLevel string         `toml:"log_level"`
}

// MarketConfig holds upstream market-data API parameters.
type MarketConfig struct {
	BaseURL string `toml:"base_url"`
	APIKey  string `toml:"api_key"`

	// UniverseLimit caps how many markets a universe fetch requests upstream.
	UniverseLimit int `toml:"universe_limit"`

	// CacheTTL is how long snapshots stay fresh in Redis.
	CacheTTL duration `toml:"cache_ttl"`

	// UpstreamRateLimit / UpstreamRateWindow bound calls to the upstream API
	// across all instances sharing the Redis limiter.
	UpstreamRateLimit  int      `toml:"upstream_rate_limit"`
	UpstreamRateWindow duration `toml:"upstream_rate_window"`
}

// PostgresConfig holds PostgreSQL connection parameters for scan history.
type PostgresConfig struct {
	DSN           string `toml:"dsn"`
	Host          string `toml:"host"`
	Port          int    `toml:"port"`
	Database      string `toml:"database"`
	User          string `toml:"user"`
	Password      string `toml:"password"`
	SSLMode       string `toml:"ssl_mode"`
	PoolMaxConns  int    `toml:"pool_max_conns"`
	PoolMinConns  int    `toml:"pool_min_conns"`
	RunMigrations bool   `toml:"run_migrations"`
}

// RedisConfig holds Redis connection parameters.
type RedisConfig struct {
	Addr       string `toml:"addr"`
	Password   string `toml:"password"`
	DB         int    `toml:"db"`
	PoolSize   int    `toml:"pool_size"`
	MaxRetries int    `toml:"max_retries"`
	TLSEnabled bool   `toml:"tls_enabled"`
}

// S3Config holds S3-compatible object storage parameters for the scan-run
// archive.
type S3Config struct {
	Enabled        bool   `toml:"enabled"`
	Endpoint       string `toml:"endpoint"`
	Region         string `toml:"region"`
	Bucket         string `toml:"bucket"`
	AccessKey      string `toml:"access_key"`
	SecretKey      string `toml:"secret_key"`
	UseSSL         bool   `toml:"use_ssl"`
	ForcePathStyle bool   `toml:"force_path_style"`
}

// ScanConfig holds the recorder's scan loop parameters.
type ScanConfig struct {
	// Threshold is the minimum absolute percent change for momentum.
	Threshold float64 `toml:"threshold"`

	// Timeframe is the change window the recorder scans on.
	Timeframe string `toml:"timeframe"`

	// Interval is how often the recorder scans.
	Interval duration `toml:"interval"`

	// RetentionDays is how long scan runs stay in Postgres before being
	// archived to S3 (when enabled) and pruned.
	RetentionDays int `toml:"retention_days"`

	// ArchiveCron schedules archive runs, standard 5-field cron syntax.
	ArchiveCron string `toml:"archive_cron"`
}

// duration wraps time.Duration so the TOML decoder can parse strings like
// "5m" or "30s".
type duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText implements encoding.TextMarshaler for round-trip encoding.
func (d duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// ServerConfig holds HTTP server parameters.
type ServerConfig struct {
	Enabled     bool     `toml:"enabled"`
	Port        int      `toml:"port"`
	APIKey      string   `toml:"api_key"`
	CORSOrigins []string `toml:"cors_origins"`

	// RateLimit / RateWindow bound requests per client IP. Zero disables.
	RateLimit  int      `toml:"rate_limit"`
	RateWindow duration `toml:"rate_window"`
}

// NotifyConfig holds notification channel credentials.
type NotifyConfig struct {
	TelegramToken     string   `toml:"telegram_token"`
	TelegramChatID    string   `toml:"telegram_chat_id"`
	DiscordWebhookURL string   `toml:"discord_webhook_url"`
	Events            []string `toml:"events"`
}

// Defaults returns a Config populated with reasonable default values.
func Defaults() Config {
	return Config{
		Market: MarketConfig{
			BaseURL:            "https://api.coingecko.com/api/v3",
			UniverseLimit:      100,
			CacheTTL:           duration{time.Minute},
			UpstreamRateLimit:  30,
			UpstreamRateWindow: duration{time.Minute},
		},
		Postgres: PostgresConfig{
			Host:          "localhost",
			Port:          5432,
			Database:      "momentumbot",
			User:          "postgres",
			SSLMode:       "disable",
			PoolMaxConns:  10,
			PoolMinConns:  2,
			RunMigrations: true,
		},
		Redis: RedisConfig{
			Addr:       "localhost:6379",
			DB:         0,
			PoolSize:   20,
			MaxRetries: 3,
			TLSEnabled: false,
		},
		S3: S3Config{
			Enabled:        false,
			Endpoint:       "http://localhost:9000",
			Region:         "us-east-1",
			Bucket:         "momentumbot-archive",
			UseSSL:         false,
			ForcePathStyle: true,
		},
		Scan: ScanConfig{
			Threshold:     5.0,
			Timeframe:     "24h",
			Interval:      duration{5 * time.Minute},
			RetentionDays: 90,
			ArchiveCron:   "0 3 * * *",
		},
		Server: ServerConfig{
			Enabled:     true,
			Port:        8000,
			CORSOrigins: []string{"http://localhost:3000", "http://localhost:5173"},
			RateLimit:   60,
			RateWindow:  duration{time.Minute},
		},
		Notify: NotifyConfig{
			Events: []string{"momentum.detected", "scan.failed"},
		},
		Mode:     "full",
		LogLevel: "info",
	}
}

// validModes enumerates the accepted values for Config.Mode.
var validModes = map[string]bool{
	"server": true,
	"scan":   true,
	"record": true,
	"full":   true,
}

// validLogLevels enumerates the accepted values for Config.LogLevel.
var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// validTimeframes enumerates the change windows the scanner can select on.
// 4h is analysis-only and not a valid scan window.
var validTimeframes = map[string]bool{
	"1h":  true,
	"24h": true,
	"7d":  true,
}

// Validate checks Config for obviously invalid or missing values and returns a
// combined error describing every problem found.
func (c *Config) Validate() error {
	var errs []string

	if !validModes[strings.ToLower(c.Mode)] {
		errs = append(errs, fmt.Sprintf("unknown mode %q (valid: server, scan, record, full)", c.Mode))
	}
	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		errs = append(errs, fmt.Sprintf("unknown log_level %q (valid: debug, info, warn, error)", c.LogLevel))
	}

	// Market
	if c.Market.BaseURL == "" {
		errs = append(errs, "market: base_url must not be empty")
	}
	if c.Market.UniverseLimit < 1 {
		errs = append(errs, "market: universe_limit must be >= 1")
	}
	if c.Market.UpstreamRateLimit < 0 {
		errs = append(errs, "market: upstream_rate_limit must be >= 0")
	}

	// Postgres — only the recorder and full modes persist scan history.
	needsPostgres := c.Mode == "record" || c.Mode == "full"
	if needsPostgres {
		if strings.TrimSpace(c.Postgres.DSN) == "" {
			if c.Postgres.Host == "" {
				errs = append(errs, "postgres: host must not be empty (or set postgres.dsn)")
			}
			if c.Postgres.Port <= 0 || c.Postgres.Port > 65535 {
				errs = append(errs, fmt.Sprintf("postgres: port must be 1-65535, got %d", c.Postgres.Port))
			}
			if c.Postgres.Database == "" {
				errs = append(errs, "postgres: database must not be empty")
			}
		}
		if c.Postgres.PoolMaxConns < 1 {
			errs = append(errs, "postgres: pool_max_conns must be >= 1")
		}
		if c.Postgres.PoolMinConns < 0 {
			errs = append(errs, "postgres: pool_min_conns must be >= 0")
		}
		if c.Postgres.PoolMinConns > c.Postgres.PoolMaxConns {
			errs = append(errs, "postgres: pool_min_conns must not exceed pool_max_conns")
		}
	}

	// Redis
	if c.Redis.Addr == "" {
		errs = append(errs, "redis: addr must not be empty")
	}
	if c.Redis.PoolSize < 1 {
		errs = append(errs, "redis: pool_size must be >= 1")
	}

	// S3
	if c.S3.Enabled {
		if c.S3.Region == "" {
			errs = append(errs, "s3: region must not be empty when enabled")
		}
		if c.S3.Bucket == "" {
			errs = append(errs, "s3: bucket must not be empty when enabled")
		}
	}

	// Scan
	if c.Scan.Threshold < 0 {
		errs = append(errs, "scan: threshold must be >= 0")
	}
	if !validTimeframes[c.Scan.Timeframe] {
		errs = append(errs, fmt.Sprintf("scan: unknown timeframe %q (valid: 1h, 24h, 7d)", c.Scan.Timeframe))
	}
	if needsPostgres && c.Scan.Interval.Duration < time.Second {
		errs = append(errs, "scan: interval must be at least 1s")
	}
	if c.Scan.RetentionDays < 1 {
		errs = append(errs, "scan: retention_days must be >= 1")
	}

	// Server
	if c.Server.Enabled {
		if c.Server.Port <= 0 || c.Server.Port > 65535 {
			errs = append(errs, fmt.Sprintf("server: port must be 1-65535, got %d", c.Server.Port))
		}
		if c.Server.RateLimit < 0 {
			errs = append(errs, "server: rate_limit must be >= 0")
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
