package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Load reads a TOML configuration file at path, merges it on top of the
// built-in defaults, applies MOMENTUMBOT_* environment variable overrides,
// and returns the final Config. The returned Config has NOT been validated;
// the caller should invoke Config.Validate() after Load.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, err
	}

	// Load .env file if present (silently ignore if missing).
	_ = godotenv.Load()

	applyEnvOverrides(&cfg)

	return &cfg, nil
}

// applyEnvOverrides reads well-known MOMENTUMBOT_* environment variables and
// overwrites the corresponding Config fields when a variable is set. This
// lets operators inject secrets at deploy time without touching the TOML
// file.
func applyEnvOverrides(cfg *Config) {
	// ── Market ──
	setStr(&cfg.Market.BaseURL, "MOMENTUMBOT_MARKET_BASE_URL")
	setStr(&cfg.Market.APIKey, "MOMENTUMBOT_MARKET_API_KEY")
	setInt(&cfg.Market.UniverseLimit, "MOMENTUMBOT_MARKET_UNIVERSE_LIMIT")
	setDuration(&cfg.Market.CacheTTL, "MOMENTUMBOT_MARKET_CACHE_TTL")
	setInt(&cfg.Market.UpstreamRateLimit, "MOMENTUMBOT_MARKET_UPSTREAM_RATE_LIMIT")
	setDuration(&cfg.Market.UpstreamRateWindow, "MOMENTUMBOT_MARKET_UPSTREAM_RATE_WINDOW")

	// ── Postgres ──
	setStr(&cfg.Postgres.DSN, "MOMENTUMBOT_POSTGRES_DSN")
	setStr(&cfg.Postgres.Host, "MOMENTUMBOT_POSTGRES_HOST")
	setInt(&cfg.Postgres.Port, "MOMENTUMBOT_POSTGRES_PORT")
	setStr(&cfg.Postgres.Database, "MOMENTUMBOT_POSTGRES_DATABASE")
	setStr(&cfg.Postgres.User, "MOMENTUMBOT_POSTGRES_USER")
	setStr(&cfg.Postgres.Password, "MOMENTUMBOT_POSTGRES_PASSWORD")
	setStr(&cfg.Postgres.SSLMode, "MOMENTUMBOT_POSTGRES_SSL_MODE")
	setInt(&cfg.Postgres.PoolMaxConns, "MOMENTUMBOT_POSTGRES_POOL_MAX_CONNS")
	setInt(&cfg.Postgres.PoolMinConns, "MOMENTUMBOT_POSTGRES_POOL_MIN_CONNS")
	setBool(&cfg.Postgres.RunMigrations, "MOMENTUMBOT_POSTGRES_RUN_MIGRATIONS")

	// ── Redis ──
	setStr(&cfg.Redis.Addr, "MOMENTUMBOT_REDIS_ADDR")
	setStr(&cfg.Redis.Password, "MOMENTUMBOT_REDIS_PASSWORD")
	setInt(&cfg.Redis.DB, "MOMENTUMBOT_REDIS_DB")
	setInt(&cfg.Redis.PoolSize, "MOMENTUMBOT_REDIS_POOL_SIZE")
	setInt(&cfg.Redis.MaxRetries, "MOMENTUMBOT_REDIS_MAX_RETRIES")
	setBool(&cfg.Redis.TLSEnabled, "MOMENTUMBOT_REDIS_TLS_ENABLED")

	// ── S3 ──
	setBool(&cfg.S3.Enabled, "MOMENTUMBOT_S3_ENABLED")
	setStr(&cfg.S3.Endpoint, "MOMENTUMBOT_S3_ENDPOINT")
	setStr(&cfg.S3.Region, "MOMENTUMBOT_S3_REGION")
	setStr(&cfg.S3.Bucket, "MOMENTUMBOT_S3_BUCKET")
	setStr(&cfg.S3.AccessKey, "MOMENTUMBOT_S3_ACCESS_KEY")
	setStr(&cfg.S3.SecretKey, "MOMENTUMBOT_S3_SECRET_KEY")
	setBool(&cfg.S3.UseSSL, "MOMENTUMBOT_S3_USE_SSL")
	setBool(&cfg.S3.ForcePathStyle, "MOMENTUMBOT_S3_FORCE_PATH_STYLE")

	// ── Scan ──
	setFloat64(&cfg.Scan.Threshold, "MOMENTUMBOT_SCAN_THRESHOLD")
	setStr(&cfg.Scan.Timeframe, "MOMENTUMBOT_SCAN_TIMEFRAME")
	setDuration(&cfg.Scan.Interval, "MOMENTUMBOT_SCAN_INTERVAL")
	setInt(&cfg.Scan.RetentionDays, "MOMENTUMBOT_SCAN_RETENTION_DAYS")
	setStr(&cfg.Scan.ArchiveCron, "MOMENTUMBOT_SCAN_ARCHIVE_CRON")

	// ── Server ──
	setBool(&cfg.Server.Enabled, "MOMENTUMBOT_SERVER_ENABLED")
	setInt(&cfg.Server.Port, "MOMENTUMBOT_SERVER_PORT")
	setStr(&cfg.Server.APIKey, "MOMENTUMBOT_SERVER_API_KEY")
	setStringSlice(&cfg.Server.CORSOrigins, "MOMENTUMBOT_SERVER_CORS_ORIGINS")
	setInt(&cfg.Server.RateLimit, "MOMENTUMBOT_SERVER_RATE_LIMIT")
	setDuration(&cfg.Server.RateWindow, "MOMENTUMBOT_SERVER_RATE_WINDOW")

	// ── Notify ──
	setStr(&cfg.Notify.TelegramToken, "MOMENTUMBOT_NOTIFY_TELEGRAM_TOKEN")
	setStr(&cfg.Notify.TelegramChatID, "MOMENTUMBOT_NOTIFY_TELEGRAM_CHAT_ID")
	setStr(&cfg.Notify.DiscordWebhookURL, "MOMENTUMBOT_NOTIFY_DISCORD_WEBHOOK_URL")
	setStringSlice(&cfg.Notify.Events, "MOMENTUMBOT_NOTIFY_EVENTS")

	// ── Top-level ──
	setStr(&cfg.Mode, "MOMENTUMBOT_MODE")
	setStr(&cfg.LogLevel, "MOMENTUMBOT_LOG_LEVEL")
}

// ---------------------------------------------------------------------------
// Typed env-var helpers. Each only mutates the target when the environment
// variable is present and non-empty.
// ---------------------------------------------------------------------------

func setStr(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setFloat64(dst *float64, key string) {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*dst = f
		}
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

func setDuration(dst *duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			dst.Duration = d
		}
	}
}

func setStringSlice(dst *[]string, key string) {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		cleaned := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "" {
				cleaned = append(cleaned, p)
			}
		}
		if len(cleaned) > 0 {
			*dst = cleaned
		}
	}
}
