package app

import (
	"context"
	"fmt"
	"log/slog"

	s3blob "github.com/alanyoungcy/momentumbot/internal/blob/s3"
	"github.com/alanyoungcy/momentumbot/internal/cache/redis"
	"github.com/alanyoungcy/momentumbot/internal/chains"
	"github.com/alanyoungcy/momentumbot/internal/config"
	"github.com/alanyoungcy/momentumbot/internal/domain"
	"github.com/alanyoungcy/momentumbot/internal/market"
	"github.com/alanyoungcy/momentumbot/internal/market/coingecko"
	"github.com/alanyoungcy/momentumbot/internal/notify"
	"github.com/alanyoungcy/momentumbot/internal/store/postgres"
)

// Dependencies bundles every domain-level dependency the application modes
// need. It is constructed by Wire and torn down by the returned cleanup
// function.
type Dependencies struct {
	Registry *chains.Registry
	Provider domain.MarketDataProvider

	// Persistence (record and full modes only)
	ScanStore domain.ScanStore

	// Redis (all modes except one-shot scan)
	SnapshotCache domain.SnapshotCache
	RateLimiter   domain.RateLimiter
	LockManager   domain.LockManager
	SignalBus     domain.SignalBus

	// Cold storage (record/full with s3 enabled)
	BlobWriter domain.BlobWriter
	Archiver   *s3blob.Archiver

	Notifier *notify.Notifier
}

// needsPostgres returns true for modes that persist scan history.
func needsPostgres(mode string) bool {
	return mode == "record" || mode == "full"
}

// needsRedis returns true for every long-running mode. The one-shot scan
// works without shared infrastructure.
func needsRedis(mode string) bool {
	return mode != "scan"
}

// Wire constructs all concrete dependency implementations from the given
// configuration and returns them with a cleanup function to be called on
// shutdown.
func Wire(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Dependencies, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	deps := &Dependencies{
		Registry: chains.NewRegistry(),
	}

	// --- PostgreSQL scan history ---
	if needsPostgres(cfg.Mode) {
		pgClient, err := postgres.New(ctx, postgres.ClientConfig{
			DSN:      cfg.Postgres.DSN,
			Host:     cfg.Postgres.Host,
			Port:     cfg.Postgres.Port,
			Database: cfg.Postgres.Database,
			User:     cfg.Postgres.User,
			Password: cfg.Postgres.Password,
			SSLMode:  cfg.Postgres.SSLMode,
			MaxConns: cfg.Postgres.PoolMaxConns,
			MinConns: cfg.Postgres.PoolMinConns,
		})
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("wire: postgres: %w", err)
		}
		closers = append(closers, pgClient.Close)

		if cfg.Postgres.RunMigrations {
			if err := pgClient.RunMigrations(ctx); err != nil {
				cleanup()
				return nil, nil, fmt.Errorf("wire: postgres migrations: %w", err)
			}
		}

		deps.ScanStore = postgres.NewScanStore(pgClient.Pool())
	}

	// --- Redis ---
	if needsRedis(cfg.Mode) {
		redisClient, err := redis.New(ctx, redis.ClientConfig{
			Addr:       cfg.Redis.Addr,
			Password:   cfg.Redis.Password,
			DB:         cfg.Redis.DB,
			PoolSize:   cfg.Redis.PoolSize,
			MaxRetries: cfg.Redis.MaxRetries,
			TLSEnabled: cfg.Redis.TLSEnabled,
		})
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("wire: redis: %w", err)
		}
		closers = append(closers, func() { _ = redisClient.Close() })

		deps.SnapshotCache = redis.NewSnapshotCache(redisClient, cfg.Market.CacheTTL.Duration)
		deps.RateLimiter = redis.NewRateLimiter(redisClient)
		deps.LockManager = redis.NewLockManager(redisClient)
		deps.SignalBus = redis.NewSignalBus(redisClient)
	}

	// --- Market data provider ---
	base := coingecko.NewClient(cfg.Market.BaseURL, cfg.Market.APIKey, deps.Registry)
	deps.Provider = market.NewCachedProvider(
		base,
		deps.SnapshotCache,
		deps.RateLimiter,
		cfg.Market.UpstreamRateLimit,
		cfg.Market.UpstreamRateWindow.Duration,
		logger,
	)

	// --- S3 cold storage ---
	if cfg.S3.Enabled && deps.ScanStore != nil {
		s3Client, err := s3blob.New(ctx, s3blob.ClientConfig{
			Endpoint:       cfg.S3.Endpoint,
			Region:         cfg.S3.Region,
			Bucket:         cfg.S3.Bucket,
			AccessKey:      cfg.S3.AccessKey,
			SecretKey:      cfg.S3.SecretKey,
			UseSSL:         cfg.S3.UseSSL,
			ForcePathStyle: cfg.S3.ForcePathStyle,
		})
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("wire: s3: %w", err)
		}

		deps.BlobWriter = s3blob.NewWriter(s3Client)
		deps.Archiver = s3blob.NewArchiver(deps.BlobWriter, deps.ScanStore)
	}

	// --- Notifications ---
	var senders []notify.Sender
	if cfg.Notify.TelegramToken != "" && cfg.Notify.TelegramChatID != "" {
		senders = append(senders, notify.NewTelegramSender(
			cfg.Notify.TelegramToken,
			cfg.Notify.TelegramChatID,
		))
	}
	if cfg.Notify.DiscordWebhookURL != "" {
		senders = append(senders, notify.NewDiscordSender(cfg.Notify.DiscordWebhookURL))
	}
	deps.Notifier = notify.NewNotifier(senders, cfg.Notify.Events, logger)

	return deps, cleanup, nil
}
