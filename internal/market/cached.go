// Package market composes the raw market-data provider with caching and rate
// limiting so repeated pipeline calls within the cache TTL never re-hit the
// upstream API.
package market

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/alanyoungcy/momentumbot/internal/domain"
)

// upstreamKey is the rate-limiter bucket shared by all upstream calls.
const upstreamKey = "coingecko"

// CachedProvider decorates a MarketDataProvider with a snapshot cache and a
// distributed rate limit on upstream fetches. Cache failures degrade to
// direct fetches; they are logged, never fatal.
type CachedProvider struct {
	provider  domain.MarketDataProvider
	cache     domain.SnapshotCache
	limiter   domain.RateLimiter
	rateLimit int
	rateWin   time.Duration
	logger    *slog.Logger
}

// NewCachedProvider wraps provider. cache and limiter may be nil, which
// disables the corresponding layer (useful in one-shot scan mode).
func NewCachedProvider(
	provider domain.MarketDataProvider,
	cache domain.SnapshotCache,
	limiter domain.RateLimiter,
	rateLimit int,
	rateWindow time.Duration,
	logger *slog.Logger,
) *CachedProvider {
	if rateLimit <= 0 {
		rateLimit = 30
	}
	if rateWindow <= 0 {
		rateWindow = time.Minute
	}
	return &CachedProvider{
		provider:  provider,
		cache:     cache,
		limiter:   limiter,
		rateLimit: rateLimit,
		rateWin:   rateWindow,
		logger:    logger.With(slog.String("component", "market")),
	}
}

// TopMarkets serves the universe snapshot from cache when fresh, otherwise
// fetches upstream and back-fills the cache.
func (p *CachedProvider) TopMarkets(ctx context.Context, limit int) ([]domain.TokenSnapshot, error) {
	if p.cache != nil {
		if snaps, err := p.cache.GetUniverse(ctx); err == nil && len(snaps) >= limit {
			if limit > 0 && len(snaps) > limit {
				snaps = snaps[:limit]
			}
			return snaps, nil
		} else if err != nil && !errors.Is(err, domain.ErrNotFound) {
			p.logger.WarnContext(ctx, "universe cache read failed", slog.String("error", err.Error()))
		}
	}

	if err := p.allowUpstream(ctx); err != nil {
		return nil, err
	}

	snaps, err := p.provider.TopMarkets(ctx, limit)
	if err != nil {
		return nil, err
	}

	if p.cache != nil {
		if err := p.cache.SetUniverse(ctx, snaps); err != nil {
			p.logger.WarnContext(ctx, "universe cache write failed", slog.String("error", err.Error()))
		}
	}
	return snaps, nil
}

// TokenMarket serves a single token's snapshot and history from cache when
// fresh, otherwise fetches upstream and back-fills.
func (p *CachedProvider) TokenMarket(ctx context.Context, symbol string) (domain.TokenSnapshot, []float64, error) {
	if p.cache != nil {
		if snap, history, err := p.cache.GetToken(ctx, symbol); err == nil {
			return snap, history, nil
		} else if !errors.Is(err, domain.ErrNotFound) {
			p.logger.WarnContext(ctx, "token cache read failed",
				slog.String("symbol", symbol),
				slog.String("error", err.Error()),
			)
		}
	}

	if err := p.allowUpstream(ctx); err != nil {
		return domain.TokenSnapshot{}, nil, err
	}

	snap, history, err := p.provider.TokenMarket(ctx, symbol)
	if err != nil {
		return domain.TokenSnapshot{}, nil, err
	}

	if p.cache != nil {
		if err := p.cache.SetToken(ctx, symbol, snap, history); err != nil {
			p.logger.WarnContext(ctx, "token cache write failed",
				slog.String("symbol", symbol),
				slog.String("error", err.Error()),
			)
		}
	}
	return snap, history, nil
}

// allowUpstream enforces the shared rate limit. A limiter failure maps to
// upstream-unavailable: without the limiter we cannot safely call out.
func (p *CachedProvider) allowUpstream(ctx context.Context) error {
	if p.limiter == nil {
		return nil
	}
	allowed, err := p.limiter.Allow(ctx, upstreamKey, p.rateLimit, p.rateWin)
	if err != nil {
		return fmt.Errorf("%w: rate limiter: %v", domain.ErrUpstreamUnavailable, err)
	}
	if !allowed {
		return fmt.Errorf("%w: upstream rate limit exceeded", domain.ErrUpstreamUnavailable)
	}
	return nil
}

// Compile-time interface check.
var _ domain.MarketDataProvider = (*CachedProvider)(nil)
