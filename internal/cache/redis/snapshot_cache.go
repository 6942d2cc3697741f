package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/alanyoungcy/momentumbot/internal/domain"
)

// defaultSnapshotTTL bounds staleness of cached market data. One minute keeps
// scan results responsive while staying well inside public API rate limits.
const defaultSnapshotTTL = time.Minute

// SnapshotCache implements domain.SnapshotCache using JSON blobs with a TTL.
// The universe lives at one key; per-token snapshots (with price history) at
// "snapshot:token:{symbol}".
type SnapshotCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewSnapshotCache creates a SnapshotCache backed by the given Client. A
// non-positive ttl falls back to the default.
func NewSnapshotCache(c *Client, ttl time.Duration) *SnapshotCache {
	if ttl <= 0 {
		ttl = defaultSnapshotTTL
	}
	return &SnapshotCache{rdb: c.Underlying(), ttl: ttl}
}

const universeKey = "snapshot:universe"

func tokenKey(symbol string) string {
	return "snapshot:token:" + symbol
}

// tokenEntry is the stored shape for a single token's market data.
type tokenEntry struct {
	Snapshot domain.TokenSnapshot `json:"snapshot"`
	History  []float64            `json:"history"`
}

// SetUniverse stores the full universe snapshot.
func (sc *SnapshotCache) SetUniverse(ctx context.Context, snapshots []domain.TokenSnapshot) error {
	data, err := json.Marshal(snapshots)
	if err != nil {
		return fmt.Errorf("redis: encode universe: %w", err)
	}
	if err := sc.rdb.Set(ctx, universeKey, data, sc.ttl).Err(); err != nil {
		return fmt.Errorf("redis: set universe: %w", err)
	}
	return nil
}

// GetUniverse retrieves the cached universe snapshot, or domain.ErrNotFound
// when the key is absent or expired.
func (sc *SnapshotCache) GetUniverse(ctx context.Context) ([]domain.TokenSnapshot, error) {
	data, err := sc.rdb.Get(ctx, universeKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis: get universe: %w", err)
	}
	var snapshots []domain.TokenSnapshot
	if err := json.Unmarshal(data, &snapshots); err != nil {
		return nil, fmt.Errorf("redis: decode universe: %w", err)
	}
	return snapshots, nil
}

// SetToken stores one token's snapshot and price history.
func (sc *SnapshotCache) SetToken(ctx context.Context, symbol string, snap domain.TokenSnapshot, history []float64) error {
	data, err := json.Marshal(tokenEntry{Snapshot: snap, History: history})
	if err != nil {
		return fmt.Errorf("redis: encode token %s: %w", symbol, err)
	}
	if err := sc.rdb.Set(ctx, tokenKey(symbol), data, sc.ttl).Err(); err != nil {
		return fmt.Errorf("redis: set token %s: %w", symbol, err)
	}
	return nil
}

// GetToken retrieves one token's cached snapshot and history, or
// domain.ErrNotFound when absent or expired.
func (sc *SnapshotCache) GetToken(ctx context.Context, symbol string) (domain.TokenSnapshot, []float64, error) {
	data, err := sc.rdb.Get(ctx, tokenKey(symbol)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.TokenSnapshot{}, nil, domain.ErrNotFound
	}
	if err != nil {
		return domain.TokenSnapshot{}, nil, fmt.Errorf("redis: get token %s: %w", symbol, err)
	}
	var entry tokenEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return domain.TokenSnapshot{}, nil, fmt.Errorf("redis: decode token %s: %w", symbol, err)
	}
	return entry.Snapshot, entry.History, nil
}

// Compile-time interface check.
var _ domain.SnapshotCache = (*SnapshotCache)(nil)
