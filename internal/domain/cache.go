package domain

import (
	"context"
	"time"
)

// SnapshotCache stores fetched market snapshots so repeated pipeline calls
// within the TTL do not re-hit the upstream API.
type SnapshotCache interface {
	SetUniverse(ctx context.Context, snapshots []TokenSnapshot) error
	GetUniverse(ctx context.Context) ([]TokenSnapshot, error)
	SetToken(ctx context.Context, symbol string, snap TokenSnapshot, history []float64) error
	GetToken(ctx context.Context, symbol string) (TokenSnapshot, []float64, error)
}

// RateLimiter provides distributed rate limiting for upstream API calls.
type RateLimiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
	Wait(ctx context.Context, key string) error
}

// LockManager provides distributed locking so only one recorder instance
// writes a given scan interval.
type LockManager interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (unlock func(), err error)
}

// SignalBus provides pub/sub fan-out of pipeline events (scan completed,
// momentum detected) to the WebSocket hub and other listeners.
type SignalBus interface {
	Publish(ctx context.Context, channel string, payload []byte) error
	Subscribe(ctx context.Context, channel string) (<-chan []byte, error)
}
