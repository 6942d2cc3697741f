package domain

import (
	"context"
	"time"
)

// ScanRun is one recorded momentum scan: the parameters it ran with and the
// ranked results it produced. Recorded runs exist for offline analysis only;
// the API operations themselves stay stateless.
type ScanRun struct {
	ID        string
	Threshold float64
	Timeframe Timeframe
	Found     int
	Results   []MomentumResult
	RanAt     time.Time
}

// ScanStore persists scan history.
type ScanStore interface {
	RecordRun(ctx context.Context, run ScanRun) error
	ListRecent(ctx context.Context, limit int) ([]ScanRun, error)
	ListBefore(ctx context.Context, before time.Time) ([]ScanRun, error)
	DeleteBefore(ctx context.Context, before time.Time) (int64, error)
}
