// Package pipeline runs the background loops: the scan recorder that
// persists momentum history and the archiver that moves aged runs to cold
// storage.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/alanyoungcy/momentumbot/internal/domain"
	"github.com/alanyoungcy/momentumbot/internal/notify"
)

// recordLockKey guards the scan interval so only one recorder instance
// writes a given tick.
const recordLockKey = "recorder"

// ScanRunner is the slice of the scan service the recorder needs.
type ScanRunner interface {
	Scan(ctx context.Context, threshold float64, timeframe domain.Timeframe) (domain.ScanReport, error)
}

// Alerter delivers operator notifications for pipeline events.
type Alerter interface {
	Notify(ctx context.Context, event, title, message string) error
}

// Recorder periodically scans the market and persists each run. The alerter
// and lock manager may be nil (no notifications, no cross-instance locking).
type Recorder struct {
	scans     ScanRunner
	store     domain.ScanStore
	locks     domain.LockManager
	alerter   Alerter
	threshold float64
	timeframe domain.Timeframe
	logger    *slog.Logger
}

// NewRecorder creates a Recorder with the configured scan parameters.
func NewRecorder(
	scans ScanRunner,
	store domain.ScanStore,
	locks domain.LockManager,
	alerter Alerter,
	threshold float64,
	timeframe domain.Timeframe,
	logger *slog.Logger,
) *Recorder {
	return &Recorder{
		scans:     scans,
		store:     store,
		locks:     locks,
		alerter:   alerter,
		threshold: threshold,
		timeframe: timeframe,
		logger:    logger.With(slog.String("component", "recorder")),
	}
}

// Run executes one recorded scan: acquire the interval lock, scan, persist,
// alert on detected momentum. A held lock means another instance already
// recorded this tick and is not an error.
func (r *Recorder) Run(ctx context.Context, lockTTL time.Duration) error {
	if r.locks != nil {
		unlock, err := r.locks.Acquire(ctx, recordLockKey, lockTTL)
		if err != nil {
			if errors.Is(err, domain.ErrLockHeld) {
				r.logger.DebugContext(ctx, "scan interval already claimed by another instance")
				return nil
			}
			return fmt.Errorf("recorder: acquire lock: %w", err)
		}
		defer unlock()
	}

	report, err := r.scans.Scan(ctx, r.threshold, r.timeframe)
	if err != nil {
		r.alert(ctx, notify.EventScanFailed, "Scan failed", err.Error())
		return fmt.Errorf("recorder: scan: %w", err)
	}

	run := domain.ScanRun{
		ID:        uuid.NewString(),
		Threshold: report.Threshold,
		Timeframe: report.Timeframe,
		Found:     report.Found,
		Results:   report.Tokens,
		RanAt:     time.Now().UTC(),
	}
	if err := r.store.RecordRun(ctx, run); err != nil {
		return fmt.Errorf("recorder: persist run %s: %w", run.ID, err)
	}

	r.logger.InfoContext(ctx, "scan run recorded",
		slog.String("run_id", run.ID),
		slog.Int("found", run.Found),
	)

	if report.MomentumDetected {
		r.alert(ctx, notify.EventMomentumDetected, "Momentum detected", notify.FormatMomentumAlert(report))
	}
	return nil
}

// RunLoop records immediately, then on every interval tick until the context
// is cancelled. Individual run failures are logged, not fatal.
func (r *Recorder) RunLoop(ctx context.Context, interval time.Duration) error {
	if err := r.Run(ctx, interval); err != nil {
		r.logger.ErrorContext(ctx, "scan run failed", slog.String("error", err.Error()))
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("recorder loop stopped")
			return ctx.Err()
		case <-ticker.C:
			if err := r.Run(ctx, interval); err != nil {
				r.logger.ErrorContext(ctx, "scan run failed", slog.String("error", err.Error()))
			}
		}
	}
}

func (r *Recorder) alert(ctx context.Context, event, title, message string) {
	if r.alerter == nil {
		return
	}
	if err := r.alerter.Notify(ctx, event, title, message); err != nil {
		r.logger.WarnContext(ctx, "alert delivery failed",
			slog.String("event", event),
			slog.String("error", err.Error()),
		)
	}
}
