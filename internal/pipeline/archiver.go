package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// ScanRunArchiver exports aged scan runs to cold storage and prunes them.
type ScanRunArchiver interface {
	ArchiveScanRuns(ctx context.Context, before time.Time) (int64, error)
}

// Archiver moves scan runs older than the retention window to cold storage
// on a cron schedule.
type Archiver struct {
	blobArchiver  ScanRunArchiver
	retentionDays int
	logger        *slog.Logger
}

// NewArchiver creates an Archiver.
func NewArchiver(blobArchiver ScanRunArchiver, retentionDays int, logger *slog.Logger) *Archiver {
	return &Archiver{
		blobArchiver:  blobArchiver,
		retentionDays: retentionDays,
		logger:        logger.With(slog.String("component", "archiver")),
	}
}

// Run executes a single archive pass over everything older than the
// retention cutoff.
func (a *Archiver) Run(ctx context.Context) error {
	cutoff := time.Now().UTC().Add(-time.Duration(a.retentionDays) * 24 * time.Hour)
	a.logger.Info("starting archive run",
		slog.Time("cutoff", cutoff),
		slog.Int("retention_days", a.retentionDays),
	)

	archived, err := a.blobArchiver.ArchiveScanRuns(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("archiving scan runs before %v: %w", cutoff, err)
	}

	a.logger.Info("archive run complete", slog.Int64("runs_archived", archived))
	return nil
}

// RunCron runs the archiver on a cron schedule until the context is
// cancelled. Standard 5-field syntax: "0 3 * * *" runs daily at 03:00 UTC.
func (a *Archiver) RunCron(ctx context.Context, cronExpr string) error {
	a.logger.Info("archiver cron started", slog.String("cron", cronExpr))

	for {
		next, err := nextCronTime(cronExpr, time.Now().UTC())
		if err != nil {
			return fmt.Errorf("parsing cron expression %q: %w", cronExpr, err)
		}

		waitDuration := time.Until(next)
		a.logger.Info("archiver waiting for next cron trigger",
			slog.Time("next_run", next),
			slog.Duration("wait", waitDuration),
		)

		timer := time.NewTimer(waitDuration)
		select {
		case <-ctx.Done():
			timer.Stop()
			a.logger.Info("archiver cron stopped")
			return ctx.Err()
		case <-timer.C:
			if err := a.Run(ctx); err != nil {
				a.logger.Error("archive run failed", slog.String("error", err.Error()))
			}
		}
	}
}
