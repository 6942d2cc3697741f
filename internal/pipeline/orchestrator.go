package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
)

// Orchestrator supervises the background loops: the scan recorder and,
// when cold storage is configured, the archiver cron.
type Orchestrator struct {
	recorder     *Recorder
	archiver     *Archiver // nil disables archival
	scanInterval time.Duration
	archiveCron  string
	logger       *slog.Logger
}

// NewOrchestrator creates an Orchestrator.
func NewOrchestrator(
	recorder *Recorder,
	archiver *Archiver,
	scanInterval time.Duration,
	archiveCron string,
	logger *slog.Logger,
) *Orchestrator {
	return &Orchestrator{
		recorder:     recorder,
		archiver:     archiver,
		scanInterval: scanInterval,
		archiveCron:  archiveCron,
		logger:       logger,
	}
}

// Run starts the loops as concurrent goroutines under an errgroup. Each
// respects ctx cancellation; a non-context error from any loop cancels the
// shared context and Run returns that error.
func (o *Orchestrator) Run(ctx context.Context) error {
	o.logger.Info("pipeline orchestrator starting",
		slog.Duration("scan_interval", o.scanInterval),
		slog.String("archive_cron", o.archiveCron),
		slog.Bool("archival", o.archiver != nil),
	)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		o.logger.Info("starting recorder loop")
		err := o.recorder.RunLoop(ctx, o.scanInterval)
		if ctx.Err() != nil {
			return nil // clean shutdown
		}
		return fmt.Errorf("recorder: %w", err)
	})

	if o.archiver != nil {
		g.Go(func() error {
			o.logger.Info("starting archiver cron")
			err := o.archiver.RunCron(ctx, o.archiveCron)
			if ctx.Err() != nil {
				return nil // clean shutdown
			}
			return fmt.Errorf("archiver: %w", err)
		})
	}

	if err := g.Wait(); err != nil {
		o.logger.Error("pipeline orchestrator stopped with error", slog.String("error", err.Error()))
		return err
	}

	o.logger.Info("pipeline orchestrator stopped cleanly")
	return nil
}
