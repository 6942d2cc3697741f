package app

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/alanyoungcy/momentumbot/internal/domain"
	"github.com/alanyoungcy/momentumbot/internal/execution"
	"github.com/alanyoungcy/momentumbot/internal/momentum"
	"github.com/alanyoungcy/momentumbot/internal/pipeline"
	"github.com/alanyoungcy/momentumbot/internal/pricing"
	"github.com/alanyoungcy/momentumbot/internal/server"
	"github.com/alanyoungcy/momentumbot/internal/server/handler"
	"github.com/alanyoungcy/momentumbot/internal/server/ws"
	"github.com/alanyoungcy/momentumbot/internal/service"
	"github.com/alanyoungcy/momentumbot/internal/strategy"
	"github.com/alanyoungcy/momentumbot/internal/technical"
)

// services groups the domain services shared by the HTTP server and the
// background pipeline.
type services struct {
	Scan     *service.ScanService
	Analysis *service.AnalysisService
	Price    *service.PriceService
	Strategy *service.StrategyService
	Plan     *service.PlanService
}

// buildServices constructs the pure domain engines and wraps them in
// services.
func (a *App) buildServices(deps *Dependencies) *services {
	scanner := momentum.NewScanner(deps.Registry)
	analyzer := technical.NewAnalyzer()
	synthesizer := pricing.NewSynthesizer(deps.Registry, nil)
	builder := strategy.NewBuilder(deps.Registry)
	planner := execution.NewPlanner(deps.Registry)

	return &services{
		Scan:     service.NewScanService(deps.Provider, scanner, deps.SignalBus, a.cfg.Market.UniverseLimit, a.logger),
		Analysis: service.NewAnalysisService(deps.Provider, analyzer, a.logger),
		Price:    service.NewPriceService(deps.Provider, synthesizer, deps.Registry, a.logger),
		Strategy: service.NewStrategyService(builder, a.logger),
		Plan:     service.NewPlanService(planner, a.logger),
	}
}

// buildServer assembles the HTTP server and its optional websocket hub from
// the wired dependencies.
func (a *App) buildServer(deps *Dependencies, svcs *services) (*server.Server, *ws.Hub) {
	startedAt := time.Now().UTC()

	handlers := server.Handlers{
		Health:   handler.NewHealthHandler(a.cfg.Mode, startedAt, a.logger),
		Scan:     handler.NewScanHandler(svcs.Scan, a.logger),
		Analyze:  handler.NewAnalyzeHandler(svcs.Analysis, a.logger),
		Price:    handler.NewPriceHandler(svcs.Price, a.logger),
		Strategy: handler.NewStrategyHandler(svcs.Strategy, a.logger),
		Plan:     handler.NewPlanHandler(svcs.Plan, a.logger),
	}
	if deps.ScanStore != nil {
		handlers.History = handler.NewHistoryHandler(deps.ScanStore, a.logger)
	}

	var hub *ws.Hub
	if deps.SignalBus != nil {
		hub = ws.NewHub(deps.SignalBus, a.logger, ws.Config{
			Mode:      a.cfg.Mode,
			StartedAt: startedAt,
		})
	}

	srv := server.NewServer(server.Config{
		Port:        a.cfg.Server.Port,
		CORSOrigins: a.cfg.Server.CORSOrigins,
		APIKey:      a.cfg.Server.APIKey,
		RateLimit:   a.cfg.Server.RateLimit,
		RateWindow:  a.cfg.Server.RateWindow.Duration,
	}, handlers, hub, deps.RateLimiter, a.logger)

	return srv, hub
}

// buildOrchestrator assembles the background recorder and archiver loops.
func (a *App) buildOrchestrator(deps *Dependencies, svcs *services) *pipeline.Orchestrator {
	recorder := pipeline.NewRecorder(
		svcs.Scan,
		deps.ScanStore,
		deps.LockManager,
		deps.Notifier,
		a.cfg.Scan.Threshold,
		domain.Timeframe(a.cfg.Scan.Timeframe),
		a.logger,
	)

	var archiver *pipeline.Archiver
	if deps.Archiver != nil {
		archiver = pipeline.NewArchiver(deps.Archiver, a.cfg.Scan.RetentionDays, a.logger)
	}

	return pipeline.NewOrchestrator(
		recorder,
		archiver,
		a.cfg.Scan.Interval.Duration,
		a.cfg.Scan.ArchiveCron,
		a.logger,
	)
}

// runServer starts the HTTP server and websocket hub under the errgroup and
// shuts the server down when ctx is cancelled.
func runServer(ctx context.Context, g *errgroup.Group, srv *server.Server, hub *ws.Hub) {
	if hub != nil {
		g.Go(func() error {
			return hub.Run(ctx)
		})
	}

	g.Go(func() error {
		return srv.Start()
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
}

// ServerMode runs only the HTTP API.
func (a *App) ServerMode(ctx context.Context, deps *Dependencies) error {
	a.logger.Info("running in server mode", slog.Int("port", a.cfg.Server.Port))

	svcs := a.buildServices(deps)
	srv, hub := a.buildServer(deps, svcs)

	g, ctx := errgroup.WithContext(ctx)
	runServer(ctx, g, srv, hub)

	if err := g.Wait(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("server mode: %w", err)
	}
	return nil
}

// ScanMode runs a single momentum scan and prints the report as indented
// JSON on stdout.
func (a *App) ScanMode(ctx context.Context, deps *Dependencies) error {
	a.logger.Info("running one-shot scan",
		slog.Float64("threshold", a.cfg.Scan.Threshold),
		slog.String("timeframe", a.cfg.Scan.Timeframe),
	)

	svcs := a.buildServices(deps)
	report, err := svcs.Scan.Scan(ctx, a.cfg.Scan.Threshold, domain.Timeframe(a.cfg.Scan.Timeframe))
	if err != nil {
		return fmt.Errorf("scan mode: %w", err)
	}

	out, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("scan mode: encode report: %w", err)
	}
	fmt.Fprintln(os.Stdout, string(out))
	return nil
}

// RecordMode runs the recorder loop and archiver cron without the HTTP API.
func (a *App) RecordMode(ctx context.Context, deps *Dependencies) error {
	a.logger.Info("running in record mode",
		slog.Duration("scan_interval", a.cfg.Scan.Interval.Duration),
	)

	svcs := a.buildServices(deps)
	orch := a.buildOrchestrator(deps, svcs)
	return orch.Run(ctx)
}

// FullMode runs the HTTP API alongside the background pipeline.
func (a *App) FullMode(ctx context.Context, deps *Dependencies) error {
	a.logger.Info("running in full mode", slog.Int("port", a.cfg.Server.Port))

	svcs := a.buildServices(deps)
	srv, hub := a.buildServer(deps, svcs)
	orch := a.buildOrchestrator(deps, svcs)

	g, ctx := errgroup.WithContext(ctx)
	runServer(ctx, g, srv, hub)
	g.Go(func() error {
		return orch.Run(ctx)
	})

	if err := g.Wait(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("full mode: %w", err)
	}
	return nil
}
