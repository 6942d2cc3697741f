// Package service coordinates the domain components behind the API
// operations: fetching market data, running the scanner and analyzer, and
// fanning results out to the signal bus.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/alanyoungcy/momentumbot/internal/domain"
	"github.com/alanyoungcy/momentumbot/internal/momentum"
)

// Pub/Sub channels for pipeline events. The WebSocket hub subscribes with the
// "events:*" pattern.
const (
	ChannelScan     = "events:scan"
	ChannelMomentum = "events:momentum"
)

// ScanService runs momentum scans over the live market universe.
type ScanService struct {
	provider      domain.MarketDataProvider
	scanner       *momentum.Scanner
	bus           domain.SignalBus
	universeLimit int
	logger        *slog.Logger
}

// NewScanService creates a ScanService. The bus may be nil, in which case
// events are not published.
func NewScanService(
	provider domain.MarketDataProvider,
	scanner *momentum.Scanner,
	bus domain.SignalBus,
	universeLimit int,
	logger *slog.Logger,
) *ScanService {
	return &ScanService{
		provider:      provider,
		scanner:       scanner,
		bus:           bus,
		universeLimit: universeLimit,
		logger:        logger,
	}
}

// Scan fetches the market universe and ranks it by momentum. Threshold and
// timeframe fall back to the scanner defaults when zero-valued.
func (s *ScanService) Scan(ctx context.Context, threshold float64, timeframe domain.Timeframe) (domain.ScanReport, error) {
	universe, err := s.provider.TopMarkets(ctx, s.universeLimit)
	if err != nil {
		return domain.ScanReport{}, fmt.Errorf("scan_service: fetch universe: %w", err)
	}

	report, err := s.scanner.Scan(universe, threshold, timeframe)
	if err != nil {
		return domain.ScanReport{}, err
	}

	s.logger.InfoContext(ctx, "scan_service: scan completed",
		slog.Float64("threshold", report.Threshold),
		slog.String("timeframe", string(report.Timeframe)),
		slog.Int("found", report.Found),
	)

	s.publish(ctx, ChannelScan, "scan_completed", report)
	if report.MomentumDetected {
		s.publish(ctx, ChannelMomentum, "momentum_detected", report)
	}

	return report, nil
}

// publish sends an event to the bus. Publish failures are logged and
// swallowed; event fan-out never fails a scan.
func (s *ScanService) publish(ctx context.Context, channel, event string, report domain.ScanReport) {
	if s.bus == nil {
		return
	}
	payload, _ := json.Marshal(map[string]any{
		"event":     event,
		"report":    report,
		"timestamp": time.Now().UTC().Format(time.RFC3339Nano),
	})
	if err := s.bus.Publish(ctx, channel, payload); err != nil {
		s.logger.WarnContext(ctx, "scan_service: publish failed",
			slog.String("channel", channel),
			slog.String("error", err.Error()),
		)
	}
}
