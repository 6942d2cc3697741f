package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/alanyoungcy/momentumbot/internal/domain"
	"github.com/alanyoungcy/momentumbot/internal/technical"
)

// defaultToken fills an absent token on the analyze and price operations.
const defaultToken = "BTC"

// AnalysisService runs multi-timeframe analysis for a single token.
type AnalysisService struct {
	provider domain.MarketDataProvider
	analyzer *technical.Analyzer
	logger   *slog.Logger
}

// NewAnalysisService creates an AnalysisService.
func NewAnalysisService(provider domain.MarketDataProvider, analyzer *technical.Analyzer, logger *slog.Logger) *AnalysisService {
	return &AnalysisService{
		provider: provider,
		analyzer: analyzer,
		logger:   logger,
	}
}

// Analyze fetches the token's market data and derives its analysis report.
// An absent token defaults to BTC; an empty timeframe list falls back to the
// analyzer defaults. Analysis is a pure function of the fetched snapshot, so
// calling it twice against the same data yields the same report.
func (s *AnalysisService) Analyze(ctx context.Context, token string, timeframes []domain.Timeframe) (domain.AnalysisReport, error) {
	token = strings.ToUpper(strings.TrimSpace(token))
	if token == "" {
		token = defaultToken
	}
	for _, tf := range timeframes {
		if !knownTimeframe(tf) {
			return domain.AnalysisReport{}, fmt.Errorf("analysis timeframe %q: %w", tf, domain.ErrUnsupportedTimeframe)
		}
	}

	snap, history, err := s.provider.TokenMarket(ctx, token)
	if err != nil {
		return domain.AnalysisReport{}, fmt.Errorf("analysis_service: fetch %s: %w", token, err)
	}

	report := s.analyzer.Analyze(token, timeframes, snap, history)

	s.logger.DebugContext(ctx, "analysis_service: analyzed token",
		slog.String("token", token),
		slog.Float64("score", report.MomentumScore),
		slog.String("status", report.Status),
	)

	return report, nil
}

func knownTimeframe(tf domain.Timeframe) bool {
	switch tf {
	case domain.Timeframe1h, domain.Timeframe4h, domain.Timeframe24h, domain.Timeframe7d:
		return true
	default:
		return false
	}
}
