package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/alanyoungcy/momentumbot/internal/domain"
	"github.com/alanyoungcy/momentumbot/internal/strategy"
)

// StrategyService builds risk-adjusted allocation strategies.
type StrategyService struct {
	builder *strategy.Builder
	logger  *slog.Logger
}

// NewStrategyService creates a StrategyService.
func NewStrategyService(builder *strategy.Builder, logger *slog.Logger) *StrategyService {
	return &StrategyService{builder: builder, logger: logger}
}

// Build constructs the allocation strategy for one token. Strategy
// construction is pure: nothing is persisted and the returned StrategyID is
// an opaque reference for the caller to thread into execution planning.
func (s *StrategyService) Build(ctx context.Context, token string, budget float64, risk domain.RiskLevel, requestedChains []string) (domain.StrategyReport, error) {
	token = strings.ToUpper(strings.TrimSpace(token))
	if token == "" {
		return domain.StrategyReport{}, fmt.Errorf("token symbol: %w", domain.ErrMissingField)
	}

	report, err := s.builder.Build(token, budget, risk, requestedChains)
	if err != nil {
		return domain.StrategyReport{}, err
	}

	s.logger.InfoContext(ctx, "strategy_service: strategy built",
		slog.String("token", token),
		slog.String("strategy_id", report.StrategyID),
		slog.String("risk", string(report.RiskLevel)),
		slog.Float64("max_position", report.MaxPosition),
	)

	return report, nil
}
