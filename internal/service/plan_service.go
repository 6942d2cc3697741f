package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/alanyoungcy/momentumbot/internal/domain"
	"github.com/alanyoungcy/momentumbot/internal/execution"
)

// PlanService sequences built strategies into execution plans.
type PlanService struct {
	planner *execution.Planner
	logger  *slog.Logger
}

// NewPlanService creates a PlanService.
func NewPlanService(planner *execution.Planner, logger *slog.Logger) *PlanService {
	return &PlanService{planner: planner, logger: logger}
}

// Plan builds the ordered execution plan for a strategy reference. Planning
// is pure; the reference is required but never resolved against stored state.
func (s *PlanService) Plan(ctx context.Context, strategyRef, token string, requestedChains, amounts []string) (domain.ExecutionPlanReport, error) {
	token = strings.ToUpper(strings.TrimSpace(token))

	report, err := s.planner.Plan(strings.TrimSpace(strategyRef), token, requestedChains, amounts)
	if err != nil {
		return domain.ExecutionPlanReport{}, err
	}

	s.logger.InfoContext(ctx, "plan_service: execution plan built",
		slog.String("strategy", report.Strategy),
		slog.String("token", report.Token),
		slog.Int("steps", len(report.Trades)),
	)

	return report, nil
}
