package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/alanyoungcy/momentumbot/internal/domain"
)

// StrategyService defines what the strategy handler requires from the
// service layer.
type StrategyService interface {
	Build(ctx context.Context, token string, budget float64, risk domain.RiskLevel, requestedChains []string) (domain.StrategyReport, error)
}

// StrategyHandler serves strategy construction.
type StrategyHandler struct {
	strategies StrategyService
	logger     *slog.Logger
}

// NewStrategyHandler creates a StrategyHandler.
func NewStrategyHandler(strategies StrategyService, logger *slog.Logger) *StrategyHandler {
	return &StrategyHandler{strategies: strategies, logger: logHandler(logger, "strategy")}
}

type buildStrategyRequest struct {
	Token     string   `json:"token"`
	Budget    float64  `json:"budget"`
	RiskLevel string   `json:"riskLevel"`
	Chains    []string `json:"chains"`
}

// Build constructs a risk-adjusted allocation strategy.
// POST /api/strategy/build
func (h *StrategyHandler) Build(w http.ResponseWriter, r *http.Request) {
	var req buildStrategyRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	report, err := h.strategies.Build(r.Context(), req.Token, req.Budget, domain.RiskLevel(req.RiskLevel), req.Chains)
	if err != nil {
		writeDomainError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}
