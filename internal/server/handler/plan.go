package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/alanyoungcy/momentumbot/internal/domain"
)

// PlanService defines what the plan handler requires from the service layer.
type PlanService interface {
	Plan(ctx context.Context, strategyRef, token string, requestedChains, amounts []string) (domain.ExecutionPlanReport, error)
}

// PlanHandler serves execution-plan sequencing.
type PlanHandler struct {
	plans  PlanService
	logger *slog.Logger
}

// NewPlanHandler creates a PlanHandler.
func NewPlanHandler(plans PlanService, logger *slog.Logger) *PlanHandler {
	return &PlanHandler{plans: plans, logger: logHandler(logger, "plan")}
}

type planRequest struct {
	Strategy string   `json:"strategy"`
	Token    string   `json:"token"`
	Chains   []string `json:"chains"`
	Amounts  []string `json:"amounts"`
}

// Plan sequences a built strategy into ordered execution steps.
// POST /api/plan
func (h *PlanHandler) Plan(w http.ResponseWriter, r *http.Request) {
	var req planRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	report, err := h.plans.Plan(r.Context(), req.Strategy, req.Token, req.Chains, req.Amounts)
	if err != nil {
		writeDomainError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}
