package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/alanyoungcy/momentumbot/internal/domain"
)

// AnalysisService defines what the analyze handler requires from the service
// layer.
type AnalysisService interface {
	Analyze(ctx context.Context, token string, timeframes []domain.Timeframe) (domain.AnalysisReport, error)
}

// AnalyzeHandler serves the per-token analysis endpoint.
type AnalyzeHandler struct {
	analysis AnalysisService
	logger   *slog.Logger
}

// NewAnalyzeHandler creates an AnalyzeHandler.
func NewAnalyzeHandler(analysis AnalysisService, logger *slog.Logger) *AnalyzeHandler {
	return &AnalyzeHandler{analysis: analysis, logger: logHandler(logger, "analyze")}
}

// Analyze runs multi-timeframe analysis for one token.
// GET /api/analyze?token=BTC&timeframes=1h,4h,24h
func (h *AnalyzeHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")

	var timeframes []domain.Timeframe
	for _, tf := range queryCSV(r, "timeframes") {
		timeframes = append(timeframes, domain.Timeframe(tf))
	}

	report, err := h.analysis.Analyze(r.Context(), token, timeframes)
	if err != nil {
		writeDomainError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}
