package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/alanyoungcy/momentumbot/internal/domain"
)

// ScanHistory defines read access to recorded scan runs.
type ScanHistory interface {
	ListRecent(ctx context.Context, limit int) ([]domain.ScanRun, error)
}

// HistoryHandler serves recorded scan history. It is only registered when the
// server runs with a scan store attached (record and full modes).
type HistoryHandler struct {
	history ScanHistory
	logger  *slog.Logger
}

// NewHistoryHandler creates a HistoryHandler.
func NewHistoryHandler(history ScanHistory, logger *slog.Logger) *HistoryHandler {
	return &HistoryHandler{history: history, logger: logHandler(logger, "history")}
}

type scanRunResponse struct {
	ID        string                  `json:"id"`
	Threshold float64                 `json:"threshold"`
	Timeframe domain.Timeframe        `json:"timeframe"`
	Found     int                     `json:"found"`
	Results   []domain.MomentumResult `json:"results"`
	RanAt     string                  `json:"ranAt"`
}

// ListRecent returns the most recent recorded scan runs, newest first.
// GET /api/history?limit=50
func (h *HistoryHandler) ListRecent(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", 50)
	if err != nil || limit < 1 {
		writeError(w, http.StatusBadRequest, "limit must be a positive integer")
		return
	}
	if limit > 500 {
		limit = 500
	}

	runs, err := h.history.ListRecent(r.Context(), limit)
	if err != nil {
		writeDomainError(w, r, h.logger, err)
		return
	}

	out := make([]scanRunResponse, 0, len(runs))
	for _, run := range runs {
		out = append(out, scanRunResponse{
			ID:        run.ID,
			Threshold: run.Threshold,
			Timeframe: run.Timeframe,
			Found:     run.Found,
			Results:   run.Results,
			RanAt:     run.RanAt.UTC().Format(time.RFC3339),
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"runs": out})
}
