package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/alanyoungcy/momentumbot/internal/domain"
)

// ScanService defines what the scan handler requires from the service layer.
type ScanService interface {
	Scan(ctx context.Context, threshold float64, timeframe domain.Timeframe) (domain.ScanReport, error)
}

// ScanHandler serves the momentum scan endpoint.
type ScanHandler struct {
	scans  ScanService
	logger *slog.Logger
}

// NewScanHandler creates a ScanHandler.
func NewScanHandler(scans ScanService, logger *slog.Logger) *ScanHandler {
	return &ScanHandler{scans: scans, logger: logHandler(logger, "scan")}
}

// Scan runs a momentum scan over the market universe.
// GET /api/scan?threshold=5&timeframe=24h
func (h *ScanHandler) Scan(w http.ResponseWriter, r *http.Request) {
	threshold, err := queryFloat(r, "threshold", 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, "threshold must be a number")
		return
	}
	timeframe := domain.Timeframe(r.URL.Query().Get("timeframe"))

	report, err := h.scans.Scan(r.Context(), threshold, timeframe)
	if err != nil {
		writeDomainError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}
