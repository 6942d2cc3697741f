package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/alanyoungcy/momentumbot/internal/domain"
)

// PriceService defines what the price handler requires from the service
// layer.
type PriceService interface {
	Price(ctx context.Context, token string, requestedChains []string) (domain.PriceReport, error)
}

// PriceHandler serves the cross-chain price endpoint.
type PriceHandler struct {
	prices PriceService
	logger *slog.Logger
}

// NewPriceHandler creates a PriceHandler.
func NewPriceHandler(prices PriceService, logger *slog.Logger) *PriceHandler {
	return &PriceHandler{prices: prices, logger: logHandler(logger, "price")}
}

// Price synthesizes per-chain quotes and the best arbitrage spread.
// GET /api/price?token=BTC&chains=ethereum,bsc,polygon
func (h *PriceHandler) Price(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	requestedChains := queryCSV(r, "chains")

	report, err := h.prices.Price(r.Context(), token, requestedChains)
	if err != nil {
		writeDomainError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}
