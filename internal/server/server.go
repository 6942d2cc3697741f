// Package server exposes the momentum pipeline over HTTP and WebSocket.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/alanyoungcy/momentumbot/internal/domain"
	"github.com/alanyoungcy/momentumbot/internal/server/handler"
	"github.com/alanyoungcy/momentumbot/internal/server/middleware"
	"github.com/alanyoungcy/momentumbot/internal/server/ws"
)

// Config holds the HTTP server configuration.
type Config struct {
	Port        int
	CORSOrigins []string
	APIKey      string // if empty, authentication is disabled

	// RateLimit / RateWindow bound requests per client IP; zero disables.
	RateLimit  int
	RateWindow time.Duration
}

// Handlers aggregates the HTTP handlers the server registers. History may be
// nil when the process runs without a scan store.
type Handlers struct {
	Health   *handler.HealthHandler
	Scan     *handler.ScanHandler
	Analyze  *handler.AnalyzeHandler
	Price    *handler.PriceHandler
	Strategy *handler.StrategyHandler
	Plan     *handler.PlanHandler
	History  *handler.HistoryHandler
}

// Server is the headless HTTP + WebSocket API for the momentum pipeline.
type Server struct {
	httpServer *http.Server
	mux        *http.ServeMux
	logger     *slog.Logger
}

// NewServer creates a Server with all routes registered on the ServeMux and
// the middleware chain (CORS, logging, rate limiting, auth) wired around it.
// The limiter may be nil, disabling per-IP rate limiting.
func NewServer(cfg Config, handlers Handlers, wsHub *ws.Hub, limiter domain.RateLimiter, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	// Health check.
	mux.HandleFunc("GET /api/health", handlers.Health.HealthCheck)

	mux.HandleFunc("GET /api/scan", handlers.Scan.Scan)
	mux.HandleFunc("GET /api/analyze", handlers.Analyze.Analyze)
	mux.HandleFunc("GET /api/price", handlers.Price.Price)
	mux.HandleFunc("POST /api/strategy/build", handlers.Strategy.Build)
	mux.HandleFunc("POST /api/plan", handlers.Plan.Plan)

	if handlers.History != nil {
		mux.HandleFunc("GET /api/history", handlers.History.ListRecent)
	}

	if wsHub != nil {
		mux.HandleFunc("GET /ws", wsHub.HandleWS)
	}

	// Middleware chain, innermost first: auth, rate limit, logging, CORS.
	var h http.Handler = mux
	h = middleware.Auth(cfg.APIKey)(h)
	if limiter != nil && cfg.RateLimit > 0 {
		h = middleware.RateLimit(limiter, cfg.RateLimit, cfg.RateWindow)(h)
	}
	h = middleware.Logging(logger)(h)
	h = middleware.CORS(cfg.CORSOrigins)(h)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      h,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		httpServer: srv,
		mux:        mux,
		logger:     logger,
	}
}

// Start begins listening for HTTP requests. It blocks until the server
// encounters an error or is shut down.
func (s *Server) Start() error {
	s.logger.Info("server: starting",
		slog.String("addr", s.httpServer.Addr),
	)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server: listen: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server, waiting for in-flight requests
// to complete within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("server: shutting down")
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	return nil
}
