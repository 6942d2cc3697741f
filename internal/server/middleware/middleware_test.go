package middleware

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuth_DisabledWhenNoKeyConfigured(t *testing.T) {
	h := Auth("")(okHandler())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/scan", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuth_BearerAndHeaderKeys(t *testing.T) {
	h := Auth("secret")(okHandler())

	bearer := httptest.NewRequest(http.MethodGet, "/api/scan", nil)
	bearer.Header.Set("Authorization", "Bearer secret")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, bearer)
	assert.Equal(t, http.StatusOK, rec.Code)

	header := httptest.NewRequest(http.MethodGet, "/api/scan", nil)
	header.Header.Set("X-API-Key", "secret")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, header)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuth_RejectsMissingAndWrongKeys(t *testing.T) {
	h := Auth("secret")(okHandler())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/scan", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	wrong := httptest.NewRequest(http.MethodGet, "/api/scan", nil)
	wrong.Header.Set("X-API-Key", "nope")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, wrong)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"invalid api key"}`, rec.Body.String())
}

func TestCORS_AllowedOriginGetsHeaders(t *testing.T) {
	h := CORS([]string{"https://app.internal"})(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/scan", nil)
	req.Header.Set("Origin", "https://app.internal")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "https://app.internal", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_UnlistedOriginGetsNoHeaders(t *testing.T) {
	h := CORS([]string{"https://app.internal"})(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/scan", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCORS_PreflightShortCircuits(t *testing.T) {
	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true })
	h := CORS(nil)(next)

	req := httptest.NewRequest(http.MethodOptions, "/api/scan", nil)
	req.Header.Set("Origin", "https://anywhere.example")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.False(t, called)
	assert.Equal(t, "https://anywhere.example", rec.Header().Get("Access-Control-Allow-Origin"))
}

type stubLimiter struct {
	allowed bool
	err     error
	gotKey  string
}

func (s *stubLimiter) Allow(_ context.Context, key string, _ int, _ time.Duration) (bool, error) {
	s.gotKey = key
	return s.allowed, s.err
}

func (s *stubLimiter) Wait(context.Context, string) error { return nil }

func TestRateLimit_DeniedReturns429(t *testing.T) {
	limiter := &stubLimiter{allowed: false}
	h := RateLimit(limiter, 10, time.Minute)(okHandler())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/scan", nil))

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))
}

func TestRateLimit_LimiterFailureFailsOpen(t *testing.T) {
	limiter := &stubLimiter{err: errors.New("redis down")}
	h := RateLimit(limiter, 10, time.Minute)(okHandler())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/scan", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimit_KeyUsesForwardedFor(t *testing.T) {
	limiter := &stubLimiter{allowed: true}
	h := RateLimit(limiter, 10, time.Minute)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/scan", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "ratelimit:http:203.0.113.7", limiter.gotKey)
}

func TestLogging_CapturesWrittenStatus(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	h := Logging(logger)(next)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/scan", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
}
