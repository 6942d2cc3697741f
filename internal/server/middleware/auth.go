package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

// Auth enforces the configured API key. Clients present it either as
// "Authorization: Bearer <key>" or in the X-API-Key header. An empty
// configured key disables the check entirely.
func Auth(apiKey string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if apiKey == "" {
				next.ServeHTTP(w, r)
				return
			}

			presented := clientKey(r)
			if presented == "" {
				deny(w, "missing api key")
				return
			}
			if subtle.ConstantTimeCompare([]byte(presented), []byte(apiKey)) != 1 {
				deny(w, "invalid api key")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientKey pulls the presented key from the Bearer scheme or X-API-Key,
// in that order.
func clientKey(r *http.Request) string {
	if auth := r.Header.Get("Authorization"); auth != "" {
		scheme, rest, ok := strings.Cut(auth, " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(rest)
		}
	}
	return strings.TrimSpace(r.Header.Get("X-API-Key"))
}

func deny(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error":"` + msg + `"}`))
}
