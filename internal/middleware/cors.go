// Package middleware provides HTTP middleware for the casework API server.
package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/rs/cors"
)

// NewCORSHandler returns a middleware that lets the single-page app, served
// from allowedOrigins, call the API. Each origin is scheme + host with no
// trailing slash. X-Request-Id is exposed so the SPA can quote it in bug reports.
func NewCORSHandler(allowedOrigins []string) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id"},
	})
	return c.Handler
}

// writeJSON is used by middleware that must answer before any handler runs.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
