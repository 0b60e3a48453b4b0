package middleware

import (
	"net/http"

	"github.com/ngohub/casework/internal/envelope"
)

// NewMaxBodySizeHandler returns a middleware that caps request bodies at limit
// bytes. A request that declares a larger Content-Length is answered with 413
// immediately; a streamed body is wrapped in http.MaxBytesReader so the
// handler's read fails once the cap is crossed.
func NewMaxBodySizeHandler(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > limit {
				writeJSON(w, http.StatusRequestEntityTooLarge,
					envelope.Failure[any]("request body too large", map[string]any{
						"code":  "body_too_large",
						"limit": limit,
					}))
				return
			}
			r.Body = http.MaxBytesReader(w, r.Body, limit)
			next.ServeHTTP(w, r)
		})
	}
}
