package middleware

import (
	"net/http"
	"strings"
)

// CacheControl sets Cache-Control headers based on request path.
// Form configurations change rarely, so GET /api/v1/forms responses cache for
// five minutes with revalidation. Swagger docs cache for an hour. Everything
// else, including all mutating requests, is not cached.
func CacheControl(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Cache-Control", "no-store")
			next.ServeHTTP(w, r)
			return
		}

		path := r.URL.Path

		if strings.HasPrefix(path, "/swagger/") {
			w.Header().Set("Cache-Control", "public, max-age=3600")
			next.ServeHTTP(w, r)
			return
		}

		if strings.HasPrefix(path, "/api/v1/forms/") {
			w.Header().Set("Cache-Control", "public, max-age=300, must-revalidate")
			next.ServeHTTP(w, r)
			return
		}

		// Geocode results and health checks reflect live state
		w.Header().Set("Cache-Control", "no-store")
		next.ServeHTTP(w, r)
	})
}
