package middleware

import (
	"net"
	"net/http"
	"strings"
)

// ExtractIP returns the client IP address from the request.
// It checks X-Forwarded-For first (taking the first IP if comma-separated),
// then falls back to X-Real-IP, and finally to RemoteAddr.
// Returns the IP without port.
//
// SECURITY WARNING: This function trusts X-Forwarded-For and X-Real-IP headers.
// Only use this behind a properly configured reverse proxy that validates and
// sets these headers. If the service is exposed directly to the internet,
// clients can spoof these headers to bypass rate limiting and to forge the
// IP stored with their submissions.
func ExtractIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		// Take the first IP (original client)
		parts := strings.Split(xff, ",")
		if len(parts) > 0 {
			ip := strings.TrimSpace(parts[0])
			if ip != "" {
				return ip
			}
		}
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	// RemoteAddr is "IP:port", extract just the IP
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
