package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestNewRateLimiter(t *testing.T) {
	tests := []struct {
		name        string
		limit       int
		bypassPaths []string
		wantErr     bool
	}{
		{
			name:        "valid limit",
			limit:       100,
			bypassPaths: []string{"/health"},
			wantErr:     false,
		},
		{
			name:        "zero limit",
			limit:       0,
			bypassPaths: []string{},
			wantErr:     true,
		},
		{
			name:        "negative limit",
			limit:       -10,
			bypassPaths: []string{},
			wantErr:     true,
		},
		{
			name:        "no bypass paths",
			limit:       50,
			bypassPaths: []string{},
			wantErr:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rl, err := NewRateLimiter(tt.limit, tt.bypassPaths)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewRateLimiter() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && rl == nil {
				t.Error("NewRateLimiter() returned nil without error")
			}
			if rl != nil {
				rl.Close()
			}
		})
	}
}

func TestExtractIP(t *testing.T) {
	tests := []struct {
		name          string
		remoteAddr    string
		xForwardedFor string
		xRealIP       string
		expectedIP    string
	}{
		{
			name:       "RemoteAddr only",
			remoteAddr: "192.168.1.1:12345",
			expectedIP: "192.168.1.1",
		},
		{
			name:          "X-Forwarded-For single IP",
			remoteAddr:    "192.168.1.1:12345",
			xForwardedFor: "203.0.113.1",
			expectedIP:    "203.0.113.1",
		},
		{
			name:          "X-Forwarded-For multiple IPs",
			remoteAddr:    "192.168.1.1:12345",
			xForwardedFor: "203.0.113.1, 198.51.100.1, 192.168.1.1",
			expectedIP:    "203.0.113.1",
		},
		{
			name:       "X-Real-IP",
			remoteAddr: "192.168.1.1:12345",
			xRealIP:    "203.0.113.1",
			expectedIP: "203.0.113.1",
		},
		{
			name:          "X-Forwarded-For takes precedence over X-Real-IP",
			remoteAddr:    "192.168.1.1:12345",
			xForwardedFor: "203.0.113.1",
			xRealIP:       "198.51.100.1",
			expectedIP:    "203.0.113.1",
		},
		{
			name:       "RemoteAddr without port",
			remoteAddr: "192.168.1.1",
			expectedIP: "192.168.1.1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.xForwardedFor != "" {
				req.Header.Set("X-Forwarded-For", tt.xForwardedFor)
			}
			if tt.xRealIP != "" {
				req.Header.Set("X-Real-IP", tt.xRealIP)
			}

			got := ExtractIP(req)
			if got != tt.expectedIP {
				t.Errorf("ExtractIP() = %v, want %v", got, tt.expectedIP)
			}
		})
	}
}

func TestRateLimiter_Middleware(t *testing.T) {
	tests := []struct {
		name           string
		limit          int
		bypassPaths    []string
		requestPath    string
		requestCount   int
		expectBlocked  bool
		expectRetryHdr bool
	}{
		{
			name:          "under limit",
			limit:         5,
			bypassPaths:   []string{},
			requestPath:   "/api/v1/forms/marketplace",
			requestCount:  3,
			expectBlocked: false,
		},
		{
			name:          "at limit",
			limit:         3,
			bypassPaths:   []string{},
			requestPath:   "/api/v1/forms/marketplace",
			requestCount:  3,
			expectBlocked: false,
		},
		{
			name:           "over limit",
			limit:          3,
			bypassPaths:    []string{},
			requestPath:    "/api/v1/forms/marketplace",
			requestCount:   4,
			expectBlocked:  true,
			expectRetryHdr: true,
		},
		{
			name:          "bypass path",
			limit:         1,
			bypassPaths:   []string{"/health"},
			requestPath:   "/health",
			requestCount:  10,
			expectBlocked: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rl, err := NewRateLimiter(tt.limit, tt.bypassPaths)
			if err != nil {
				t.Fatalf("failed to create rate limiter: %v", err)
			}
			defer rl.Close()

			handler := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))

			var lastStatus int
			var lastRetryAfter string
			for i := 0; i < tt.requestCount; i++ {
				req := httptest.NewRequest("GET", tt.requestPath, nil)
				req.RemoteAddr = "192.168.1.1:12345"
				w := httptest.NewRecorder()
				handler.ServeHTTP(w, req)

				lastStatus = w.Code
				lastRetryAfter = w.Header().Get("Retry-After")
			}

			if tt.expectBlocked && lastStatus != http.StatusTooManyRequests {
				t.Errorf("expected status %d, got %d", http.StatusTooManyRequests, lastStatus)
			}
			if !tt.expectBlocked && lastStatus != http.StatusOK {
				t.Errorf("expected status %d, got %d", http.StatusOK, lastStatus)
			}
			if (lastRetryAfter != "") != tt.expectRetryHdr {
				t.Errorf("Retry-After header presence = %v, want %v", lastRetryAfter != "", tt.expectRetryHdr)
			}
		})
	}
}

func TestRateLimiter_DifferentIPs(t *testing.T) {
	rl, err := NewRateLimiter(2, []string{})
	if err != nil {
		t.Fatalf("failed to create rate limiter: %v", err)
	}
	defer rl.Close()

	ip1 := "192.168.1.1"
	ip2 := "192.168.1.2"

	rl.allow(ip1)
	rl.allow(ip1)
	if allowed, _ := rl.allow(ip1); allowed {
		t.Error("ip1 should be blocked after limit")
	}

	if allowed, _ := rl.allow(ip2); !allowed {
		t.Error("ip2 should be allowed (independent limit)")
	}
}

func TestRateLimiter_Cleanup(t *testing.T) {
	rl, err := NewRateLimiter(10, []string{})
	if err != nil {
		t.Fatalf("failed to create rate limiter: %v", err)
	}
	defer rl.Close()

	// Shrink the window so the entries expire immediately
	rl.window = 50 * time.Millisecond

	ip := "192.168.1.1"
	rl.allow(ip)
	rl.allow(ip)

	time.Sleep(120 * time.Millisecond)
	rl.cleanup()

	rl.mu.RLock()
	_, exists := rl.requests[ip]
	rl.mu.RUnlock()
	if exists {
		t.Error("expected IP to be removed after cleanup")
	}
}

func TestRateLimiter_MultipleClose(t *testing.T) {
	rl, err := NewRateLimiter(10, []string{})
	if err != nil {
		t.Fatalf("failed to create rate limiter: %v", err)
	}

	// Close multiple times should not panic
	rl.Close()
	rl.Close()
	rl.Close()
}
