package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

// TestCORS tests the CORS middleware with various scenarios.
func TestCORS(t *testing.T) {
	tests := []struct {
		name          string
		config        CORSConfig
		method        string
		origin        string
		expectHeaders map[string]string
		expectStatus  int
		expectBody    string
	}{
		{
			name:   "chat post",
			config: ChatCORSConfig(),
			method: "POST",
			expectHeaders: map[string]string{
				"Access-Control-Allow-Origin":  "*",
				"Access-Control-Allow-Methods": "POST, OPTIONS",
				"Access-Control-Allow-Headers": "Content-Type",
			},
			expectStatus: http.StatusOK,
			expectBody:   "handled",
		},
		{
			name:   "chat preflight",
			config: ChatCORSConfig(),
			method: "OPTIONS",
			origin: "https://example.com",
			expectHeaders: map[string]string{
				"Access-Control-Allow-Origin":  "*",
				"Access-Control-Allow-Methods": "POST, OPTIONS",
			},
			expectStatus: http.StatusOK,
			expectBody:   "",
		},
		{
			name: "specific origin allowed",
			config: CORSConfig{
				AllowedOrigins: []string{"https://anxiangsir.github.io"},
				AllowedMethods: []string{"GET"},
				AllowedHeaders: []string{"Content-Type"},
				MaxAge:         600,
			},
			method: "GET",
			origin: "https://anxiangsir.github.io",
			expectHeaders: map[string]string{
				"Access-Control-Allow-Origin": "https://anxiangsir.github.io",
				"Vary":                        "Origin",
				"Access-Control-Max-Age":      "600",
			},
			expectStatus: http.StatusOK,
			expectBody:   "handled",
		},
		{
			name: "origin not allowed",
			config: CORSConfig{
				AllowedOrigins: []string{"https://anxiangsir.github.io"},
				AllowedMethods: []string{"GET"},
			},
			method: "GET",
			origin: "https://evil.example",
			expectHeaders: map[string]string{
				"Access-Control-Allow-Origin": "",
			},
			expectStatus: http.StatusOK,
			expectBody:   "handled",
		},
		{
			name:   "default config",
			config: DefaultCORSConfig(),
			method: "GET",
			expectHeaders: map[string]string{
				"Access-Control-Allow-Origin":  "*",
				"Access-Control-Allow-Methods": "GET, POST, OPTIONS",
				"Access-Control-Max-Age":       "",
			},
			expectStatus: http.StatusOK,
			expectBody:   "handled",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("handled"))
			})

			req := httptest.NewRequest(tt.method, "/api/chat", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			w := httptest.NewRecorder()
			CORS(tt.config)(handler).ServeHTTP(w, req)

			if w.Code != tt.expectStatus {
				t.Errorf("expected status %d, got %d", tt.expectStatus, w.Code)
			}
			if got := w.Body.String(); got != tt.expectBody {
				t.Errorf("expected body %q, got %q", tt.expectBody, got)
			}
			for header, want := range tt.expectHeaders {
				if got := w.Header().Get(header); got != want {
					t.Errorf("header %s: expected %q, got %q", header, want, got)
				}
			}
		})
	}
}
