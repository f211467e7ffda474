package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/anxiangsir/homepage/pkg/logging"
)

// TestChain_ExecutionOrder verifies first added is outermost middleware.
func TestChain_ExecutionOrder(t *testing.T) {
	var executionLog []string

	mark := func(n string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				executionLog = append(executionLog, "start-"+n)
				next.ServeHTTP(w, r)
				executionLog = append(executionLog, "end-"+n)
			})
		}
	}

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		executionLog = append(executionLog, "handler")
		w.WriteHeader(http.StatusOK)
	})

	chained := Chain(mark("1"), mark("2"))(handler)
	chained.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/test", nil))

	expected := []string{"start-1", "start-2", "handler", "end-2", "end-1"}
	if len(executionLog) != len(expected) {
		t.Fatalf("expected %d log entries, got %d", len(expected), len(executionLog))
	}
	for i, exp := range expected {
		if executionLog[i] != exp {
			t.Errorf("log[%d]: expected %s, got %s", i, exp, executionLog[i])
		}
	}
}

// TestChain_Empty verifies an empty chain returns the handler unchanged.
func TestChain_Empty(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	w := httptest.NewRecorder()
	Chain()(handler).ServeHTTP(w, httptest.NewRequest("GET", "/", nil))
	if w.Code != http.StatusTeapot {
		t.Errorf("expected 418, got %d", w.Code)
	}
}

// TestLogger tests request logging middleware.
func TestLogger(t *testing.T) {
	tests := []struct {
		name          string
		method        string
		path          string
		handlerStatus int
	}{
		{name: "chat", method: "POST", path: "/api/chat", handlerStatus: http.StatusOK},
		{name: "chat log", method: "POST", path: "/api/chat-log", handlerStatus: http.StatusCreated},
		{name: "bad request", method: "POST", path: "/api/chat", handlerStatus: http.StatusBadRequest},
		{name: "not found", method: "GET", path: "/missing.html", handlerStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := zerolog.New(&buf)

			var observed int
			observer := func(method, path string, status int, _ time.Duration) {
				if method != tt.method || path != tt.path {
					t.Errorf("observer got %s %s", method, path)
				}
				observed = status
			}

			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				logging.FromContext(r.Context()).Info().Msg("inside")
				w.WriteHeader(tt.handlerStatus)
			})

			req := httptest.NewRequest(tt.method, tt.path, nil)
			req.RemoteAddr = "192.168.1.1:12345"
			w := httptest.NewRecorder()
			Logger(&logger, observer)(handler).ServeHTTP(w, req)

			if w.Code != tt.handlerStatus {
				t.Errorf("expected status %d, got %d", tt.handlerStatus, w.Code)
			}
			if observed != tt.handlerStatus {
				t.Errorf("observer saw status %d, want %d", observed, tt.handlerStatus)
			}

			requestID := w.Header().Get(RequestIDHeader)
			if requestID == "" {
				t.Error("expected a generated request id")
			}

			logOutput := buf.String()
			for _, want := range []string{tt.method, tt.path, "192.168.1.1:12345", "HTTP request", `"message":"inside"`, requestID} {
				if !strings.Contains(logOutput, want) {
					t.Errorf("log missing %q: %s", want, logOutput)
				}
			}
		})
	}
}

func TestLogger_KeepsRequestID(t *testing.T) {
	logger := zerolog.Nop()
	var seen string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = logging.RequestID(r.Context())
	})

	req := httptest.NewRequest("GET", "/health", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	Logger(&logger)(handler).ServeHTTP(w, req)

	if seen != "abc-123" {
		t.Errorf("handler saw request id %q", seen)
	}
	if got := w.Header().Get(RequestIDHeader); got != "abc-123" {
		t.Errorf("response request id %q", got)
	}
}

// TestRecovery tests that panics become 500 JSON responses.
func TestRecovery(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	w := httptest.NewRecorder()
	Recovery(&logger)(handler).ServeHTTP(w, httptest.NewRequest("GET", "/api/sessions", nil))

	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", w.Code)
	}
	if got := w.Body.String(); got != `{"error":"Internal server error"}` {
		t.Errorf("unexpected body %s", got)
	}
	if !strings.Contains(buf.String(), "Panic recovered") {
		t.Errorf("panic not logged: %s", buf.String())
	}
}

// TestRecovery_NoPanic tests the pass-through path.
func TestRecovery_NoPanic(t *testing.T) {
	logger := zerolog.Nop()
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	})

	w := httptest.NewRecorder()
	Recovery(&logger)(handler).ServeHTTP(w, httptest.NewRequest("GET", "/", nil))
	if w.Code != http.StatusAccepted {
		t.Errorf("expected 202, got %d", w.Code)
	}
}
