package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, r *Recorder) string {
	t.Helper()
	w := httptest.NewRecorder()
	r.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	return w.Body.String()
}

func TestRoute(t *testing.T) {
	tests := map[string]string{
		"/api/chat":          "/api/chat",
		"/api/chat-log/":     "/api/chat-log",
		"/health":            "/health",
		"/metrics":           "/metrics",
		"/":                  "static",
		"/publications.html": "static",
		"/assets/app.css":    "static",
	}
	for path, want := range tests {
		assert.Equal(t, want, Route(path), path)
	}
}

func TestRecorder(t *testing.T) {
	r := New()

	r.ObserveRequest("POST", "/api/chat", 200, 5*time.Millisecond)
	r.ObserveRequest("POST", "/api/chat", 200, 5*time.Millisecond)
	r.ObserveRequest("GET", "/index.html", 404, time.Millisecond)
	r.ChatMessage("ok")
	r.ScholarLookup("cache")
	r.StarFetch(true)
	r.StarFetch(false)
	r.StarFetch(false)

	body := scrape(t, r)
	assert.Contains(t, body, `homepage_http_requests_total{method="POST",route="/api/chat",status="200"} 2`)
	assert.Contains(t, body, `homepage_http_requests_total{method="GET",route="static",status="404"} 1`)
	assert.Contains(t, body, `homepage_chat_messages_total{outcome="ok"} 1`)
	assert.Contains(t, body, `homepage_scholar_lookups_total{source="cache"} 1`)
	assert.Contains(t, body, `homepage_star_fetches_total{result="failed"} 2`)
	assert.Contains(t, body, `homepage_star_fetches_total{result="ok"} 1`)
	assert.Contains(t, body, "go_goroutines")
}

func TestNewIsolatedRegistries(t *testing.T) {
	a, b := New(), New()
	a.ChatMessage("invalid")

	assert.Contains(t, scrape(t, a), `homepage_chat_messages_total{outcome="invalid"} 1`)
	assert.NotContains(t, scrape(t, b), "homepage_chat_messages_total")
}
