package server

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/anxiangsir/homepage/internal/cmd/application"
	"github.com/anxiangsir/homepage/pkg/errors"
)

func newTestServer(t *testing.T, cfg Config) *httptest.Server {
	t.Helper()
	srv, err := New(&application.Mock{}, cfg)
	require.NoError(t, err)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(func() {
		ts.Close()
		_ = srv.Shutdown(context.Background())
	})
	return ts
}

func request(t *testing.T, method, url, body string) (*http.Response, string) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, r)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(b)
}

func TestServer_Chat(t *testing.T) {
	ts := newTestServer(t, DefaultConfig())

	resp, body := request(t, http.MethodPost, ts.URL+"/api/chat", `{"message":"hi"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `"reply":"升级中！"`)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "POST, OPTIONS", resp.Header.Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "Content-Type", resp.Header.Get("Access-Control-Allow-Headers"))

	resp, body = request(t, http.MethodOptions, ts.URL+"/api/chat", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, body)

	resp, body = request(t, http.MethodPut, ts.URL+"/api/chat", `{"message":"hi"}`)
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	assert.JSONEq(t, `{"error":"Method not allowed"}`, body)

	resp, body = request(t, http.MethodPost, ts.URL+"/api/chat", `{"message":123}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body, `"error"`)
}

func TestServer_Routes(t *testing.T) {
	ts := newTestServer(t, DefaultConfig())

	resp, body := request(t, http.MethodGet, ts.URL+"/health", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `"status":"healthy"`)

	resp, body = request(t, http.MethodGet, ts.URL+"/api/unknown", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.JSONEq(t, `{"error":"Not found"}`, body)

	resp, _ = request(t, http.MethodGet, ts.URL+"/api/sessions", "")
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	resp, body = request(t, http.MethodGet, ts.URL+"/api/scholar", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"citations":1114,"source":"fallback"}`, body)

	resp, _ = request(t, http.MethodGet, ts.URL+"/favicon.ico", "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestServer_Metrics(t *testing.T) {
	ts := newTestServer(t, DefaultConfig())

	request(t, http.MethodPost, ts.URL+"/api/chat", `{"message":"hi"}`)
	resp, body := request(t, http.MethodGet, ts.URL+"/metrics", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `homepage_chat_messages_total{outcome="ok"} 1`)
	assert.Contains(t, body, `route="/api/chat"`)

	cfg := DefaultConfig()
	cfg.MetricsEnabled = false
	ts = newTestServer(t, cfg)
	resp, _ = request(t, http.MethodGet, ts.URL+"/metrics", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServer_StaticSite(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<h1>Xiang An</h1>"), 0o644))

	cfg := DefaultConfig()
	cfg.SiteDir = dir
	ts := newTestServer(t, cfg)

	resp, body := request(t, http.MethodGet, ts.URL+"/", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Xiang An")

	resp, _ = request(t, http.MethodGet, ts.URL+"/missing.html", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServer_RateLimit(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RateLimit = 2
	ts := newTestServer(t, cfg)

	var codes []int
	for range 3 {
		resp, _ := request(t, http.MethodGet, ts.URL+"/health", "")
		codes = append(codes, resp.StatusCode)
	}
	assert.Equal(t, []int{200, 200, 429}, codes)
}

func TestNew_InvalidSiteDir(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SiteDir = filepath.Join(t.TempDir(), "nope")
	_, err := New(&application.Mock{}, cfg)
	require.Error(t, err)

	var cfgErr *errors.ConfigError
	assert.True(t, errors.As(err, &cfgErr))
}

func TestServer_ShutdownReleasesGoroutines(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	srv, err := New(&application.Mock{}, DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, "localhost:8080", srv.Addr())
	assert.NotNil(t, srv.Metrics())
	require.NoError(t, srv.Shutdown(context.Background()))
}
