package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anxiangsir/homepage/pkg/errors"
)

func TestClientHeaders(t *testing.T) {
	var got http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		_, _ = w.Write([]byte(`{}`))
	}))
	t.Cleanup(srv.Close)

	t.Run("anonymous", func(t *testing.T) {
		resp, err := NewGitHub("").Get(context.Background(), srv.URL)
		require.NoError(t, err)
		_ = resp.Body.Close()

		assert.Empty(t, got.Get("Authorization"))
		assert.Equal(t, "application/vnd.github+json", got.Get("Accept"))
		assert.Equal(t, DefaultUserAgent, got.Get("User-Agent"))
	})

	t.Run("token", func(t *testing.T) {
		resp, err := NewGitHub("ghp_secret").Get(context.Background(), srv.URL)
		require.NoError(t, err)
		_ = resp.Body.Close()

		assert.Equal(t, "Bearer ghp_secret", got.Get("Authorization"))
	})

	t.Run("custom authenticator", func(t *testing.T) {
		c := New(
			WithAuthenticator(&HeaderAuth{Header: "X-Token"}),
			WithToken("abc"),
			WithUserAgent("test"),
			WithHeader("Accept-Language", "en-US"),
		)
		resp, err := c.Get(context.Background(), srv.URL)
		require.NoError(t, err)
		_ = resp.Body.Close()

		assert.Equal(t, "abc", got.Get("X-Token"))
		assert.Empty(t, got.Get("Authorization"))
		assert.Equal(t, "test", got.Get("User-Agent"))
		assert.Equal(t, "en-US", got.Get("Accept-Language"))
	})
}

func TestDecodeResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			_, _ = w.Write([]byte(`{"stargazers_count": 42}`))
		case "/limited":
			w.Header().Set("X-RateLimit-Remaining", "0")
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"message": "API rate limit exceeded"}`))
		case "/garbage":
			_, _ = w.Write([]byte(`not json`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)

	c := New()
	get := func(path string) *http.Response {
		resp, err := c.Get(context.Background(), srv.URL+path)
		require.NoError(t, err)
		return resp
	}

	var body struct {
		Stars int `json:"stargazers_count"`
	}
	require.NoError(t, DecodeResponse(get("/ok"), "github", &body))
	assert.Equal(t, 42, body.Stars)

	err := DecodeResponse(get("/limited"), "github", &body)
	require.Error(t, err)
	assert.True(t, errors.IsRateLimited(err))
	var apiErr *errors.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "github", apiErr.Service)
	assert.Equal(t, srv.URL+"/limited", apiErr.Endpoint)

	err = DecodeResponse(get("/missing"), "github", &body)
	assert.True(t, errors.IsNotFound(err))

	err = DecodeResponse(get("/garbage"), "github", &body)
	var parseErr *errors.ParseError
	assert.ErrorAs(t, err, &parseErr)
}

func TestRateLimitRemaining(t *testing.T) {
	tests := []struct {
		header string
		want   int
		ok     bool
	}{
		{header: "", want: 0, ok: false},
		{header: "0", want: 0, ok: true},
		{header: "59", want: 59, ok: true},
		{header: "n/a", want: 0, ok: false},
	}
	for _, tt := range tests {
		resp := &http.Response{Header: make(http.Header)}
		if tt.header != "" {
			resp.Header.Set("X-RateLimit-Remaining", tt.header)
		}
		n, ok := RateLimitRemaining(resp)
		assert.Equal(t, tt.want, n, tt.header)
		assert.Equal(t, tt.ok, ok, tt.header)
	}
}
