package publications

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anxiangsir/homepage/pkg/errors"
)

type httpGetter struct{}

func (httpGetter) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	return http.DefaultClient.Do(req)
}

func TestOpenSource(t *testing.T) {
	src := OpenSource("https://example.com/_data/publications.json", "site", httpGetter{})
	assert.IsType(t, HTTPSource{}, src)
	assert.Equal(t, "https://example.com/_data/publications.json", src.Name())

	src = OpenSource("_data/publications.json", "site/", nil)
	assert.Equal(t, FileSource{Path: "site/_data/publications.json"}, src)

	src = OpenSource("/abs/publications.json", "site", nil)
	assert.Equal(t, FileSource{Path: "/abs/publications.json"}, src)
}

func TestLoadCatalogFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "publications.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"title": "A"}, {"title": "B"}]`), 0o600))

	c, err := LoadCatalog(context.Background(), FileSource{Path: path})
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())

	_, err = LoadCatalog(context.Background(), FileSource{Path: filepath.Join(dir, "missing.json")})
	require.Error(t, err)
	var ioErr *errors.IOError
	assert.ErrorAs(t, err, &ioErr)
}

func TestLoadCatalogRejectsDuplicates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "publications.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- title: A\n- title: A\n"), 0o600))

	_, err := LoadCatalog(context.Background(), FileSource{Path: path})
	assert.True(t, errors.IsAlreadyExists(err))
}

func TestLoadSelectedOverHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/_data/selected_publications.json":
			_, _ = w.Write([]byte(`[{"title": "B"}, "A"]`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)

	list, err := LoadSelected(context.Background(), HTTPSource{URL: srv.URL + "/_data/selected_publications.json", Client: httpGetter{}})
	require.NoError(t, err)
	assert.Equal(t, SelectedList{"B", "A"}, list)

	_, err = LoadSelected(context.Background(), HTTPSource{URL: srv.URL + "/missing.json", Client: httpGetter{}})
	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
	var apiErr *errors.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
}
