package publications

import (
	"context"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/anxiangsir/homepage/pkg/errors"
	"github.com/anxiangsir/homepage/pkg/logging"
)

// Getter issues HTTP GET requests. *transport.Client satisfies it.
type Getter interface {
	Get(ctx context.Context, url string) (*http.Response, error)
}

// Source provides the raw bytes of a data resource.
type Source interface {
	// Name identifies the resource in logs and errors.
	Name() string
	// Read returns the resource content.
	Read(ctx context.Context) ([]byte, error)
}

// FileSource reads a resource from the local filesystem.
type FileSource struct {
	Path string
}

// Name implements Source.
func (s FileSource) Name() string { return s.Path }

// Read implements Source.
func (s FileSource) Read(_ context.Context) ([]byte, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, errors.WrapIO("read", s.Path, err)
	}
	return data, nil
}

// HTTPSource fetches a resource over HTTP.
type HTTPSource struct {
	URL    string
	Client Getter
}

// Name implements Source.
func (s HTTPSource) Name() string { return s.URL }

// Read implements Source. Any non-200 status is an *errors.APIError.
func (s HTTPSource) Read(ctx context.Context) ([]byte, error) {
	resp, err := s.Client.Get(ctx, s.URL)
	if err != nil {
		return nil, errors.WrapIO("fetch", s.URL, err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			logging.FromContext(ctx).Debug().Err(cerr).Str("url", s.URL).Msg("Failed to close response body")
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.WrapIO("read", s.URL, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &errors.APIError{
			Service:    "data",
			StatusCode: resp.StatusCode,
			Message:    http.StatusText(resp.StatusCode),
			Endpoint:   s.URL,
		}
	}
	return body, nil
}

// OpenSource returns an HTTPSource for http(s) locations and a FileSource
// otherwise. Relative file locations are resolved against root.
func OpenSource(location, root string, client Getter) Source {
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return HTTPSource{URL: location, Client: client}
	}
	if root != "" && !strings.HasPrefix(location, "/") {
		location = strings.TrimSuffix(root, "/") + "/" + location
	}
	return FileSource{Path: location}
}

// LoadCatalog reads and parses a catalog resource.
func LoadCatalog(ctx context.Context, src Source) (*Catalog, error) {
	data, err := src.Read(ctx)
	if err != nil {
		return nil, err
	}
	records, err := ParseCatalog(data, src.Name())
	if err != nil {
		return nil, err
	}
	return NewCatalog(records)
}

// LoadSelected reads and parses a selected-list resource.
func LoadSelected(ctx context.Context, src Source) (SelectedList, error) {
	data, err := src.Read(ctx)
	if err != nil {
		return nil, err
	}
	return ParseSelected(data, src.Name())
}
