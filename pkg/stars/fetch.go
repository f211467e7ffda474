package stars

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/anxiangsir/homepage/internal/transport"
	"github.com/anxiangsir/homepage/pkg/constants"
	"github.com/anxiangsir/homepage/pkg/errors"
	"github.com/anxiangsir/homepage/pkg/logging"
)

// Getter issues HTTP GET requests.
type Getter interface {
	Get(ctx context.Context, url string) (*http.Response, error)
}

// Fetcher reads star counts from the GitHub repository API.
type Fetcher struct {
	client  Getter
	baseURL string
}

// NewFetcher returns a Fetcher. An empty baseURL means the public GitHub API.
func NewFetcher(client Getter, baseURL string) *Fetcher {
	if baseURL == "" {
		baseURL = constants.GitHubAPIURL
	}
	return &Fetcher{client: client, baseURL: strings.TrimSuffix(baseURL, "/")}
}

type repository struct {
	StargazersCount *int `json:"stargazers_count"`
}

// FetchStarCount returns the repository's star count. Every failure is soft:
// it is logged and reported as ok == false.
func (f *Fetcher) FetchStarCount(ctx context.Context, owner, repo string) (count int, ok bool) {
	ctx = logging.WithRepo(ctx, owner, repo)
	count, err := f.fetch(ctx, owner, repo)
	if err != nil {
		logger := logging.FromContext(ctx)
		if errors.IsRateLimited(err) {
			logger.Warn().Err(err).Msg("GitHub rate limit exhausted, keeping existing star count")
		} else {
			logger.Warn().Err(err).Msg("Error fetching stars")
		}
		return 0, false
	}
	return count, true
}

func (f *Fetcher) fetch(ctx context.Context, owner, repo string) (int, error) {
	endpoint := f.baseURL + "/repos/" + url.PathEscape(owner) + "/" + url.PathEscape(repo)
	resp, err := f.client.Get(ctx, endpoint)
	if err != nil {
		return 0, errors.WrapIO("fetch", endpoint, err)
	}

	if n, ok := transport.RateLimitRemaining(resp); ok && n == 0 {
		_ = resp.Body.Close()
		return 0, &errors.APIError{
			Service:        "github",
			StatusCode:     resp.StatusCode,
			Message:        "rate limit remaining is 0",
			Endpoint:       endpoint,
			QuotaExhausted: true,
		}
	}

	var body repository
	if err := transport.DecodeResponse(resp, "github", &body); err != nil {
		return 0, err
	}
	if body.StargazersCount == nil {
		return 0, errors.NewParseError("json", endpoint, "response has no stargazers_count", nil)
	}
	return *body.StargazersCount, nil
}
