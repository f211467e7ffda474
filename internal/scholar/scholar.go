// Package scholar reports the Google Scholar citation count of the site
// owner, caching it for a day and degrading to a stale or static value.
package scholar

import (
	"context"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/agentstation/utc"
	"github.com/andybalholm/cascadia"
	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/net/html"

	"github.com/anxiangsir/homepage/internal/transport"
	"github.com/anxiangsir/homepage/pkg/constants"
	"github.com/anxiangsir/homepage/pkg/errors"
	"github.com/anxiangsir/homepage/pkg/logging"
)

// Where a reported count came from.
const (
	SourceCache      = "cache"
	SourceScholar    = "scholar"
	SourceStaleCache = "stale_cache"
	SourceFallback   = "fallback"
)

// Result is a citation count and its provenance.
type Result struct {
	Citations int    `json:"citations"`
	Source    string `json:"source"`
}

// Getter issues HTTP GET requests.
type Getter interface {
	Get(ctx context.Context, url string) (*http.Response, error)
}

// Persister stores the last scraped count across restarts.
type Persister interface {
	Citations(ctx context.Context) (value int, updatedAt time.Time, ok bool, err error)
	SetCitations(ctx context.Context, value int) error
}

// Config configures a Service.
type Config struct {
	URL      string
	TTL      time.Duration
	Timeout  time.Duration
	Fallback int
}

// DefaultConfig returns the configuration for the site owner's profile.
func DefaultConfig() Config {
	return Config{
		URL:      constants.ScholarURL,
		TTL:      constants.ScholarCacheTTL,
		Timeout:  constants.ScholarFetchTimeout,
		Fallback: constants.FallbackCitations,
	}
}

// NewClient returns a transport client that presents itself as a browser,
// which the profile page requires.
func NewClient() *transport.Client {
	return transport.New(
		transport.WithUserAgent("Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"),
		transport.WithAccept("text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"),
		transport.WithHeader("Accept-Language", "en-US,en;q=0.5"),
	)
}

type entry struct {
	value     int
	fetchedAt time.Time
}

// Service resolves the citation count.
type Service struct {
	cfg     Config
	client  Getter
	persist Persister
	fresh   *gocache.Cache
	now     func() time.Time

	mu   sync.Mutex
	last *entry
}

// New returns a Service. persist may be nil.
func New(cfg Config, client Getter, persist Persister) *Service {
	def := DefaultConfig()
	if cfg.URL == "" {
		cfg.URL = def.URL
	}
	if cfg.TTL <= 0 {
		cfg.TTL = def.TTL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.Fallback <= 0 {
		cfg.Fallback = def.Fallback
	}
	return &Service{
		cfg:     cfg,
		client:  client,
		persist: persist,
		fresh:   gocache.New(cfg.TTL, constants.CacheCleanupInterval),
		now:     func() time.Time { return utc.Now().Time },
	}
}

// Citations returns, in order of preference: a cached count younger than
// the TTL, a freshly scraped count, the last known count however old, or the
// static fallback.
func (s *Service) Citations(ctx context.Context) Result {
	logger := logging.FromContext(ctx)

	if v, ok := s.fresh.Get(citationsKey); ok {
		return Result{Citations: v.(int), Source: SourceCache}
	}

	stale := s.lastKnown(ctx)
	if stale != nil && s.now().Sub(stale.fetchedAt) < s.cfg.TTL {
		s.remember(stale.value, stale.fetchedAt)
		return Result{Citations: stale.value, Source: SourceCache}
	}

	value, err := s.Fetch(ctx)
	if err == nil {
		s.remember(value, s.now())
		if s.persist != nil {
			if perr := s.persist.SetCitations(ctx, value); perr != nil {
				logger.Warn().Err(perr).Msg("Scholar cache write failed")
			}
		}
		return Result{Citations: value, Source: SourceScholar}
	}
	logger.Warn().Err(err).Msg("Scholar fetch failed")

	if stale != nil {
		return Result{Citations: stale.value, Source: SourceStaleCache}
	}
	return Result{Citations: s.cfg.Fallback, Source: SourceFallback}
}

const citationsKey = "citations"

func (s *Service) remember(value int, fetchedAt time.Time) {
	s.mu.Lock()
	s.last = &entry{value: value, fetchedAt: fetchedAt}
	s.mu.Unlock()

	ttl := s.cfg.TTL - s.now().Sub(fetchedAt)
	if ttl > 0 {
		s.fresh.Set(citationsKey, value, ttl)
	}
}

// lastKnown returns the most recent count held in memory or in the
// persister.
func (s *Service) lastKnown(ctx context.Context) *entry {
	s.mu.Lock()
	last := s.last
	s.mu.Unlock()

	if s.persist == nil {
		return last
	}
	value, updated, ok, err := s.persist.Citations(ctx)
	if err != nil {
		logging.FromContext(ctx).Warn().Err(err).Msg("Scholar cache read failed")
		return last
	}
	if !ok || (last != nil && last.fetchedAt.After(updated)) {
		return last
	}
	return &entry{value: value, fetchedAt: updated}
}

// Fetch scrapes the profile page once.
func (s *Service) Fetch(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	resp, err := s.client.Get(ctx, s.cfg.URL)
	if err != nil {
		return 0, errors.WrapIO("fetch", s.cfg.URL, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return 0, &errors.APIError{
			Service:    "scholar",
			StatusCode: resp.StatusCode,
			Message:    http.StatusText(resp.StatusCode),
			Endpoint:   s.cfg.URL,
		}
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, errors.WrapIO("read", s.cfg.URL, err)
	}
	return ExtractCitations(string(body))
}

var citationsPattern = regexp.MustCompile(`Citations</a></td>\s*<td class="gsc_rsb_std">(\d+)</td>`)

var statsRows = cascadia.MustCompile("#gsc_rsb_st tr")

// ExtractCitations reads the all-time citation count from a profile page.
func ExtractCitations(page string) (int, error) {
	if m := citationsPattern.FindStringSubmatch(page); m != nil {
		return strconv.Atoi(m[1])
	}

	// Markup drift: walk the stats table instead.
	doc, err := html.Parse(strings.NewReader(page))
	if err != nil {
		return 0, errors.WrapParse("html", "scholar profile", err)
	}
	for _, row := range statsRows.MatchAll(doc) {
		var cells []string
		for c := row.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && c.Data == "td" {
				cells = append(cells, strings.TrimSpace(text(c)))
			}
		}
		if len(cells) >= 2 && cells[0] == "Citations" {
			n, err := strconv.Atoi(cells[1])
			if err != nil {
				return 0, errors.NewParseError("html", "scholar profile", "citation cell is not a number", err)
			}
			return n, nil
		}
	}
	return 0, errors.NewParseError("html", "scholar profile", "citation count not found", nil)
}

func text(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(text(c))
	}
	return b.String()
}
