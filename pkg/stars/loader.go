package stars

import (
	"context"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/anxiangsir/homepage/pkg/constants"
	"github.com/anxiangsir/homepage/pkg/errors"
	"github.com/anxiangsir/homepage/pkg/logging"
)

// Target is a document whose elements can be given new text.
type Target interface {
	SetText(selector, text string) (int, error)
}

// Render writes the star label for count into every element matching
// selector. When ok is false the elements are left untouched.
func Render(ctx context.Context, target Target, selector string, count int, ok bool) {
	if !ok || target == nil {
		return
	}
	n, err := target.SetText(selector, Label(count))
	if err != nil {
		logging.FromContext(ctx).Warn().Err(err).Str("selector", selector).Msg("Failed to write star count")
		return
	}
	logging.FromContext(ctx).Debug().Str("selector", selector).Int("elements", n).Int("stars", count).Msg("Wrote star count")
}

// Policy controls how LoadAll schedules requests.
type Policy int

const (
	// PolicySequential fetches one repository at a time with a delay
	// between requests.
	PolicySequential Policy = iota
	// PolicyParallel fetches every repository at once.
	PolicyParallel
)

// String implements fmt.Stringer.
func (p Policy) String() string {
	if p == PolicyParallel {
		return "parallel"
	}
	return "sequential"
}

// ParsePolicy parses the String form of a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "sequential":
		return PolicySequential, nil
	case "parallel":
		return PolicyParallel, nil
	}
	return PolicySequential, errors.NewValidationError("star_policy", s, "must be sequential or parallel")
}

// Result is the outcome for one repository.
type Result struct {
	Repo  RepoRef `json:"repo"`
	Count int     `json:"count"`
	OK    bool    `json:"ok"`
	Label string  `json:"label,omitempty"`
}

// Loader fetches and renders the star counts of a fixed repository list.
type Loader struct {
	fetcher *Fetcher
	repos   []RepoRef
	policy  Policy
	delay   time.Duration
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithPolicy sets the scheduling policy.
func WithPolicy(p Policy) LoaderOption {
	return func(l *Loader) { l.policy = p }
}

// WithDelay sets the pause between sequential requests.
func WithDelay(d time.Duration) LoaderOption {
	return func(l *Loader) { l.delay = d }
}

// WithRepos replaces DefaultRepos.
func WithRepos(repos []RepoRef) LoaderOption {
	return func(l *Loader) { l.repos = append([]RepoRef(nil), repos...) }
}

// NewLoader returns a sequential Loader over DefaultRepos.
func NewLoader(fetcher *Fetcher, opts ...LoaderOption) *Loader {
	l := &Loader{
		fetcher: fetcher,
		repos:   append([]RepoRef(nil), DefaultRepos...),
		policy:  PolicySequential,
		delay:   constants.DefaultStarDelay,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Repos returns the repositories the loader covers.
func (l *Loader) Repos() []RepoRef {
	return append([]RepoRef(nil), l.repos...)
}

// Policy returns the scheduling policy.
func (l *Loader) Policy() Policy {
	return l.policy
}

// LoadAll fetches every repository and renders each count into target. A nil
// target only fetches. Results are in repository order. Cancelling ctx stops
// a sequential load; repositories not yet fetched are reported as not ok.
func (l *Loader) LoadAll(ctx context.Context, target Target) []Result {
	results := make([]Result, len(l.repos))
	for i, r := range l.repos {
		results[i].Repo = r
	}

	load := func(i int) {
		r := l.repos[i]
		count, ok := l.fetcher.FetchStarCount(ctx, r.Owner, r.Repo)
		results[i].Count, results[i].OK = count, ok
		if ok {
			results[i].Label = Label(count)
		}
		Render(ctx, target, r.Selector, count, ok)
	}

	switch l.policy {
	case PolicyParallel:
		var g errgroup.Group
		for i := range l.repos {
			g.Go(func() error {
				load(i)
				return nil
			})
		}
		_ = g.Wait()
	default:
		for i := range l.repos {
			if i > 0 && l.delay > 0 {
				select {
				case <-ctx.Done():
					logging.FromContext(ctx).Debug().Int("skipped", len(l.repos)-i).Msg("Star loading canceled")
					return results
				case <-time.After(l.delay):
				}
			}
			load(i)
		}
	}
	return results
}
