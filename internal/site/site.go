// Package site renders the homepage's static HTML pages: each page gets its
// publication list and GitHub star counts filled in, as the browser scripts
// would, and is written to an output directory.
package site

import (
	"context"
	"os"
	"path/filepath"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/anxiangsir/homepage/pkg/constants"
	"github.com/anxiangsir/homepage/pkg/dom"
	"github.com/anxiangsir/homepage/pkg/errors"
	"github.com/anxiangsir/homepage/pkg/logging"
	"github.com/anxiangsir/homepage/pkg/render"
	"github.com/anxiangsir/homepage/pkg/stars"
)

// Renderers builds the publication renderer of a page mode.
type Renderers interface {
	Renderer(mode render.PageMode) *render.Renderer
}

// Config controls which pages are rendered and where they go.
type Config struct {
	// SiteDir holds the source pages.
	SiteDir string
	// OutDir receives the rendered pages; it may equal SiteDir.
	OutDir string
	// Pages are paths relative to SiteDir. Empty means every top-level
	// *.html file.
	Pages []string
	// Concurrency bounds the pages processed at once. Zero means 4.
	Concurrency int
}

// PageResult reports what happened to one page.
type PageResult struct {
	Page        string          `json:"page" yaml:"page"`
	Output      string          `json:"output,omitempty" yaml:"output,omitempty"`
	Mode        render.PageMode `json:"-" yaml:"-"`
	ModeName    string          `json:"mode" yaml:"mode"`
	Entries     int             `json:"entries" yaml:"entries"`
	Missing     []string        `json:"missing,omitempty" yaml:"missing,omitempty"`
	Placeholder bool            `json:"placeholder" yaml:"placeholder"`
	NoContainer bool            `json:"no_container" yaml:"no_container"`
	StarTargets int             `json:"star_targets" yaml:"star_targets"`
	Err         error           `json:"-" yaml:"-"`
	Error       string          `json:"error,omitempty" yaml:"error,omitempty"`
}

// Builder renders a set of pages.
type Builder struct {
	cfg       Config
	renderers Renderers
	loader    *stars.Loader
}

// New returns a Builder. loader may be nil to skip star counts.
func New(cfg Config, renderers Renderers, loader *stars.Loader) *Builder {
	if cfg.OutDir == "" {
		cfg.OutDir = cfg.SiteDir
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 4
	}
	return &Builder{cfg: cfg, renderers: renderers, loader: loader}
}

// Pages returns the pages to render, relative to SiteDir.
func (b *Builder) Pages() ([]string, error) {
	if len(b.cfg.Pages) > 0 {
		return b.cfg.Pages, nil
	}
	matches, err := filepath.Glob(filepath.Join(b.cfg.SiteDir, "*.html"))
	if err != nil {
		return nil, errors.WrapIO("list", b.cfg.SiteDir, err)
	}
	pages := make([]string, 0, len(matches))
	for _, m := range matches {
		pages = append(pages, filepath.Base(m))
	}
	sort.Strings(pages)
	if len(pages) == 0 {
		return nil, errors.NewNotFoundError("html pages", b.cfg.SiteDir)
	}
	return pages, nil
}

type page struct {
	result *PageResult
	doc    *dom.Document
}

// Build renders every page. A page that fails is reported in its result and
// does not stop the others; the returned error covers only page discovery.
func (b *Builder) Build(ctx context.Context) ([]PageResult, error) {
	logger := logging.FromContext(ctx)

	names, err := b.Pages()
	if err != nil {
		return nil, err
	}

	results := make([]PageResult, len(names))
	pages := make([]page, len(names))
	for i := range names {
		results[i] = PageResult{Page: names[i]}
		pages[i].result = &results[i]
	}

	b.each(ctx, names, func(ctx context.Context, i int) {
		doc, err := b.parse(names[i])
		if err != nil {
			b.fail(ctx, pages[i].result, err)
			return
		}
		pages[i].doc = doc
	})

	starResults := b.loadStars(ctx, pages)

	b.each(ctx, names, func(ctx context.Context, i int) {
		if pages[i].doc != nil {
			b.renderPage(ctx, pages[i], starResults)
		}
	})

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	logger.Info().Int("pages", len(results)).Int("failed", failed).Str("out_dir", b.cfg.OutDir).Msg("Site rendered")
	return results, nil
}

// each runs fn for every page index with bounded concurrency.
func (b *Builder) each(ctx context.Context, names []string, fn func(ctx context.Context, i int)) {
	var g errgroup.Group
	g.SetLimit(b.cfg.Concurrency)
	for i := range names {
		g.Go(func() error {
			fn(logging.WithPage(ctx, names[i]), i)
			return nil
		})
	}
	_ = g.Wait()
}

func (b *Builder) parse(name string) (*dom.Document, error) {
	path := filepath.Join(b.cfg.SiteDir, name)
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WrapIO("open", path, err)
	}
	defer func() { _ = f.Close() }()
	return dom.Parse(f)
}

// loadStars fetches the star counts once when any page has a target.
func (b *Builder) loadStars(ctx context.Context, pages []page) []stars.Result {
	if b.loader == nil {
		return nil
	}
	for _, p := range pages {
		if p.doc == nil {
			continue
		}
		for _, repo := range b.loader.Repos() {
			if p.doc.Exists(repo.Selector) {
				return b.loader.LoadAll(ctx, nil)
			}
		}
	}
	logging.FromContext(ctx).Debug().Msg("No star targets on any page")
	return nil
}

func (b *Builder) renderPage(ctx context.Context, p page, starResults []stars.Result) {
	res := p.result

	res.Mode = render.ResolveMode(p.doc)
	res.ModeName = res.Mode.String()
	if res.Mode != render.ModeNone {
		plan, _ := b.renderers.Renderer(res.Mode).Load(ctx)
		switch err := p.doc.Apply(ctx, plan); {
		case err != nil:
			res.NoContainer = true
		case plan.Failed():
			res.Placeholder = true
		default:
			res.Entries = len(plan.Nodes)
		}
		res.Missing = plan.Missing
	}

	for _, sr := range starResults {
		if !sr.OK || !p.doc.Exists(sr.Repo.Selector) {
			continue
		}
		stars.Render(ctx, p.doc, sr.Repo.Selector, sr.Count, sr.OK)
		res.StarTargets++
	}

	out := filepath.Join(b.cfg.OutDir, res.Page)
	if err := writeDocument(out, p.doc); err != nil {
		b.fail(ctx, res, err)
		return
	}
	res.Output = out
	logging.FromContext(ctx).Debug().
		Str("mode", res.ModeName).
		Int("entries", res.Entries).
		Int("star_targets", res.StarTargets).
		Msg("Page rendered")
}

func (b *Builder) fail(ctx context.Context, res *PageResult, err error) {
	res.Err = err
	res.Error = err.Error()
	logging.FromContext(ctx).Error().Err(err).Msg("Failed to render page")
}

func writeDocument(path string, doc *dom.Document) error {
	if err := os.MkdirAll(filepath.Dir(path), constants.DirPermissions); err != nil {
		return errors.WrapIO("create", filepath.Dir(path), err)
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.WrapIO("create", path, err)
	}
	if err := doc.Render(f); err != nil {
		_ = f.Close()
		return err
	}
	return errors.WrapIO("write", path, f.Close())
}
