package render

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/anxiangsir/homepage/pkg/constants"
	"github.com/anxiangsir/homepage/pkg/errors"
	"github.com/anxiangsir/homepage/pkg/logging"
	"github.com/anxiangsir/homepage/pkg/publications"
)

// Config parameterises a Renderer.
type Config struct {
	// Mode is the page mode to render for.
	Mode PageMode
	// Layout of each entry. Zero value is LayoutCompact; use DefaultLayout
	// to follow the mode.
	Layout Layout
	// Selectors lists container selectors in priority order. Empty means
	// DefaultContainers(Mode).
	Selectors []string
	// AuthorName is highlighted in author lists. Empty means
	// constants.DefaultAuthorName.
	AuthorName string
}

// Plan is the outcome of a load: the container to fill and what to fill it
// with. A failed load carries Err and a single placeholder node.
type Plan struct {
	Mode       PageMode
	Containers []string
	Nodes      []*Node
	// Missing lists selected titles that had no catalog record.
	Missing []string
	Err     error
}

// Failed reports whether the plan holds the error placeholder.
func (p Plan) Failed() bool {
	return p.Err != nil
}

// Renderer renders the publication lists of one page mode.
type Renderer struct {
	cfg      Config
	hl       *Highlighter
	selected publications.Source
	catalog  publications.Source
}

// New returns a Renderer reading the selected list and the catalog from the
// given sources. selected may be nil when only LoadAll is used.
func New(cfg Config, selected, catalog publications.Source) *Renderer {
	if len(cfg.Selectors) == 0 {
		cfg.Selectors = DefaultContainers(cfg.Mode)
	}
	if cfg.AuthorName == "" {
		cfg.AuthorName = constants.DefaultAuthorName
	}
	return &Renderer{
		cfg:      cfg,
		hl:       NewHighlighter(cfg.AuthorName),
		selected: selected,
		catalog:  catalog,
	}
}

// Config returns the effective configuration.
func (r *Renderer) Config() Config {
	return r.cfg
}

// Load dispatches on the configured mode. ok is false for ModeNone.
func (r *Renderer) Load(ctx context.Context) (plan Plan, ok bool) {
	switch r.cfg.Mode {
	case ModeSelectedList:
		return r.LoadSelected(ctx), true
	case ModeFullCatalog:
		return r.LoadAll(ctx), true
	default:
		return Plan{}, false
	}
}

// LoadSelected loads the selected list and the catalog concurrently, joins
// them by title and renders the entries in selected-list order.
func (r *Renderer) LoadSelected(ctx context.Context) Plan {
	logger := logging.FromContext(ctx)

	var (
		list    publications.SelectedList
		catalog *publications.Catalog
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if r.selected == nil {
			return errors.NewConfigError("render", "no selected list source", nil)
		}
		var err error
		list, err = publications.LoadSelected(gctx, r.selected)
		return errors.WrapResource("load", "selected list", r.selected.Name(), err)
	})
	g.Go(func() error {
		var err error
		catalog, err = r.loadCatalog(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		logger.Error().Err(err).Msg("Failed to load selected publications")
		return r.failed(err)
	}

	records, missing := catalog.Select(ctx, list)
	plan := r.plan(records)
	plan.Missing = missing
	return plan
}

// LoadAll loads the catalog and renders every record in catalog order.
func (r *Renderer) LoadAll(ctx context.Context) Plan {
	catalog, err := r.loadCatalog(ctx)
	if err != nil {
		logging.FromContext(ctx).Error().Err(err).Msg("Failed to load all publications")
		return r.failed(err)
	}
	return r.plan(catalog.Records())
}

func (r *Renderer) loadCatalog(ctx context.Context) (*publications.Catalog, error) {
	if r.catalog == nil {
		return nil, errors.NewConfigError("render", "no catalog source", nil)
	}
	c, err := publications.LoadCatalog(ctx, r.catalog)
	return c, errors.WrapResource("load", "catalog", r.catalog.Name(), err)
}

func (r *Renderer) plan(records []publications.Record) Plan {
	nodes := make([]*Node, 0, len(records))
	for _, rec := range records {
		nodes = append(nodes, Entry(rec, r.cfg.Layout, r.hl))
	}
	return Plan{Mode: r.cfg.Mode, Containers: r.cfg.Selectors, Nodes: nodes}
}

func (r *Renderer) failed(err error) Plan {
	return Plan{
		Mode:       r.cfg.Mode,
		Containers: r.cfg.Selectors,
		Nodes:      []*Node{Placeholder()},
		Err:        err,
	}
}
