// Package docs exports the publication catalog as Markdown for README and
// documentation use.
package docs

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	md "github.com/nao1215/markdown"

	"github.com/anxiangsir/homepage/internal/cmd/emoji"
	"github.com/anxiangsir/homepage/pkg/constants"
	"github.com/anxiangsir/homepage/pkg/errors"
	"github.com/anxiangsir/homepage/pkg/logging"
	"github.com/anxiangsir/homepage/pkg/publications"
	"github.com/anxiangsir/homepage/pkg/render"
)

// Generator handles documentation generation
type Generator struct {
	outputDir  string
	fileName   string
	title      string
	authorName string
	verbose    bool
}

// Option is a functional option for configuring the Generator
type Option func(*Generator)

// WithOutputDir sets the output directory for generated documentation
func WithOutputDir(dir string) Option {
	return func(g *Generator) {
		g.outputDir = dir
	}
}

// WithFileName sets the name of the generated file
func WithFileName(name string) Option {
	return func(g *Generator) {
		g.fileName = name
	}
}

// WithTitle sets the document title
func WithTitle(title string) Option {
	return func(g *Generator) {
		g.title = title
	}
}

// WithAuthorName sets the author name set in bold
func WithAuthorName(name string) Option {
	return func(g *Generator) {
		g.authorName = name
	}
}

// WithVerbose enables verbose output
func WithVerbose(verbose bool) Option {
	return func(g *Generator) {
		g.verbose = verbose
	}
}

// New creates a new documentation generator
func New(opts ...Option) *Generator {
	g := &Generator{
		outputDir:  "./docs",
		fileName:   DefaultFileName,
		title:      DefaultTitle,
		authorName: constants.DefaultAuthorName,
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// Generate writes the markdown document into the output directory and
// returns its path.
func (g *Generator) Generate(ctx context.Context, catalog *publications.Catalog, selected []publications.Record) (string, error) {
	if err := os.MkdirAll(g.outputDir, constants.DirPermissions); err != nil {
		return "", errors.WrapIO("create", g.outputDir, err)
	}

	path := filepath.Join(g.outputDir, g.fileName)
	f, err := os.Create(path)
	if err != nil {
		return "", errors.WrapIO("create", path, err)
	}
	if err := g.Write(f, catalog, selected); err != nil {
		_ = f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", errors.WrapIO("write", path, err)
	}

	logging.FromContext(ctx).Info().Str("path", path).Int("publications", catalog.Len()).Msg("Publication markdown written")
	if g.verbose {
		fmt.Printf("%s Wrote %s\n", emoji.Memo, path)
	}
	return path, nil
}

// Write renders the document: the selected publications (when given), the
// full catalog and a venue summary.
func (g *Generator) Write(w io.Writer, catalog *publications.Catalog, selected []publications.Record) error {
	hl := render.NewHighlighter(g.authorName)
	records := catalog.Records()

	b := NewMarkdownBuilder(w).
		H1(g.title).
		CountText(len(records), "publication", "publications").
		LF()

	if len(selected) > 0 {
		items := make([]string, 0, len(selected))
		for _, r := range selected {
			items = append(items, buildEntry(r, hl))
		}
		b.H2("Selected Publications").OrderedList(items...).LF()
	}

	items := make([]string, 0, len(records))
	for _, r := range records {
		items = append(items, buildEntry(r, hl))
	}
	b.H2("All Publications").BulletList(items...).LF()

	if len(records) > 0 {
		b.H2("Venues").Table(venueTable(records))
	}

	if err := b.Build(); err != nil {
		return errors.WrapIO("write", "markdown", err)
	}
	return nil
}

// venueTable counts records per venue, most frequent first.
func venueTable(records []publications.Record) md.TableSet {
	counts := map[string]int{}
	for _, r := range records {
		venue := r.Venue
		if venue == "" {
			venue = UnknownVenue
		}
		counts[venue]++
	}

	venues := make([]string, 0, len(counts))
	for v := range counts {
		venues = append(venues, v)
	}
	sort.Slice(venues, func(i, j int) bool {
		if counts[venues[i]] != counts[venues[j]] {
			return counts[venues[i]] > counts[venues[j]]
		}
		return venues[i] < venues[j]
	})

	rows := make([][]string, 0, len(venues))
	for _, v := range venues {
		rows = append(rows, []string{v, strconv.Itoa(counts[v])})
	}
	return md.TableSet{Header: []string{"Venue", "Count"}, Rows: rows}
}
