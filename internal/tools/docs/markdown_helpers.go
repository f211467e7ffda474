package docs

import (
	"fmt"
	"strings"

	md "github.com/nao1215/markdown"

	"github.com/anxiangsir/homepage/pkg/publications"
	"github.com/anxiangsir/homepage/pkg/render"
)

// buildCountText creates formatted count text (e.g., "5 publications")
func buildCountText(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}

// buildAuthors renders authors with the highlighted name in bold.
func buildAuthors(authors string, hl *render.Highlighter) string {
	var b strings.Builder
	for _, n := range hl.Highlight(authors) {
		if n.IsText() {
			b.WriteString(n.Text)
			continue
		}
		b.WriteString(md.Bold(n.TextContent()))
	}
	return b.String()
}

// buildLinks renders the record's links in display order.
func buildLinks(links []publications.Link) string {
	parts := make([]string, 0, len(links))
	for _, l := range links {
		parts = append(parts, md.Link(l.Name, l.URL))
	}
	return strings.Join(parts, Separator)
}

// buildEntry renders one publication as a single markdown line.
func buildEntry(r publications.Record, hl *render.Highlighter) string {
	parts := []string{md.Bold(r.Title)}
	if r.Authors != "" {
		parts = append(parts, buildAuthors(r.Authors, hl))
	}
	if r.Venue != "" {
		parts = append(parts, md.Italic(r.Venue))
	}
	if links := r.Links(); len(links) > 0 {
		parts = append(parts, buildLinks(links))
	}
	return strings.Join(parts, Separator)
}
