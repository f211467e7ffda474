package render

import (
	"regexp"

	"github.com/anxiangsir/homepage/pkg/constants"
)

// HighlightClass marks the site owner's name in author lists.
const HighlightClass = "me-highlight"

// Highlighter wraps occurrences of one author name, optionally followed by
// "(Project Leader)", in a highlight span. Matching is case sensitive.
type Highlighter struct {
	name    string
	pattern *regexp.Regexp
}

// NewHighlighter returns a Highlighter for name.
func NewHighlighter(name string) *Highlighter {
	return &Highlighter{
		name:    name,
		pattern: regexp.MustCompile(regexp.QuoteMeta(name) + `(\s*\(Project Leader\))?`),
	}
}

var defaultHighlighter = NewHighlighter(constants.DefaultAuthorName)

// HighlightAuthor highlights the default author name in authors.
func HighlightAuthor(authors string) []*Node {
	return defaultHighlighter.Highlight(authors)
}

// Name returns the highlighted name.
func (h *Highlighter) Name() string {
	return h.name
}

// Highlight splits authors into text nodes and highlight spans. Text outside
// the matches is kept byte for byte.
func (h *Highlighter) Highlight(authors string) []*Node {
	if h.name == "" {
		return []*Node{Text(authors)}
	}

	var nodes []*Node
	last := 0
	for _, m := range h.pattern.FindAllStringIndex(authors, -1) {
		if m[0] > last {
			nodes = append(nodes, Text(authors[last:m[0]]))
		}
		span := El("span", HighlightClass)
		span.Text = authors[m[0]:m[1]]
		nodes = append(nodes, span)
		last = m[1]
	}
	if last < len(authors) {
		nodes = append(nodes, Text(authors[last:]))
	}
	return nodes
}
