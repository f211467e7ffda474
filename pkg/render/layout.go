package render

import (
	"github.com/anxiangsir/homepage/pkg/errors"
	"github.com/anxiangsir/homepage/pkg/publications"
)

// Layout selects the markup of a rendered entry.
type Layout int

// Layouts.
const (
	// LayoutCompact is the index page card: preview image, title, authors
	// and a badge row holding the links and the venue.
	LayoutCompact Layout = iota
	// LayoutList is the full list page item with one block per field.
	LayoutList
)

// String implements fmt.Stringer.
func (l Layout) String() string {
	if l == LayoutList {
		return "list"
	}
	return "compact"
}

// ParseLayout parses the String form of a Layout.
func ParseLayout(s string) (Layout, error) {
	switch s {
	case "compact":
		return LayoutCompact, nil
	case "list":
		return LayoutList, nil
	}
	return LayoutCompact, errors.NewValidationError("layout", s, "must be compact or list")
}

// DefaultLayout returns the layout a page mode uses unless configured.
func DefaultLayout(mode PageMode) Layout {
	if mode == ModeFullCatalog {
		return LayoutList
	}
	return LayoutCompact
}

// Class names of rendered entries.
const (
	ClassEntry   = "publication-entry"
	ClassContent = "pub-content"
	ClassItem    = "pub-item"
	ClassTitle   = "pub-title"
	ClassAuthors = "pub-authors"
	ClassVenue   = "pub-venue"
	ClassBadges  = "link-badges"
	ClassLinks   = "pub-links"
	ClassLink    = "badge-link"
	ClassError   = "pub-error"
)

// PlaceholderText is shown in place of a list that failed to load.
const PlaceholderText = "Failed to load publications. Please try again later."

// Entry renders one record as a list item.
func Entry(r publications.Record, layout Layout, hl *Highlighter) *Node {
	if layout == LayoutList {
		return listEntry(r, hl)
	}
	return compactEntry(r, hl)
}

func compactEntry(r publications.Record, hl *Highlighter) *Node {
	entry := El("div", ClassEntry)
	if r.PreviewImage != "" {
		entry.Children = append(entry.Children, &Node{
			Tag: "img",
			Attrs: []Attr{
				{Key: "src", Val: r.PreviewImage},
				{Key: "alt", Val: "Paper Preview"},
				{Key: "loading", Val: "lazy"},
			},
		})
	}

	badges := El("div", ClassBadges, links(r)...)
	badges.Children = append(badges.Children, textEl("span", ClassVenue, r.Venue))

	entry.Children = append(entry.Children, El("div", ClassContent,
		textEl("span", ClassTitle, r.Title),
		El("span", ClassAuthors, hl.Highlight(r.Authors)...),
		badges,
	))
	return El("li", "", entry)
}

func listEntry(r publications.Record, hl *Highlighter) *Node {
	item := El("li", ClassItem,
		textEl("div", ClassTitle, r.Title),
		El("div", ClassAuthors, hl.Highlight(r.Authors)...),
		textEl("div", ClassVenue, r.Venue),
	)
	if l := links(r); len(l) > 0 {
		item.Children = append(item.Children, El("div", ClassLinks, l...))
	}
	return item
}

// links renders the record's links. They open in a new browsing context with
// no opener and no referrer.
func links(r publications.Record) []*Node {
	var out []*Node
	for _, l := range r.Links() {
		a := &Node{
			Tag: "a",
			Attrs: []Attr{
				{Key: "href", Val: l.URL},
				{Key: "class", Val: ClassLink},
				{Key: "target", Val: "_blank"},
				{Key: "rel", Val: "noopener noreferrer"},
			},
			Text: l.Name,
		}
		out = append(out, a)
	}
	return out
}

// Placeholder is the single node shown when the data failed to load.
func Placeholder() *Node {
	return textEl("li", ClassError, PlaceholderText)
}

func textEl(tag, class, text string) *Node {
	n := El(tag, class)
	n.Text = text
	return n
}
