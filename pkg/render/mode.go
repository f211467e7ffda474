package render

import (
	"strings"

	"github.com/anxiangsir/homepage/pkg/errors"
)

// PageMode says which publication list a page hosts.
type PageMode int

// Page modes.
const (
	ModeNone PageMode = iota
	ModeSelectedList
	ModeFullCatalog
)

// String implements fmt.Stringer.
func (m PageMode) String() string {
	switch m {
	case ModeSelectedList:
		return "selected"
	case ModeFullCatalog:
		return "full"
	default:
		return "none"
	}
}

// ParseMode parses the String form of a PageMode. "auto" and "" parse as
// ModeNone, which callers treat as "resolve from the document".
func ParseMode(s string) (PageMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none", "auto":
		return ModeNone, nil
	case "selected":
		return ModeSelectedList, nil
	case "full", "all":
		return ModeFullCatalog, nil
	}
	return ModeNone, errors.NewValidationError("mode", s, "must be one of auto, selected, full")
}

// Selectors that identify each page variant.
const (
	SelectedMarker   = "#publications"
	FullHeader       = ".page-header h1"
	FullHeaderPhrase = "Publication Full List"
)

// Inspector is the read side of a document.
type Inspector interface {
	Exists(selector string) bool
	Text(selector string) string
}

// ResolveMode inspects a document once and returns the page mode it hosts.
func ResolveMode(doc Inspector) PageMode {
	switch {
	case doc.Exists(SelectedMarker):
		return ModeSelectedList
	case strings.Contains(doc.Text(FullHeader), FullHeaderPhrase):
		return ModeFullCatalog
	default:
		return ModeNone
	}
}

// DefaultContainers returns the list container selectors for mode, most
// specific first.
func DefaultContainers(mode PageMode) []string {
	switch mode {
	case ModeSelectedList:
		return []string{"#publications + .pub-list", "#selected-publications .pub-list", ".pub-list"}
	case ModeFullCatalog:
		return []string{".pub-list", "#publications-list"}
	default:
		return nil
	}
}
