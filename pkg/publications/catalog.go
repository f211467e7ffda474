package publications

import (
	"context"
	"fmt"
	"strings"

	"github.com/anxiangsir/homepage/pkg/errors"
	"github.com/anxiangsir/homepage/pkg/logging"
)

// SelectedList is the ordered list of titles featured on the index page.
type SelectedList []string

// Catalog is an immutable, title-indexed collection of publication records.
type Catalog struct {
	records []Record
	byTitle map[string]int
}

// NewCatalog builds a catalog from records in their given order. Records with
// an empty title are invalid, and two records sharing a title are rejected
// with an *errors.DuplicateError naming every duplicated title.
func NewCatalog(records []Record) (*Catalog, error) {
	c := &Catalog{
		records: make([]Record, len(records)),
		byTitle: make(map[string]int, len(records)),
	}
	copy(c.records, records)

	var dups []string
	seen := make(map[string]bool)
	for i, r := range c.records {
		if strings.TrimSpace(r.Title) == "" {
			return nil, errors.NewValidationError("title", i, fmt.Sprintf("publication at index %d has no title", i))
		}
		if _, ok := c.byTitle[r.Title]; ok {
			if !seen[r.Title] {
				dups = append(dups, r.Title)
				seen[r.Title] = true
			}
			continue
		}
		c.byTitle[r.Title] = i
	}
	if len(dups) > 0 {
		return nil, errors.NewDuplicateError("publication titles", dups)
	}
	return c, nil
}

// Len returns the number of records.
func (c *Catalog) Len() int {
	return len(c.records)
}

// Records returns the records in catalog order.
func (c *Catalog) Records() []Record {
	out := make([]Record, len(c.records))
	copy(out, c.records)
	return out
}

// Lookup returns the record with the exact title.
func (c *Catalog) Lookup(title string) (Record, bool) {
	i, ok := c.byTitle[title]
	if !ok {
		return Record{}, false
	}
	return c.records[i], true
}

// Select returns the records named by list, in list order. Titles absent from
// the catalog are skipped with a warning and returned as missing.
func (c *Catalog) Select(ctx context.Context, list SelectedList) (selected []Record, missing []string) {
	logger := logging.FromContext(ctx)
	selected = make([]Record, 0, len(list))
	for _, title := range list {
		r, ok := c.Lookup(title)
		if !ok {
			logger.Warn().Str("title", title).Msg("Selected publication not found in catalog")
			missing = append(missing, title)
			continue
		}
		selected = append(selected, r)
	}
	return selected, missing
}
