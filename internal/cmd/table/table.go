// Package table converts command results into rows for table output.
package table

import (
	"strconv"
	"strings"

	"github.com/anxiangsir/homepage/internal/cmd/emoji"
	"github.com/anxiangsir/homepage/pkg/publications"
	"github.com/anxiangsir/homepage/pkg/stars"
)

// Align represents column alignment in tables.
type Align int

const (
	// AlignDefault uses the default alignment (skip).
	AlignDefault Align = iota
	// AlignLeft aligns content to the left.
	AlignLeft
	// AlignCenter centers content.
	AlignCenter
	// AlignRight aligns content to the right.
	AlignRight
)

// Data represents table formatting data to avoid import cycles.
type Data struct {
	Headers         []string
	Rows            [][]string
	ColumnAlignment []Align // Optional: column alignment
}

// StarsToTableData converts star results to table format.
func StarsToTableData(results []stars.Result) Data {
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		count := "-"
		status := emoji.Error
		if r.OK {
			count = stars.FormatCount(r.Count)
			status = emoji.Success
		}
		rows = append(rows, []string{r.Repo.FullName(), r.Repo.Selector, count, status})
	}
	return Data{
		Headers:         []string{"Repository", "Selector", "Stars", "OK"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignLeft, AlignRight, AlignCenter},
	}
}

// PublicationsToTableData converts records to table format. Wide output adds
// the authors and link names.
func PublicationsToTableData(records []publications.Record, wide bool) Data {
	headers := []string{"#", "Title", "Venue"}
	if wide {
		headers = append(headers, "Authors", "Links")
	}

	rows := make([][]string, 0, len(records))
	for i, r := range records {
		row := []string{strconv.Itoa(i + 1), Truncate(r.Title, 60), dash(r.Venue)}
		if wide {
			row = append(row, dash(r.Authors), dash(LinkNames(r.Links())))
		}
		rows = append(rows, row)
	}
	return Data{Headers: headers, Rows: rows}
}

// Page summarises one rendered page.
type Page struct {
	Page        string
	Mode        string
	Entries     int
	Missing     int
	StarTargets int
	Error       string
}

// PagesToTableData converts page summaries to table format.
func PagesToTableData(pages []Page) Data {
	rows := make([][]string, 0, len(pages))
	for _, p := range pages {
		status := emoji.Success
		if p.Error != "" {
			status = emoji.Error + " " + p.Error
		}
		rows = append(rows, []string{
			p.Page,
			p.Mode,
			strconv.Itoa(p.Entries),
			strconv.Itoa(p.Missing),
			strconv.Itoa(p.StarTargets),
			status,
		})
	}
	return Data{
		Headers:         []string{"Page", "Mode", "Entries", "Missing", "Stars", "Status"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignLeft, AlignRight, AlignRight, AlignRight, AlignLeft},
	}
}

// Finding is one validation result.
type Finding struct {
	Check   string
	OK      bool
	Message string
}

// FindingsToTableData converts validation findings to table format.
func FindingsToTableData(findings []Finding) Data {
	rows := make([][]string, 0, len(findings))
	for _, f := range findings {
		status := emoji.Success
		if !f.OK {
			status = emoji.Error
		}
		rows = append(rows, []string{status, f.Check, f.Message})
	}
	return Data{Headers: []string{"", "Check", "Result"}, Rows: rows}
}

// LinkNames joins link names with commas.
func LinkNames(links []publications.Link) string {
	names := make([]string, 0, len(links))
	for _, l := range links {
		names = append(names, l.Name)
	}
	return strings.Join(names, ", ")
}

// Truncate shortens s to max runes, marking the cut with an ellipsis.
func Truncate(s string, max int) string {
	r := []rune(s)
	if max <= 0 || len(r) <= max {
		return s
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
