// Package validate provides the command that checks the site's data files.
package validate

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/anxiangsir/homepage/cmd/application"
	"github.com/anxiangsir/homepage/internal/cmd/output"
	"github.com/anxiangsir/homepage/internal/cmd/table"
	"github.com/anxiangsir/homepage/pkg/dom"
	"github.com/anxiangsir/homepage/pkg/publications"
	"github.com/anxiangsir/homepage/pkg/render"
)

// Report lists the outcome of every check.
type Report struct {
	Findings []Finding `json:"findings" yaml:"findings"`
}

// Finding is the outcome of one check.
type Finding struct {
	Check   string `json:"check" yaml:"check"`
	OK      bool   `json:"ok" yaml:"ok"`
	Message string `json:"message" yaml:"message"`
}

// Failed counts the failed findings.
func (r Report) Failed() int {
	n := 0
	for _, f := range r.Findings {
		if !f.OK {
			n++
		}
	}
	return n
}

func (r *Report) add(check string, err error, okMessage string) bool {
	if err != nil {
		r.Findings = append(r.Findings, Finding{Check: check, Message: err.Error()})
		return false
	}
	r.Findings = append(r.Findings, Finding{Check: check, OK: true, Message: okMessage})
	return true
}

// NewCommand creates the validate command using app context.
func NewCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "validate",
		GroupID: "data",
		Short:   "Validate the publication data, repositories and pages",
		Long: `Validate checks everything rendering depends on:

  - the catalog parses and has no duplicate or empty titles
  - the selected list parses and every title is in the catalog
  - the featured repositories are well formed
  - the configured pages exist and parse as HTML

The command exits with an error when any check fails, for use in CI.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			report := Run(cmd.Context(), app)

			format := output.Format(app.OutputFormat())
			if err := output.Write(cmd.OutOrStdout(), format, report, func() table.Data {
				return table.FindingsToTableData(findingRows(report))
			}); err != nil {
				return err
			}

			if failed := report.Failed(); failed > 0 {
				return fmt.Errorf("validation failed: %d of %d checks", failed, len(report.Findings))
			}
			return nil
		},
	}
}

// Run performs every check.
func Run(ctx context.Context, app application.Application) Report {
	cfg := app.Config()
	client := app.HTTPClient()
	var report Report

	catalog, err := publications.LoadCatalog(ctx, publications.OpenSource(cfg.CatalogURL, cfg.SiteDir, client))
	catalogOK := report.add("catalog", err, fmt.Sprintf("%d publications in %s", catalogLen(catalog), cfg.CatalogURL))

	list, err := publications.LoadSelected(ctx, publications.OpenSource(cfg.SelectedURL, cfg.SiteDir, client))
	if report.add("selected list", err, fmt.Sprintf("%d titles in %s", len(list), cfg.SelectedURL)) && catalogOK {
		_, missing := catalog.Select(ctx, list)
		var missingErr error
		if len(missing) > 0 {
			missingErr = fmt.Errorf("%d titles not in catalog: %q", len(missing), missing)
		}
		report.add("selected titles", missingErr, "every selected title is in the catalog")
	}

	loader, err := app.Stars()
	if loader != nil || err != nil {
		count := 0
		if loader != nil {
			count = len(loader.Repos())
		}
		report.add("repositories", err, fmt.Sprintf("%d repositories", count))
	}

	for _, page := range cfg.Pages {
		doc, err := parsePage(filepath.Join(cfg.SiteDir, page))
		mode := ""
		if doc != nil {
			mode = "mode " + render.ResolveMode(doc).String()
		}
		report.add("page "+page, err, mode)
	}

	return report
}

func catalogLen(c *publications.Catalog) int {
	if c == nil {
		return 0
	}
	return c.Len()
}

func parsePage(path string) (*dom.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return dom.Parse(f)
}

func findingRows(r Report) []table.Finding {
	rows := make([]table.Finding, 0, len(r.Findings))
	for _, f := range r.Findings {
		rows = append(rows, table.Finding{Check: f.Check, OK: f.OK, Message: f.Message})
	}
	return rows
}
