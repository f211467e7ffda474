// Package render provides the command that renders the site's pages.
package render

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/anxiangsir/homepage/cmd/application"
	"github.com/anxiangsir/homepage/internal/cmd/output"
	"github.com/anxiangsir/homepage/internal/cmd/table"
	"github.com/anxiangsir/homepage/internal/site"
	"github.com/anxiangsir/homepage/pkg/stars"
)

// NewCommand creates the render command using app context.
func NewCommand(app application.Application) *cobra.Command {
	var (
		outDir      string
		pages       []string
		concurrency int
		noStars     bool
	)

	cmd := &cobra.Command{
		Use:     "render",
		GroupID: "core",
		Short:   "Render publication lists and star counts into the pages",
		Long: `Render reads each HTML page of the site directory, decides from its markup
whether it hosts the selected publications or the full list, fills the list
from the publication data files and writes GitHub star counts into the
elements that show them. The rendered pages go to the output directory.

A page that fails to render is reported and does not stop the others.`,
		Example: `  # Render the configured pages into _site
  homepage render

  # Render in place
  homepage render --site-dir . --out-dir .

  # Render one page without contacting GitHub
  homepage render --page index.html --no-stars`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := app.Config()
			if !cmd.Flags().Changed("out-dir") {
				outDir = cfg.OutDir
			}
			if !cmd.Flags().Changed("page") {
				pages = cfg.Pages
			}

			var loader *stars.Loader
			if !noStars {
				l, err := app.Stars()
				if err != nil {
					return err
				}
				loader = l
			}

			b := site.New(site.Config{
				SiteDir:     cfg.SiteDir,
				OutDir:      outDir,
				Pages:       pages,
				Concurrency: concurrency,
			}, app, loader)

			results, err := b.Build(cmd.Context())
			if err != nil {
				return err
			}

			format := output.Format(app.OutputFormat())
			if err := output.Write(cmd.OutOrStdout(), format, results, func() table.Data {
				return table.PagesToTableData(Summaries(results))
			}); err != nil {
				return err
			}
			return Failures(results)
		},
	}

	cmd.Flags().StringVar(&outDir, "out-dir", "", "directory receiving the rendered pages (default from config)")
	cmd.Flags().StringSliceVarP(&pages, "page", "p", nil, "page to render, relative to the site directory (repeatable)")
	cmd.Flags().IntVar(&concurrency, "concurrency", 4, "pages rendered at once")
	cmd.Flags().BoolVar(&noStars, "no-stars", false, "skip GitHub star counts")

	return cmd
}

// Summaries converts page results to table rows.
func Summaries(results []site.PageResult) []table.Page {
	out := make([]table.Page, 0, len(results))
	for _, r := range results {
		out = append(out, table.Page{
			Page:        r.Page,
			Mode:        r.ModeName,
			Entries:     r.Entries,
			Missing:     len(r.Missing),
			StarTargets: r.StarTargets,
			Error:       r.Error,
		})
	}
	return out
}

// Failures returns an error naming how many pages failed, or nil.
func Failures(results []site.PageResult) error {
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	if failed == 0 {
		return nil
	}
	return fmt.Errorf("%d of %d pages failed to render", failed, len(results))
}
