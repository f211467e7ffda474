// Package export provides the command that writes the publication list as
// Markdown.
package export

import (
	"github.com/spf13/cobra"

	"github.com/anxiangsir/homepage/cmd/application"
	"github.com/anxiangsir/homepage/internal/tools/docs"
	"github.com/anxiangsir/homepage/pkg/publications"
)

// NewCommand creates the export command using app context.
func NewCommand(app application.Application) *cobra.Command {
	var (
		outDir   string
		fileName string
		title    string
		stdout   bool
	)

	cmd := &cobra.Command{
		Use:     "export",
		GroupID: "data",
		Short:   "Export the publications as a Markdown document",
		Long: `Export writes the selected publications, the full catalog and a venue
summary as one Markdown document, with the author's name in bold. Titles of
the selected list that are not in the catalog are left out.`,
		Example: `  homepage export --out-dir docs
  homepage export --stdout > PUBLICATIONS.md`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			cfg := app.Config()
			client := app.HTTPClient()

			catalog, err := publications.LoadCatalog(ctx, publications.OpenSource(cfg.CatalogURL, cfg.SiteDir, client))
			if err != nil {
				return err
			}
			list, err := publications.LoadSelected(ctx, publications.OpenSource(cfg.SelectedURL, cfg.SiteDir, client))
			if err != nil {
				return err
			}
			selected, _ := catalog.Select(ctx, list)

			g := docs.New(
				docs.WithOutputDir(outDir),
				docs.WithFileName(fileName),
				docs.WithTitle(title),
				docs.WithAuthorName(cfg.AuthorName),
				docs.WithVerbose(cfg.Verbose),
			)
			if stdout {
				return g.Write(cmd.OutOrStdout(), catalog, selected)
			}

			path, err := g.Generate(ctx, catalog, selected)
			if err != nil {
				return err
			}
			cmd.Printf("Wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&outDir, "out-dir", ".", "directory receiving the document")
	cmd.Flags().StringVar(&fileName, "file", docs.DefaultFileName, "document file name")
	cmd.Flags().StringVar(&title, "title", docs.DefaultTitle, "document title")
	cmd.Flags().BoolVar(&stdout, "stdout", false, "print the document instead of writing a file")

	return cmd
}
