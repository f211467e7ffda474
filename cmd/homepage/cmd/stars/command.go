// Package stars provides the command that fetches GitHub star counts.
package stars

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/anxiangsir/homepage/cmd/application"
	"github.com/anxiangsir/homepage/internal/cmd/output"
	"github.com/anxiangsir/homepage/internal/cmd/table"
	"github.com/anxiangsir/homepage/pkg/errors"
	"github.com/anxiangsir/homepage/pkg/stars"
)

// NewCommand creates the stars command using app context.
func NewCommand(app application.Application) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:     "stars",
		GroupID: "data",
		Short:   "Fetch the star counts of the featured repositories",
		Long: `Fetch the GitHub star count of every featured repository, using the
configured policy (sequential with a delay between requests, or parallel).

A repository that cannot be fetched (missing, rate limited, network error)
is reported without a count. Set GITHUB_TOKEN to raise the API quota.`,
		Example: `  homepage stars
  STAR_POLICY=parallel homepage stars -o json
  homepage stars --strict`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			loader, err := app.Stars()
			if err != nil {
				return err
			}
			if loader == nil {
				return errors.NewConfigError("stars", "no star loader configured", nil)
			}

			results := loader.LoadAll(cmd.Context(), nil)

			format := output.Format(app.OutputFormat())
			if err := output.Write(cmd.OutOrStdout(), format, results, func() table.Data {
				return table.StarsToTableData(results)
			}); err != nil {
				return err
			}

			if failed := Failed(results); strict && failed > 0 {
				return fmt.Errorf("%d of %d repositories could not be fetched", failed, len(results))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "exit with an error when any repository fails")

	return cmd
}

// Failed counts results without a star count.
func Failed(results []stars.Result) int {
	n := 0
	for _, r := range results {
		if !r.OK {
			n++
		}
	}
	return n
}
