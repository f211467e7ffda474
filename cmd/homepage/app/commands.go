package app

import (
	"github.com/spf13/cobra"

	"github.com/anxiangsir/homepage/cmd/homepage/cmd/export"
	"github.com/anxiangsir/homepage/cmd/homepage/cmd/publications"
	"github.com/anxiangsir/homepage/cmd/homepage/cmd/render"
	"github.com/anxiangsir/homepage/cmd/homepage/cmd/serve"
	"github.com/anxiangsir/homepage/cmd/homepage/cmd/stars"
	"github.com/anxiangsir/homepage/cmd/homepage/cmd/validate"
)

func (a *App) commands() []*cobra.Command {
	return []*cobra.Command{
		// Core commands
		render.NewCommand(a),
		serve.NewCommand(a),

		// Data commands
		stars.NewCommand(a),
		publications.NewCommand(a),
		validate.NewCommand(a),
		export.NewCommand(a),

		a.newVersionCommand(),
	}
}

func (a *App) newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("homepage %s\n", a.version)
			if a.config.Verbose {
				cmd.Printf("  commit:   %s\n", a.commit)
				cmd.Printf("  built:    %s\n", a.date)
				cmd.Printf("  built by: %s\n", a.builtBy)
			}
		},
	}
}
