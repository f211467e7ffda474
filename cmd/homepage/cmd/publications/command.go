// Package publications provides the command that renders a publication list
// outside of any page.
package publications

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/anxiangsir/homepage/cmd/application"
	"github.com/anxiangsir/homepage/internal/cmd/output"
	"github.com/anxiangsir/homepage/internal/cmd/table"
	"github.com/anxiangsir/homepage/pkg/errors"
	"github.com/anxiangsir/homepage/pkg/publications"
	"github.com/anxiangsir/homepage/pkg/render"
)

// Listing is the rendered list in structured form.
type Listing struct {
	Mode    string                `json:"mode" yaml:"mode"`
	Entries []publications.Record `json:"entries" yaml:"entries"`
	Missing []string              `json:"missing,omitempty" yaml:"missing,omitempty"`
}

// NewCommand creates the publications command using app context.
func NewCommand(app application.Application) *cobra.Command {
	var (
		modeName string
		html     bool
	)

	cmd := &cobra.Command{
		Use:     "publications",
		Aliases: []string{"pubs"},
		GroupID: "data",
		Short:   "Render the selected or full publication list",
		Long: `Render a publication list the way the pages show it: "selected" joins the
selected titles with the catalog in selected order, "full" lists the whole
catalog in catalog order. Titles that are not in the catalog are reported.

With --html the list is printed as the HTML fragment a page would receive.`,
		Example: `  homepage publications
  homepage publications --mode full -o wide
  homepage publications --html > fragment.html`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			mode, err := render.ParseMode(modeName)
			if err != nil {
				return err
			}
			if mode == render.ModeNone {
				mode = render.ModeSelectedList
			}

			plan, _ := app.Renderer(mode).Load(cmd.Context())
			if plan.Failed() {
				return errors.WrapResource("render", "publications", mode.String(), plan.Err)
			}

			if html {
				return writeFragment(cmd.OutOrStdout(), plan)
			}

			listing := Listing{Mode: mode.String(), Entries: Entries(plan), Missing: plan.Missing}
			format := output.Format(app.OutputFormat())
			return output.Write(cmd.OutOrStdout(), format, listing, func() table.Data {
				return table.PublicationsToTableData(listing.Entries, format == output.FormatWide)
			})
		},
	}

	cmd.Flags().StringVarP(&modeName, "mode", "m", "selected", "list to render: selected or full")
	cmd.Flags().BoolVar(&html, "html", false, "print the rendered HTML fragment")

	return cmd
}

func writeFragment(w io.Writer, plan render.Plan) error {
	fragment, err := plan.Fragment()
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, fragment+"\n")
	return err
}

// Entries reads the rendered fields back out of the plan's nodes. Links are
// returned as media links in display order.
func Entries(plan render.Plan) []publications.Record {
	out := make([]publications.Record, 0, len(plan.Nodes))
	for _, n := range plan.Nodes {
		var r publications.Record
		if t := n.Find("", render.ClassTitle); len(t) > 0 {
			r.Title = t[0].TextContent()
		}
		if a := n.Find("", render.ClassAuthors); len(a) > 0 {
			r.Authors = a[0].TextContent()
		}
		if v := n.Find("", render.ClassVenue); len(v) > 0 {
			r.Venue = v[0].TextContent()
		}
		for _, a := range n.Find("a", "") {
			href, _ := a.Attr("href")
			r.MediaLinks = append(r.MediaLinks, publications.Link{Name: a.TextContent(), URL: href})
		}
		out = append(out, r)
	}
	return out
}
