package docs

// Common display constants used across documentation.
const (
	// Separator joins the parts of an entry line.
	Separator = " · "

	// DefaultFileName is the exported markdown file.
	DefaultFileName = "PUBLICATIONS.md"

	// DefaultTitle heads the exported document.
	DefaultTitle = "Publications"

	// UnknownVenue labels records without a venue in the venue table.
	UnknownVenue = "N/A"
)
