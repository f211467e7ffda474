// Package emoji provides symbol constants for CLI output.
package emoji

// Symbol constants for CLI output provide a consistent visual language across commands.
const (
	// Success represents successful completion of an operation.
	Success = "✓"

	// Error represents failures or missing data.
	Error = "✗"

	// Stop represents shutdowns.
	Stop = "✗"

	// Warning represents non-critical issues such as unresolved titles.
	Warning = "!"

	// Rocket announces a listening server.
	Rocket = "🚀"

	// Memo announces a written file.
	Memo = "📝"
)
