package docs

import (
	"io"
	"strings"

	md "github.com/nao1215/markdown"
)

// MarkdownBuilder wraps the markdown package with the helpers the
// publication export needs.
type MarkdownBuilder struct {
	md        *md.Markdown
	writer    io.Writer
	buffer    *strings.Builder
	useBuffer bool
}

// NewMarkdownBuilder creates a new markdown builder
func NewMarkdownBuilder(w io.Writer) *MarkdownBuilder {
	return &MarkdownBuilder{
		md:     md.NewMarkdown(w),
		writer: w,
	}
}

// NewMarkdownBuilderBuffer creates a new markdown builder with internal buffer
func NewMarkdownBuilderBuffer() *MarkdownBuilder {
	buffer := &strings.Builder{}
	return &MarkdownBuilder{
		md:        md.NewMarkdown(buffer),
		writer:    buffer,
		buffer:    buffer,
		useBuffer: true,
	}
}

// String returns the buffered content
func (m *MarkdownBuilder) String() string {
	if m.useBuffer && m.buffer != nil {
		return m.buffer.String()
	}
	return ""
}

// H1 creates a level 1 header
func (m *MarkdownBuilder) H1(text string) *MarkdownBuilder {
	m.md.H1(text)
	return m
}

// H2 creates a level 2 header
func (m *MarkdownBuilder) H2(text string) *MarkdownBuilder {
	m.md.H2(text)
	return m
}

// PlainText adds plain text
func (m *MarkdownBuilder) PlainText(text string) *MarkdownBuilder {
	m.md.PlainText(text)
	return m
}

// LF adds a line feed
func (m *MarkdownBuilder) LF() *MarkdownBuilder {
	m.md.LF()
	return m
}

// BulletList creates a bullet list
func (m *MarkdownBuilder) BulletList(items ...string) *MarkdownBuilder {
	m.md.BulletList(items...)
	return m
}

// OrderedList creates an ordered list
func (m *MarkdownBuilder) OrderedList(items ...string) *MarkdownBuilder {
	m.md.OrderedList(items...)
	return m
}

// Table adds a table
func (m *MarkdownBuilder) Table(table md.TableSet) *MarkdownBuilder {
	m.md.Table(table)
	return m
}

// HorizontalRule adds a horizontal rule
func (m *MarkdownBuilder) HorizontalRule() *MarkdownBuilder {
	m.md.HorizontalRule()
	return m
}

// CountText adds formatted count text
func (m *MarkdownBuilder) CountText(count int, singular, plural string) *MarkdownBuilder {
	m.md.PlainText(buildCountText(count, singular, plural))
	return m
}

// Build writes the markdown to the writer
func (m *MarkdownBuilder) Build() error {
	return m.md.Build()
}
