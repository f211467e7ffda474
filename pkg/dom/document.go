// Package dom applies render plans and star counts to parsed HTML documents.
// A Document is safe for concurrent use.
package dom

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"

	"github.com/anxiangsir/homepage/pkg/errors"
	"github.com/anxiangsir/homepage/pkg/logging"
	"github.com/anxiangsir/homepage/pkg/render"
)

// Document is a parsed HTML page.
type Document struct {
	mu        sync.RWMutex
	root      *html.Node
	selectors map[string]cascadia.Sel
}

// Parse parses an HTML document.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, errors.WrapParse("html", "", err)
	}
	return &Document{root: root, selectors: make(map[string]cascadia.Sel)}, nil
}

// ParseString parses an HTML document held in s.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

func (d *Document) compile(selector string) (cascadia.Sel, error) {
	if sel, ok := d.selectors[selector]; ok {
		return sel, nil
	}
	sel, err := cascadia.Parse(selector)
	if err != nil {
		return nil, errors.NewValidationError("selector", selector, err.Error())
	}
	d.selectors[selector] = sel
	return sel, nil
}

// query must be called with d.mu held for writing, since it may populate
// the selector cache.
func (d *Document) query(selector string) ([]*html.Node, error) {
	sel, err := d.compile(selector)
	if err != nil {
		return nil, err
	}
	return cascadia.QueryAll(d.root, sel), nil
}

// Query returns every element matching selector in document order.
func (d *Document) Query(selector string) ([]*html.Node, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.query(selector)
}

// Exists reports whether any element matches selector. Invalid selectors
// match nothing.
func (d *Document) Exists(selector string) bool {
	nodes, err := d.Query(selector)
	return err == nil && len(nodes) > 0
}

// Text returns the text content of the first element matching selector.
func (d *Document) Text(selector string) string {
	d.mu.Lock()
	defer d.mu.Unlock()
	nodes, err := d.query(selector)
	if err != nil || len(nodes) == 0 {
		return ""
	}
	return textContent(nodes[0])
}

// SetText replaces the children of every element matching selector with a
// single text node and returns the number of elements changed.
func (d *Document) SetText(selector, text string) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	nodes, err := d.query(selector)
	if err != nil {
		return 0, err
	}
	for _, n := range nodes {
		clearChildren(n)
		n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	}
	return len(nodes), nil
}

// Apply writes plan into the first container that exists, replacing its
// content. A document without any of the plan's containers is left untouched
// and an *errors.NotFoundError is returned.
func (d *Document) Apply(ctx context.Context, plan render.Plan) error {
	logger := logging.FromContext(ctx)

	d.mu.Lock()
	defer d.mu.Unlock()

	var container *html.Node
	var matched string
	for _, selector := range plan.Containers {
		nodes, err := d.query(selector)
		if err != nil {
			logger.Warn().Err(err).Str("selector", selector).Msg("Skipping invalid container selector")
			continue
		}
		if len(nodes) > 0 {
			container, matched = nodes[0], selector
			break
		}
	}
	if container == nil {
		err := errors.NewNotFoundError("publications list element", strings.Join(plan.Containers, ", "))
		logger.Error().Err(err).Msg("Publications list element not found")
		return err
	}

	clearChildren(container)
	for _, n := range plan.Nodes {
		container.AppendChild(n.HTML())
	}
	logger.Debug().
		Str("container", matched).
		Int("nodes", len(plan.Nodes)).
		Bool("placeholder", plan.Failed()).
		Msg("Applied publication plan")
	return nil
}

// Render writes the document as HTML.
func (d *Document) Render(w io.Writer) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if err := html.Render(w, d.root); err != nil {
		return errors.WrapIO("write", "html", err)
	}
	return nil
}

// String renders the document to a string.
func (d *Document) String() string {
	var buf bytes.Buffer
	_ = d.Render(&buf)
	return buf.String()
}

func clearChildren(n *html.Node) {
	for c := n.FirstChild; c != nil; c = n.FirstChild {
		n.RemoveChild(c)
	}
}

func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(m *html.Node) {
		if m.Type == html.TextNode {
			b.WriteString(m.Data)
		}
		for c := m.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}
