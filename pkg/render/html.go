package render

import (
	"bytes"
	"io"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// HTML converts n into an x/net/html node tree.
func (n *Node) HTML() *html.Node {
	if n.IsText() {
		return &html.Node{Type: html.TextNode, Data: n.Text}
	}
	out := &html.Node{
		Type:     html.ElementNode,
		Data:     n.Tag,
		DataAtom: atom.Lookup([]byte(n.Tag)),
	}
	for _, a := range n.Attrs {
		out.Attr = append(out.Attr, html.Attribute{Key: a.Key, Val: a.Val})
	}
	if n.Text != "" {
		out.AppendChild(&html.Node{Type: html.TextNode, Data: n.Text})
	}
	for _, c := range n.Children {
		out.AppendChild(c.HTML())
	}
	return out
}

// WriteHTML renders nodes as an HTML fragment.
func WriteHTML(w io.Writer, nodes []*Node) error {
	for _, n := range nodes {
		if err := html.Render(w, n.HTML()); err != nil {
			return err
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	return nil
}

// Fragment renders the plan's nodes wrapped in a ul.pub-list.
func (p Plan) Fragment() (string, error) {
	var buf bytes.Buffer
	ul := El("ul", "pub-list", p.Nodes...)
	if err := html.Render(&buf, ul.HTML()); err != nil {
		return "", err
	}
	return buf.String(), nil
}
