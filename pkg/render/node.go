// Package render turns publication data into node descriptors. Rendering is
// pure: a Plan names the container to fill and the nodes to put in it, and a
// DOM adapter (see pkg/dom) applies it to a document.
package render

// Attr is an element attribute.
type Attr struct {
	Key string
	Val string
}

// Node describes one DOM node. A Node with an empty Tag is a text node.
type Node struct {
	Tag      string
	Attrs    []Attr
	Text     string
	Children []*Node
}

// Text returns a text node.
func Text(s string) *Node {
	return &Node{Text: s}
}

// El returns an element node with the given class (if any) and children.
func El(tag, class string, children ...*Node) *Node {
	n := &Node{Tag: tag, Children: children}
	if class != "" {
		n.Attrs = append(n.Attrs, Attr{Key: "class", Val: class})
	}
	return n
}

// IsText reports whether n is a text node.
func (n *Node) IsText() bool {
	return n.Tag == ""
}

// Attr returns the value of the named attribute.
func (n *Node) Attr(key string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// Class returns the class attribute.
func (n *Node) Class() string {
	v, _ := n.Attr("class")
	return v
}

// TextContent concatenates the text of n and all of its descendants.
func (n *Node) TextContent() string {
	s := n.Text
	for _, c := range n.Children {
		s += c.TextContent()
	}
	return s
}

// Find returns every descendant of n (n included) whose tag and class match.
// An empty tag or class matches anything.
func (n *Node) Find(tag, class string) []*Node {
	var out []*Node
	var walk func(*Node)
	walk = func(m *Node) {
		if !m.IsText() && (tag == "" || m.Tag == tag) && (class == "" || m.Class() == class) {
			out = append(out, m)
		}
		for _, c := range m.Children {
			walk(c)
		}
	}
	walk(n)
	return out
}
