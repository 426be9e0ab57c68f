// Package dom provides helpers for building and manipulating headless HTML
// node trees on top of golang.org/x/net/html.
package dom

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// El creates an element node with the given tag, applies the attribute map,
// and runs each initializer against the new node in order. No validation is
// performed on the tag name or attribute values.
func El(tag string, attrs map[string]string, inits ...func(*html.Node)) *html.Node {
	n := &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}

	for k, v := range attrs {
		SetAttr(n, k, v)
	}

	for _, init := range inits {
		init(n)
	}

	return n
}

// Attr returns the value of the named attribute, or "" if unset.
func Attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// SetAttr sets the named attribute, replacing any existing value.
func SetAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// Contains reports whether ancestor appears in n's parent chain. A node is
// not considered to contain itself.
func Contains(n, ancestor *html.Node) bool {
	if n == nil || ancestor == nil {
		return false
	}
	for p := n.Parent; p != nil; p = p.Parent {
		if p == ancestor {
			return true
		}
	}
	return false
}

// Detach removes n from its parent, if it has one.
func Detach(n *html.Node) {
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

// Append detaches child from any current parent and appends it as parent's
// last child.
func Append(parent, child *html.Node) {
	Detach(child)
	parent.AppendChild(child)
}

// PrependChild detaches child from any current parent and inserts it as
// parent's first child.
func PrependChild(parent, child *html.Node) {
	Detach(child)
	if parent.FirstChild != nil {
		parent.InsertBefore(child, parent.FirstChild)
		return
	}
	parent.AppendChild(child)
}

// ElementChildren returns n's direct element children in document order.
func ElementChildren(n *html.Node) []*html.Node {
	var children []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			children = append(children, c)
		}
	}
	return children
}

// SetText replaces n's children with a single text node holding s.
func SetText(n *html.Node, s string) {
	removeChildren(n)
	n.AppendChild(&html.Node{Type: html.TextNode, Data: s})
}

// SetInnerHTML parses markup as a fragment in the context of n and replaces
// n's children with the parsed nodes.
func SetInnerHTML(n *html.Node, markup string) error {
	nodes, err := html.ParseFragment(strings.NewReader(markup), n)
	if err != nil {
		return fmt.Errorf("parse fragment: %w", err)
	}

	removeChildren(n)
	for _, c := range nodes {
		n.AppendChild(c)
	}
	return nil
}

// Text returns the concatenated text content of n and its descendants.
func Text(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

// NewDocument builds a minimal document tree: doctype, html, head, and an
// empty body.
func NewDocument() *html.Node {
	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	root := El("html", nil)
	root.AppendChild(El("head", nil))
	root.AppendChild(El("body", nil))
	doc.AppendChild(root)

	return doc
}

// ParseDocument parses a full HTML document from r.
func ParseDocument(r io.Reader) (*html.Node, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	return doc, nil
}

// Body returns the document's body element, or nil if none exists.
func Body(doc *html.Node) *html.Node {
	return Find(doc, "body")
}

// Find returns the first descendant element with the given tag, searching in
// document order. Returns nil if no match exists.
func Find(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := Find(c, tag); found != nil {
			return found
		}
	}
	return nil
}

// Render serializes n to w as HTML.
func Render(w io.Writer, n *html.Node) error {
	return html.Render(w, n)
}

// RenderString serializes n to an HTML string.
func RenderString(n *html.Node) (string, error) {
	var sb strings.Builder
	if err := html.Render(&sb, n); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func removeChildren(n *html.Node) {
	for n.FirstChild != nil {
		n.RemoveChild(n.FirstChild)
	}
}
