package inject

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Document is the mutation capability the engine needs from a live page.
// Nodes are x/net/html nodes so implementations can share tree handling.
type Document interface {
	Head() *html.Node
	Body() *html.Node
	// ParseFragment parses code as HTML in the context of the given element.
	// Returned nodes are detached.
	ParseFragment(context *html.Node, code string) ([]*html.Node, error)
	// CreateElement constructs a new, detached element.
	CreateElement(tag string) *html.Node
	// Insert attaches child as the first or last child of parent.
	Insert(parent, child *html.Node, pos Position)
	// Replace swaps old for replacement in old's parent.
	Replace(old, replacement *html.Node)
	Remove(n *html.Node)
	// ElementByID finds an element anywhere in the document.
	ElementByID(id string) *html.Node
	// Tagged returns elements under root carrying the injection tag for id.
	Tagged(root *html.Node, id string) []*html.Node
}

// HTMLDocument is a Document over a parsed page tree.
type HTMLDocument struct {
	root *html.Node
	head *html.Node
	body *html.Node
}

// ParseDocument parses a full HTML page.
func ParseDocument(r io.Reader) (*HTMLDocument, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}
	return NewHTMLDocument(root), nil
}

// NewHTMLDocument wraps an already parsed tree. The HTML parser always
// synthesizes <head> and <body>, so both are present for parsed pages.
func NewHTMLDocument(root *html.Node) *HTMLDocument {
	d := &HTMLDocument{root: root}
	walk(root, func(n *html.Node) bool {
		if n.Type == html.ElementNode {
			switch n.DataAtom {
			case atom.Head:
				if d.head == nil {
					d.head = n
				}
			case atom.Body:
				if d.body == nil {
					d.body = n
				}
			}
		}
		return d.head == nil || d.body == nil
	})
	return d
}

// Root returns the document node.
func (d *HTMLDocument) Root() *html.Node { return d.root }

func (d *HTMLDocument) Head() *html.Node { return d.head }
func (d *HTMLDocument) Body() *html.Node { return d.body }

func (d *HTMLDocument) ParseFragment(context *html.Node, code string) ([]*html.Node, error) {
	return html.ParseFragment(strings.NewReader(code), context)
}

func (d *HTMLDocument) CreateElement(tag string) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
}

func (d *HTMLDocument) Insert(parent, child *html.Node, pos Position) {
	if child.Parent != nil {
		child.Parent.RemoveChild(child)
	}
	if pos == PositionStart && parent.FirstChild != nil {
		parent.InsertBefore(child, parent.FirstChild)
		return
	}
	parent.AppendChild(child)
}

func (d *HTMLDocument) Replace(old, replacement *html.Node) {
	parent := old.Parent
	if parent == nil {
		return
	}
	if replacement.Parent != nil {
		replacement.Parent.RemoveChild(replacement)
	}
	parent.InsertBefore(replacement, old)
	parent.RemoveChild(old)
}

func (d *HTMLDocument) Remove(n *html.Node) {
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

func (d *HTMLDocument) ElementByID(id string) *html.Node {
	var found *html.Node
	walk(d.root, func(n *html.Node) bool {
		if n.Type == html.ElementNode && attr(n, "id") == id {
			found = n
			return false
		}
		return true
	})
	return found
}

func (d *HTMLDocument) Tagged(root *html.Node, id string) []*html.Node {
	var out []*html.Node
	walk(root, func(n *html.Node) bool {
		if n.Type == html.ElementNode && attr(n, AttrInjectedID) == id {
			out = append(out, n)
		}
		return true
	})
	return out
}

// Render serializes the document.
func (d *HTMLDocument) Render(w io.Writer) error {
	return html.Render(w, d.root)
}

// String renders the document, for logging and tests.
func (d *HTMLDocument) String() string {
	var buf bytes.Buffer
	_ = d.Render(&buf)
	return buf.String()
}

// walk visits n and its descendants depth-first until fn returns false.
func walk(n *html.Node, fn func(*html.Node) bool) bool {
	if !fn(n) {
		return false
	}
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		if !walk(c, fn) {
			return false
		}
		c = next
	}
	return true
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val
		}
	}
	return ""
}

func setAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

func isScript(n *html.Node) bool {
	return n.Type == html.ElementNode && n.DataAtom == atom.Script
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	walk(n, func(c *html.Node) bool {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
		}
		return true
	})
	return sb.String()
}
