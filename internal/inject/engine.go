// Package inject reconciles operator-supplied header, body and footer code
// into a page. Each injection point is cleared before it is refilled, so
// applying the same code any number of times leaves one copy in the page,
// and every script is rebuilt as a fresh element so it executes.
package inject

import (
	"io"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/net/html"

	"github.com/redwireai/storefront/internal/content"
)

// AttrInjectedID tags every node the engine inserts with its point id.
const AttrInjectedID = "data-injected-id"

// Region is the document section a point writes into.
type Region int

const (
	RegionHead Region = iota
	RegionBody
)

// Position is where inside the region new content lands.
type Position int

const (
	PositionEnd Position = iota
	PositionStart
)

// Point is one named injection target.
type Point struct {
	ID       string
	Region   Region
	Position Position
}

var (
	HeaderPoint = Point{ID: "custom-header-code", Region: RegionHead, Position: PositionEnd}
	BodyPoint   = Point{ID: "custom-body-code", Region: RegionBody, Position: PositionStart}
	FooterPoint = Point{ID: "custom-footer-code", Region: RegionBody, Position: PositionEnd}
)

// Points lists the injection points in reconciliation order.
func Points() []Point {
	return []Point{HeaderPoint, BodyPoint, FooterPoint}
}

// Engine applies code blobs to documents. Reconciliation of a point is
// serialized: a cleanup and the insert that follows it never interleave
// with another reconciliation.
type Engine struct {
	mu     sync.Mutex
	logger zerolog.Logger
}

// NewEngine creates an Engine.
func NewEngine(logger zerolog.Logger) *Engine {
	return &Engine{logger: logger.With().Str("component", "inject").Logger()}
}

// Sync reconciles all three points against blobs.
func (e *Engine) Sync(doc Document, blobs content.CodeBlobs) {
	e.Inject(doc, HeaderPoint, blobs.Header)
	e.Inject(doc, BodyPoint, blobs.Body)
	e.Inject(doc, FooterPoint, blobs.Footer)
}

// Inject removes everything previously inserted for p and, when code is
// non-empty, inserts code at p. Unparseable code leaves the point empty.
func (e *Engine) Inject(doc Document, p Point, code string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	target := regionNode(doc, p.Region)
	if target == nil {
		e.logger.Warn().Str("point", p.ID).Msg("document has no target region")
		return
	}

	e.clear(doc, target, p)

	if strings.TrimSpace(code) == "" {
		return
	}

	nodes, err := doc.ParseFragment(parseContext(doc, p.Region, target), code)
	if err != nil {
		e.logger.Error().Err(err).Str("point", p.ID).Msg("parsing injected code failed")
		return
	}

	switch p.Region {
	case RegionHead:
		e.injectHead(doc, target, p, nodes)
	default:
		e.injectBody(doc, target, p, nodes)
	}
}

func (e *Engine) clear(doc Document, target *html.Node, p Point) {
	for _, n := range doc.Tagged(target, p.ID) {
		doc.Remove(n)
	}
	if container := doc.ElementByID(p.ID); container != nil {
		doc.Remove(container)
	}
}

// injectHead appends each top-level element directly to the head. Text and
// comment nodes are dropped since they carry no behavior there.
func (e *Engine) injectHead(doc Document, head *html.Node, p Point, nodes []*html.Node) {
	for _, n := range nodes {
		if n.Type != html.ElementNode {
			continue
		}
		setAttr(n, AttrInjectedID, p.ID)
		if isScript(n) {
			n = freshScript(doc, n)
		}
		doc.Insert(head, n, PositionEnd)
	}
}

// injectBody wraps the fragment in a container carrying the point id, then
// swaps every parsed script for a freshly built copy.
func (e *Engine) injectBody(doc Document, body *html.Node, p Point, nodes []*html.Node) {
	wrapper := doc.CreateElement("div")
	setAttr(wrapper, "id", p.ID)
	setAttr(wrapper, AttrInjectedID, p.ID)
	for _, n := range nodes {
		wrapper.AppendChild(n)
	}
	doc.Insert(body, wrapper, p.Position)

	var scripts []*html.Node
	walk(wrapper, func(n *html.Node) bool {
		if isScript(n) {
			scripts = append(scripts, n)
		}
		return true
	})
	for _, old := range scripts {
		doc.Replace(old, freshScript(doc, old))
	}
}

// freshScript builds a new script element with the attributes and text of
// src. Scripts created by the fragment parser never execute; new ones do.
func freshScript(doc Document, src *html.Node) *html.Node {
	s := doc.CreateElement("script")
	s.Attr = append([]html.Attribute(nil), src.Attr...)
	if text := textContent(src); text != "" {
		s.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	}
	return s
}

// parseContext returns the element code for r is parsed against. Head code
// is parsed in a detached body: in head context the parser stops at the
// first text or body-only element and drops everything after it.
func parseContext(doc Document, r Region, target *html.Node) *html.Node {
	if r == RegionHead {
		return doc.CreateElement("body")
	}
	return target
}

func regionNode(doc Document, r Region) *html.Node {
	if r == RegionHead {
		return doc.Head()
	}
	return doc.Body()
}

// Apply parses page, reconciles blobs into it and writes the result to w.
func (e *Engine) Apply(w io.Writer, page io.Reader, blobs content.CodeBlobs) error {
	doc, err := ParseDocument(page)
	if err != nil {
		return err
	}
	e.Sync(doc, blobs)
	return doc.Render(w)
}
