package inject

import (
	"regexp"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/net/html"

	"github.com/redwireai/storefront/internal/content"
)

var assignRe = regexp.MustCompile(`window\.(\w+)\s*=\s*([^;<]+)`)

// execDocument models how a browser treats scripts: an element built with
// CreateElement runs once when it becomes attached to the document, while
// parser-created scripts never run.
type execDocument struct {
	*HTMLDocument
	created  map[*html.Node]bool
	executed map[*html.Node]bool
	runs     []string
	globals  map[string]string
}

func newExecDocument(t *testing.T) *execDocument {
	t.Helper()
	doc, err := ParseDocument(strings.NewReader(
		`<!DOCTYPE html><html><head><title>t</title></head><body><main id="app">page</main></body></html>`))
	if err != nil {
		t.Fatalf("ParseDocument: %v", err)
	}
	return &execDocument{
		HTMLDocument: doc,
		created:      make(map[*html.Node]bool),
		executed:     make(map[*html.Node]bool),
		globals:      make(map[string]string),
	}
}

func (d *execDocument) CreateElement(tag string) *html.Node {
	n := d.HTMLDocument.CreateElement(tag)
	d.created[n] = true
	return n
}

func (d *execDocument) Insert(parent, child *html.Node, pos Position) {
	d.HTMLDocument.Insert(parent, child, pos)
	d.runAttached(child)
}

func (d *execDocument) Replace(old, replacement *html.Node) {
	d.HTMLDocument.Replace(old, replacement)
	d.runAttached(replacement)
}

func (d *execDocument) runAttached(n *html.Node) {
	if !d.attached(n) {
		return
	}
	walk(n, func(c *html.Node) bool {
		if isScript(c) && d.created[c] && !d.executed[c] {
			d.executed[c] = true
			src := textContent(c)
			d.runs = append(d.runs, src)
			for _, m := range assignRe.FindAllStringSubmatch(src, -1) {
				d.globals[m[1]] = strings.TrimSpace(m[2])
			}
		}
		return true
	})
}

func (d *execDocument) attached(n *html.Node) bool {
	for p := n; p != nil; p = p.Parent {
		if p == d.Root() {
			return true
		}
	}
	return false
}

func countScripts(root *html.Node) int {
	n := 0
	walk(root, func(c *html.Node) bool {
		if isScript(c) {
			n++
		}
		return true
	})
	return n
}

func newTestEngine() *Engine {
	return NewEngine(zerolog.Nop())
}

func TestHeaderScriptInjectedTwiceLeavesOneCopy(t *testing.T) {
	doc := newExecDocument(t)
	e := newTestEngine()

	e.Inject(doc, HeaderPoint, `<script>window.__x=1</script>`)
	e.Inject(doc, HeaderPoint, `<script>window.__x=1</script>`)

	tagged := doc.Tagged(doc.Head(), HeaderPoint.ID)
	if len(tagged) != 1 {
		t.Fatalf("tagged head nodes = %d, want 1", len(tagged))
	}
	if got := countScripts(doc.Head()); got != 1 {
		t.Errorf("head scripts = %d, want 1", got)
	}
	if doc.globals["__x"] != "1" {
		t.Errorf("__x = %q, want 1", doc.globals["__x"])
	}
}

func TestInjectedScriptsExecuteOncePerApplication(t *testing.T) {
	doc := newExecDocument(t)
	e := newTestEngine()

	e.Inject(doc, BodyPoint, `<p>hi</p><script>window.__body=1</script>`)
	if len(doc.runs) != 1 {
		t.Fatalf("runs after first inject = %d, want 1", len(doc.runs))
	}

	e.Inject(doc, BodyPoint, `<p>hi</p><script>window.__body=2</script>`)
	if len(doc.runs) != 2 {
		t.Errorf("runs after second inject = %d, want 2", len(doc.runs))
	}
	if doc.globals["__body"] != "2" {
		t.Errorf("__body = %q, want 2", doc.globals["__body"])
	}
}

func TestBodyContainerPlacement(t *testing.T) {
	doc := newExecDocument(t)
	e := newTestEngine()

	e.Sync(doc, content.CodeBlobs{
		Body:   `<div class="banner">top</div>`,
		Footer: `<div class="chat">bottom</div>`,
	})

	body := doc.Body()
	first := firstElement(body.FirstChild)
	last := lastElement(body.LastChild)
	if first == nil || attr(first, "id") != BodyPoint.ID {
		t.Errorf("first body element id = %q, want %s", attr(first, "id"), BodyPoint.ID)
	}
	if last == nil || attr(last, "id") != FooterPoint.ID {
		t.Errorf("last body element id = %q, want %s", attr(last, "id"), FooterPoint.ID)
	}
	if doc.ElementByID("app") == nil {
		t.Error("page content was disturbed")
	}
}

func TestEmptyCodeClearsPoint(t *testing.T) {
	doc := newExecDocument(t)
	e := newTestEngine()

	e.Sync(doc, content.CodeBlobs{
		Header: `<meta name="x" content="1"><style>body{}</style>`,
		Body:   `<span>b</span>`,
		Footer: `<span>f</span>`,
	})
	e.Sync(doc, content.CodeBlobs{})

	for _, p := range Points() {
		if n := len(doc.Tagged(doc.Root(), p.ID)); n != 0 {
			t.Errorf("%s: %d nodes remain after clearing", p.ID, n)
		}
		if doc.ElementByID(p.ID) != nil {
			t.Errorf("%s: container remains after clearing", p.ID)
		}
	}
	if doc.ElementByID("app") == nil {
		t.Error("page content removed during clear")
	}
}

func TestSyncIsIdempotent(t *testing.T) {
	doc := newExecDocument(t)
	e := newTestEngine()
	blobs := content.CodeBlobs{
		Header: `<link rel="preconnect" href="https://example.com"><script src="https://example.com/a.js"></script>`,
		Body:   `<noscript>n</noscript>`,
		Footer: `<script>window.__f=1</script>`,
	}

	e.Sync(doc, blobs)
	once := doc.String()
	e.Sync(doc, blobs)
	e.Sync(doc, blobs)

	if doc.String() != once {
		t.Errorf("document changed on re-sync:\nonce  %s\nnow   %s", once, doc.String())
	}
}

func TestHeadNodesAreTagged(t *testing.T) {
	doc := newExecDocument(t)
	e := newTestEngine()

	e.Inject(doc, HeaderPoint, "<meta name=\"a\">\n<script>1</script>\n<!-- c -->")

	for c := doc.Head().FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.CommentNode {
			t.Error("comment node inserted into head")
		}
	}
	if n := len(doc.Tagged(doc.Head(), HeaderPoint.ID)); n != 2 {
		t.Errorf("tagged = %d, want 2", n)
	}
}

func TestHeadCodeKeepsNodesAfterBodyContent(t *testing.T) {
	tests := []struct {
		name        string
		code        string
		wantTagged  int
		wantScripts int
	}{
		{"leading text", `tracking<script>window.__a=1</script>`, 1, 1},
		{"pixel before script", `<img src="p.gif"><script>window.__a=1</script>`, 2, 1},
		{"div before script", `<div id="w">hi</div><script>window.__a=1</script>`, 2, 1},
		{"scripts around div", `<script>a</script><div>x</div><script>b</script>`, 3, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := ParseDocument(strings.NewReader(`<html><head><title>t</title></head><body><p>x</p></body></html>`))
			if err != nil {
				t.Fatalf("ParseDocument: %v", err)
			}
			newTestEngine().Inject(doc, HeaderPoint, tt.code)

			if n := len(doc.Tagged(doc.Head(), HeaderPoint.ID)); n != tt.wantTagged {
				t.Errorf("tagged head nodes = %d, want %d", n, tt.wantTagged)
			}
			if n := countScripts(doc.Head()); n != tt.wantScripts {
				t.Errorf("head scripts = %d, want %d", n, tt.wantScripts)
			}
			if n := countScripts(doc.Body()); n != 0 {
				t.Errorf("body scripts = %d, want 0", n)
			}
		})
	}
}

func TestHeadScriptAfterTextExecutes(t *testing.T) {
	doc := newExecDocument(t)
	newTestEngine().Inject(doc, HeaderPoint, `tracking<script>window.__a=1</script>`)
	if doc.globals["__a"] != "1" {
		t.Errorf("__a = %q, want 1", doc.globals["__a"])
	}
}

func TestApplyRendersInjectedPage(t *testing.T) {
	e := newTestEngine()
	page := `<html><head></head><body><p>x</p></body></html>`
	var out strings.Builder

	err := e.Apply(&out, strings.NewReader(page), content.CodeBlobs{Footer: `<script>window.__y=2</script>`})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if !strings.Contains(out.String(), `<div id="custom-footer-code" data-injected-id="custom-footer-code"><script>window.__y=2</script></div>`) {
		t.Errorf("rendered page missing footer container: %s", out.String())
	}
}

func firstElement(n *html.Node) *html.Node {
	for ; n != nil; n = n.NextSibling {
		if n.Type == html.ElementNode {
			return n
		}
	}
	return nil
}

func lastElement(n *html.Node) *html.Node {
	for ; n != nil; n = n.PrevSibling {
		if n.Type == html.ElementNode {
			return n
		}
	}
	return nil
}
