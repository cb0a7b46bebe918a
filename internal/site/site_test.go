package site

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/redwireai/storefront/internal/content"
	"github.com/redwireai/storefront/internal/notifications"
	"github.com/redwireai/storefront/internal/state"
	"github.com/redwireai/storefront/internal/storage"
)

type sent struct {
	message string
	typ     notifications.Type
}

type fakeNotifier struct {
	mu   sync.Mutex
	sent []sent
}

func (f *fakeNotifier) Notify(message string, typ notifications.Type) notifications.Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sent{message, typ})
	return notifications.Notification{Message: message, Type: typ}
}

type fakeAssistant struct{}

func (fakeAssistant) Strategy(_ context.Context, name, industry string) string {
	return "Strategy for " + name + " in " + industry
}

func (fakeAssistant) OnboardingQuestions(_ context.Context, product string) []string {
	return []string{"What does " + product + " answer first?"}
}

type fakeAdmin bool

func (a fakeAdmin) IsAdmin(*http.Request) bool { return bool(a) }

type testSite struct {
	handler  http.Handler
	svc      *state.Service
	notifier *fakeNotifier
}

func newTestSite(t *testing.T, admin bool) *testSite {
	t.Helper()
	svc := state.New(storage.NewMemoryStore(), zerolog.Nop())
	svc.Hydrate(context.Background())
	t.Cleanup(func() { svc.Close(context.Background()) })

	n := &fakeNotifier{}
	s, err := New(svc, n, fakeAssistant{}, fakeAdmin(admin), Options{
		CheckoutDelay:  time.Millisecond,
		AffiliateDelay: time.Millisecond,
		AdminPath:      "/studio-x",
		Logger:         zerolog.Nop(),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	r := chi.NewRouter()
	s.RegisterRoutes(r)
	return &testSite{handler: r, svc: svc, notifier: n}
}

func (ts *testSite) get(path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	ts.handler.ServeHTTP(w, httptest.NewRequest("GET", path, nil))
	return w
}

func (ts *testSite) post(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	ts.handler.ServeHTTP(w, req)
	return w
}

func TestHomeRendersSettingsAndInjectedCode(t *testing.T) {
	ts := newTestSite(t, false)
	if _, err := ts.svc.SetSetting("siteName", "Acme"); err != nil {
		t.Fatalf("SetSetting: %v", err)
	}
	if _, err := ts.svc.SetSetting("headerCode", `<meta name="acme-verify" content="42">`); err != nil {
		t.Fatalf("SetSetting: %v", err)
	}

	w := ts.get("/")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "Home | Acme") {
		t.Error("expected site name in title")
	}
	if !strings.Contains(body, `name="acme-verify"`) || !strings.Contains(body, "data-injected-id") {
		t.Errorf("expected injected header code, got %s", body)
	}
	if !strings.Contains(body, `<span class="accent">Sleep</span>`) {
		t.Error("expected last heading word accented")
	}
	if strings.Contains(body, `class="admin-bar"`) {
		t.Error("admin bar shown to visitor")
	}
}

func TestAdminBarShownInAdminMode(t *testing.T) {
	ts := newTestSite(t, true)
	body := ts.get("/").Body.String()
	if !strings.Contains(body, `class="admin-bar"`) || !strings.Contains(body, `action="/studio-x/exit"`) {
		t.Error("expected admin bar with exit form")
	}
}

func TestDataURLImagesSurviveEscaping(t *testing.T) {
	ts := newTestSite(t, false)
	ts.svc.SetSetting("heroImageUrl", "data:image/png;base64,iVBORw0KGgo=")

	body := ts.get("/").Body.String()
	if !strings.Contains(body, "data:image/png;base64,iVBORw0KGgo=") {
		t.Error("expected data URL in page")
	}
	if strings.Contains(body, "ZgotmplZ") {
		t.Error("template rejected an image URL")
	}
}

func TestUnknownRouteRedirectsHome(t *testing.T) {
	ts := newTestSite(t, false)
	for _, path := range []string{"/nope", "/product/robot", "/blog/missing"} {
		w := ts.get(path)
		if w.Code != http.StatusFound {
			t.Errorf("%s: status = %d", path, w.Code)
		}
	}
	if loc := ts.get("/nope").Header().Get("Location"); loc != "/" {
		t.Errorf("Location = %q", loc)
	}
}

func TestProductBySlug(t *testing.T) {
	ts := newTestSite(t, false)
	w := ts.get("/product/voice-agent")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	p, _ := ts.svc.Product(content.ProductVoiceAgent)
	if !strings.Contains(w.Body.String(), p.Name) {
		t.Errorf("expected %q on page", p.Name)
	}
}

func checkoutForm() url.Values {
	return url.Values{
		"firstName":   {"Ada"},
		"lastName":    {"Lovelace"},
		"companyName": {"Engines Ltd"},
		"industry":    {"Manufacturing"},
		"email":       {"ada@example.com"},
		"cardNumber":  {"4242424242424242"},
		"expiry":      {"12/30"},
		"cvc":         {"123"},
		"country":     {"UK"},
	}
}

func TestCheckoutValidation(t *testing.T) {
	ts := newTestSite(t, false)
	form := checkoutForm()
	form.Del("cvc")
	form.Set("email", "not-an-email")

	w := ts.post("/checkout?plan=chatbot", form)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "This field is required") || !strings.Contains(body, "Enter a valid email address") {
		t.Error("expected field errors in page")
	}
	if !strings.Contains(body, `value="Engines Ltd"`) {
		t.Error("expected submitted values kept")
	}
	if len(ts.notifier.sent) != 0 {
		t.Errorf("notified on invalid checkout: %v", ts.notifier.sent)
	}
}

func TestCheckoutAnnouncesSale(t *testing.T) {
	ts := newTestSite(t, false)
	w := ts.post("/checkout?plan=voicebot", checkoutForm())
	if w.Code != http.StatusSeeOther {
		t.Fatalf("status = %d", w.Code)
	}
	if loc := w.Header().Get("Location"); !strings.HasPrefix(loc, "/onboarding") {
		t.Errorf("Location = %q", loc)
	}
	p, _ := ts.svc.Product(content.ProductVoicebot)
	want := "System: New Sale! " + p.Name + " ecosystem deployed. Admin SMS dispatched."
	if len(ts.notifier.sent) != 1 || ts.notifier.sent[0].message != want || ts.notifier.sent[0].typ != notifications.TypeSale {
		t.Errorf("sent = %v", ts.notifier.sent)
	}
}

func TestCheckoutFallsBackToFirstPlan(t *testing.T) {
	ts := newTestSite(t, false)
	first := ts.svc.Products()[0]
	w := ts.get("/checkout?plan=unknown")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "plan="+string(first.ID)) {
		t.Errorf("expected checkout for %s", first.ID)
	}
}

func TestAffiliateApplication(t *testing.T) {
	ts := newTestSite(t, false)
	if body := ts.get("/affiliate").Body.String(); !strings.Contains(body, "45%") {
		t.Error("expected commission rate on page")
	}

	w := ts.post("/affiliate", url.Values{})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Application Submitted!") {
		t.Error("expected confirmation flash")
	}
	if len(ts.notifier.sent) != 1 || ts.notifier.sent[0].typ != notifications.TypeAffiliate {
		t.Errorf("sent = %v", ts.notifier.sent)
	}
}

func TestContactForm(t *testing.T) {
	ts := newTestSite(t, false)

	w := ts.post("/contact", url.Values{"name": {"Ada"}})
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("invalid status = %d", w.Code)
	}

	w = ts.post("/contact", url.Values{"name": {"Ada"}, "email": {"ada@example.com"}, "message": {"Hi"}})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if len(ts.notifier.sent) != 1 || ts.notifier.sent[0].typ != notifications.TypeInfo {
		t.Errorf("sent = %v", ts.notifier.sent)
	}
}

func TestOnboardingStrategy(t *testing.T) {
	ts := newTestSite(t, false)

	if w := ts.post("/onboarding", url.Values{}); w.Code != http.StatusUnprocessableEntity {
		t.Errorf("missing business name status = %d", w.Code)
	}

	w := ts.post("/onboarding", url.Values{"businessName": {"Bakery"}, "industry": {"Food"}})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "Strategy for Bakery in Food") {
		t.Error("expected strategy on page")
	}
	if !strings.Contains(body, "AI Voice Agent") {
		t.Error("expected onboarding questions on page")
	}
}

func TestBlogHidesDraftsFromVisitors(t *testing.T) {
	ts := newTestSite(t, false)
	_, err := ts.svc.UpdatePosts(func(posts []content.BlogPost) ([]content.BlogPost, error) {
		draft := content.BlogPost{ID: "secret-draft", Title: "Secret Draft", Status: content.PostDraft}
		return append([]content.BlogPost{draft}, posts...), nil
	})
	if err != nil {
		t.Fatalf("UpdatePosts: %v", err)
	}

	if strings.Contains(ts.get("/blog").Body.String(), "Secret Draft") {
		t.Error("draft listed for visitor")
	}
	if w := ts.get("/blog/secret-draft"); w.Code != http.StatusFound {
		t.Errorf("draft page status = %d", w.Code)
	}

	published := ts.svc.Posts()[1]
	if w := ts.get("/blog/" + published.ID); w.Code != http.StatusOK {
		t.Errorf("published page status = %d", w.Code)
	}
}

func TestBlogShowsDraftsToAdmin(t *testing.T) {
	ts := newTestSite(t, true)
	ts.svc.UpdatePosts(func(posts []content.BlogPost) ([]content.BlogPost, error) {
		draft := content.BlogPost{ID: "secret-draft", Title: "Secret Draft", Status: content.PostDraft, Content: "## Heading\n\nBody"}
		return append([]content.BlogPost{draft}, posts...), nil
	})

	w := ts.get("/blog/secret-draft")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `<h2 id="heading">Heading</h2>`) {
		t.Errorf("expected rendered markdown, got %s", w.Body.String())
	}
}

func TestLegalPages(t *testing.T) {
	ts := newTestSite(t, false)
	tests := map[string]string{
		"/legal/privacy":         "Privacy Policy",
		"/legal/affiliate-terms": "Affiliate Agreement",
		"/legal/anything":        "Disclaimer",
	}
	for path, title := range tests {
		w := ts.get(path)
		if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "<h1>"+title+"</h1>") {
			t.Errorf("%s: status %d, missing %q", path, w.Code, title)
		}
	}
}

func TestSafeURL(t *testing.T) {
	tests := map[string]string{
		"https://example.com/a.png":  "https://example.com/a.png",
		"/pricing":                   "/pricing",
		"data:image/jpeg;base64,AAA": "data:image/jpeg;base64,AAA",
		"javascript:alert(1)":        "#",
		"data:text/html,hi":          "#",
	}
	for in, want := range tests {
		if got := string(safeURL(in)); got != want {
			t.Errorf("safeURL(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestHeadingSplit(t *testing.T) {
	if got := headingHead("Why Choose Us"); got != "Why Choose" {
		t.Errorf("head = %q", got)
	}
	if got := headingTail("Why Choose Us"); got != "Us" {
		t.Errorf("tail = %q", got)
	}
	if headingHead("Solo") != "" || headingTail("Solo") != "Solo" {
		t.Error("single word heading split wrong")
	}
}

func TestButtonStyleDropsBadColors(t *testing.T) {
	s := content.SiteSettings{PrimaryButtonColor: "#10b981", PrimaryButtonTextColor: "red;}body{display:none"}
	if got := string(buttonStyle(s)); got != "background-color: #10b981" {
		t.Errorf("buttonStyle = %q", got)
	}
}

func TestRenderMarkdown(t *testing.T) {
	md := newMarkdown()
	src := "## Setup\n\n<script>alert(1)</script>\n\n```go\nfunc main() {}\n```\n"
	out, err := renderMarkdown(md, src)
	if err != nil {
		t.Fatalf("renderMarkdown: %v", err)
	}
	html := string(out)
	if !strings.Contains(html, `<h2 id="setup">`) {
		t.Errorf("missing heading id: %s", html)
	}
	if strings.Contains(html, "<script>") {
		t.Errorf("raw HTML passed through: %s", html)
	}
	if !strings.Contains(html, "<pre") || !strings.Contains(html, "style=") {
		t.Errorf("expected highlighted code block: %s", html)
	}
}
