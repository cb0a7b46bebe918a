// Package site serves the public storefront pages.
package site

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/yuin/goldmark"

	"github.com/redwireai/storefront/internal/content"
	"github.com/redwireai/storefront/internal/inject"
	"github.com/redwireai/storefront/internal/notifications"
	"github.com/redwireai/storefront/internal/state"
)

const (
	DefaultCheckoutDelay  = 2000 * time.Millisecond
	DefaultAffiliateDelay = 1500 * time.Millisecond
)

// Assistant produces onboarding copy. Both calls fall back to canned text
// and never fail.
type Assistant interface {
	Strategy(ctx context.Context, name, industry string) string
	OnboardingQuestions(ctx context.Context, product string) []string
}

// AdminChecker reports whether a request carries the admin flag.
type AdminChecker interface {
	IsAdmin(r *http.Request) bool
}

// Notifier posts a toast to every connected browser.
type Notifier interface {
	Notify(message string, typ notifications.Type) notifications.Notification
}

// Options tunes the storefront.
type Options struct {
	CheckoutDelay  time.Duration
	AffiliateDelay time.Duration
	AdminPath      string
	Logger         zerolog.Logger
}

// Site renders storefront pages from live state.
type Site struct {
	state     *state.Service
	notifier  Notifier
	assistant Assistant
	admin     AdminChecker
	engine    *inject.Engine
	md        goldmark.Markdown
	pages     map[string]*template.Template
	opts      Options
	logger    zerolog.Logger
}

// page is the data every template receives.
type page struct {
	Title       string
	Description string
	Settings    content.SiteSettings
	Products    []content.Product
	Admin       bool
	AdminPath   string
	StartURL    string
	Flash       string
	Year        int
	Page        any
}

var pageSources = map[string]string{
	"home":       homeTemplate,
	"pricing":    pricingTemplate,
	"product":    productTemplate,
	"checkout":   checkoutTemplate,
	"onboarding": onboardingTemplate,
	"login":      loginTemplate,
	"affiliate":  affiliateTemplate,
	"contact":    contactTemplate,
	"legal":      legalTemplate,
	"blog":       blogTemplate,
	"post":       postTemplate,
}

// New parses the page templates. admin and assistant may be nil.
func New(svc *state.Service, notifier Notifier, assistant Assistant, admin AdminChecker, opts Options) (*Site, error) {
	if opts.CheckoutDelay <= 0 {
		opts.CheckoutDelay = DefaultCheckoutDelay
	}
	if opts.AffiliateDelay <= 0 {
		opts.AffiliateDelay = DefaultAffiliateDelay
	}
	logger := opts.Logger.With().Str("component", "site").Logger()

	layout, err := template.New("layout").Funcs(funcMap()).Parse(layoutTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing layout: %w", err)
	}
	pages := make(map[string]*template.Template, len(pageSources))
	for name, src := range pageSources {
		t, err := template.Must(layout.Clone()).Parse(src)
		if err != nil {
			return nil, fmt.Errorf("parsing %s page: %w", name, err)
		}
		pages[name] = t
	}

	return &Site{
		state:     svc,
		notifier:  notifier,
		assistant: assistant,
		admin:     admin,
		engine:    inject.NewEngine(logger),
		md:        newMarkdown(),
		pages:     pages,
		opts:      opts,
		logger:    logger,
	}, nil
}

// RegisterRoutes mounts the storefront on r. Unknown paths redirect home.
func (s *Site) RegisterRoutes(r chi.Router) {
	r.Get("/", s.handleHome)
	r.Get("/pricing", s.handlePricing)
	r.Get("/product/{slug}", s.handleProduct)
	r.Get("/checkout", s.handleCheckout)
	r.Post("/checkout", s.handleCheckoutSubmit)
	r.Get("/onboarding", s.handleOnboarding)
	r.Post("/onboarding", s.handleOnboardingSubmit)
	r.Get("/login", s.handleLogin)
	r.Post("/login", s.handleLoginSubmit)
	r.Get("/affiliate", s.handleAffiliate)
	r.Post("/affiliate", s.handleAffiliateSubmit)
	r.Get("/contact", s.handleContact)
	r.Post("/contact", s.handleContactSubmit)
	r.Get("/legal/{type}", s.handleLegal)
	r.Get("/blog", s.handleBlog)
	r.Get("/blog/{id}", s.handlePost)
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/", http.StatusFound)
	})
}

func (s *Site) isAdmin(r *http.Request) bool {
	return s.admin != nil && s.admin.IsAdmin(r)
}

func (s *Site) newPage(r *http.Request, title string, data any) page {
	return page{
		Title:     title,
		Settings:  s.state.Settings(),
		Products:  s.state.Products(),
		Admin:     s.isAdmin(r),
		AdminPath: s.opts.AdminPath,
		StartURL:  content.GetStartedURL,
		Year:      time.Now().Year(),
		Page:      data,
	}
}

// render executes a page, passes it through the injection engine with the
// current code blobs and writes it.
func (s *Site) render(w http.ResponseWriter, status int, name string, p page) {
	t, ok := s.pages[name]
	if !ok {
		http.Error(w, "page not found", http.StatusInternalServerError)
		return
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", p); err != nil {
		s.logger.Error().Err(err).Str("page", name).Msg("template failed")
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}
	body := buf.Bytes()
	var out bytes.Buffer
	if err := s.engine.Apply(&out, bytes.NewReader(body), p.Settings.Blobs()); err != nil {
		s.logger.Error().Err(err).Str("page", name).Msg("code injection failed")
	} else {
		body = out.Bytes()
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(body)
}

func (s *Site) handleHome(w http.ResponseWriter, r *http.Request) {
	p := s.newPage(r, "Home", nil)
	p.Description = p.Settings.HeroSubheading
	s.render(w, http.StatusOK, "home", p)
}

func (s *Site) handlePricing(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, "pricing", s.newPage(r, "Pricing", nil))
}

func (s *Site) handleProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := content.ProductTypeFromSlug(chi.URLParam(r, "slug"))
	if !ok {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}
	product, ok := s.state.Product(id)
	if !ok {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}
	p := s.newPage(r, product.Name, product)
	p.Description = product.Description
	s.render(w, http.StatusOK, "product", p)
}

type blogPage struct {
	Posts []content.BlogPost
}

// visiblePosts returns every post to admins and only published ones otherwise.
func (s *Site) visiblePosts(r *http.Request) []content.BlogPost {
	posts := s.state.Posts()
	if s.isAdmin(r) {
		return posts
	}
	return content.Published(posts)
}

func (s *Site) handleBlog(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, "blog", s.newPage(r, "Blog", blogPage{Posts: s.visiblePosts(r)}))
}

type postPage struct {
	Post content.BlogPost
	Body template.HTML
}

func (s *Site) handlePost(w http.ResponseWriter, r *http.Request) {
	post, ok := content.FindPost(s.visiblePosts(r), chi.URLParam(r, "id"))
	if !ok {
		http.Redirect(w, r, "/blog", http.StatusFound)
		return
	}
	body, err := renderMarkdown(s.md, post.Content)
	if err != nil {
		s.logger.Error().Err(err).Str("post", post.ID).Msg("markdown render failed")
		body = template.HTML(template.HTMLEscapeString(post.Content))
	}
	p := s.newPage(r, post.Title, postPage{Post: post, Body: body})
	p.Description = post.MetaDescription
	if p.Description == "" {
		p.Description = post.Excerpt
	}
	s.render(w, http.StatusOK, "post", p)
}

func (s *Site) handleLogin(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, "login", s.newPage(r, "Login", nil))
}

// handleLoginSubmit has no account backend; it returns to the home page.
func (s *Site) handleLoginSubmit(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// wait blocks for d or until ctx is done.
func wait(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}

func funcMap() template.FuncMap {
	return template.FuncMap{
		"url":         safeURL,
		"first":       headingHead,
		"last":        headingTail,
		"money":       money,
		"percent":     percent,
		"add":         func(a, b float64) float64 { return a + b },
		"buttonStyle": buttonStyle,
	}
}

// safeURL admits image sources html/template would otherwise reject,
// including generated data:image URLs.
func safeURL(s string) template.URL {
	s = strings.TrimSpace(s)
	lower := strings.ToLower(s)
	switch {
	case strings.HasPrefix(lower, "http://"), strings.HasPrefix(lower, "https://"),
		strings.HasPrefix(s, "/"), strings.HasPrefix(s, "#"),
		strings.HasPrefix(lower, "data:image/"):
		return template.URL(s)
	}
	return "#"
}

// headingHead returns a heading without its last word.
func headingHead(s string) string {
	fields := strings.Fields(s)
	if len(fields) <= 1 {
		return ""
	}
	return strings.Join(fields[:len(fields)-1], " ")
}

// headingTail returns the last word of a heading, which pages accent.
func headingTail(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}

func money(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func percent(rate float64) string {
	return strconv.FormatFloat(rate*100, 'f', -1, 64) + "%"
}

var colorPattern = regexp.MustCompile(`^(#[0-9a-fA-F]{3,8}|[a-zA-Z]{3,20}|rgba?\([0-9.,%\s]+\))$`)

// buttonStyle builds the inline style for primary buttons. Colors that do
// not look like CSS colors are dropped.
func buttonStyle(s content.SiteSettings) template.CSS {
	var parts []string
	if c := strings.TrimSpace(s.PrimaryButtonColor); colorPattern.MatchString(c) {
		parts = append(parts, "background-color: "+c)
	}
	if c := strings.TrimSpace(s.PrimaryButtonTextColor); colorPattern.MatchString(c) {
		parts = append(parts, "color: "+c)
	}
	return template.CSS(strings.Join(parts, "; "))
}
