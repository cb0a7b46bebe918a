// Package dashboard serves the admin content console and its JSON API.
package dashboard

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/redwireai/storefront/internal/audit"
	"github.com/redwireai/storefront/internal/content"
	"github.com/redwireai/storefront/internal/keystatus"
	"github.com/redwireai/storefront/internal/state"
	"github.com/redwireai/storefront/internal/studio"
)

// Generator runs AI generation for the console.
type Generator interface {
	Rebrand(ctx context.Context, businessContext string) error
	GenerateImage(ctx context.Context, prompt string, kind studio.ImageKind) (string, error)
	DraftPost(ctx context.Context, topic string) (content.BlogPost, error)
	Busy() bool
}

// Credentials accepts a key typed into the console.
type Credentials interface {
	Connect(provider, key string)
}

// KeyMonitor is the credential status shown in the console.
type KeyMonitor interface {
	Connect()
	Snapshot() keystatus.Status
}

// Sessions toggles and checks admin mode.
type Sessions interface {
	Enable(w http.ResponseWriter, r *http.Request) error
	Disable(w http.ResponseWriter, r *http.Request) error
	RequireAdmin(next http.Handler) http.Handler
}

// Options configures the console.
type Options struct {
	// AdminPath is the magic path that enters admin mode.
	AdminPath string
	// Provider names the credential a console key is stored under.
	Provider string
	Logger   zerolog.Logger
}

// Dashboard provides the content console.
type Dashboard struct {
	state     *state.Service
	generator Generator
	creds     Credentials
	monitor   KeyMonitor
	sessions  Sessions
	audit     *audit.Store
	adminPath string
	provider  string
	logger    zerolog.Logger
}

// New creates a Dashboard. auditStore may be nil, which disables the
// activity log.
func New(svc *state.Service, gen Generator, creds Credentials, monitor KeyMonitor, sessions Sessions, auditStore *audit.Store, opts Options) *Dashboard {
	path := "/" + strings.Trim(opts.AdminPath, "/")
	return &Dashboard{
		state:     svc,
		generator: gen,
		creds:     creds,
		monitor:   monitor,
		sessions:  sessions,
		audit:     auditStore,
		adminPath: path,
		provider:  opts.Provider,
		logger:    opts.Logger.With().Str("component", "dashboard").Logger(),
	}
}

// AdminPath returns the normalised console path.
func (d *Dashboard) AdminPath() string { return d.adminPath }

// RegisterRoutes mounts the console and its API onto the given router.
func (d *Dashboard) RegisterRoutes(r chi.Router) {
	r.Route(d.adminPath, func(r chi.Router) {
		r.Get("/", d.ServeIndex)
		r.Post("/exit", d.handleExit)

		r.Route("/api", func(r chi.Router) {
			r.Use(d.sessions.RequireAdmin)

			r.Get("/state", d.handleState)
			r.Put("/settings/{field}", d.handleSetSetting)
			r.Put("/products/{id}/{field}", d.handleSetProductField)
			r.Post("/rebrand", d.handleRebrand)
			r.Post("/images", d.handleImage)
			r.Get("/credential", d.handleCredentialStatus)
			r.Post("/credential", d.handleConnectCredential)

			r.Route("/blog", func(r chi.Router) {
				r.Get("/", d.handleListPosts)
				r.Post("/", d.handleCreatePost)
				r.Post("/draft", d.handleDraftPost)
				r.Put("/{id}", d.handleUpdatePost)
				r.Delete("/{id}", d.handleDeletePost)
			})

			if d.audit != nil {
				audit.RegisterRoutes(r, d.audit)
			}
		})
	})
}

// handleExit leaves admin mode and returns to the storefront.
func (d *Dashboard) handleExit(w http.ResponseWriter, r *http.Request) {
	if err := d.sessions.Disable(w, r); err != nil {
		d.logger.Error().Err(err).Msg("disabling admin mode")
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (d *Dashboard) record(ctx context.Context, e audit.Entry) {
	if d.audit != nil {
		d.audit.Record(ctx, e)
	}
}
