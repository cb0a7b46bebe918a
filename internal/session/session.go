// Package session keeps the console's admin flag in a signed browser
// session cookie.
package session

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/rs/zerolog"
)

const (
	// CookieName is the name of the session cookie.
	CookieName = "redwire_session"
	// AdminKey is the session key for the admin flag.
	AdminKey = "admin"
)

// Config holds session store configuration.
type Config struct {
	Secret []byte
	Secure bool
	Path   string
}

// Store wraps a gorilla/sessions cookie store. The cookie has no MaxAge, so
// admin mode survives reloads and ends with the browser session.
type Store struct {
	store  *sessions.CookieStore
	logger zerolog.Logger
}

// NewStore creates a session store.
func NewStore(cfg Config, logger zerolog.Logger) (*Store, error) {
	if len(cfg.Secret) < 32 {
		return nil, fmt.Errorf("session secret must be at least 32 bytes")
	}
	path := cfg.Path
	if path == "" {
		path = "/"
	}

	store := sessions.NewCookieStore(cfg.Secret)
	store.Options = &sessions.Options{
		Path:     path,
		MaxAge:   0,
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	}

	return &Store{
		store:  store,
		logger: logger.With().Str("component", "session").Logger(),
	}, nil
}

func (s *Store) get(r *http.Request) *sessions.Session {
	// A cookie signed with another secret yields a fresh session.
	sess, err := s.store.Get(r, CookieName)
	if err != nil {
		s.logger.Debug().Err(err).Msg("discarding unreadable session cookie")
	}
	return sess
}

// Enable turns admin mode on for the browser session.
func (s *Store) Enable(w http.ResponseWriter, r *http.Request) error {
	sess := s.get(r)
	sess.Values[AdminKey] = true
	if err := sess.Save(r, w); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	s.logger.Info().Str("remote", r.RemoteAddr).Msg("admin mode enabled")
	return nil
}

// Disable turns admin mode off and expires the cookie.
func (s *Store) Disable(w http.ResponseWriter, r *http.Request) error {
	sess := s.get(r)
	delete(sess.Values, AdminKey)
	sess.Options.MaxAge = -1
	if err := sess.Save(r, w); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// IsAdmin reports whether the request carries the admin flag.
func (s *Store) IsAdmin(r *http.Request) bool {
	admin, _ := s.get(r).Values[AdminKey].(bool)
	return admin
}

// RequireAdmin rejects requests without the admin flag with 401.
func (s *Store) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.IsAdmin(r) {
			s.logger.Debug().Str("path", r.URL.Path).Msg("admin flag missing")
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"error": "admin session required"})
			return
		}
		next.ServeHTTP(w, r)
	})
}
