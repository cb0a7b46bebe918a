package session

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
)

var testSecret = []byte("test-secret-that-is-at-least-32-bytes-long")

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(Config{Secret: testSecret}, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return s
}

func TestNewStoreSecretTooShort(t *testing.T) {
	if _, err := NewStore(Config{Secret: []byte("short")}, zerolog.Nop()); err == nil {
		t.Error("expected error for short secret")
	}
}

func TestEnableThenIsAdmin(t *testing.T) {
	s := newTestStore(t)

	req := httptest.NewRequest(http.MethodGet, "/console", nil)
	if s.IsAdmin(req) {
		t.Fatal("fresh request should not be admin")
	}

	w := httptest.NewRecorder()
	if err := s.Enable(w, req); err != nil {
		t.Fatalf("Enable: %v", err)
	}
	cookies := w.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("cookies = %d, want 1", len(cookies))
	}
	if cookies[0].MaxAge != 0 || !cookies[0].Expires.IsZero() {
		t.Errorf("cookie should be session-scoped: %+v", cookies[0])
	}

	next := httptest.NewRequest(http.MethodGet, "/", nil)
	next.AddCookie(cookies[0])
	if !s.IsAdmin(next) {
		t.Error("expected admin after Enable")
	}
}

func TestDisableExpiresCookie(t *testing.T) {
	s := newTestStore(t)
	req := httptest.NewRequest(http.MethodPost, "/console/exit", nil)
	w := httptest.NewRecorder()
	if err := s.Disable(w, req); err != nil {
		t.Fatalf("Disable: %v", err)
	}
	c := w.Result().Cookies()
	if len(c) != 1 || c[0].MaxAge >= 0 {
		t.Errorf("expected expired cookie, got %+v", c)
	}
}

func TestForeignCookieIgnored(t *testing.T) {
	other, err := NewStore(Config{Secret: []byte("another-secret-that-is-32-bytes-long!!")}, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	w := httptest.NewRecorder()
	other.Enable(w, httptest.NewRequest(http.MethodGet, "/", nil))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(w.Result().Cookies()[0])
	if newTestStore(t).IsAdmin(req) {
		t.Error("cookie signed with another secret accepted")
	}
}

func TestRequireAdmin(t *testing.T) {
	s := newTestStore(t)
	h := s.RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/state", nil))
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}

	enable := httptest.NewRecorder()
	s.Enable(enable, httptest.NewRequest(http.MethodGet, "/console", nil))
	req := httptest.NewRequest(http.MethodGet, "/api/state", nil)
	req.AddCookie(enable.Result().Cookies()[0])

	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", w.Code)
	}
}
