package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
)

func TestHealthCheck(t *testing.T) {
	srv := New(Config{}, zerolog.Nop())

	req := httptest.NewRequest("GET", "/healthz", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("expected status 'ok', got %q", body["status"])
	}
}

func TestCORSHeaders(t *testing.T) {
	srv := New(Config{AllowedOrigins: []string{"*"}}, zerolog.Nop())

	req := httptest.NewRequest("OPTIONS", "/healthz", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", "GET")
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	if w.Header().Get("Access-Control-Allow-Origin") == "" {
		t.Error("expected CORS Allow-Origin header")
	}
}

func TestGateUntilReady(t *testing.T) {
	var ready atomic.Bool
	srv := New(Config{Ready: ready.Load}, zerolog.Nop())
	srv.App().Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("home"))
	})
	srv.Router().Get("/ws", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("socket"))
	})

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest("GET", "/", nil))
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", w.Code)
	}
	if w.Header().Get("Retry-After") != RetryAfterSeconds {
		t.Errorf("Retry-After = %q", w.Header().Get("Retry-After"))
	}
	if !strings.Contains(w.Body.String(), "Loading") {
		t.Error("expected loading page")
	}

	w = httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest("GET", "/ws", nil))
	if w.Code != http.StatusOK {
		t.Errorf("ungated route status = %d", w.Code)
	}

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Accept", "application/json")
	w = httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	if w.Code != http.StatusServiceUnavailable || !strings.Contains(w.Body.String(), `"loading"`) {
		t.Errorf("json gate = %d %q", w.Code, w.Body.String())
	}

	ready.Store(true)
	w = httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest("GET", "/", nil))
	if w.Code != http.StatusOK || w.Body.String() != "home" {
		t.Errorf("after ready: %d %q", w.Code, w.Body.String())
	}
}

func TestRequestLoggerRedactsQuery(t *testing.T) {
	var buf bytes.Buffer
	srv := New(Config{}, zerolog.New(&buf))
	srv.App().Get("/cb", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	srv.Handler().ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/cb?key=sk-secret&plan=chatbot", nil))

	out := buf.String()
	if strings.Contains(out, "sk-secret") {
		t.Errorf("secret leaked into log: %s", out)
	}
	if !strings.Contains(out, `"status":418`) || !strings.Contains(out, "plan=chatbot") {
		t.Errorf("log line = %s", out)
	}
}
