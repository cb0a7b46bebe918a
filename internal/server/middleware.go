package server

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// sensitiveParams lists query parameter names whose values are redacted from logs.
var sensitiveParams = map[string]bool{
	"key":    true,
	"token":  true,
	"code":   true,
	"state":  true,
	"secret": true,
}

func redactQuery(rawQuery string) string {
	if rawQuery == "" {
		return ""
	}
	params, err := url.ParseQuery(rawQuery)
	if err != nil {
		return rawQuery
	}
	redacted := false
	for name, values := range params {
		if sensitiveParams[strings.ToLower(name)] {
			for i := range values {
				values[i] = "[REDACTED]"
			}
			redacted = true
		}
	}
	if !redacted {
		return rawQuery
	}
	return params.Encode()
}

// RequestLogger logs one line per request with zerolog.
func RequestLogger(logger zerolog.Logger) func(http.Handler) http.Handler {
	log := logger.With().Str("component", "http").Logger()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			event := log.Info()
			if status >= 400 && status < 500 {
				event = log.Warn()
			} else if status >= 500 {
				event = log.Error()
			}
			event.
				Str("request_id", middleware.GetReqID(r.Context())).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Str("query", redactQuery(r.URL.RawQuery)).
				Int("status", status).
				Dur("latency", time.Since(start)).
				Str("client_ip", r.RemoteAddr).
				Int("body_size", ww.BytesWritten()).
				Msg("request")
		})
	}
}

// SecurityHeaders sets baseline response headers. No Content-Security-Policy
// is sent: injected code may load from any origin.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "SAMEORIGIN")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}

// RetryAfterSeconds is advertised while the site is loading.
const RetryAfterSeconds = "1"

// Gate answers 503 with a loading page until ready reports true.
func Gate(ready func() bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if ready == nil || ready() {
				next.ServeHTTP(w, r)
				return
			}
			w.Header().Set("Retry-After", RetryAfterSeconds)
			w.Header().Set("Cache-Control", "no-store")
			if strings.Contains(r.Header.Get("Accept"), "application/json") {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusServiceUnavailable)
				w.Write([]byte(`{"error":"loading"}`))
				return
			}
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(loadingPage))
		})
	}
}

const loadingPage = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <meta http-equiv="refresh" content="1">
  <title>Loading</title>
  <style>
    body { margin: 0; min-height: 100vh; display: flex; align-items: center; justify-content: center; background: #020617; }
    .spinner { width: 48px; height: 48px; border: 4px solid #1e293b; border-top-color: #dc2626; border-radius: 50%; animation: spin 1s linear infinite; }
    @keyframes spin { to { transform: rotate(360deg); } }
  </style>
</head>
<body><div class="spinner" role="status" aria-label="Loading"></div></body>
</html>`
