package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
)

// Config holds server configuration.
type Config struct {
	Addr string
	// AllowedOrigins for CORS. Empty allows local development origins only.
	AllowedOrigins []string
	// RequestTimeout bounds page and API handlers. Socket routes are exempt.
	RequestTimeout time.Duration
	// Ready reports whether site state has loaded. Nil means always ready.
	Ready func() bool
}

// Server hosts the storefront and console.
type Server struct {
	cfg        Config
	logger     zerolog.Logger
	router     chi.Router
	app        chi.Router
	httpServer *http.Server
}

// New creates a Server with the shared middleware stack.
func New(cfg Config, logger zerolog.Logger) *Server {
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 60 * time.Second
	}
	s := &Server{
		cfg:    cfg,
		logger: logger.With().Str("component", "server").Logger(),
	}
	s.router = s.buildRouter()
	s.app = s.router.With(middleware.Timeout(cfg.RequestTimeout), Gate(cfg.Ready))
	s.httpServer = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return s
}

// buildRouter creates and configures the chi router with all routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(s.logger))
	r.Use(middleware.Recoverer)
	r.Use(SecurityHeaders)

	// CORS
	origins := s.cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:*", "http://127.0.0.1:*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		status := "ok"
		if s.cfg.Ready != nil && !s.cfg.Ready() {
			status = "loading"
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"` + status + `"}`))
	})

	return r
}

// Router returns the base router. Routes registered here skip the request
// timeout and the loading gate; use it for long-lived sockets.
func (s *Server) Router() chi.Router { return s.router }

// App returns the router for pages and APIs, behind the timeout and the
// loading gate.
func (s *Server) App() chi.Router { return s.app }

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

// Start begins listening on the configured address. It returns nil after
// a graceful Shutdown.
func (s *Server) Start() error {
	s.logger.Info().Str("addr", s.cfg.Addr).Msg("listening")
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
