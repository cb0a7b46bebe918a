package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/redwireai/storefront/internal/audit"
	"github.com/redwireai/storefront/internal/auth"
	"github.com/redwireai/storefront/internal/dashboard"
	"github.com/redwireai/storefront/internal/db"
	"github.com/redwireai/storefront/internal/keystatus"
	"github.com/redwireai/storefront/internal/notifications"
	"github.com/redwireai/storefront/internal/server"
	"github.com/redwireai/storefront/internal/session"
	"github.com/redwireai/storefront/internal/site"
	"github.com/redwireai/storefront/internal/state"
	"github.com/redwireai/storefront/internal/storage"
	"github.com/redwireai/storefront/internal/studio"
)

// shutdownTimeout bounds in-flight requests and the final state flush.
const shutdownTimeout = 10 * time.Second

var (
	servePort      int
	serveEphemeral bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the storefront and content console",
	Long: `Starts the HTTP server hosting the public storefront, the notification
socket and the hidden content console at the configured admin path.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "port to listen on (overrides config)")
	serveCmd.Flags().BoolVar(&serveEphemeral, "ephemeral", false, "keep all state in memory; nothing survives a restart")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if servePort > 0 {
		cfg.Server.Port = servePort
	}
	logger := newLogger(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		database *db.DB
		store    storage.Store
	)
	if serveEphemeral {
		database, err = db.OpenMemory()
		store = storage.NewMemoryStore()
	} else {
		database, err = db.Open(cfg.DatabasePath())
		store = storage.NewSQLiteStore(database)
	}
	if err != nil {
		return err
	}
	defer database.Close()

	// Pages answer with the loading screen until hydration finishes.
	svc := state.New(store, logger)
	go svc.Hydrate(ctx)

	keys := auth.NewKeys()
	client, err := newClient(cfg, keys)
	if err != nil {
		return err
	}

	monitor := keystatus.New(hasKey(keys, cfg.Provider), cfg.Studio.KeyPollInterval, logger)
	go monitor.Run(ctx)

	auditStore := audit.NewStore(database, logger)

	feed := notifications.NewFeed(cfg.Notification.TTL, logger)
	defer feed.Close()
	if url := cfg.Notification.WebhookURL; url != "" {
		go notifications.NewDispatcher(url, logger, notifications.TypeSale).Run(ctx, feed)
	}

	st := studio.New(client, svc, studio.Options{
		Model:      cfg.Model,
		ImageModel: cfg.ImageModel,
		Status:     monitor,
		Audit:      auditStore,
		Logger:     logger,
	})

	secret, err := sessionSecret(cfg, logger)
	if err != nil {
		return err
	}
	sessions, err := session.NewStore(session.Config{Secret: secret}, logger)
	if err != nil {
		return err
	}

	srv := server.New(server.Config{
		Addr:           cfg.Addr(),
		AllowedOrigins: cfg.Server.AllowedOrigins,
		RequestTimeout: cfg.Studio.RequestTimeout,
		Ready:          svc.Hydrated,
	}, logger)

	// The socket is long-lived and answers before hydration, so it stays
	// off the gated, time-limited router.
	notifications.RegisterRoutes(srv.Router(), feed, logger)

	dash := dashboard.New(svc, st, keys, monitor, sessions, auditStore, dashboard.Options{
		AdminPath: cfg.Server.AdminPath,
		Provider:  string(cfg.Provider),
		Logger:    logger,
	})
	dash.RegisterRoutes(srv.App())

	storefront, err := site.New(svc, feed, st, sessions, site.Options{
		CheckoutDelay:  cfg.Simulation.CheckoutDelay,
		AffiliateDelay: cfg.Simulation.AffiliateDelay,
		AdminPath:      dash.AdminPath(),
		Logger:         logger,
	})
	if err != nil {
		return fmt.Errorf("building storefront: %w", err)
	}
	storefront.RegisterRoutes(srv.App())

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	logger.Info().
		Str("version", Version).
		Str("addr", cfg.Addr()).
		Str("database", database.Path()).
		Str("provider", string(cfg.Provider)).
		Bool("key_available", keys.Has(string(cfg.Provider))).
		Msg("redwire started")
	if verbose {
		fmt.Fprintf(os.Stderr, "Console: http://%s%s\n", cfg.Addr(), dash.AdminPath())
	}

	var serveErr error
	select {
	case serveErr = <-errCh:
		if serveErr != nil {
			serveErr = fmt.Errorf("server: %w", serveErr)
			logger.Error().Err(serveErr).Msg("server stopped")
		}
	case <-ctx.Done():
		logger.Info().Msg("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("server shutdown")
	}
	if err := svc.Close(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("flushing state")
	}
	return serveErr
}
