package cmd

import (
	"context"
	"crypto/rand"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/redwireai/storefront/internal/auth"
	"github.com/redwireai/storefront/internal/config"
	"github.com/redwireai/storefront/internal/db"
	"github.com/redwireai/storefront/internal/llm"
	"github.com/redwireai/storefront/internal/logging"
	"github.com/redwireai/storefront/internal/state"
	"github.com/redwireai/storefront/internal/storage"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `redwire init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// newLogger builds the process logger. Logs always go to stderr; --verbose
// forces debug level.
func newLogger(cfg *config.Config) zerolog.Logger {
	logCfg := cfg.Log
	if verbose {
		logCfg.Level = "debug"
	}
	return logging.New(logCfg, os.Stderr)
}

// openState opens the database and returns a hydrated state service backed
// by it. Callers close the service before the database.
func openState(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*db.DB, *state.Service, error) {
	database, err := db.Open(cfg.DatabasePath())
	if err != nil {
		return nil, nil, err
	}
	svc := state.New(storage.NewSQLiteStore(database), logger)
	svc.Hydrate(ctx)
	return database, svc, nil
}

// newClient creates the rate-limited generation client for cfg.
func newClient(cfg *config.Config, keys llm.KeySource) (llm.Client, error) {
	client, err := llm.NewClient(string(cfg.Provider), cfg.Model, cfg.ImageModel, keys)
	if err != nil {
		return nil, fmt.Errorf("creating %s client: %w", cfg.Provider, err)
	}
	return llm.NewRateLimitedProvider(client, cfg.RateLimitRPM), nil
}

// sessionSecret returns the configured cookie secret, or a random one when
// none is set. A random secret ends every admin session on restart.
func sessionSecret(cfg *config.Config, logger zerolog.Logger) ([]byte, error) {
	if cfg.Server.SessionSecret != "" {
		return []byte(cfg.Server.SessionSecret), nil
	}
	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		return nil, fmt.Errorf("generating session secret: %w", err)
	}
	logger.Warn().Msg("no session_secret configured, admin sessions will not survive a restart")
	return secret, nil
}

// hasKey reports whether a credential for provider is currently available.
func hasKey(keys *auth.Keys, provider config.ProviderType) func() bool {
	return func() bool { return keys.Has(string(provider)) }
}
