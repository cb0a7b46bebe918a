package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/redwireai/storefront/internal/audit"
	"github.com/redwireai/storefront/internal/auth"
	mcpserver "github.com/redwireai/storefront/internal/mcp"
	"github.com/redwireai/storefront/internal/studio"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for AI agent integration",
	Long: `Starts a Model Context Protocol (MCP) server on stdio, exposing tools
that read and edit site settings and products and run a rebrand.

Edits are saved to the database and audited as AI changes. Run it while
the web server is stopped; the two do not share in-memory state.`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	// Stdout carries the protocol; logs go to stderr only.
	logger := newLogger(cfg)
	ctx := cmd.Context()

	database, svc, err := openState(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer database.Close()
	defer svc.Close(ctx)

	client, err := newClient(cfg, auth.NewKeys())
	if err != nil {
		return err
	}
	auditStore := audit.NewStore(database, logger)
	st := studio.New(client, svc, studio.Options{
		Model:      cfg.Model,
		ImageModel: cfg.ImageModel,
		Audit:      auditStore,
		Logger:     logger,
	})

	mcpserver.Version = Version

	fmt.Fprintf(os.Stderr, "redwire MCP server started on stdio (database=%s)\n", database.Path())

	// The notification feed lives in the web server, so list_notifications
	// reports an empty list here.
	srv := mcpserver.NewServer(svc, st, nil, auditStore, logger)
	return srv.Serve()
}
