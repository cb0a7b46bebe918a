package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	"github.com/redwireai/storefront/internal/audit"
	"github.com/redwireai/storefront/internal/notifications"
	"github.com/redwireai/storefront/internal/state"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Rebrander applies an AI rebrand to the site.
type Rebrander interface {
	Rebrand(ctx context.Context, businessContext string) error
}

// NotificationLister returns the live notification feed.
type NotificationLister interface {
	List() []notifications.Notification
}

// Recorder receives audit entries for edits made through tools.
type Recorder interface {
	Record(ctx context.Context, entry audit.Entry)
}

// Server wraps an MCP server that exposes site editing tools.
type Server struct {
	state   *state.Service
	rebrand Rebrander
	feed    NotificationLister
	audit   Recorder
	logger  zerolog.Logger
	mcp     *server.MCPServer
}

// NewServer creates a new MCP server. rebrand, feed and rec may be nil;
// the matching tools then report that they are unavailable.
func NewServer(svc *state.Service, rebrand Rebrander, feed NotificationLister, rec Recorder, logger zerolog.Logger) *Server {
	s := &Server{
		state:   svc,
		rebrand: rebrand,
		feed:    feed,
		audit:   rec,
		logger:  logger.With().Str("component", "mcp").Logger(),
	}

	s.mcp = server.NewMCPServer(
		"redwire",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(getSiteSettingsTool, s.handleGetSiteSettings)
	s.mcp.AddTool(updateSiteSettingTool, s.handleUpdateSiteSetting)
	s.mcp.AddTool(listProductsTool, s.handleListProducts)
	s.mcp.AddTool(updateProductTool, s.handleUpdateProduct)
	s.mcp.AddTool(rebrandSiteTool, s.handleRebrandSite)
	s.mcp.AddTool(listNotificationsTool, s.handleListNotifications)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
