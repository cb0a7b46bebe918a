package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/redwireai/storefront/internal/audit"
	"github.com/redwireai/storefront/internal/content"
	"github.com/redwireai/storefront/internal/llm"
	"github.com/redwireai/storefront/internal/studio"
)

// handleGetSiteSettings returns current settings as JSON.
func (s *Server) handleGetSiteSettings(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	settings := s.state.Settings()

	section := request.GetString("section", "")
	if section == "" {
		return jsonResult(settings)
	}

	fields := content.FieldsIn(section)
	if len(fields) == 0 {
		return mcp.NewToolResultError(fmt.Sprintf("unknown section %q", section)), nil
	}
	out := make(map[string]string, len(fields))
	for _, f := range fields {
		v, _ := settings.Get(f.Key)
		out[f.Key] = v
	}
	return jsonResult(out)
}

// handleUpdateSiteSetting assigns one settings field.
func (s *Server) handleUpdateSiteSetting(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	field, err := request.RequireString("field")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: field"), nil
	}
	value, err := request.RequireString("value")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: value"), nil
	}

	prev, err := s.state.SetSetting(field, value)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("update failed: %v", err)), nil
	}
	s.record(ctx, audit.Entry{
		Actor:         audit.ActorAI,
		Action:        audit.ActionSettingsUpdate,
		Target:        "settings",
		Field:         field,
		PreviousValue: prev,
		NewValue:      value,
	})
	return mcp.NewToolResultText(fmt.Sprintf("Updated %s.", field)), nil
}

// handleListProducts returns the catalog as JSON.
func (s *Server) handleListProducts(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(s.state.Products())
}

// handleUpdateProduct assigns one product field.
func (s *Server) handleUpdateProduct(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("product_id")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: product_id"), nil
	}
	field, err := request.RequireString("field")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: field"), nil
	}
	value, err := request.RequireString("value")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: value"), nil
	}

	product, err := s.state.SetProductField(content.ProductType(id), field, value)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("update failed: %v", err)), nil
	}
	s.record(ctx, audit.Entry{
		Actor:    audit.ActorAI,
		Action:   audit.ActionProductUpdate,
		Target:   id,
		Field:    field,
		NewValue: value,
	})
	return jsonResult(product)
}

// handleRebrandSite runs a full rebrand.
func (s *Server) handleRebrandSite(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	businessContext, err := request.RequireString("business_context")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: business_context"), nil
	}
	if s.rebrand == nil {
		return mcp.NewToolResultError("rebranding is not configured"), nil
	}

	err = s.rebrand.Rebrand(ctx, businessContext)
	switch {
	case err == nil:
		settings := s.state.Settings()
		return mcp.NewToolResultText(fmt.Sprintf("Rebrand applied. Site name is now %q; hero heading %q.", settings.SiteName, settings.HeroHeading)), nil
	case errors.Is(err, studio.ErrEmptyContext):
		return mcp.NewToolResultError("business_context is empty"), nil
	case llm.IsCredentialError(err):
		return mcp.NewToolResultError("No API key is available. Run `redwire auth` or connect a key in the console."), nil
	default:
		s.logger.Error().Err(err).Msg("rebrand tool failed")
		return mcp.NewToolResultError(fmt.Sprintf("rebrand failed: %v", err)), nil
	}
}

// handleListNotifications returns the live notifications.
func (s *Server) handleListNotifications(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if s.feed == nil {
		return mcp.NewToolResultText("[]"), nil
	}
	return jsonResult(s.feed.List())
}

func (s *Server) record(ctx context.Context, e audit.Entry) {
	if s.audit != nil {
		s.audit.Record(ctx, e)
	}
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encoding result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
