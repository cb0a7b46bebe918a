package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/redwireai/storefront/internal/content"
)

func productIDs() []string {
	ids := make([]string, len(content.ProductTypes))
	for i, p := range content.ProductTypes {
		ids[i] = string(p)
	}
	return ids
}

// getSiteSettingsTool defines the get_site_settings MCP tool.
var getSiteSettingsTool = mcp.NewTool("get_site_settings",
	mcp.WithDescription("Get the storefront's editable copy, brand colors and custom code. Optionally limited to one section."),
	mcp.WithString("section",
		mcp.Description("Only return fields of this section"),
		mcp.Enum(content.Sections...),
	),
)

// updateSiteSettingTool defines the update_site_setting MCP tool.
var updateSiteSettingTool = mcp.NewTool("update_site_setting",
	mcp.WithDescription("Set one site settings field. The change is live immediately."),
	mcp.WithString("field",
		mcp.Required(),
		mcp.Description("Settings field key, e.g. heroHeading or primaryButtonColor"),
	),
	mcp.WithString("value",
		mcp.Required(),
		mcp.Description("New value. An empty string clears the field."),
	),
)

// listProductsTool defines the list_products MCP tool.
var listProductsTool = mcp.NewTool("list_products",
	mcp.WithDescription("List the product catalog with prices and features."),
)

// updateProductTool defines the update_product MCP tool.
var updateProductTool = mcp.NewTool("update_product",
	mcp.WithDescription("Set one field of a catalog product."),
	mcp.WithString("product_id",
		mcp.Required(),
		mcp.Description("Product identifier"),
		mcp.Enum(productIDs()...),
	),
	mcp.WithString("field",
		mcp.Required(),
		mcp.Description("Field to set"),
		mcp.Enum("name", "description", "imageUrl", "monthlyPrice", "setupFee", "features"),
	),
	mcp.WithString("value",
		mcp.Required(),
		mcp.Description("New value. Prices are numbers; features are one per line."),
	),
)

// rebrandSiteTool defines the rebrand_site MCP tool.
var rebrandSiteTool = mcp.NewTool("rebrand_site",
	mcp.WithDescription("Regenerate all site copy and hero imagery for a business description. Applied in one step, or not at all on failure."),
	mcp.WithString("business_context",
		mcp.Required(),
		mcp.Description("Description of the business the site should be rebranded for"),
	),
)

// listNotificationsTool defines the list_notifications MCP tool.
var listNotificationsTool = mcp.NewTool("list_notifications",
	mcp.WithDescription("List notifications currently shown to site visitors. Each expires five seconds after it was posted."),
)
