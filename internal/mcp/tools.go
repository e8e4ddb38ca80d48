package mcp

import "github.com/mark3labs/mcp-go/mcp"

var listPagesTool = mcp.NewTool("list_pages",
	mcp.WithDescription("List the documentation pages the site is built from."),
	mcp.WithString("kind",
		mcp.Description("Only list pages of this kind"),
		mcp.Enum("markdown", "fragment", "document"),
	),
)

var getPageOutlineTool = mcp.NewTool("get_page_outline",
	mcp.WithDescription("Get the \"on this page\" outline of a documentation page: its headings grouped under their sections, with anchor ids."),
	mcp.WithString("page",
		mcp.Required(),
		mcp.Description("Page path relative to the docs directory, e.g. usage/pipelines.md"),
	),
	mcp.WithString("format",
		mcp.Description("Output format (default tree)"),
		mcp.Enum("tree", "json"),
	),
)

var getStarCountTool = mcp.NewTool("get_star_count",
	mcp.WithDescription("Get the GitHub star count of the documented repository, served from the local cache while it is fresh."),
)
