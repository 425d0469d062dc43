package mcp

import "github.com/mark3labs/mcp-go/mcp"

// inspectDeckTool defines the inspect_deck MCP tool.
var inspectDeckTool = mcp.NewTool("inspect_deck",
	mcp.WithDescription("Summarize a slide deck: its name, metadata, slide order and any assets that could not be resolved."),
	mcp.WithString("path",
		mcp.Required(),
		mcp.Description("Path to a .zip deck package or a deck directory"),
	),
	mcp.WithString("format",
		mcp.Description("Output format (default text)"),
		mcp.Enum("text", "json"),
	),
)

// exportDeckTool defines the export_deck MCP tool.
var exportDeckTool = mcp.NewTool("export_deck",
	mcp.WithDescription("Export a deck as a standalone archive with a self-contained HTML player."),
	mcp.WithString("path",
		mcp.Required(),
		mcp.Description("Path to a .zip deck package or a deck directory"),
	),
	mcp.WithString("output",
		mcp.Required(),
		mcp.Description("Where to write the exported .zip"),
	),
)

// compileThemeTool defines the compile_theme MCP tool. Every color is
// optional and falls back to the default palette.
var compileThemeTool = mcp.NewTool("compile_theme",
	mcp.WithDescription("Compile a color palette into the deck stylesheet."),
	mcp.WithString("primaryColor", mcp.Description("Primary color, e.g. #1976d2")),
	mcp.WithString("secondaryColor", mcp.Description("Secondary color")),
	mcp.WithString("accentColor", mcp.Description("Accent color")),
	mcp.WithString("backgroundColor", mcp.Description("Page background color")),
	mcp.WithString("surfaceColor", mcp.Description("Card and panel background color")),
	mcp.WithString("textPrimary", mcp.Description("Body text color")),
	mcp.WithString("textSecondary", mcp.Description("Muted text color")),
	mcp.WithString("borderColor", mcp.Description("Border color")),
)
