// Package mcp exposes deck inspection and export as MCP tools.
package mcp

import (
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/ziadkadry99/slidepack/internal/catalog"
	"github.com/ziadkadry99/slidepack/internal/deck"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server that exposes the deck tools.
type Server struct {
	opts    deck.Options
	catalog *catalog.Store
	logger  *zap.Logger
	mcp     *server.MCPServer
}

// NewServer creates a new MCP server. A nil store disables history
// recording for exports.
func NewServer(opts deck.Options, store *catalog.Store) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		opts:    opts,
		catalog: store,
		logger:  logger,
	}

	s.mcp = server.NewMCPServer(
		"slidepack",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(inspectDeckTool, s.handleInspectDeck)
	s.mcp.AddTool(exportDeckTool, s.handleExportDeck)
	s.mcp.AddTool(compileThemeTool, s.handleCompileTheme)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
