package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"

	"github.com/ziadkadry99/slidepack/internal/archive"
	"github.com/ziadkadry99/slidepack/internal/catalog"
	"github.com/ziadkadry99/slidepack/internal/deck"
	"github.com/ziadkadry99/slidepack/internal/model"
	"github.com/ziadkadry99/slidepack/internal/theme"
)

// handleInspectDeck loads a deck and returns its summary.
func (s *Server) handleInspectDeck(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: path"), nil
	}

	p, err := deck.Load(ctx, path, s.opts)
	if err != nil {
		return mcp.NewToolResultError(loadFailure(path, err)), nil
	}

	summary := deck.Summarize(p)
	if request.GetString("format", "text") == "json" {
		b, err := json.MarshalIndent(summary, "", "  ")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("encoding summary: %v", err)), nil
		}
		return mcp.NewToolResultText(string(b)), nil
	}
	return mcp.NewToolResultText(summary.String()), nil
}

// handleExportDeck writes a standalone export of a deck.
func (s *Server) handleExportDeck(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: path"), nil
	}
	output, err := request.RequireString("output")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: output"), nil
	}

	p, err := deck.Load(ctx, path, s.opts)
	if err != nil {
		return mcp.NewToolResultError(loadFailure(path, err)), nil
	}

	data, err := archive.NewWriter(archive.WithLogger(s.logger)).Write(ctx, p, archive.ModeStandalone)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("export failed: %v", err)), nil
	}
	if err := deck.WriteFile(output, data); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("writing %s: %v", output, err)), nil
	}

	if s.catalog != nil {
		if _, err := s.catalog.Record(ctx, catalog.EntryFor(catalog.OpExport, p, path, output, len(data))); err != nil {
			s.logger.Warn("recording history entry failed", zap.Error(err))
		}
	}

	return mcp.NewToolResultText(fmt.Sprintf(
		"Exported %q (%d slide(s), %d bytes) to %s. Open index.html from the extracted archive to play it.",
		p.Name, len(p.Slides), len(data), output,
	)), nil
}

// handleCompileTheme compiles a palette into CSS, filling missing roles from
// the default palette.
func (s *Server) handleCompileTheme(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	c := model.DefaultPalette()
	for _, f := range []struct {
		arg string
		dst *string
	}{
		{"primaryColor", &c.Primary},
		{"secondaryColor", &c.Secondary},
		{"accentColor", &c.Accent},
		{"backgroundColor", &c.Background},
		{"surfaceColor", &c.Surface},
		{"textPrimary", &c.TextPrimary},
		{"textSecondary", &c.TextSecondary},
		{"borderColor", &c.Border},
	} {
		if v := request.GetString(f.arg, ""); v != "" {
			*f.dst = v
		}
	}
	return mcp.NewToolResultText(theme.CompilePalette(c)), nil
}

func loadFailure(path string, err error) string {
	var fe *archive.FormatError
	switch {
	case errors.Is(err, os.ErrNotExist):
		return fmt.Sprintf("No deck found at %q.", path)
	case errors.As(err, &fe):
		return fmt.Sprintf("%q is not a valid deck package: %v", path, fe.Err)
	default:
		return fmt.Sprintf("failed to load deck: %v", err)
	}
}
