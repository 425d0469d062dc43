package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ziadkadry99/slidepack/internal/catalog"
	"github.com/ziadkadry99/slidepack/internal/db"
	"github.com/ziadkadry99/slidepack/internal/logging"
	mcpserver "github.com/ziadkadry99/slidepack/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for AI agent integration",
	Long:  `Starts a Model Context Protocol (MCP) server on stdio, exposing deck inspection, export and theme compilation tools for AI agents.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		// Stdout carries the protocol, so logs are always JSON on stderr.
		logger, err := logging.New(cfg.LogLevel, "json")
		if err != nil {
			return err
		}
		defer logger.Sync()
		e := &env{cfg: cfg, logger: logger}

		var store *catalog.Store
		if cfg.History.Enabled {
			database, err := db.Open(cfg.HistoryPath())
			if err != nil {
				logger.Warn("history disabled", zap.Error(err))
			} else {
				defer database.Close()
				store = catalog.NewStore(database)
			}
		}

		// Set version from the cmd package variable.
		mcpserver.Version = Version

		fmt.Fprintf(os.Stderr, "slidepack MCP server started on stdio\n")

		srv := mcpserver.NewServer(e.deckOptions(), store)
		return srv.Serve()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
