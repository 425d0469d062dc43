package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ziadkadry99/slidepack/internal/db"
	"github.com/ziadkadry99/slidepack/internal/server"
)

var serverPort int

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the HTTP API used by the deck editor",
	Long:  `Starts an HTTP server exposing import, save, export, theme compilation and slide parsing, plus the package history when enabled.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup()
		if err != nil {
			return err
		}
		defer e.logger.Sync()

		port := e.cfg.Server.Port
		if cmd.Flags().Changed("port") {
			port = serverPort
		}

		var database *db.DB
		if e.cfg.History.Enabled {
			database, err = db.Open(e.cfg.HistoryPath())
			if err != nil {
				return fmt.Errorf("opening database: %w", err)
			}
			defer database.Close()
		}

		srv := server.New(server.Config{
			Port:          port,
			AllowAll:      e.cfg.Server.AllowAllOrigins,
			MaxBodyBytes:  e.cfg.Server.MaxBodyBytes,
			MaxEntryBytes: e.cfg.MaxEntryBytes,
		}, database, e.logger)

		// Graceful shutdown.
		ctx := cmd.Context()
		go func() {
			<-ctx.Done()
			fmt.Fprintln(os.Stderr, "\nShutting down server...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				e.logger.Warn("shutdown failed", zap.Error(err))
			}
		}()

		fmt.Fprintf(os.Stderr, "slidepack server %s starting on port %d\n", Version, port)
		if database != nil {
			fmt.Fprintf(os.Stderr, "  History: %s\n", database.Path())
		}

		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	},
}

func init() {
	serverCmd.Flags().IntVar(&serverPort, "port", 8080, "Port to listen on (overrides server.port)")
	rootCmd.AddCommand(serverCmd)
}
