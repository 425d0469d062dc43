package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/slidepack/internal/archive"
	"github.com/ziadkadry99/slidepack/internal/preview"
)

var (
	previewPort int
	previewOpen bool
)

var previewCmd = &cobra.Command{
	Use:   "preview <deck.zip | dir>",
	Short: "Play a deck in the browser",
	Long:  `Exports the deck in memory and serves the standalone player on localhost until interrupted.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup()
		if err != nil {
			return err
		}
		defer e.logger.Sync()
		ctx := cmd.Context()

		p, err := e.load(ctx, args[0])
		if err != nil {
			return err
		}
		data, err := archive.NewWriter(archive.WithLogger(e.logger)).Write(ctx, p, archive.ModeStandalone)
		if err != nil {
			return err
		}
		h, err := preview.Handler(data)
		if err != nil {
			return err
		}
		return preview.Serve(ctx, previewPort, h, previewOpen, e.logger)
	},
}

func init() {
	previewCmd.Flags().IntVar(&previewPort, "port", 8090, "Port to listen on")
	previewCmd.Flags().BoolVar(&previewOpen, "open", true, "open the player in the default browser")
	rootCmd.AddCommand(previewCmd)
}
