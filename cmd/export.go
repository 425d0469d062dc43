package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/slidepack/internal/archive"
	"github.com/ziadkadry99/slidepack/internal/catalog"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export <deck.zip | dir>",
	Short: "Export a deck as a standalone presentation",
	Long: `Writes a standalone .zip containing every slide with its theme inlined,
the resolved assets and an index.html player with keyboard, touch and
drawing controls. Unzip it and open index.html in any browser.`,
	Args: cobra.ExactArgs(1),
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

		output := exportOutput
		if output == "" {
			output = e.defaultOutput(p.Name, "-player")
		}
		data, err := e.write(ctx, p, archive.ModeStandalone, output)
		if err != nil {
			return err
		}
		prev := e.record(ctx, catalog.EntryFor(catalog.OpExport, p, args[0], output, len(data)))

		fmt.Fprintf(cmd.OutOrStdout(), "Exported %q: %d slide(s) -> %s (%d bytes)\n", p.Name, len(p.Slides), output, len(data))
		reportUnchanged(cmd.OutOrStdout(), prev)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "archive to write (default <output_dir>/<name>-player.zip)")
	rootCmd.AddCommand(exportCmd)
}
