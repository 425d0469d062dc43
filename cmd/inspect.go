package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/slidepack/internal/deck"
)

var inspectJSON bool

var inspectCmd = &cobra.Command{
	Use:   "inspect <deck.zip | dir>",
	Short: "Print a summary of a deck",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup()
		if err != nil {
			return err
		}
		defer e.logger.Sync()

		p, err := e.load(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		summary := deck.Summarize(p)
		out := cmd.OutOrStdout()
		if inspectJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(summary)
		}
		fmt.Fprint(out, summary.String())
		return nil
	},
}

func init() {
	inspectCmd.Flags().BoolVar(&inspectJSON, "json", false, "print the summary as JSON")
	rootCmd.AddCommand(inspectCmd)
}
