package cmd

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/slidepack/internal/catalog"
	"github.com/ziadkadry99/slidepack/internal/db"
)

var (
	historyLimit       int
	historyOperation   string
	historyPruneBefore string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List the packages slidepack has written",
	Long: `Lists recorded pack, export, save and edit operations, newest first.
The DIGEST column fingerprints the deck each archive was built from, so two
rows with the same digest were built from identical content.

With --prune-before, entries older than the given date (YYYY-MM-DD or
RFC 3339) are deleted instead.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if !cfg.History.Enabled {
			return fmt.Errorf("history is disabled (history.enabled in %s)", cfgFile)
		}

		database, err := db.Open(cfg.HistoryPath())
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer database.Close()
		store := catalog.NewStore(database)
		out := cmd.OutOrStdout()

		if historyPruneBefore != "" {
			before, err := parseCutoff(historyPruneBefore)
			if err != nil {
				return err
			}
			n, err := store.DeleteBefore(cmd.Context(), before)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Pruned %d entr(ies) older than %s\n", n, before.Format(time.DateTime))
			return nil
		}

		entries, err := store.List(cmd.Context(), catalog.QueryFilter{
			Operation: catalog.Operation(historyOperation),
			Limit:     historyLimit,
		})
		if err != nil {
			return err
		}

		if len(entries) == 0 {
			fmt.Fprintln(out, "No packages recorded yet.")
			return nil
		}
		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "WHEN\tOPERATION\tPROJECT\tSLIDES\tSIZE\tDIGEST\tOUTPUT")
		for _, e := range entries {
			digest := shortDigest(e.SourceDigest)
			if digest == "" {
				digest = "-"
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%s\t%s\n",
				e.Timestamp.Local().Format(time.DateTime), e.Operation, e.ProjectName, e.SlideCount, e.SizeBytes, digest, e.Output)
		}
		return tw.Flush()
	},
}

// parseCutoff accepts a local calendar date or an RFC 3339 timestamp.
func parseCutoff(s string) (time.Time, error) {
	if t, err := time.ParseInLocation(time.DateOnly, s, time.Local); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --prune-before %q: want YYYY-MM-DD or RFC 3339", s)
	}
	return t, nil
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "maximum number of entries to show")
	historyCmd.Flags().StringVar(&historyOperation, "operation", "", "only show pack, export, save or edit entries")
	historyCmd.Flags().StringVar(&historyPruneBefore, "prune-before", "", "delete entries older than this date instead of listing")
	rootCmd.AddCommand(historyCmd)
}
