package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/slidepack/internal/archive"
	"github.com/ziadkadry99/slidepack/internal/catalog"
	"github.com/ziadkadry99/slidepack/internal/deck"
	"github.com/ziadkadry99/slidepack/internal/model"
)

var (
	packOutput string
	packName   string
)

var packCmd = &cobra.Command{
	Use:   "pack <dir | files...>",
	Short: "Bundle a deck directory or slide files into an editable package",
	Long: `Collects a deck directory (slides, config.json, theme.css and asset
folders) or an explicit list of .html and .md slides, and saves them as an
editable .zip package that can be imported again later.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup()
		if err != nil {
			return err
		}
		defer e.logger.Sync()
		ctx := cmd.Context()

		var p *model.Project
		source := args[0]
		if fi, statErr := os.Stat(args[0]); statErr == nil && fi.IsDir() && len(args) == 1 {
			p, err = e.load(ctx, args[0])
		} else {
			p, err = deck.FromFiles(packName, args)
			if err == nil {
				p = model.SyncManifest(p)
			}
			source = fmt.Sprintf("%d file(s)", len(args))
		}
		if err != nil {
			return err
		}
		if packName != "" {
			p = rename(p, packName)
		}
		if len(p.Slides) == 0 {
			e.logger.Warn("no slides found; the package will be empty")
		}

		output := packOutput
		if output == "" {
			output = e.defaultOutput(p.Name, "")
		}
		data, err := e.write(ctx, p, archive.ModeEditable, output)
		if err != nil {
			return err
		}
		prev := e.record(ctx, catalog.EntryFor(catalog.OpPack, p, source, output, len(data)))

		fmt.Fprintf(cmd.OutOrStdout(), "Packed %q: %d slide(s) -> %s (%d bytes)\n", p.Name, len(p.Slides), output, len(data))
		reportUnchanged(cmd.OutOrStdout(), prev)
		return nil
	},
}

// rename sets the project name, keeping the config title in step so the
// name survives a re-import.
func rename(p *model.Project, name string) *model.Project {
	if p.Config == nil {
		c := p.Clone()
		c.Name = name
		return c
	}
	cfg := p.Config.Clone()
	cfg.Title = name
	return model.WithConfig(p, cfg)
}

func init() {
	packCmd.Flags().StringVarP(&packOutput, "output", "o", "", "archive to write (default <output_dir>/<name>.zip)")
	packCmd.Flags().StringVar(&packName, "name", "", "project name")
	rootCmd.AddCommand(packCmd)
}
