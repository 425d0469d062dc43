package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/slidepack/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Describe a deck directory with an interactive wizard",
	Long: `Runs an interactive wizard that writes config.json into a deck directory:
title, author, color palette, transition and playback settings, plus an
ordering manifest listing the slides already present. A .slidepack.yml with
default settings is created alongside when none exists.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "."
		if len(args) == 1 {
			dir = args[0]
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		pc, err := config.RunWizard(dir, cfg.Palette)
		if errors.Is(err, config.ErrConfigExists) {
			return fmt.Errorf("%w; edit it directly or remove it to start over", err)
		}
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "\nWrote %s for %q (%d slide(s) in the manifest)\n",
			filepath.Join(dir, "config.json"), pc.Title, len(pc.Slides))

		if _, err := os.Stat(cfgFile); os.IsNotExist(err) {
			if err := cfg.Save(cfgFile); err != nil {
				return fmt.Errorf("writing %s: %w", cfgFile, err)
			}
			fmt.Fprintf(out, "Wrote %s\n", cfgFile)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
