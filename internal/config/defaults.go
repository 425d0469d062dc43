package config

import (
	"github.com/ziadkadry99/slidepack/internal/archive"
	"github.com/ziadkadry99/slidepack/internal/model"
)

// DefaultConfigFile is the configuration file looked up in the working directory.
const DefaultConfigFile = ".slidepack.yml"

// DefaultIncludes collects every file of a deck directory. Only HTML and
// Markdown files become slides; the rest back asset lookups.
var DefaultIncludes = []string{"**"}

// DefaultExcludes are glob patterns never collected from a deck directory.
var DefaultExcludes = []string{
	".git/**",
	"node_modules/**",
	"dist/**",
	".slidepack/**",
	"**/.DS_Store",
	"**/__MACOSX/**",
	"index.html",
}

// Palettes are the named palette presets offered by the init wizard.
var Palettes = map[string]model.ThemeColors{
	"material": model.DefaultPalette(),
	"slate": {
		Primary:       "#334155",
		Secondary:     "#0ea5e9",
		Accent:        "#f59e0b",
		Background:    "#ffffff",
		Surface:       "#f1f5f9",
		TextPrimary:   "#0f172a",
		TextSecondary: "#64748b",
		Border:        "#cbd5e1",
	},
	"midnight": {
		Primary:       "#90caf9",
		Secondary:     "#f48fb1",
		Accent:        "#80deea",
		Background:    "#121212",
		Surface:       "#1e1e1e",
		TextPrimary:   "#e0e0e0",
		TextSecondary: "#9e9e9e",
		Border:        "#333333",
	},
}

// PaletteNames lists the presets in the order the wizard shows them.
var PaletteNames = []string{"material", "slate", "midnight"}

// DefaultConfig returns a Config with sensible defaults. Slices are fresh
// copies so loading a file never writes through to the package defaults.
func DefaultConfig() *Config {
	return &Config{
		OutputDir:     "dist",
		DataDir:       ".slidepack",
		LogLevel:      "info",
		LogFormat:     LogFormatConsole,
		MaxEntryBytes: archive.DefaultMaxEntrySize,
		Include:       append([]string(nil), DefaultIncludes...),
		Exclude:       append([]string(nil), DefaultExcludes...),
		Palette:       model.DefaultPalette(),
		Server: ServerConfig{
			Port:            8080,
			AllowAllOrigins: true,
			MaxBodyBytes:    256 << 20,
		},
		History: HistoryConfig{
			Enabled: true,
		},
	}
}
