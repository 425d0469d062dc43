package config

import "github.com/ziadkadry99/slidepack/internal/model"

// LogFormat selects the log encoder.
type LogFormat string

const (
	LogFormatConsole LogFormat = "console"
	LogFormatJSON    LogFormat = "json"
)

// Config is the top-level slidepack configuration, corresponding to .slidepack.yml.
type Config struct {
	OutputDir     string            `yaml:"output_dir" koanf:"output_dir"`
	DataDir       string            `yaml:"data_dir" koanf:"data_dir"`
	LogLevel      string            `yaml:"log_level" koanf:"log_level"`
	LogFormat     LogFormat         `yaml:"log_format" koanf:"log_format"`
	MaxEntryBytes int64             `yaml:"max_entry_bytes" koanf:"max_entry_bytes"`
	Include       []string          `yaml:"include" koanf:"include"`
	Exclude       []string          `yaml:"exclude" koanf:"exclude"`
	Palette       model.ThemeColors `yaml:"palette" koanf:"palette"`
	Server        ServerConfig      `yaml:"server" koanf:"server"`
	History       HistoryConfig     `yaml:"history" koanf:"history"`
}

// ServerConfig holds HTTP API settings.
type ServerConfig struct {
	Port            int   `yaml:"port" koanf:"port"`
	AllowAllOrigins bool  `yaml:"allow_all_origins" koanf:"allow_all_origins"`
	MaxBodyBytes    int64 `yaml:"max_body_bytes" koanf:"max_body_bytes"`
}

// HistoryConfig controls the package history catalog.
type HistoryConfig struct {
	Enabled bool `yaml:"enabled" koanf:"enabled"`
}
