package model

import (
	"strings"
	"time"
)

// Transition selects how the player switches between slides.
type Transition string

const (
	TransitionFade  Transition = "fade"
	TransitionSlide Transition = "slide"
	TransitionNone  Transition = "none"
)

// Normalize maps unknown transitions to fade.
func (t Transition) Normalize() Transition {
	switch t {
	case TransitionFade, TransitionSlide, TransitionNone:
		return t
	default:
		return TransitionFade
	}
}

// ThemeColors holds the eight color roles of a structured palette.
type ThemeColors struct {
	Primary       string `json:"primaryColor" yaml:"primary" koanf:"primary"`
	Secondary     string `json:"secondaryColor" yaml:"secondary" koanf:"secondary"`
	Accent        string `json:"accentColor" yaml:"accent" koanf:"accent"`
	Background    string `json:"backgroundColor" yaml:"background" koanf:"background"`
	Surface       string `json:"surfaceColor" yaml:"surface" koanf:"surface"`
	TextPrimary   string `json:"textPrimary" yaml:"text_primary" koanf:"text_primary"`
	TextSecondary string `json:"textSecondary" yaml:"text_secondary" koanf:"text_secondary"`
	Border        string `json:"borderColor" yaml:"border" koanf:"border"`
}

// Settings are the playback options of a project.
type Settings struct {
	AutoPlay     bool       `json:"autoPlay"`
	Loop         bool       `json:"loop"`
	ShowControls bool       `json:"showControls"`
	Transition   Transition `json:"transition"`
}

// ManifestEntry is one line of the ordering manifest. Duration is in seconds.
type ManifestEntry struct {
	File     string `json:"file"`
	Title    string `json:"title,omitempty"`
	Duration int    `json:"duration,omitempty"`
}

// ProjectConfig is the human-editable project metadata stored in config.json.
// Slides is an ordering manifest consulted only when a project is imported.
type ProjectConfig struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Author      string          `json:"author"`
	Company     string          `json:"company"`
	Version     string          `json:"version"`
	Created     string          `json:"created"`
	Modified    string          `json:"modified"`
	ThemeColors *ThemeColors    `json:"themeColors,omitempty"`
	Settings    *Settings       `json:"settings,omitempty"`
	Slides      []ManifestEntry `json:"slides,omitempty"`
}

// DefaultPalette is the palette offered for new projects.
func DefaultPalette() ThemeColors {
	return ThemeColors{
		Primary:       "#1976d2",
		Secondary:     "#dc004e",
		Accent:        "#00bcd4",
		Background:    "#ffffff",
		Surface:       "#f5f5f5",
		TextPrimary:   "#212121",
		TextSecondary: "#757575",
		Border:        "#e0e0e0",
	}
}

// DefaultSettings are the playback options for new projects.
func DefaultSettings() Settings {
	return Settings{
		AutoPlay:     false,
		Loop:         false,
		ShowControls: true,
		Transition:   TransitionFade,
	}
}

// DefaultConfig returns a config with the stock palette and settings.
func DefaultConfig(title string) *ProjectConfig {
	today := time.Now().Format(dateLayout)
	palette := DefaultPalette()
	settings := DefaultSettings()
	return &ProjectConfig{
		Title:       title,
		Version:     "1.0.0",
		Created:     today,
		Modified:    today,
		ThemeColors: &palette,
		Settings:    &settings,
	}
}

// HasManifest reports whether the config carries a non-empty ordering manifest.
func (c *ProjectConfig) HasManifest() bool {
	return c != nil && len(c.Slides) > 0
}

// ParseCreated returns the created date, if present and parseable.
func (c *ProjectConfig) ParseCreated() (time.Time, bool) {
	return ParseTimestamp(c.Created)
}

// ParseModified returns the modified date, if present and parseable.
func (c *ProjectConfig) ParseModified() (time.Time, bool) {
	return ParseTimestamp(c.Modified)
}

const dateLayout = "2006-01-02"

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	dateLayout,
}

// ParseTimestamp accepts RFC 3339 timestamps and plain YYYY-MM-DD dates.
func ParseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
