package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/manifoldco/promptui"

	"github.com/ziadkadry99/slidepack/internal/model"
)

// ErrConfigExists is returned when a deck directory already has a config.json.
var ErrConfigExists = errors.New("config.json already exists")

// RunWizard interactively builds the project config for the deck in dir and
// writes it to dir/config.json. The palette from .slidepack.yml is offered as
// the first preset.
func RunWizard(dir string, palette model.ThemeColors) (*model.ProjectConfig, error) {
	target := filepath.Join(dir, "config.json")
	if _, err := os.Stat(target); err == nil {
		return nil, fmt.Errorf("%s: %w", target, ErrConfigExists)
	}

	fmt.Println("Welcome to slidepack! Let's describe your deck.")
	fmt.Println()

	titlePrompt := promptui.Prompt{
		Label:   "Deck title",
		Default: filepath.Base(absOrSelf(dir)),
		Validate: func(s string) error {
			if strings.TrimSpace(s) == "" {
				return errors.New("title is required")
			}
			return nil
		},
	}
	title, err := titlePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("title: %w", err)
	}

	cfg := model.DefaultConfig(strings.TrimSpace(title))

	for _, field := range []struct {
		label string
		dst   *string
	}{
		{"Description", &cfg.Description},
		{"Author", &cfg.Author},
		{"Company", &cfg.Company},
	} {
		p := promptui.Prompt{Label: field.label}
		v, err := p.Run()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", strings.ToLower(field.label), err)
		}
		*field.dst = strings.TrimSpace(v)
	}

	paletteItems := append([]string{"configured (.slidepack.yml)"}, PaletteNames...)
	palettePrompt := promptui.Select{
		Label: "Select a color palette",
		Items: paletteItems,
	}
	idx, _, err := palettePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("palette selection: %w", err)
	}
	colors := palette
	if idx > 0 {
		colors = Palettes[PaletteNames[idx-1]]
	}
	cfg.ThemeColors = &colors

	transitionPrompt := promptui.Select{
		Label: "Slide transition",
		Items: []model.Transition{model.TransitionFade, model.TransitionSlide, model.TransitionNone},
	}
	_, transition, err := transitionPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("transition selection: %w", err)
	}
	settings := model.DefaultSettings()
	settings.Transition = model.Transition(transition)
	settings.Loop = confirm("Loop back to the first slide at the end")
	settings.AutoPlay = confirm("Advance slides automatically")
	cfg.Settings = &settings

	slides, err := ManifestFor(dir)
	if err != nil {
		return nil, err
	}
	cfg.Slides = slides

	if err := WriteProjectConfig(target, cfg); err != nil {
		return nil, err
	}
	fmt.Printf("\nProject config saved to %s (%d slides)\n", target, len(slides))
	return cfg, nil
}

// confirm asks a yes/no question. Anything other than an explicit yes is no.
func confirm(label string) bool {
	p := promptui.Prompt{Label: label, IsConfirm: true}
	_, err := p.Run()
	return err == nil
}

// ManifestFor lists the HTML slides directly in dir, or in dir/slides when
// present, as manifest entries in filename order.
func ManifestFor(dir string) ([]model.ManifestEntry, error) {
	slideDir := dir
	if fi, err := os.Stat(filepath.Join(dir, "slides")); err == nil && fi.IsDir() {
		slideDir = filepath.Join(dir, "slides")
	}
	entries, err := os.ReadDir(slideDir)
	if err != nil {
		return nil, fmt.Errorf("listing slides in %s: %w", slideDir, err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".html") || e.Name() == "index.html" {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	manifest := make([]model.ManifestEntry, len(names))
	for i, n := range names {
		manifest[i] = model.ManifestEntry{File: n}
	}
	return manifest, nil
}

// WriteProjectConfig writes cfg as indented JSON.
func WriteProjectConfig(path string, cfg *model.ProjectConfig) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling project config: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("writing project config to %s: %w", path, err)
	}
	return nil
}

func absOrSelf(dir string) string {
	if abs, err := filepath.Abs(dir); err == nil {
		return abs
	}
	return dir
}
