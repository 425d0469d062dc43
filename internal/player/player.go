// Package player generates the self-contained HTML player shipped with
// standalone exports.
package player

import (
	"bytes"
	"fmt"
	"html/template"
	"net/url"
	"strings"

	"github.com/ziadkadry99/slidepack/internal/model"
)

// DefaultDuration is the auto-play dwell time, in seconds, for slides the
// manifest gives no duration.
const DefaultDuration = 5

// Colors are the annotation pen presets.
var Colors = []string{"#f44336", "#2196f3", "#4caf50", "#ff9800"}

var page = template.Must(template.New("player").Parse(pageTemplate))

type slideEntry struct {
	Src      string `json:"src"`
	Title    string `json:"title"`
	Duration int    `json:"duration"`
}

type settings struct {
	Loop         bool   `json:"loop"`
	AutoPlay     bool   `json:"autoPlay"`
	ShowControls bool   `json:"showControls"`
	Transition   string `json:"transition"`
}

type pageData struct {
	Title    string
	Slides   []slideEntry
	Settings settings
	Colors   []string
	Count    int
}

// Generate renders the player document for p. Slides are loaded from
// slides/<name>.html relative to the document.
func Generate(p *model.Project) (string, error) {
	if p == nil {
		return "", fmt.Errorf("no project")
	}

	data := pageData{
		Title:    p.Name,
		Slides:   make([]slideEntry, 0, len(p.Slides)),
		Settings: settingsFor(p.Config),
		Colors:   Colors,
		Count:    len(p.Slides),
	}
	if data.Title == "" {
		data.Title = model.DefaultProjectName
	}
	for i, s := range p.Slides {
		stem := model.SlideFileStem(s.Name, i)
		data.Slides = append(data.Slides, slideEntry{
			Src:      SlidePath(stem),
			Title:    s.Name,
			Duration: durationFor(p.Config, s.Name) * 1000,
		})
	}

	var buf bytes.Buffer
	if err := page.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering player: %w", err)
	}
	return buf.String(), nil
}

// SlidePath is the URL of a slide document relative to the player, with
// each path segment percent-encoded.
func SlidePath(stem string) string {
	segs := strings.Split(stem+".html", "/")
	for i, s := range segs {
		segs[i] = url.PathEscape(s)
	}
	return "slides/" + strings.Join(segs, "/")
}

func settingsFor(cfg *model.ProjectConfig) settings {
	s := model.DefaultSettings()
	if cfg != nil && cfg.Settings != nil {
		s = *cfg.Settings
	}
	return settings{
		Loop:         s.Loop,
		AutoPlay:     s.AutoPlay,
		ShowControls: s.ShowControls,
		Transition:   string(s.Transition.Normalize()),
	}
}

// durationFor finds the manifest dwell time for a slide, matching either the
// entry's title or its filename.
func durationFor(cfg *model.ProjectConfig, name string) int {
	if cfg != nil {
		for _, e := range cfg.Slides {
			if e.Duration <= 0 {
				continue
			}
			file := strings.TrimSuffix(strings.ReplaceAll(e.File, `\`, "/"), ".html")
			file = strings.TrimPrefix(file, "slides/")
			if e.Title == name || strings.EqualFold(file, name) {
				return e.Duration
			}
		}
	}
	return DefaultDuration
}
