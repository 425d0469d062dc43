package deck

import (
	"fmt"
	"strings"

	"github.com/ziadkadry99/slidepack/internal/model"
)

// Summary is the printable overview of a project.
type Summary struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Author     string         `json:"author,omitempty"`
	Company    string         `json:"company,omitempty"`
	HasConfig  bool           `json:"hasConfig"`
	HasTheme   bool           `json:"hasTheme"`
	Manifest   bool           `json:"manifest"`
	Transition string         `json:"transition"`
	Slides     []SlideSummary `json:"slides"`
}

// SlideSummary describes one slide.
type SlideSummary struct {
	Order      int      `json:"order"`
	Name       string   `json:"name"`
	Bytes      int      `json:"bytes"`
	Assets     int      `json:"assets"`
	Unresolved []string `json:"unresolved,omitempty"`
}

// Summarize collects the overview of p.
func Summarize(p *model.Project) Summary {
	s := Summary{
		ID:         p.ID,
		Name:       p.Name,
		HasConfig:  p.Config != nil,
		HasTheme:   p.Theme != "",
		Transition: string(model.DefaultSettings().Transition),
		Slides:     make([]SlideSummary, 0, len(p.Slides)),
	}
	if c := p.Config; c != nil {
		s.Author, s.Company = c.Author, c.Company
		s.Manifest = c.HasManifest()
		if c.Settings != nil {
			s.Transition = string(c.Settings.Transition.Normalize())
		}
	}
	for _, sl := range p.Slides {
		ss := SlideSummary{Order: sl.Order, Name: sl.Name, Bytes: len(sl.HTML)}
		for _, a := range sl.Assets {
			if a.Resolved() {
				ss.Assets++
			} else {
				ss.Unresolved = append(ss.Unresolved, a.Filename)
			}
		}
		s.Slides = append(s.Slides, ss)
	}
	return s
}

// String renders the summary as plain text.
func (s Summary) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Project: %s\n", s.Name)
	fmt.Fprintf(&sb, "ID:      %s\n", s.ID)
	if s.Author != "" {
		fmt.Fprintf(&sb, "Author:  %s\n", s.Author)
	}
	if s.Company != "" {
		fmt.Fprintf(&sb, "Company: %s\n", s.Company)
	}
	fmt.Fprintf(&sb, "Config:  %s\n", yesNo(s.HasConfig))
	fmt.Fprintf(&sb, "Theme:   %s\n", yesNo(s.HasTheme))
	fmt.Fprintf(&sb, "Order:   %s\n", orderSource(s.Manifest))
	fmt.Fprintf(&sb, "Transition: %s\n", s.Transition)
	fmt.Fprintf(&sb, "\n%d slide(s):\n", len(s.Slides))
	for _, sl := range s.Slides {
		fmt.Fprintf(&sb, "  %2d. %s (%d bytes, %d asset(s))\n", sl.Order+1, sl.Name, sl.Bytes, sl.Assets)
		for _, u := range sl.Unresolved {
			fmt.Fprintf(&sb, "      missing: %s\n", u)
		}
	}
	return sb.String()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func orderSource(manifest bool) string {
	if manifest {
		return "manifest"
	}
	return "filename"
}
