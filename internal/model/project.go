package model

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultProjectName is used when neither the config nor a descriptor names
// the project.
const DefaultProjectName = "Untitled Project"

var (
	ErrSlideNotFound   = errors.New("slide not found")
	ErrIndexOutOfRange = errors.New("slide index out of range")
)

// NewID returns a fresh opaque identifier.
func NewID() string {
	return uuid.New().String()
}

// NewProject creates an empty project. An empty name gets the default.
func NewProject(name string) *Project {
	if name == "" {
		name = DefaultProjectName
	}
	now := time.Now()
	return &Project{
		ID:        NewID(),
		Name:      name,
		Slides:    []Slide{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Clone returns a copy of p that shares no slices with it. Asset payloads
// are treated as immutable and are not duplicated.
func (p *Project) Clone() *Project {
	c := *p
	c.Slides = make([]Slide, len(p.Slides))
	for i, s := range p.Slides {
		c.Slides[i] = s.clone()
	}
	if p.Config != nil {
		c.Config = p.Config.Clone()
	}
	return &c
}

func (s Slide) clone() Slide {
	if s.Assets != nil {
		assets := make([]Asset, len(s.Assets))
		copy(assets, s.Assets)
		s.Assets = assets
	}
	return s
}

// Clone returns a deep copy of the config.
func (c *ProjectConfig) Clone() *ProjectConfig {
	out := *c
	if c.ThemeColors != nil {
		colors := *c.ThemeColors
		out.ThemeColors = &colors
	}
	if c.Settings != nil {
		settings := *c.Settings
		out.Settings = &settings
	}
	if c.Slides != nil {
		out.Slides = make([]ManifestEntry, len(c.Slides))
		copy(out.Slides, c.Slides)
	}
	return &out
}

// Renumber sets every slide's Order to its position.
func Renumber(slides []Slide) {
	for i := range slides {
		slides[i].Order = i
	}
}

// OrderIsConsistent reports whether slides[i].Order == i holds for all slides.
func (p *Project) OrderIsConsistent() bool {
	for i, s := range p.Slides {
		if s.Order != i {
			return false
		}
	}
	return true
}

// IndexOf returns the position of the slide with the given id, or -1.
func (p *Project) IndexOf(id string) int {
	for i, s := range p.Slides {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// IndexOfName returns the position of the first slide with the given name, or -1.
func (p *Project) IndexOfName(name string) int {
	for i, s := range p.Slides {
		if s.Name == name {
			return i
		}
	}
	return -1
}

// edit clones p, applies fn to the copy and renumbers it.
func edit(p *Project, fn func(c *Project) error) (*Project, error) {
	c := p.Clone()
	if err := fn(c); err != nil {
		return nil, err
	}
	Renumber(c.Slides)
	c.UpdatedAt = time.Now()
	return c, nil
}

// AppendSlides returns a copy of p with the slides added at the end.
func AppendSlides(p *Project, slides ...Slide) *Project {
	c, _ := edit(p, func(c *Project) error {
		for _, s := range slides {
			c.Slides = append(c.Slides, s.clone())
		}
		return nil
	})
	return c
}

// InsertSlide returns a copy of p with s inserted at index.
func InsertSlide(p *Project, index int, s Slide) (*Project, error) {
	return edit(p, func(c *Project) error {
		if index < 0 || index > len(c.Slides) {
			return fmt.Errorf("insert at %d of %d: %w", index, len(c.Slides), ErrIndexOutOfRange)
		}
		c.Slides = append(c.Slides, Slide{})
		copy(c.Slides[index+1:], c.Slides[index:])
		c.Slides[index] = s.clone()
		return nil
	})
}

// RemoveSlide returns a copy of p without the slide with the given id.
func RemoveSlide(p *Project, id string) (*Project, error) {
	return edit(p, func(c *Project) error {
		i := c.IndexOf(id)
		if i < 0 {
			return fmt.Errorf("remove %q: %w", id, ErrSlideNotFound)
		}
		c.Slides = append(c.Slides[:i], c.Slides[i+1:]...)
		return nil
	})
}

// MoveSlide returns a copy of p with the slide at from moved to position to.
func MoveSlide(p *Project, from, to int) (*Project, error) {
	return edit(p, func(c *Project) error {
		n := len(c.Slides)
		if from < 0 || from >= n || to < 0 || to >= n {
			return fmt.Errorf("move %d -> %d of %d: %w", from, to, n, ErrIndexOutOfRange)
		}
		s := c.Slides[from]
		c.Slides = append(c.Slides[:from], c.Slides[from+1:]...)
		c.Slides = append(c.Slides, Slide{})
		copy(c.Slides[to+1:], c.Slides[to:])
		c.Slides[to] = s
		return nil
	})
}

// ReorderSlides returns a copy of p whose slides follow the given id order.
// ids must be a permutation of the current slide ids.
func ReorderSlides(p *Project, ids []string) (*Project, error) {
	return edit(p, func(c *Project) error {
		if len(ids) != len(c.Slides) {
			return fmt.Errorf("reorder: got %d ids for %d slides: %w", len(ids), len(c.Slides), ErrSlideNotFound)
		}
		byID := make(map[string]Slide, len(c.Slides))
		for _, s := range c.Slides {
			byID[s.ID] = s
		}
		ordered := make([]Slide, 0, len(ids))
		for _, id := range ids {
			s, ok := byID[id]
			if !ok {
				return fmt.Errorf("reorder %q: %w", id, ErrSlideNotFound)
			}
			delete(byID, id)
			ordered = append(ordered, s)
		}
		c.Slides = ordered
		return nil
	})
}

// ReplaceSlide returns a copy of p with the slide matching s.ID replaced by s.
func ReplaceSlide(p *Project, s Slide) (*Project, error) {
	return edit(p, func(c *Project) error {
		i := c.IndexOf(s.ID)
		if i < 0 {
			return fmt.Errorf("replace %q: %w", s.ID, ErrSlideNotFound)
		}
		c.Slides[i] = s.clone()
		return nil
	})
}

// WithConfig returns a copy of p carrying cfg. A non-empty title also
// becomes the project name.
func WithConfig(p *Project, cfg *ProjectConfig) *Project {
	c, _ := edit(p, func(c *Project) error {
		if cfg == nil {
			c.Config = nil
			return nil
		}
		c.Config = cfg.Clone()
		if cfg.Title != "" {
			c.Name = cfg.Title
		}
		return nil
	})
	return c
}

// WithTheme returns a copy of p with the free-form stylesheet set.
func WithTheme(p *Project, css string) *Project {
	c, _ := edit(p, func(c *Project) error {
		c.Theme = css
		return nil
	})
	return c
}

// SyncManifest returns a copy of p whose manifest is p.Manifest(), so the
// order survives a save and re-import. A project without config gets a
// minimal one titled after the project.
func SyncManifest(p *Project) *Project {
	c, _ := edit(p, func(c *Project) error {
		if c.Config == nil {
			c.Config = &ProjectConfig{Title: c.Name}
		}
		c.Config.Slides = c.Manifest()
		return nil
	})
	return c
}

// Manifest lists every slide in its current order, each entry naming the
// file the slide is written to. A slide whose name differs from its file stem
// carries the name as title. Titles and durations of existing entries that
// still name a slide are kept.
func (p *Project) Manifest() []ManifestEntry {
	var old []ManifestEntry
	if p.Config != nil {
		old = p.Config.Slides
	}
	entries := make([]ManifestEntry, 0, len(p.Slides))
	for i, s := range p.Slides {
		stem := SlideFileStem(s.Name, i)
		e := ManifestEntry{File: stem + ".html"}
		if stem != s.Name {
			e.Title = s.Name
		}
		for _, o := range old {
			titled := o.Title != "" && o.Title == s.Name
			file := strings.TrimPrefix(CleanRelPath(o.File), "slides/")
			if titled || strings.EqualFold(file, e.File) {
				if titled {
					e.Title = o.Title
				}
				e.Duration = o.Duration
				break
			}
		}
		entries = append(entries, e)
	}
	return entries
}
