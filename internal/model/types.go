// Package model defines the project, slide and asset value types shared by
// every slidepack component.
package model

import (
	"fmt"
	"path"
	"strings"
	"time"
)

// AssetType classifies a slide resource by file extension.
type AssetType string

const (
	AssetImage AssetType = "image"
	AssetCSS   AssetType = "css"
	AssetJS    AssetType = "js"
	AssetOther AssetType = "other"
)

// imageExtensions are the extensions treated as images.
var imageExtensions = map[string]bool{
	"jpg":  true,
	"jpeg": true,
	"png":  true,
	"gif":  true,
	"svg":  true,
	"webp": true,
	"bmp":  true,
	"ico":  true,
	"avif": true,
}

// AssetTypeOf infers the asset type from the filename extension. The check is
// case-insensitive and ignores any query string or fragment.
func AssetTypeOf(filename string) AssetType {
	name := filename
	if i := strings.IndexAny(name, "?#"); i >= 0 {
		name = name[:i]
	}
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(name), "."))
	switch {
	case imageExtensions[ext]:
		return AssetImage
	case ext == "css":
		return AssetCSS
	case ext == "js":
		return AssetJS
	default:
		return AssetOther
	}
}

// Asset is a resource referenced from a slide's HTML. An empty Content means
// the reference could not be resolved, which is a valid state.
type Asset struct {
	Filename string    `json:"filename"`
	Content  []byte    `json:"content,omitempty"`
	Type     AssetType `json:"type"`
}

// Resolved reports whether the asset carries a payload.
func (a Asset) Resolved() bool { return len(a.Content) > 0 }

// Slide is one HTML document plus its local resources.
type Slide struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	HTML      string  `json:"html"`
	Order     int     `json:"order"`
	Assets    []Asset `json:"assets"`
	Thumbnail string  `json:"thumbnail,omitempty"`
}

// Project is a named, ordered deck of slides with optional metadata.
type Project struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Slides       []Slide        `json:"slides"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
	Config       *ProjectConfig `json:"config,omitempty"`
	Theme        string         `json:"theme,omitempty"`
	SourcePath   string         `json:"sourcePath,omitempty"`
	SourceDigest string         `json:"sourceDigest,omitempty"`
}

// Descriptor is the persisted identity of a project (project.json).
type Descriptor struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Descriptor returns the persisted identity fields of p.
func (p *Project) Descriptor() Descriptor {
	return Descriptor{
		ID:        p.ID,
		Name:      p.Name,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// SlideNames returns the slide names in project order.
func (p *Project) SlideNames() []string {
	names := make([]string, len(p.Slides))
	for i, s := range p.Slides {
		names[i] = s.Name
	}
	return names
}

// CleanRelPath confines a slash-separated name to its root: backslashes become
// slashes and any leading "/" or ".." segments are dropped. It returns "" when
// nothing is left.
func CleanRelPath(name string) string {
	name = strings.ReplaceAll(name, `\`, "/")
	cleaned := path.Clean("/" + name)[1:]
	return cleaned
}

// SlideFileStem is the archive stem for a slide: its name confined to the
// slides directory, or slide-N when the name is unusable.
func SlideFileStem(name string, index int) string {
	stem := CleanRelPath(name)
	if stem == "" {
		return fmt.Sprintf("slide-%d", index+1)
	}
	return stem
}
