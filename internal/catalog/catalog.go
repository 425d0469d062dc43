// Package catalog keeps a local history of the archives slidepack has
// written.
package catalog

import (
	"time"

	"github.com/ziadkadry99/slidepack/internal/model"
)

// Operation names the command that produced an archive.
type Operation string

const (
	OpPack   Operation = "pack"
	OpExport Operation = "export"
	OpSave   Operation = "save"
	OpEdit   Operation = "edit"
)

// Entry is a single history record. SourceDigest fingerprints the deck the
// archive was built from; equal digests mean the source did not change.
type Entry struct {
	ID           string    `json:"id"`
	Timestamp    time.Time `json:"timestamp"`
	Operation    Operation `json:"operation"`
	ProjectID    string    `json:"projectId"`
	ProjectName  string    `json:"projectName"`
	SlideCount   int       `json:"slideCount"`
	AssetCount   int       `json:"assetCount"`
	Source       string    `json:"source,omitempty"`
	SourceDigest string    `json:"sourceDigest,omitempty"`
	Output       string    `json:"output,omitempty"`
	SizeBytes    int64     `json:"sizeBytes"`
	Slides       []string  `json:"slides"`
}

// EntryFor summarizes p as it was written by op. Only resolved assets are
// counted since those are the ones that reach the archive.
func EntryFor(op Operation, p *model.Project, source, output string, size int) Entry {
	e := Entry{
		Operation: op,
		Source:    source,
		Output:    output,
		SizeBytes: int64(size),
		Slides:    []string{},
	}
	if p == nil {
		return e
	}
	e.ProjectID = p.ID
	e.ProjectName = p.Name
	e.SourceDigest = p.SourceDigest
	e.SlideCount = len(p.Slides)
	for _, s := range p.Slides {
		e.Slides = append(e.Slides, s.Name)
		for _, a := range s.Assets {
			if a.Resolved() {
				e.AssetCount++
			}
		}
	}
	return e
}
