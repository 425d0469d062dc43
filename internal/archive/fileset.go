package archive

import (
	"context"
	"path"
	"strings"

	"go.uber.org/zap"

	"github.com/ziadkadry99/slidepack/internal/model"
)

// NamedFile is one item of a flat file set, as reported by a folder picker
// or directory walk. Name is the item's own filename; Path, when set, is its
// slash-separated path relative to the chosen folder.
type NamedFile struct {
	Name string
	Path string
	Data []byte
}

// relPath is the best available location of the file within the set.
func (f NamedFile) relPath() string {
	if f.Path != "" {
		return model.CleanRelPath(f.Path)
	}
	return model.CleanRelPath(f.Name)
}

// ImportFromFileSet reconstructs a project from loose files. Metadata files
// are recognized by case-insensitive base name; the first of each wins.
// Every other item whose name ends in .html and that is not inside an asset
// directory becomes a slide candidate.
func (r *Reader) ImportFromFileSet(ctx context.Context, files []NamedFile) (*model.Project, error) {
	var (
		meta       metadata
		seenConfig bool
		seenLegacy bool
		cands      []candidate
	)
	index := make(map[string][]byte, len(files))

	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if int64(len(f.Data)) > r.maxEntrySize {
			r.logger.Warn("skipping oversized file",
				zap.String("file", f.Name),
				zap.Int("size", len(f.Data)),
				zap.Int64("limit", r.maxEntrySize))
			continue
		}
		rel := f.relPath()
		if _, dup := index[rel]; !dup {
			index[rel] = f.Data
		}

		base := strings.ToLower(path.Base(strings.ReplaceAll(f.Name, `\`, "/")))
		switch {
		case base == ConfigEntry:
			if !seenConfig {
				seenConfig = true
				meta.config = r.parseConfig(f.Name, f.Data)
			}
		case base == ThemeEntry:
			if !meta.hasTheme {
				meta.theme, meta.hasTheme = string(f.Data), true
			}
		case base == ProjectEntry:
			if !seenLegacy {
				seenLegacy = true
				meta.legacy = r.parseLegacy(f.Name, f.Data)
			}
		case strings.HasSuffix(base, htmlExt) && !strings.Contains(strings.ToLower(rel), assetMarker):
			name := path.Base(strings.ReplaceAll(f.Name, `\`, "/"))
			cands = append(cands, candidate{
				key:  KeyOf(name),
				sort: name,
				stem: name[:len(name)-len(htmlExt)],
				dir:  path.Dir(rel),
				html: string(f.Data),
			})
		}
	}

	var lookup lookupFunc
	if r.fileSetAssets {
		lookup = func(name string) ([]byte, bool) {
			b, ok := index[name]
			return b, ok
		}
	}
	p, err := r.assemble(ctx, meta, cands, lookup)
	if err != nil {
		return nil, err
	}
	r.logger.Debug("imported file set",
		zap.String("project", p.Name),
		zap.Int("slides", len(p.Slides)),
		zap.Int("files", len(files)))
	return p, nil
}
