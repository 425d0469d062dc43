// Package archive reads and writes slide deck packages.
package archive

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"

	"go.uber.org/zap"

	"github.com/ziadkadry99/slidepack/internal/model"
	"github.com/ziadkadry99/slidepack/internal/slide"
)

// Well-known package entries.
const (
	ConfigEntry   = "config.json"
	ThemeEntry    = "theme.css"
	ProjectEntry  = "project.json"
	IndexEntry    = "index.html"
	ReadmeEntry   = "README.txt"
	PlaybackEntry = "PLAYBACK.txt"

	slidesDir   = "slides/"
	assetMarker = "_assets"
	htmlExt     = ".html"
)

// DefaultMaxEntrySize bounds a single archive entry.
const DefaultMaxEntrySize int64 = 64 << 20

// Reader imports packages. It holds no mutable state and is safe for
// concurrent use.
type Reader struct {
	options
}

// NewReader returns a Reader with the given options applied.
func NewReader(opts ...Option) *Reader {
	return &Reader{options: newOptions(opts)}
}

var defaultReader = NewReader()

// ImportFromArchive imports a zip package with the default reader.
func ImportFromArchive(ctx context.Context, data []byte) (*model.Project, error) {
	return defaultReader.ImportFromArchive(ctx, data)
}

// ImportFromFileSet imports a flat file set with the default reader.
func ImportFromFileSet(ctx context.Context, files []NamedFile) (*model.Project, error) {
	return defaultReader.ImportFromFileSet(ctx, files)
}

// metadata holds the optional package-level entries.
type metadata struct {
	config   *model.ProjectConfig
	theme    string
	legacy   *legacyDescriptor
	hasTheme bool
}

// legacyDescriptor is project.json read loosely, so odd timestamp formats
// degrade instead of failing the whole entry.
type legacyDescriptor struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// ImportFromArchive reconstructs a project from zip bytes. Only an unreadable
// archive is an error; malformed metadata, oversized entries and missing
// assets are logged and skipped.
func (r *Reader) ImportFromArchive(ctx context.Context, data []byte) (*model.Project, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, &FormatError{Err: err}
	}

	root := commonRoot(zr.File)
	entries := make(map[string]*zip.File, len(zr.File))
	var order []string
	for _, f := range zr.File {
		if f.FileInfo().IsDir() || strings.HasPrefix(f.Name, "__MACOSX/") {
			continue
		}
		name := strings.TrimPrefix(f.Name, root)
		if _, dup := entries[name]; dup {
			r.logger.Warn("duplicate archive entry, keeping first", zap.String("entry", f.Name))
			continue
		}
		entries[name] = f
		order = append(order, name)
	}

	read := func(name string) ([]byte, bool) {
		f, ok := entries[name]
		if !ok {
			return nil, false
		}
		if f.UncompressedSize64 > uint64(r.maxEntrySize) {
			r.logger.Warn("skipping oversized entry",
				zap.String("entry", name),
				zap.Uint64("size", f.UncompressedSize64),
				zap.Int64("limit", r.maxEntrySize))
			return nil, false
		}
		b, err := r.readEntry(f)
		if err != nil {
			r.logger.Warn("skipping unreadable entry", zap.String("entry", name), zap.Error(err))
			return nil, false
		}
		return b, true
	}

	var meta metadata
	if b, ok := read(ConfigEntry); ok {
		meta.config = r.parseConfig(ConfigEntry, b)
	}
	if b, ok := read(ThemeEntry); ok {
		meta.theme, meta.hasTheme = string(b), true
	}
	if b, ok := read(ProjectEntry); ok {
		meta.legacy = r.parseLegacy(ProjectEntry, b)
	}

	var cands []candidate
	for _, name := range order {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !isArchiveSlide(name) {
			continue
		}
		b, ok := read(name)
		if !ok {
			continue
		}
		rel := strings.TrimPrefix(name, slidesDir)
		cands = append(cands, candidate{
			key:  KeyOf(rel),
			sort: name,
			stem: strings.TrimSuffix(rel, htmlExt),
			dir:  path.Dir(name),
			html: string(b),
		})
	}

	p, err := r.assemble(ctx, meta, cands, read)
	if err != nil {
		return nil, err
	}
	r.logger.Debug("imported archive",
		zap.String("project", p.Name),
		zap.Int("slides", len(p.Slides)),
		zap.Int("entries", len(order)))
	return p, nil
}

func (r *Reader) readEntry(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	b, err := io.ReadAll(io.LimitReader(rc, r.maxEntrySize+1))
	if err != nil {
		return nil, err
	}
	if int64(len(b)) > r.maxEntrySize {
		return nil, fmt.Errorf("entry exceeds %d bytes", r.maxEntrySize)
	}
	return b, nil
}

func isArchiveSlide(name string) bool {
	return strings.HasPrefix(name, slidesDir) &&
		strings.HasSuffix(name, htmlExt) &&
		!strings.Contains(name, assetMarker)
}

// commonRoot returns the single top-level directory every entry lives under,
// with its trailing slash, when the package has no slides/ directory of its
// own. Archives zipped from a parent folder are read as if zipped in place.
func commonRoot(files []*zip.File) string {
	root := ""
	for _, f := range files {
		if strings.HasPrefix(f.Name, "__MACOSX/") {
			continue
		}
		if strings.HasPrefix(f.Name, slidesDir) {
			return ""
		}
		i := strings.Index(f.Name, "/")
		if i < 0 {
			return ""
		}
		top := f.Name[:i+1]
		if root == "" {
			root = top
		} else if top != root {
			return ""
		}
	}
	return root
}

func (r *Reader) parseConfig(entry string, b []byte) *model.ProjectConfig {
	var cfg model.ProjectConfig
	if err := json.Unmarshal(b, &cfg); err != nil {
		r.logger.Warn("ignoring malformed project config", zap.Error(&ConfigError{Entry: entry, Err: err}))
		return nil
	}
	return &cfg
}

func (r *Reader) parseLegacy(entry string, b []byte) *legacyDescriptor {
	var d legacyDescriptor
	if err := json.Unmarshal(b, &d); err != nil {
		r.logger.Warn("ignoring malformed project descriptor", zap.Error(&ConfigError{Entry: entry, Err: err}))
		return nil
	}
	return &d
}

// lookupFunc fetches a package entry by its slash-separated path.
type lookupFunc func(name string) ([]byte, bool)

// assemble reconciles the candidates and builds the project. A nil lookup
// leaves every slide without assets.
func (r *Reader) assemble(ctx context.Context, meta metadata, cands []candidate, lookup lookupFunc) (*model.Project, error) {
	var manifest []model.ManifestEntry
	if meta.config != nil {
		manifest = meta.config.Slides
	}

	now := r.now()
	p := &model.Project{
		ID:        r.newID(),
		Name:      model.DefaultProjectName,
		CreatedAt: now,
		UpdatedAt: now,
		Config:    meta.config,
	}
	if meta.hasTheme {
		p.Theme = meta.theme
	}

	if meta.legacy != nil {
		if meta.legacy.Name != "" {
			p.Name = meta.legacy.Name
		}
		if t, ok := model.ParseTimestamp(meta.legacy.CreatedAt); ok {
			p.CreatedAt = t
		}
		if t, ok := model.ParseTimestamp(meta.legacy.UpdatedAt); ok {
			p.UpdatedAt = t
		}
	}
	if cfg := meta.config; cfg != nil {
		if cfg.Title != "" {
			p.Name = cfg.Title
		}
		if t, ok := cfg.ParseCreated(); ok {
			p.CreatedAt = t
		}
		if t, ok := cfg.ParseModified(); ok {
			p.UpdatedAt = t
		}
	}

	ordered := reconcile(manifest, cands)
	p.Slides = make([]model.Slide, 0, len(ordered))
	for i, c := range ordered {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		s := model.Slide{
			ID:    r.newID(),
			Name:  c.name,
			HTML:  c.html,
			Order: i,
		}
		if lookup != nil {
			s.Assets = r.resolveAssets(c, lookup)
		}
		p.Slides = append(p.Slides, s)
	}
	return p, nil
}

// resolveAssets attaches every local reference in the slide's HTML. Each is
// looked up in the slide's asset directory first, then relative to the slide
// document. Misses are kept with empty content.
func (r *Reader) resolveAssets(c placed, lookup lookupFunc) []model.Asset {
	refs := slide.ScanAssets(c.html)
	if len(refs) == 0 {
		return nil
	}
	assetDirs := []string{path.Join(c.dir, path.Base(c.stem)+assetMarker)}
	if c.name != c.stem {
		assetDirs = append(assetDirs, path.Join(c.dir, path.Base(model.CleanRelPath(c.name))+assetMarker))
	}

	assets := make([]model.Asset, 0, len(refs))
	for _, a := range refs {
		if slide.IsRemote(a.Filename) {
			continue
		}
		ref := localPath(a.Filename)
		var tried []string
		for _, dir := range assetDirs {
			tried = append(tried, path.Join(dir, strings.TrimPrefix(ref, "/")))
		}
		if strings.HasPrefix(ref, "/") {
			tried = append(tried, strings.TrimPrefix(path.Clean(ref), "/"))
		} else {
			tried = append(tried, path.Join(c.dir, ref))
		}
		for _, name := range tried {
			if b, ok := lookup(name); ok {
				a.Content = b
				break
			}
		}
		if !a.Resolved() {
			r.logger.Warn("slide asset unresolved",
				zap.Error(&AssetUnresolvedError{Slide: c.name, Ref: a.Filename}))
		}
		assets = append(assets, a)
	}
	return assets
}

// localPath strips any query or fragment from a reference and decodes
// percent escapes.
func localPath(ref string) string {
	if i := strings.IndexAny(ref, "?#"); i >= 0 {
		ref = ref[:i]
	}
	if u, err := url.PathUnescape(ref); err == nil {
		ref = u
	}
	return strings.ReplaceAll(ref, `\`, "/")
}
