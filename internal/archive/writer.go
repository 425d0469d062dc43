package archive

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"

	"go.uber.org/zap"

	"github.com/ziadkadry99/slidepack/internal/model"
	"github.com/ziadkadry99/slidepack/internal/player"
	"github.com/ziadkadry99/slidepack/internal/theme"
)

// Mode selects the archive flavor.
type Mode int

const (
	// ModeEditable preserves everything needed to reopen the project.
	ModeEditable Mode = iota
	// ModeStandalone produces a self-playing package with themes inlined.
	ModeStandalone
)

func (m Mode) String() string {
	switch m {
	case ModeEditable:
		return "editable"
	case ModeStandalone:
		return "standalone"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Writer serializes projects. It holds no mutable state and is safe for
// concurrent use.
type Writer struct {
	options
}

// NewWriter returns a Writer with the given options applied.
func NewWriter(opts ...Option) *Writer {
	return &Writer{options: newOptions(opts)}
}

var defaultWriter = NewWriter()

// SaveProject writes an editable archive with the default writer.
func SaveProject(ctx context.Context, p *model.Project) ([]byte, error) {
	return defaultWriter.Write(ctx, p, ModeEditable)
}

// ExportProject writes a standalone archive with the default writer.
func ExportProject(ctx context.Context, p *model.Project) ([]byte, error) {
	return defaultWriter.Write(ctx, p, ModeStandalone)
}

type entry struct {
	name string
	data []byte
}

// entrySet keeps entries in insertion order. Re-adding a name replaces the
// earlier data in place.
type entrySet struct {
	logger  *zap.Logger
	entries []entry
	index   map[string]int
}

func (s *entrySet) add(name string, data []byte) {
	if i, ok := s.index[name]; ok {
		if !bytes.Equal(s.entries[i].data, data) {
			s.logger.Warn("duplicate archive entry, later one wins", zap.String("entry", name))
		}
		s.entries[i].data = data
		return
	}
	s.index[name] = len(s.entries)
	s.entries = append(s.entries, entry{name: name, data: data})
}

// Write serializes p in the given mode. The archive is built in memory and
// returned only when complete; any failure yields an *ExportError.
func (w *Writer) Write(ctx context.Context, p *model.Project, mode Mode) ([]byte, error) {
	fail := func(err error) ([]byte, error) {
		return nil, &ExportError{Mode: mode, Err: err}
	}
	if p == nil {
		return fail(fmt.Errorf("no project"))
	}

	set := &entrySet{logger: w.logger, index: make(map[string]int)}
	var err error
	switch mode {
	case ModeEditable:
		err = w.editableEntries(set, p)
	case ModeStandalone:
		err = w.standaloneEntries(set, p)
	default:
		err = fmt.Errorf("unknown mode %d", int(mode))
	}
	if err != nil {
		return fail(err)
	}

	modified := p.UpdatedAt
	if modified.IsZero() {
		modified = w.now()
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	total := len(set.entries)
	for i, e := range set.entries {
		if err := ctx.Err(); err != nil {
			zw.Close()
			return fail(err)
		}
		fw, err := zw.CreateHeader(&zip.FileHeader{
			Name:     e.name,
			Method:   zip.Deflate,
			Modified: modified,
		})
		if err != nil {
			zw.Close()
			return fail(fmt.Errorf("creating %s: %w", e.name, err))
		}
		if _, err := fw.Write(e.data); err != nil {
			zw.Close()
			return fail(fmt.Errorf("writing %s: %w", e.name, err))
		}
		if w.progress != nil {
			w.progress(i+1, total, e.name)
		}
	}
	if err := zw.Close(); err != nil {
		return fail(fmt.Errorf("finalizing archive: %w", err))
	}

	w.logger.Debug("wrote archive",
		zap.String("project", p.Name),
		zap.Stringer("mode", mode),
		zap.Int("entries", total),
		zap.Int("bytes", buf.Len()))
	return buf.Bytes(), nil
}

func (w *Writer) editableEntries(set *entrySet, p *model.Project) error {
	desc, err := json.MarshalIndent(p.Descriptor(), "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", ProjectEntry, err)
	}
	set.add(ProjectEntry, desc)

	if p.Config != nil {
		out := p.Config
		if out.HasManifest() {
			// Manifest files must name the entries written below.
			out = out.Clone()
			out.Slides = p.Manifest()
		}
		cfg, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding %s: %w", ConfigEntry, err)
		}
		set.add(ConfigEntry, cfg)
	}
	if p.Theme != "" {
		set.add(ThemeEntry, []byte(p.Theme))
	}

	for i, s := range p.Slides {
		stem := model.SlideFileStem(s.Name, i)
		set.add(slidesDir+stem+htmlExt, []byte(s.HTML))
		w.addAssets(set, stem, s.Assets)
	}

	notes, err := renderNotes(editableNotes, w.notesData(p))
	if err != nil {
		return err
	}
	set.add(ReadmeEntry, notes)
	return nil
}

func (w *Writer) standaloneEntries(set *entrySet, p *model.Project) error {
	for i, s := range p.Slides {
		stem := model.SlideFileStem(s.Name, i)
		html := theme.Apply(p, theme.StripThemeLinks(s.HTML))
		set.add(slidesDir+stem+htmlExt, []byte(html))
		w.addAssets(set, stem, s.Assets)
	}

	index, err := player.Generate(p)
	if err != nil {
		return fmt.Errorf("generating player: %w", err)
	}
	set.add(IndexEntry, []byte(index))

	notes, err := renderNotes(playbackNotes, w.notesData(p))
	if err != nil {
		return err
	}
	set.add(PlaybackEntry, notes)
	return nil
}

// addAssets writes resolved assets under the slide's asset directory.
// Unresolved assets are omitted.
func (w *Writer) addAssets(set *entrySet, stem string, assets []model.Asset) {
	dir := slidesDir + stem + assetMarker
	for _, a := range assets {
		if !a.Resolved() {
			continue
		}
		name := model.CleanRelPath(localPath(a.Filename))
		if name == "" {
			w.logger.Warn("skipping asset with unusable filename", zap.String("asset", a.Filename))
			continue
		}
		set.add(path.Join(dir, name), a.Content)
	}
}
