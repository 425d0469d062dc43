// Package deck loads decks from disk for the command line and MCP front
// ends: a saved archive, a deck directory, or loose slide files.
package deck

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/ziadkadry99/slidepack/internal/archive"
	"github.com/ziadkadry99/slidepack/internal/model"
	"github.com/ziadkadry99/slidepack/internal/slide"
	"github.com/ziadkadry99/slidepack/internal/walker"
)

// Options controls how decks are collected.
type Options struct {
	Logger       *zap.Logger
	Include      []string
	Exclude      []string
	MaxEntrySize int64
}

func (o Options) reader() *archive.Reader {
	opts := []archive.Option{archive.WithFileSetAssets(true)}
	if o.Logger != nil {
		opts = append(opts, archive.WithLogger(o.Logger))
	}
	if o.MaxEntrySize > 0 {
		opts = append(opts, archive.WithMaxEntrySize(o.MaxEntrySize))
	}
	return archive.NewReader(opts...)
}

// IsArchive reports whether src names a zip package.
func IsArchive(src string) bool {
	return strings.EqualFold(filepath.Ext(src), ".zip")
}

// Load reads a deck from src, which is either a .zip package or a deck
// directory. The returned project records src as its SourcePath and a digest
// of the collected content as its SourceDigest.
func Load(ctx context.Context, src string, opts Options) (*model.Project, error) {
	fi, err := os.Stat(src)
	if err != nil {
		return nil, err
	}

	var (
		p      *model.Project
		digest string
	)
	if fi.IsDir() {
		p, digest, err = loadDir(ctx, src, opts)
	} else {
		var data []byte
		data, err = os.ReadFile(src)
		if err != nil {
			return nil, err
		}
		p, err = opts.reader().ImportFromArchive(ctx, data)
		digest = walker.DigestBytes(data)
	}
	if err != nil {
		return nil, err
	}
	p.SourcePath = src
	p.SourceDigest = digest
	return p, nil
}

func loadDir(ctx context.Context, dir string, opts Options) (*model.Project, string, error) {
	files, err := walker.Walk(walker.WalkerConfig{
		RootDir:     dir,
		Include:     opts.Include,
		Exclude:     opts.Exclude,
		MaxFileSize: opts.MaxEntrySize,
	})
	if err != nil {
		return nil, "", err
	}
	set, err := walker.LoadFileSet(files)
	if err != nil {
		return nil, "", err
	}
	p, err := opts.reader().ImportFromFileSet(ctx, set)
	if err != nil {
		return nil, "", err
	}
	return p, walker.Digest(files), nil
}

// FromFiles builds a project from explicit .html and .md files, in the
// order given. Name defaults to the default project name.
func FromFiles(name string, paths []string) (*model.Project, error) {
	if name == "" {
		name = model.DefaultProjectName
	}
	slides := make([]model.Slide, 0, len(paths))
	for _, path := range paths {
		s, err := ParseSlideFile(path)
		if err != nil {
			return nil, err
		}
		slides = append(slides, s)
	}
	return model.AppendSlides(model.NewProject(name), slides...), nil
}

// ParseSlideFile reads one slide from disk. Local assets sitting next to the
// slide are attached when they exist.
func ParseSlideFile(path string) (model.Slide, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Slide{}, err
	}
	s, err := slide.ParseFile(filepath.Base(path), data)
	if err != nil {
		return model.Slide{}, err
	}

	dir := filepath.Dir(path)
	assetDir := filepath.Join(dir, s.Name+"_assets")
	for i, a := range s.Assets {
		if slide.IsRemote(a.Filename) {
			continue
		}
		ref := a.Filename
		if j := strings.IndexAny(ref, "?#"); j >= 0 {
			ref = ref[:j]
		}
		rel := filepath.FromSlash(model.CleanRelPath(ref))
		if rel == "" {
			continue
		}
		for _, candidate := range []string{filepath.Join(assetDir, rel), filepath.Join(dir, rel)} {
			if b, err := os.ReadFile(candidate); err == nil {
				s.Assets[i].Content = b
				break
			}
		}
	}
	return s, nil
}

// WriteFile writes data to path through a temporary file in the same
// directory so a failed write leaves any existing file intact.
func WriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".slidepack-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
