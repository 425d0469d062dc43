package walker

import (
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/ziadkadry99/slidepack/internal/archive"
	"github.com/ziadkadry99/slidepack/internal/slide"
)

// LoadFileSet reads the collected files into a file set for
// archive.ImportFromFileSet. Markdown files are rendered to HTML slides
// unless an HTML file with the same stem sits next to them.
func LoadFileSet(files []FileInfo) ([]archive.NamedFile, error) {
	html := make(map[string]bool)
	for _, f := range files {
		if f.Kind == KindSlide {
			html[strings.ToLower(stem(f.RelPath))] = true
		}
	}

	set := make([]archive.NamedFile, 0, len(files))
	for _, f := range files {
		data, err := os.ReadFile(f.Path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", f.RelPath, err)
		}
		name, rel := path.Base(f.RelPath), f.RelPath

		if f.Kind == KindMarkdown {
			if html[strings.ToLower(stem(f.RelPath))] {
				continue
			}
			s, err := slide.FromMarkdown(name, data)
			if err != nil {
				return nil, err
			}
			rel = stem(f.RelPath) + ".html"
			name = path.Base(rel)
			data = []byte(s.HTML)
		}

		set = append(set, archive.NamedFile{Name: name, Path: rel, Data: data})
	}
	return set, nil
}

func stem(relPath string) string {
	return strings.TrimSuffix(relPath, path.Ext(relPath))
}
