package walker

import (
	"path/filepath"
	"strings"
)

// Kind classifies a file found in a deck directory.
type Kind string

const (
	KindSlide      Kind = "slide"
	KindMarkdown   Kind = "markdown"
	KindConfig     Kind = "config"
	KindTheme      Kind = "theme"
	KindDescriptor Kind = "descriptor"
	KindAsset      Kind = "asset"
)

// metadataFiles maps well-known package file names to their kind.
var metadataFiles = map[string]Kind{
	"config.json":  KindConfig,
	"theme.css":    KindTheme,
	"project.json": KindDescriptor,
}

// DetectKind returns the kind of the file at relPath. Anything inside an
// asset directory is an asset regardless of its extension.
func DetectKind(relPath string) Kind {
	slash := strings.ToLower(filepath.ToSlash(relPath))
	if strings.Contains(slash, "_assets/") {
		return KindAsset
	}
	base := slash[strings.LastIndex(slash, "/")+1:]
	if k, ok := metadataFiles[base]; ok {
		return k
	}
	switch filepath.Ext(base) {
	case ".html", ".htm":
		return KindSlide
	case ".md", ".markdown":
		return KindMarkdown
	default:
		return KindAsset
	}
}
