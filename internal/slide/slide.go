// Package slide turns uploaded HTML and Markdown files into model slides.
package slide

import (
	"fmt"
	"path"
	"regexp"
	"strings"

	"github.com/ziadkadry99/slidepack/internal/model"
)

// refRe matches src and href attribute values in document order.
var refRe = regexp.MustCompile(`(?i)\b(src|href)\s*=\s*["']([^"']+)["']`)

// ScanAssets records every local resource reference in html: each src value
// that is not a data URI, and each href ending in .css or .js. Content is
// left empty and the list is not deduplicated.
func ScanAssets(html string) []model.Asset {
	var assets []model.Asset
	for _, m := range refRe.FindAllStringSubmatch(html, -1) {
		attr, ref := strings.ToLower(m[1]), strings.TrimSpace(m[2])
		if ref == "" || IsDataURI(ref) {
			continue
		}
		typ := model.AssetTypeOf(ref)
		if attr == "href" && typ != model.AssetCSS && typ != model.AssetJS {
			continue
		}
		assets = append(assets, model.Asset{Filename: ref, Type: typ})
	}
	return assets
}

// IsDataURI reports whether ref is an inline data: URI.
func IsDataURI(ref string) bool {
	return len(ref) >= 5 && strings.EqualFold(ref[:5], "data:")
}

var schemeRe = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9+.\-]*:`)

// IsRemote reports whether ref points outside the package: anything with a
// URI scheme or a protocol-relative //host prefix.
func IsRemote(ref string) bool {
	return strings.HasPrefix(ref, "//") || schemeRe.MatchString(ref)
}

// NameFromFilename strips directories and the document extension.
func NameFromFilename(filename string) string {
	base := path.Base(strings.ReplaceAll(filename, `\`, "/"))
	ext := path.Ext(base)
	switch strings.ToLower(ext) {
	case ".html", ".htm", ".md", ".markdown":
		return strings.TrimSuffix(base, ext)
	}
	return base
}

// Parse builds a slide from an uploaded HTML document. Every call yields a
// new id, even for identical input.
func Parse(filename, html string) model.Slide {
	return model.Slide{
		ID:     model.NewID(),
		Name:   NameFromFilename(filename),
		HTML:   html,
		Assets: ScanAssets(html),
	}
}

// IsHTML reports whether the filename has an HTML extension.
func IsHTML(filename string) bool {
	ext := strings.ToLower(path.Ext(filename))
	return ext == ".html" || ext == ".htm"
}

// IsMarkdown reports whether the filename has a Markdown extension.
func IsMarkdown(filename string) bool {
	ext := strings.ToLower(path.Ext(filename))
	return ext == ".md" || ext == ".markdown"
}

// ParseFile dispatches on the file extension.
func ParseFile(filename string, data []byte) (model.Slide, error) {
	switch {
	case IsHTML(filename):
		return Parse(filename, string(data)), nil
	case IsMarkdown(filename):
		return FromMarkdown(filename, data)
	default:
		return model.Slide{}, fmt.Errorf("unsupported slide file %q: expected .html or .md", filename)
	}
}
