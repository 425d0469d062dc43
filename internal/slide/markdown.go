package slide

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	goldhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/ziadkadry99/slidepack/internal/model"
)

var markdown = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		highlighting.NewHighlighting(
			highlighting.WithStyle("github"),
		),
	),
	goldmark.WithParserOptions(
		parser.WithAutoHeadingID(),
	),
	goldmark.WithRendererOptions(
		goldhtml.WithUnsafe(),
	),
)

// FromMarkdown renders a Markdown file into a standalone slide document.
func FromMarkdown(filename string, src []byte) (model.Slide, error) {
	var body bytes.Buffer
	if err := markdown.Convert(src, &body); err != nil {
		return model.Slide{}, fmt.Errorf("converting %s: %w", filename, err)
	}

	name := NameFromFilename(filename)
	title := extractTitle(string(src), name)

	var doc strings.Builder
	doc.WriteString("<!DOCTYPE html>\n<html>\n<head>\n")
	doc.WriteString("  <meta charset=\"UTF-8\">\n")
	doc.WriteString("  <meta name=\"viewport\" content=\"width=device-width, initial-scale=1.0\">\n")
	doc.WriteString("  <title>" + html.EscapeString(title) + "</title>\n")
	doc.WriteString("</head>\n<body>\n<div class=\"container\">\n")
	doc.Write(body.Bytes())
	doc.WriteString("</div>\n</body>\n</html>\n")

	out := doc.String()
	return model.Slide{
		ID:     model.NewID(),
		Name:   name,
		HTML:   out,
		Assets: ScanAssets(out),
	}, nil
}

// extractTitle pulls the first # heading from markdown content, or falls back
// to the given name.
func extractTitle(content, fallback string) string {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "# ") {
			return strings.TrimPrefix(line, "# ")
		}
	}
	return fallback
}
