// Package theme compiles palettes into stylesheets and injects stylesheets
// into slide documents.
package theme

import (
	"regexp"
	"strings"

	"github.com/ziadkadry99/slidepack/internal/model"
)

// headClose is the marker a stylesheet is spliced in front of. The match is
// case-sensitive.
const headClose = "</head>"

// PreviewTitle is the title of documents built around body-only fragments.
const PreviewTitle = "Slide Preview"

// CompilePalette renders the palette into the base slide stylesheet. Color
// values are substituted as-is without validation.
func CompilePalette(colors model.ThemeColors) string {
	r := strings.NewReplacer(
		"{{primary}}", colors.Primary,
		"{{secondary}}", colors.Secondary,
		"{{accent}}", colors.Accent,
		"{{background}}", colors.Background,
		"{{surface}}", colors.Surface,
		"{{textPrimary}}", colors.TextPrimary,
		"{{textSecondary}}", colors.TextSecondary,
		"{{border}}", colors.Border,
	)
	return r.Replace(paletteTemplate)
}

// InjectStylesheet places css in a style block. Documents with a closing head
// tag get the block right before it; anything else is treated as a body
// fragment and wrapped in a minimal document. Calling it twice stacks two
// style blocks.
func InjectStylesheet(html, css string) string {
	block := "<style>" + css + "</style>"
	if i := strings.Index(html, headClose); i >= 0 {
		return html[:i] + block + html[i:]
	}

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n")
	b.WriteString("  <meta charset=\"UTF-8\">\n")
	b.WriteString("  <meta name=\"viewport\" content=\"width=device-width, initial-scale=1.0\">\n")
	b.WriteString("  <title>" + PreviewTitle + "</title>\n")
	b.WriteString("  " + block + "\n")
	b.WriteString("</head>\n<body>\n")
	b.WriteString(html)
	b.WriteString("\n</body>\n</html>\n")
	return b.String()
}

// Stylesheet resolves the stylesheet a project applies to its slides. A
// free-form theme wins over the structured palette.
func Stylesheet(p *model.Project) (string, bool) {
	if p == nil {
		return "", false
	}
	if p.Theme != "" {
		return p.Theme, true
	}
	if p.Config != nil && p.Config.ThemeColors != nil {
		return CompilePalette(*p.Config.ThemeColors), true
	}
	return "", false
}

// Apply injects the project's stylesheet into html, or returns html unchanged
// when the project has no theme.
func Apply(p *model.Project, html string) string {
	css, ok := Stylesheet(p)
	if !ok {
		return html
	}
	return InjectStylesheet(html, css)
}

var themeLinkRe = regexp.MustCompile(`(?i)<link[^>]*href=["'](?:\.\./)?theme\.css["'][^>]*>`)

// StripThemeLinks removes link tags pointing at theme.css or ../theme.css.
func StripThemeLinks(html string) string {
	return themeLinkRe.ReplaceAllString(html, "")
}
