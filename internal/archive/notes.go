package archive

import (
	"bytes"
	"fmt"
	"text/template"
	"time"

	"github.com/ziadkadry99/slidepack/internal/model"
)

var noteFuncs = template.FuncMap{
	"inc": func(i int) int { return i + 1 },
}

var editableNotes = template.Must(template.New("readme").Funcs(noteFuncs).Parse(`Project: {{.Name}}
Slides: {{.Count}}

This archive is an editable slidepack project. Open it again with
"slidepack inspect", the editor, or any slidepack import endpoint.

Contents:
- project.json: project identity and timestamps
{{- if .HasConfig}}
- config.json: project settings, theme palette and slide manifest
{{- end}}
{{- if .HasTheme}}
- theme.css: project stylesheet
{{- end}}
- slides/: one HTML document per slide
- slides/*_assets/: images, styles and scripts referenced by each slide

Slide order:
{{- range $i, $name := .Slides}}
{{inc $i}}. {{$name}}
{{- end}}

Created: {{.Generated}}
`))

var playbackNotes = template.Must(template.New("playback").Funcs(noteFuncs).Parse(`{{.Name}}

To play this presentation, open index.html in a browser.

Keyboard controls:
- Right arrow or Space: next slide
- Left arrow: previous slide
- Home / End: first / last slide
- F: toggle fullscreen
- D: toggle the drawing tool
- Ctrl+C or Cmd+C: clear the drawing on the current slide

Mouse and touch:
- Scroll the wheel or swipe to change slides
- Double-click to drop a marker

Keep all files in the same folder. Use a current Chrome, Firefox, Safari or
Edge. External resources referenced by slides need a network connection.

Slides: {{.Count}}
Created: {{.Generated}}
`))

type notesData struct {
	Name      string
	Count     int
	Slides    []string
	HasConfig bool
	HasTheme  bool
	Generated string
}

func (w *Writer) notesData(p *model.Project) notesData {
	return notesData{
		Name:      p.Name,
		Count:     len(p.Slides),
		Slides:    p.SlideNames(),
		HasConfig: p.Config != nil,
		HasTheme:  p.Theme != "",
		Generated: w.now().Format(time.RFC1123),
	}
}

func renderNotes(t *template.Template, data notesData) ([]byte, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("rendering %s: %w", t.Name(), err)
	}
	return buf.Bytes(), nil
}
