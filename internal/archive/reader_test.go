package archive

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/ziadkadry99/slidepack/internal/model"
)

type zipEntry struct {
	name string
	body string
}

func buildZip(t *testing.T, entries ...zipEntry) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, e := range entries {
		w, err := zw.Create(e.name)
		if err != nil {
			t.Fatalf("Create %s: %v", e.name, err)
		}
		if _, err := w.Write([]byte(e.body)); err != nil {
			t.Fatalf("Write %s: %v", e.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	return buf.Bytes()
}

func observedReader(opts ...Option) (*Reader, *observer.ObservedLogs) {
	core, logs := observer.New(zap.WarnLevel)
	return NewReader(append([]Option{WithLogger(zap.New(core))}, opts...)...), logs
}

func assertSlideNames(t *testing.T, p *model.Project, want ...string) {
	t.Helper()
	got := p.SlideNames()
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("slides = %v, want %v", got, want)
	}
	if !p.OrderIsConsistent() {
		t.Error("slide order fields are not 0..n-1")
	}
}

func TestImportLexicographicFallback(t *testing.T) {
	data := buildZip(t,
		zipEntry{"slides/b.html", "<p>b</p>"},
		zipEntry{"slides/c.html", "<p>c</p>"},
		zipEntry{"slides/a.html", "<p>a</p>"},
	)
	p, err := ImportFromArchive(context.Background(), data)
	if err != nil {
		t.Fatalf("ImportFromArchive: %v", err)
	}
	assertSlideNames(t, p, "a", "b", "c")
	if p.Name != model.DefaultProjectName {
		t.Errorf("Name = %q, want %q", p.Name, model.DefaultProjectName)
	}
	if p.Slides[0].HTML != "<p>a</p>" {
		t.Errorf("html = %q", p.Slides[0].HTML)
	}
	if p.Config != nil || p.Theme != "" {
		t.Error("expected no config or theme")
	}
}

func TestImportManifestOrder(t *testing.T) {
	tests := []struct {
		name     string
		manifest string
		want     []string
	}{
		{"manifest first then rest", `[{"file":"c.html"},{"file":"a.html"}]`, []string{"c", "a", "b"}},
		{"missing entries dropped", `[{"file":"ghost.html"},{"file":"b.html"}]`, []string{"b", "a", "c"}},
		{"case insensitive", `[{"file":"C.HTML"},{"file":"slides/B.html"}]`, []string{"c", "b", "a"}},
		{"titles rename", `[{"file":"b.html","title":"Agenda"}]`, []string{"Agenda", "a", "c"}},
		{"repeated entry placed once", `[{"file":"a.html"},{"file":"a.html"}]`, []string{"a", "b", "c"}},
		{"empty manifest", `[]`, []string{"a", "b", "c"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := buildZip(t,
				zipEntry{"config.json", `{"title":"Deck","slides":` + tt.manifest + `}`},
				zipEntry{"slides/a.html", "a"},
				zipEntry{"slides/b.html", "b"},
				zipEntry{"slides/c.html", "c"},
			)
			p, err := ImportFromArchive(context.Background(), data)
			if err != nil {
				t.Fatalf("ImportFromArchive: %v", err)
			}
			assertSlideNames(t, p, tt.want...)
			if p.Name != "Deck" {
				t.Errorf("Name = %q, want Deck", p.Name)
			}
		})
	}
}

func TestImportSkipsNonSlideEntries(t *testing.T) {
	data := buildZip(t,
		zipEntry{"slides/a.html", "a"},
		zipEntry{"slides/a_assets/frame.html", "nested"},
		zipEntry{"slides/notes.txt", "x"},
		zipEntry{"index.html", "player"},
		zipEntry{"other/b.html", "b"},
	)
	p, err := ImportFromArchive(context.Background(), data)
	if err != nil {
		t.Fatalf("ImportFromArchive: %v", err)
	}
	assertSlideNames(t, p, "a")
}

func TestImportMalformedConfig(t *testing.T) {
	r, logs := observedReader()
	data := buildZip(t,
		zipEntry{"config.json", `{"title": `},
		zipEntry{"theme.css", "body{}"},
		zipEntry{"slides/b.html", "b"},
		zipEntry{"slides/a.html", "a"},
	)
	p, err := r.ImportFromArchive(context.Background(), data)
	if err != nil {
		t.Fatalf("ImportFromArchive: %v", err)
	}
	assertSlideNames(t, p, "a", "b")
	if p.Config != nil {
		t.Error("malformed config should be treated as absent")
	}
	if p.Theme != "body{}" {
		t.Errorf("Theme = %q", p.Theme)
	}

	warned := logs.FilterMessage("ignoring malformed project config").All()
	if len(warned) != 1 {
		t.Fatalf("config warnings = %d, want 1", len(warned))
	}
	if !strings.Contains(warned[0].ContextMap()["error"].(string), ConfigEntry) {
		t.Errorf("warning should name the entry: %v", warned[0].ContextMap())
	}
}

func TestImportInvalidArchive(t *testing.T) {
	for _, data := range [][]byte{nil, []byte("definitely not a zip")} {
		_, err := ImportFromArchive(context.Background(), data)
		var fe *FormatError
		if !errors.As(err, &fe) {
			t.Errorf("err = %v, want *FormatError", err)
		}
	}
}

func TestImportLegacyDescriptor(t *testing.T) {
	data := buildZip(t,
		zipEntry{"project.json", `{"id":"old","name":"Legacy Deck","createdAt":"2023-04-05T06:07:08Z","updatedAt":"not a date"}`},
		zipEntry{"slides/a.html", "a"},
	)
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	r := NewReader(WithClock(func() time.Time { return now }))
	p, err := r.ImportFromArchive(context.Background(), data)
	if err != nil {
		t.Fatalf("ImportFromArchive: %v", err)
	}
	if p.Name != "Legacy Deck" {
		t.Errorf("Name = %q", p.Name)
	}
	if p.ID == "old" {
		t.Error("imported project must get a fresh id")
	}
	if !p.CreatedAt.Equal(time.Date(2023, 4, 5, 6, 7, 8, 0, time.UTC)) {
		t.Errorf("CreatedAt = %v", p.CreatedAt)
	}
	if !p.UpdatedAt.Equal(now) {
		t.Errorf("UpdatedAt = %v, want clock time", p.UpdatedAt)
	}
}

func TestImportConfigOverridesLegacy(t *testing.T) {
	data := buildZip(t,
		zipEntry{"project.json", `{"name":"Legacy","createdAt":"2020-01-01T00:00:00Z"}`},
		zipEntry{"config.json", `{"title":"Current","created":"2024-02-03","modified":"2024-02-04"}`},
		zipEntry{"slides/a.html", "a"},
	)
	p, err := ImportFromArchive(context.Background(), data)
	if err != nil {
		t.Fatalf("ImportFromArchive: %v", err)
	}
	if p.Name != "Current" {
		t.Errorf("Name = %q, want Current", p.Name)
	}
	if p.CreatedAt.Format("2006-01-02") != "2024-02-03" || p.UpdatedAt.Format("2006-01-02") != "2024-02-04" {
		t.Errorf("timestamps = %v / %v", p.CreatedAt, p.UpdatedAt)
	}
}

func TestImportResolvesAssets(t *testing.T) {
	r, logs := observedReader()
	html := `<img src="logo.png"><img src="img/pic.png"><img src="missing.png">` +
		`<img src="https://cdn.example.com/x.png"><img src="data:image/png;base64,AA==">` +
		`<link rel="stylesheet" href="/shared/site.css">`
	data := buildZip(t,
		zipEntry{"slides/a.html", html},
		zipEntry{"slides/a_assets/logo.png", "LOGO"},
		zipEntry{"slides/img/pic.png", "PIC"},
		zipEntry{"shared/site.css", "CSS"},
	)
	p, err := r.ImportFromArchive(context.Background(), data)
	if err != nil {
		t.Fatalf("ImportFromArchive: %v", err)
	}
	assets := p.Slides[0].Assets
	want := map[string]string{
		"logo.png":         "LOGO",
		"img/pic.png":      "PIC",
		"missing.png":      "",
		"/shared/site.css": "CSS",
	}
	if len(assets) != len(want) {
		t.Fatalf("assets = %+v, want %d entries", assets, len(want))
	}
	for _, a := range assets {
		content, ok := want[a.Filename]
		if !ok {
			t.Errorf("unexpected asset %q", a.Filename)
			continue
		}
		if string(a.Content) != content {
			t.Errorf("asset %q content = %q, want %q", a.Filename, a.Content, content)
		}
	}
	if n := logs.FilterMessage("slide asset unresolved").Len(); n != 1 {
		t.Errorf("unresolved warnings = %d, want 1", n)
	}
}

func TestImportStripsCommonRoot(t *testing.T) {
	data := buildZip(t,
		zipEntry{"My Deck/config.json", `{"title":"Wrapped"}`},
		zipEntry{"My Deck/slides/a.html", "a"},
		zipEntry{"__MACOSX/My Deck/._a.html", "junk"},
	)
	p, err := ImportFromArchive(context.Background(), data)
	if err != nil {
		t.Fatalf("ImportFromArchive: %v", err)
	}
	if p.Name != "Wrapped" {
		t.Errorf("Name = %q, want Wrapped", p.Name)
	}
	assertSlideNames(t, p, "a")
}

func TestImportSkipsOversizedEntries(t *testing.T) {
	r, logs := observedReader(WithMaxEntrySize(8))
	data := buildZip(t,
		zipEntry{"slides/a.html", "tiny"},
		zipEntry{"slides/b.html", strings.Repeat("x", 64)},
	)
	p, err := r.ImportFromArchive(context.Background(), data)
	if err != nil {
		t.Fatalf("ImportFromArchive: %v", err)
	}
	assertSlideNames(t, p, "a")
	if logs.FilterMessage("skipping oversized entry").Len() != 1 {
		t.Error("expected an oversized entry warning")
	}
}

func TestImportCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	data := buildZip(t, zipEntry{"slides/a.html", "a"})
	p, err := ImportFromArchive(ctx, data)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
	if p != nil {
		t.Error("cancelled import should not return a project")
	}
}

func TestImportFreshIDs(t *testing.T) {
	data := buildZip(t, zipEntry{"slides/a.html", "a"}, zipEntry{"slides/b.html", "b"})
	first, err := ImportFromArchive(context.Background(), data)
	if err != nil {
		t.Fatal(err)
	}
	second, err := ImportFromArchive(context.Background(), data)
	if err != nil {
		t.Fatal(err)
	}
	if first.ID == second.ID || first.Slides[0].ID == second.Slides[0].ID {
		t.Error("every import should generate new ids")
	}
	if first.Slides[0].ID == first.Slides[1].ID {
		t.Error("slide ids should be unique within a project")
	}
}

func TestImportFromFileSet(t *testing.T) {
	files := []NamedFile{
		{Name: "b.html", Data: []byte("b")},
		{Name: "CONFIG.JSON", Data: []byte(`{"title":"Folder Deck","slides":[{"file":"C.html","title":"Closing"}]}`)},
		{Name: "a.html", Data: []byte(`<img src="logo.png">`)},
		{Name: "c.html", Data: []byte("c")},
		{Name: "Theme.css", Data: []byte("h1{}")},
		{Name: "frame.html", Path: "a_assets/frame.html", Data: []byte("nested")},
		{Name: "logo.png", Path: "a_assets/logo.png", Data: []byte("LOGO")},
		{Name: "notes.txt", Data: []byte("ignored")},
	}

	p, err := ImportFromFileSet(context.Background(), files)
	if err != nil {
		t.Fatalf("ImportFromFileSet: %v", err)
	}
	assertSlideNames(t, p, "Closing", "a", "b")
	if p.Name != "Folder Deck" {
		t.Errorf("Name = %q", p.Name)
	}
	if p.Theme != "h1{}" {
		t.Errorf("Theme = %q", p.Theme)
	}
	for _, s := range p.Slides {
		if len(s.Assets) != 0 {
			t.Errorf("slide %q should carry no assets, got %+v", s.Name, s.Assets)
		}
	}

	r := NewReader(WithFileSetAssets(true))
	p, err = r.ImportFromFileSet(context.Background(), files)
	if err != nil {
		t.Fatalf("ImportFromFileSet with assets: %v", err)
	}
	a := p.Slides[1]
	if len(a.Assets) != 1 || string(a.Assets[0].Content) != "LOGO" {
		t.Errorf("assets = %+v, want resolved logo.png", a.Assets)
	}
}

func TestImportFromFileSetWithoutManifest(t *testing.T) {
	files := []NamedFile{
		{Name: "B.html", Data: []byte("B")},
		{Name: "a.html", Data: []byte("a")},
		{Name: "C.HTML", Data: []byte("C")},
	}
	p, err := ImportFromFileSet(context.Background(), files)
	if err != nil {
		t.Fatalf("ImportFromFileSet: %v", err)
	}
	assertSlideNames(t, p, "B", "C", "a")
}

func TestKeyOf(t *testing.T) {
	tests := map[string]Key{
		"intro.html":          "intro.html",
		"Slides/Intro.HTML":   "intro.html",
		`.\slides\sub\a.html`: "sub/a.html",
		"./a.html":            "a.html",
		"/slides/a.html":      "a.html",
		"":                    "",
	}
	for in, want := range tests {
		if got := KeyOf(in); got != want {
			t.Errorf("KeyOf(%q) = %q, want %q", in, got, want)
		}
	}
}
