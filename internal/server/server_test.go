package server

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/ziadkadry99/slidepack/internal/archive"
	"github.com/ziadkadry99/slidepack/internal/catalog"
	"github.com/ziadkadry99/slidepack/internal/db"
	"github.com/ziadkadry99/slidepack/internal/model"
)

func newTestServer(t *testing.T, cfg Config) *Server {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return New(cfg, database, nil)
}

func do(t *testing.T, srv *Server, method, target, contentType string, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)
	return w
}

func multipartBody(t *testing.T, files map[string]string, order []string, withPaths bool) (string, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, name := range order {
		fw, err := mw.CreateFormFile("files", name)
		if err != nil {
			t.Fatal(err)
		}
		io.WriteString(fw, files[name])
		if withPaths {
			mw.WriteField("paths", name)
		}
	}
	mw.Close()
	return mw.FormDataContentType(), &buf
}

func sampleArchive(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, body := range map[string]string{
		"config.json":     `{"title":"Served Deck","slides":[{"file":"b.html"},{"file":"a.html"}]}`,
		"slides/a.html":   "<p>a</p>",
		"slides/b.html":   "<p>b</p>",
		"theme.css":       "body{margin:0}",
		"notes/ignore.md": "x",
	} {
		fw, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		io.WriteString(fw, body)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestHealthCheck(t *testing.T) {
	srv := newTestServer(t, Config{})
	w := do(t, srv, http.MethodGet, "/healthz", "", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("expected status 'ok', got %q", body["status"])
	}
}

func TestCORSHeaders(t *testing.T) {
	srv := newTestServer(t, Config{AllowAll: true})

	req := httptest.NewRequest(http.MethodOptions, "/healthz", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", "GET")
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	if w.Header().Get("Access-Control-Allow-Origin") == "" {
		t.Error("expected CORS Allow-Origin header")
	}
}

func TestImport(t *testing.T) {
	srv := newTestServer(t, Config{})
	w := do(t, srv, http.MethodPost, "/api/projects/import", "application/zip", bytes.NewReader(sampleArchive(t)))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body)
	}

	var p model.Project
	if err := json.Unmarshal(w.Body.Bytes(), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if p.Name != "Served Deck" {
		t.Errorf("Name = %q", p.Name)
	}
	if len(p.Slides) != 2 || p.Slides[0].Name != "b" || p.Slides[1].Name != "a" {
		t.Errorf("slides = %+v", p.Slides)
	}
	if p.Theme != "body{margin:0}" {
		t.Errorf("Theme = %q", p.Theme)
	}
}

func TestImportGarbageIsUnprocessable(t *testing.T) {
	srv := newTestServer(t, Config{})
	w := do(t, srv, http.MethodPost, "/api/projects/import", "application/zip", strings.NewReader("not a zip"))
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", w.Code)
	}
	var e errorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &e); err != nil || e.Error == "" {
		t.Errorf("error body = %s", w.Body)
	}
}

func TestImportBodyLimit(t *testing.T) {
	srv := newTestServer(t, Config{MaxBodyBytes: 16})
	w := do(t, srv, http.MethodPost, "/api/projects/import", "application/zip", bytes.NewReader(sampleArchive(t)))
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("status = %d, want 413", w.Code)
	}
}

func TestImportFiles(t *testing.T) {
	srv := newTestServer(t, Config{})
	files := map[string]string{
		"deck/config.json":         `{"title":"Folder Deck"}`,
		"deck/zeta.html":           `<img src="pic.png">`,
		"deck/alpha.html":          "<p>alpha</p>",
		"deck/zeta_assets/pic.png": "PNG",
	}
	order := []string{"deck/config.json", "deck/zeta.html", "deck/alpha.html", "deck/zeta_assets/pic.png"}

	ct, body := multipartBody(t, files, order, true)
	w := do(t, srv, http.MethodPost, "/api/projects/import-files?assets=true", ct, body)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body)
	}
	var p model.Project
	if err := json.Unmarshal(w.Body.Bytes(), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if p.Name != "Folder Deck" {
		t.Errorf("Name = %q", p.Name)
	}
	if len(p.Slides) != 2 || p.Slides[0].Name != "alpha" || p.Slides[1].Name != "zeta" {
		t.Fatalf("slides = %+v", p.Slides)
	}
	assets := p.Slides[1].Assets
	if len(assets) != 1 || string(assets[0].Content) != "PNG" {
		t.Errorf("zeta assets = %+v", assets)
	}
}

func TestSaveAndExport(t *testing.T) {
	srv := newTestServer(t, Config{})
	p := model.AppendSlides(model.NewProject("API Deck"),
		model.Slide{ID: "1", Name: "one", HTML: "<h1>One</h1>"},
		model.Slide{ID: "2", Name: "two", HTML: "<h1>Two</h1>"},
	)
	body, err := json.Marshal(p)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		path     string
		wantName string
		entry    string
		op       catalog.Operation
	}{
		{"/api/projects/save", "API Deck.zip", archive.ProjectEntry, catalog.OpSave},
		{"/api/projects/export", "API Deck-player.zip", archive.IndexEntry, catalog.OpExport},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := do(t, srv, http.MethodPost, tt.path, "application/json", bytes.NewReader(body))
			if w.Code != http.StatusOK {
				t.Fatalf("status = %d: %s", w.Code, w.Body)
			}
			if ct := w.Header().Get("Content-Type"); ct != "application/zip" {
				t.Errorf("Content-Type = %q", ct)
			}
			if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, tt.wantName) {
				t.Errorf("Content-Disposition = %q, want %q", cd, tt.wantName)
			}
			data := w.Body.Bytes()
			zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
			if err != nil {
				t.Fatalf("response is not a zip: %v", err)
			}
			found := false
			for _, f := range zr.File {
				if f.Name == tt.entry {
					found = true
				}
			}
			if !found {
				t.Errorf("archive missing %s", tt.entry)
			}

			entries, err := srv.Catalog().List(context.Background(), catalog.QueryFilter{Operation: tt.op})
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			if len(entries) != 1 || entries[0].ProjectID != p.ID || entries[0].SlideCount != 2 {
				t.Errorf("history = %+v", entries)
			}
		})
	}
}

func TestSaveBadRequests(t *testing.T) {
	srv := newTestServer(t, Config{})
	for _, body := range []string{"{not json", "null"} {
		w := do(t, srv, http.MethodPost, "/api/projects/save", "application/json", strings.NewReader(body))
		if w.Code != http.StatusBadRequest {
			t.Errorf("body %q: status = %d, want 400", body, w.Code)
		}
	}
}

func TestCompileTheme(t *testing.T) {
	srv := newTestServer(t, Config{})
	colors := model.DefaultPalette()
	colors.Primary = "#123456"
	body, _ := json.Marshal(colors)

	w := do(t, srv, http.MethodPost, "/api/themes/compile", "application/json", bytes.NewReader(body))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.HasPrefix(w.Header().Get("Content-Type"), "text/css") {
		t.Errorf("Content-Type = %q", w.Header().Get("Content-Type"))
	}
	if !strings.Contains(w.Body.String(), "--primary-color: #123456") {
		t.Errorf("css = %s", w.Body)
	}

	w = do(t, srv, http.MethodPost, "/api/themes/compile", "application/json", strings.NewReader("["))
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad json status = %d", w.Code)
	}
}

func TestParseSlides(t *testing.T) {
	srv := newTestServer(t, Config{})
	files := map[string]string{
		"intro.html": `<h1>Hi</h1><img src="a.png">`,
		"notes.md":   "# Notes\n\nbody",
	}
	ct, body := multipartBody(t, files, []string{"intro.html", "notes.md"}, false)
	w := do(t, srv, http.MethodPost, "/api/slides/parse", ct, body)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body)
	}
	var slides []model.Slide
	if err := json.Unmarshal(w.Body.Bytes(), &slides); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(slides) != 2 || slides[0].Name != "intro" || slides[1].Name != "notes" {
		t.Fatalf("slides = %+v", slides)
	}
	if slides[1].Order != 1 || len(slides[0].Assets) != 1 {
		t.Errorf("slides = %+v", slides)
	}

	ct, body = multipartBody(t, map[string]string{"x.pdf": "%PDF"}, []string{"x.pdf"}, false)
	w = do(t, srv, http.MethodPost, "/api/slides/parse", ct, body)
	if w.Code != http.StatusBadRequest {
		t.Errorf("unsupported file status = %d, want 400", w.Code)
	}
}

func TestHistoryRoutes(t *testing.T) {
	srv := newTestServer(t, Config{})
	srv.Catalog().Record(context.Background(), catalog.Entry{ID: "h1", Operation: catalog.OpPack})

	w := do(t, srv, http.MethodGet, "/api/history", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"id":"h1"`) {
		t.Errorf("history = %s", w.Body)
	}
}

func TestNoDatabaseDisablesHistory(t *testing.T) {
	srv := New(Config{}, nil, nil)
	if srv.Catalog() != nil {
		t.Fatal("catalog should be nil without a database")
	}
	w := do(t, srv, http.MethodGet, "/api/history", "", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	srv := New(Config{}, nil, zap.New(core))
	do(t, srv, http.MethodGet, "/healthz", "", nil)

	entries := logs.FilterMessage("HTTP request").All()
	if len(entries) != 1 {
		t.Fatalf("got %d request logs, want 1", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["path"] != "/healthz" || fields["status"] != int64(200) {
		t.Errorf("fields = %v", fields)
	}
}
