package walker

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeTree creates the given files under a temp dir and returns its path.
func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(p, []byte(content), 0644); err != nil {
			t.Fatalf("write %s: %v", rel, err)
		}
	}
	return root
}

func relPaths(files []FileInfo) []string {
	out := make([]string, len(files))
	for i, f := range files {
		out[i] = f.RelPath
	}
	return out
}

func deckTree(t *testing.T) string {
	return writeTree(t, map[string]string{
		"config.json":               `{"title":"Deck"}`,
		"theme.css":                 "h1{}",
		"slides/b.html":             "<p>b</p>",
		"slides/a.html":             `<img src="a_assets/logo.png">`,
		"slides/a_assets/logo.png":  "PNG",
		"slides/notes.md":           "# Notes\n\nhello",
		".git/HEAD":                 "ref",
		"node_modules/pkg/index.js": "x",
		"drafts/wip.html":           "wip",
		".gitignore":                "drafts/\n",
	})
}

func TestWalk_BasicTraversal(t *testing.T) {
	files, err := Walk(WalkerConfig{RootDir: deckTree(t)})
	if err != nil {
		t.Fatalf("Walk() error: %v", err)
	}

	got := strings.Join(relPaths(files), ",")
	want := ".gitignore,config.json,slides/a.html,slides/a_assets/logo.png,slides/b.html,slides/notes.md,theme.css"
	if got != want {
		t.Errorf("Walk() = %s\nwant     %s", got, want)
	}
}

func TestWalk_FileInfoFields(t *testing.T) {
	files, err := Walk(WalkerConfig{RootDir: deckTree(t)})
	if err != nil {
		t.Fatalf("Walk() error: %v", err)
	}

	kinds := map[string]Kind{
		"config.json":              KindConfig,
		"theme.css":                KindTheme,
		"slides/a.html":            KindSlide,
		"slides/a_assets/logo.png": KindAsset,
		"slides/notes.md":          KindMarkdown,
	}
	for _, f := range files {
		if !filepath.IsAbs(f.Path) {
			t.Errorf("FileInfo.Path for %s is not absolute", f.RelPath)
		}
		if len(f.ContentHash) != 64 {
			t.Errorf("FileInfo.ContentHash for %s has length %d, expected 64", f.RelPath, len(f.ContentHash))
		}
		if want, ok := kinds[f.RelPath]; ok && f.Kind != want {
			t.Errorf("Kind for %s = %s, want %s", f.RelPath, f.Kind, want)
		}
	}
}

func TestWalk_IncludeExclude(t *testing.T) {
	root := deckTree(t)

	files, err := Walk(WalkerConfig{RootDir: root, Include: []string{"*.html"}})
	if err != nil {
		t.Fatalf("Walk() error: %v", err)
	}
	if got := strings.Join(relPaths(files), ","); got != "slides/a.html,slides/b.html" {
		t.Errorf("include *.html = %s", got)
	}

	files, err = Walk(WalkerConfig{RootDir: root, Exclude: []string{"**/*_assets/**", "*.md"}})
	if err != nil {
		t.Fatalf("Walk() error: %v", err)
	}
	for _, f := range files {
		if f.Kind == KindAsset && strings.Contains(f.RelPath, "_assets") {
			t.Errorf("exclude let through %s", f.RelPath)
		}
		if f.Kind == KindMarkdown {
			t.Errorf("exclude *.md let through %s", f.RelPath)
		}
	}
}

func TestWalk_SkipsLargeFiles(t *testing.T) {
	root := writeTree(t, map[string]string{
		"small.html": "small",
		"big.html":   strings.Repeat("A", 200),
	})

	files, err := Walk(WalkerConfig{RootDir: root, MaxFileSize: 100})
	if err != nil {
		t.Fatalf("Walk() error: %v", err)
	}
	if got := strings.Join(relPaths(files), ","); got != "small.html" {
		t.Errorf("Walk() = %s, want small.html", got)
	}
}

func TestWalk_NotADirectory(t *testing.T) {
	root := writeTree(t, map[string]string{"a.html": "a"})
	if _, err := Walk(WalkerConfig{RootDir: filepath.Join(root, "a.html")}); err == nil {
		t.Error("expected an error for a file root")
	}
	if _, err := Walk(WalkerConfig{RootDir: filepath.Join(root, "missing")}); err == nil {
		t.Error("expected an error for a missing root")
	}
}

func TestMatchesGitignore(t *testing.T) {
	patterns := []string{"drafts/", "*.bak", "build/out"}
	tests := []struct {
		path string
		want bool
	}{
		{"drafts/wip.html", true},
		{"slides/drafts/x.html", true},
		{"drafts", false},
		{"slides/a.html.bak", true},
		{"build/out/a.html", true},
		{"slides/a.html", false},
	}
	for _, tt := range tests {
		if got := matchesGitignore(tt.path, patterns); got != tt.want {
			t.Errorf("matchesGitignore(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestMatchesIncludeExclude(t *testing.T) {
	if !MatchesInclude("slides/a.html", nil) {
		t.Error("empty include should match everything")
	}
	if MatchesExclude("slides/a.html", nil) {
		t.Error("empty exclude should match nothing")
	}
	if !MatchesInclude("slides/a.html", []string{"**/*.html"}) {
		t.Error("**/*.html should match nested html")
	}
	if !MatchesExclude("slides/index.html", []string{"index.html"}) {
		t.Error("bare pattern should match the base name")
	}
	if MatchesInclude("slides/a.html", []string{"other/*.html"}) {
		t.Error("slashed pattern should not fall back to the base name")
	}
}

func TestDigest(t *testing.T) {
	a := []FileInfo{{RelPath: "a.html", ContentHash: "1"}, {RelPath: "b.html", ContentHash: "2"}}
	b := []FileInfo{{RelPath: "a.html", ContentHash: "1"}, {RelPath: "b.html", ContentHash: "3"}}
	if Digest(a) == Digest(b) {
		t.Error("digest should change with content")
	}
	if Digest(a) != Digest(a) {
		t.Error("digest should be deterministic")
	}
}

func TestDigestBytes(t *testing.T) {
	// SHA-256 of "abc".
	const want = "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"
	if got := DigestBytes([]byte("abc")); got != want {
		t.Errorf("DigestBytes = %s, want %s", got, want)
	}
}

func TestLoadFileSet(t *testing.T) {
	root := writeTree(t, map[string]string{
		"config.json":  `{"title":"Deck"}`,
		"intro.md":     "# Intro\n\nhello",
		"agenda.md":    "# Agenda",
		"agenda.html":  "<p>hand written</p>",
		"img/logo.png": "PNG",
	})
	files, err := Walk(WalkerConfig{RootDir: root})
	if err != nil {
		t.Fatalf("Walk() error: %v", err)
	}
	set, err := LoadFileSet(files)
	if err != nil {
		t.Fatalf("LoadFileSet() error: %v", err)
	}

	byPath := map[string]string{}
	for _, f := range set {
		byPath[f.Path] = string(f.Data)
		if f.Name != filepath.Base(f.Path) {
			t.Errorf("Name %q does not match Path %q", f.Name, f.Path)
		}
	}
	if _, ok := byPath["agenda.md"]; ok {
		t.Error("markdown shadowed by html should be skipped")
	}
	if byPath["agenda.html"] != "<p>hand written</p>" {
		t.Errorf("agenda.html = %q", byPath["agenda.html"])
	}
	if !strings.Contains(byPath["intro.html"], "<h1 id=\"intro\">Intro</h1>") {
		t.Errorf("intro.md not rendered: %q", byPath["intro.html"])
	}
	if byPath["img/logo.png"] != "PNG" {
		t.Error("assets should be carried in the file set")
	}
}
