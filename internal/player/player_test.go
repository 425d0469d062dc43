package player

import (
	"strings"
	"testing"

	"github.com/ziadkadry99/slidepack/internal/model"
)

func deck(names ...string) *model.Project {
	p := model.NewProject("Demo Deck")
	var slides []model.Slide
	for _, n := range names {
		slides = append(slides, model.Slide{ID: n, Name: n, HTML: "<p>" + n + "</p>"})
	}
	return model.AppendSlides(p, slides...)
}

func TestGenerate(t *testing.T) {
	out, err := Generate(deck("intro", "agenda", "close"))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	for _, want := range []string{
		"<title>Demo Deck</title>",
		`"src":"slides/intro.html"`,
		`"src":"slides/agenda.html"`,
		`"src":"slides/close.html"`,
		`id="slideFrame"`,
		`id="drawingCanvas"`,
		"ArrowRight",
		"ArrowLeft",
		"'Home'",
		"'End'",
		"requestFullscreen",
		"toDataURL",
		"dblclick",
		`id="totalSlides">3</span>`,
		"transition-fade",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("player missing %q", want)
		}
	}
	for _, c := range Colors {
		if !strings.Contains(out, c) {
			t.Errorf("player missing color %s", c)
		}
	}
	if strings.Index(out, "slides/intro.html") > strings.Index(out, "slides/agenda.html") {
		t.Error("slide list out of project order")
	}
	if strings.Contains(out, "No slides") {
		t.Error("non-empty deck should not render the empty message")
	}
	if strings.Count(out, "<script>") != 1 {
		t.Error("expected a single inline script")
	}
}

func TestGenerateEmptyDeck(t *testing.T) {
	out, err := Generate(model.NewProject("Empty"))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !strings.Contains(out, "No slides") {
		t.Error("empty deck should show a placeholder")
	}
	if strings.Contains(out, `id="slideFrame"`) {
		t.Error("empty deck should not render a slide frame")
	}
	if !strings.Contains(out, "var slides = [];") {
		t.Error("slide list should be an empty array")
	}
	if !strings.Contains(out, `title="Next" disabled`) || !strings.Contains(out, `title="Previous" disabled`) {
		t.Error("navigation should be disabled")
	}
}

func TestGenerateSingleSlideDisablesNavigation(t *testing.T) {
	out, err := Generate(deck("only"))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !strings.Contains(out, `title="Next" disabled`) {
		t.Error("single-slide deck should disable navigation")
	}
}

func TestGenerateEscapesNames(t *testing.T) {
	p := deck("a b", "x</script><script>alert(1)")
	p.Name = "<b>Deck</b>"
	out, err := Generate(p)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !strings.Contains(out, "slides/a%20b.html") {
		t.Error("slide path should be percent-encoded")
	}
	if strings.Contains(out, "</script><script>alert(1)") {
		t.Error("slide names must not break out of the script")
	}
	if strings.Contains(out, "<title><b>Deck</b></title>") {
		t.Error("title must be escaped")
	}
}

func TestGenerateSettings(t *testing.T) {
	p := deck("a", "b")
	cfg := model.DefaultConfig("Deck")
	cfg.Settings = &model.Settings{AutoPlay: true, Loop: true, ShowControls: false, Transition: "spin"}
	cfg.Slides = []model.ManifestEntry{{File: "a.html", Duration: 12}}
	p = model.WithConfig(p, cfg)

	out, err := Generate(p)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	for _, want := range []string{
		`"loop":true`,
		`"autoPlay":true`,
		`"showControls":false`,
		`"transition":"fade"`,
		`"duration":12000`,
		`"duration":5000`,
		`class="controls-hidden"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("player missing %q", want)
		}
	}
}

func TestSlidePath(t *testing.T) {
	tests := map[string]string{
		"intro":      "slides/intro.html",
		"sub/intro":  "slides/sub/intro.html",
		"50% growth": "slides/50%25%20growth.html",
		"q&a":        "slides/q&a.html",
	}
	for in, want := range tests {
		if got := SlidePath(in); got != want {
			t.Errorf("SlidePath(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestGenerateNil(t *testing.T) {
	if _, err := Generate(nil); err == nil {
		t.Error("expected an error for a nil project")
	}
}
