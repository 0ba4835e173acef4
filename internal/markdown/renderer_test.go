package markdown

import (
	"strings"
	"testing"
)

func TestRenderHeading(t *testing.T) {
	t.Parallel()

	renderer := NewRenderer()

	html, err := renderer.Render("# Hello World")
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}

	if !strings.Contains(html, "<h1 id=\"hello-world\">Hello World</h1>") {
		t.Fatalf("expected heading with auto ID, got %q", html)
	}
}

func TestRenderGFMStrikethrough(t *testing.T) {
	t.Parallel()

	renderer := NewRenderer()

	html, err := renderer.Render("~~gone~~")
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}

	if !strings.Contains(html, "<del>gone</del>") {
		t.Fatalf("expected strikethrough markup, got %q", html)
	}
}

func TestRenderGFMTable(t *testing.T) {
	t.Parallel()

	renderer := NewRenderer()

	source := "| a | b |\n| - | - |\n| 1 | 2 |"

	html, err := renderer.Render(source)
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}

	if !strings.Contains(html, "<table>") {
		t.Fatalf("expected table markup, got %q", html)
	}
}

func TestRenderDeterministic(t *testing.T) {
	t.Parallel()

	renderer := NewRenderer()

	first, err := renderer.Render("plain *emphasis* text")
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}

	second, err := renderer.Render("plain *emphasis* text")
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}

	if first != second {
		t.Fatalf("expected identical output for identical input: %q vs %q", first, second)
	}
}
