package article

import (
	"strings"
	"testing"
)

func TestGenerateSlugBasicTitle(t *testing.T) {
	t.Parallel()

	if slug := GenerateSlug("Hello World"); slug != "hello-world" {
		t.Fatalf("expected 'hello-world', got %q", slug)
	}
}

func TestGenerateSlugStripsPunctuation(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"Hello, World!":        "hello-world",
		"What's New?":          "whats-new",
		"C++ (An Overview)":    "c-an-overview",
		"snake_case title":     "snake_case-title",
		"  leading whitespace": "-leading-whitespace",
	}

	for title, expected := range cases {
		if slug := GenerateSlug(title); slug != expected {
			t.Fatalf("GenerateSlug(%q) = %q, expected %q", title, slug, expected)
		}
	}
}

func TestGenerateSlugKeepsCJKIdeographs(t *testing.T) {
	t.Parallel()

	if slug := GenerateSlug("百科 全书"); slug != "百科-全书" {
		t.Fatalf("expected '百科-全书', got %q", slug)
	}
}

func TestGenerateSlugCollapsesWhitespaceRuns(t *testing.T) {
	t.Parallel()

	if slug := GenerateSlug("a \t  b\n c"); slug != "a-b-c" {
		t.Fatalf("expected 'a-b-c', got %q", slug)
	}
}

func TestGenerateSlugTruncatesToHundredRunes(t *testing.T) {
	t.Parallel()

	slug := GenerateSlug(strings.Repeat("a", 150))
	if len([]rune(slug)) != 100 {
		t.Fatalf("expected 100 runes, got %d", len([]rune(slug)))
	}

	cjk := GenerateSlug(strings.Repeat("书", 150))
	if len([]rune(cjk)) != 100 {
		t.Fatalf("expected 100 runes for CJK title, got %d", len([]rune(cjk)))
	}
}

func TestGenerateSlugMayBeEmpty(t *testing.T) {
	t.Parallel()

	if slug := GenerateSlug("!!!"); slug != "" {
		t.Fatalf("expected empty slug for punctuation-only title, got %q", slug)
	}
}

func TestGenerateSlugDeterministicAndIdempotent(t *testing.T) {
	t.Parallel()

	titles := []string{
		"Hello World",
		"Hello, World!",
		"百科 全书",
		"Mixed 中文 and English",
		strings.Repeat("long title ", 30),
		"",
	}

	for _, title := range titles {
		first := GenerateSlug(title)
		second := GenerateSlug(title)
		if first != second {
			t.Fatalf("GenerateSlug(%q) not deterministic: %q vs %q", title, first, second)
		}

		if again := GenerateSlug(first); again != first {
			t.Fatalf("GenerateSlug not idempotent for %q: %q became %q", title, first, again)
		}
	}
}

func TestGenerateSlugDistinctTitlesMayCollide(t *testing.T) {
	t.Parallel()

	if GenerateSlug("Hello World") != GenerateSlug("Hello, World!") {
		t.Fatalf("expected titles differing only in punctuation to collapse to the same slug")
	}
}
