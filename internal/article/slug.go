package article

import (
	"regexp"
	"strings"
)

const slugMaxRunes = 100

var (
	slugDisallowed = regexp.MustCompile(`[^\w\s\x{4e00}-\x{9fa5}-]`)
	slugWhitespace = regexp.MustCompile(`\s+`)
)

// GenerateSlug derives a URL-safe identifier from an article title: lower
// case, word characters and CJK ideographs kept, whitespace runs collapsed
// to a single hyphen, truncated to 100 runes. The result is deterministic
// and idempotent (slugifying a slug yields the same slug). It may be empty;
// collisions between distinct titles are resolved by the store's uniqueness
// constraint, not here.
func GenerateSlug(title string) string {
	slug := strings.ToLower(title)
	slug = slugDisallowed.ReplaceAllString(slug, "")
	slug = slugWhitespace.ReplaceAllString(slug, "-")

	runes := []rune(slug)
	if len(runes) > slugMaxRunes {
		slug = string(runes[:slugMaxRunes])
	}

	return slug
}
