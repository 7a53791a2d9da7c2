package common

import (
	"regexp"
	"strings"
)

var (
	// SlugRegex accepts kebab-case slugs only.
	SlugRegex = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

	nonWord    = regexp.MustCompile(`[^\w\s-]`)
	whitespace = regexp.MustCompile(`\s+`)
	hyphenRuns = regexp.MustCompile(`-+`)
)

// Slugify derives a URL-safe slug from a title: lowercase, punctuation
// stripped, whitespace collapsed to single hyphens.
func Slugify(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = nonWord.ReplaceAllString(s, "")
	s = whitespace.ReplaceAllString(s, "-")
	s = hyphenRuns.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
