package feed

import (
	"regexp"
	"strings"
)

var (
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)
	repeatedHyphens = regexp.MustCompile(`-{2,}`)
)

// Slugify normalizes a feed title into a filesystem-safe slug: lowercase,
// non-alphanumeric runs collapsed to single hyphens, trimmed. An empty
// result falls back to "feed".
func Slugify(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = nonAlphanumeric.ReplaceAllString(s, "-")
	s = repeatedHyphens.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return "feed"
	}
	return s
}

// OutputFilename derives the output document name for a feed title and
// target language, e.g. "granma-english-edition.en.xml".
func OutputFilename(title, targetLang string) string {
	return Slugify(title) + "." + targetLang + ".xml"
}
