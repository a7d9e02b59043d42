// internal/slug/slug.go

// Package slug turns post titles into the identifiers used for output file
// names and permalinks.
package slug

import (
	"strings"
	"unicode"
)

// Make lowercases and trims text, drops every rune that is not a word rune,
// whitespace or a hyphen, joins the remaining words with single hyphens and
// trims hyphens from both ends.
//
// Word runes are Unicode letters, Unicode numbers and the underscore. Existing
// permalinks depend on these classes, so they must not change.
func Make(text string) string {
	text = strings.TrimFunc(strings.ToLower(text), isSpace)

	var b strings.Builder
	b.Grow(len(text))
	sep := false
	for _, r := range text {
		switch {
		case isWord(r):
			if sep && b.Len() > 0 {
				b.WriteByte('-')
			}
			sep = false
			b.WriteRune(r)
		case r == '-' || isSpace(r):
			sep = true
		}
		// Anything else is dropped without ending a separator run.
	}
	return b.String()
}

func isWord(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

// isSpace extends unicode.IsSpace with the ASCII information separators,
// which are also treated as whitespace by the slugs already published.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}
