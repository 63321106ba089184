// internal/utils/text.go
package utils

import (
	"html"
	"regexp"
	"strings"
)

var (
	tagPattern        = regexp.MustCompile(`<[^>]*>`)
	whitespacePattern = regexp.MustCompile(`\s+`)
	punctSpacePattern = regexp.MustCompile(` ([.,;:!?])`)
)

// StripHTML turns HTML-formatted storefront descriptions into plain text:
// tags removed, entities decoded, whitespace collapsed. Closing tags glued to
// punctuation ("main</em>.") would otherwise leave a space before the dot.
func StripHTML(input string) string {
	text := tagPattern.ReplaceAllString(input, " ")
	text = html.UnescapeString(text)
	text = whitespacePattern.ReplaceAllString(text, " ")
	text = punctSpacePattern.ReplaceAllString(text, "$1")
	return strings.TrimSpace(text)
}

// Truncate cuts s to at most max runes, appending an ellipsis when cut.
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 1 {
		return string(runes[:max])
	}
	return strings.TrimSpace(string(runes[:max-1])) + "…"
}
