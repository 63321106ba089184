// internal/utils/slug.go
package utils

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Slugify turns a display name into a URL-safe slug: lowercase ASCII,
// digits and single hyphens, no leading or trailing hyphen. The transform
// is idempotent: Slugify(Slugify(x)) == Slugify(x).
func Slugify(input string) string {
	// Strip accents (é -> e, ç -> c) before dropping non-ASCII runes
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	ascii, _, err := transform.String(t, input)
	if err != nil {
		ascii = input
	}

	var b strings.Builder
	lastHyphen := true // swallow leading separators
	for _, r := range strings.ToLower(ascii) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}

	return strings.TrimRight(b.String(), "-")
}

// IsValidSlug reports whether s already is in canonical slug form.
func IsValidSlug(s string) bool {
	return s != "" && s == Slugify(s)
}
