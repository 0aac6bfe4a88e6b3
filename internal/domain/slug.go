package domain

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes to NFD and drops combining marks, so "Café" → "Cafe".
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slugify derives a URL-safe slug from a display name: lowercase, diacritics
// stripped, trimmed, internal whitespace runs collapsed to single hyphens.
// "Chanel Café" → "chanel-cafe". Slugs are not unique; collisions are
// reported to the caller as advisory warnings, never rejected.
func Slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	if s == "" {
		return ""
	}

	if stripped, _, err := transform.String(stripMarks, s); err == nil {
		s = stripped
	}

	var b strings.Builder
	b.Grow(len(s))
	prevSpace := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			if !prevSpace && b.Len() > 0 {
				b.WriteByte('-')
			}
			prevSpace = true
			continue
		}
		prevSpace = false
		b.WriteRune(r)
	}

	return strings.TrimSuffix(b.String(), "-")
}
