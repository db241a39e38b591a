// Package normalize canonicalizes free-text names so that spelling
// variants of the same municipality compare equal before fuzzy matching.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes accented letters and removes the combining marks,
// e.g. "Brasília" -> "Brasilia".
var stripMarks = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Name returns the canonical comparable form of a raw name: lowercase,
// accents stripped, anything outside [a-z0-9 ] removed, runs of
// whitespace collapsed to a single space, trimmed. Empty or missing
// input yields the empty string, never an error.
func Name(s string) string {
	if s == "" {
		return ""
	}

	s = strings.ToLower(s)
	if out, _, err := transform.String(stripMarks, s); err == nil {
		s = out
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteByte(' ')
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}
