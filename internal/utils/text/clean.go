package text

import (
	"regexp"
	"strings"
	"unicode"
)

// markupPattern matches a single tag-like span, shortest first.
// '.' does not cross newlines, so a '<' with no '>' on the same line survives
// the first pass and is dropped by the character filter instead.
var markupPattern = regexp.MustCompile(`<.*?>`)

// allowedPunctuation is the punctuation kept by Clean in addition to ASCII
// letters, digits and whitespace.
const allowedPunctuation = `.,!?'"-`

// Clean strips markup and every character outside the summarizer's whitelist.
//
// The steps run in order:
//  1. remove every `<...>` span (non-greedy)
//  2. drop characters other than ASCII letters, digits, whitespace and . , ! ? ' " -
//
// Clean only removes characters; it never trims or collapses whitespace.
// It is idempotent: Clean(Clean(s)) == Clean(s).
//
// Example:
//
//	Clean("<b>Hello</b> World")  // "Hello World"
//	Clean("Café — 100%")         // "Caf  100"
func Clean(s string) string {
	stripped := markupPattern.ReplaceAllString(s, "")
	return strings.Map(keepRune, stripped)
}

// keepRune returns r when it is allowed, or -1 to drop it (strings.Map contract).
func keepRune(r rune) rune {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return r
	case isSpace(r):
		return r
	case strings.ContainsRune(allowedPunctuation, r):
		return r
	default:
		return -1
	}
}

// isSpace reports whether r is whitespace. The ASCII information separators
// U+001C..U+001F count as whitespace in addition to unicode.IsSpace.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1C && r <= 0x1F)
}
