// Package text provides the text normalization used before summarization:
// markup stripping, character whitelisting and word/rune counting.
package text

import "strings"

// CountRunes counts the number of Unicode characters (runes) in the given text.
// Used for length logging, where byte counts would overstate non-ASCII input.
//
// Examples:
//
//	CountRunes("hello")     // returns 5
//	CountRunes("héllo")     // returns 5
//	CountRunes("")          // returns 0
func CountRunes(text string) int {
	return len([]rune(text))
}

// CountWords returns the number of whitespace-separated words in text.
// Runs of whitespace count as a single separator and leading or trailing
// whitespace is ignored, so CountWords("  a  b ") is 2. Whitespace is the
// set kept by Clean.
func CountWords(text string) int {
	return len(strings.FieldsFunc(text, isSpace))
}
