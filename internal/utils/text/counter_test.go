package text_test

import (
	"testing"

	"article-digest/internal/utils/text"
)

func TestCountRunes(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int
	}{
		{name: "ASCII text", input: "hello", expected: 5},
		{name: "ASCII with spaces", input: "hello world", expected: 11},
		{name: "accented", input: "héllo", expected: 5},
		{name: "em dash", input: "a—b", expected: 3},
		{name: "empty", input: "", expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := text.CountRunes(tt.input); got != tt.expected {
				t.Errorf("CountRunes(%q) = %d, want %d", tt.input, got, tt.expected)
			}
		})
	}
}

func TestCountWords(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int
	}{
		{name: "empty", input: "", expected: 0},
		{name: "only whitespace", input: " \t\n ", expected: 0},
		{name: "single word", input: "climate", expected: 1},
		{name: "leading and trailing whitespace", input: "  a  b ", expected: 2},
		{name: "mixed separators", input: "one\ttwo\nthree  four", expected: 4},
		{name: "punctuation stays attached", input: "Hello, world!", expected: 2},
		{name: "information separators split words", input: "a\x1cb\x1dc\x1ed\x1fe", expected: 5},
		{name: "no-break space splits words", input: "a\u00a0b", expected: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := text.CountWords(tt.input); got != tt.expected {
				t.Errorf("CountWords(%q) = %d, want %d", tt.input, got, tt.expected)
			}
		})
	}
}
