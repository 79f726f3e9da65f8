package summarize

const (
	// MinWordsToSummarize is the word count below which text is shown as-is.
	MinWordsToSummarize = 50
	// MaxSummaryLength caps the model's max_length.
	MaxSummaryLength = 130
	// MinSummaryLength is the model's min_length unless it would reach max_length.
	MinSummaryLength = 30
	// lengthMargin keeps max_length below the input length.
	lengthMargin = 10
)

// Bounds are the length limits passed to the model.
type Bounds struct {
	MaxLength int
	MinLength int
}

// DeriveBounds returns the model bounds for a text of wordCount words.
// ok is false when the text is too short to summarize.
//
// MaxLength is min(130, wordCount-10) and MinLength is 30, halved from
// MaxLength when it would not be strictly smaller.
func DeriveBounds(wordCount int) (b Bounds, ok bool) {
	if wordCount < MinWordsToSummarize {
		return Bounds{}, false
	}

	b.MaxLength = min(MaxSummaryLength, wordCount-lengthMargin)
	b.MinLength = MinSummaryLength
	if b.MinLength >= b.MaxLength {
		b.MinLength = b.MaxLength / 2
	}
	return b, true
}
