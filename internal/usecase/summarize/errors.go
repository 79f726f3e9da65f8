// Package summarize turns the raw text of one article into display text:
// it cleans the text, decides whether it is long enough to summarize, derives
// the model's length bounds and calls the model, falling back to the cleaned
// text when the model cannot be used.
package summarize

import "errors"

// Sentinel errors carried in Result.Err.
var (
	// ErrModelUnavailable indicates that the model handle could not be constructed.
	ErrModelUnavailable = errors.New("summarization model unavailable")

	// ErrSummarizationFailed indicates that the model call returned an error.
	ErrSummarizationFailed = errors.New("failed to summarize article content")
)
