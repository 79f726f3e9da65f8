package summarizer

import (
	"fmt"

	"article-digest/internal/resilience/retry"
	"article-digest/internal/usecase/summarize"
)

// buildInstruction asks a chat model for the same shape of output the
// summarization pipeline produces: one plain paragraph within the bounds.
func buildInstruction(p summarize.Params) string {
	return fmt.Sprintf(
		"Summarize the news text supplied by the user in a single plain paragraph "+
			"of %d to %d words. Reply with the summary only.",
		p.MinLength, p.MaxLength)
}

// maxTokens leaves headroom over MaxLength words for tokenization.
func maxTokens(p summarize.Params) int {
	return p.MaxLength*2 + 16
}

// statusError keeps the SDK error for errors.As while exposing the status
// through retry.HTTPError.
type statusError struct {
	*retry.HTTPError
	cause error
}

func (e *statusError) Unwrap() []error {
	return []error{e.HTTPError, e.cause}
}

func newHTTPError(status int, msg string, cause error) error {
	return &statusError{HTTPError: &retry.HTTPError{StatusCode: status, Message: msg}, cause: cause}
}
