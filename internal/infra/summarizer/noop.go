package summarizer

import (
	"context"

	"article-digest/internal/usecase/summarize"
)

// NoOp returns its input unchanged. It serves local development without
// network access.
type NoOp struct{}

// NewNoOp creates a new NoOp summarizer.
func NewNoOp() *NoOp {
	return &NoOp{}
}

// Summarize implements summarize.Model.
func (n *NoOp) Summarize(_ context.Context, text string, _ summarize.Params) (string, error) {
	return text, nil
}
