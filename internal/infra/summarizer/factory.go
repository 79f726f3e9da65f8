package summarizer

import (
	"context"
	"fmt"

	"article-digest/internal/usecase/summarize"
)

// Build constructs the model selected by cfg.Backend.
func Build(cfg Config, metrics ModelMetricsRecorder) (summarize.Model, error) {
	switch cfg.Backend {
	case BackendHuggingFace:
		return NewHuggingFace(cfg, metrics), nil
	case BackendOpenAI:
		return NewOpenAI(cfg, metrics)
	case BackendClaude:
		return NewClaude(cfg, metrics)
	case BackendNoop:
		return NewNoOp(), nil
	default:
		return nil, fmt.Errorf("unknown summarizer backend %q", cfg.Backend)
	}
}

// NewFromConfig returns a lazy handle that builds the configured backend on first use.
func NewFromConfig(cfg Config) *Lazy {
	return NewLazy(cfg.Backend, func(context.Context) (summarize.Model, error) {
		return Build(cfg, NewPrometheusModelMetrics())
	})
}
