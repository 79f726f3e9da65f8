package summarize

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"article-digest/internal/domain/entity"
	"article-digest/internal/observability/logging"
	"article-digest/internal/observability/metrics"
	"article-digest/internal/utils/text"
)

// Params are the generation settings for one model call.
type Params struct {
	MaxLength int
	MinLength int
	DoSample  bool
}

// Model produces a summary of text within the given bounds.
type Model interface {
	Summarize(ctx context.Context, text string, p Params) (string, error)
}

// ModelProvider hands out the process-wide model, constructing it on first use.
type ModelProvider interface {
	Get(ctx context.Context) (Model, error)
}

// Result is the outcome of summarizing one article. Text is always set to
// what should be displayed; Err carries the reason for a fallback.
type Result struct {
	Text    string
	Outcome entity.SummaryOutcome
	Err     error
}

// Service summarizes article text with a lazily obtained model.
type Service struct {
	models  ModelProvider
	timeout time.Duration
}

// Option configures a Service.
type Option func(*Service)

// WithTimeout bounds each model call. Zero means no limit beyond the caller's context.
func WithTimeout(d time.Duration) Option {
	return func(s *Service) {
		s.timeout = d
	}
}

// NewService creates a Service that obtains its model from models.
func NewService(models ModelProvider, opts ...Option) *Service {
	s := &Service{models: models}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Summarize cleans raw and returns its display text. Text shorter than
// MinWordsToSummarize words is passed through without touching the model.
// Model failures never escape: the cleaned text is returned with
// OutcomeFallback and the cause in Err.
func (s *Service) Summarize(ctx context.Context, raw string) Result {
	cleaned := text.Clean(raw)
	words := text.CountWords(cleaned)

	bounds, ok := DeriveBounds(words)
	if !ok {
		return Result{Text: cleaned, Outcome: entity.OutcomePassthrough}
	}

	logger := logging.WithRequestID(ctx, logging.FromContext(ctx))

	model, err := s.models.Get(ctx)
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrModelUnavailable, err)
		logger.Warn("summarization skipped, showing cleaned text",
			slog.Int("words", words),
			slog.Any("error", err))
		return Result{Text: cleaned, Outcome: entity.OutcomeFallback, Err: err}
	}

	callCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	summary, err := model.Summarize(callCtx, cleaned, Params{
		MaxLength: bounds.MaxLength,
		MinLength: bounds.MinLength,
		DoSample:  false,
	})
	metrics.RecordSummarizationDuration(time.Since(start))
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrSummarizationFailed, err)
		logger.Warn("summarization failed, showing cleaned text",
			slog.Int("words", words),
			slog.Int("max_length", bounds.MaxLength),
			slog.Int("min_length", bounds.MinLength),
			slog.Any("error", err))
		return Result{Text: cleaned, Outcome: entity.OutcomeFallback, Err: err}
	}

	logger.Debug("article summarized",
		slog.Int("words", words),
		slog.Int("summary_runes", text.CountRunes(summary)),
		slog.Duration("duration", time.Since(start)))
	return Result{Text: summary, Outcome: entity.OutcomeSummarized}
}
