package summarizer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"article-digest/internal/observability/logging"
	"article-digest/internal/resilience/circuitbreaker"
	"article-digest/internal/resilience/retry"
	"article-digest/internal/utils/text"
)

// guard runs backend calls through retry, a circuit breaker and metrics.
type guard struct {
	backend        string
	circuitBreaker *circuitbreaker.CircuitBreaker
	retryConfig    retry.Config
	metrics        ModelMetricsRecorder
}

func newGuard(backend string, metrics ModelMetricsRecorder) guard {
	cbCfg := circuitbreaker.ModelAPIConfig(backend)
	cbCfg.IsSuccessful = func(err error) bool {
		return err == nil || errors.Is(err, context.Canceled)
	}
	if metrics == nil {
		metrics = NewPrometheusModelMetrics()
	}
	return guard{
		backend:        backend,
		circuitBreaker: circuitbreaker.New(cbCfg),
		retryConfig:    retry.ModelAPIConfig(),
		metrics:        metrics,
	}
}

// run executes call with retry around the circuit breaker. An open breaker
// fails fast without retrying.
func (g guard) run(ctx context.Context, call func() (string, error)) (string, error) {
	logger := logging.WithRequestID(ctx, logging.FromContext(ctx))

	var summary string
	start := time.Now()
	err := retry.WithBackoff(ctx, g.retryConfig, func() error {
		out, err := circuitbreaker.Do(g.circuitBreaker, call)
		if err != nil {
			if circuitbreaker.IsRejected(err) {
				logger.Warn("summarizer circuit breaker open, request rejected",
					slog.String("backend", g.backend),
					slog.String("state", g.circuitBreaker.State().String()))
				return fmt.Errorf("%s unavailable: %w", g.backend, err)
			}
			return err
		}
		summary = out
		return nil
	})
	if err != nil {
		g.metrics.RecordRequest(g.backend, "failure")
		return "", fmt.Errorf("%s summarize: %w", g.backend, err)
	}

	g.metrics.RecordRequest(g.backend, "success")
	g.metrics.RecordDuration(g.backend, time.Since(start))
	g.metrics.RecordSummaryWords(text.CountWords(summary))
	return summary, nil
}
