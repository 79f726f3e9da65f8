package summarizer

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ModelMetricsRecorder records backend call metrics. Tests inject their own
// recorder; production uses PrometheusModelMetrics.
type ModelMetricsRecorder interface {
	// RecordRequest counts one model call by backend and status ("success" or "failure").
	RecordRequest(backend, status string)

	// RecordDuration records the latency of one successful model call.
	RecordDuration(backend string, duration time.Duration)

	// RecordSummaryWords records the word count of a generated summary.
	RecordSummaryWords(words int)
}

// PrometheusModelMetrics implements ModelMetricsRecorder using Prometheus metrics.
type PrometheusModelMetrics struct {
	requests  *prometheus.CounterVec
	durations *prometheus.HistogramVec
	words     prometheus.Histogram
}

var (
	prometheusMetricsInstance *PrometheusModelMetrics
	prometheusMetricsOnce     sync.Once
)

// getOrCreateCounterVec returns the registered collector when one with the same
// descriptor already exists.
func getOrCreateCounterVec(opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	c := prometheus.NewCounterVec(opts, labels)
	if err := prometheus.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return are.ExistingCollector.(*prometheus.CounterVec)
		}
		return promauto.NewCounterVec(opts, labels)
	}
	return c
}

func getOrCreateHistogramVec(opts prometheus.HistogramOpts, labels []string) *prometheus.HistogramVec {
	h := prometheus.NewHistogramVec(opts, labels)
	if err := prometheus.Register(h); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return are.ExistingCollector.(*prometheus.HistogramVec)
		}
		return promauto.NewHistogramVec(opts, labels)
	}
	return h
}

func getOrCreateHistogram(opts prometheus.HistogramOpts) prometheus.Histogram {
	h := prometheus.NewHistogram(opts)
	if err := prometheus.Register(h); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return are.ExistingCollector.(prometheus.Histogram)
		}
		return promauto.NewHistogram(opts)
	}
	return h
}

// NewPrometheusModelMetrics returns the process-wide Prometheus recorder.
func NewPrometheusModelMetrics() *PrometheusModelMetrics {
	prometheusMetricsOnce.Do(func() {
		prometheusMetricsInstance = &PrometheusModelMetrics{
			requests: getOrCreateCounterVec(prometheus.CounterOpts{
				Name: "summarizer_model_requests_total",
				Help: "Total number of summarization model calls",
			}, []string{"backend", "status"}),
			durations: getOrCreateHistogramVec(prometheus.HistogramOpts{
				Name:    "summarizer_model_request_duration_seconds",
				Help:    "Latency of successful summarization model calls",
				Buckets: prometheus.ExponentialBuckets(0.05, 2, 12),
			}, []string{"backend"}),
			words: getOrCreateHistogram(prometheus.HistogramOpts{
				Name:    "summarizer_summary_words",
				Help:    "Distribution of generated summary lengths in words",
				Buckets: []float64{10, 20, 30, 50, 80, 130, 200},
			}),
		}
	})
	return prometheusMetricsInstance
}

// RecordRequest implements ModelMetricsRecorder.RecordRequest
func (p *PrometheusModelMetrics) RecordRequest(backend, status string) {
	p.requests.WithLabelValues(backend, status).Inc()
}

// RecordDuration implements ModelMetricsRecorder.RecordDuration
func (p *PrometheusModelMetrics) RecordDuration(backend string, duration time.Duration) {
	p.durations.WithLabelValues(backend).Observe(duration.Seconds())
}

// RecordSummaryWords implements ModelMetricsRecorder.RecordSummaryWords
func (p *PrometheusModelMetrics) RecordSummaryWords(words int) {
	p.words.Observe(float64(words))
}
