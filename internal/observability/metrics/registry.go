package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Search metrics track calls to the article search service
var (
	// SearchRequestsTotal counts search calls by result ("ok" or an error kind)
	SearchRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "article_search_requests_total",
			Help: "Total number of article search requests",
		},
		[]string{"result"},
	)

	// SearchDuration measures search call latency in seconds
	SearchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "article_search_duration_seconds",
			Help:    "Article search request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
		},
	)

	// ArticlesReturned observes how many docs a successful search returned
	ArticlesReturned = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "article_search_docs",
			Help:    "Number of articles returned per successful search",
			Buckets: []float64{0, 1, 2, 5, 10, 20},
		},
	)
)

// Summary metrics track per-article summarization
var (
	// ArticlesSummarizedTotal counts articles by summary outcome
	ArticlesSummarizedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "articles_summarized_total",
			Help: "Total number of articles processed, by summary outcome",
		},
		[]string{"outcome"},
	)

	// SummarizationDuration measures time to summarize one article
	SummarizationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "summarization_duration_seconds",
			Help:    "Time taken to summarize an article",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 12),
		},
	)

	// ModelLoadsTotal counts model handle construction attempts by status
	ModelLoadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "summarizer_model_loads_total",
			Help: "Total number of summarization model construction attempts",
		},
		[]string{"status"},
	)

	// DigestsTotal counts digest requests by result
	DigestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "digests_total",
			Help: "Total number of digest requests",
		},
		[]string{"result"},
	)
)
