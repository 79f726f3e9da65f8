package metrics

import "time"

// RecordSearch records one search call. result is "ok" or the error kind.
// docs is only observed for successful calls.
func RecordSearch(result string, duration time.Duration, docs int) {
	SearchRequestsTotal.WithLabelValues(result).Inc()
	SearchDuration.Observe(duration.Seconds())
	if result == "ok" {
		ArticlesReturned.Observe(float64(docs))
	}
}

// RecordArticleSummarized records the outcome of summarizing one article.
func RecordArticleSummarized(outcome string) {
	ArticlesSummarizedTotal.WithLabelValues(outcome).Inc()
}

// RecordSummarizationDuration records the time taken by one model call.
func RecordSummarizationDuration(duration time.Duration) {
	SummarizationDuration.Observe(duration.Seconds())
}

// RecordModelLoad records a model handle construction attempt.
func RecordModelLoad(success bool) {
	status := "success"
	if !success {
		status = "failure"
	}
	ModelLoadsTotal.WithLabelValues(status).Inc()
}

// RecordDigest records the end of a digest request.
func RecordDigest(success bool) {
	result := "success"
	if !success {
		result = "search_error"
	}
	DigestsTotal.WithLabelValues(result).Inc()
}
