package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordSearch(t *testing.T) {
	before := testutil.ToFloat64(SearchRequestsTotal.WithLabelValues("rate_limit"))

	RecordSearch("rate_limit", 10*time.Millisecond, 0)

	after := testutil.ToFloat64(SearchRequestsTotal.WithLabelValues("rate_limit"))
	assert.Equal(t, before+1, after)
}

func TestRecordArticleSummarized(t *testing.T) {
	tests := []struct {
		name    string
		outcome string
	}{
		{name: "summarized", outcome: "summarized"},
		{name: "passthrough", outcome: "passthrough"},
		{name: "fallback", outcome: "fallback"},
		{name: "placeholder", outcome: "placeholder"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := testutil.ToFloat64(ArticlesSummarizedTotal.WithLabelValues(tt.outcome))
			RecordArticleSummarized(tt.outcome)
			assert.Equal(t, before+1, testutil.ToFloat64(ArticlesSummarizedTotal.WithLabelValues(tt.outcome)))
		})
	}
}

func TestRecordModelLoad(t *testing.T) {
	okBefore := testutil.ToFloat64(ModelLoadsTotal.WithLabelValues("success"))
	failBefore := testutil.ToFloat64(ModelLoadsTotal.WithLabelValues("failure"))

	RecordModelLoad(true)
	RecordModelLoad(false)
	RecordModelLoad(false)

	assert.Equal(t, okBefore+1, testutil.ToFloat64(ModelLoadsTotal.WithLabelValues("success")))
	assert.Equal(t, failBefore+2, testutil.ToFloat64(ModelLoadsTotal.WithLabelValues("failure")))
}

func TestRecordDurations(t *testing.T) {
	assert.NotPanics(t, func() {
		RecordSummarizationDuration(250 * time.Millisecond)
		RecordDigest(true)
		RecordDigest(false)
	})
}
