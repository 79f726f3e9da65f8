package summarizer

import (
	"sync"
	"time"

	"article-digest/internal/resilience/retry"
)

type mockMetrics struct {
	mu       sync.Mutex
	requests map[string]int
	words    []int
}

func newMockMetrics() *mockMetrics {
	return &mockMetrics{requests: map[string]int{}}
}

func (m *mockMetrics) RecordRequest(backend, status string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests[backend+"/"+status]++
}

func (m *mockMetrics) RecordDuration(string, time.Duration) {}

func (m *mockMetrics) RecordSummaryWords(words int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.words = append(m.words, words)
}

func fastRetry() retry.Config {
	return retry.Config{
		MaxAttempts:  3,
		InitialDelay: time.Millisecond,
		MaxDelay:     2 * time.Millisecond,
		Multiplier:   2,
	}
}

func testConfig(baseURL string) Config {
	cfg := DefaultConfig()
	cfg.HFBaseURL = baseURL
	cfg.OpenAIBaseURL = baseURL + "/v1"
	cfg.AnthropicBaseURL = baseURL
	cfg.RequestTimeout = 5 * time.Second
	return cfg
}
