package summarizer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"article-digest/internal/resilience/retry"
	"article-digest/internal/usecase/summarize"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOpenAI_RequiresKey(t *testing.T) {
	_, err := NewOpenAI(DefaultConfig(), newMockMetrics())
	assert.ErrorContains(t, err, "OPENAI_API_KEY")
}

func TestNewClaude_RequiresKey(t *testing.T) {
	_, err := NewClaude(DefaultConfig(), newMockMetrics())
	assert.ErrorContains(t, err, "ANTHROPIC_API_KEY")
}

func TestOpenAI_Summarize(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "chatcmpl-1",
			"object": "chat.completion",
			"created": 1700000000,
			"model": "gpt-4o-mini",
			"choices": [{"index": 0, "message": {"role": "assistant", "content": "A short summary."}, "finish_reason": "stop"}]
		}`))
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.OpenAIAPIKey = "sk-test"
	o, err := NewOpenAI(cfg, newMockMetrics())
	require.NoError(t, err)

	out, err := o.Summarize(context.Background(), "article text", summarize.Params{MaxLength: 60, MinLength: 30})

	require.NoError(t, err)
	assert.Equal(t, "A short summary.", out)
	assert.Equal(t, DefaultOpenAIModel, body["model"])
	msgs, ok := body["messages"].([]any)
	require.True(t, ok)
	require.Len(t, msgs, 2)
	assert.Contains(t, msgs[0].(map[string]any)["content"], "30 to 60 words")
	assert.Equal(t, "article text", msgs[1].(map[string]any)["content"])
}

func TestOpenAI_Summarize_RateLimitedIsRetryable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error": {"message": "Rate limit reached", "type": "rate_limit_error"}}`))
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.OpenAIAPIKey = "sk-test"
	o, err := NewOpenAI(cfg, newMockMetrics())
	require.NoError(t, err)
	o.guard.retryConfig = fastRetry()

	_, err = o.Summarize(context.Background(), "article text", summarize.Params{MaxLength: 60, MinLength: 30})

	var httpErr *retry.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusTooManyRequests, httpErr.StatusCode)
	assert.True(t, retry.IsRetryable(httpErr))
}

func TestClaude_Summarize(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "sk-ant-test", r.Header.Get("X-Api-Key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "msg_1",
			"type": "message",
			"role": "assistant",
			"model": "claude-sonnet-4-5-20250929",
			"content": [{"type": "text", "text": "Claude summary."}],
			"stop_reason": "end_turn",
			"usage": {"input_tokens": 10, "output_tokens": 5}
		}`))
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.AnthropicAPIKey = "sk-ant-test"
	c, err := NewClaude(cfg, newMockMetrics())
	require.NoError(t, err)

	out, err := c.Summarize(context.Background(), "article text", summarize.Params{MaxLength: 50, MinLength: 30})

	require.NoError(t, err)
	assert.Equal(t, "Claude summary.", out)
	assert.Equal(t, DefaultClaudeModel, body["model"])
	assert.Equal(t, float64(0), body["temperature"])
	assert.Equal(t, float64(116), body["max_tokens"])
}

func TestNoOp_ReturnsInput(t *testing.T) {
	out, err := NewNoOp().Summarize(context.Background(), "unchanged text", summarize.Params{MaxLength: 40})
	require.NoError(t, err)
	assert.Equal(t, "unchanged text", out)
}

func TestBuild(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
		check   func(t *testing.T, m summarize.Model)
	}{
		{
			name: "hugging face default",
			check: func(t *testing.T, m summarize.Model) {
				assert.IsType(t, &HuggingFace{}, m)
			},
		},
		{
			name:   "noop",
			mutate: func(c *Config) { c.Backend = BackendNoop },
			check: func(t *testing.T, m summarize.Model) {
				assert.IsType(t, &NoOp{}, m)
			},
		},
		{
			name:    "openai without key",
			mutate:  func(c *Config) { c.Backend = BackendOpenAI },
			wantErr: "OPENAI_API_KEY",
		},
		{
			name:    "unknown backend",
			mutate:  func(c *Config) { c.Backend = "pegasus" },
			wantErr: "unknown summarizer backend",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			if tt.mutate != nil {
				tt.mutate(&cfg)
			}
			m, err := Build(cfg, newMockMetrics())
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.check(t, m)
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	cfg := DefaultConfig()
	assert.NoError(t, cfg.Validate())

	cfg.Backend = "gpt2"
	assert.ErrorContains(t, cfg.Validate(), "unknown summarizer backend")

	cfg = DefaultConfig()
	cfg.RequestTimeout = 0
	assert.ErrorContains(t, cfg.Validate(), "request timeout")
}
