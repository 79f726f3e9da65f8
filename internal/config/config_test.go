package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"article-digest/internal/infra/nytimes"
	"article-digest/internal/infra/summarizer"
)

var configEnvVars = []string{
	"CONFIG_FILE",
	"SERVER_ADDR", "SERVER_READ_TIMEOUT", "SERVER_WRITE_TIMEOUT", "SERVER_IDLE_TIMEOUT",
	"SERVER_SHUTDOWN_TIMEOUT", "SERVER_MAX_BODY_BYTES",
	"RATE_LIMIT_PER_MINUTE", "RATE_LIMIT_BURST", "TRUST_PROXY",
	"CSP_ENABLED", "CSP_REPORT_ONLY", "APP_VERSION",
	"NYT_API_KEY", "NYT_BASE_URL", "NYT_TIMEOUT", "NYT_RATE_PER_MINUTE", "NYT_RATE_BURST",
	"SUMMARIZER_BACKEND", "SUMMARIZER_MODEL", "HF_BASE_URL", "HF_TOKEN",
	"OPENAI_API_KEY", "OPENAI_BASE_URL", "ANTHROPIC_API_KEY", "ANTHROPIC_BASE_URL",
	"SUMMARIZER_REQUEST_TIMEOUT", "SUMMARIZER_TIMEOUT",
	"LOG_LEVEL", "LOG_FORMAT", "TRACING_ENABLED", "TRACE_SAMPLE_RATIO",
	"TRANSFORMERS_NO_TF", "TRANSFORMERS_NO_FLAX",
}

// clearEnv unsets every variable Load reads and restores them after the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configEnvVars {
		if old, ok := os.LookupEnv(key); ok {
			t.Cleanup(func() { _ = os.Setenv(key, old) })
		}
		require.NoError(t, os.Unsetenv(key))
	}
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 5*time.Minute, cfg.Server.WriteTimeout)
	assert.Equal(t, int64(1<<20), cfg.Server.MaxBodyBytes)
	assert.True(t, cfg.Server.CSPEnabled)

	assert.Empty(t, cfg.Search.APIKey, "a missing key is not a load error")
	assert.Equal(t, nytimes.DefaultBaseURL, cfg.Search.BaseURL)

	assert.Equal(t, summarizer.BackendHuggingFace, cfg.Summarizer.Backend)
	assert.Empty(t, cfg.Summarizer.Model)
	assert.Equal(t, summarizer.DefaultHFBaseURL, cfg.Summarizer.HFBaseURL)
	assert.Zero(t, cfg.Summarizer.Timeout)

	assert.Equal(t, "info", cfg.Observability.LogLevel)
	assert.False(t, cfg.Observability.TracingEnabled)
}

func TestLoad_Environment(t *testing.T) {
	clearEnv(t)
	t.Setenv("NYT_API_KEY", "nyt-key")
	t.Setenv("NYT_TIMEOUT", "5s")
	t.Setenv("SUMMARIZER_BACKEND", "claude")
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant-test")
	t.Setenv("SUMMARIZER_MODEL", "claude-haiku-4-5")
	t.Setenv("SUMMARIZER_TIMEOUT", "45s")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "12.5")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("TRANSFORMERS_NO_TF", "1")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "nyt-key", cfg.Search.APIKey)
	assert.Equal(t, 5*time.Second, cfg.Search.Timeout)
	assert.Equal(t, summarizer.BackendClaude, cfg.Summarizer.Backend)
	assert.Equal(t, 45*time.Second, cfg.Summarizer.Timeout)
	assert.Equal(t, 12.5, cfg.Server.RatePerMinute)
	assert.Equal(t, "debug", cfg.Observability.LogLevel)
	assert.Equal(t, "1", cfg.Framework.TransformersNoTF)

	assert.Equal(t, "claude-haiku-4-5", cfg.Summarizer.Model)

	model := cfg.Summarizer.ModelConfig()
	assert.Equal(t, "sk-ant-test", model.AnthropicAPIKey)
	assert.Equal(t, summarizer.BackendClaude, model.Backend)
	assert.Equal(t, "claude-haiku-4-5", model.Model)
}

func TestLoad_FileThenEnvironment(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, `
server:
  addr: ":9090"
  shutdown_timeout: 10s
search:
  base_url: http://localhost:1234/search
  rate_per_minute: 2
summarizer:
  backend: noop
observability:
  log_format: text
`)
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("SERVER_ADDR", ":7070")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.Server.Addr, "environment wins over the file")
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "http://localhost:1234/search", cfg.Search.BaseURL)
	assert.Equal(t, 2.0, cfg.Search.RatePerMinute)
	assert.Equal(t, 30*time.Second, cfg.Search.Timeout, "unset keys keep defaults")
	assert.Equal(t, summarizer.BackendNoop, cfg.Summarizer.Backend)
	assert.Equal(t, "text", cfg.Observability.LogFormat)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		file string
	}{
		{name: "unknown backend", env: map[string]string{"SUMMARIZER_BACKEND": "bert"}},
		{name: "malformed duration", env: map[string]string{"NYT_TIMEOUT": "soon"}},
		{name: "zero search timeout", env: map[string]string{"NYT_TIMEOUT": "0s"}},
		{name: "negative summarizer timeout", env: map[string]string{"SUMMARIZER_TIMEOUT": "-1s"}},
		{name: "sample ratio out of range", env: map[string]string{"TRACE_SAMPLE_RATIO": "1.5"}},
		{name: "malformed file", file: "server: [unterminated"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if tt.file != "" {
				t.Setenv("CONFIG_FILE", writeFile(t, tt.file))
			}

			cfg, err := Load()
			assert.Error(t, err)
			assert.Nil(t, cfg)
		})
	}
}

func TestLoad_MissingConfigFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "absent.yaml"))

	_, err := Load()
	assert.ErrorContains(t, err, "read config file")
}

func TestSearchConfig_Client(t *testing.T) {
	s := SearchConfig{APIKey: "k", BaseURL: "http://x", Timeout: time.Second, RatePerMinute: 3, Burst: 2}
	assert.Equal(t, nytimes.Config{APIKey: "k", BaseURL: "http://x", Timeout: time.Second, RatePerMinute: 3, Burst: 2}, s.Client())
}
