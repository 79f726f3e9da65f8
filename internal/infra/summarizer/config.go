package summarizer

import (
	"fmt"
	"time"
)

// Backend names accepted by Config.Backend.
const (
	BackendHuggingFace = "huggingface"
	BackendOpenAI      = "openai"
	BackendClaude      = "claude"
	BackendNoop        = "noop"
)

// Defaults for the hosted inference backend.
const (
	DefaultHFBaseURL = "https://router.huggingface.co/hf-inference/models"
	DefaultHFModel   = "facebook/bart-large-cnn"
)

// Config selects and configures the summarization backend.
type Config struct {
	// Backend is one of huggingface, openai, claude or noop.
	Backend string

	// Model is the backend model identifier. Empty selects the backend default.
	Model string

	// HFBaseURL and HFToken address the Hugging Face inference endpoint.
	HFBaseURL string
	HFToken   string

	// OpenAIAPIKey and OpenAIBaseURL configure the OpenAI backend.
	OpenAIAPIKey  string
	OpenAIBaseURL string

	// AnthropicAPIKey and AnthropicBaseURL configure the Claude backend.
	AnthropicAPIKey  string
	AnthropicBaseURL string

	// RequestTimeout bounds one HTTP exchange with the backend.
	RequestTimeout time.Duration
}

// DefaultConfig returns the configuration for bart-large-cnn on the hosted inference API.
func DefaultConfig() Config {
	return Config{
		Backend:        BackendHuggingFace,
		Model:          DefaultHFModel,
		HFBaseURL:      DefaultHFBaseURL,
		RequestTimeout: 60 * time.Second,
	}
}

// Validate checks the fields that do not depend on secrets. Missing API keys
// are reported when the model is first constructed so that the server can
// start without them.
func (c Config) Validate() error {
	switch c.Backend {
	case BackendHuggingFace, BackendOpenAI, BackendClaude, BackendNoop:
	default:
		return fmt.Errorf("unknown summarizer backend %q", c.Backend)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive, got %v", c.RequestTimeout)
	}
	return nil
}
