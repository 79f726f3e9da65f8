package summarizer

import (
	"context"
	"errors"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"article-digest/internal/usecase/summarize"
)

// DefaultClaudeModel is used when Config.Model is empty.
const DefaultClaudeModel = string(anthropic.ModelClaudeSonnet4_5_20250929)

// Claude summarizes with the Anthropic Messages API.
type Claude struct {
	client anthropic.Client
	model  string
	guard  guard
}

// NewClaude creates a Claude backend. It fails when no API key is configured.
func NewClaude(cfg Config, metrics ModelMetricsRecorder) (*Claude, error) {
	if cfg.AnthropicAPIKey == "" {
		return nil, errors.New("ANTHROPIC_API_KEY is not set")
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.AnthropicAPIKey),
		// retries are handled by the guard
		option.WithMaxRetries(0),
		option.WithRequestTimeout(cfg.RequestTimeout),
	}
	if cfg.AnthropicBaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.AnthropicBaseURL))
	}
	model := cfg.Model
	if model == "" || model == DefaultHFModel {
		model = DefaultClaudeModel
	}

	return &Claude{
		client: anthropic.NewClient(opts...),
		model:  model,
		guard:  newGuard(BackendClaude, metrics),
	}, nil
}

// Summarize implements summarize.Model.
func (c *Claude) Summarize(ctx context.Context, text string, p summarize.Params) (string, error) {
	return c.guard.run(ctx, func() (string, error) {
		return c.doSummarize(ctx, text, p)
	})
}

func (c *Claude) doSummarize(ctx context.Context, text string, p summarize.Params) (string, error) {
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: int64(maxTokens(p)),
		System: []anthropic.TextBlockParam{
			{Text: buildInstruction(p)},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(text)),
		},
	}
	if !p.DoSample {
		params.Temperature = anthropic.Float(0)
	}

	message, err := c.client.Messages.New(ctx, params)
	if err != nil {
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) {
			err = newHTTPError(apiErr.StatusCode, apiErr.Error(), err)
		}
		return "", fmt.Errorf("claude api error: %w", err)
	}
	if len(message.Content) == 0 {
		return "", errors.New("claude api returned empty response")
	}

	block, ok := message.Content[0].AsAny().(anthropic.TextBlock)
	if !ok {
		return "", errors.New("claude api returned unexpected response type")
	}
	return block.Text, nil
}
