package summarizer

import (
	"context"
	"errors"
	"fmt"
	"math"

	openai "github.com/sashabaranov/go-openai"

	"article-digest/internal/usecase/summarize"
)

// DefaultOpenAIModel is used when Config.Model is empty.
const DefaultOpenAIModel = openai.GPT4oMini

// OpenAI summarizes with the chat completions API.
type OpenAI struct {
	client *openai.Client
	model  string
	guard  guard
}

// NewOpenAI creates an OpenAI backend. It fails when no API key is configured.
func NewOpenAI(cfg Config, metrics ModelMetricsRecorder) (*OpenAI, error) {
	if cfg.OpenAIAPIKey == "" {
		return nil, errors.New("OPENAI_API_KEY is not set")
	}

	clientCfg := openai.DefaultConfig(cfg.OpenAIAPIKey)
	if cfg.OpenAIBaseURL != "" {
		clientCfg.BaseURL = cfg.OpenAIBaseURL
	}
	model := cfg.Model
	if model == "" || model == DefaultHFModel {
		model = DefaultOpenAIModel
	}

	return &OpenAI{
		client: openai.NewClientWithConfig(clientCfg),
		model:  model,
		guard:  newGuard(BackendOpenAI, metrics),
	}, nil
}

// Summarize implements summarize.Model.
func (o *OpenAI) Summarize(ctx context.Context, text string, p summarize.Params) (string, error) {
	return o.guard.run(ctx, func() (string, error) {
		return o.doSummarize(ctx, text, p)
	})
}

func (o *OpenAI) doSummarize(ctx context.Context, text string, p summarize.Params) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: buildInstruction(p)},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
		MaxTokens: maxTokens(p),
	}
	if !p.DoSample {
		// zero is omitted from the request body and means the API default
		req.Temperature = math.SmallestNonzeroFloat32
	}

	resp, err := o.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("openai api error: %w", asHTTPError(err))
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai api returned empty response")
	}
	return resp.Choices[0].Message.Content, nil
}

// asHTTPError maps API status errors onto retry.HTTPError so that 429 and
// 5xx responses are retried.
func asHTTPError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode != 0 {
		return newHTTPError(apiErr.HTTPStatusCode, apiErr.Message, err)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode != 0 {
		return newHTTPError(reqErr.HTTPStatusCode, reqErr.Error(), err)
	}
	return err
}
