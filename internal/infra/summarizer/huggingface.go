// Package summarizer provides the summarization model backends and the lazily
// constructed, process-wide model handle used by the summarize service.
//
// The default backend calls facebook/bart-large-cnn on the Hugging Face
// inference API. OpenAI and Claude chat backends and a no-op backend are
// available through configuration. Every network backend runs behind retry
// with backoff and a circuit breaker.
package summarizer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"article-digest/internal/resilience/retry"
	"article-digest/internal/usecase/summarize"
)

// maxErrorBody bounds how much of an error response is read.
const maxErrorBody = 4 << 10

// HuggingFace calls a summarization pipeline on the Hugging Face inference API.
type HuggingFace struct {
	httpClient *http.Client
	endpoint   string
	token      string
	guard      guard
}

type hfRequest struct {
	Inputs     string       `json:"inputs"`
	Parameters hfParameters `json:"parameters"`
	Options    hfOptions    `json:"options"`
}

type hfParameters struct {
	MaxLength int  `json:"max_length"`
	MinLength int  `json:"min_length"`
	DoSample  bool `json:"do_sample"`
}

type hfOptions struct {
	WaitForModel bool `json:"wait_for_model"`
}

type hfSummary struct {
	SummaryText string `json:"summary_text"`
}

type hfError struct {
	Error string `json:"error"`
}

// NewHuggingFace creates a backend for cfg.Model at cfg.HFBaseURL.
func NewHuggingFace(cfg Config, metrics ModelMetricsRecorder) *HuggingFace {
	base := cfg.HFBaseURL
	if base == "" {
		base = DefaultHFBaseURL
	}
	model := cfg.Model
	if model == "" {
		model = DefaultHFModel
	}
	return &HuggingFace{
		httpClient: &http.Client{Timeout: cfg.RequestTimeout},
		endpoint:   strings.TrimRight(base, "/") + "/" + model,
		token:      cfg.HFToken,
		guard:      newGuard(BackendHuggingFace, metrics),
	}
}

// Summarize implements summarize.Model.
func (h *HuggingFace) Summarize(ctx context.Context, text string, p summarize.Params) (string, error) {
	return h.guard.run(ctx, func() (string, error) {
		return h.doSummarize(ctx, text, p)
	})
}

// doSummarize performs one inference request without retry or circuit breaker.
func (h *HuggingFace) doSummarize(ctx context.Context, text string, p summarize.Params) (string, error) {
	body, err := json.Marshal(hfRequest{
		Inputs: text,
		Parameters: hfParameters{
			MaxLength: p.MaxLength,
			MinLength: p.MinLength,
			DoSample:  p.DoSample,
		},
		Options: hfOptions{WaitForModel: true},
	})
	if err != nil {
		return "", fmt.Errorf("encode inference request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build inference request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if h.token != "" {
		req.Header.Set("Authorization", "Bearer "+h.token)
	}

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("inference request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &retry.HTTPError{StatusCode: resp.StatusCode, Message: errorMessage(resp)}
	}

	var out []hfSummary
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode inference response: %w", err)
	}
	if len(out) == 0 {
		return "", errors.New("inference response contained no summaries")
	}
	return out[0].SummaryText, nil
}

// errorMessage extracts the "error" field of an inference error response,
// falling back to the status text.
func errorMessage(resp *http.Response) string {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	var e hfError
	if json.Unmarshal(raw, &e) == nil && e.Error != "" {
		return e.Error
	}
	return http.StatusText(resp.StatusCode)
}
