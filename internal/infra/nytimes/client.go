// Package nytimes is a client for the New York Times Article Search API.
//
// Search returns the docs of one result page or a *SearchError tagged with
// the kind of failure. Requests are paced by a token bucket and protected by
// a circuit breaker; they are never retried, so one user action costs at most
// one request against the daily quota.
package nytimes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/time/rate"

	"article-digest/internal/domain/entity"
	"article-digest/internal/observability/logging"
	"article-digest/internal/observability/metrics"
	"article-digest/internal/observability/tracing"
	"article-digest/internal/resilience/circuitbreaker"
)

// DefaultBaseURL is the Article Search endpoint.
const DefaultBaseURL = "https://api.nytimes.com/svc/search/v2/articlesearch.json"

// maxBodyBytes bounds the decoded response body.
const maxBodyBytes = 10 << 20

// Config configures a Client.
type Config struct {
	// APIKey is sent as the api-key query parameter. Empty keys fail every
	// search with KindConfiguration.
	APIKey string

	// BaseURL defaults to DefaultBaseURL.
	BaseURL string

	// Timeout bounds one HTTP exchange. Zero means no timeout.
	Timeout time.Duration

	// RatePerMinute and Burst pace outgoing requests. A non-positive rate disables pacing.
	RatePerMinute float64
	Burst         int
}

// Client queries the Article Search API.
type Client struct {
	apiKey         string
	baseURL        string
	httpClient     *http.Client
	limiter        *rate.Limiter
	circuitBreaker *circuitbreaker.CircuitBreaker
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithCircuitBreaker replaces the circuit breaker.
func WithCircuitBreaker(cb *circuitbreaker.CircuitBreaker) Option {
	return func(c *Client) {
		c.circuitBreaker = cb
	}
}

// New creates a Client.
func New(cfg Config, opts ...Option) *Client {
	base := cfg.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}

	cbCfg := circuitbreaker.SearchAPIConfig()
	cbCfg.IsSuccessful = func(err error) bool {
		if err == nil || errors.Is(err, context.Canceled) {
			return true
		}
		// The service answered; quota and key problems must reach the user as such.
		switch KindOf(err) {
		case KindRateLimit, KindFault:
			return true
		}
		return false
	}

	c := &Client{
		apiKey:         cfg.APIKey,
		baseURL:        base,
		httpClient:     &http.Client{Timeout: cfg.Timeout},
		circuitBreaker: circuitbreaker.New(cbCfg),
	}
	if cfg.RatePerMinute > 0 {
		burst := cfg.Burst
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RatePerMinute/60), burst)
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Configured reports whether an API key is set.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// BreakerOpen reports whether searches are currently being rejected.
func (c *Client) BreakerOpen() bool {
	return c.circuitBreaker.IsOpen()
}

type searchResponse struct {
	Fault    json.RawMessage `json:"fault"`
	Response *struct {
		Docs []entity.Article `json:"docs"`
	} `json:"response"`
}

type fault struct {
	FaultString string `json:"faultstring"`
}

// Search returns the articles on the given result page for query. The query
// is sent as given and page is not validated. On failure the error is always
// a *SearchError.
func (c *Client) Search(ctx context.Context, query string, page int) ([]entity.Article, error) {
	ctx, span := tracing.Tracer().Start(ctx, "nytimes.search")
	defer span.End()
	span.SetAttributes(attribute.Int("search.page", page))

	start := time.Now()
	docs, err := c.search(ctx, query, page)

	result := "ok"
	if err != nil {
		kind := KindOf(err)
		result = kind.String()
		span.SetStatus(codes.Error, result)
		logging.WithRequestID(ctx, logging.FromContext(ctx)).Warn("article search failed",
			slog.String("kind", result),
			slog.Int("page", page),
			slog.Any("error", errors.Unwrap(err)))
	} else {
		span.SetAttributes(attribute.Int("search.docs", len(docs)))
	}
	metrics.RecordSearch(result, time.Since(start), len(docs))
	return docs, err
}

func (c *Client) search(ctx context.Context, query string, page int) ([]entity.Article, error) {
	if c.apiKey == "" {
		return nil, &SearchError{Kind: KindConfiguration, Message: MsgMissingAPIKey}
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, &SearchError{Kind: KindTransport, Message: MsgUnreachable, Err: err}
		}
	}

	docs, err := circuitbreaker.Do(c.circuitBreaker, func() ([]entity.Article, error) {
		return c.doSearch(ctx, query, page)
	})
	if err != nil {
		var se *SearchError
		if errors.As(err, &se) {
			return nil, se
		}
		return nil, &SearchError{Kind: KindTransport, Message: MsgUnavailable, Err: err}
	}
	return docs, nil
}

// doSearch performs one request without pacing or circuit breaking.
func (c *Client) doSearch(ctx context.Context, query string, page int) ([]entity.Article, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("page", strconv.Itoa(page))
	displayURL := c.baseURL + "?" + params.Encode()
	params.Set("api-key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, &SearchError{Kind: KindTransport, Message: MsgUnreachable, Err: redact(err, c.apiKey)}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &SearchError{Kind: KindTransport, Message: MsgUnreachable, Err: redact(err, c.apiKey)}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, &SearchError{Kind: KindRateLimit, Message: MsgRateLimited}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := statusMessage(resp.StatusCode, displayURL)
		return nil, &SearchError{Kind: KindTransport, Message: msg, Err: errors.New(msg)}
	}

	var body searchResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&body); err != nil {
		return nil, &SearchError{Kind: KindTransport, Message: MsgUnreadableResponse, Err: fmt.Errorf("decode search response: %w", err)}
	}

	if len(body.Fault) > 0 {
		var f fault
		_ = json.Unmarshal(body.Fault, &f)
		msg := f.FaultString
		if msg == "" {
			msg = MsgUnknownFault
		}
		return nil, &SearchError{Kind: KindFault, Message: msg}
	}

	if body.Response == nil || body.Response.Docs == nil {
		return []entity.Article{}, nil
	}
	return body.Response.Docs, nil
}

// statusMessage renders a non-2xx status the way HTTP client libraries
// usually report it, e.g. "404 Client Error: Not Found for url: ...".
func statusMessage(status int, displayURL string) string {
	class := "Server"
	if status < 500 {
		class = "Client"
	}
	return fmt.Sprintf("%d %s Error: %s for url: %s", status, class, http.StatusText(status), displayURL)
}

// redact removes the API key from transport errors, which embed the request URL.
func redact(err error, apiKey string) error {
	if apiKey == "" || !strings.Contains(err.Error(), apiKey) {
		return err
	}
	return errors.New(strings.ReplaceAll(err.Error(), apiKey, "****"))
}
