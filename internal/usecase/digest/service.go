// Package digest runs one search-and-summarize request: it fetches a page of
// articles and summarizes each one in order.
package digest

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"article-digest/internal/domain/entity"
	"article-digest/internal/observability/logging"
	"article-digest/internal/observability/metrics"
	"article-digest/internal/observability/tracing"
	"article-digest/internal/usecase/summarize"
)

// Searcher fetches one page of search results.
type Searcher interface {
	Search(ctx context.Context, query string, page int) ([]entity.Article, error)
}

// Summarizer produces the display text for one article's raw content.
type Summarizer interface {
	Summarize(ctx context.Context, raw string) summarize.Result
}

// Result is what the results page renders.
type Result struct {
	Query    string
	Page     int
	Articles []entity.SummarizedArticle
}

// Service orchestrates search and per-article summarization.
type Service struct {
	Searcher   Searcher
	Summarizer Summarizer
}

// NewService creates a digest Service.
func NewService(searcher Searcher, summarizer Summarizer) *Service {
	return &Service{Searcher: searcher, Summarizer: summarizer}
}

// Run searches for query and summarizes every returned article sequentially.
// A search failure is returned unchanged and no article is processed.
// Summarization problems never fail the run; each article carries its own
// outcome. Articles appear in the order the search returned them.
func (s *Service) Run(ctx context.Context, query string, page int) (*Result, error) {
	ctx, span := tracing.Tracer().Start(ctx, "digest.run")
	defer span.End()
	span.SetAttributes(attribute.Int("digest.page", page))

	logger := logging.WithRequestID(ctx, logging.FromContext(ctx))
	start := time.Now()

	docs, err := s.Searcher.Search(ctx, query, page)
	if err != nil {
		span.SetStatus(codes.Error, "search failed")
		metrics.RecordDigest(false)
		return nil, err
	}

	result := &Result{
		Query:    query,
		Page:     page,
		Articles: make([]entity.SummarizedArticle, 0, len(docs)),
	}
	for i, doc := range docs {
		result.Articles = append(result.Articles, s.summarizeArticle(ctx, i, doc))
	}

	metrics.RecordDigest(true)
	logger.Info("digest built",
		slog.Int("page", page),
		slog.Int("articles", len(result.Articles)),
		slog.Duration("duration", time.Since(start)))
	return result, nil
}

func (s *Service) summarizeArticle(ctx context.Context, index int, doc entity.Article) entity.SummarizedArticle {
	ctx, span := tracing.Tracer().Start(ctx, "digest.article")
	defer span.End()
	span.SetAttributes(attribute.Int("article.index", index))

	out := entity.SummarizedArticle{
		Title: doc.Title(),
		URL:   doc.WebURL,
	}

	content := doc.Content()
	if content == "" {
		out.Summary = entity.NoContentSummary
		out.Outcome = entity.OutcomePlaceholder
	} else {
		res := s.Summarizer.Summarize(ctx, content)
		out.Summary = res.Text
		out.Outcome = res.Outcome
		if res.Err != nil {
			span.RecordError(res.Err)
		}
	}

	span.SetAttributes(attribute.String("article.outcome", string(out.Outcome)))
	metrics.RecordArticleSummarized(string(out.Outcome))
	return out
}
