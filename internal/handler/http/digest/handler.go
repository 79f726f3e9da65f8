// Package digest serves the HTML search form and the summarized results page.
package digest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"article-digest/internal/domain/entity"
	"article-digest/internal/handler/http/respond"
	"article-digest/internal/infra/nytimes"
	"article-digest/internal/observability/logging"
	digestUC "article-digest/internal/usecase/digest"
)

// Runner executes one search-and-summarize request.
type Runner interface {
	Run(ctx context.Context, query string, page int) (*digestUC.Result, error)
}

// IndexHandler renders the search form.
type IndexHandler struct {
	Pages *Pages
}

// ServeHTTP handles GET /.
func (h IndexHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.Pages.Render(w, r, http.StatusOK, PageIndex, IndexData{})
}

// SummarizeHandler runs a search and renders the summaries.
type SummarizeHandler struct {
	Svc   Runner
	Pages *Pages
}

// ServeHTTP handles POST /summarize with form fields query and page.
// A failed search renders the form again with the search error; a malformed
// page value renders the form with status 400.
func (h SummarizeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.Pages.Render(w, r, http.StatusBadRequest, PageIndex, IndexData{Error: "invalid form submission"})
		return
	}

	query := r.PostFormValue("query")
	page, err := entity.ParsePage(r.PostFormValue("page"))
	if err != nil {
		h.Pages.Render(w, r, http.StatusBadRequest, PageIndex, IndexData{Query: query, Error: entity.PageMessage})
		return
	}

	res, err := h.Svc.Run(r.Context(), query, page)
	if err != nil {
		h.Pages.Render(w, r, http.StatusOK, PageIndex, IndexData{Query: query, Error: searchMessage(r, err)})
		return
	}

	h.Pages.Render(w, r, http.StatusOK, PageResults, ResultsData{
		Query:    res.Query,
		Page:     res.Page,
		Articles: res.Articles,
	})
}

// searchMessage returns the text shown above the search form.
func searchMessage(r *http.Request, err error) string {
	var se *nytimes.SearchError
	if errors.As(err, &se) {
		logging.WithRequestID(r.Context(), logging.FromContext(r.Context())).
			Warn("search failed",
				slog.String("kind", se.Kind.String()),
				slog.String("error", respond.SanitizeError(err)))
		return se.Message
	}
	_, msg := respond.Message(http.StatusInternalServerError, err)
	if msg == "" {
		return "Internal server error."
	}
	return strings.ToUpper(msg[:1]) + msg[1:] + "."
}
