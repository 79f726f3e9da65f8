package digest

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"article-digest/internal/domain/entity"
	"article-digest/internal/observability/logging"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page names accepted by Pages.Render.
const (
	PageIndex   = "index"
	PageResults = "results"
)

// IndexData is rendered by the search form page.
type IndexData struct {
	Query string
	Error string
}

// ResultsData is rendered by the results page.
type ResultsData struct {
	Query    string
	Page     int
	Articles []entity.SummarizedArticle
}

// Pages holds the parsed page templates. Each page is parsed together with
// the shared layout so that block definitions do not collide.
type Pages struct {
	pages map[string]*template.Template
}

var funcs = template.FuncMap{
	"add": func(a, b int) int { return a + b },
	"sub": func(a, b int) int { return a - b },
}

// ParsePages parses the embedded templates.
func ParsePages() (*Pages, error) {
	p := &Pages{pages: make(map[string]*template.Template, 2)}
	for _, name := range []string{PageIndex, PageResults} {
		t, err := template.New(name).Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", name, err)
		}
		p.pages[name] = t
	}
	return p, nil
}

// MustParsePages is ParsePages for package initialization and tests.
func MustParsePages() *Pages {
	p, err := ParsePages()
	if err != nil {
		panic(err)
	}
	return p
}

// Render executes a page into a buffer and writes it with status. A template
// failure produces a 500 instead of a partial page.
func (p *Pages) Render(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	t, ok := p.pages[name]
	if !ok {
		p.fail(w, r, fmt.Errorf("unknown page %q", name))
		return
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		p.fail(w, r, fmt.Errorf("render %s: %w", name, err))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (p *Pages) fail(w http.ResponseWriter, r *http.Request, err error) {
	logging.WithRequestID(r.Context(), logging.FromContext(r.Context())).
		Error("page rendering failed", slog.Any("error", err))
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}
