// Package fixtures provides reusable search documents for tests: generated
// articles of a chosen length and JSON search responses built from them.
package fixtures

import (
	"encoding/json"
	"strings"

	"article-digest/internal/domain/entity"
)

// fillerWords is cycled to pad generated content. Only characters kept by
// the text cleaner are used, so cleaning leaves generated text unchanged.
var fillerWords = strings.Fields(
	"scientists said the rising temperatures were reshaping coastlines farms and cities " +
		"while officials weighed new rules for emissions, water and energy use across the region.")

// ArticleOptions configures a generated article.
type ArticleOptions struct {
	// Title becomes headline.main. Empty leaves the headline absent.
	Title string

	// URL becomes web_url. Empty derives one from Title.
	URL string

	// Words is the total word count of the content, including Seed.
	Words int

	// Seed is the first word of the content, handy for telling articles apart.
	Seed string

	// Markup wraps the content in HTML tags the cleaner must strip.
	Markup bool
}

// GenerateArticle builds a search document whose Content has opts.Words words.
// The text is split over abstract and lead_paragraph.
//
// Example:
//
//	a := GenerateArticle(ArticleOptions{Title: "Heat Wave", Words: 80, Seed: "Heat"})
func GenerateArticle(opts ArticleOptions) entity.Article {
	words := make([]string, 0, opts.Words)
	if opts.Seed != "" && opts.Words > 0 {
		words = append(words, opts.Seed)
	}
	for i := 0; len(words) < opts.Words; i++ {
		words = append(words, fillerWords[i%len(fillerWords)])
	}

	half := len(words) / 2
	abstract := strings.Join(words[:half], " ")
	lead := strings.Join(words[half:], " ")
	if half == 0 {
		abstract, lead = lead, ""
	}
	if opts.Markup {
		abstract = "<p>" + abstract + "</p>"
		if lead != "" {
			lead = "<b>" + lead + "</b>"
		}
	}

	a := entity.Article{
		Abstract:      abstract,
		LeadParagraph: lead,
		WebURL:        opts.URL,
	}
	if opts.Title != "" {
		title := opts.Title
		a.Headline = &entity.Headline{Main: &title}
		if a.WebURL == "" {
			a.WebURL = "https://www.nytimes.com/" + strings.ToLower(strings.ReplaceAll(title, " ", "-")) + ".html"
		}
	}
	return a
}

// EmptyArticle builds a document with a headline and URL but no content fields.
func EmptyArticle(title, url string) entity.Article {
	return entity.Article{Headline: &entity.Headline{Main: &title}, WebURL: url}
}

// SearchResponse renders docs as an Article Search JSON response body.
func SearchResponse(docs ...entity.Article) string {
	if docs == nil {
		docs = []entity.Article{}
	}
	body := map[string]any{
		"status":    "OK",
		"copyright": "Copyright (c) The New York Times Company. All Rights Reserved.",
		"response": map[string]any{
			"docs": docs,
			"meta": map[string]int{"hits": len(docs), "offset": 0},
		},
	}
	raw, err := json.Marshal(body)
	if err != nil {
		panic(err)
	}
	return string(raw)
}

// FaultResponse renders an Article Search fault document.
func FaultResponse(faultString string) string {
	raw, err := json.Marshal(map[string]any{
		"fault": map[string]any{
			"faultstring": faultString,
			"detail":      map[string]string{"errorcode": "oauth.v2.InvalidApiKey"},
		},
	})
	if err != nil {
		panic(err)
	}
	return string(raw)
}
