// Package entity defines the domain types that flow through a digest request:
// the article records returned by the search service and the summarized
// entries handed to rendering, together with their validation rules.
package entity

import "strings"

const (
	// NoTitle is shown when a search record carries no headline.
	NoTitle = "No Title"

	// NoContentSummary is the summary given to articles without any
	// extractable text. Such articles are never sent to the model.
	NoContentSummary = "No content available to summarize."
)

// Headline mirrors the headline object of a search record.
// Main is a pointer so that an absent key can be told apart from an empty one.
type Headline struct {
	Main *string `json:"main"`
}

// Article is one record from the article search response. Every field is
// optional upstream; absent fields decode to their zero value.
type Article struct {
	Abstract      string    `json:"abstract"`
	Snippet       string    `json:"snippet"`
	LeadParagraph string    `json:"lead_paragraph"`
	Headline      *Headline `json:"headline"`
	WebURL        string    `json:"web_url"`
}

// Title returns headline.main, or NoTitle when the headline or its main
// field is absent. A present but empty headline is returned as-is.
func (a Article) Title() string {
	if a.Headline == nil || a.Headline.Main == nil {
		return NoTitle
	}
	return *a.Headline.Main
}

// Content joins the abstract, snippet and lead paragraph, in that order,
// with single spaces. Empty parts are skipped; the result is "" when all
// three are empty.
func (a Article) Content() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{a.Abstract, a.Snippet, a.LeadParagraph} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// SummaryOutcome records how an article's summary text was produced.
type SummaryOutcome string

const (
	// OutcomeSummarized means the model produced the summary.
	OutcomeSummarized SummaryOutcome = "summarized"
	// OutcomePassthrough means the cleaned text was too short to summarize and is shown as-is.
	OutcomePassthrough SummaryOutcome = "passthrough"
	// OutcomeFallback means the model call failed and the cleaned text is shown instead.
	OutcomeFallback SummaryOutcome = "fallback"
	// OutcomePlaceholder means the article had no content at all.
	OutcomePlaceholder SummaryOutcome = "placeholder"
)

// SummarizedArticle is one rendered result row.
type SummarizedArticle struct {
	Title   string
	URL     string
	Summary string
	Outcome SummaryOutcome
}
