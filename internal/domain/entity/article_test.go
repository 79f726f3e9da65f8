package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestArticle_Content(t *testing.T) {
	tests := []struct {
		name    string
		article Article
		want    string
	}{
		{
			name:    "all fields in order",
			article: Article{Abstract: "a", Snippet: "b", LeadParagraph: "c"},
			want:    "a b c",
		},
		{
			name:    "only snippet",
			article: Article{Snippet: "x"},
			want:    "x",
		},
		{
			name:    "missing middle field",
			article: Article{Abstract: "first", LeadParagraph: "last"},
			want:    "first last",
		},
		{
			name:    "nothing to extract",
			article: Article{},
			want:    "",
		},
		{
			name:    "text is not trimmed",
			article: Article{Abstract: " padded ", Snippet: "s"},
			want:    " padded  s",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.article.Content())
		})
	}
}

func TestArticle_Title(t *testing.T) {
	tests := []struct {
		name    string
		article Article
		want    string
	}{
		{name: "headline present", article: Article{Headline: &Headline{Main: strPtr("Heat Wave")}}, want: "Heat Wave"},
		{name: "no headline", article: Article{}, want: NoTitle},
		{name: "headline without main", article: Article{Headline: &Headline{}}, want: NoTitle},
		{name: "empty main is kept", article: Article{Headline: &Headline{Main: strPtr("")}}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.article.Title())
		})
	}
}

func TestArticle_DecodeSearchDoc(t *testing.T) {
	raw := `{
		"abstract": "Scientists warn.",
		"snippet": "",
		"headline": {"main": "Climate Report", "kicker": null},
		"web_url": "https://www.nytimes.com/2024/01/01/climate/report.html",
		"multimedia": []
	}`

	var a Article
	require.NoError(t, json.Unmarshal([]byte(raw), &a))

	assert.Equal(t, "Climate Report", a.Title())
	assert.Equal(t, "Scientists warn.", a.Content())
	assert.Equal(t, "https://www.nytimes.com/2024/01/01/climate/report.html", a.WebURL)

	var missing Article
	require.NoError(t, json.Unmarshal([]byte(`{"headline": null}`), &missing))
	assert.Equal(t, NoTitle, missing.Title())
	assert.Equal(t, "", missing.WebURL)
}
