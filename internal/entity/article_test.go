package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArticleUnmarshalAliases(t *testing.T) {
	raw := `{
		"title": "Chip woes",
		"content_text": "Body here",
		"source": "feed.json",
		"published": "2026-08-20",
		"link": "https://example.com/a"
	}`

	var article Article
	require.NoError(t, json.Unmarshal([]byte(raw), &article))

	assert.Equal(t, "Chip woes", article.Title)
	assert.Equal(t, "Body here", article.Content)
	assert.Equal(t, "feed.json", article.Source)
	assert.Equal(t, "2026-08-20", article.PublishedTime)
	assert.Equal(t, "https://example.com/a", article.URL)
}

func TestArticleContentAliasPreference(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "content wins", raw: `{"content":"primary","article_text":"fallback"}`, want: "primary"},
		{name: "content_text before article_text", raw: `{"content_text":"second","article_text":"third"}`, want: "second"},
		{name: "article_text alone", raw: `{"article_text":"third"}`, want: "third"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var article Article
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &article))
			assert.Equal(t, tt.want, article.Content)
		})
	}
}

func TestArticleRoundTripKeepsUnknownFields(t *testing.T) {
	raw := `{"title":"Kept","article_text":"Body","collected_by":"crawler-7","rank":3}`

	var article Article
	require.NoError(t, json.Unmarshal([]byte(raw), &article))

	out, err := json.Marshal(article)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(out, &decoded))

	assert.Equal(t, "Kept", decoded["title"])
	assert.Equal(t, "crawler-7", decoded["collected_by"])
	assert.Equal(t, float64(3), decoded["rank"])
	assert.NotContains(t, decoded, "article_text")
}

func TestArticleMarshalFromStruct(t *testing.T) {
	article := Article{Title: "Plain", Content: "Some body"}

	out, err := json.Marshal(article)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, map[string]interface{}{"title": "Plain", "content": "Some body"}, decoded)
}
