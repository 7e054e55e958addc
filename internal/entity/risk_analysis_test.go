package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzedArticleMarshalMergesAnalysis(t *testing.T) {
	raw := `{"title":"Merged","content":"Body text","rank":5,"risk_analysis":{"stale":true}}`

	var article Article
	require.NoError(t, json.Unmarshal([]byte(raw), &article))

	analyzedArticle := AnalyzedArticle{
		Article: article,
		Analysis: RiskAnalysisResult{
			Summary:         "Body text.",
			SentimentLabel:  SentimentNeutral,
			RiskCategory:    []string{},
			MatchedKeywords: []string{},
			Reasoning:       "The tone is neutral.",
		},
		Meta: AnalysisMeta{
			ArticleIndex: 1,
			SourceFile:   "feed.json",
			AnalyzedAt:   "2026-08-25T10:30:00Z",
		},
	}

	out, err := json.Marshal(analyzedArticle)
	require.NoError(t, err)

	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(out, &decoded))

	assert.Contains(t, decoded, "title")
	assert.Contains(t, decoded, "rank")

	var analysis map[string]interface{}
	require.NoError(t, json.Unmarshal(decoded["risk_analysis"], &analysis))
	assert.Equal(t, "Body text.", analysis["summary"])
	assert.NotContains(t, analysis, "stale")

	var meta AnalysisMeta
	require.NoError(t, json.Unmarshal(decoded["_analysis_metadata"], &meta))
	assert.Equal(t, 1, meta.ArticleIndex)
	assert.Equal(t, "feed.json", meta.SourceFile)
	assert.Equal(t, "2026-08-25T10:30:00Z", meta.AnalyzedAt)
}

func TestAnalyzedArticleUnmarshalRoundTrip(t *testing.T) {
	raw := `{"title":"Round trip","content":"Body text","rank":2}`

	var article Article
	require.NoError(t, json.Unmarshal([]byte(raw), &article))

	original := AnalyzedArticle{
		Article: article,
		Analysis: RiskAnalysisResult{
			Summary:         "Body text.",
			SentimentLabel:  SentimentNegative,
			SentimentScore:  -0.5,
			RiskCategory:    []string{"operational"},
			RiskScore:       0.8,
			MatchedKeywords: []string{"strike"},
			Reasoning:       "The tone is negative.",
		},
		Meta: AnalysisMeta{ArticleIndex: 3, SourceFile: "feed.json", AnalyzedAt: "2026-08-25T10:30:00Z"},
	}

	out, err := json.Marshal(original)
	require.NoError(t, err)

	var restored AnalyzedArticle
	require.NoError(t, json.Unmarshal(out, &restored))

	assert.Equal(t, original.Analysis, restored.Analysis)
	assert.Equal(t, original.Meta, restored.Meta)
	assert.Equal(t, "Round trip", restored.Article.Title)
	assert.Equal(t, "Body text", restored.Article.Content)

	reout, err := json.Marshal(restored)
	require.NoError(t, err)
	assert.JSONEq(t, string(out), string(reout))
}

func TestRiskAnalysisResultFieldNames(t *testing.T) {
	out, err := json.Marshal(RiskAnalysisResult{
		Summary:         "s",
		SentimentLabel:  SentimentNegative,
		SentimentScore:  -0.5,
		RiskCategory:    []string{"operational"},
		RiskScore:       0.8,
		MatchedKeywords: []string{"strike"},
		Reasoning:       "r",
	})
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(out, &decoded))
	for _, key := range []string{
		"summary", "sentiment_label", "sentiment_score",
		"risk_category", "risk_score", "matched_keywords", "reasoning",
	} {
		assert.Contains(t, decoded, key)
	}
}
