package entity

import (
	"encoding/json"
)

// Sentiment labels assigned by the analyzer.
const (
	SentimentPositive = "positive"
	SentimentNeutral  = "neutral"
	SentimentNegative = "negative"
)

// RiskAnalysisResult is the scoring outcome for a single article.
type RiskAnalysisResult struct {
	Summary         string   `json:"summary"`
	SentimentLabel  string   `json:"sentiment_label"`
	SentimentScore  float64  `json:"sentiment_score"`
	RiskCategory    []string `json:"risk_category"`
	RiskScore       float64  `json:"risk_score"`
	MatchedKeywords []string `json:"matched_keywords"`
	Reasoning       string   `json:"reasoning"`
}

// AnalysisMeta records an article's provenance inside a batch run.
type AnalysisMeta struct {
	ArticleIndex int    `json:"article_index"`
	SourceFile   string `json:"source_file"`
	AnalyzedAt   string `json:"analyzed_at"`
}

// AnalyzedArticle pairs an article with its risk analysis for the report.
// Position is the article's index across the whole input batch and is
// used to keep output ordering stable; it is not serialized.
type AnalyzedArticle struct {
	Article  Article
	Analysis RiskAnalysisResult
	Meta     AnalysisMeta
	Position int
}

// MarshalJSON merges the article's original fields with the risk_analysis
// and _analysis_metadata objects. An input field named risk_analysis is
// replaced; everything else passes through.
func (a AnalyzedArticle) MarshalJSON() ([]byte, error) {
	fields := a.Article.OutputFields()

	analysisRaw, err := json.Marshal(a.Analysis)
	if err != nil {
		return nil, err
	}
	fields["risk_analysis"] = analysisRaw

	metaRaw, err := json.Marshal(a.Meta)
	if err != nil {
		return nil, err
	}
	fields["_analysis_metadata"] = metaRaw

	return json.Marshal(fields)
}

// UnmarshalJSON restores a merged result entry: risk_analysis and
// _analysis_metadata are split back out, the remaining fields decode as
// the article.
func (a *AnalyzedArticle) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	if raw, ok := fields["risk_analysis"]; ok {
		if err := json.Unmarshal(raw, &a.Analysis); err != nil {
			return err
		}
		delete(fields, "risk_analysis")
	}
	if raw, ok := fields["_analysis_metadata"]; ok {
		if err := json.Unmarshal(raw, &a.Meta); err != nil {
			return err
		}
		delete(fields, "_analysis_metadata")
	}

	articleRaw, err := json.Marshal(fields)
	if err != nil {
		return err
	}
	return json.Unmarshal(articleRaw, &a.Article)
}
