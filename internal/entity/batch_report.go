package entity

import (
	"encoding/json"
)

// ReportMetadata describes what went into a batch run.
type ReportMetadata struct {
	TotalArticles      int      `json:"total_articles"`
	TotalInputArticles int      `json:"total_input_articles"`
	SkippedArticles    int      `json:"skipped_articles"`
	FilteredArticles   int      `json:"filtered_articles"`
	FailedSources      []string `json:"failed_sources"`
	DataSources        []string `json:"data_sources"`
	GeneratedAt        string   `json:"generated_at"`
}

// TopRiskArticle is one entry of the ranked high-risk list.
type TopRiskArticle struct {
	Title        string   `json:"title"`
	RiskScore    float64  `json:"risk_score"`
	RiskCategory []string `json:"risk_category"`
	Sentiment    string   `json:"sentiment_label"`
	Source       string   `json:"source,omitempty"`
	ArticleIndex int      `json:"article_index"`
}

// ReportSummary aggregates the scored batch.
type ReportSummary struct {
	TotalArticlesAnalyzed    int              `json:"total_articles_analyzed"`
	SentimentDistribution    map[string]int   `json:"sentiment_distribution"`
	RiskCategoryDistribution map[string]int   `json:"risk_category_distribution"`
	AverageRiskScore         float64          `json:"average_risk_score"`
	HighRiskArticlesCount    int              `json:"high_risk_articles_count"`
	HighRiskThreshold        float64          `json:"high_risk_threshold"`
	TopHighRiskArticles      []TopRiskArticle `json:"top_high_risk_articles"`
}

// BatchReport is the single output document of a batch run.
type BatchReport struct {
	Company          json.RawMessage   `json:"company"`
	AnalysisMetadata ReportMetadata    `json:"analysis_metadata"`
	Summary          ReportSummary     `json:"summary"`
	DetailedResults  []AnalyzedArticle `json:"detailed_results"`
}
