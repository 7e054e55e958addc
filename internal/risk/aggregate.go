package risk

import (
	"sort"
	"time"

	"news-risk-analyzer/internal/entity"
)

// Aggregation defaults.
const (
	DefaultHighRiskThreshold = 0.7
	DefaultTopHighRisk       = 10
)

// AggregateInput carries everything the report needs beyond the scored
// articles. Results must already be in input order.
type AggregateInput struct {
	Profile            *entity.CompanyProfile
	Results            []entity.AnalyzedArticle
	TotalInputArticles int
	SkippedArticles    int
	FilteredArticles   int
	FailedSources      []string
	DataSources        []string
	GeneratedAt        time.Time
}

// AggregateOptions tunes report aggregation. Zero values fall back to
// the defaults.
type AggregateOptions struct {
	HighRiskThreshold float64
	TopHighRisk       int
}

// BuildReport folds scored articles into the batch report document.
// Distributions start at zero for every sentiment label and every
// profile category, so an empty batch still yields a complete summary
// with an average risk score of 0.
func BuildReport(in AggregateInput, opts AggregateOptions) *entity.BatchReport {
	threshold := opts.HighRiskThreshold
	if threshold <= 0 {
		threshold = DefaultHighRiskThreshold
	}
	topN := opts.TopHighRisk
	if topN <= 0 {
		topN = DefaultTopHighRisk
	}

	sentimentCounts := map[string]int{
		entity.SentimentPositive: 0,
		entity.SentimentNeutral:  0,
		entity.SentimentNegative: 0,
	}
	categoryCounts := make(map[string]int)
	for _, category := range in.Profile.Categories() {
		categoryCounts[category.Name] = 0
	}

	scores := make([]float64, 0, len(in.Results))
	for _, result := range in.Results {
		analysis := result.Analysis
		if _, ok := sentimentCounts[analysis.SentimentLabel]; ok {
			sentimentCounts[analysis.SentimentLabel]++
		}
		for _, category := range analysis.RiskCategory {
			categoryCounts[category]++
		}
		scores = append(scores, analysis.RiskScore)
	}

	highRisk := HighRiskArticles(in.Results, threshold)
	top := highRisk
	if len(top) > topN {
		top = top[:topN]
	}

	results := in.Results
	if results == nil {
		results = []entity.AnalyzedArticle{}
	}

	return &entity.BatchReport{
		Company: in.Profile.CompanyBlock(),
		AnalysisMetadata: entity.ReportMetadata{
			TotalArticles:      len(in.Results),
			TotalInputArticles: in.TotalInputArticles,
			SkippedArticles:    in.SkippedArticles,
			FilteredArticles:   in.FilteredArticles,
			FailedSources:      emptyIfNil(in.FailedSources),
			DataSources:        emptyIfNil(in.DataSources),
			GeneratedAt:        in.GeneratedAt.UTC().Format(time.RFC3339),
		},
		Summary: entity.ReportSummary{
			TotalArticlesAnalyzed:    len(in.Results),
			SentimentDistribution:    sentimentCounts,
			RiskCategoryDistribution: categoryCounts,
			AverageRiskScore:         Round2(Mean(scores)),
			HighRiskArticlesCount:    len(highRisk),
			HighRiskThreshold:        threshold,
			TopHighRiskArticles:      top,
		},
		DetailedResults: results,
	}
}

// HighRiskArticles returns the results scoring at or above threshold,
// ranked by risk score descending with ties kept in input order.
func HighRiskArticles(results []entity.AnalyzedArticle, threshold float64) []entity.TopRiskArticle {
	alerts := []entity.TopRiskArticle{}
	for _, result := range results {
		if result.Analysis.RiskScore < threshold {
			continue
		}
		alerts = append(alerts, entity.TopRiskArticle{
			Title:        result.Article.Title,
			RiskScore:    result.Analysis.RiskScore,
			RiskCategory: result.Analysis.RiskCategory,
			Sentiment:    result.Analysis.SentimentLabel,
			Source:       result.Article.Source,
			ArticleIndex: result.Meta.ArticleIndex,
		})
	}
	sort.SliceStable(alerts, func(i, j int) bool {
		return alerts[i].RiskScore > alerts[j].RiskScore
	})
	return alerts
}

func emptyIfNil(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}
