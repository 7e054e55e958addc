package risk

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"news-risk-analyzer/internal/entity"
)

func analyzed(title, source string, index int, label string, score float64, categories ...string) entity.AnalyzedArticle {
	if categories == nil {
		categories = []string{}
	}
	return entity.AnalyzedArticle{
		Article: entity.Article{Title: title, Source: source},
		Analysis: entity.RiskAnalysisResult{
			SentimentLabel: label,
			RiskScore:      score,
			RiskCategory:   categories,
		},
		Meta: entity.AnalysisMeta{ArticleIndex: index},
	}
}

func TestBuildReportEmptyBatch(t *testing.T) {
	report := BuildReport(AggregateInput{
		Profile:     testProfile(t),
		GeneratedAt: time.Date(2026, 8, 25, 10, 30, 0, 0, time.UTC),
	}, AggregateOptions{})

	assert.Equal(t, 0, report.Summary.TotalArticlesAnalyzed)
	assert.Equal(t, 0.0, report.Summary.AverageRiskScore)
	assert.Equal(t, map[string]int{
		entity.SentimentPositive: 0,
		entity.SentimentNeutral:  0,
		entity.SentimentNegative: 0,
	}, report.Summary.SentimentDistribution)
	assert.Equal(t, map[string]int{
		"financial":   0,
		"operational": 0,
		"competitive": 0,
		"regulatory":  0,
		"sensitive":   0,
	}, report.Summary.RiskCategoryDistribution)
	assert.Equal(t, 0, report.Summary.HighRiskArticlesCount)
	assert.Equal(t, DefaultHighRiskThreshold, report.Summary.HighRiskThreshold)

	assert.NotNil(t, report.Summary.TopHighRiskArticles)
	assert.Empty(t, report.Summary.TopHighRiskArticles)
	assert.NotNil(t, report.DetailedResults)
	assert.Empty(t, report.DetailedResults)

	assert.Equal(t, 0, report.AnalysisMetadata.TotalArticles)
	assert.Equal(t, "2026-08-25T10:30:00Z", report.AnalysisMetadata.GeneratedAt)
	assert.NotNil(t, report.AnalysisMetadata.DataSources)
	assert.NotNil(t, report.AnalysisMetadata.FailedSources)
}

func TestBuildReportDistributions(t *testing.T) {
	results := []entity.AnalyzedArticle{
		analyzed("Supply crunch deepens", "apple_news.json", 1, entity.SentimentNegative, 0.9, "operational", "regulatory"),
		analyzed("Quiet quarter", "apple_news.json", 2, entity.SentimentPositive, 0.15),
		analyzed("Margin pressure builds", "apple_news.json", 3, entity.SentimentNeutral, 0.7, "financial"),
		analyzed("Factory strike spreads", "tech_feed.json", 1, entity.SentimentNegative, 0.85, "operational"),
	}

	report := BuildReport(AggregateInput{
		Profile:            testProfile(t),
		Results:            results,
		TotalInputArticles: 6,
		SkippedArticles:    1,
		FilteredArticles:   1,
		FailedSources:      []string{"bad_feed.json"},
		DataSources:        []string{"apple_news.json", "tech_feed.json"},
		GeneratedAt:        time.Date(2026, 8, 25, 10, 30, 0, 0, time.UTC),
	}, AggregateOptions{})

	assert.Equal(t, 4, report.Summary.TotalArticlesAnalyzed)
	assert.Equal(t, map[string]int{
		entity.SentimentPositive: 1,
		entity.SentimentNeutral:  1,
		entity.SentimentNegative: 2,
	}, report.Summary.SentimentDistribution)
	assert.Equal(t, map[string]int{
		"financial":   1,
		"operational": 2,
		"competitive": 0,
		"regulatory":  1,
		"sensitive":   0,
	}, report.Summary.RiskCategoryDistribution)
	// (0.9 + 0.15 + 0.7 + 0.85) / 4
	assert.Equal(t, 0.65, report.Summary.AverageRiskScore)

	// 0.7 sits exactly on the threshold and still counts.
	assert.Equal(t, 3, report.Summary.HighRiskArticlesCount)
	require.Len(t, report.Summary.TopHighRiskArticles, 3)
	assert.Equal(t, "Supply crunch deepens", report.Summary.TopHighRiskArticles[0].Title)
	assert.Equal(t, "Factory strike spreads", report.Summary.TopHighRiskArticles[1].Title)
	assert.Equal(t, "Margin pressure builds", report.Summary.TopHighRiskArticles[2].Title)

	top := report.Summary.TopHighRiskArticles[0]
	assert.Equal(t, 0.9, top.RiskScore)
	assert.Equal(t, []string{"operational", "regulatory"}, top.RiskCategory)
	assert.Equal(t, entity.SentimentNegative, top.Sentiment)
	assert.Equal(t, "apple_news.json", top.Source)
	assert.Equal(t, 1, top.ArticleIndex)

	assert.Equal(t, 4, report.AnalysisMetadata.TotalArticles)
	assert.Equal(t, 6, report.AnalysisMetadata.TotalInputArticles)
	assert.Equal(t, 1, report.AnalysisMetadata.SkippedArticles)
	assert.Equal(t, 1, report.AnalysisMetadata.FilteredArticles)
	assert.Equal(t, []string{"bad_feed.json"}, report.AnalysisMetadata.FailedSources)
	assert.Equal(t, []string{"apple_news.json", "tech_feed.json"}, report.AnalysisMetadata.DataSources)
	assert.Len(t, report.DetailedResults, 4)
}

func TestBuildReportUnknownSentimentLabelIgnored(t *testing.T) {
	report := BuildReport(AggregateInput{
		Profile: testProfile(t),
		Results: []entity.AnalyzedArticle{
			analyzed("Odd label", "feed.json", 1, "mixed", 0.1),
			analyzed("Plain read", "feed.json", 2, entity.SentimentNeutral, 0.2),
		},
		GeneratedAt: time.Now(),
	}, AggregateOptions{})

	assert.Equal(t, map[string]int{
		entity.SentimentPositive: 0,
		entity.SentimentNeutral:  1,
		entity.SentimentNegative: 0,
	}, report.Summary.SentimentDistribution)
}

func TestBuildReportTopRankingStableOnTies(t *testing.T) {
	var results []entity.AnalyzedArticle
	for i := 0; i < 12; i++ {
		score := 0.8
		if i == 7 {
			score = 0.95
		}
		results = append(results, analyzed(fmt.Sprintf("story-%02d", i), "feed.json", i+1, entity.SentimentNegative, score, "operational"))
	}

	report := BuildReport(AggregateInput{
		Profile:     testProfile(t),
		Results:     results,
		GeneratedAt: time.Now(),
	}, AggregateOptions{})

	assert.Equal(t, 12, report.Summary.HighRiskArticlesCount)
	require.Len(t, report.Summary.TopHighRiskArticles, DefaultTopHighRisk)

	// The lone 0.95 leads; the 0.8 ties keep their input order behind it.
	assert.Equal(t, "story-07", report.Summary.TopHighRiskArticles[0].Title)
	assert.Equal(t, "story-00", report.Summary.TopHighRiskArticles[1].Title)
	assert.Equal(t, "story-01", report.Summary.TopHighRiskArticles[2].Title)
	assert.Equal(t, "story-09", report.Summary.TopHighRiskArticles[9].Title)
}

func TestBuildReportCustomOptions(t *testing.T) {
	results := []entity.AnalyzedArticle{
		analyzed("one", "feed.json", 1, entity.SentimentNegative, 0.55, "operational"),
		analyzed("two", "feed.json", 2, entity.SentimentNegative, 0.65, "operational"),
		analyzed("three", "feed.json", 3, entity.SentimentNeutral, 0.45),
	}

	report := BuildReport(AggregateInput{
		Profile:     testProfile(t),
		Results:     results,
		GeneratedAt: time.Now(),
	}, AggregateOptions{HighRiskThreshold: 0.5, TopHighRisk: 1})

	assert.Equal(t, 0.5, report.Summary.HighRiskThreshold)
	assert.Equal(t, 2, report.Summary.HighRiskArticlesCount)
	require.Len(t, report.Summary.TopHighRiskArticles, 1)
	assert.Equal(t, "two", report.Summary.TopHighRiskArticles[0].Title)
}

func TestHighRiskArticlesThresholdInclusive(t *testing.T) {
	results := []entity.AnalyzedArticle{
		analyzed("under", "feed.json", 1, entity.SentimentNeutral, 0.69),
		analyzed("exact", "feed.json", 2, entity.SentimentNegative, 0.7, "operational"),
		analyzed("over", "feed.json", 3, entity.SentimentNegative, 0.71, "operational"),
	}

	alerts := HighRiskArticles(results, DefaultHighRiskThreshold)
	require.Len(t, alerts, 2)
	assert.Equal(t, "over", alerts[0].Title)
	assert.Equal(t, "exact", alerts[1].Title)
}
