package repository

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"news-risk-analyzer/internal/entity"
	"news-risk-analyzer/pkg/logger"
)

func sampleReport(analyzed int) *entity.BatchReport {
	var article entity.Article
	_ = json.Unmarshal([]byte(`{"title": "Chip woes", "content": "Body", "author": "Wire Desk"}`), &article)

	return &entity.BatchReport{
		Company: json.RawMessage(`{"name": "Apple Inc.", "ticker": "AAPL"}`),
		AnalysisMetadata: entity.ReportMetadata{
			TotalArticles:      analyzed,
			TotalInputArticles: analyzed,
			DataSources:        []string{"a.json"},
			FailedSources:      []string{},
			GeneratedAt:        "2026-08-25T10:30:00Z",
		},
		Summary: entity.ReportSummary{
			TotalArticlesAnalyzed: analyzed,
			SentimentDistribution: map[string]int{
				entity.SentimentPositive: 0,
				entity.SentimentNeutral:  0,
				entity.SentimentNegative: analyzed,
			},
			RiskCategoryDistribution: map[string]int{"operational": analyzed},
			AverageRiskScore:         1.0,
			HighRiskArticlesCount:    analyzed,
			HighRiskThreshold:        0.7,
			TopHighRiskArticles:      []entity.TopRiskArticle{},
		},
		DetailedResults: []entity.AnalyzedArticle{
			{
				Article: article,
				Analysis: entity.RiskAnalysisResult{
					SentimentScore: -1.0,
					SentimentLabel: entity.SentimentNegative,
					RiskScore:      1.0,
					RiskCategory:   []string{"operational"},
					Reasoning:      "The tone is negative and involves operational concerns.",
					Summary:        "Body",
				},
				Meta: entity.AnalysisMeta{ArticleIndex: 1, SourceFile: "a.json", AnalyzedAt: "2026-08-25T10:30:00Z"},
			},
		},
	}
}

func TestReportRepositorySaveAndLatest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "risk_report.json")
	repo := NewReportRepository(path, logger.NewNop())

	report := sampleReport(1)
	require.NoError(t, repo.Save(context.Background(), report))

	loaded, err := repo.Latest(context.Background())
	require.NoError(t, err)

	assert.Equal(t, report.AnalysisMetadata, loaded.AnalysisMetadata)
	assert.Equal(t, report.Summary, loaded.Summary)
	assert.JSONEq(t, string(report.Company), string(loaded.Company))

	require.Len(t, loaded.DetailedResults, 1)
	result := loaded.DetailedResults[0]
	assert.Equal(t, "Chip woes", result.Article.Title)
	assert.Equal(t, report.DetailedResults[0].Meta, result.Meta)
	assert.Equal(t, report.DetailedResults[0].Analysis, result.Analysis)

	// Fields outside the known schema survive the round trip.
	raw, err := json.Marshal(result)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"author":"Wire Desk"`)
}

func TestReportRepositorySaveReplacesPrevious(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "risk_report.json")
	repo := NewReportRepository(path, logger.NewNop())

	require.NoError(t, repo.Save(context.Background(), sampleReport(1)))
	require.NoError(t, repo.Save(context.Background(), sampleReport(2)))

	loaded, err := repo.Latest(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, loaded.Summary.TotalArticlesAnalyzed)

	// The swap leaves no temp files behind.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.False(t, strings.HasPrefix(entries[0].Name(), ".report-"))
}

func TestReportRepositoryLatestMissing(t *testing.T) {
	repo := NewReportRepository(filepath.Join(t.TempDir(), "absent.json"), logger.NewNop())

	_, err := repo.Latest(context.Background())
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestReportRepositoryLatestCorrupt(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "risk_report.json", `{"summary":`)
	repo := NewReportRepository(path, logger.NewNop())

	_, err := repo.Latest(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode report")
}
