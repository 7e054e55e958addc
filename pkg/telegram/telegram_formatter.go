package telegram

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"news-risk-analyzer/internal/entity"
	"news-risk-analyzer/pkg/utils"
)

// FormatBatchReportForTelegram formats a completed analysis run into a
// Markdown summary message.
func FormatBatchReportForTelegram(report *entity.BatchReport) string {
	var builder strings.Builder

	builder.WriteString("--- 📊 *News Risk Analysis Report* ---\n\n")

	var company entity.CompanyInfo
	if err := json.Unmarshal(report.Company, &company); err == nil && company.Name != "" {
		builder.WriteString(fmt.Sprintf("🏢 *Company:* %s\n", company.Name))
	}

	meta := report.AnalysisMetadata
	summary := report.Summary

	builder.WriteString(fmt.Sprintf("📰 *Articles Analyzed:* %d of %d\n", summary.TotalArticlesAnalyzed, meta.TotalInputArticles))
	if meta.SkippedArticles > 0 || meta.FilteredArticles > 0 {
		builder.WriteString(fmt.Sprintf("🚫 *Skipped:* %d  *Filtered:* %d\n", meta.SkippedArticles, meta.FilteredArticles))
	}

	dist := summary.SentimentDistribution
	builder.WriteString(fmt.Sprintf("😊 %d  😐 %d  😟 %d\n",
		dist[entity.SentimentPositive], dist[entity.SentimentNeutral], dist[entity.SentimentNegative]))

	builder.WriteString(fmt.Sprintf("%s *Average Risk:* %.2f\n", riskIcon(summary.AverageRiskScore), summary.AverageRiskScore))
	builder.WriteString(fmt.Sprintf("🔥 *High Risk Articles:* %d (threshold %.2f)\n", summary.HighRiskArticlesCount, summary.HighRiskThreshold))

	if len(meta.FailedSources) > 0 {
		builder.WriteString(fmt.Sprintf("⚠️ *Failed Sources:* %s\n", strings.Join(meta.FailedSources, ", ")))
	}

	builder.WriteString(fmt.Sprintf("\n📅 _Generated at: %s_\n", meta.GeneratedAt))

	return builder.String()
}

// FormatHighRiskAlertsForTelegram formats the ranked high-risk articles
// into Markdown messages, splitting so no message exceeds Telegram's
// length limit.
func FormatHighRiskAlertsForTelegram(alerts []entity.TopRiskArticle, threshold float64) []string {
	if len(alerts) == 0 {
		return []string{"No high-risk articles in the latest run."}
	}

	const maxLen = 4090
	var messages []string
	var currentMessage strings.Builder
	part := 1

	// Helper function to start a new message part with the correct header
	startNewPart := func() {
		currentMessage.Reset()
		if part == 1 {
			currentMessage.WriteString(fmt.Sprintf("🚨 *High Risk Alerts* (threshold %.2f) 🚨\n\n", threshold))
		} else {
			currentMessage.WriteString(fmt.Sprintf("---*High Risk Alerts Part %d*---\n\n", part))
		}
	}

	startNewPart()

	for i, alert := range alerts {
		var entryBuilder strings.Builder
		entryBuilder.WriteString(fmt.Sprintf("%d. %s *%s*\n", i+1, riskIcon(alert.RiskScore), alert.Title))
		entryBuilder.WriteString(fmt.Sprintf("🎯 *Risk Score:* %.2f\n", alert.RiskScore))
		entryBuilder.WriteString(fmt.Sprintf("%s *Sentiment:* %s\n", sentimentIcon(alert.Sentiment), alert.Sentiment))
		if len(alert.RiskCategory) > 0 {
			entryBuilder.WriteString(fmt.Sprintf("🏷 *Categories:* %s\n", strings.Join(alert.RiskCategory, ", ")))
		}
		if alert.Source != "" {
			entryBuilder.WriteString(fmt.Sprintf("📄 *Source:* %s (#%d)\n", alert.Source, alert.ArticleIndex))
		}
		entryBuilder.WriteString("\n")

		entryString := entryBuilder.String()

		// Check if adding the new entry exceeds the max length. We assume a single entry doesn't exceed the limit.
		if currentMessage.Len()+len(entryString) > maxLen {
			messages = append(messages, currentMessage.String())
			part++
			startNewPart()
		}

		currentMessage.WriteString(entryString)
	}

	messages = append(messages, currentMessage.String())

	return messages
}

// FormatRunFailureMessage formats a failed analysis run for the alert channel.
func FormatRunFailureMessage(t time.Time, runID string, err error) string {
	return fmt.Sprintf(`📛 [RUN FAILED]
%s
🆔 %s
⚠️ %s
`, utils.PrettyDate(t), runID, err.Error())
}

func riskIcon(score float64) string {
	switch {
	case score >= 0.7:
		return "🔴"
	case score >= 0.4:
		return "🟡"
	default:
		return "🟢"
	}
}

func sentimentIcon(label string) string {
	switch strings.ToLower(label) {
	case entity.SentimentPositive:
		return "😊"
	case entity.SentimentNegative:
		return "😟"
	default:
		return "😐"
	}
}
