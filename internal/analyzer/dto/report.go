package dto

import (
	"encoding/json"

	"news-risk-analyzer/internal/entity"
)

// ReportSummaryResponse is the DTO for the report summary endpoint.
type ReportSummaryResponse struct {
	Company     json.RawMessage      `json:"company" swaggertype:"object"`
	GeneratedAt string               `json:"generated_at"`
	Summary     entity.ReportSummary `json:"summary"`
}

// HighRiskAlertsResponse is the DTO for the high-risk alerts endpoint.
type HighRiskAlertsResponse struct {
	AlertCount       int                     `json:"alert_count"`
	ThresholdUsed    float64                 `json:"threshold_used"`
	HighRiskArticles []entity.TopRiskArticle `json:"high_risk_articles"`
}
