package service

import (
	"context"
	"errors"
	"os"
	"time"

	"news-risk-analyzer/internal/analyzer/config"
	"news-risk-analyzer/internal/analyzer/dto"
	"news-risk-analyzer/internal/analyzer/repository"
	"news-risk-analyzer/internal/entity"
	"news-risk-analyzer/internal/risk"
	"news-risk-analyzer/pkg/logger"

	"github.com/patrickmn/go-cache"
)

// ErrNoReport indicates that no analysis run has produced a report yet.
var ErrNoReport = errors.New("no report has been generated yet")

const reportCacheKey = "latest_report"

// ReportService serves read access to the latest batch report.
type ReportService interface {
	GetReport(ctx context.Context) (*entity.BatchReport, error)
	GetSummary(ctx context.Context) (*dto.ReportSummaryResponse, error)
	GetHighRiskAlerts(ctx context.Context, threshold float64) (*dto.HighRiskAlertsResponse, error)
	InvalidateCache()
}

// NewReportService creates a new ReportService. Reads are served from a
// TTL cache over the report document so the API does not reparse the
// file on every request.
func NewReportService(cfg *config.Config, reportRepo repository.ReportRepository, log *logger.Logger) ReportService {
	ttl := cfg.Report.CacheTTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &reportService{
		cfg:        cfg,
		reportRepo: reportRepo,
		logger:     log,
		cache:      cache.New(ttl, 2*ttl),
	}
}

type reportService struct {
	cfg        *config.Config
	reportRepo repository.ReportRepository
	logger     *logger.Logger
	cache      *cache.Cache
}

// GetReport returns the latest report, from cache when fresh.
func (s *reportService) GetReport(ctx context.Context) (*entity.BatchReport, error) {
	if cached, found := s.cache.Get(reportCacheKey); found {
		return cached.(*entity.BatchReport), nil
	}

	report, err := s.reportRepo.Latest(ctx)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNoReport
		}
		return nil, err
	}

	s.cache.SetDefault(reportCacheKey, report)
	return report, nil
}

// GetSummary returns the summary block of the latest report.
func (s *reportService) GetSummary(ctx context.Context) (*dto.ReportSummaryResponse, error) {
	report, err := s.GetReport(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.ReportSummaryResponse{
		Company:     report.Company,
		GeneratedAt: report.AnalysisMetadata.GeneratedAt,
		Summary:     report.Summary,
	}, nil
}

// GetHighRiskAlerts recomputes the high-risk list from the latest
// report's detailed results. A non-positive threshold falls back to the
// configured one.
func (s *reportService) GetHighRiskAlerts(ctx context.Context, threshold float64) (*dto.HighRiskAlertsResponse, error) {
	report, err := s.GetReport(ctx)
	if err != nil {
		return nil, err
	}

	if threshold <= 0 {
		threshold = s.cfg.Analyzer.HighRiskThreshold
	}
	if threshold <= 0 {
		threshold = risk.DefaultHighRiskThreshold
	}

	alerts := risk.HighRiskArticles(report.DetailedResults, threshold)
	return &dto.HighRiskAlertsResponse{
		AlertCount:       len(alerts),
		ThresholdUsed:    threshold,
		HighRiskArticles: alerts,
	}, nil
}

// InvalidateCache drops the cached report so the next read sees the
// freshly written document.
func (s *reportService) InvalidateCache() {
	s.cache.Delete(reportCacheKey)
}
