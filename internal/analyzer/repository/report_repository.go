package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"news-risk-analyzer/internal/entity"
	"news-risk-analyzer/pkg/logger"
)

// ReportRepository persists and reads back the batch report document.
type ReportRepository interface {
	Save(ctx context.Context, report *entity.BatchReport) error
	Latest(ctx context.Context) (*entity.BatchReport, error)
}

// NewReportRepository creates a new ReportRepository writing to path.
func NewReportRepository(path string, log *logger.Logger) ReportRepository {
	return &reportRepository{path: path, logger: log}
}

type reportRepository struct {
	path   string
	logger *logger.Logger
}

// Save writes the report atomically: a temp file in the target directory
// is renamed over the previous document, so readers never see a partial
// report.
func (r *reportRepository) Save(ctx context.Context, report *entity.BatchReport) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create report dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".report-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp report: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write report: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp report: %w", err)
	}
	if err := os.Rename(tmpName, r.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace report: %w", err)
	}

	r.logger.Info("Report saved",
		logger.Field("path", r.path),
		logger.IntField("bytes", len(data)),
	)
	return nil
}

// Latest reads the last saved report.
func (r *reportRepository) Latest(ctx context.Context) (*entity.BatchReport, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, err
	}

	var report entity.BatchReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("failed to decode report: %w", err)
	}
	return &report, nil
}
