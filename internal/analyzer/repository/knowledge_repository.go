package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"news-risk-analyzer/internal/entity"
	"news-risk-analyzer/pkg/logger"
)

// KnowledgeBaseError reports a knowledge base that cannot be used. It is
// fatal for the run: without a valid profile nothing can be scored.
type KnowledgeBaseError struct {
	Path string
	Err  error
}

func (e *KnowledgeBaseError) Error() string {
	return fmt.Sprintf("knowledge base %s: %v", e.Path, e.Err)
}

func (e *KnowledgeBaseError) Unwrap() error {
	return e.Err
}

// KnowledgeRepository loads the company profile the analyzer scores
// articles against.
type KnowledgeRepository interface {
	Load(ctx context.Context, path string) (*entity.CompanyProfile, error)
}

// NewKnowledgeRepository creates a new KnowledgeRepository.
func NewKnowledgeRepository(log *logger.Logger) KnowledgeRepository {
	return &knowledgeRepository{logger: log}
}

type knowledgeRepository struct {
	logger *logger.Logger
}

// Load reads, validates and normalizes the knowledge-base document.
func (r *knowledgeRepository) Load(ctx context.Context, path string) (*entity.CompanyProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &KnowledgeBaseError{Path: path, Err: err}
	}

	var profile entity.CompanyProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, &KnowledgeBaseError{Path: path, Err: err}
	}
	if err := profile.Validate(); err != nil {
		return nil, &KnowledgeBaseError{Path: path, Err: err}
	}
	profile.Normalize()

	r.logger.Info("Knowledge base loaded",
		logger.Field("company", profile.Company.Name),
		logger.IntField("categories", len(profile.Categories())),
	)
	return &profile, nil
}
