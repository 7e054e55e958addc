package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"news-risk-analyzer/internal/analyzer/config"
	"news-risk-analyzer/internal/analyzer/repository"
	"news-risk-analyzer/internal/entity"
	"news-risk-analyzer/internal/risk"
	"news-risk-analyzer/pkg/logger"
	"news-risk-analyzer/pkg/telegram"
	"news-risk-analyzer/pkg/utils"
)

// BatchService executes full analysis runs: load the knowledge base and
// every source channel, score the articles, aggregate the report and
// persist it.
type BatchService interface {
	Run(ctx context.Context, req entity.RunRequest) (*entity.BatchReport, error)
}

// NewBatchService creates a new BatchService. The notifier may be nil,
// in which case run notifications are skipped.
func NewBatchService(
	cfg *config.Config,
	knowledgeRepo repository.KnowledgeRepository,
	articleRepo repository.ArticleRepository,
	reportRepo repository.ReportRepository,
	notifier telegram.Notifier,
	log *logger.Logger,
) BatchService {
	return &batchService{
		cfg:           cfg,
		knowledgeRepo: knowledgeRepo,
		articleRepo:   articleRepo,
		reportRepo:    reportRepo,
		notifier:      notifier,
		logger:        log,
		now:           time.Now,
	}
}

type batchService struct {
	cfg           *config.Config
	knowledgeRepo repository.KnowledgeRepository
	articleRepo   repository.ArticleRepository
	reportRepo    repository.ReportRepository
	notifier      telegram.Notifier
	logger        *logger.Logger
	now           func() time.Time
}

// workItem is one article queued for scoring. Position is its slot in
// the output so results land in input order no matter which worker
// finishes first.
type workItem struct {
	article  entity.Article
	source   string
	index    int
	position int
}

// Run executes one analysis run. A broken knowledge base aborts the run;
// per-article and per-source failures are counted and reported in the
// batch metadata instead.
func (s *batchService) Run(ctx context.Context, req entity.RunRequest) (*entity.BatchReport, error) {
	s.logger.Info("Starting analysis run",
		logger.Field("run_id", req.RunID),
		logger.Field("trigger", req.Trigger),
	)

	report, err := s.run(ctx, req)
	if err != nil {
		s.logger.Error("Analysis run failed",
			logger.Field("run_id", req.RunID),
			logger.ErrorField(err),
		)
		s.notifyFailure(req, err)
		return nil, err
	}

	s.logger.Info("Analysis run completed",
		logger.Field("run_id", req.RunID),
		logger.IntField("total_input", report.AnalysisMetadata.TotalInputArticles),
		logger.IntField("analyzed", report.Summary.TotalArticlesAnalyzed),
		logger.IntField("skipped", report.AnalysisMetadata.SkippedArticles),
		logger.IntField("filtered", report.AnalysisMetadata.FilteredArticles),
		logger.Float64Field("average_risk_score", report.Summary.AverageRiskScore),
		logger.IntField("high_risk_articles", report.Summary.HighRiskArticlesCount),
	)
	s.notifyReport(report)
	return report, nil
}

func (s *batchService) run(ctx context.Context, req entity.RunRequest) (*entity.BatchReport, error) {
	profile, err := s.knowledgeRepo.Load(ctx, s.cfg.Knowledge.Path)
	if err != nil {
		return nil, err
	}

	loaded, err := s.articleRepo.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load sources: %w", err)
	}

	work, totalInput, filtered, sources := s.collectWork(loaded)

	results, skipped := s.analyzeAll(ctx, profile, work)

	report := risk.BuildReport(risk.AggregateInput{
		Profile:            profile,
		Results:            results,
		TotalInputArticles: totalInput,
		SkippedArticles:    skipped,
		FilteredArticles:   filtered,
		FailedSources:      loaded.FailedSources,
		DataSources:        sources,
		GeneratedAt:        s.now(),
	}, risk.AggregateOptions{
		HighRiskThreshold: s.cfg.Analyzer.HighRiskThreshold,
		TopHighRisk:       s.cfg.Analyzer.TopHighRisk,
	})

	if err := s.reportRepo.Save(ctx, report); err != nil {
		return nil, fmt.Errorf("failed to save report: %w", err)
	}
	return report, nil
}

// collectWork flattens the loaded channels into the scoring work list,
// dropping access-denied placeholder pages. The article index is the
// 1-based position inside its channel, counting dropped articles too,
// so it always points back at the input document.
func (s *batchService) collectWork(loaded *repository.LoadResult) ([]workItem, int, int, []string) {
	var (
		work       []workItem
		totalInput int
		filtered   int
		sources    []string
	)
	for _, batch := range loaded.Batches {
		sources = append(sources, batch.Name)
		for i, article := range batch.Articles {
			totalInput++
			if risk.IsBlockedContent(article.Title, article.Content, s.cfg.Analyzer.DenialPhrases) {
				filtered++
				s.logger.Debug("Article filtered as blocked content",
					logger.Field("source", batch.Name),
					logger.IntField("article_index", i+1),
				)
				continue
			}
			work = append(work, workItem{
				article:  article,
				source:   batch.Name,
				index:    i + 1,
				position: len(work),
			})
		}
	}
	return work, totalInput, filtered, sources
}

// analyzeAll scores the work list, fanning out across workers. Each
// article is independent of the others, so execution order is free; the
// position-indexed slots restore input order afterwards.
func (s *batchService) analyzeAll(ctx context.Context, profile *entity.CompanyProfile, work []workItem) ([]entity.AnalyzedArticle, int) {
	maxConcurrent := s.cfg.Analyzer.MaxConcurrency
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}

	analyzer := risk.NewAnalyzer(profile, risk.Options{MaxSentences: s.cfg.Analyzer.MaxSentences})
	analyzedAt := s.now().UTC().Format(time.RFC3339)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		skipped int
	)
	slots := make([]*entity.AnalyzedArticle, len(work))
	semaphore := make(chan struct{}, maxConcurrent)

	for _, item := range work {
		if !utils.ShouldContinue(ctx, s.logger) {
			break
		}

		wg.Add(1)
		it := item
		utils.GoSafe(func() {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			result, err := analyzer.AnalyzeArticle(it.article)
			if err != nil {
				var validationErr *risk.ValidationError
				if errors.As(err, &validationErr) {
					s.logger.Warn("Article skipped",
						logger.Field("source", it.source),
						logger.IntField("article_index", it.index),
						logger.ErrorField(validationErr),
					)
				} else {
					s.logger.Error("Article analysis failed",
						logger.Field("source", it.source),
						logger.IntField("article_index", it.index),
						logger.ErrorField(err),
					)
				}
				mu.Lock()
				skipped++
				mu.Unlock()
				return
			}

			slots[it.position] = &entity.AnalyzedArticle{
				Article:  it.article,
				Analysis: result,
				Meta: entity.AnalysisMeta{
					ArticleIndex: it.index,
					SourceFile:   it.source,
					AnalyzedAt:   analyzedAt,
				},
				Position: it.position,
			}
		})
	}
	wg.Wait()

	results := make([]entity.AnalyzedArticle, 0, len(work))
	for _, slot := range slots {
		if slot != nil {
			results = append(results, *slot)
		}
	}
	return results, skipped
}

func (s *batchService) notifyReport(report *entity.BatchReport) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.SendMessage(telegram.FormatBatchReportForTelegram(report)); err != nil {
		s.logger.Error("Failed to send run summary notification", logger.ErrorField(err))
		return
	}
	if report.Summary.HighRiskArticlesCount == 0 {
		return
	}
	for _, message := range telegram.FormatHighRiskAlertsForTelegram(report.Summary.TopHighRiskArticles, report.Summary.HighRiskThreshold) {
		if err := s.notifier.SendMessage(message); err != nil {
			s.logger.Error("Failed to send high-risk alert notification", logger.ErrorField(err))
			return
		}
	}
}

func (s *batchService) notifyFailure(req entity.RunRequest, runErr error) {
	if s.notifier == nil {
		return
	}
	message := telegram.FormatRunFailureMessage(s.now(), req.RunID, runErr)
	if err := s.notifier.SendMessage(message); err != nil {
		s.logger.Error("Failed to send run failure notification", logger.ErrorField(err))
	}
}
