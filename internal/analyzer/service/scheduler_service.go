package service

import (
	"context"
	"fmt"

	"news-risk-analyzer/internal/analyzer/config"
	"news-risk-analyzer/internal/entity"
	"news-risk-analyzer/pkg/logger"
	"news-risk-analyzer/pkg/utils"

	"github.com/robfig/cron/v3"
)

// SchedulerService publishes analysis runs on the configured cron
// schedule so the report keeps refreshing without manual triggers.
type SchedulerService interface {
	Start(ctx context.Context) error
	Stop()
}

// NewSchedulerService creates a new scheduler service.
func NewSchedulerService(cfg *config.Config, runQueue RunQueue, log *logger.Logger) SchedulerService {
	return &schedulerService{
		cfg:      cfg,
		runQueue: runQueue,
		logger:   log,
		cron:     cron.New(),
	}
}

type schedulerService struct {
	cfg      *config.Config
	runQueue RunQueue
	logger   *logger.Logger
	cron     *cron.Cron
}

// Start registers the cron schedule and begins publishing run requests.
// With run_on_start enabled a first run is requested immediately.
func (s *schedulerService) Start(ctx context.Context) error {
	if s.cfg.Scheduler.RunOnStart {
		if _, err := s.runQueue.Publish(ctx, entity.RunTriggerStartup); err != nil {
			s.logger.Error("Failed to publish startup run", logger.ErrorField(err))
		}
	}

	_, err := s.cron.AddFunc(s.cfg.Scheduler.Cron, func() {
		if !utils.ShouldContinue(ctx, s.logger) {
			return
		}
		if _, err := s.runQueue.Publish(ctx, entity.RunTriggerSchedule); err != nil {
			s.logger.Error("Failed to publish scheduled run", logger.ErrorField(err))
		}
	})
	if err != nil {
		return fmt.Errorf("failed to parse cron expression %q: %w", s.cfg.Scheduler.Cron, err)
	}

	s.cron.Start()
	s.logger.Info("Run scheduler started", logger.Field("cron", s.cfg.Scheduler.Cron))
	return nil
}

// Stop halts the cron scheduler and waits for an in-flight publish.
func (s *schedulerService) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Info("Run scheduler stopped")
}
