package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"news-risk-analyzer/internal/analyzer/config"
	"news-risk-analyzer/internal/entity"
	"news-risk-analyzer/pkg/common"
	"news-risk-analyzer/pkg/logger"

	"github.com/redis/go-redis/v9"
)

// RunQueue publishes analysis run requests for the stream consumer to
// pick up.
type RunQueue interface {
	Publish(ctx context.Context, trigger string) (*entity.RunRequest, error)
}

// NewRunRequest builds a run request for the given trigger.
func NewRunRequest(trigger string) entity.RunRequest {
	now := time.Now().UTC()
	return entity.RunRequest{
		RunID:       fmt.Sprintf("%s-%d", trigger, now.UnixNano()),
		Trigger:     trigger,
		RequestedAt: now.Format(time.RFC3339),
	}
}

// NewRunQueue creates a new RunQueue backed by the Redis stream.
func NewRunQueue(cfg *config.Config, redisClient *redis.Client, log *logger.Logger) RunQueue {
	return &runQueue{
		cfg:         cfg,
		redisClient: redisClient,
		logger:      log,
	}
}

type runQueue struct {
	cfg         *config.Config
	redisClient *redis.Client
	logger      *logger.Logger
}

// Publish enqueues a run request on the analysis stream.
func (q *runQueue) Publish(ctx context.Context, trigger string) (*entity.RunRequest, error) {
	req := NewRunRequest(trigger)

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal run request: %w", err)
	}

	if err := q.redisClient.XAdd(ctx, &redis.XAddArgs{
		Stream: common.RedisStreamRiskAnalysis,
		Values: map[string]interface{}{"payload": payload},
		MaxLen: q.cfg.Redis.StreamMaxLen, // Limit the stream size
	}).Err(); err != nil {
		return nil, fmt.Errorf("failed to enqueue run request: %w", err)
	}

	q.logger.Info("Run request published",
		logger.Field("run_id", req.RunID),
		logger.Field("trigger", trigger),
	)
	return &req, nil
}
