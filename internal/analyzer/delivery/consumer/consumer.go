package consumer

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"news-risk-analyzer/internal/analyzer/config"
	"news-risk-analyzer/internal/analyzer/service"
	"news-risk-analyzer/internal/entity"
	"news-risk-analyzer/pkg/common"
	"news-risk-analyzer/pkg/logger"
	"news-risk-analyzer/pkg/utils"

	"github.com/redis/go-redis/v9"
)

const defaultRunTimeout = 10 * time.Minute

// RedisConsumer consumes analysis run requests from the Redis stream and
// executes them one at a time.
type RedisConsumer struct {
	cfg           *config.Config
	redisClient   *redis.Client
	batchService  service.BatchService
	reportService service.ReportService
	logger        *logger.Logger
	stopChan      chan struct{}
	wg            sync.WaitGroup
}

// NewRedisConsumer creates a new RedisConsumer.
func NewRedisConsumer(
	cfg *config.Config,
	redisClient *redis.Client,
	batchService service.BatchService,
	reportService service.ReportService,
	log *logger.Logger,
) *RedisConsumer {
	return &RedisConsumer{
		cfg:           cfg,
		redisClient:   redisClient,
		batchService:  batchService,
		reportService: reportService,
		logger:        log,
		stopChan:      make(chan struct{}),
	}
}

// Start begins the consumer's run processing loop.
func (c *RedisConsumer) Start(ctx context.Context) {
	c.logger.Info("Redis consumer started")

	timeout := c.cfg.Analyzer.RunTimeout
	if timeout <= 0 {
		timeout = defaultRunTimeout
	}
	c.RegisterStreamHandler(ctx, c.processRun, common.RedisStreamRiskAnalysis, timeout)
}

// RegisterStreamHandler runs fn in a loop until the consumer stops. Each
// invocation gets its own timeout so a stuck run cannot wedge the loop.
func (c *RedisConsumer) RegisterStreamHandler(ctx context.Context, fn func(ctx context.Context), streamName string, timeout time.Duration) {
	c.logger.Info("Registering stream handler", logger.Field("stream", streamName))
	c.wg.Add(1)
	utils.GoSafe(func() {
		defer c.wg.Done()
		for {
			select {
			case <-ctx.Done():
				c.logger.Info("Redis consumer stopping due to context cancellation")
				return
			case <-c.stopChan:
				c.logger.Info("Redis consumer stopping")
				return
			default:
				ctxTimeout, cancel := context.WithTimeout(ctx, timeout)
				fn(ctxTimeout)
				cancel()
			}
		}
	})
}

// processRun dequeues and executes a single run request.
func (c *RedisConsumer) processRun(ctx context.Context) {
	streams, err := c.redisClient.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    common.RedisStreamGroup,
		Consumer: common.RedisStreamConsumer,
		Streams:  []string{common.RedisStreamRiskAnalysis, ">"}, // ">" means only new messages
		Count:    1,
		Block:    2 * time.Second, // Block for 2 seconds to allow graceful shutdown
		NoAck:    true,
	}).Result()

	if err != nil {
		// Ignore cancellation and empty reads, both are expected during shutdown or idle periods.
		if err == context.Canceled || err == context.DeadlineExceeded || err == redis.Nil {
			return
		}
		c.logger.Error("Failed to read from stream", logger.ErrorField(err))
		return
	}

	if len(streams) == 0 || len(streams[0].Messages) == 0 {
		return
	}

	message := streams[0].Messages[0]

	payload, ok := message.Values["payload"].(string)
	if !ok {
		c.logger.Error("field 'payload' not found or not a string in stream message", logger.Field("message_id", message.ID))
		return
	}

	var req entity.RunRequest
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		c.logger.Error("Failed to unmarshal run request", logger.ErrorField(err), logger.Field("message_id", message.ID))
		// Acknowledge the message to prevent reprocessing of a malformed message.
		if err := c.redisClient.XAck(ctx, common.RedisStreamRiskAnalysis, common.RedisStreamGroup, message.ID).Err(); err != nil {
			c.logger.Error("Failed to acknowledge malformed message", logger.ErrorField(err), logger.Field("message_id", message.ID))
		}
		return
	}

	// Run failures are logged and notified inside the batch service; the
	// stream moves on either way.
	if _, err := c.batchService.Run(ctx, req); err != nil {
		return
	}
	c.reportService.InvalidateCache()
}

// Stop gracefully shuts down the consumer.
func (c *RedisConsumer) Stop() {
	close(c.stopChan)
	c.wg.Wait()
	c.logger.Info("Redis consumer stopped")
}
