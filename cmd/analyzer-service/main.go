package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"news-risk-analyzer/internal/analyzer/config"
	"news-risk-analyzer/internal/analyzer/delivery/consumer"
	delivery "news-risk-analyzer/internal/analyzer/delivery/http"
	"news-risk-analyzer/internal/analyzer/repository"
	"news-risk-analyzer/internal/analyzer/service"
	"news-risk-analyzer/internal/entity"
	"news-risk-analyzer/pkg/common"
	"news-risk-analyzer/pkg/extractor"
	"news-risk-analyzer/pkg/logger"
	"news-risk-analyzer/pkg/ratelimit"
	"news-risk-analyzer/pkg/redis"
	"news-risk-analyzer/pkg/telegram"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"
)

var (
	configPath    string
	knowledgePath string
	sourcesDir    string
	outputPath    string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Runs one batch analysis and writes the report",
	Run:   runAnalyze,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the analyzer service with API, scheduler and queue consumer",
	Run:   runServe,
}

func runAnalyze(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if knowledgePath != "" {
		cfg.Knowledge.Path = knowledgePath
	}
	if sourcesDir != "" {
		cfg.Sources.Dir = sourcesDir
	}
	if outputPath != "" {
		cfg.Report.OutputPath = outputPath
	}

	// Initialize logger
	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	appLogger.Info("Starting one-shot analysis", logger.Field("name", cfg.App.Name))

	batchSvc := buildBatchService(cfg, appLogger)

	report, err := batchSvc.Run(ctx, service.NewRunRequest(entity.RunTriggerManual))
	if err != nil {
		appLogger.Fatal("Analysis run failed", logger.ErrorField(err))
	}

	appLogger.Info("Report written",
		logger.Field("path", cfg.Report.OutputPath),
		logger.IntField("articles", report.Summary.TotalArticlesAnalyzed),
		logger.Float64Field("average_risk_score", report.Summary.AverageRiskScore),
		logger.IntField("high_risk_articles", report.Summary.HighRiskArticlesCount),
	)
}

func runServe(cmd *cobra.Command, args []string) {
	// Create a context that is canceled on interrupt signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	appLogger.Info("Starting Analyzer Service", logger.Field("name", cfg.App.Name))

	// Initialize Redis
	redisCfg := redis.Config{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	}
	redisClient, err := redis.NewClient(redisCfg)
	if err != nil {
		appLogger.Fatal("Failed to initialize Redis", logger.ErrorField(err))
	}
	defer redisClient.Close()

	// Create the consumer group if it doesn't exist
	// MKSTREAM creates the stream if it doesn't exist
	if err := redisClient.XGroupCreateMkStream(context.Background(), common.RedisStreamRiskAnalysis, common.RedisStreamGroup, "0").Err(); err != nil {
		if err.Error() != "BUSYGROUP Consumer Group name already exists" {
			appLogger.Fatal("Failed to create consumer group", logger.ErrorField(err))
		}
	}

	// Initialize services
	batchSvc := buildBatchService(cfg, appLogger)
	reportRepo := repository.NewReportRepository(cfg.Report.OutputPath, appLogger)
	reportSvc := service.NewReportService(cfg, reportRepo, appLogger)
	runQueue := service.NewRunQueue(cfg, redisClient.Client, appLogger)

	// Initialize and start the Redis consumer
	redisConsumer := consumer.NewRedisConsumer(cfg, redisClient.Client, batchSvc, reportSvc, appLogger)
	redisConsumer.Start(ctx)

	// Start the run scheduler
	var schedulerSvc service.SchedulerService
	if cfg.Scheduler.Enabled {
		schedulerSvc = service.NewSchedulerService(cfg, runQueue, appLogger)
		if err := schedulerSvc.Start(ctx); err != nil {
			appLogger.Fatal("Failed to start run scheduler", logger.ErrorField(err))
		}
	}

	// Initialize Echo server
	e := echo.New()
	e.HideBanner = true

	// Initialize handlers and routes
	limiter := ratelimit.NewRequestLimiter(cfg.Trigger.MaxRequestPerMinute)
	reportHandler := delivery.NewReportHandler(reportSvc, runQueue, limiter, appLogger)
	apiV1 := e.Group("/api/v1")
	reportHandler.RegisterRoutes(apiV1)
	e.GET("/healthz", reportHandler.Health)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port)
		appLogger.Info("HTTP server starting", logger.Field("address", addr))
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			appLogger.Error("HTTP server failed to start", logger.ErrorField(err))
			stop() // trigger shutdown
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()

	appLogger.Info("Shutting down analyzer service...")

	// Gracefully shutdown the server
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", logger.ErrorField(err))
	}
	if schedulerSvc != nil {
		schedulerSvc.Stop()
	}
	redisConsumer.Stop()

	appLogger.Info("Analyzer service stopped")
}

// buildBatchService wires the repositories and optional notifier behind
// the batch service.
func buildBatchService(cfg *config.Config, appLogger *logger.Logger) service.BatchService {
	ext := extractor.New(appLogger)
	knowledgeRepo := repository.NewKnowledgeRepository(appLogger)
	articleRepo := repository.NewArticleRepository(cfg.Sources, ext, appLogger)
	reportRepo := repository.NewReportRepository(cfg.Report.OutputPath, appLogger)

	var notifier telegram.Notifier
	if cfg.Telegram.Enabled && cfg.Telegram.BotToken != "" {
		var err error
		notifier, err = telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		if err != nil {
			appLogger.Fatal("Failed to initialize Telegram notifier", logger.ErrorField(err))
		}
	}

	return service.NewBatchService(cfg, knowledgeRepo, articleRepo, reportRepo, notifier, appLogger)
}

func main() {
	rootCmd := &cobra.Command{Use: "analyzer-service"}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "configs/config-analyzer.yaml", "Path to the configuration file")
	analyzeCmd.Flags().StringVar(&knowledgePath, "knowledge", "", "Override the knowledge base path")
	analyzeCmd.Flags().StringVar(&sourcesDir, "sources", "", "Override the news sources directory")
	analyzeCmd.Flags().StringVar(&outputPath, "output", "", "Override the report output path")

	rootCmd.AddCommand(analyzeCmd, serveCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing analyzer-service CLI: %s\n", err)
		os.Exit(1)
	}
}
