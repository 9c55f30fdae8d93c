package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Mani87-nq/yardbooks-web-sub011/internal/core/services"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/platform/config"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/platform/storage"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/worker"
	"github.com/Mani87-nq/yardbooks-web-sub011/pkg/database"
	"github.com/hibiken/asynq"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if cfg.RedisAddr == "" {
		logger.Error("REDIS_ADDR is required for the worker")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("Worker exited with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	// The API server owns migrations.
	store, closeStore, err := storage.Open(ctx, cfg, false, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	redisClient, err := database.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, logger)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	container := services.NewServiceContainer(cfg, store)
	processor := worker.NewProcessor(container.Revaluation, container.Asset, worker.NewRedisSummaryStore(redisClient, 0), logger)

	redisOpt := worker.RedisOpt(cfg)
	srv := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: cfg.WorkerConcurrency,
		Queues: map[string]int{
			"critical": 6,
			"default":  3,
			"low":      1,
		},
		ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
			retried, _ := asynq.GetRetryCount(ctx)
			maxRetry, _ := asynq.GetMaxRetry(ctx)
			logger.Error("Task failed",
				slog.String("type", task.Type()),
				slog.Int("retried", retried),
				slog.Int("max_retry", maxRetry),
				slog.Bool("archived", errors.Is(err, asynq.SkipRetry) || retried >= maxRetry),
				slog.String("error", err.Error()))
		}),
	})

	mux := asynq.NewServeMux()
	worker.RegisterHandlers(mux, processor)

	scheduler, err := worker.NewScheduler(redisOpt, cfg.JobTenants, cfg.JobUserID, worker.DefaultSchedules, logger)
	if err != nil {
		return err
	}
	if len(cfg.JobTenants) > 0 {
		if err := scheduler.Start(); err != nil {
			return err
		}
		defer scheduler.Shutdown()
	} else {
		logger.Info("JOB_TENANTS not set; periodic runs disabled")
	}

	logger.Info("Worker starting", slog.Int("concurrency", cfg.WorkerConcurrency))
	if err := srv.Start(mux); err != nil {
		return err
	}
	<-ctx.Done()

	logger.Info("Shutting down worker")
	srv.Shutdown()
	return nil
}
