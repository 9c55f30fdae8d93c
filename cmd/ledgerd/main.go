package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Mani87-nq/yardbooks-web-sub011/internal/core/services"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/handlers"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/middleware"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/platform/config"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/platform/storage"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/utils/validation"
	"github.com/Mani87-nq/yardbooks-web-sub011/internal/worker"
	"github.com/Mani87-nq/yardbooks-web-sub011/pkg/database"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("Server exited with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	store, closeStore, err := storage.Open(ctx, cfg, true, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	if err := validation.Register(); err != nil {
		return err
	}

	var (
		redisClient *redis.Client
		jobs        handlers.Jobs
	)
	if cfg.RedisAddr != "" {
		redisClient, err = database.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, logger)
		if err != nil {
			return err
		}
		defer redisClient.Close()

		client := worker.NewClient(worker.RedisOpt(cfg), cfg.JobTimeout)
		defer client.Close()
		jobs = handlers.Jobs{Enqueuer: client, Summaries: worker.NewRedisSummaryStore(redisClient, 0)}
	} else {
		logger.Warn("REDIS_ADDR not set; background jobs disabled and rate limits kept in memory")
	}

	rateLimiter, err := middleware.NewLimiter(cfg.RateLimit, redisClient)
	if err != nil {
		return err
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins), middleware.RateLimit(rateLimiter))
	if err := r.SetTrustedProxies(nil); err != nil {
		return err
	}

	handlers.RegisterRoutes(r, services.NewServiceContainer(cfg, store), jobs)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("store", cfg.StoreDriver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
