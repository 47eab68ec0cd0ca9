package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"business-canvas/internal/canvas"
	"business-canvas/internal/common/config"
	"business-canvas/internal/common/database"
	"business-canvas/internal/common/logger"
	"business-canvas/internal/common/observability"
	"business-canvas/internal/inference"
	"business-canvas/internal/server"
	"business-canvas/internal/store"
)

func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)
	zapLog.Info("Starting canvas server...", zap.String("config", cfg.String()))

	obs, err := observability.New(observability.Options{
		ServiceName:    cfg.Tracing.ServiceName,
		TracingEnabled: cfg.Tracing.Enabled,
		JaegerEndpoint: cfg.Tracing.JaegerEndpoint,
	})
	if err != nil {
		zapLog.Warn("observability partially initialized", zap.Error(err))
	}
	defer obs.Shutdown(context.Background())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var canvasStore store.Store
	switch cfg.Store.Backend {
	case config.StoreBackendRedis:
		var redis *database.RedisClient
		err = retryWithBackoff(func() error {
			var err error
			redis, err = database.ConnectRedis(ctx, cfg.Store.Redis)
			return err
		}, 10, 2*time.Second, zapLog, "Redis connection")
		if err != nil {
			zapLog.Fatal("redis failed after retries", zap.Error(err))
		}
		defer redis.Close()
		zapLog.Info("Redis connected successfully")

		canvasStore = store.NewRedisStore(redis.Client, cfg.Store.Redis.KeyPrefix, cfg.Store.Redis.GetTTL())
	default:
		canvasStore = store.NewMemoryStore()
	}
	zapLog.Info("Canvas store ready", zap.String("backend", cfg.Store.Backend))

	canvasCfg := canvas.LoadConfig()
	engine := inference.NewEngine(&inference.Config{Now: canvasCfg.Now, NewID: canvasCfg.NewID})
	service := canvas.NewService(canvasCfg, engine, canvasStore, log, obs.Tracer())

	srv := server.New(cfg, service, log, server.WithRecorder(obs))
	if err := srv.Run(ctx); err != nil {
		zapLog.Fatal("server failed", zap.Error(err))
	}

	zapLog.Info("Canvas server stopped gracefully")
}
