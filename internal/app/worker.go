package app

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"website_backend/internal/config"
	"website_backend/internal/logger"
	"website_backend/internal/workers"
)

// RunWorker запускает процесс-потребитель очереди и периодические задачи
func RunWorker() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gormDB, err := openDatabase(ctx, cfg)
	if err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}

	infra, err := NewInfra(cfg, gormDB)
	if err != nil {
		logger.Fatal("Failed to initialize infrastructure", "error", err)
	}
	defer infra.Close()

	if cfg.Queue.Broker != "amqp" {
		logger.Warn("Worker started with an in-memory broker; it only sees tasks published by itself")
	}

	workers.NewUsersCountWorker(infra.Dispatcher, cfg.Queue.UsersCountInterval).Start(ctx)
	workers.NewTaskResultCleanupWorker(gormDB, cfg.Queue.ResultTTL).Start(ctx)

	if err := infra.Worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Task worker stopped", "error", err)
	}
}
