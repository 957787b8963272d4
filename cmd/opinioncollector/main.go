package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"opinion-collector/internal/app"
	"opinion-collector/internal/config"
	"opinion-collector/internal/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	zl, err := logger.New(logger.Config{
		Development: cfg.Development(),
		Level:       cfg.LogLevel,
		Encoding:    cfg.LogEncoding,
	})
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer zl.Sync()

	collector, err := app.New(cfg, zl)
	if err != nil {
		zl.Fatal("startup failed", zap.Error(err))
	}
	defer collector.Close()

	if err := collector.Run(ctx); err != nil {
		zl.Error("stopped with error", zap.Error(err))
	}
	zl.Info("shutdown complete")
}
