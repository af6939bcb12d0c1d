package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/singhankit6748/Water-Tracker/internal/app"
	"github.com/singhankit6748/Water-Tracker/internal/config"
	"github.com/singhankit6748/Water-Tracker/internal/logging"
)

func main() {
	cfg := config.FromEnv()

	logger, err := logging.New(logging.Options{Level: cfg.LogLevel, File: cfg.LogFile})
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("boot", zap.Error(err))
	}
	defer func() { _ = a.Close() }()

	logger.Info("water tracker listening",
		zap.String("addr", a.Addr()),
		zap.String("db", cfg.DBPath),
		zap.Bool("feedback", a.Service.FeedbackEnabled()),
	)

	// Blocking; Ctrl+C stops the server gracefully.
	if err := a.Run(ctx); err != nil {
		logger.Error("server", zap.Error(err))
	}
}
