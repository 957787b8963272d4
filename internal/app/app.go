package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"opinion-collector/internal/bot"
	"opinion-collector/internal/config"
	"opinion-collector/internal/repository"
	"opinion-collector/internal/service"
)

const sweepTimeout = 5 * time.Minute

// App holds the wired services of the collector.
type App struct {
	Categories *service.CategoryManager
	Events     *service.EventService
	Tokens     *service.TokenCleanupService

	cfg       config.Config
	db        *gorm.DB
	scheduler *service.SchedulerService
	log       *zap.Logger
}

// New opens the database and wires repositories, services and scheduled jobs.
func New(cfg config.Config, log *zap.Logger) (*App, error) {
	if log == nil {
		log = zap.NewNop()
	}

	db, err := repository.NewDB(cfg.DatabaseURL, log)
	if err != nil {
		return nil, fmt.Errorf("db: %w", err)
	}

	categoryRepo := repository.NewCategoryRepository(db)
	fieldRepo := repository.NewFieldRepository(db)
	tokenRepo := repository.NewTokenRepository(db)
	eventRepo := repository.NewEventRepository(db)

	var notifier service.ReportNotifier
	if cfg.NotifierEnabled() {
		n, err := bot.New(cfg.TelegramToken, cfg.ModeratorChatID, log)
		if err != nil {
			closeDB(db)
			return nil, fmt.Errorf("bot: %w", err)
		}
		notifier = n
	} else {
		log.Info("moderator notifications disabled")
	}

	a := &App{
		Categories: service.NewCategoryManager(categoryRepo, fieldRepo, log),
		Events:     service.NewEventService(eventRepo, notifier, log),
		Tokens:     service.NewTokenCleanupService(tokenRepo, log),
		cfg:        cfg,
		db:         db,
		scheduler:  service.NewSchedulerService(cfg.Location, log),
		log:        log,
	}

	if _, err := a.scheduler.ScheduleDaily(cfg.TokenCleanupAt, a.sweepTokens); err != nil {
		closeDB(db)
		return nil, fmt.Errorf("schedule token cleanup: %w", err)
	}

	return a, nil
}

// Run starts the scheduled jobs and blocks until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	a.scheduler.Start()
	a.log.Info("opinion collector started", zap.String("token_cleanup_at", a.cfg.TokenCleanupAt))

	<-ctx.Done()

	a.scheduler.Stop()
	a.log.Info("scheduler stopped")
	return nil
}

func (a *App) Close() error {
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// sweepTokens is the daily job. A failed run is logged and retried on the next tick.
func (a *App) sweepTokens() {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()
	if _, err := a.Tokens.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		a.log.Error("token cleanup failed", zap.Error(err))
	}
}

func closeDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}
