package main

import (
	"fmt"

	"github.com/huangang/sitecraft/internal/config"
	"github.com/huangang/sitecraft/internal/export"
	"github.com/huangang/sitecraft/internal/models"
	"github.com/huangang/sitecraft/internal/services"
	"github.com/huangang/sitecraft/internal/store"
	"github.com/huangang/sitecraft/internal/utils"
	"github.com/huangang/sitecraft/pkg/logger"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// appServices holds all initialized services needed by the application.
type appServices struct {
	cfg       *config.Config
	db        *gorm.DB
	store     store.EntityStore
	engine    *export.Engine
	hub       *services.NotificationHub
	sessions  *services.SessionManager
	taskQueue services.TaskQueue
	worker    *services.Worker
	cleanup   *cron.Cron
}

// bootstrap initializes all application dependencies: database, queue, schedulers.
func bootstrap(cfg *config.Config) (*appServices, error) {
	utils.SetJWTSecret(cfg.JWT.Secret)

	// Initialize database
	if err := models.InitDB(&cfg.Database); err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	db := models.GetDB()

	// Auto migrate database
	if err := models.AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	// Initialize system logger
	services.InitSystemLogger(db)

	// Start system log cleanup scheduler
	cleanup, err := services.StartLogCleanupScheduler(db, cfg.Log)
	if err != nil {
		logger.Warn().Err(err).Str("spec", cfg.Log.CleanupSpec).Msg("Log cleanup scheduler disabled")
	}

	s := store.NewGormStore(db)
	hub := services.NewNotificationHub()
	persister := services.NewPersister(s, hub)

	// Initialize task queue (uses Redis if enabled, otherwise sync mode)
	taskQueue := services.NewTaskQueue(cfg, persister.Process)

	// Start async worker when the queue went to Redis
	var worker *services.Worker
	if taskQueue.IsAsync() {
		worker = services.NewWorker(&cfg.Redis)
		if worker != nil {
			worker.SetProcessor(persister.Process)
			if err := worker.Start(); err != nil {
				logger.Warn().Err(err).Msg("Failed to start async worker")
			}
		}
	}

	return &appServices{
		cfg:       cfg,
		db:        db,
		store:     s,
		engine:    export.NewEngine(),
		hub:       hub,
		sessions:  services.NewSessionManager(s, taskQueue, hub),
		taskQueue: taskQueue,
		worker:    worker,
		cleanup:   cleanup,
	}, nil
}

// shutdown gracefully stops all services.
func (s *appServices) shutdown() {
	if s.cleanup != nil {
		<-s.cleanup.Stop().Done()
		logger.Info().Msg("Log cleanup scheduler stopped")
	}

	if s.worker != nil {
		s.worker.Stop()
	}
	if s.taskQueue != nil {
		if err := s.taskQueue.Close(); err != nil {
			logger.Warn().Err(err).Msg("Failed to close task queue")
		}
	}

	if sqlDB, err := s.db.DB(); err == nil {
		sqlDB.Close()
	}
}
