package main

import (
	"github.com/teamtrack/backend/internal/config"
	"github.com/teamtrack/backend/internal/handlers"
	"github.com/teamtrack/backend/internal/models"
	"github.com/teamtrack/backend/internal/services"
	"github.com/teamtrack/backend/internal/utils"
	"github.com/teamtrack/backend/pkg/logger"
)

// appServices holds all initialized services and handlers needed by the application.
type appServices struct {
	activityService  *services.ActivityService
	activityQueue    services.ActivityQueue
	worker           *services.Worker
	userHandler      *handlers.UserHandler
	projectHandler   *handlers.ProjectHandler
	taskHandler      *handlers.TaskHandler
	dashboardHandler *handlers.DashboardHandler
	activityHandler  *handlers.ActivityHandler
	healthHandler    *handlers.HealthHandler
}

// bootstrap initializes all application dependencies: database, services, schedulers.
func bootstrap(cfg *config.Config) *appServices {
	utils.SetJWTSecret(cfg.JWT.Secret)

	// Initialize database
	if err := models.InitDB(&cfg.Database); err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto migrate database
	if err := models.AutoMigrate(); err != nil {
		logger.Fatalf("Failed to migrate database: %v", err)
	}

	db := models.GetDB()

	// Activity audit pipeline (uses Redis if enabled, otherwise sync mode)
	activityService := services.NewActivityService(db)
	activityQueue := services.InitActivityQueue(cfg)
	if syncQueue, ok := activityQueue.(*services.SyncQueue); ok {
		syncQueue.SetProcessor(activityService.Record)
	}

	// Start async worker if Redis is enabled
	var worker *services.Worker
	if activityQueue.IsAsync() {
		worker = services.InitWorker(&cfg.Redis)
		if worker != nil {
			worker.SetProcessor(activityService.Record)
			worker.Start()
		}
	}

	// Start activity retention cleanup scheduler
	services.StartActivityCleanupScheduler(activityService, cfg.Activity.RetentionDays)

	return &appServices{
		activityService:  activityService,
		activityQueue:    activityQueue,
		worker:           worker,
		userHandler:      handlers.NewUserHandler(db, cfg.JWT.ExpireHour),
		projectHandler:   handlers.NewProjectHandler(db),
		taskHandler:      handlers.NewTaskHandler(db),
		dashboardHandler: handlers.NewDashboardHandler(db),
		activityHandler:  handlers.NewActivityHandler(db),
		healthHandler:    handlers.NewHealthHandler(db),
	}
}

// shutdown gracefully stops all services.
func (s *appServices) shutdown() {
	services.StopActivityCleanupScheduler()
	logger.Info().Msg("Schedulers stopped")

	if s.worker != nil {
		s.worker.Stop()
	}
	if s.activityQueue != nil {
		s.activityQueue.Close()
	}
}
