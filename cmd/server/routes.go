package main

import (
	"github.com/gin-gonic/gin"
	"github.com/teamtrack/backend/internal/middleware"
	"github.com/teamtrack/backend/pkg/logger"
)

// registerRoutes sets up all HTTP routes on the given Gin engine.
func registerRoutes(r *gin.Engine, svc *appServices) {
	// Middleware
	r.Use(logger.GinLogger(), logger.GinRecovery())
	r.RedirectTrailingSlash = false
	r.RedirectFixedPath = false
	r.Use(middleware.CORS())

	// Rate limiter for credential routes
	authLimiter := middleware.NewRateLimiter(10, 20)

	// Health check
	r.GET("/health", svc.healthHandler.Check)

	// API routes. Auth is optional on the public surface; a bearer token only
	// attributes activity entries to an actor.
	api := r.Group("/api")
	api.Use(middleware.AuthOptional())
	{
		// Users
		api.POST("/users/register", authLimiter.Middleware(), svc.userHandler.Register)
		api.POST("/users/login", authLimiter.Middleware(), svc.userHandler.Login)
		api.GET("/users", svc.userHandler.List)

		// Projects
		api.GET("/projects", svc.projectHandler.List)
		api.GET("/projects/:id", svc.projectHandler.Get)
		api.POST("/projects", svc.projectHandler.Create)
		api.PUT("/projects/:id", svc.projectHandler.Update)
		api.PUT("/projects/:id/members", svc.projectHandler.AddMember)
		api.DELETE("/projects/:id", svc.projectHandler.Delete)

		// Tasks
		api.GET("/tasks", svc.taskHandler.List)
		api.POST("/tasks", svc.taskHandler.Create)
		api.PUT("/tasks/:id", svc.taskHandler.Update)
		api.DELETE("/tasks/:id", svc.taskHandler.Delete)

		// Dashboard
		api.GET("/dashboard/stats", svc.dashboardHandler.GetStats)
		api.GET("/dashboard/project-stats/:id", svc.dashboardHandler.GetProjectStats)

		// Protected routes
		protected := api.Group("")
		protected.Use(middleware.AuthRequired())
		{
			protected.GET("/users/me", svc.userHandler.Me)
		}

		// Admin only routes
		admin := api.Group("")
		admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
		{
			admin.DELETE("/users/:id", svc.userHandler.Delete)
			admin.GET("/activity", svc.activityHandler.List)
		}
	}
}
