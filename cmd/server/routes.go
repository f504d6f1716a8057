package main

import (
	"github.com/gin-gonic/gin"
	"github.com/huangang/sitecraft/internal/handlers"
	"github.com/huangang/sitecraft/internal/middleware"
	"github.com/huangang/sitecraft/pkg/logger"
)

// registerRoutes sets up all HTTP routes on the given Gin engine.
func registerRoutes(r *gin.Engine, svc *appServices) {
	// Middleware
	r.Use(logger.GinLogger(), logger.GinRecovery())
	r.RedirectTrailingSlash = false
	r.RedirectFixedPath = false
	r.Use(middleware.CORS())

	// Rate limiter for export routes
	exportLimiter := middleware.NewRateLimiter(svc.cfg.Export.RateLimitRPS, svc.cfg.Export.RateLimitBurst)

	// Health check
	r.GET("/health", handlers.NewHealthHandler(svc.db, svc.taskQueue, svc.hub).CheckHealth)

	api := r.Group("/api")
	api.Use(middleware.AuthRequired())
	{
		// SSE notifications (token may be passed as a query parameter)
		sseHandler := handlers.NewSSEHandler(svc.hub)
		api.GET("/events", sseHandler.StreamNotifications)

		api.GET("/catalog", handlers.Catalog)

		// Preferences
		preferenceHandler := handlers.NewPreferenceHandler(svc.store)
		api.GET("/me/preferences", preferenceHandler.Get)

		// System logs (own entries)
		systemLogHandler := handlers.NewSystemLogHandler(svc.db)
		api.GET("/system-logs", systemLogHandler.List)

		// Export and preview
		exportHandler := handlers.NewExportHandler(svc.store, svc.engine)
		api.GET("/projects/:id/export", exportLimiter.Middleware(), exportHandler.Export)
		api.GET("/projects/:id/pages/:pageId/preview", exportHandler.Preview)

		// Reads
		projectHandler := handlers.NewProjectHandler(svc.store, svc.sessions)
		pageHandler := handlers.NewPageHandler(svc.store, svc.sessions)
		sessionHandler := handlers.NewSessionHandler(svc.sessions)
		api.GET("/projects", projectHandler.List)
		api.GET("/projects/:id", projectHandler.GetByID)
		api.GET("/projects/:id/pages", pageHandler.List)
		api.GET("/projects/:id/session", sessionHandler.State)

		// Writes (audited)
		writes := api.Group("", middleware.AuditLog())
		{
			writes.PUT("/me/preferences", preferenceHandler.Update)

			writes.POST("/projects", projectHandler.Create)
			writes.PUT("/projects/:id", projectHandler.Update)
			writes.DELETE("/projects/:id", projectHandler.Delete)
			writes.POST("/projects/:id/save", projectHandler.Save)

			writes.POST("/projects/:id/pages", pageHandler.Create)
			writes.PUT("/projects/:id/pages/:pageId", pageHandler.Rename)
			writes.DELETE("/projects/:id/pages/:pageId", pageHandler.Delete)
			writes.POST("/projects/:id/pages/:pageId/homepage", pageHandler.SetHomepage)
			writes.PUT("/projects/:id/pages/:pageId/meta", pageHandler.UpdateMeta)

			writes.POST("/projects/:id/session/page", sessionHandler.SelectPage)
			writes.POST("/projects/:id/session/select", sessionHandler.Select)
			writes.POST("/projects/:id/session/components", sessionHandler.AddComponent)
			writes.PATCH("/projects/:id/session/components/:componentId", sessionHandler.UpdateComponent)
			writes.DELETE("/projects/:id/session/components/:componentId", sessionHandler.DeleteComponent)
		}
	}
}
