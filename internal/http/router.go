package http

import "github.com/gin-gonic/gin"

// NewRouter creates and configures the HTTP router with all endpoints.
// Uses RouterConfig to receive all dependencies, improving testability
// and reducing parameter count.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Create controllers with appropriate interfaces
	health := NewHealthController(cfg.Database, cfg.TaskClient, cfg.Version)
	syncController := NewSyncController(cfg.Engine, cfg.Runs, cfg.Products, cfg.SettingsStore, cfg.TaskClient)
	settingsController := NewWooSyncSettingsController(cfg.SettingsStore, cfg.Scheduler, cfg.Runs)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/api/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// Sync run endpoints
	router.POST("/api/sync/runs", syncController.SubmitRun)
	router.GET("/api/sync/runs", syncController.ListRuns)
	router.GET("/api/sync/runs/:id", syncController.GetRun)
	router.GET("/api/sync/summary", syncController.GetSummary)
	router.POST("/api/sync/enable-products-with-images", syncController.EnableProductsWithImages)
	router.POST("/api/sync/test-connections", syncController.TestConnections)

	// Sync settings endpoints
	router.GET("/api/settings/sync", settingsController.GetSettings)
	router.POST("/api/settings/sync", settingsController.UpdateSettings)
	router.POST("/api/settings/sync/reset", settingsController.ResetSettings)
	router.GET("/api/settings/sync/status", settingsController.GetStatus)
	router.POST("/api/settings/sync/run-now", settingsController.SyncNow)

	return router
}
