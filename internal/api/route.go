package api

import (
	"SimPulse/internal/api/middleware"
	"SimPulse/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"Code":    200,
				"Message": "pong",
				"Data":    nil,
			})
		})

		metricsGroup := apiGroup.Group("/metrics")
		{
			metricsGroup.GET("/overtime", group.MetricsHandler.GetMetricsOverTime)
			metricsGroup.GET("/upload/:upload_id", group.MetricsHandler.GetAggregatedMetrics)
			metricsGroup.GET("/snapshots/stats", group.MetricsHandler.GetSnapshotStats)
		}

		dashboardGroup := apiGroup.Group("/dashboard")
		{
			dashboardGroup.GET("/stats", group.DashboardHandler.GetStats)
			dashboardGroup.GET("/uploads/recent", group.DashboardHandler.GetRecentUploads)
			dashboardGroup.GET("/videos/top", group.DashboardHandler.GetTopVideos)
			dashboardGroup.GET("/platforms/comparison", group.DashboardHandler.GetPlatformComparison)
		}

		simGroup := apiGroup.Group("/simulations")
		{
			simGroup.POST("", group.SimulationHandler.CreateSimulation)
			simGroup.GET("", group.SimulationHandler.ListSimulations)
			simGroup.GET("/:id", group.SimulationHandler.GetSimulation)
		}

		taskGroup := apiGroup.Group("/tasks")
		{
			taskGroup.POST("/trigger", group.TaskHandler.TriggerTask)
			taskGroup.GET("/status", group.TaskHandler.GetTaskStatus)
		}
	}

	return r
}
