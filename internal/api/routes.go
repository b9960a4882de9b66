package api

import (
	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/formsight/internal/telemetry"
)

// SetupRoutes configures all API routes.
func SetupRoutes(router *gin.Engine, handler *Handler, tp *telemetry.Provider) {
	// Health and readiness checks
	router.GET("/health", handler.HealthCheck)
	router.GET("/ready", handler.ReadyCheck)

	// Prometheus metrics
	if tp != nil {
		router.GET("/metrics", gin.WrapH(tp.Handler()))
	}

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Classification endpoints
		classify := v1.Group("/classify")
		{
			classify.POST("", handler.Classify)                // POST /api/v1/classify
			classify.POST("/batch", handler.ClassifyBatch)     // POST /api/v1/classify/batch
			classify.POST("/url", handler.ClassifyURL)         // POST /api/v1/classify/url
			classify.GET("/:page_id", handler.GetResult)       // GET /api/v1/classify/:page_id
			classify.DELETE("/:page_id", handler.DeleteResult) // DELETE /api/v1/classify/:page_id
		}

		// Statistics endpoints
		stats := v1.Group("/stats")
		{
			stats.GET("", handler.GetStats)                           // GET /api/v1/stats
			stats.GET("/jurisdictions", handler.GetJurisdictionStats) // GET /api/v1/stats/jurisdictions
			stats.GET("/recent", handler.GetRecent)                   // GET /api/v1/stats/recent
		}

		// Reference data endpoints
		know := v1.Group("/knowledge")
		{
			know.GET("/entity-types", handler.EntityTypes)      // GET /api/v1/knowledge/entity-types
			know.GET("/states", handler.States)                 // GET /api/v1/knowledge/states
			know.GET("/states/:code/forms", handler.StateForms) // GET /api/v1/knowledge/states/:code/forms
		}
	}
}
