package http

import (
	"github.com/gin-gonic/gin"

	"github.com/shopsense/backend/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))
	router.Use(RateLimitMiddleware(cfg.RateLimit.PerIP, cfg.RateLimit.Burst))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		ai := v1.Group("/ai")
		{
			ai.POST("/search", handler.Search)
			ai.POST("/analyze", handler.Analyze)
			ai.GET("/recommendations/:userId", handler.Recommendations)
			ai.POST("/users/:userId/views", handler.RecordView)

			products := ai.Group("/products")
			{
				products.POST("/search", handler.FilteredSearch)
				products.POST("/compare", handler.Compare)
				products.GET("/:id", handler.ProductDetails)
			}

			ai.GET("/admin/stats", handler.Stats)
		}
	}

	return router
}
