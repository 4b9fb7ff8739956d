package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/route-history-backend/internal/config"
	"github.com/jengzang/route-history-backend/internal/handler"
	"github.com/jengzang/route-history-backend/internal/metrics"
	"github.com/jengzang/route-history-backend/internal/middleware"
)

// Handlers groups the HTTP handlers mounted by the router
type Handlers struct {
	Trips    *handler.TripHandler
	Analysis *handler.AnalysisHandler
}

// SetupRouter 设置路由
func SetupRouter(cfg *config.Config, h Handlers, m *metrics.Collector, limiter *middleware.RateLimiter) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.Logger())

	// CORS 中间件
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Route history API is running",
		})
	})

	if m != nil {
		r.GET("/metrics", gin.WrapH(m.Handler()))
	}

	// API 路由组
	api := r.Group("/api/v1")
	if limiter != nil {
		api.Use(middleware.RateLimit(limiter))
	}
	if cfg.JWTSecret != "" {
		api.Use(middleware.Auth(cfg.JWTSecret))
	}
	{
		trips := api.Group("/trips")
		{
			trips.GET("", h.Trips.GetTrips)
			trips.POST("", h.Trips.CreateTrip)
			trips.GET("/compare", h.Analysis.CompareTrips)
			trips.GET("/:id", h.Trips.GetTripByID)
			trips.GET("/:id/points", h.Trips.GetTrackPoints)

			trips.GET("/:id/segments", h.Analysis.GetSegments)
			trips.GET("/:id/stops", h.Analysis.GetStops)
			trips.GET("/:id/deviations", h.Analysis.GetDeviations)
			trips.GET("/:id/stats", h.Analysis.GetStats)
			trips.GET("/:id/analysis", h.Analysis.GetAnalysis)
			trips.GET("/:id/geojson", h.Analysis.GetGeoJSON)
		}

		api.POST("/analysis", h.Analysis.AnalyzeInline)
	}

	return r
}
