package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jengzang/shark-tracker-go/internal/config"
	"github.com/jengzang/shark-tracker-go/internal/handler"
	"github.com/jengzang/shark-tracker-go/internal/middleware"
	"github.com/jengzang/shark-tracker-go/internal/service"
	"github.com/jengzang/shark-tracker-go/pkg/response"
)

// SetupRouter 设置路由
func SetupRouter(cfg *config.Config, dashboard *service.DashboardService) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.Logger())

	// CORS 中间件
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
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
			"message": "Shark Tracker API is running",
			"records": dashboard.Filters().RecordCount,
		})
	})

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c, "Route not found")
	})

	h := handler.NewDashboardHandler(dashboard)

	// API 路由组
	api := r.Group("/api/v1")
	api.Use(middleware.RateLimit(cfg.RateLimit, cfg.RateWindow))
	if cfg.JWTSecret != "" {
		api.Use(middleware.JWTAuth([]byte(cfg.JWTSecret)))
	}
	{
		api.GET("/filters", h.GetFilters)
		api.GET("/sightings", h.GetSightings)
		api.GET("/aggregates/:field", h.GetAggregate)
		api.GET("/overlays", h.GetOverlays)
		api.GET("/heatmap", h.GetHeatmap)
		api.GET("/hotspots", h.GetHotspots)
		api.GET("/summary", h.GetSummary)
		api.GET("/dashboard", h.GetDashboard)
	}

	return r
}
