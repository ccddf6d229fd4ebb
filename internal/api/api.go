// Package api exposes the crawler over HTTP: run triggers, single-site
// rescans, ad-hoc inspection, and stored result reads.
package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/seasalt-intel/webintel/internal/logger"
)

// SetupRouter builds the gin engine with logging, recovery, and CORS
// middleware plus all routes.
func SetupRouter(h *Handler, log logger.Interface) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(log.WithComponent("http")))
	router.Use(cors())

	router.GET("/health", h.Health)

	v1 := router.Group("/api/v1")
	{
		v1.POST("/sync", h.Sync)
		v1.POST("/scan/:code", h.Scan)
		v1.GET("/inspect", h.Inspect)
		v1.GET("/sites", h.Sites)
		v1.GET("/results", h.ListResults)
		v1.GET("/results/:code", h.GetResult)
	}

	return router
}

func requestLogger(log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds())
	}
}

func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
