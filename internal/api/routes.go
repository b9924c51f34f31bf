package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all API routes.
func SetupRoutes(router *gin.Engine) {
	router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	router.GET("/health", HandleHealth)
	router.GET("/info", HandleInfo)
	router.GET("/", HandleInfo)

	v1 := router.Group("/api/v1")
	{
		v1.POST("/decompress", HandleDecompress)
		v1.GET("/info", HandleInfo)
		v1.GET("/health", HandleHealth)
	}

	// Legacy route for backward compatibility.
	router.POST("/decompress", HandleDecompress)
}
