package handler

import (
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Aashish23092/ocr-financial-aid/logger"
)

// NewRouter builds the gin engine with health, metrics and the /api/v1 routes
func NewRouter(documents *DocumentHandler, allowedOrigins []string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())
	router.Use(corsMiddleware(allowedOrigins))

	router.MaxMultipartMemory = 32 << 20

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "OCR Financial Aid",
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	documents.RegisterRoutes(router.Group("/api/v1"))
	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Length", "Content-Type", "Accept"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(allowedOrigins) == 0 || slices.Contains(allowedOrigins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = allowedOrigins
	}
	return cors.New(cfg)
}

func requestLogger() gin.HandlerFunc {
	log := logger.GetLogger()
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Infow("Request handled",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start))
	}
}
