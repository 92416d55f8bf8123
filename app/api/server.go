package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// NewServer creates a new HTTP engine with all routes configured
func NewServer(handler *Handler, apiAccessKey string) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		Formatter: func(param gin.LogFormatterParams) string {
			return fmt.Sprintf("%s - [%s] \"%s %s %s %d %s \"%s\" %s\"\n",
				param.ClientIP,
				param.TimeStamp.Format(time.RFC3339),
				param.Method,
				param.Path,
				param.Request.Proto,
				param.StatusCode,
				param.Latency,
				param.Request.UserAgent(),
				param.ErrorMessage,
			)
		},
		SkipPaths: []string{"/health"},
	}))

	r.Use(gin.Recovery())

	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization, X-API-Key")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	setupRoutes(r, handler, apiAccessKey)

	return r
}

func setupRoutes(r *gin.Engine, handler *Handler, apiAccessKey string) {
	r.GET("/health", handler.GetHealth)

	api := r.Group("/api")
	{
		api.GET("/front", handler.GetFront)
		api.GET("/stories", handler.GetStories)
		api.GET("/briefing", handler.GetBriefing)
		api.GET("/related", handler.GetRelated)
		api.GET("/trending", handler.GetTrending)
		api.GET("/saved", handler.GetSaved)
		api.GET("/history", handler.GetHistory)
		api.GET("/progress", handler.GetProgress)
		api.GET("/outlets", handler.GetOutlets)
		api.GET("/settings", handler.GetSettings)
	}

	write := api.Group("")
	if apiAccessKey != "" {
		write.Use(authMiddleware(apiAccessKey))
		slog.Info("Write endpoints require authentication")
	} else {
		slog.Info("Write endpoints are open (API_ACCESS_KEY not set)")
	}
	{
		write.POST("/refresh", handler.PostRefresh)
		write.POST("/read", handler.PostRead)
		write.POST("/bookmarks", handler.PostBookmark)
		write.PUT("/settings", handler.PutSettings)
		write.POST("/digest", handler.PostDigest)
	}

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service":     "News Hub",
			"version":     handler.version,
			"description": "News aggregation with classification, briefing and reading progress",
			"endpoints": map[string]string{
				"health":   "/health",
				"front":    "/api/front",
				"stories":  "/api/stories?category=<category>",
				"briefing": "/api/briefing",
				"related":  "/api/related?url=<story-url>",
				"trending": "/api/trending",
				"saved":    "/api/saved",
				"history":  "/api/history",
				"progress": "/api/progress",
				"outlets":  "/api/outlets",
				"settings": "/api/settings (GET, PUT)",
				"refresh":  "/api/refresh (POST)",
				"read":     "/api/read (POST)",
				"bookmark": "/api/bookmarks (POST)",
				"digest":   "/api/digest (POST)",
			},
			"api_status": map[string]interface{}{
				"auth_required": apiAccessKey != "",
				"header":        "X-API-Key",
			},
		})
	})

	r.GET("/favicon.ico", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
}

// authMiddleware accepts the key from X-API-Key or Authorization: Bearer
func authMiddleware(apiAccessKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		providedKey := c.GetHeader("X-API-Key")

		if providedKey == "" {
			authHeader := c.GetHeader("Authorization")
			if strings.HasPrefix(authHeader, "Bearer ") {
				providedKey = strings.TrimPrefix(authHeader, "Bearer ")
			}
		}

		if providedKey == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "API key required",
				"message": "Provide API key in X-API-Key header or Authorization: Bearer <key>",
			})
			c.Abort()
			return
		}

		if providedKey != apiAccessKey {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "Invalid API key",
				"message": "The provided API key is not valid",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
