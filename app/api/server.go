package api

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// NewServer creates a new HTTP server with all routes configured
func NewServer(handler *Handler, apiAccessKey string) *gin.Engine {
	// Set Gin mode (can be controlled via GIN_MODE environment variable)
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// Middleware
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
	}))

	r.Use(gin.Recovery())

	// CORS middleware for API endpoints
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, X-API-Key, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Routes
	setupRoutes(r, handler, apiAccessKey)

	return r
}

// setupRoutes configures all the application routes
func setupRoutes(r *gin.Engine, handler *Handler, apiAccessKey string) {
	// Health endpoint stays open so probes work without credentials
	r.GET("/health", handler.GetHealth)

	routes := gin.IRoutes(r)
	if apiAccessKey != "" {
		group := r.Group("/")
		group.Use(authMiddleware(apiAccessKey))
		routes = group
		log.Printf("API authentication enabled")
	} else {
		log.Printf("API authentication disabled (API_ACCESS_KEY not set)")
	}

	// Generation pipeline
	routes.POST("/generate", handler.GenerateDraft)
	routes.POST("/research", handler.RunResearch)
	routes.POST("/verify", handler.VerifyContent)

	// Draft lifecycle
	routes.GET("/drafts", handler.ListDrafts)
	routes.GET("/drafts/:id", handler.GetDraft)
	routes.POST("/drafts/:id/approve", handler.ApproveDraft)
	routes.POST("/drafts/:id/reject", handler.RejectDraft)
	routes.PUT("/drafts/:id/content", handler.UpdateDraftContent)

	// Publishing
	routes.POST("/publish", handler.PublishDraft)
	routes.POST("/publish/direct", handler.PublishDirect)
	routes.GET("/queue", handler.GetQueue)
	routes.GET("/queue/:id", handler.GetQueueItem)
	routes.DELETE("/queue/:id", handler.CancelQueueItem)
	routes.GET("/accounts", handler.ListAccounts)

	// Topic discovery
	routes.GET("/topics/suggest", handler.SuggestTopics)

	// Root endpoint with basic information
	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"service":     "DraftDeck",
			"version":     handler.version,
			"description": "Content draft pipeline and publishing orchestrator",
			"endpoints": map[string]string{
				"generate": "/generate (POST)",
				"research": "/research (POST)",
				"verify":   "/verify (POST)",
				"drafts":   "/drafts",
				"publish":  "/publish (POST)",
				"queue":    "/queue",
				"accounts": "/accounts",
				"topics":   "/topics/suggest",
				"health":   "/health",
			},
			"api_status": map[string]interface{}{
				"auth_required": apiAccessKey != "",
				"header":        "X-API-Key",
			},
		})
	})

	// Favicon handler (return 204 to avoid 404s)
	r.GET("/favicon.ico", func(c *gin.Context) {
		c.Status(204)
	})
}

// authMiddleware creates authentication middleware for API endpoints
func authMiddleware(apiAccessKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		providedKey := c.GetHeader("X-API-Key")

		// Also check Authorization header with Bearer prefix
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
