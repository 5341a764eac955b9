package webhook

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// NewRouter assembles the gin engine: recovery, permissive CORS, liveness
// probes and the webhook route (plus the historical route name the upstream
// platform was originally configured with).
func NewRouter(h *Handler, logger zerolog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()
	engine.Use(recovery(logger))
	engine.Use(cors())

	started := time.Now()

	engine.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Survey Notification Webhook Running")
	})
	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"uptime": time.Since(started).Round(time.Second).String(),
		})
	})

	engine.POST("/webhook", h.HandleSubmission)
	engine.POST("/arcgis-webhook", h.HandleSubmission)

	return engine
}

// recovery converts any panic in the pipeline into a generic 500 response so
// a single hostile payload cannot take the process down.
func recovery(logger zerolog.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Error().Interface("panic", recovered).Str("path", c.FullPath()).Msg("recovered from handler panic")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	})
}

// cors mirrors the permissive cross-origin policy of the original deployment;
// the webhook producer posts from another origin.
func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
