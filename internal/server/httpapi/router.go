package httpapi

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/devesh1231/user-account-service/internal/logging"
)

// requestLogger logs one line per request: method, path, status, latency.
func requestLogger(logger logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info(c.Request.Context(), "request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

// NewRouter wires the endpoint set into a gin engine.
func NewRouter(h *Handlers, logger logging.Logger) *gin.Engine {
	router := gin.New()
	router.Use(requestLogger(logger), gin.Recovery())

	router.GET("/ping", h.Ping)

	users := router.Group("/users")
	{
		users.POST("/register", h.Register)
		users.POST("/login", h.Login)
		users.GET("/details", h.Details)
		users.PUT("/update", h.Update)
		users.DELETE("/delete", h.Delete)
		users.POST("/logout", h.Logout)
	}

	return router
}
