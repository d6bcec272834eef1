// Package http provides the HTTP server for operational endpoints.
package http

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
)

// CustomLoggerMiddleware logs HTTP requests using the application's structured logger.
func CustomLoggerMiddleware(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		logger.Info("http request",
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", c.Writer.Status()),
			slog.Duration("duration", time.Since(start)),
			slog.String("client_ip", c.ClientIP()),
		)
	}
}
