package middleware

import (
	"log/slog"
	"time"

	"bookshelf/internal/logger"

	"github.com/gin-gonic/gin"
)

// AccessLog writes one line per request once the handler chain has finished
func AccessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		status := c.Writer.Status()
		level := slog.LevelInfo
		switch {
		case status >= 500:
			level = slog.LevelError
		case status >= 400:
			level = slog.LevelWarn
		}

		attrs := []any{
			"method", c.Request.Method,
			"path", path,
			"status", status,
			"duration_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, "errors", c.Errors.String())
		}
		logger.FromContext(c.Request.Context()).Log(c.Request.Context(), level, "http_request", attrs...)
	}
}
