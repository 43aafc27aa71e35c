package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Logger attaches a request scoped logger to the request context and logs
// each request once it completes. Bodies are never logged.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		logger := log.With().
			Str("request_id", c.GetString(ContextRequestID)).
			Logger()
		c.Request = c.Request.WithContext(logger.WithContext(c.Request.Context()))

		// Process request
		c.Next()

		latency := time.Since(start)
		statusCode := c.Writer.Status()
		if raw != "" {
			path = path + "?" + raw
		}

		event := logger.Info()
		msg := "Request processed"
		switch {
		case statusCode >= 500:
			event = logger.Error()
			msg = "Server error"
		case statusCode >= 400:
			event = logger.Warn()
			msg = "Client error"
		}

		if uid := c.GetInt64(ContextUserID); uid > 0 {
			event = event.Int64("user_id", uid)
		}
		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Str("ip", c.ClientIP()).
			Int("status", statusCode).
			Dur("duration", latency).
			Str("user_agent", c.Request.UserAgent()).
			Msg(msg)
	}
}
