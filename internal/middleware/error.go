package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	apperrors "github.com/jwalitptl/clinic-api/pkg/errors"
	"github.com/jwalitptl/clinic-api/pkg/httputil"
	"github.com/jwalitptl/clinic-api/pkg/metrics"
)

// ErrorHandler renders the last error pushed with c.Error as a failure
// envelope. Internal causes are logged, never returned.
func ErrorHandler(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// Only handle errors if they exist
		if len(c.Errors) == 0 {
			return
		}

		lastErr := c.Errors.Last().Err
		appErr := apperrors.As(lastErr)

		logger := zerolog.Ctx(c.Request.Context())
		event := logger.Debug()
		if appErr.StatusCode() >= 500 {
			event = logger.Error()
		}
		event.
			Err(lastErr).
			Str("kind", appErr.Kind.String()).
			Str("path", c.Request.URL.Path).
			Str("method", c.Request.Method).
			Msg("Request error")

		if m != nil {
			m.ErrorTotal.WithLabelValues(c.Request.Method, c.FullPath(), appErr.Kind.String()).Inc()
		}

		if c.Writer.Written() {
			return
		}
		httputil.RespondWithError(c, lastErr)
	}
}

// NotFound answers unmatched routes and methods.
func NotFound() gin.HandlerFunc {
	return func(c *gin.Context) {
		httputil.RespondWithError(c, apperrors.NotFound("Route not found"))
	}
}
