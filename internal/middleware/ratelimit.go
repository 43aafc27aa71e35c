package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/jwalitptl/clinic-api/pkg/httputil"
	"github.com/jwalitptl/clinic-api/pkg/metrics"
	"github.com/jwalitptl/clinic-api/pkg/ratelimit"
)

const msgRateLimited = "Too many requests from this IP, please try again later."

// RateLimit limits requests per client IP. A failing store lets the request
// through.
func RateLimit(store ratelimit.Store, m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		backend := store.Name()
		allowed, err := store.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			zerolog.Ctx(c.Request.Context()).Warn().Err(err).Str("backend", backend).Msg("rate limit check failed")
			c.Next()
			return
		}
		if m != nil {
			m.RateLimitBackend.WithLabelValues(backend).Inc()
		}

		if !allowed {
			if m != nil {
				m.RateLimited.Inc()
			}
			httputil.RespondWithStatus(c, http.StatusTooManyRequests, msgRateLimited)
			return
		}
		c.Next()
	}
}
