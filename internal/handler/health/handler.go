package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Pinger is satisfied by *sqlx.DB
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Handler struct {
	db          Pinger
	environment string
}

// NewHandler builds the health endpoints. db may be nil when the process
// runs on the in-memory store.
func NewHandler(db Pinger, environment string) *Handler {
	return &Handler{
		db:          db,
		environment: environment,
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	health := r.Group("/health")
	{
		health.GET("", h.LivenessCheck)
		health.GET("/ready", h.ReadinessCheck)
	}
}

func (h *Handler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"message":     "Healthcare API is running",
		"timestamp":   time.Now().UTC().Format(time.RFC3339Nano),
		"environment": h.environment,
	})
}

func (h *Handler) ReadinessCheck(c *gin.Context) {
	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.PingContext(ctx); err != nil {
			zerolog.Ctx(c.Request.Context()).Error().Err(err).Msg("readiness check failed")
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"success": false,
				"message": "Database connection failed",
			})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "ready",
	})
}
