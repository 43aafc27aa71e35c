package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const apiVersion = "1.0.0"

// Handler serves the unauthenticated service endpoints
type Handler struct {
	registry *prometheus.Registry
}

// NewHandler creates a new handler instance
func NewHandler(registry *prometheus.Registry) *Handler {
	return &Handler{registry: registry}
}

// Index lists the public endpoints.
func (h *Handler) Index(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Welcome to Healthcare Backend API",
		"version": apiVersion,
		"endpoints": gin.H{
			"auth": gin.H{
				"register": "POST /api/auth/register",
				"login":    "POST /api/auth/login",
			},
			"patients": gin.H{
				"create":  "POST /api/patients",
				"getAll":  "GET /api/patients",
				"getById": "GET /api/patients/:id",
				"update":  "PUT /api/patients/:id",
				"delete":  "DELETE /api/patients/:id",
			},
			"doctors": gin.H{
				"create":  "POST /api/doctors",
				"getAll":  "GET /api/doctors",
				"getById": "GET /api/doctors/:id",
				"update":  "PUT /api/doctors/:id",
				"delete":  "DELETE /api/doctors/:id",
			},
			"mappings": gin.H{
				"create":       "POST /api/mappings",
				"getAll":       "GET /api/mappings",
				"getByPatient": "GET /api/mappings/:patient_id",
				"delete":       "DELETE /api/mappings/:id",
			},
		},
	})
}

func (h *Handler) MetricsHandler() gin.HandlerFunc {
	return gin.WrapH(promhttp.HandlerFor(h.registry, promhttp.HandlerOpts{}))
}
