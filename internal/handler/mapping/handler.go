package mapping

import (
	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/clinic-api/internal/handler"
	"github.com/jwalitptl/clinic-api/internal/middleware"
	"github.com/jwalitptl/clinic-api/internal/model"
	"github.com/jwalitptl/clinic-api/internal/service/mapping"
	"github.com/jwalitptl/clinic-api/pkg/httputil"
)

type Handler struct {
	service mapping.MappingService
}

func NewHandler(service mapping.MappingService) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the mapping endpoints. GET /:patient_id and
// DELETE /:id share a segment but live in different method trees.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	mappings := r.Group("/mappings")
	{
		mappings.POST("", h.CreateMapping)
		mappings.GET("", h.ListMappings)
		mappings.GET("/:patient_id", h.ListPatientDoctors)
		mappings.DELETE("/:id", h.DeleteMapping)
	}
}

func (h *Handler) CreateMapping(c *gin.Context) {
	var req model.MappingRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	m, err := h.service.Create(c.Request.Context(), middleware.UserID(c), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	httputil.RespondWithCreated(c, "Doctor assigned to patient successfully", gin.H{"mapping": m})
}

func (h *Handler) ListMappings(c *gin.Context) {
	page := handler.PageFromQuery(c)

	mappings, total, err := h.service.List(c.Request.Context(), middleware.UserID(c), page)
	if err != nil {
		_ = c.Error(err)
		return
	}

	httputil.RespondWithSuccess(c, "Patient-doctor mappings retrieved successfully", handler.Paginated("mappings", mappings, page, total))
}

func (h *Handler) ListPatientDoctors(c *gin.Context) {
	patientID, err := handler.ParseID(c, "patient_id", "patient")
	if err != nil {
		_ = c.Error(err)
		return
	}

	result, err := h.service.ListForPatient(c.Request.Context(), middleware.UserID(c), patientID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	httputil.RespondWithSuccess(c, "Patient doctors retrieved successfully", result)
}

func (h *Handler) DeleteMapping(c *gin.Context) {
	id, err := handler.ParseID(c, "id", "mapping")
	if err != nil {
		_ = c.Error(err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), middleware.UserID(c), id); err != nil {
		_ = c.Error(err)
		return
	}

	httputil.RespondWithSuccess(c, "Doctor removed from patient successfully", nil)
}
