package doctor

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/clinic-api/internal/handler"
	"github.com/jwalitptl/clinic-api/internal/middleware"
	"github.com/jwalitptl/clinic-api/internal/model"
	"github.com/jwalitptl/clinic-api/internal/service/doctor"
	"github.com/jwalitptl/clinic-api/pkg/httputil"
)

type Handler struct {
	service doctor.DoctorService
}

func NewHandler(service doctor.DoctorService) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	doctors := r.Group("/doctors")
	{
		doctors.POST("", h.CreateDoctor)
		doctors.GET("", h.ListDoctors)
		doctors.GET("/:id", h.GetDoctor)
		doctors.PUT("/:id", h.UpdateDoctor)
		doctors.DELETE("/:id", h.DeleteDoctor)
	}
}

func (h *Handler) CreateDoctor(c *gin.Context) {
	var req model.DoctorRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	d, err := h.service.Create(c.Request.Context(), middleware.UserID(c), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	httputil.RespondWithCreated(c, "Doctor created successfully", gin.H{"doctor": d})
}

func (h *Handler) ListDoctors(c *gin.Context) {
	page := handler.PageFromQuery(c)
	filter := model.DoctorFilter{Specialization: strings.TrimSpace(c.Query("specialization"))}

	doctors, total, err := h.service.List(c.Request.Context(), filter, page)
	if err != nil {
		_ = c.Error(err)
		return
	}

	httputil.RespondWithSuccess(c, "Doctors retrieved successfully", handler.Paginated("doctors", doctors, page, total))
}

func (h *Handler) GetDoctor(c *gin.Context) {
	id, err := handler.ParseID(c, "id", "doctor")
	if err != nil {
		_ = c.Error(err)
		return
	}

	d, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	httputil.RespondWithSuccess(c, "Doctor retrieved successfully", gin.H{"doctor": d})
}

func (h *Handler) UpdateDoctor(c *gin.Context) {
	id, err := handler.ParseID(c, "id", "doctor")
	if err != nil {
		_ = c.Error(err)
		return
	}

	var req model.DoctorRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	d, err := h.service.Update(c.Request.Context(), middleware.UserID(c), id, &req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	httputil.RespondWithSuccess(c, "Doctor updated successfully", gin.H{"doctor": d})
}

func (h *Handler) DeleteDoctor(c *gin.Context) {
	id, err := handler.ParseID(c, "id", "doctor")
	if err != nil {
		_ = c.Error(err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), middleware.UserID(c), id); err != nil {
		_ = c.Error(err)
		return
	}

	httputil.RespondWithSuccess(c, "Doctor deleted successfully", nil)
}
