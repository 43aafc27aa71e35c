package handler

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/clinic-api/internal/model"
	apperrors "github.com/jwalitptl/clinic-api/pkg/errors"
)

// ParseID reads a positive integer path parameter. label names the entity in
// the error message.
func ParseID(c *gin.Context, param, label string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(param), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.Validation(fmt.Sprintf("Invalid %s ID", label))
	}
	return id, nil
}

// PageFromQuery reads page and limit. Missing or malformed values fall back
// to the defaults.
func PageFromQuery(c *gin.Context) model.Page {
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))
	return model.NewPage(page, limit)
}

// BindJSON decodes and validates the body into obj. On failure the error is
// pushed for the validation middleware and false is returned.
func BindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		_ = c.Error(err).SetType(gin.ErrorTypeBind)
		return false
	}
	return true
}
