package httputil

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/jwalitptl/clinic-api/pkg/errors"
)

// Response wraps all API responses
type Response struct {
	Success bool                   `json:"success"`
	Message string                 `json:"message"`
	Data    interface{}            `json:"data,omitempty"`
	Errors  []apperrors.FieldError `json:"errors,omitempty"`
}

// Pagination represents pagination metadata
type Pagination struct {
	CurrentPage int  `json:"currentPage"`
	TotalPages  int  `json:"totalPages"`
	TotalCount  int  `json:"totalCount"`
	HasNext     bool `json:"hasNext"`
	HasPrev     bool `json:"hasPrev"`
}

// NewPagination derives the page metadata for total matching records.
func NewPagination(page, limit, total int) Pagination {
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return Pagination{
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalCount:  total,
		HasNext:     page*limit < total,
		HasPrev:     page > 1,
	}
}

// RespondWithSuccess sends a 200 success envelope
func RespondWithSuccess(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// RespondWithCreated sends a 201 success envelope
func RespondWithCreated(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// RespondWithError sends an error envelope. Internal details never reach
// the client.
func RespondWithError(c *gin.Context, err error) {
	appErr := apperrors.As(err)

	message := appErr.Message
	if appErr.Kind == apperrors.KindInternal {
		message = apperrors.InternalMessage
	}

	resp := Response{
		Success: false,
		Message: message,
	}

	var vErr *apperrors.ValidationError
	if errors.As(err, &vErr) {
		resp.Errors = vErr.Fields
	}

	c.AbortWithStatusJSON(appErr.StatusCode(), resp)
}

// RespondWithStatus sends a failure envelope with an explicit status.
func RespondWithStatus(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, Response{
		Success: false,
		Message: message,
	})
}
