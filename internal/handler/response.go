package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/clinic-api/internal/model"
	"github.com/jwalitptl/clinic-api/pkg/httputil"
)

// Paginated builds the data object of a list response: the items under key
// plus the pagination block.
func Paginated(key string, items interface{}, page model.Page, total int) gin.H {
	return gin.H{
		key:          items,
		"pagination": httputil.NewPagination(page.Page, page.Limit, total),
	}
}
