package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/clinic-api/pkg/validator"
)

// Validation rewrites binding errors pushed by handlers into field level
// validation errors before ErrorHandler renders them. It must be installed
// inside ErrorHandler.
func Validation() gin.HandlerFunc {
	validator.Register()

	return func(c *gin.Context) {
		c.Next()

		for _, e := range c.Errors {
			if e.IsType(gin.ErrorTypeBind) {
				e.Err = validator.Translate(e.Err)
			}
		}
	}
}
