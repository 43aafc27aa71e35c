package middleware

import (
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORSConfig lists the browser origins allowed to call the API.
type CORSConfig struct {
	AllowOrigins []string
	MaxAge       time.Duration
}

// DefaultCORSOrigins returns the allowed origins for an environment.
func DefaultCORSOrigins(environment string) []string {
	if environment == "production" {
		return []string{"https://yourdomain.com"}
	}
	return []string{"http://localhost:3000", "http://localhost:3001"}
}

func CORS(config CORSConfig) gin.HandlerFunc {
	maxAge := config.MaxAge
	if maxAge <= 0 {
		maxAge = 12 * time.Hour
	}
	cfg := cors.Config{
		AllowOrigins: config.AllowOrigins,
		AllowMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", HeaderXRequestID},
		ExposeHeaders:    []string{"Content-Length", HeaderXRequestID},
		AllowCredentials: true,
		MaxAge:           maxAge,
	}
	if len(cfg.AllowOrigins) == 0 {
		cfg.AllowOrigins = DefaultCORSOrigins("")
	}
	if slices.Contains(cfg.AllowOrigins, "*") {
		cfg.AllowOrigins = nil
		cfg.AllowAllOrigins = true
	}
	return cors.New(cfg)
}
