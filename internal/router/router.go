package router

import (
	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/clinic-api/internal/handler"
	authHandler "github.com/jwalitptl/clinic-api/internal/handler/auth"
	doctorHandler "github.com/jwalitptl/clinic-api/internal/handler/doctor"
	"github.com/jwalitptl/clinic-api/internal/handler/health"
	mappingHandler "github.com/jwalitptl/clinic-api/internal/handler/mapping"
	patientHandler "github.com/jwalitptl/clinic-api/internal/handler/patient"
	"github.com/jwalitptl/clinic-api/internal/middleware"
	"github.com/jwalitptl/clinic-api/internal/repository"
	authService "github.com/jwalitptl/clinic-api/internal/service/auth"
	doctorService "github.com/jwalitptl/clinic-api/internal/service/doctor"
	mappingService "github.com/jwalitptl/clinic-api/internal/service/mapping"
	patientService "github.com/jwalitptl/clinic-api/internal/service/patient"
	"github.com/jwalitptl/clinic-api/pkg/auth"
	"github.com/jwalitptl/clinic-api/pkg/metrics"
	"github.com/jwalitptl/clinic-api/pkg/ratelimit"
	"github.com/jwalitptl/clinic-api/pkg/security"
)

type Handler interface {
	RegisterRoutes(*gin.RouterGroup)
}

type RouterConfig struct {
	Environment  string
	CORSOrigins  []string
	MaxBodyBytes int64
	// Security defaults to middleware.DefaultSecurityConfig when nil
	Security *middleware.SecurityConfig
}

// Dependencies are the process level resources the router is built on.
// DB may be nil when Store is in memory.
type Dependencies struct {
	Store       *repository.Store
	DB          health.Pinger
	JWT         auth.JWTService
	Hasher      security.PasswordHasher
	RateLimiter ratelimit.Store
	Metrics     *metrics.Metrics
}

type Router struct {
	engine   *gin.Engine
	auth     *middleware.AuthMiddleware
	h        *handler.Handler
	healthH  Handler
	authH    Handler
	patientH Handler
	doctorH  Handler
	mappingH Handler
	limiter  ratelimit.Store
	metrics  *metrics.Metrics
}

func NewRouter(config RouterConfig, deps Dependencies) *Router {
	engine := gin.New() // Use New() instead of Default() for more control
	engine.HandleMethodNotAllowed = false

	authSvc := authService.NewService(deps.Store.Users, deps.Hasher, deps.JWT)
	patientSvc := patientService.NewService(deps.Store.Patients)
	doctorSvc := doctorService.NewService(deps.Store.Doctors)
	mappingSvc := mappingService.NewService(deps.Store.Patients, deps.Store.Doctors, deps.Store.Mappings)

	r := &Router{
		engine:   engine,
		auth:     middleware.NewAuthMiddleware(authSvc),
		h:        handler.NewHandler(deps.Metrics.Registry),
		healthH:  health.NewHandler(deps.DB, config.Environment),
		authH:    authHandler.NewHandler(authSvc),
		patientH: patientHandler.NewHandler(patientSvc),
		doctorH:  doctorHandler.NewHandler(doctorSvc),
		mappingH: mappingHandler.NewHandler(mappingSvc),
		limiter:  deps.RateLimiter,
		metrics:  deps.Metrics,
	}

	origins := config.CORSOrigins
	if len(origins) == 0 {
		origins = middleware.DefaultCORSOrigins(config.Environment)
	}

	security := middleware.DefaultSecurityConfig()
	if config.Security != nil {
		security = *config.Security
	}

	// Add core middlewares
	engine.Use(
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Recovery(),
		middleware.Metrics(r.metrics),
		middleware.SecurityHeaders(security),
		middleware.CORS(middleware.CORSConfig{AllowOrigins: origins}),
		middleware.BodyLimit(config.MaxBodyBytes),
		middleware.ErrorHandler(r.metrics),
		middleware.Validation(),
	)

	r.setup()
	return r
}

func (r *Router) setup() {
	r.engine.GET("/", r.h.Index)
	r.engine.GET("/metrics", r.h.MetricsHandler())
	r.healthH.RegisterRoutes(&r.engine.RouterGroup)

	api := r.engine.Group("/api")
	api.Use(middleware.RateLimit(r.limiter, r.metrics))

	// Public routes
	r.authH.RegisterRoutes(api)

	// Protected routes
	protected := api.Group("")
	protected.Use(r.auth.Authenticate())
	r.patientH.RegisterRoutes(protected)
	r.doctorH.RegisterRoutes(protected)
	r.mappingH.RegisterRoutes(protected)

	r.engine.NoRoute(middleware.NotFound())
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
