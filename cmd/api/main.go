package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/jwalitptl/clinic-api/internal/config"
	"github.com/jwalitptl/clinic-api/internal/repository"
	"github.com/jwalitptl/clinic-api/internal/repository/memory"
	"github.com/jwalitptl/clinic-api/internal/repository/postgres"
	"github.com/jwalitptl/clinic-api/internal/router"
	"github.com/jwalitptl/clinic-api/pkg/auth"
	"github.com/jwalitptl/clinic-api/pkg/logger"
	"github.com/jwalitptl/clinic-api/pkg/metrics"
	"github.com/jwalitptl/clinic-api/pkg/ratelimit"
	"github.com/jwalitptl/clinic-api/pkg/security"
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:           "clinic-api",
		Short:         "Healthcare clinic REST API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a config file (default ./config.yml or ./config/config.yml)")

	rootCmd.AddCommand(serveCmd(&configPath))
	rootCmd.AddCommand(migrateCmd(&configPath))

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

func serveCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load(*configPath)
			if err != nil {
				return err
			}
			return runServer(cmd.Context(), cfg)
		},
	}
}

func migrateCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load(*configPath)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			db, err := postgres.NewDB(ctx, cfg.Database)
			if err != nil {
				return err
			}
			defer db.Close()

			return postgres.Migrate(ctx, db)
		},
	}
}

func load(path string) (*config.Config, error) {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, err
	}
	logger.Setup(logger.Config{
		Level:       cfg.Log.Level,
		Environment: cfg.Environment,
	})
	return cfg, nil
}

func runServer(ctx context.Context, cfg *config.Config) error {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	if cfg.JWT.Secret == "" {
		log.Warn().Msg("JWT_SECRET is not set; register and login will fail")
	}

	var (
		store *repository.Store
		db    *sqlx.DB
		err   error
	)
	switch cfg.Store {
	case config.StoreMemory:
		log.Warn().Msg("using in-memory store; data is lost on exit")
		store = memory.NewStore()
	default:
		db, err = postgres.NewDB(ctx, cfg.Database)
		if err != nil {
			return err
		}
		defer db.Close()
		store = postgres.NewStore(db)
	}

	limiter, closeLimiter := newRateLimiter(ctx, cfg)
	defer closeLimiter()

	deps := router.Dependencies{
		Store:       store,
		JWT:         auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.Expiry),
		Hasher:      security.NewBcryptHasher(security.DefaultCost),
		RateLimiter: limiter,
		Metrics:     metrics.New("clinic_api"),
	}
	if db != nil {
		deps.DB = db
	}

	r := router.NewRouter(router.RouterConfig{
		Environment:  cfg.Environment,
		CORSOrigins:  cfg.CORS.Origins,
		MaxBodyBytes: cfg.Server.MaxBodyBytes,
	}, deps)

	// Create server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Int("port", cfg.Server.Port).
			Str("environment", cfg.Environment).
			Str("store", cfg.Store).
			Msg("Healthcare API server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return fmt.Errorf("failed to start server: %w", err)
	case <-quit:
	}
	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info().Msg("server exited")
	return nil
}

// newRateLimiter uses Redis when configured so every instance shares one
// budget, falling back to per-process limits while Redis is unavailable.
func newRateLimiter(ctx context.Context, cfg *config.Config) (ratelimit.Store, func()) {
	limits := ratelimit.Config{
		Max:    cfg.RateLimit.MaxRequests,
		Window: cfg.RateLimit.Window(),
	}
	local := ratelimit.NewMemoryStore(limits)
	if cfg.Redis.URL == "" {
		return local, func() {}
	}

	client, err := ratelimit.NewRedisClient(ctx, cfg.Redis.URL)
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, rate limiting per instance")
		return local, func() {}
	}
	return ratelimit.NewFallbackStore(ratelimit.NewRedisStore(client, limits), local), func() {
		if err := client.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close redis client")
		}
	}
}
