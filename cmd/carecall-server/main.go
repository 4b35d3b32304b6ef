package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/carecall/carecall/internal/config"
	"github.com/carecall/carecall/internal/domain/call"
	"github.com/carecall/carecall/internal/domain/caregiver"
	"github.com/carecall/carecall/internal/domain/credit"
	"github.com/carecall/carecall/internal/domain/medication"
	"github.com/carecall/carecall/internal/domain/patient"
	"github.com/carecall/carecall/internal/domain/setup"
	"github.com/carecall/carecall/internal/domain/summary"
	"github.com/carecall/carecall/internal/platform/auth"
	"github.com/carecall/carecall/internal/platform/cache"
	"github.com/carecall/carecall/internal/platform/db"
	"github.com/carecall/carecall/internal/platform/llm"
	"github.com/carecall/carecall/internal/platform/middleware"
)

// caregiverResolver adapts the caregiver service to the resolver interface
// the patient and credit handlers need, avoiding circular imports.
type caregiverResolver struct {
	svc *caregiver.Service
}

func (r *caregiverResolver) ResolveCaregiverID(ctx context.Context, authUserID string) (uuid.UUID, error) {
	cg, err := r.svc.GetByAuthUserID(ctx, authUserID)
	if err != nil {
		return uuid.Nil, err
	}
	return cg.ID, nil
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "carecall-server",
		Short: "Medication reminder call API server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			count, err := migrator.Up(ctx)
			if err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}

			fmt.Printf("Applied %d migration(s) successfully.\n", count)
			return nil
		},
	}
	upCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(upCmd)

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			statuses, err := migrator.Status(ctx)
			if err != nil {
				return fmt.Errorf("failed to get migration status: %w", err)
			}

			fmt.Printf("%-10s %-40s %-10s %s\n", "VERSION", "NAME", "STATUS", "APPLIED AT")
			for _, s := range statuses {
				status := "pending"
				appliedAt := ""
				if s.Applied {
					status = "applied"
					if s.AppliedAt != nil {
						appliedAt = s.AppliedAt.Format("2006-01-02 15:04:05")
					}
				}
				fmt.Printf("%-10d %-40s %-10s %s\n", s.Version, s.Name, status, appliedAt)
			}
			return nil
		},
	}
	statusCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(statusCmd)

	return cmd
}

func runServer() error {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid config")
	}

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	logger.Info().Msg("connected to database")

	// Redis is optional; without it balance reads go straight to Postgres.
	var balanceCache *cache.Cache
	if cfg.RedisURL != "" {
		balanceCache, err = cache.New(ctx, cfg.RedisURL)
		if err != nil {
			logger.Warn().Err(err).Msg("redis unavailable, running without cache")
			balanceCache = nil
		} else {
			defer balanceCache.Close()
			logger.Info().Msg("connected to redis")
		}
	}

	llmClient := llm.NewClient(cfg.AnthropicAPIKey, cfg.AnthropicModel, logger)

	// Repositories and services
	caregiverSvc := caregiver.NewService(caregiver.NewRepo(pool))
	patientSvc := patient.NewService(patient.NewRepo(pool))
	medicationSvc := medication.NewService(medication.NewRepo(pool))
	callSvc := call.NewService(call.NewRepo(pool))
	summarySvc := summary.NewService(summary.NewRepo(pool), callSvc, llmClient)
	creditSvc := credit.NewService(credit.NewRepo(pool), balanceCache)
	setupSvc := setup.NewService(caregiverSvc, patientSvc, medicationSvc, callSvc, cfg.DefaultTimezone)

	resolver := &caregiverResolver{svc: caregiverSvc}

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	}))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": "0.1.0",
		})
	})
	e.GET("/health/db", db.HealthHandler(pool))

	// Caregiver dashboard API, JWT-protected
	jwtCfg := auth.JWTConfig{
		Issuer:   cfg.AuthIssuer,
		Audience: cfg.AuthAudience,
		JWKSURL:  cfg.AuthJWKSURL,
	}
	if cfg.IsDev() && cfg.AuthSigningKey != "" {
		jwtCfg.SigningKey = []byte(cfg.AuthSigningKey)
	}

	apiV1 := e.Group("/api/v1")
	rateLimitCfg := middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		BurstSize:         cfg.RateLimitBurst,
	}
	if rateLimitCfg.RequestsPerSecond <= 0 {
		rateLimitCfg = middleware.DefaultRateLimitConfig()
	}
	apiV1.Use(middleware.RateLimit(rateLimitCfg))
	apiV1.Use(auth.JWTMiddleware(jwtCfg))

	caregiver.NewHandler(caregiverSvc).RegisterRoutes(apiV1)
	patient.NewHandler(patientSvc, resolver).RegisterRoutes(apiV1)
	medication.NewHandler(medicationSvc).RegisterRoutes(apiV1)
	call.NewHandler(callSvc).RegisterRoutes(apiV1)
	credit.NewHandler(creditSvc, resolver).RegisterRoutes(apiV1)
	setup.NewHandler(setupSvc).RegisterRoutes(apiV1)

	summaryHandler := summary.NewHandler(summarySvc)
	summaryHandler.RegisterRoutes(apiV1)

	// Service-to-service API for the call pipeline, shared-key protected
	internal := e.Group("/internal")
	internal.Use(auth.ServiceKey(cfg.ServiceKey))
	summaryHandler.RegisterInternal(internal)

	// Start with graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("forced shutdown")
		return err
	}
	return nil
}
