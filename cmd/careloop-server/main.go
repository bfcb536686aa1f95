package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/careloop/careloop/internal/config"
	"github.com/careloop/careloop/internal/domain/account"
	"github.com/careloop/careloop/internal/domain/analytics"
	"github.com/careloop/careloop/internal/domain/doctor"
	"github.com/careloop/careloop/internal/domain/document"
	"github.com/careloop/careloop/internal/domain/hospital"
	"github.com/careloop/careloop/internal/domain/notification"
	"github.com/careloop/careloop/internal/domain/parent"
	"github.com/careloop/careloop/internal/domain/plan"
	"github.com/careloop/careloop/internal/domain/team"
	"github.com/careloop/careloop/internal/platform/auth"
	"github.com/careloop/careloop/internal/platform/db"
	"github.com/careloop/careloop/internal/platform/messaging"
	"github.com/careloop/careloop/internal/platform/middleware"
	"github.com/careloop/careloop/internal/platform/telemetry"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "careloop-server",
		Short: "Care coordination API server",
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
			if dir == "" {
				dir = cfg.MigrationsDir
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, db.PoolConfig{
				MaxConns: cfg.DBMaxConns,
				MinConns: cfg.DBMinConns,
			})
			if err != nil {
				return err
			}
			defer pool.Close()

			count, err := db.NewMigrator(pool, dir).Up(ctx)
			if err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}
			fmt.Printf("Applied %d migration(s).\n", count)
			return nil
		},
	}
	upCmd.Flags().String("dir", "", "Path to migrations directory (defaults to MIGRATIONS_DIR)")
	cmd.AddCommand(upCmd)

	return cmd
}

func runServer() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Str("service", "careloop").Logger()
	if !cfg.IsProduction() {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stdout})
	}

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL, db.PoolConfig{
		MaxConns: cfg.DBMaxConns,
		MinConns: cfg.DBMinConns,
	})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer pool.Close()

	// Optional redis-backed token revocation.
	var revoker auth.RevocationChecker
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("parse REDIS_URL: %w", err)
		}
		rdb := redis.NewClient(opts)
		defer rdb.Close()
		revoker = auth.NewRevocationList(rdb)
		logger.Info().Msg("token revocation enabled")
	}

	// Optional notification event publishing.
	var publisher notification.Publisher
	if cfg.AMQPURL != "" {
		broker, err := messaging.NewBroker(cfg.AMQPURL, cfg.NotifyQueue, logger)
		if err != nil {
			return fmt.Errorf("connect broker: %w", err)
		}
		defer broker.Close()
		publisher = broker
		logger.Info().Str("queue", cfg.NotifyQueue).Msg("notification events enabled")
	}

	// Services. The account service doubles as the identity resolver and
	// the account-status probe for the middleware chain.
	accountSvc := account.NewService(account.NewRepoPG(pool))
	documentSvc := document.NewService(document.NewRepoPG(pool))
	hospitalSvc := hospital.NewService(hospital.NewRepoPG(pool), documentSvc,
		func(ctx context.Context, fn func(ctx context.Context) error) error {
			return db.InTx(ctx, pool, fn)
		})
	doctorSvc := doctor.NewService(doctor.NewRepoPG(pool))
	teamSvc := team.NewService(team.NewRepoPG(pool), doctorSvc)
	parentSvc := parent.NewService(parent.NewRepoPG(pool), doctorSvc, teamSvc)
	notifSvc := notification.NewService(notification.NewRepoPG(pool), publisher)
	planSvc := plan.NewService(plan.NewRepoPG(pool))
	analyticsRepo := analytics.NewRepoPG(pool)

	authn, err := buildAuthenticator(cfg, accountSvc, revoker)
	if err != nil {
		return err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	metrics := telemetry.New("careloop")
	e.Use(middleware.RequestID())
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.Logger(logger))
	e.Use(middleware.SecurityHeaders())
	e.Use(metrics.Middleware())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization, auth.HeaderUserEmail},
	}))

	e.GET("/healthz", db.HealthHandler(pool))
	e.GET("/metrics", metrics.Handler())

	public := e.Group("/api/public")
	hospital.NewHandler(hospitalSvc).RegisterPublic(public)

	api := e.Group("/api", auth.Middleware(authn), auth.StatusGate(accountSvc))
	hospital.NewHandler(hospitalSvc).RegisterRoutes(api)
	doctor.NewHandler(doctorSvc).RegisterRoutes(api)
	team.NewHandler(teamSvc).RegisterRoutes(api)
	parent.NewHandler(parentSvc).RegisterRoutes(api)
	document.NewHandler(documentSvc).RegisterRoutes(api)
	notification.NewHandler(notifSvc).RegisterRoutes(api)
	plan.NewHandler(planSvc).RegisterRoutes(api)
	analytics.NewHandler(analyticsRepo).RegisterRoutes(api)
	account.NewHandler(accountSvc).RegisterRoutes(api)

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("port", cfg.Port).Str("auth_mode", cfg.AuthMode).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logger.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// buildAuthenticator picks the process-wide authentication scheme.
func buildAuthenticator(cfg *config.Config, resolver auth.PrincipalResolver, revoker auth.RevocationChecker) (auth.Authenticator, error) {
	switch cfg.AuthMode {
	case config.AuthModeBearer:
		a := &auth.BearerAuthenticator{Revoker: revoker}
		if cfg.AuthJWKSURL != "" {
			a.KeyFunc = auth.JWKSKeyFunc(cfg.AuthJWKSURL)
		} else {
			a.KeyFunc = auth.HMACKeyFunc([]byte(cfg.AuthSigningKey))
		}
		return a, nil
	case config.AuthModeEmailHeader:
		return &auth.EmailHeaderAuthenticator{Resolver: resolver}, nil
	case config.AuthModeInsecure:
		return &auth.BearerAuthenticator{Insecure: true, Revoker: revoker}, nil
	}
	return nil, fmt.Errorf("unsupported auth mode %q", cfg.AuthMode)
}
