package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"github.com/urfave/cli/v2"

	_ "github.com/guptabinit/listform/docs"
	"github.com/guptabinit/listform/internal/api"
	"github.com/guptabinit/listform/internal/config"
	"github.com/guptabinit/listform/internal/database"
	"github.com/guptabinit/listform/internal/geocode"
	"github.com/guptabinit/listform/internal/logger"
	"github.com/guptabinit/listform/internal/middleware"
	"github.com/guptabinit/listform/internal/repository"
)

//	@title			listform API
//	@version		1.0
//	@description	Server-configuration-driven listing form engine
//	@BasePath		/

func main() {
	app := &cli.App{
		Name:  "listform",
		Usage: "Configuration-driven listing form service",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Value:   config.DefaultPort,
				Usage:   "HTTP server port",
				EnvVars: []string{"PORT"},
			},
			&cli.StringFlag{
				Name:    "database-url",
				Aliases: []string{"d"},
				Usage:   "PostgreSQL connection URL",
				EnvVars: []string{"DATABASE_URL"},
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to TOML config file",
				EnvVars: []string{"LISTFORM_CONFIG"},
			},
			&cli.StringFlag{
				Name:    "geocoder-url",
				Usage:   "Nominatim-compatible geocoder URL (empty disables geocoding)",
				EnvVars: []string{"GEOCODER_URL"},
			},
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Value:   "info",
				Usage:   "Log level (debug, info, warn, error)",
				EnvVars: []string{"LOG_LEVEL"},
			},
		},
		Before: func(c *cli.Context) error {
			logger.Setup(logger.ParseLevel(c.String("log-level")))
			return nil
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Flags override the config file
	if c.IsSet("port") || cfg.Port == "" {
		cfg.Port = c.String("port")
	}
	if c.IsSet("database-url") {
		cfg.DatabaseURL = c.String("database-url")
	}
	if c.IsSet("geocoder-url") {
		cfg.Geocoder.URL = c.String("geocoder-url")
	}

	if cfg.DatabaseURL == "" {
		return fmt.Errorf("database URL is required (--database-url or DATABASE_URL)")
	}

	ctx := context.Background()

	if err := database.Migrate(ctx, cfg.DatabaseURL); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to create connection pool: %w", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	forms, err := repository.NewFormRepository(pool)
	if err != nil {
		return fmt.Errorf("failed to create form repository: %w", err)
	}
	submissions, err := repository.NewSubmissionRepository(pool)
	if err != nil {
		return fmt.Errorf("failed to create submission repository: %w", err)
	}

	var geocoder geocode.Geocoder
	if cfg.Geocoder.URL != "" {
		geocoder = geocode.NewNominatimClient(cfg.Geocoder.URL)
	}

	h, err := api.New(forms, submissions, geocoder)
	if err != nil {
		return fmt.Errorf("failed to create API handler: %w", err)
	}

	mux := http.NewServeMux()
	h.RegisterRoutes(mux)
	mux.Handle("GET /swagger/", httpSwagger.Handler())

	limiter, err := middleware.NewRateLimiter(cfg.RateLimit, []string{"/health"})
	if err != nil {
		return fmt.Errorf("failed to create rate limiter: %w", err)
	}
	defer limiter.Close()

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      limiter.Middleware(middleware.CacheControl(mux)),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		slog.Info("starting server", "server_addr", "http://localhost:"+cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	case <-done:
		slog.Info("shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
