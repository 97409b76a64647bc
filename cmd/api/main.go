package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/industrahub/industrahub-backend/api/routes"
	authsvc "github.com/industrahub/industrahub-backend/internal/auth"
	"github.com/industrahub/industrahub-backend/internal/categories"
	mediasvc "github.com/industrahub/industrahub-backend/internal/media"
	"github.com/industrahub/industrahub-backend/internal/products"
	"github.com/industrahub/industrahub-backend/internal/quotes"
	"github.com/industrahub/industrahub-backend/internal/services"
	"github.com/industrahub/industrahub-backend/internal/users"
	"github.com/industrahub/industrahub-backend/pkg/auth/session"
	"github.com/industrahub/industrahub-backend/pkg/config"
	"github.com/industrahub/industrahub-backend/pkg/db"
	"github.com/industrahub/industrahub-backend/pkg/logger"
	"github.com/industrahub/industrahub-backend/pkg/metrics"
	"github.com/industrahub/industrahub-backend/pkg/migrate"
	"github.com/industrahub/industrahub-backend/pkg/redis"
	"github.com/industrahub/industrahub-backend/pkg/storage/gcs"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	gcsClient, err := gcs.NewClient(context.Background(), cfg.GCS, cfg.GCP, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap gcs", err)
		os.Exit(1)
	}

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := metrics.NewHTTPMetrics(registry)

	userRepo := users.NewRepository(dbClient.DB())

	authService, err := authsvc.NewService(userRepo, sessionManager, cfg.JWT, cfg.Password)
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	categoryService, err := categories.NewService(categories.NewRepository(dbClient.DB()), dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create category service", err)
		os.Exit(1)
	}

	productService, err := products.NewService(products.NewRepository(dbClient.DB()), dbClient, categoryService)
	if err != nil {
		logg.Error(context.Background(), "failed to create product service", err)
		os.Exit(1)
	}

	mediaService, err := mediasvc.NewService(gcsClient, cfg.Media, cfg.GCS, cfg.FeatureFlags.GCSAccessMode)
	if err != nil {
		logg.Error(context.Background(), "failed to create media service", err)
		os.Exit(1)
	}

	quoteService, err := quotes.NewService(quotes.NewRepository(dbClient.DB()), products.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create quote service", err)
		os.Exit(1)
	}

	serviceRequests, err := services.NewService(services.NewRepository(dbClient.DB()), dbClient, userRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create service request service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:      cfg,
			Logger:      logg,
			HTTPMetrics: httpMetrics,
			Gatherer:    registry,
			Database:    dbClient,
			Redis:       redisClient,
			GCS:         gcsClient,
			Sessions:    sessionManager,
			Auth:        authService,
			Categories:  categoryService,
			Products:    productService,
			Media:       mediaService,
			Quotes:      quoteService,
			Services:    serviceRequests,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
