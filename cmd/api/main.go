package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/subvista/subvista-backend/api/routes"
	"github.com/subvista/subvista-backend/internal/billing"
	"github.com/subvista/subvista-backend/internal/insights"
	"github.com/subvista/subvista-backend/internal/planhistory"
	"github.com/subvista/subvista-backend/pkg/config"
	"github.com/subvista/subvista-backend/pkg/db"
	"github.com/subvista/subvista-backend/pkg/logger"
	"github.com/subvista/subvista-backend/pkg/metrics"
	"github.com/subvista/subvista-backend/pkg/migrate"
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

	registry := prometheus.NewRegistry()
	reportMetrics := metrics.NewReportMetrics(registry)

	billingRepo := billing.NewRepository(dbClient.DB())

	billingService, err := billing.NewService(billing.ServiceParams{Repo: billingRepo})
	if err != nil {
		logg.Error(context.Background(), "failed to create billing service", err)
		os.Exit(1)
	}

	planHistoryService, err := planhistory.NewService(planhistory.ServiceParams{
		Repo:    billingRepo,
		Logger:  logg,
		Metrics: reportMetrics,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create plan history service", err)
		os.Exit(1)
	}

	insightsService, err := insights.NewService(insights.ServiceParams{
		Repo:    billingRepo,
		Logger:  logg,
		Metrics: reportMetrics,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create insights service", err)
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
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, dbClient, registry, planHistoryService, insightsService, billingService),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
