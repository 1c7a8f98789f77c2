package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/subvista/subvista-backend/api/controllers"
	"github.com/subvista/subvista-backend/api/middleware"
	"github.com/subvista/subvista-backend/pkg/config"
	"github.com/subvista/subvista-backend/pkg/db"
	"github.com/subvista/subvista-backend/pkg/logger"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	registry *prometheus.Registry,
	planHistoryService controllers.PlanHistoryService,
	analyticsService controllers.AnalyticsService,
	chargesService controllers.ChargesService,
) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS.AllowedOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, dbP, logg))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/customers/{customerID}", func(r chi.Router) {
		r.Get("/plan-history", controllers.CustomerPlanHistory(planHistoryService, logg))
		r.Get("/analytics", controllers.CustomerAnalytics(analyticsService, logg))
		r.Get("/charges", controllers.CustomerCharges(chargesService, logg))
	})

	return r
}
