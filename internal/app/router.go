package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/lumapos/lumapos/internal/auth"
	"github.com/lumapos/lumapos/internal/catalog"
	"github.com/lumapos/lumapos/internal/insights"
	"github.com/lumapos/lumapos/internal/observability"
	"github.com/lumapos/lumapos/internal/reporting"
	"github.com/lumapos/lumapos/internal/sales"
	"github.com/lumapos/lumapos/internal/settings"
	"github.com/lumapos/lumapos/internal/shared"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger           *slog.Logger
	Config           *Config
	SessionManager   *shared.SessionManager
	AuthHandler      *auth.Handler
	CatalogHandler   *catalog.Handler
	SalesHandler     *sales.Handler
	ReportingHandler *reporting.Handler
	InsightsHandler  *insights.Handler
	SettingsHandler  *settings.Handler
	Metrics          *observability.Metrics
}

// NewRouter constructs the chi.Router with application defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())

	r.Route("/auth", params.AuthHandler.MountRoutes)

	r.Route("/api", func(api chi.Router) {
		api.Route("/products", params.CatalogHandler.MountRoutes)
		api.Route("/sales", params.SalesHandler.MountRoutes)
		api.Route("/reports", func(reports chi.Router) {
			params.ReportingHandler.MountRoutes(reports)
			params.InsightsHandler.MountRoutes(reports)
		})
		api.Route("/settings", func(cfg chi.Router) {
			cfg.Use(auth.RequireAdmin(params.SessionManager))
			params.SettingsHandler.MountRoutes(cfg)
		})
	})

	return r
}
