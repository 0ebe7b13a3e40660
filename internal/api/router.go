package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MikeSquared-Agency/Dosewatch/internal/assessment"
	"github.com/MikeSquared-Agency/Dosewatch/internal/assets"
	"github.com/MikeSquared-Agency/Dosewatch/internal/flux"
	"github.com/MikeSquared-Agency/Dosewatch/internal/hermes"
	"github.com/MikeSquared-Agency/Dosewatch/internal/store"
)

type Deps struct {
	Engine            *assessment.Engine
	Store             store.Store
	Hermes            hermes.Client
	Flux              flux.Fetcher
	Assets            *assets.Resolver
	RequestsPerMinute int
	Logger            *slog.Logger
}

func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(MetricsMiddleware)
	r.Use(RequestLogger(d.Logger))

	assessments := NewAssessmentsHandler(d.Engine, d.Store, d.Hermes, d.Assets, d.Logger)
	missions := NewMissionsHandler(d.Engine, d.Flux, d.Store, d.Hermes, d.Logger)
	fluxH := NewFluxHandler(d.Flux, d.Hermes, d.Logger)
	tables := NewTablesHandler(d.Engine.Tables())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(RateLimitMiddleware(d.RequestsPerMinute))

		r.Post("/assessments", assessments.Create)
		r.Get("/assessments", assessments.List)
		r.Get("/assessments/{id}", assessments.Get)
		r.Get("/stats", assessments.Stats)

		r.Post("/missions", missions.Create)
		r.Get("/flux", fluxH.Get)

		r.Get("/tables/{mode}", tables.Get)
		r.Get("/organs", tables.Organs)
	})

	images := http.StripPrefix("/images/", http.FileServer(http.Dir(d.Assets.ImagesRoot())))
	r.Handle("/images/*", images)

	return r
}

func NewMetricsRouter() http.Handler {
	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())
	return r
}
