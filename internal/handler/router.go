package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ngohub/casework/internal/config"
	"github.com/ngohub/casework/internal/middleware"
	"github.com/ngohub/casework/spec"
)

// NewRouter builds the full HTTP handler: shared middleware, the operational
// endpoints, and the /api routes backed by s.
//
// Middleware order: RequestID → RealIP → SlogLogger → Recoverer → metrics → CORS.
// Rate limiting and the body cap apply to /api only so probes and scrapes
// are never throttled.
func NewRouter(s *Server, cfg config.Config, gatherer prometheus.Gatherer) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(s.log))
	r.Use(chimiddleware.Recoverer)
	if s.metrics != nil {
		r.Use(middleware.NewMetrics(s.metrics))
	}
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeFailure(w, r, http.StatusNotFound, "not_found", "route not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeFailure(w, r, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed", nil)
	})

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", serveOpenAPI)
	if gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(r chi.Router) {
		if cfg.RateLimit > 0 {
			r.Use(httprate.Limit(cfg.RateLimit, cfg.RateLimitWindow,
				httprate.WithKeyFuncs(httprate.KeyByRealIP),
				httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
					writeFailure(w, r, http.StatusTooManyRequests, "rate_limited", "too many requests", nil)
				}),
			))
		}
		if cfg.MaxBodyBytes > 0 {
			r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))
		}

		r.Get("/categories", s.ListCategories)

		r.Route("/activities", func(r chi.Router) {
			r.Get("/", s.ListActivities)
			r.Post("/", s.CreateActivity)
			r.Get("/{id}", s.GetActivity)
			r.Put("/{id}", s.UpdateActivity)
			r.Delete("/{id}", s.DeleteActivity)
			r.Get("/{id}/status", s.GetActivityStatus)
		})

		r.Route("/workers", func(r chi.Router) {
			r.Get("/", s.ListWorkers)
			r.Post("/", s.CreateWorker)
			r.Get("/{id}", s.GetWorker)
			r.Put("/{id}", s.UpdateWorker)
			r.Delete("/{id}", s.DeleteWorker)
		})

		r.Route("/cases", func(r chi.Router) {
			r.Get("/", s.ListCases)
			r.Post("/", s.CreateCase)
			r.Get("/{id}", s.GetCase)
			r.Put("/{id}", s.UpdateCase)
			r.Delete("/{id}", s.DeleteCase)
		})
	})
	return r
}

func serveOpenAPI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	_, _ = w.Write(spec.OpenAPI)
}
