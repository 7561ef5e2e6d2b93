package rest

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// RouterConfig collects the handlers mounted on the HTTP edge.
type RouterConfig struct {
	Health       *HealthHandler
	Simulations  *SimulationHandler
	Metrics      http.Handler
	RateLimitRPS int
	Logger       *slog.Logger
}

// NewRouter builds the HTTP routes. Probes and metrics are never rate
// limited; the public simulation endpoints are.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(LoggingMiddleware(cfg.Logger))

	r.Get("/healthz", cfg.Health.liveness)
	r.Get("/readyz", cfg.Health.readiness)
	if cfg.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", cfg.Metrics)
	}

	r.Route("/api/v1/simulations", func(r chi.Router) {
		r.Use(RateLimitMiddleware(NewClientRateLimiter(cfg.RateLimitRPS)))
		r.Post("/", cfg.Simulations.simulate)
		r.Post("/best-matches", cfg.Simulations.bestMatches)
	})

	return r
}
