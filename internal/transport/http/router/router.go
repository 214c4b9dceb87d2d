package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"

	"github.com/baechuer/courtsplit/internal/config"
	"github.com/baechuer/courtsplit/internal/metrics"
	"github.com/baechuer/courtsplit/internal/transport/http/handlers"
	authmw "github.com/baechuer/courtsplit/internal/transport/http/middleware"
	"github.com/baechuer/courtsplit/internal/transport/http/response"
)

func New(
	h *handlers.SessionsHandler,
	auth *authmw.AuthMiddleware,
	z *handlers.HealthHandler,
	cfg *config.Config,
) http.Handler {
	r := chi.NewRouter()

	r.Use(authmw.RequestID)
	r.Use(authmw.SecurityHeaders)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(authmw.AccessLog)

	r.Get("/healthz", z.Healthz)
	r.Get("/readyz", z.Readyz)
	r.Handle("/metrics", metrics.Handler())

	r.Route("/session/v1", func(r chi.Router) {
		if cfg.RLEnabled {
			r.Use(httprate.Limit(
				cfg.RLLimit,
				cfg.RLWindow,
				httprate.WithKeyFuncs(httprate.KeyByIP),
				httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
					response.Fail(w, http.StatusTooManyRequests, "rate_limited", "too many requests", nil,
						response.RequestIDFromRequest(r))
				}),
			))
		}

		// reads and player self-service accept anonymous callers
		r.Group(func(r chi.Router) {
			r.Use(auth.Optional)
			r.Get("/events", h.List)
			r.Get("/events/{event_id}", h.Get)
			r.Get("/events/{event_id}/bill", h.GetBill)
			r.Get("/events/{event_id}/pairs", h.Pairs)
			r.Get("/dashboard", h.Dashboard)
			r.Post("/events/{event_id}/players", h.Register)
			r.Post("/events/{event_id}/players/{player_id}/cancel", h.CancelPlayer)
		})

		// admin operations; the service checks the role
		r.Group(func(r chi.Router) {
			r.Use(auth.Require)
			r.Post("/events", h.Create)
			r.Patch("/events/{event_id}", h.Update)
			r.Post("/events/{event_id}/cancel", h.Cancel)
			r.Post("/events/{event_id}/players/{player_id}/absent", h.MarkAbsent)
			r.Post("/events/{event_id}/courts", h.AddCourt)
			r.Delete("/events/{event_id}/courts/{index}", h.RemoveCourt)
			r.Put("/events/{event_id}/usage", h.RecordUsage)
			r.Put("/events/{event_id}/bill", h.SaveBill)
		})
	})

	return r
}
