package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"server/internal/http/handlers"
	"server/internal/infra"
	"server/internal/middleware"
)

// NewRouter assembles the API surface. Everything under /v1 except the health
// probe requires a bearer token; metered endpoints sit behind the quota gate
// inside their handlers.
func NewRouter(app *handlers.App, cfg *infra.Config, lookup middleware.CountryLookup) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimiddleware.RealIP,
		chimiddleware.Recoverer,
		middleware.Logger(app.Logger),
		middleware.CORS(cfg.CORSOrigins),
		middleware.RateLimit(cfg.RateLimitPerMin, time.Minute),
		middleware.I18N(cfg.DefaultLocale, lookup),
	)

	r.Get("/v1/healthz", app.Health)

	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthJWT(cfg.JWTSecret))

		r.Get("/v1/me", app.Me)
		r.Get("/v1/usage", app.Usage)

		r.Route("/v1/calendar", func(r chi.Router) {
			r.Post("/generate", app.CalendarGenerate)
			r.Get("/", app.CalendarList)
		})

		r.Get("/v1/insights/patterns", app.InsightsPatterns)
		r.Post("/v1/captions/draft", app.CaptionsDraft)
		r.Post("/v1/images/generate", app.ImagesGenerate)
	})

	return r
}
