package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"fundflow/internal/http/handlers"
	"fundflow/internal/middleware"
)

// Options configures the host surface around the handlers.
type Options struct {
	Logger          zerolog.Logger
	JWTSecret       string
	JWTIssuer       string
	AllowedOrigins  []string
	RateLimitPerMin int
	// TrustProxyHeaders takes the client address from X-Forwarded-For /
	// X-Real-IP. Enable only behind a proxy that sets them.
	TrustProxyHeaders bool
}

func NewRouter(app *handlers.App, opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID(opts.Logger))
	if opts.TrustProxyHeaders {
		r.Use(chimw.RealIP)
	}
	r.Use(
		chimw.Recoverer,
		middleware.Logger(opts.Logger),
		middleware.CORS(opts.AllowedOrigins),
		middleware.AuthJWT(opts.JWTSecret, opts.JWTIssuer),
	)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/healthz", app.Health)
		r.Get("/openapi.json", app.OpenAPIJSON)
		r.Get("/docs", app.OpenAPIDocs)
		r.Get("/stats", app.StatsSummary)

		r.Route("/campaigns", func(r chi.Router) {
			r.Get("/", app.CampaignsList)
			r.Get("/{id}", app.CampaignsGet)

			r.Group(func(r chi.Router) {
				if opts.RateLimitPerMin > 0 {
					r.Use(middleware.RateLimit(opts.RateLimitPerMin, time.Minute))
				}
				r.Use(middleware.RequirePrincipal)
				r.Post("/", app.CampaignsCreate)
				r.Post("/{id}/donations", app.CampaignsDonate)
				r.Post("/{id}/close", app.CampaignsClose)
			})
		})
	})

	return r
}
