package httpapi

import (
	stdhttp "net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"travelmate/internal/http/handlers"
	"travelmate/internal/middleware"
)

// Options configures the router middleware stack.
type Options struct {
	Logger          zerolog.Logger
	AllowedOrigins  []string
	RateLimitPerMin int
	CountryLookup   middleware.CountryLookup
}

// NewRouter wires the TravelMate API routes.
func NewRouter(app *handlers.App, opts Options) stdhttp.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, chimw.RealIP, chimw.Recoverer)
	r.Use(middleware.Origin(opts.CountryLookup))
	r.Use(middleware.Logger(opts.Logger))
	r.Use(middleware.CORS(opts.AllowedOrigins))
	if opts.RateLimitPerMin > 0 {
		r.Use(middleware.RateLimit(opts.RateLimitPerMin, time.Minute))
	}

	r.Get("/v1/healthz", app.Health)

	r.Route("/api", func(r chi.Router) {
		r.Route("/wallet", func(r chi.Router) {
			r.Post("/deposit", app.WalletDeposit)
			r.Post("/pay", app.WalletPay)
			r.Get("/transactions", app.WalletTransactions)
		})
		r.Post("/donate/trip", app.DonateTrip)
		r.Route("/community", func(r chi.Router) {
			r.Post("/create", app.CommunityCreate)
			r.Get("/{id}/funds", app.CommunityFunds)
		})
		r.Post("/ai/plan-trip", app.PlanTrip)
	})

	return r
}
