package router

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/eyeonits/finapp-personal-finance-tracker/internal/handlers"
	"github.com/eyeonits/finapp-personal-finance-tracker/internal/middleware"
)

// NewRouter wires the full API surface. Everything under /api/v1 except
// registration requires a registered user; /health and /metrics are open.
func NewRouter(deps *handlers.Deps, auth *middleware.Middleware) chi.Router {
	r := chi.NewRouter()

	lm := middleware.NewLoggerMiddleware(deps.Log)
	um := middleware.NewUserMiddleware(deps.UserSvc)

	r.Use(chimiddleware.RequestID)
	r.Use(lm.LoggerMiddleware)
	r.Use(middleware.Metrics)
	r.Use(chimiddleware.Recoverer)

	ush := handlers.NewUserHandlers(deps)
	tsh := handlers.NewTransactionHandlers(deps)
	ish := handlers.NewImportHandlers(deps)
	rsh := handlers.NewRecurringHandlers(deps)
	hh := handlers.NewHealthHandlers(deps)

	r.Get("/health", hh.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(auth.BearerAuth)

		// Registration needs a verified token but no existing user row.
		r.Mount("/users", ush.UserRoutes())

		r.Group(func(r chi.Router) {
			r.Use(um.RequireUser)

			r.Mount("/transactions", tsh.TransactionRoutes())
			r.Mount("/imports", ish.ImportRoutes())
			r.Mount("/recurring-payments", rsh.PaymentRoutes())
			r.Mount("/payment-records", rsh.RecordRoutes())
			r.Mount("/payments", rsh.RollupRoutes())
		})
	})

	return r
}
