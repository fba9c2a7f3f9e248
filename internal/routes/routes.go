package routes

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/oxydek/fin-stat/internal/handlers"
	httpSwagger "github.com/swaggo/http-swagger"
)

func NewRoutes(h *handlers.Handlers) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.Health)

		r.Get("/token", h.GetToken)
		r.Post("/token", h.SetToken)

		r.Route("/accounts", func(r chi.Router) {
			r.Get("/", h.ListAccounts)
			r.Post("/", h.CreateAccount)
			r.Patch("/{id}", h.UpdateAccount)
			r.Post("/{id}/deposit", h.Deposit)
			r.Post("/{id}/withdraw", h.Withdraw)
			r.Post("/{id}/rate", h.SetRate)
			r.Get("/{id}/interest", h.AccruedInterest)
			r.Post("/{id}/interest/apply", h.ApplyInterest)
		})

		r.Get("/transactions", h.ListTransactions)
		r.Post("/transactions", h.CreateTransaction)

		r.Route("/goals", func(r chi.Router) {
			r.Get("/", h.ListGoals)
			r.Post("/", h.CreateGoal)
			r.Patch("/{id}", h.UpdateGoal)
			r.Post("/{id}/contributions", h.Contribute)
		})

		r.Route("/reminders", func(r chi.Router) {
			r.Get("/", h.ListReminders)
			r.Post("/", h.CreateReminder)
			r.Get("/{id}", h.GetReminder)
			r.Patch("/{id}", h.UpdateReminder)
			r.Delete("/{id}", h.DeleteReminder)
		})

		r.Get("/categories", h.ListCategories)

		r.Post("/import", h.ImportStatement)
		r.Get("/import/templates", h.ImportTemplates)

		r.Route("/push", func(r chi.Router) {
			r.Get("/public-key", h.PushPublicKey)
			r.Post("/subscribe", h.PushSubscribe)
			r.Post("/test", h.PushTest)
		})

		r.Get("/broker/accounts", h.BrokerAccounts)
		r.Get("/broker/portfolio", h.BrokerPortfolio)
		r.Get("/broker/positions", h.BrokerPositions)
		r.Post("/sync/broker", h.SyncBroker)
	})

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return r
}
