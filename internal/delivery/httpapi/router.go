package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(withdrawalHandler *WithdrawalHandler, reviewerHandler *ReviewerHandler) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Reviewer-ID"},
	}))

	r.Route("/withdrawals", func(r chi.Router) {
		r.Post("/", withdrawalHandler.Submit)
		r.Get("/", withdrawalHandler.List)
		r.Get("/{withdrawalID}", withdrawalHandler.Get)
		r.Post("/{withdrawalID}/claim", withdrawalHandler.Claim)
		r.Post("/{withdrawalID}/transfer", withdrawalHandler.Transfer)
		r.Post("/{withdrawalID}/conclude", withdrawalHandler.Conclude)
		r.Post("/{withdrawalID}/annotations", withdrawalHandler.Annotate)
		r.Get("/{withdrawalID}/history", withdrawalHandler.History)
	})

	r.Route("/reviewers", func(r chi.Router) {
		r.Post("/", reviewerHandler.Create)
		r.Get("/", reviewerHandler.List)
		r.Get("/{reviewerID}", reviewerHandler.Get)
		r.Patch("/{reviewerID}/availability", reviewerHandler.SetAvailability)
		r.Delete("/{reviewerID}", reviewerHandler.Delete)
	})

	r.Get("/statistics/global", withdrawalHandler.GlobalStatistics)
	r.Get("/statistics/reviewers/{reviewerID}", withdrawalHandler.ReviewerStatistics)

	r.Handle("/metrics", promhttp.Handler())

	return r
}
