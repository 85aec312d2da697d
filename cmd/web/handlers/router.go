package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type Routes struct {
	Order   *Order
	Payment *Payment
	Health  *Health
	// Metrics serves the scrape endpoint; Recorder observes every request.
	Metrics  http.Handler
	Recorder MetricsRecorder
	// AccessLog toggles chi's request logger.
	AccessLog bool
}

func NewRouter(rt Routes) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP)
	if rt.AccessLog {
		r.Use(middleware.Logger)
	}
	r.Use(middleware.Recoverer)
	if rt.Recorder != nil {
		r.Use(Metrics(rt.Recorder))
	}

	if rt.Health != nil {
		r.Get("/health", rt.Health.Handler)
	}
	if rt.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", rt.Metrics)
	}

	r.Group(func(r chi.Router) {
		r.Use(Identity)

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", rt.Order.Create)
			r.Get("/", rt.Order.List)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", rt.Order.Get)
				r.Delete("/", rt.Order.Delete)
				r.Put("/items", rt.Order.ReplaceItems)
				r.Post("/confirm", rt.Order.Confirm)
				r.Post("/cancel", rt.Order.Cancel)
				r.Get("/events", rt.Order.Events)
				r.Post("/payments", rt.Payment.Process)
				r.Get("/payment", rt.Payment.GetByOrder)
			})
		})

		r.Get("/payments", rt.Payment.List)
		r.Get("/payments/{id}", rt.Payment.Get)
	})
	return r
}
