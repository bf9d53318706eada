package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all diversification routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/diversification", func(r chi.Router) {
		r.Post("/score", h.HandleScore)
		r.Post("/look-through", h.HandleLookThrough)
		r.Get("/classify/{identifier}", h.HandleClassify)
		r.Get("/compositions/{identifier}", h.HandleGetComposition)
	})
}
