package provider

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers provider routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/api/providers", func(r chi.Router) {
		r.Get("/", h.ListProviders)
		r.Get("/default", h.DefaultProvider)
		r.Post("/{id}/validate-key", h.ValidateKey)
	})
}
