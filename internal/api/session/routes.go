package session

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers session routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/api/sessions", func(r chi.Router) {
		r.Post("/", h.CreateSession)
		r.Get("/{id}", h.GetSession)
		r.Post("/{id}/answers", h.AnswerQuestion)
		r.Post("/{id}/refine", h.Refine)
		r.Post("/{id}/complete", h.Complete)
		r.Delete("/{id}", h.DeleteSession)
	})

	r.Post("/api/questions/generate", h.GenerateQuestions)
}
