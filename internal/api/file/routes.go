package file

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers file upload routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/files", func(r chi.Router) {
		r.Post("/upload", h.Upload)
		r.Get("/", h.ListFiles)
		r.Get("/limits", h.Limits)

		r.Route("/{file_id}", func(r chi.Router) {
			r.Get("/", h.Download)
			r.Delete("/", h.DeleteFile)
		})
	})
}
