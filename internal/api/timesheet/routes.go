package timesheet

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers timesheet routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/timesheet", func(r chi.Router) {
		r.Route("/entries", func(r chi.Router) {
			r.Post("/", h.CreateEntry)
			r.Get("/", h.ListEntries)
			r.Get("/export", h.ExportEntries)

			r.Route("/{entry_id}", func(r chi.Router) {
				r.Get("/", h.GetEntry)
				r.Put("/", h.UpdateEntry)
				r.Delete("/", h.DeleteEntry)
				r.Get("/duplicate", h.DuplicateEntry)
			})
		})
	})

	r.Get("/query/dropdown-data", h.DropdownData)
}
