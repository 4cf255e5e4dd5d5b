package chatbot

import (
	"github.com/go-chi/chi/v5"
	"github.com/matterai/timesheet-backend/internal/api/middleware"
	"github.com/matterai/timesheet-backend/internal/entity"
)

// RegisterRoutes registers chatbot routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/chatbot", func(r chi.Router) {
		r.Post("/chat", h.Chat)

		// Session administration
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(entity.RoleSuperAdmin, entity.RoleOrgAdmin))
			r.Get("/sessions", h.ListSessions)
			r.Delete("/sessions/{session_id}", h.DeleteSession)
		})
	})
}
