package organization

import (
	"github.com/go-chi/chi/v5"
	"github.com/matterai/timesheet-backend/internal/api/middleware"
	"github.com/matterai/timesheet-backend/internal/entity"
)

// RegisterRoutes registers organization and user administration routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/organizations", func(r chi.Router) {
		r.Use(middleware.RequireRole(entity.RoleSuperAdmin, entity.RoleOrgAdmin))

		r.Post("/", h.CreateOrganization)
		r.Get("/", h.ListOrganizations)

		r.Route("/{org_id}", func(r chi.Router) {
			r.Get("/", h.GetOrganization)
			r.Delete("/", h.DeleteOrganization)
		})
	})

	r.Route("/users", func(r chi.Router) {
		r.Use(middleware.RequireRole(entity.RoleSuperAdmin, entity.RoleOrgAdmin))

		r.Post("/", h.CreateUser)
		r.Get("/", h.ListUsers)

		r.Route("/{user_id}", func(r chi.Router) {
			r.Patch("/active", h.SetUserActive)
			r.Delete("/", h.DeleteUser)
		})
	})
}
