package auth

import (
	"github.com/go-chi/chi/v5"
)

// RegisterPublicRoutes registers routes reachable without a token
func RegisterPublicRoutes(r chi.Router, h *Handler) {
	r.Post("/auth/login", h.Login)
}

// RegisterRoutes registers token-protected auth routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Get("/auth/me", h.Me)
}
