package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	authapi "github.com/matterai/timesheet-backend/internal/api/auth"
	chatbotapi "github.com/matterai/timesheet-backend/internal/api/chatbot"
	"github.com/matterai/timesheet-backend/internal/api/docs"
	fileapi "github.com/matterai/timesheet-backend/internal/api/file"
	"github.com/matterai/timesheet-backend/internal/api/middleware"
	orgapi "github.com/matterai/timesheet-backend/internal/api/organization"
	timesheetapi "github.com/matterai/timesheet-backend/internal/api/timesheet"
	"go.uber.org/zap"
)

// Handlers groups the route handlers wired into the router
type Handlers struct {
	Auth         *authapi.Handler
	Chatbot      *chatbotapi.Handler
	Timesheet    *timesheetapi.Handler
	Organization *orgapi.Handler
	File         *fileapi.Handler
}

// SetupRouter creates and configures the HTTP router
func SetupRouter(h Handlers, verifier middleware.TokenVerifier, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(chimiddleware.Recoverer)                 // Recover from panics
	r.Use(chimiddleware.RequestID)                 // Add request ID
	r.Use(middleware.Logger(logger))               // Log requests
	r.Use(middleware.CORS)                         // Handle CORS
	r.Use(chimiddleware.Timeout(60 * time.Second)) // Default timeout

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	// Swagger documentation endpoints
	docs.RegisterRoutes(r)

	// Routes reachable without a token
	authapi.RegisterPublicRoutes(r, h.Auth)

	// Token-protected routes
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(verifier))

		authapi.RegisterRoutes(r, h.Auth)
		chatbotapi.RegisterRoutes(r, h.Chatbot)
		timesheetapi.RegisterRoutes(r, h.Timesheet)
		orgapi.RegisterRoutes(r, h.Organization)
		fileapi.RegisterRoutes(r, h.File)
	})

	return r
}
