package organization

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/matterai/timesheet-backend/internal/api/middleware"
	"github.com/matterai/timesheet-backend/internal/entity"
	"github.com/matterai/timesheet-backend/internal/pkg/logger"
	"go.uber.org/zap"
)

type Handler struct {
	usecase OrganizationUsecase
}

func NewHandler(usecase OrganizationUsecase) *Handler {
	return &Handler{usecase: usecase}
}

type createOrgResponse struct {
	Success      bool                 `json:"success"`
	Message      string               `json:"message"`
	Organization *entity.Organization `json:"organization"`
	Admin        *entity.UserDTO      `json:"admin"`
}

type orgListResponse struct {
	Organizations []*entity.Organization `json:"organizations"`
	Total         int                    `json:"total"`
}

type userListResponse struct {
	Users []*entity.UserDTO `json:"users"`
	Total int               `json:"total"`
}

// CreateOrganization handles POST /organizations
func (h *Handler) CreateOrganization(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "CreateOrganization")

	actor, ok := middleware.UserFromContext(ctx)
	if !ok {
		h.respondError(ctx, w, http.StatusUnauthorized, "not authenticated", nil)
		return
	}

	var req entity.CreateOrgRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctxzap.Error(ctx, "failed to decode request body", zap.Error(err))
		h.respondError(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	org, admin, err := h.usecase.CreateOrganization(ctx, actor, &req)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	ctxzap.Info(ctx, "organization created", zap.String("org_id", org.ID))
	h.respondJSON(w, http.StatusCreated, createOrgResponse{
		Success:      true,
		Message:      "Organization created successfully",
		Organization: org,
		Admin:        admin,
	})
}

// ListOrganizations handles GET /organizations
func (h *Handler) ListOrganizations(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "ListOrganizations")

	actor, ok := middleware.UserFromContext(ctx)
	if !ok {
		h.respondError(ctx, w, http.StatusUnauthorized, "not authenticated", nil)
		return
	}

	orgs, err := h.usecase.ListOrganizations(ctx, actor)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, orgListResponse{
		Organizations: orgs,
		Total:         len(orgs),
	})
}

// GetOrganization handles GET /organizations/{org_id}
func (h *Handler) GetOrganization(w http.ResponseWriter, r *http.Request) {
	orgID := chi.URLParam(r, "org_id")
	ctx := logger.AddFields(logger.WithAction(r.Context(), "GetOrganization"), zap.String("org_id", orgID))

	actor, ok := middleware.UserFromContext(ctx)
	if !ok {
		h.respondError(ctx, w, http.StatusUnauthorized, "not authenticated", nil)
		return
	}

	org, err := h.usecase.GetOrganization(ctx, actor, orgID)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, org)
}

// DeleteOrganization handles DELETE /organizations/{org_id}
func (h *Handler) DeleteOrganization(w http.ResponseWriter, r *http.Request) {
	orgID := chi.URLParam(r, "org_id")
	ctx := logger.AddFields(logger.WithAction(r.Context(), "DeleteOrganization"), zap.String("org_id", orgID))

	actor, ok := middleware.UserFromContext(ctx)
	if !ok {
		h.respondError(ctx, w, http.StatusUnauthorized, "not authenticated", nil)
		return
	}

	if err := h.usecase.DeleteOrganization(ctx, actor, orgID); err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	ctxzap.Info(ctx, "organization deleted")
	h.respondJSON(w, http.StatusOK, entity.SuccessResponse{
		Success: true,
		Message: "organization deleted",
	})
}

// CreateUser handles POST /users
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "CreateUser")

	actor, ok := middleware.UserFromContext(ctx)
	if !ok {
		h.respondError(ctx, w, http.StatusUnauthorized, "not authenticated", nil)
		return
	}

	var req entity.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctxzap.Error(ctx, "failed to decode request body", zap.Error(err))
		h.respondError(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	user, err := h.usecase.CreateUser(ctx, actor, &req)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	ctxzap.Info(ctx, "user created", zap.String("user_id", user.ID))
	h.respondJSON(w, http.StatusCreated, user)
}

// ListUsers handles GET /users
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "ListUsers")

	actor, ok := middleware.UserFromContext(ctx)
	if !ok {
		h.respondError(ctx, w, http.StatusUnauthorized, "not authenticated", nil)
		return
	}

	users, err := h.usecase.ListUsers(ctx, actor)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, userListResponse{
		Users: users,
		Total: len(users),
	})
}

// SetUserActive handles PATCH /users/{user_id}/active
func (h *Handler) SetUserActive(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "user_id")
	ctx := logger.AddFields(logger.WithAction(r.Context(), "SetUserActive"), zap.String("user_id", userID))

	actor, ok := middleware.UserFromContext(ctx)
	if !ok {
		h.respondError(ctx, w, http.StatusUnauthorized, "not authenticated", nil)
		return
	}

	var req struct {
		Active *bool `json:"active"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctxzap.Error(ctx, "failed to decode request body", zap.Error(err))
		h.respondError(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if req.Active == nil {
		h.respondError(ctx, w, http.StatusBadRequest, "field 'active' is required", entity.ErrMissingField)
		return
	}

	if err := h.usecase.SetUserActive(ctx, actor, userID, *req.Active); err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	state := "deactivated"
	if *req.Active {
		state = "activated"
	}
	ctxzap.Info(ctx, "user "+state)
	h.respondJSON(w, http.StatusOK, entity.SuccessResponse{
		Success: true,
		Message: "user " + state,
	})
}

// DeleteUser handles DELETE /users/{user_id}
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "user_id")
	ctx := logger.AddFields(logger.WithAction(r.Context(), "DeleteUser"), zap.String("user_id", userID))

	actor, ok := middleware.UserFromContext(ctx)
	if !ok {
		h.respondError(ctx, w, http.StatusUnauthorized, "not authenticated", nil)
		return
	}

	if err := h.usecase.DeleteUser(ctx, actor, userID); err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	ctxzap.Info(ctx, "user deleted")
	h.respondJSON(w, http.StatusOK, entity.SuccessResponse{
		Success: true,
		Message: "user deleted",
	})
}

func (h *Handler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (h *Handler) respondError(ctx context.Context, w http.ResponseWriter, status int, message string, err error) {
	ctxzap.Error(ctx, message, zap.Error(err))
	h.respondJSON(w, status, entity.ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
	})
}

func (h *Handler) handleUsecaseError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, entity.ErrForbidden):
		h.respondError(ctx, w, http.StatusForbidden, "operation not permitted", err)
	case errors.Is(err, entity.ErrOrgNotFound):
		h.respondError(ctx, w, http.StatusNotFound, "organization not found", err)
	case errors.Is(err, entity.ErrUserNotFound):
		h.respondError(ctx, w, http.StatusNotFound, "user not found", err)
	case errors.Is(err, entity.ErrOrgExists):
		h.respondError(ctx, w, http.StatusConflict, "organization already exists", err)
	case errors.Is(err, entity.ErrUserExists):
		h.respondError(ctx, w, http.StatusConflict, "username or email already taken", err)
	case errors.Is(err, entity.ErrMissingField),
		errors.Is(err, entity.ErrInvalidFormat),
		errors.Is(err, entity.ErrInvalidParameter):
		h.respondError(ctx, w, http.StatusBadRequest, strings.TrimSpace(err.Error()), err)
	default:
		h.respondError(ctx, w, http.StatusInternalServerError, "internal server error", err)
	}
}
