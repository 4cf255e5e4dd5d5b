package timesheet

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/matterai/timesheet-backend/internal/api/middleware"
	"github.com/matterai/timesheet-backend/internal/entity"
	"github.com/matterai/timesheet-backend/internal/pkg/logger"
	"github.com/matterai/timesheet-backend/internal/pkg/response"
	"go.uber.org/zap"
)

type Handler struct {
	usecase TimesheetUsecase
}

func NewHandler(usecase TimesheetUsecase) *Handler {
	return &Handler{usecase: usecase}
}

// CreateEntry handles POST /timesheet/entries
func (h *Handler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "CreateEntry")
	user, _ := middleware.UserFromContext(ctx)

	var req entity.CreateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctxzap.Error(ctx, "failed to decode request body", zap.Error(err))
		h.respondError(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	entry, err := h.usecase.CreateEntry(ctx, user.ID, &req)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	h.respondJSON(w, http.StatusCreated, entity.EntryResponse{
		Success: true,
		Message: "Timesheet entry created successfully",
		EntryID: entry.ID,
		Entry:   entry,
	})
}

// ListEntries handles GET /timesheet/entries
func (h *Handler) ListEntries(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "ListEntries")
	user, _ := middleware.UserFromContext(ctx)

	filter := filterFromQuery(r)

	entries, err := h.usecase.ListEntries(ctx, user.ID, filter)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, toEntryListResponse(entries, filter))
}

// GetEntry handles GET /timesheet/entries/{entry_id}
func (h *Handler) GetEntry(w http.ResponseWriter, r *http.Request) {
	ctx := logger.AddFields(r.Context(),
		zap.String("entry_id", chi.URLParam(r, "entry_id")),
		zap.String("action", "GetEntry"),
	)
	user, _ := middleware.UserFromContext(ctx)

	entry, err := h.usecase.GetEntry(ctx, user.ID, chi.URLParam(r, "entry_id"))
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, entity.EntryResponse{
		Success: true,
		Message: "Timesheet entry retrieved successfully",
		EntryID: entry.ID,
		Entry:   entry,
	})
}

// UpdateEntry handles PUT /timesheet/entries/{entry_id}
func (h *Handler) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	ctx := logger.AddFields(r.Context(),
		zap.String("entry_id", chi.URLParam(r, "entry_id")),
		zap.String("action", "UpdateEntry"),
	)
	user, _ := middleware.UserFromContext(ctx)

	var req entity.CreateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		ctxzap.Error(ctx, "failed to decode request body", zap.Error(err))
		h.respondError(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	entry, err := h.usecase.UpdateEntry(ctx, user.ID, chi.URLParam(r, "entry_id"), &req)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, entity.EntryResponse{
		Success: true,
		Message: "Timesheet entry updated successfully",
		EntryID: entry.ID,
		Entry:   entry,
	})
}

// DeleteEntry handles DELETE /timesheet/entries/{entry_id}
func (h *Handler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	ctx := logger.AddFields(r.Context(),
		zap.String("entry_id", chi.URLParam(r, "entry_id")),
		zap.String("action", "DeleteEntry"),
	)
	user, _ := middleware.UserFromContext(ctx)

	if err := h.usecase.DeleteEntry(ctx, user.ID, chi.URLParam(r, "entry_id")); err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, entity.SuccessResponse{
		Success: true,
		Message: "Timesheet entry deleted successfully",
	})
}

// DuplicateEntry handles GET /timesheet/entries/{entry_id}/duplicate
func (h *Handler) DuplicateEntry(w http.ResponseWriter, r *http.Request) {
	ctx := logger.AddFields(r.Context(),
		zap.String("entry_id", chi.URLParam(r, "entry_id")),
		zap.String("action", "DuplicateEntry"),
	)
	user, _ := middleware.UserFromContext(ctx)

	entry, err := h.usecase.DuplicateEntry(ctx, user.ID, chi.URLParam(r, "entry_id"))
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, entity.EntryResponse{
		Success: true,
		Message: "Timesheet entry duplicated successfully",
		EntryID: entry.ID,
		Entry:   entry,
	})
}

// ExportEntries handles GET /timesheet/entries/export?format=csv
func (h *Handler) ExportEntries(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "ExportEntries")
	user, _ := middleware.UserFromContext(ctx)

	format := entity.ExportFormat(r.URL.Query().Get("format"))
	if format == "" {
		format = entity.FormatCSV
	}

	payload, contentType, filename, err := h.usecase.Export(ctx, user.ID, filterFromQuery(r), format)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	ctxzap.Info(ctx, "entries exported",
		zap.String("format", string(format)),
		zap.Int("bytes", len(payload)),
	)
	response.File(w, filename, contentType, payload)
}

// DropdownData handles GET /query/dropdown-data
func (h *Handler) DropdownData(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "DropdownData")

	h.respondJSON(w, http.StatusOK, h.usecase.DropdownData(ctx))
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
	if errors.Is(err, entity.ErrEntryNotFound) {
		h.respondError(ctx, w, http.StatusNotFound, "entry not found", err)
	} else if errors.Is(err, entity.ErrInvalidEntry) || errors.Is(err, entity.ErrInvalidParameter) ||
		errors.Is(err, entity.ErrInvalidFormat) || errors.Is(err, entity.ErrMissingField) {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid entry data", err)
	} else {
		h.respondError(ctx, w, http.StatusInternalServerError, "internal server error", err)
	}
}
