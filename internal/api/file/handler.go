package file

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/matterai/timesheet-backend/internal/api/middleware"
	"github.com/matterai/timesheet-backend/internal/entity"
	"github.com/matterai/timesheet-backend/internal/pkg/logger"
	"go.uber.org/zap"
)

type Handler struct {
	usecase       FileUsecase
	maxUploadSize int64
}

func NewHandler(usecase FileUsecase, maxUploadSize int64) *Handler {
	return &Handler{
		usecase:       usecase,
		maxUploadSize: maxUploadSize,
	}
}

type uploadResponse struct {
	Success bool               `json:"success"`
	Message string             `json:"message"`
	File    *entity.StoredFile `json:"file"`
}

type fileListResponse struct {
	Files []*entity.StoredFile `json:"files"`
	Total int                  `json:"total"`
}

// Upload handles POST /files/upload
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "UploadFile")

	user, ok := middleware.UserFromContext(ctx)
	if !ok {
		h.respondError(ctx, w, http.StatusUnauthorized, "not authenticated", nil)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		ctxzap.Error(ctx, "failed to parse multipart form", zap.Error(err))
		h.respondError(ctx, w, http.StatusBadRequest, "invalid multipart request", err)
		return
	}

	_, header, err := r.FormFile("file")
	if err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "missing 'file' form field", err)
		return
	}

	stored, err := h.usecase.Upload(ctx, user.ID, header)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	ctxzap.Info(ctx, "file uploaded",
		zap.String("file_id", stored.ID),
		zap.String("filename", stored.Filename),
		zap.Int64("size", stored.Size))
	h.respondJSON(w, http.StatusCreated, uploadResponse{
		Success: true,
		Message: "File uploaded successfully",
		File:    stored,
	})
}

// ListFiles handles GET /files
func (h *Handler) ListFiles(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "ListFiles")

	user, ok := middleware.UserFromContext(ctx)
	if !ok {
		h.respondError(ctx, w, http.StatusUnauthorized, "not authenticated", nil)
		return
	}

	files, err := h.usecase.List(ctx, user.ID)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, fileListResponse{
		Files: files,
		Total: len(files),
	})
}

// Download handles GET /files/{file_id}
func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	fileID := chi.URLParam(r, "file_id")
	ctx := logger.AddFields(logger.WithAction(r.Context(), "DownloadFile"), zap.String("file_id", fileID))

	user, ok := middleware.UserFromContext(ctx)
	if !ok {
		h.respondError(ctx, w, http.StatusUnauthorized, "not authenticated", nil)
		return
	}

	meta, reader, err := h.usecase.Open(ctx, user.ID, fileID)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}
	defer reader.Close()

	w.Header().Set("Content-Type", meta.ContentType)
	w.Header().Set("Content-Length", strconv.FormatInt(meta.Size, 10))
	w.Header().Set("Content-Disposition", `attachment; filename="`+meta.Filename+`"`)
	if _, err := io.Copy(w, reader); err != nil {
		ctxzap.Error(ctx, "failed to stream file", zap.Error(err))
	}
}

// DeleteFile handles DELETE /files/{file_id}
func (h *Handler) DeleteFile(w http.ResponseWriter, r *http.Request) {
	fileID := chi.URLParam(r, "file_id")
	ctx := logger.AddFields(logger.WithAction(r.Context(), "DeleteFile"), zap.String("file_id", fileID))

	user, ok := middleware.UserFromContext(ctx)
	if !ok {
		h.respondError(ctx, w, http.StatusUnauthorized, "not authenticated", nil)
		return
	}

	if err := h.usecase.Delete(ctx, user.ID, fileID); err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	ctxzap.Info(ctx, "file deleted")
	h.respondJSON(w, http.StatusOK, entity.SuccessResponse{
		Success: true,
		Message: "file deleted",
	})
}

// Limits handles GET /files/limits
func (h *Handler) Limits(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, h.usecase.Limits())
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
	case errors.Is(err, entity.ErrFileNotFound):
		h.respondError(ctx, w, http.StatusNotFound, "file not found", err)
	case errors.Is(err, entity.ErrInvalidFile),
		errors.Is(err, entity.ErrInvalidExtension),
		errors.Is(err, entity.ErrFileTooLarge),
		errors.Is(err, entity.ErrTotalSizeTooLarge):
		h.respondError(ctx, w, http.StatusBadRequest, err.Error(), err)
	default:
		h.respondError(ctx, w, http.StatusInternalServerError, "internal server error", err)
	}
}
