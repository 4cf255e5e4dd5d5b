package file

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/matterai/timesheet-backend/internal/config"
	"github.com/matterai/timesheet-backend/internal/entity"
	"github.com/matterai/timesheet-backend/internal/pkg/validator"
	"github.com/matterai/timesheet-backend/internal/repository"
	"go.uber.org/zap"
)

// FileUsecase stores uploaded files on disk with metadata in the database
type FileUsecase struct {
	fileRepo  repository.FileRepository
	validator *validator.Validator
	cfg       config.FileUploadConfig
	logger    *zap.Logger
}

// NewUsecase creates a new file use case
func NewUsecase(
	fileRepo repository.FileRepository,
	validator *validator.Validator,
	cfg config.FileUploadConfig,
	logger *zap.Logger,
) *FileUsecase {
	return &FileUsecase{
		fileRepo:  fileRepo,
		validator: validator,
		cfg:       cfg,
		logger:    logger,
	}
}

// Upload validates and stores one uploaded file. Bytes land on disk keyed
// by the generated file ID; metadata goes to the database.
func (uc *FileUsecase) Upload(ctx context.Context, userID string, header *multipart.FileHeader) (*entity.StoredFile, error) {
	if err := uc.validator.ValidateUpload(header); err != nil {
		return nil, fmt.Errorf("%w: %w", entity.ErrInvalidFile, err)
	}

	src, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	fileID := uuid.New().String()
	if err := os.MkdirAll(uc.cfg.StorageDir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}

	path := uc.storagePath(fileID, header.Filename)
	dst, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create file: %w", err)
	}
	defer dst.Close()

	size, err := io.Copy(dst, src)
	if err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("write file: %w", err)
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	stored, err := uc.fileRepo.Create(ctx, &entity.StoredFile{
		ID:          fileID,
		UserID:      userID,
		Filename:    header.Filename,
		Size:        size,
		ContentType: contentType,
	})
	if err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("store file metadata: %w", err)
	}

	ctxzap.Info(ctx, "file uploaded",
		zap.String("file_id", stored.ID),
		zap.Int64("size", stored.Size),
	)

	return stored, nil
}

// List returns the user's uploaded files
func (uc *FileUsecase) List(ctx context.Context, userID string) ([]*entity.StoredFile, error) {
	files, err := uc.fileRepo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}
	return files, nil
}

// Open returns the file metadata and a reader over its bytes. The caller
// closes the reader.
func (uc *FileUsecase) Open(ctx context.Context, userID, id string) (*entity.StoredFile, io.ReadCloser, error) {
	stored, err := uc.fileRepo.Get(ctx, userID, id)
	if err != nil {
		return nil, nil, fmt.Errorf("get file: %w", err)
	}

	f, err := os.Open(uc.storagePath(stored.ID, stored.Filename))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, entity.ErrFileNotFound
		}
		return nil, nil, fmt.Errorf("open file: %w", err)
	}

	return stored, f, nil
}

// Delete removes the metadata and the bytes on disk
func (uc *FileUsecase) Delete(ctx context.Context, userID, id string) error {
	stored, err := uc.fileRepo.Get(ctx, userID, id)
	if err != nil {
		return fmt.Errorf("get file: %w", err)
	}

	if err := uc.fileRepo.Delete(ctx, userID, id); err != nil {
		return fmt.Errorf("delete file metadata: %w", err)
	}

	if err := os.Remove(uc.storagePath(stored.ID, stored.Filename)); err != nil && !os.IsNotExist(err) {
		ctxzap.Error(ctx, "failed to remove file from disk", zap.Error(err))
	}

	ctxzap.Info(ctx, "file deleted", zap.String("file_id", id))
	return nil
}

// Limits reports the upload constraints to the frontend.
func (uc *FileUsecase) Limits() map[string]any {
	extensions := make([]string, 0, len(validator.AllowedExtensions))
	for ext := range validator.AllowedExtensions {
		extensions = append(extensions, ext)
	}
	return map[string]any{
		"max_file_size_mb":   uc.cfg.MaxFileSize / (1024 * 1024),
		"allowed_extensions": extensions,
	}
}

func (uc *FileUsecase) storagePath(fileID, filename string) string {
	return filepath.Join(uc.cfg.StorageDir, fileID+filepath.Ext(filename))
}
