package file

import (
	"context"
	"io"
	"mime/multipart"

	"github.com/matterai/timesheet-backend/internal/entity"
)

type FileUsecase interface {
	Upload(ctx context.Context, userID string, header *multipart.FileHeader) (*entity.StoredFile, error)
	List(ctx context.Context, userID string) ([]*entity.StoredFile, error)
	Open(ctx context.Context, userID, id string) (*entity.StoredFile, io.ReadCloser, error)
	Delete(ctx context.Context, userID, id string) error
	Limits() map[string]any
}
