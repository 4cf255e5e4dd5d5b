package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/matterai/timesheet-backend/internal/entity"
)

// FileRepository defines the interface for uploaded-file metadata
type FileRepository interface {
	Create(ctx context.Context, file *entity.StoredFile) (*entity.StoredFile, error)
	Get(ctx context.Context, userID, id string) (*entity.StoredFile, error)
	List(ctx context.Context, userID string) ([]*entity.StoredFile, error)
	Delete(ctx context.Context, userID, id string) error
}

var _ FileRepository = &FilePostgres{}

// FilePostgres implements FileRepository using PostgreSQL
type FilePostgres struct {
	db *pgxpool.Pool
}

func NewFilePostgres(db *pgxpool.Pool) *FilePostgres {
	return &FilePostgres{db: db}
}

const fileColumns = `id, user_id, filename, size, content_type, created_at`

func scanFile(row pgx.Row) (*entity.StoredFile, error) {
	var f entity.StoredFile
	if err := row.Scan(&f.ID, &f.UserID, &f.Filename, &f.Size, &f.ContentType, &f.CreatedAt); err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *FilePostgres) Create(ctx context.Context, file *entity.StoredFile) (*entity.StoredFile, error) {
	query := `
		INSERT INTO files (id, user_id, filename, size, content_type)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + fileColumns

	created, err := scanFile(r.db.QueryRow(ctx, query,
		file.ID, file.UserID, file.Filename, file.Size, file.ContentType))
	if err != nil {
		return nil, fmt.Errorf("create file: %w", err)
	}

	return created, nil
}

func (r *FilePostgres) Get(ctx context.Context, userID, id string) (*entity.StoredFile, error) {
	file, err := scanFile(r.db.QueryRow(ctx,
		`SELECT `+fileColumns+` FROM files WHERE id = $1 AND user_id = $2`, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrFileNotFound
		}
		return nil, fmt.Errorf("get file: %w", err)
	}
	return file, nil
}

func (r *FilePostgres) List(ctx context.Context, userID string) ([]*entity.StoredFile, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+fileColumns+` FROM files WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}
	defer rows.Close()

	files := make([]*entity.StoredFile, 0)
	for rows.Next() {
		file, err := scanFile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan file: %w", err)
		}
		files = append(files, file)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}

	return files, nil
}

func (r *FilePostgres) Delete(ctx context.Context, userID, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM files WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete file: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return entity.ErrFileNotFound
	}
	return nil
}
