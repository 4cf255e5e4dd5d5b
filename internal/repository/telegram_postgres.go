package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/matterai/timesheet-backend/internal/entity"
)

// TelegramRepository links Telegram identities to user accounts
type TelegramRepository interface {
	GetUserID(ctx context.Context, telegramID int64) (string, error)
	CreateLinkedUser(ctx context.Context, telegramID int64, user *entity.User) (*entity.User, error)
}

var _ TelegramRepository = &TelegramPostgres{}

// TelegramPostgres implements TelegramRepository using PostgreSQL
type TelegramPostgres struct {
	db *pgxpool.Pool
}

func NewTelegramPostgres(db *pgxpool.Pool) *TelegramPostgres {
	return &TelegramPostgres{db: db}
}

// GetUserID returns the user account linked to the Telegram identity,
// or entity.ErrUserNotFound when no link exists.
func (r *TelegramPostgres) GetUserID(ctx context.Context, telegramID int64) (string, error) {
	var userID string
	err := r.db.QueryRow(ctx,
		`SELECT user_id FROM telegram_accounts WHERE telegram_id = $1`, telegramID,
	).Scan(&userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", entity.ErrUserNotFound
		}
		return "", fmt.Errorf("get telegram account: %w", err)
	}
	return userID, nil
}

// CreateLinkedUser creates the user row and its Telegram link in one
// transaction. A concurrent link for the same Telegram identity surfaces
// as entity.ErrUserExists; callers re-read the winning link.
func (r *TelegramPostgres) CreateLinkedUser(ctx context.Context, telegramID int64, user *entity.User) (*entity.User, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO users (org_id, username, email, name, password_hash, role, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + userColumns

	created, err := scanUser(tx.QueryRow(ctx, query,
		user.OrgID, user.Username, user.Email, user.Name,
		user.PasswordHash, user.Role, user.IsActive,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, entity.ErrUserExists
		}
		return nil, fmt.Errorf("create telegram user: %w", err)
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO telegram_accounts (telegram_id, user_id) VALUES ($1, $2)`,
		telegramID, created.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, entity.ErrUserExists
		}
		return nil, fmt.Errorf("link telegram account: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return created, nil
}
