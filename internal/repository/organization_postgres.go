package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/matterai/timesheet-backend/internal/entity"
)

// OrganizationRepository defines the interface for organization persistence
type OrganizationRepository interface {
	Create(ctx context.Context, org *entity.Organization) (*entity.Organization, error)
	Get(ctx context.Context, id string) (*entity.Organization, error)
	List(ctx context.Context) ([]*entity.Organization, error)
	Delete(ctx context.Context, id string) error
}

var _ OrganizationRepository = &OrganizationPostgres{}

// OrganizationPostgres implements OrganizationRepository using PostgreSQL
type OrganizationPostgres struct {
	db *pgxpool.Pool
}

func NewOrganizationPostgres(db *pgxpool.Pool) *OrganizationPostgres {
	return &OrganizationPostgres{db: db}
}

const orgColumns = `id, name, COALESCE(description, ''), created_at, updated_at`

func scanOrg(row pgx.Row) (*entity.Organization, error) {
	var o entity.Organization
	if err := row.Scan(&o.ID, &o.Name, &o.Description, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrganizationPostgres) Create(ctx context.Context, org *entity.Organization) (*entity.Organization, error) {
	query := `
		INSERT INTO organizations (name, description)
		VALUES ($1, NULLIF($2, ''))
		RETURNING ` + orgColumns

	created, err := scanOrg(r.db.QueryRow(ctx, query, org.Name, org.Description))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, entity.ErrOrgExists
		}
		return nil, fmt.Errorf("create organization: %w", err)
	}

	return created, nil
}

func (r *OrganizationPostgres) Get(ctx context.Context, id string) (*entity.Organization, error) {
	org, err := scanOrg(r.db.QueryRow(ctx,
		`SELECT `+orgColumns+` FROM organizations WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrOrgNotFound
		}
		return nil, fmt.Errorf("get organization: %w", err)
	}
	return org, nil
}

func (r *OrganizationPostgres) List(ctx context.Context) ([]*entity.Organization, error) {
	rows, err := r.db.Query(ctx, `SELECT `+orgColumns+` FROM organizations ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list organizations: %w", err)
	}
	defer rows.Close()

	orgs := make([]*entity.Organization, 0)
	for rows.Next() {
		org, err := scanOrg(rows)
		if err != nil {
			return nil, fmt.Errorf("scan organization: %w", err)
		}
		orgs = append(orgs, org)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list organizations: %w", err)
	}

	return orgs, nil
}

func (r *OrganizationPostgres) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM organizations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete organization: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return entity.ErrOrgNotFound
	}
	return nil
}
