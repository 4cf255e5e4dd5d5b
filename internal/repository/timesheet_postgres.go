package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/matterai/timesheet-backend/internal/entity"
)

// TimesheetRepository defines the interface for entry persistence
type TimesheetRepository interface {
	Create(ctx context.Context, entry *entity.TimesheetEntry) (*entity.TimesheetEntry, error)
	Get(ctx context.Context, userID, id string) (*entity.TimesheetEntry, error)
	List(ctx context.Context, userID string, filter entity.EntryFilter) ([]*entity.TimesheetEntry, error)
	Update(ctx context.Context, entry *entity.TimesheetEntry) (*entity.TimesheetEntry, error)
	Delete(ctx context.Context, userID, id string) error
}

var _ TimesheetRepository = &TimesheetPostgres{}

// TimesheetPostgres implements TimesheetRepository using PostgreSQL
type TimesheetPostgres struct {
	db *pgxpool.Pool
}

func NewTimesheetPostgres(db *pgxpool.Pool) *TimesheetPostgres {
	return &TimesheetPostgres{db: db}
}

const entryColumns = `id, user_id, client, matter, timekeeper, entry_date, entry_type,
	hours_worked, hours_billed, quantity, rate, currency, total, phase_task,
	activity, expense, bill_code, entry_status, narrative, created_at, updated_at`

func scanEntry(row pgx.Row) (*entity.TimesheetEntry, error) {
	var e entity.TimesheetEntry
	err := row.Scan(
		&e.ID, &e.UserID, &e.Client, &e.Matter, &e.Timekeeper, &e.EntryDate, &e.EntryType,
		&e.HoursWorked, &e.HoursBilled, &e.Quantity, &e.Rate, &e.Currency, &e.Total, &e.PhaseTask,
		&e.Activity, &e.Expense, &e.BillCode, &e.EntryStatus, &e.Narrative, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *TimesheetPostgres) Create(ctx context.Context, entry *entity.TimesheetEntry) (*entity.TimesheetEntry, error) {
	query := `
		INSERT INTO timesheet_entries (
			user_id, client, matter, timekeeper, entry_date, entry_type,
			hours_worked, hours_billed, quantity, rate, currency, total, phase_task,
			activity, expense, bill_code, entry_status, narrative
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		RETURNING ` + entryColumns

	created, err := scanEntry(r.db.QueryRow(ctx, query,
		entry.UserID, entry.Client, entry.Matter, entry.Timekeeper, entry.EntryDate, entry.EntryType,
		entry.HoursWorked, entry.HoursBilled, entry.Quantity, entry.Rate, entry.Currency, entry.Total,
		entry.PhaseTask, entry.Activity, entry.Expense, entry.BillCode, entry.EntryStatus, entry.Narrative,
	))
	if err != nil {
		return nil, fmt.Errorf("create entry: %w", err)
	}

	return created, nil
}

func (r *TimesheetPostgres) Get(ctx context.Context, userID, id string) (*entity.TimesheetEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM timesheet_entries WHERE id = $1 AND user_id = $2`

	entry, err := scanEntry(r.db.QueryRow(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrEntryNotFound
		}
		return nil, fmt.Errorf("get entry: %w", err)
	}

	return entry, nil
}

func (r *TimesheetPostgres) List(ctx context.Context, userID string, filter entity.EntryFilter) ([]*entity.TimesheetEntry, error) {
	var (
		conds = []string{"user_id = $1"}
		args  = []any{userID}
	)

	addCond := func(cond string, value any) {
		args = append(args, value)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if filter.Client != "" {
		addCond("client ILIKE $%d", "%"+filter.Client+"%")
	}
	if filter.Matter != "" {
		addCond("matter ILIKE $%d", "%"+filter.Matter+"%")
	}
	if filter.Timekeeper != "" {
		addCond("timekeeper ILIKE $%d", "%"+filter.Timekeeper+"%")
	}
	if filter.EntryType != "" {
		addCond("entry_type = $%d", filter.EntryType)
	}
	if filter.DateFrom != nil {
		addCond("entry_date >= $%d", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		addCond("entry_date <= $%d", *filter.DateTo)
	}

	query := `SELECT ` + entryColumns + ` FROM timesheet_entries WHERE ` +
		strings.Join(conds, " AND ") +
		` ORDER BY entry_date DESC, created_at DESC`

	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	entries := make([]*entity.TimesheetEntry, 0)
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}

	return entries, nil
}

func (r *TimesheetPostgres) Update(ctx context.Context, entry *entity.TimesheetEntry) (*entity.TimesheetEntry, error) {
	query := `
		UPDATE timesheet_entries SET
			client = $3, matter = $4, timekeeper = $5, entry_date = $6, entry_type = $7,
			hours_worked = $8, hours_billed = $9, quantity = $10, rate = $11, currency = $12,
			total = $13, phase_task = $14, activity = $15, expense = $16, bill_code = $17,
			entry_status = $18, narrative = $19, updated_at = now()
		WHERE id = $1 AND user_id = $2
		RETURNING ` + entryColumns

	updated, err := scanEntry(r.db.QueryRow(ctx, query,
		entry.ID, entry.UserID,
		entry.Client, entry.Matter, entry.Timekeeper, entry.EntryDate, entry.EntryType,
		entry.HoursWorked, entry.HoursBilled, entry.Quantity, entry.Rate, entry.Currency,
		entry.Total, entry.PhaseTask, entry.Activity, entry.Expense, entry.BillCode,
		entry.EntryStatus, entry.Narrative,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrEntryNotFound
		}
		return nil, fmt.Errorf("update entry: %w", err)
	}

	return updated, nil
}

func (r *TimesheetPostgres) Delete(ctx context.Context, userID, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM timesheet_entries WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return entity.ErrEntryNotFound
	}
	return nil
}
