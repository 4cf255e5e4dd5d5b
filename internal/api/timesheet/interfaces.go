package timesheet

import (
	"context"

	"github.com/matterai/timesheet-backend/internal/entity"
)

type TimesheetUsecase interface {
	CreateEntry(ctx context.Context, userID string, req *entity.CreateEntryRequest) (*entity.TimesheetEntry, error)
	GetEntry(ctx context.Context, userID, id string) (*entity.TimesheetEntry, error)
	ListEntries(ctx context.Context, userID string, filter entity.EntryFilter) ([]*entity.TimesheetEntry, error)
	UpdateEntry(ctx context.Context, userID, id string, req *entity.CreateEntryRequest) (*entity.TimesheetEntry, error)
	DeleteEntry(ctx context.Context, userID, id string) error
	DuplicateEntry(ctx context.Context, userID, id string) (*entity.TimesheetEntry, error)
	Export(ctx context.Context, userID string, filter entity.EntryFilter, format entity.ExportFormat) ([]byte, string, string, error)
	DropdownData(ctx context.Context) *entity.DropdownData
}
