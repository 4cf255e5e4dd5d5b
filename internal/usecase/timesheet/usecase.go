package timesheet

import (
	"context"
	"fmt"
	"time"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/matterai/timesheet-backend/internal/entity"
	"github.com/matterai/timesheet-backend/internal/pkg/formatter"
	"github.com/matterai/timesheet-backend/internal/pkg/validator"
	"github.com/matterai/timesheet-backend/internal/repository"
	"go.uber.org/zap"
)

const entryDateLayout = "2006-01-02"

// TimesheetUsecase implements entry business logic
type TimesheetUsecase struct {
	entryRepo        repository.TimesheetRepository
	validator        *validator.Validator
	formatterFactory *formatter.Factory
	notifier         WebhookNotifier
	logger           *zap.Logger
}

// NewUsecase creates a new timesheet use case
func NewUsecase(
	entryRepo repository.TimesheetRepository,
	validator *validator.Validator,
	formatterFactory *formatter.Factory,
	notifier WebhookNotifier,
	logger *zap.Logger,
) *TimesheetUsecase {
	return &TimesheetUsecase{
		entryRepo:        entryRepo,
		validator:        validator,
		formatterFactory: formatterFactory,
		notifier:         notifier,
		logger:           logger,
	}
}

// CreateEntry validates, normalizes and persists one entry coming from the
// REST API.
func (uc *TimesheetUsecase) CreateEntry(ctx context.Context, userID string, req *entity.CreateEntryRequest) (*entity.TimesheetEntry, error) {
	return uc.create(ctx, userID, req, "api")
}

// SubmitEntry persists one entry assembled by the guided conversation flow.
func (uc *TimesheetUsecase) SubmitEntry(ctx context.Context, userID string, req *entity.CreateEntryRequest) (*entity.TimesheetEntry, error) {
	return uc.create(ctx, userID, req, "chatbot")
}

func (uc *TimesheetUsecase) create(ctx context.Context, userID string, req *entity.CreateEntryRequest, source string) (*entity.TimesheetEntry, error) {
	entry, err := uc.buildEntry(userID, req)
	if err != nil {
		return nil, err
	}

	created, err := uc.entryRepo.Create(ctx, entry)
	if err != nil {
		return nil, fmt.Errorf("create entry: %w", err)
	}

	ctxzap.Info(ctx, "entry created",
		zap.String("entry_id", created.ID),
		zap.String("source", source),
		zap.Float64("total", created.Total),
	)

	data := webhookData(created, source)
	uc.notifier.NotifyEntryCreated(ctx, data)
	if source == "chatbot" {
		uc.notifier.NotifyEntrySubmitted(ctx, data)
	}

	return created, nil
}

// buildEntry normalizes and validates the request and derives the total
// when the caller did not supply one.
func (uc *TimesheetUsecase) buildEntry(userID string, req *entity.CreateEntryRequest) (*entity.TimesheetEntry, error) {
	normalized := *req
	normalized.EntryType = entity.NormalizeEntryType(req.EntryType)
	normalized.Currency = entity.NormalizeCurrency(req.Currency)
	normalized.BillCode = entity.NormalizeBillCode(req.BillCode)
	normalized.EntryStatus = entity.NormalizeEntryStatus(req.EntryStatus)

	if err := uc.validator.ValidateCreateEntry(&normalized); err != nil {
		return nil, fmt.Errorf("%w: %w", entity.ErrInvalidEntry, err)
	}

	entryDate, err := time.Parse(entryDateLayout, normalized.EntryDate)
	if err != nil {
		return nil, fmt.Errorf("%w: date: %w", entity.ErrInvalidEntry, err)
	}

	total := deriveTotal(&normalized)

	return &entity.TimesheetEntry{
		UserID:      userID,
		Client:      normalized.Client,
		Matter:      normalized.Matter,
		Timekeeper:  normalized.Timekeeper,
		EntryDate:   entryDate,
		EntryType:   entity.EntryType(normalized.EntryType),
		HoursWorked: normalized.HoursWorked,
		HoursBilled: normalized.HoursBilled,
		Quantity:    normalized.Quantity,
		Rate:        normalized.Rate,
		Currency:    entity.Currency(normalized.Currency),
		Total:       total,
		PhaseTask:   normalized.PhaseTask,
		Activity:    normalized.Activity,
		Expense:     normalized.Expense,
		BillCode:    entity.BillCode(normalized.BillCode),
		EntryStatus: entity.EntryStatus(normalized.EntryStatus),
		Narrative:   normalized.Narrative,
	}, nil
}

// deriveTotal computes rate * hours billed for fee entries and
// rate * quantity for cost entries unless the request already carries a
// total.
func deriveTotal(req *entity.CreateEntryRequest) float64 {
	if req.Total != nil {
		return *req.Total
	}

	var units float64
	if entity.EntryType(req.EntryType) == entity.EntryTypeCost {
		if req.Quantity != nil {
			units = *req.Quantity
		}
	} else if req.HoursBilled != nil {
		units = *req.HoursBilled
	}

	return req.Rate * units
}

// GetEntry returns one entry owned by the user
func (uc *TimesheetUsecase) GetEntry(ctx context.Context, userID, id string) (*entity.TimesheetEntry, error) {
	entry, err := uc.entryRepo.Get(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("get entry: %w", err)
	}
	return entry, nil
}

// ListEntries returns the user's entries narrowed by the filter
func (uc *TimesheetUsecase) ListEntries(ctx context.Context, userID string, filter entity.EntryFilter) ([]*entity.TimesheetEntry, error) {
	entries, err := uc.entryRepo.List(ctx, userID, filter)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	return entries, nil
}

// UpdateEntry replaces an entry's fields with the validated request
func (uc *TimesheetUsecase) UpdateEntry(ctx context.Context, userID, id string, req *entity.CreateEntryRequest) (*entity.TimesheetEntry, error) {
	if _, err := uc.entryRepo.Get(ctx, userID, id); err != nil {
		return nil, fmt.Errorf("get entry: %w", err)
	}

	entry, err := uc.buildEntry(userID, req)
	if err != nil {
		return nil, err
	}
	entry.ID = id

	updated, err := uc.entryRepo.Update(ctx, entry)
	if err != nil {
		return nil, fmt.Errorf("update entry: %w", err)
	}

	ctxzap.Info(ctx, "entry updated", zap.String("entry_id", updated.ID))
	return updated, nil
}

// DeleteEntry removes an entry owned by the user
func (uc *TimesheetUsecase) DeleteEntry(ctx context.Context, userID, id string) error {
	entry, err := uc.entryRepo.Get(ctx, userID, id)
	if err != nil {
		return fmt.Errorf("get entry: %w", err)
	}

	if err := uc.entryRepo.Delete(ctx, userID, id); err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}

	ctxzap.Info(ctx, "entry deleted", zap.String("entry_id", id))
	uc.notifier.NotifyEntryDeleted(ctx, webhookData(entry, "api"))
	return nil
}

// DuplicateEntry copies an existing entry under a new identifier with
// today's date.
func (uc *TimesheetUsecase) DuplicateEntry(ctx context.Context, userID, id string) (*entity.TimesheetEntry, error) {
	existing, err := uc.entryRepo.Get(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("get entry: %w", err)
	}

	clone := *existing
	clone.ID = ""
	clone.EntryDate = time.Now().UTC().Truncate(24 * time.Hour)

	created, err := uc.entryRepo.Create(ctx, &clone)
	if err != nil {
		return nil, fmt.Errorf("duplicate entry: %w", err)
	}

	ctxzap.Info(ctx, "entry duplicated",
		zap.String("source_id", id),
		zap.String("entry_id", created.ID),
	)

	uc.notifier.NotifyEntryCreated(ctx, webhookData(created, "api"))
	return created, nil
}

// Export renders the user's filtered entries in the requested format and
// returns the payload with its content type and suggested filename.
func (uc *TimesheetUsecase) Export(ctx context.Context, userID string, filter entity.EntryFilter, format entity.ExportFormat) ([]byte, string, string, error) {
	if !format.IsValid() {
		return nil, "", "", fmt.Errorf("%w: format %q", entity.ErrInvalidParameter, format)
	}

	entries, err := uc.entryRepo.List(ctx, userID, filter)
	if err != nil {
		return nil, "", "", fmt.Errorf("list entries: %w", err)
	}

	f, err := uc.formatterFactory.Create(format)
	if err != nil {
		return nil, "", "", fmt.Errorf("create formatter: %w", err)
	}

	payload, err := f.Format(entries)
	if err != nil {
		return nil, "", "", fmt.Errorf("format entries: %w", err)
	}

	filename := "timesheet_" + time.Now().UTC().Format("20060102") + f.FileExtension()
	return payload, f.ContentType(), filename, nil
}

// DropdownData returns the selector values offered by the entry form.
func (uc *TimesheetUsecase) DropdownData(ctx context.Context) *entity.DropdownData {
	return &entity.DropdownData{
		Clients: []string{"014 - General Dynamics", "101 - Envada"},
		Matters: []string{
			"0003US - METHODS AND APPARATUS FOR GENERATING A MULTIPLEXED COMMUNICATION SIGNALS",
			"0012US - ANALOG TO DIGITAL CONVERTER",
			"0025US - SIGNAL SEPARATION",
		},
		Timekeepers: []string{"John Doe", "Jane Smith", "Bob Johnson"},
		PhaseTasks: []string{
			"P100 - Case Assessment",
			"P200 - Discovery",
			"P300 - Motion Practice",
			"P400 - Trial Preparation",
		},
		Activities: []string{"A102 - Research", "A103 - Drafting", "A104 - Meeting"},
		Expenses: []string{
			"E001 - Travel",
			"E002 - Meals",
			"E003 - Lodging",
			"E004 - Communications",
		},
	}
}

func webhookData(entry *entity.TimesheetEntry, source string) *entity.WebhookEntryData {
	return &entity.WebhookEntryData{
		EntryID: entry.ID,
		UserID:  entry.UserID,
		Client:  entry.Client,
		Type:    string(entry.EntryType),
		Total:   entry.Total,
		Source:  source,
	}
}
