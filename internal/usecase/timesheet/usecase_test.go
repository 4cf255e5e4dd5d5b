package timesheet

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/matterai/timesheet-backend/internal/config"
	"github.com/matterai/timesheet-backend/internal/entity"
	"github.com/matterai/timesheet-backend/internal/pkg/formatter"
	"github.com/matterai/timesheet-backend/internal/pkg/validator"
	"go.uber.org/zap"
)

type fakeEntryRepo struct {
	entries map[string]*entity.TimesheetEntry
	nextID  int
}

func newFakeEntryRepo() *fakeEntryRepo {
	return &fakeEntryRepo{entries: map[string]*entity.TimesheetEntry{}}
}

func (r *fakeEntryRepo) Create(_ context.Context, entry *entity.TimesheetEntry) (*entity.TimesheetEntry, error) {
	r.nextID++
	stored := *entry
	stored.ID = strings.Repeat("0", r.nextID) // distinct, deterministic
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	r.entries[stored.ID] = &stored
	return &stored, nil
}

func (r *fakeEntryRepo) Get(_ context.Context, userID, id string) (*entity.TimesheetEntry, error) {
	entry, ok := r.entries[id]
	if !ok || entry.UserID != userID {
		return nil, entity.ErrEntryNotFound
	}
	return entry, nil
}

func (r *fakeEntryRepo) List(_ context.Context, userID string, _ entity.EntryFilter) ([]*entity.TimesheetEntry, error) {
	out := []*entity.TimesheetEntry{}
	for _, entry := range r.entries {
		if entry.UserID == userID {
			out = append(out, entry)
		}
	}
	return out, nil
}

func (r *fakeEntryRepo) Update(_ context.Context, entry *entity.TimesheetEntry) (*entity.TimesheetEntry, error) {
	existing, ok := r.entries[entry.ID]
	if !ok || existing.UserID != entry.UserID {
		return nil, entity.ErrEntryNotFound
	}
	stored := *entry
	r.entries[entry.ID] = &stored
	return &stored, nil
}

func (r *fakeEntryRepo) Delete(_ context.Context, userID, id string) error {
	entry, ok := r.entries[id]
	if !ok || entry.UserID != userID {
		return entity.ErrEntryNotFound
	}
	delete(r.entries, id)
	return nil
}

type recordingNotifier struct {
	created   []*entity.WebhookEntryData
	submitted []*entity.WebhookEntryData
	deleted   []*entity.WebhookEntryData
}

func (n *recordingNotifier) NotifyEntryCreated(_ context.Context, d *entity.WebhookEntryData) {
	n.created = append(n.created, d)
}

func (n *recordingNotifier) NotifyEntrySubmitted(_ context.Context, d *entity.WebhookEntryData) {
	n.submitted = append(n.submitted, d)
}

func (n *recordingNotifier) NotifyEntryDeleted(_ context.Context, d *entity.WebhookEntryData) {
	n.deleted = append(n.deleted, d)
}

func newTestUsecase() (*TimesheetUsecase, *fakeEntryRepo, *recordingNotifier) {
	repo := newFakeEntryRepo()
	notifier := &recordingNotifier{}
	uc := NewUsecase(
		repo,
		validator.NewValidator(config.FileUploadConfig{MaxFileSize: 1 << 20}),
		formatter.NewFactory(),
		notifier,
		zap.NewNop(),
	)
	return uc, repo, notifier
}

func feeRequest() *entity.CreateEntryRequest {
	hours := 2.5
	return &entity.CreateEntryRequest{
		Client:      "Acme Corp",
		Matter:      "Contract review",
		Timekeeper:  "Jane Smith",
		EntryDate:   "2024-03-15",
		EntryType:   "fee",
		HoursBilled: &hours,
		Rate:        450,
		Currency:    "US dollars",
		PhaseTask:   "P100",
		BillCode:    "billable",
		EntryStatus: "invoice",
		Narrative:   "Reviewed agreement",
	}
}

func TestCreateEntryNormalizesAndDerivesTotal(t *testing.T) {
	t.Parallel()

	uc, _, notifier := newTestUsecase()

	entry, err := uc.CreateEntry(context.Background(), "u1", feeRequest())
	if err != nil {
		t.Fatalf("CreateEntry: %v", err)
	}

	if entry.Currency != entity.CurrencyUSD {
		t.Errorf("currency = %q, want USD", entry.Currency)
	}
	if entry.EntryType != entity.EntryTypeFee {
		t.Errorf("type = %q, want Fee", entry.EntryType)
	}
	if entry.BillCode != entity.BillCodeBillable {
		t.Errorf("bill code = %q", entry.BillCode)
	}
	if entry.Total != 1125.0 {
		t.Errorf("total = %v, want 1125.0", entry.Total)
	}
	if len(notifier.created) != 1 {
		t.Errorf("created events = %d, want 1", len(notifier.created))
	}
	if len(notifier.submitted) != 0 {
		t.Errorf("api creation must not emit submitted events")
	}
}

func TestCreateEntryCostTotal(t *testing.T) {
	t.Parallel()

	uc, _, _ := newTestUsecase()

	qty := 3.0
	req := feeRequest()
	req.EntryType = "cost"
	req.Quantity = &qty
	req.Rate = 25.5

	entry, err := uc.CreateEntry(context.Background(), "u1", req)
	if err != nil {
		t.Fatalf("CreateEntry: %v", err)
	}
	if entry.Total != 76.5 {
		t.Errorf("total = %v, want 76.5", entry.Total)
	}
}

func TestCreateEntryRejectsInvalid(t *testing.T) {
	t.Parallel()

	uc, _, _ := newTestUsecase()

	cases := []func(*entity.CreateEntryRequest){
		func(r *entity.CreateEntryRequest) { r.Client = "" },
		func(r *entity.CreateEntryRequest) { r.EntryDate = "15-03-2024" },
		func(r *entity.CreateEntryRequest) { r.EntryType = "expense" },
		func(r *entity.CreateEntryRequest) { r.Currency = "CHF" },
		func(r *entity.CreateEntryRequest) { r.Rate = -1 },
		func(r *entity.CreateEntryRequest) { r.EntryStatus = "draft" },
	}

	for i, mutate := range cases {
		req := feeRequest()
		mutate(req)
		if _, err := uc.CreateEntry(context.Background(), "u1", req); !errors.Is(err, entity.ErrInvalidEntry) {
			t.Errorf("case %d: err = %v, want ErrInvalidEntry", i, err)
		}
	}
}

func TestSubmitEntryEmitsSubmittedEvent(t *testing.T) {
	t.Parallel()

	uc, _, notifier := newTestUsecase()

	if _, err := uc.SubmitEntry(context.Background(), "u1", feeRequest()); err != nil {
		t.Fatalf("SubmitEntry: %v", err)
	}
	if len(notifier.submitted) != 1 {
		t.Fatalf("submitted events = %d, want 1", len(notifier.submitted))
	}
	if notifier.submitted[0].Source != "chatbot" {
		t.Errorf("source = %q, want chatbot", notifier.submitted[0].Source)
	}
}

func TestEntryOwnershipScoping(t *testing.T) {
	t.Parallel()

	uc, _, _ := newTestUsecase()
	ctx := context.Background()

	entry, err := uc.CreateEntry(ctx, "u1", feeRequest())
	if err != nil {
		t.Fatalf("CreateEntry: %v", err)
	}

	if _, err := uc.GetEntry(ctx, "u2", entry.ID); !errors.Is(err, entity.ErrEntryNotFound) {
		t.Fatalf("foreign get err = %v, want ErrEntryNotFound", err)
	}
	if err := uc.DeleteEntry(ctx, "u2", entry.ID); !errors.Is(err, entity.ErrEntryNotFound) {
		t.Fatalf("foreign delete err = %v, want ErrEntryNotFound", err)
	}
}

func TestDuplicateEntry(t *testing.T) {
	t.Parallel()

	uc, _, _ := newTestUsecase()
	ctx := context.Background()

	entry, err := uc.CreateEntry(ctx, "u1", feeRequest())
	if err != nil {
		t.Fatalf("CreateEntry: %v", err)
	}

	clone, err := uc.DuplicateEntry(ctx, "u1", entry.ID)
	if err != nil {
		t.Fatalf("DuplicateEntry: %v", err)
	}
	if clone.ID == entry.ID {
		t.Fatalf("duplicate must get a new identifier")
	}
	if clone.Client != entry.Client || clone.Total != entry.Total {
		t.Errorf("duplicate lost field values")
	}
	today := time.Now().UTC().Truncate(24 * time.Hour)
	if !clone.EntryDate.Equal(today) {
		t.Errorf("duplicate date = %v, want today", clone.EntryDate)
	}
}

func TestDeleteEntryNotifies(t *testing.T) {
	t.Parallel()

	uc, _, notifier := newTestUsecase()
	ctx := context.Background()

	entry, err := uc.CreateEntry(ctx, "u1", feeRequest())
	if err != nil {
		t.Fatalf("CreateEntry: %v", err)
	}
	if err := uc.DeleteEntry(ctx, "u1", entry.ID); err != nil {
		t.Fatalf("DeleteEntry: %v", err)
	}
	if len(notifier.deleted) != 1 {
		t.Fatalf("deleted events = %d, want 1", len(notifier.deleted))
	}
	if _, err := uc.GetEntry(ctx, "u1", entry.ID); !errors.Is(err, entity.ErrEntryNotFound) {
		t.Fatalf("entry still present after delete")
	}
}

func TestExportMarkdown(t *testing.T) {
	t.Parallel()

	uc, _, _ := newTestUsecase()
	ctx := context.Background()

	if _, err := uc.CreateEntry(ctx, "u1", feeRequest()); err != nil {
		t.Fatalf("CreateEntry: %v", err)
	}

	payload, contentType, filename, err := uc.Export(ctx, "u1", entity.EntryFilter{}, entity.FormatMarkdown)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if !strings.Contains(string(payload), "Acme Corp") {
		t.Errorf("export missing entry data")
	}
	if !strings.HasPrefix(contentType, "text/markdown") {
		t.Errorf("content type = %q", contentType)
	}
	if !strings.HasSuffix(filename, ".md") {
		t.Errorf("filename = %q", filename)
	}
}

func TestExportRejectsUnknownFormat(t *testing.T) {
	t.Parallel()

	uc, _, _ := newTestUsecase()

	if _, _, _, err := uc.Export(context.Background(), "u1", entity.EntryFilter{}, "xml"); !errors.Is(err, entity.ErrInvalidParameter) {
		t.Fatalf("err = %v, want ErrInvalidParameter", err)
	}
}
