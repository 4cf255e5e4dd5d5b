package validator

import (
	"errors"
	"mime/multipart"
	"testing"

	"github.com/matterai/timesheet-backend/internal/config"
	"github.com/matterai/timesheet-backend/internal/entity"
)

func newTestValidator() *Validator {
	return NewValidator(config.FileUploadConfig{
		MaxFileSize:   1024,
		MaxUploadSize: 2048,
		StorageDir:    "uploads",
	})
}

func validEntryRequest() *entity.CreateEntryRequest {
	hours := 2.5
	return &entity.CreateEntryRequest{
		Client:      "Acme Corp",
		Matter:      "Contract review",
		Timekeeper:  "Jane Smith",
		EntryDate:   "2024-03-15",
		EntryType:   "Fee",
		HoursBilled: &hours,
		Rate:        450,
		Currency:    "USD",
		BillCode:    "Billable",
		EntryStatus: "Invoice",
		Narrative:   "Reviewed agreement",
	}
}

func TestValidateCreateEntryAccepts(t *testing.T) {
	t.Parallel()

	if err := newTestValidator().ValidateCreateEntry(validEntryRequest()); err != nil {
		t.Fatalf("ValidateCreateEntry() = %v, want nil", err)
	}
}

func TestValidateCreateEntryRejects(t *testing.T) {
	t.Parallel()

	v := newTestValidator()

	cases := []struct {
		name   string
		mutate func(req *entity.CreateEntryRequest)
	}{
		{"empty client", func(req *entity.CreateEntryRequest) { req.Client = "" }},
		{"empty narrative", func(req *entity.CreateEntryRequest) { req.Narrative = "" }},
		{"bad date", func(req *entity.CreateEntryRequest) { req.EntryDate = "15/03/2024" }},
		{"bad entry type", func(req *entity.CreateEntryRequest) { req.EntryType = "Expense" }},
		{"bad currency", func(req *entity.CreateEntryRequest) { req.Currency = "RUB" }},
		{"bad bill code", func(req *entity.CreateEntryRequest) { req.BillCode = "Maybe" }},
		{"bad status", func(req *entity.CreateEntryRequest) { req.EntryStatus = "Draft" }},
		{"negative rate", func(req *entity.CreateEntryRequest) { req.Rate = -1 }},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			req := validEntryRequest()
			tc.mutate(req)
			if err := v.ValidateCreateEntry(req); err == nil {
				t.Fatal("ValidateCreateEntry() = nil, want error")
			}
		})
	}
}

func TestValidateLogin(t *testing.T) {
	t.Parallel()

	v := newTestValidator()

	if err := v.ValidateLogin(&entity.LoginRequest{Username: "jane", Password: "secret"}); err != nil {
		t.Fatalf("ValidateLogin() = %v, want nil", err)
	}
	if err := v.ValidateLogin(&entity.LoginRequest{Password: "secret"}); err == nil {
		t.Fatal("ValidateLogin() without username = nil, want error")
	}
	if err := v.ValidateLogin(&entity.LoginRequest{Username: "jane"}); err == nil {
		t.Fatal("ValidateLogin() without password = nil, want error")
	}
}

func TestValidateCreateUser(t *testing.T) {
	t.Parallel()

	v := newTestValidator()

	valid := &entity.CreateUserRequest{
		Username: "jane",
		Email:    "jane@example.com",
		Password: "longenough",
		Name:     "Jane Smith",
		Role:     "Member",
	}
	if err := v.ValidateCreateUser(valid); err != nil {
		t.Fatalf("ValidateCreateUser() = %v, want nil", err)
	}

	short := *valid
	short.Password = "short"
	if err := v.ValidateCreateUser(&short); err == nil {
		t.Fatal("short password accepted")
	}

	badEmail := *valid
	badEmail.Email = "not-an-email"
	if err := v.ValidateCreateUser(&badEmail); err == nil {
		t.Fatal("bad email accepted")
	}

	badRole := *valid
	badRole.Role = "Owner"
	if err := v.ValidateCreateUser(&badRole); err == nil {
		t.Fatal("unknown role accepted")
	}
}

func TestValidateUpload(t *testing.T) {
	t.Parallel()

	v := newTestValidator()

	ok := &multipart.FileHeader{Filename: "brief.pdf", Size: 512}
	if err := v.ValidateUpload(ok); err != nil {
		t.Fatalf("ValidateUpload(pdf) = %v, want nil", err)
	}

	tooBig := &multipart.FileHeader{Filename: "brief.pdf", Size: 4096}
	if err := v.ValidateUpload(tooBig); !errors.Is(err, entity.ErrFileTooLarge) {
		t.Fatalf("ValidateUpload(oversized) = %v, want ErrFileTooLarge", err)
	}

	badExt := &multipart.FileHeader{Filename: "malware.exe", Size: 10}
	if err := v.ValidateUpload(badExt); !errors.Is(err, entity.ErrInvalidExtension) {
		t.Fatalf("ValidateUpload(.exe) = %v, want ErrInvalidExtension", err)
	}
}
