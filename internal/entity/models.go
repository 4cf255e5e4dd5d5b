package entity

import (
	"fmt"
	"time"
)

type EntryType string

const (
	EntryTypeFee  EntryType = "Fee"
	EntryTypeCost EntryType = "Cost"
)

func (et EntryType) Validate() error {
	switch et {
	case EntryTypeFee, EntryTypeCost:
		return nil
	default:
		return fmt.Errorf("unknown entry type: %s", et)
	}
}

type BillCode string

const (
	BillCodeBillable    BillCode = "Billable"
	BillCodeNonBillable BillCode = "Non-Billable"
)

type EntryStatus string

const (
	EntryStatusInvoice EntryStatus = "Invoice"
	EntryStatusHold    EntryStatus = "Hold"
)

type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyGBP Currency = "GBP"
)

// TimesheetEntry is a single billed unit of work or expense.
// Hours fields apply to Fee entries, quantity/expense to Cost entries;
// the guided flow collects all of them regardless of type.
type TimesheetEntry struct {
	ID          string      `json:"id"`
	UserID      string      `json:"user_id"`
	Client      string      `json:"client"`
	Matter      string      `json:"matter"`
	Timekeeper  string      `json:"timekeeper"`
	EntryDate   time.Time   `json:"date"`
	EntryType   EntryType   `json:"type"`
	HoursWorked *float64    `json:"hours_worked,omitempty"`
	HoursBilled *float64    `json:"hours_billed,omitempty"`
	Quantity    *float64    `json:"quantity,omitempty"`
	Rate        float64     `json:"rate"`
	Currency    Currency    `json:"currency"`
	Total       float64     `json:"total"`
	PhaseTask   string      `json:"phase_task"`
	Activity    *string     `json:"activity,omitempty"`
	Expense     *string     `json:"expense,omitempty"`
	BillCode    BillCode    `json:"bill_code"`
	EntryStatus EntryStatus `json:"status"`
	Narrative   string      `json:"narrative"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

type RoleName string

const (
	RoleSuperAdmin RoleName = "SuperAdmin"
	RoleOrgAdmin   RoleName = "OrgAdmin"
	RoleMember     RoleName = "Member"
)

type User struct {
	ID           string    `json:"id"`
	OrgID        *string   `json:"org_id,omitempty"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Role         RoleName  `json:"role"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Organization struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// StoredFile is uploaded-file metadata; bytes live on disk under the
// upload directory keyed by file ID.
type StoredFile struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Filename    string    `json:"name"`
	Size        int64     `json:"size"`
	ContentType string    `json:"type"`
	CreatedAt   time.Time `json:"uploaded_at"`
}

// EntryFilter narrows entry listings; zero values mean "no filter".
type EntryFilter struct {
	Client     string
	Matter     string
	Timekeeper string
	DateFrom   *time.Time
	DateTo     *time.Time
	EntryType  string
	Limit      int
	Offset     int
}
