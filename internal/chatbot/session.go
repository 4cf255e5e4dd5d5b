package chatbot

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/matterai/timesheet-backend/internal/entity"
)

// Session tracks one conversation's progress through the question catalog.
// Exactly one of {answering, confirming, done} holds at any time:
// PendingConfirmation is true iff every question is answered and the session
// is not yet terminal.
type Session struct {
	ID                  string
	QuestionIndex       int
	Draft               EntryDraft
	PendingConfirmation bool
	Completed           bool
	CreatedAt           time.Time

	// mu serializes all mutations for this session; concurrent messages
	// against the same identifier are processed one at a time.
	mu sync.Mutex
}

func (s *Session) Lock()   { s.mu.Lock() }
func (s *Session) Unlock() { s.mu.Unlock() }

// EntryDraft accumulates typed answers, one optional field per catalog
// question. A nil field means the question has not been reached yet.
type EntryDraft struct {
	Client      *string
	Matter      *string
	Timekeeper  *string
	Date        *string
	Type        *string
	HoursWorked *float64
	HoursBilled *float64
	Activity    *string
	Quantity    *float64
	Expense     *string
	Rate        *float64
	Currency    *string
	PhaseTask   *string
	BillCode    *string
	Status      *string
	Narrative   *string
}

// NormalizeCurrency maps display names and lower-case codes to the 3-letter
// code. Already-normalized codes map to themselves.
func NormalizeCurrency(raw string) string {
	return entity.NormalizeCurrency(raw)
}

// NormalizeEntryType capitalizes the answer: "fee" -> "Fee", "COST" -> "Cost".
func NormalizeEntryType(raw string) string {
	return entity.NormalizeEntryType(raw)
}

// Set converts the validated raw answer and stores it under the catalog
// field. Numeric fields are parsed as floats, currency is normalized to a
// 3-letter code, entry type is capitalized and everything else is stored as
// trimmed text.
func (d *EntryDraft) Set(field, raw string) error {
	raw = strings.TrimSpace(raw)

	switch field {
	case FieldClient:
		d.Client = &raw
	case FieldMatter:
		d.Matter = &raw
	case FieldTimekeeper:
		d.Timekeeper = &raw
	case FieldDate:
		d.Date = &raw
	case FieldType:
		normalized := NormalizeEntryType(raw)
		d.Type = &normalized
	case FieldHoursWorked:
		return setFloat(&d.HoursWorked, raw)
	case FieldHoursBilled:
		return setFloat(&d.HoursBilled, raw)
	case FieldActivity:
		d.Activity = &raw
	case FieldQuantity:
		return setFloat(&d.Quantity, raw)
	case FieldExpense:
		d.Expense = &raw
	case FieldRate:
		return setFloat(&d.Rate, raw)
	case FieldCurrency:
		normalized := NormalizeCurrency(raw)
		d.Currency = &normalized
	case FieldPhaseTask:
		d.PhaseTask = &raw
	case FieldBillCode:
		d.BillCode = &raw
	case FieldStatus:
		d.Status = &raw
	case FieldNarrative:
		d.Narrative = &raw
	default:
		return fmt.Errorf("unknown catalog field: %s", field)
	}

	return nil
}

func setFloat(dst **float64, raw string) error {
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("parse %q as number: %w", raw, err)
	}
	*dst = &value
	return nil
}

// Get returns the stored answer for a field as display text, or ("", false)
// if the question has not been answered yet.
func (d *EntryDraft) Get(field string) (string, bool) {
	switch field {
	case FieldClient:
		return deref(d.Client)
	case FieldMatter:
		return deref(d.Matter)
	case FieldTimekeeper:
		return deref(d.Timekeeper)
	case FieldDate:
		return deref(d.Date)
	case FieldType:
		return deref(d.Type)
	case FieldHoursWorked:
		return derefFloat(d.HoursWorked)
	case FieldHoursBilled:
		return derefFloat(d.HoursBilled)
	case FieldActivity:
		return deref(d.Activity)
	case FieldQuantity:
		return derefFloat(d.Quantity)
	case FieldExpense:
		return deref(d.Expense)
	case FieldRate:
		return derefFloat(d.Rate)
	case FieldCurrency:
		return deref(d.Currency)
	case FieldPhaseTask:
		return deref(d.PhaseTask)
	case FieldBillCode:
		return deref(d.BillCode)
	case FieldStatus:
		return deref(d.Status)
	case FieldNarrative:
		return deref(d.Narrative)
	default:
		return "", false
	}
}

// Total computes the derived amount: rate * hours billed for Fee entries,
// rate * quantity for Cost entries. Missing operands count as zero.
func (d *EntryDraft) Total() float64 {
	var rate, units float64
	if d.Rate != nil {
		rate = *d.Rate
	}

	if d.Type != nil && *d.Type == "Cost" {
		if d.Quantity != nil {
			units = *d.Quantity
		}
	} else if d.HoursBilled != nil {
		units = *d.HoursBilled
	}

	return rate * units
}

func deref(s *string) (string, bool) {
	if s == nil {
		return "", false
	}
	return *s, true
}

func derefFloat(f *float64) (string, bool) {
	if f == nil {
		return "", false
	}
	return strconv.FormatFloat(*f, 'f', -1, 64), true
}
