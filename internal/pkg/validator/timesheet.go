package validator

import (
	"fmt"
	"time"

	"github.com/matterai/timesheet-backend/internal/entity"
)

const entryDateLayout = "2006-01-02"

var allowedCurrencies = map[string]bool{
	"USD": true,
	"EUR": true,
	"GBP": true,
}

var allowedBillCodes = map[string]bool{
	"Billable":     true,
	"Non-Billable": true,
}

var allowedStatuses = map[string]bool{
	"Invoice": true,
	"Hold":    true,
}

// ValidateCreateEntry validates a create or update entry request. The
// request is expected to be already normalized (currency codes, enum
// casing) by the caller.
func (v *Validator) ValidateCreateEntry(req *entity.CreateEntryRequest) error {
	if req.Client == "" {
		return fmt.Errorf("%w: client", entity.ErrMissingField)
	}
	if req.Matter == "" {
		return fmt.Errorf("%w: matter", entity.ErrMissingField)
	}
	if req.Timekeeper == "" {
		return fmt.Errorf("%w: timekeeper", entity.ErrMissingField)
	}
	if req.Narrative == "" {
		return fmt.Errorf("%w: narrative", entity.ErrMissingField)
	}

	if req.EntryDate == "" {
		return fmt.Errorf("%w: date", entity.ErrMissingField)
	}
	if _, err := time.Parse(entryDateLayout, req.EntryDate); err != nil {
		return fmt.Errorf("%w: date %q (expected YYYY-MM-DD)", entity.ErrInvalidFormat, req.EntryDate)
	}

	if err := entity.EntryType(req.EntryType).Validate(); err != nil {
		return err
	}

	if req.Rate < 0 {
		return fmt.Errorf("%w: rate must not be negative", entity.ErrInvalidParameter)
	}

	if !allowedCurrencies[req.Currency] {
		return fmt.Errorf("%w: currency %q", entity.ErrInvalidParameter, req.Currency)
	}
	if !allowedBillCodes[req.BillCode] {
		return fmt.Errorf("%w: bill_code %q", entity.ErrInvalidParameter, req.BillCode)
	}
	if !allowedStatuses[req.EntryStatus] {
		return fmt.Errorf("%w: status %q", entity.ErrInvalidParameter, req.EntryStatus)
	}

	return nil
}
