package entity

import "testing"

func TestEntryTypeValidate(t *testing.T) {
	t.Parallel()

	// Called on conversion results, the way the request validator does.
	if err := EntryType("Fee").Validate(); err != nil {
		t.Errorf("Validate(Fee) = %v, want nil", err)
	}
	if err := EntryType("Cost").Validate(); err != nil {
		t.Errorf("Validate(Cost) = %v, want nil", err)
	}
	if err := EntryType("Expense").Validate(); err == nil {
		t.Error("Validate(Expense) = nil, want error")
	}
	if err := EntryType("fee").Validate(); err == nil {
		t.Error("Validate(fee) = nil, want error before normalization")
	}
}
