package chatbot

import "testing"

func TestValidateNonEmpty(t *testing.T) {
	t.Parallel()

	if !Validate(ValidateNonEmpty, nil, "Acme Corp") {
		t.Fatalf("expected non-empty text to pass")
	}
	if Validate(ValidateNonEmpty, nil, "") {
		t.Fatalf("expected empty text to fail")
	}
	if Validate(ValidateNonEmpty, nil, "   \t ") {
		t.Fatalf("expected whitespace-only text to fail")
	}
}

func TestValidateDate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in string
		ok bool
	}{
		{"2024-03-15", true},
		{" 2024-03-15 ", true},
		{"2024-3-15", false},
		{"15-03-2024", false},
		{"2024-13-01", false},
		{"2024-02-30", false},
		{"yesterday", false},
		{"", false},
	}

	for _, tc := range cases {
		if got := Validate(ValidateDate, nil, tc.in); got != tc.ok {
			t.Errorf("Validate(date, %q) = %v, want %v", tc.in, got, tc.ok)
		}
	}
}

func TestValidateNumber(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in string
		ok bool
	}{
		{"2.5", true},
		{"0", true},
		{"450", true},
		{"-1.25", true},
		{" 3.0 ", true},
		{"two", false},
		{"2,5", false},
		{"", false},
	}

	for _, tc := range cases {
		if got := Validate(ValidateNumber, nil, tc.in); got != tc.ok {
			t.Errorf("Validate(number, %q) = %v, want %v", tc.in, got, tc.ok)
		}
	}
}

func TestValidateOneOf(t *testing.T) {
	t.Parallel()

	allowed := []string{"fee", "cost"}

	if !Validate(ValidateOneOf, allowed, "fee") {
		t.Fatalf("expected exact member to pass")
	}
	if !Validate(ValidateOneOf, allowed, "FEE") {
		t.Fatalf("expected case-insensitive member to pass")
	}
	if !Validate(ValidateOneOf, allowed, "  Cost ") {
		t.Fatalf("expected trimmed member to pass")
	}
	if Validate(ValidateOneOf, allowed, "expense") {
		t.Fatalf("expected non-member to fail")
	}
	if Validate(ValidateOneOf, allowed, "") {
		t.Fatalf("expected empty text to fail")
	}
}
