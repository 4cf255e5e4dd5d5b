package chatbot

import "testing"

func TestNormalizeCurrency(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"usd":        "USD",
		"USD":        "USD",
		"US dollars": "USD",
		"us dollars": "USD",
		"eur":        "EUR",
		"GBP":        "GBP",
	}

	for in, want := range cases {
		if got := NormalizeCurrency(in); got != want {
			t.Errorf("NormalizeCurrency(%q) = %q, want %q", in, got, want)
		}
	}

	// Normalization is idempotent: a normalized code maps to itself.
	for _, code := range []string{"USD", "EUR", "GBP"} {
		if got := NormalizeCurrency(NormalizeCurrency(code)); got != code {
			t.Errorf("double normalization of %q = %q", code, got)
		}
	}
}

func TestNormalizeEntryType(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"fee":  "Fee",
		"FEE":  "Fee",
		"Cost": "Cost",
		"cost": "Cost",
	}

	for in, want := range cases {
		if got := NormalizeEntryType(in); got != want {
			t.Errorf("NormalizeEntryType(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDraftTotalFee(t *testing.T) {
	t.Parallel()

	var d EntryDraft
	mustSet(t, &d, FieldType, "fee")
	mustSet(t, &d, FieldHoursBilled, "2.5")
	mustSet(t, &d, FieldQuantity, "99")
	mustSet(t, &d, FieldRate, "450")

	if got := d.Total(); got != 1125.0 {
		t.Fatalf("fee total = %v, want 1125.0", got)
	}
}

func TestDraftTotalCost(t *testing.T) {
	t.Parallel()

	var d EntryDraft
	mustSet(t, &d, FieldType, "cost")
	mustSet(t, &d, FieldHoursBilled, "99")
	mustSet(t, &d, FieldQuantity, "3")
	mustSet(t, &d, FieldRate, "25.5")

	if got := d.Total(); got != 76.5 {
		t.Fatalf("cost total = %v, want 76.5", got)
	}
}

func TestDraftTotalMissingOperands(t *testing.T) {
	t.Parallel()

	var d EntryDraft
	if got := d.Total(); got != 0 {
		t.Fatalf("empty draft total = %v, want 0", got)
	}
}

func TestDraftSetTrimsAndNormalizes(t *testing.T) {
	t.Parallel()

	var d EntryDraft
	mustSet(t, &d, FieldClient, "  Acme Corp  ")
	mustSet(t, &d, FieldCurrency, "US dollars")
	mustSet(t, &d, FieldType, "FEE")

	if got, _ := d.Get(FieldClient); got != "Acme Corp" {
		t.Errorf("client = %q, want trimmed", got)
	}
	if got, _ := d.Get(FieldCurrency); got != "USD" {
		t.Errorf("currency = %q, want USD", got)
	}
	if got, _ := d.Get(FieldType); got != "Fee" {
		t.Errorf("type = %q, want Fee", got)
	}
}

func TestDraftGetUnanswered(t *testing.T) {
	t.Parallel()

	var d EntryDraft
	if _, ok := d.Get(FieldNarrative); ok {
		t.Fatalf("expected unanswered field to report absent")
	}
}

func mustSet(t *testing.T, d *EntryDraft, field, raw string) {
	t.Helper()
	if err := d.Set(field, raw); err != nil {
		t.Fatalf("Set(%s, %q): %v", field, raw, err)
	}
}
