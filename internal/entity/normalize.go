package entity

import "strings"

var currencyAliases = map[string]Currency{
	"usd":        CurrencyUSD,
	"us dollars": CurrencyUSD,
	"eur":        CurrencyEUR,
	"gbp":        CurrencyGBP,
}

// NormalizeCurrency maps display names and lower-case codes to the 3-letter
// code. Already-normalized codes map to themselves; unknown inputs are
// upper-cased and left for validation to reject.
func NormalizeCurrency(raw string) string {
	if code, ok := currencyAliases[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return string(code)
	}
	return strings.ToUpper(strings.TrimSpace(raw))
}

// NormalizeEntryType capitalizes the value: "fee" -> "Fee", "COST" -> "Cost".
func NormalizeEntryType(raw string) string {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" {
		return raw
	}
	return strings.ToUpper(raw[:1]) + raw[1:]
}

// NormalizeBillCode maps case-insensitive input to "Billable" or
// "Non-Billable". Unknown inputs pass through for validation to reject.
func NormalizeBillCode(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "billable":
		return string(BillCodeBillable)
	case "non-billable":
		return string(BillCodeNonBillable)
	default:
		return strings.TrimSpace(raw)
	}
}

// NormalizeEntryStatus maps case-insensitive input to "Invoice" or "Hold".
func NormalizeEntryStatus(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "invoice":
		return string(EntryStatusInvoice)
	case "hold":
		return string(EntryStatusHold)
	default:
		return strings.TrimSpace(raw)
	}
}
