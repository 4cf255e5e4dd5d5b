package chatbot

// Question binds one catalog field to its prompt, validation rule and
// re-prompt error message.
type Question struct {
	Field   string
	Prompt  string
	Kind    ValidatorKind
	Allowed []string
	ErrMsg  string
}

// Catalog is the fixed ordered list of questions the guided flow asks to
// build one timesheet entry. Order matters: the entry type answer decides
// which derived-total formula applies later, although every question is
// asked regardless of type.
//
// Read-only process-wide state; never mutate.
var Catalog = []Question{
	{
		Field:  FieldClient,
		Prompt: "Which client is this entry for?",
		Kind:   ValidateNonEmpty,
		ErrMsg: "Client name cannot be empty.",
	},
	{
		Field:  FieldMatter,
		Prompt: "What is the matter description?",
		Kind:   ValidateNonEmpty,
		ErrMsg: "Matter description cannot be empty.",
	},
	{
		Field:  FieldTimekeeper,
		Prompt: "Who is the timekeeper?",
		Kind:   ValidateNonEmpty,
		ErrMsg: "Timekeeper name cannot be empty.",
	},
	{
		Field:  FieldDate,
		Prompt: "What date is this entry for? (YYYY-MM-DD)",
		Kind:   ValidateDate,
		ErrMsg: "Please enter the date in YYYY-MM-DD format, e.g. 2025-01-15.",
	},
	{
		Field:   FieldType,
		Prompt:  "Is this a Fee or a Cost entry?",
		Kind:    ValidateOneOf,
		Allowed: []string{"fee", "cost"},
		ErrMsg:  "Please answer 'Fee' or 'Cost'.",
	},
	{
		Field:  FieldHoursWorked,
		Prompt: "How many hours were worked?",
		Kind:   ValidateNumber,
		ErrMsg: "Hours worked must be a number, e.g. 2.5.",
	},
	{
		Field:  FieldHoursBilled,
		Prompt: "How many hours should be billed?",
		Kind:   ValidateNumber,
		ErrMsg: "Hours billed must be a number, e.g. 2.5.",
	},
	{
		Field:  FieldActivity,
		Prompt: "What activity code applies? (e.g. A102 - Research)",
		Kind:   ValidateNonEmpty,
		ErrMsg: "Activity cannot be empty.",
	},
	{
		Field:  FieldQuantity,
		Prompt: "What quantity applies? (for Cost entries; enter 0 if none)",
		Kind:   ValidateNumber,
		ErrMsg: "Quantity must be a number, e.g. 3.",
	},
	{
		Field:  FieldExpense,
		Prompt: "What expense code applies? (e.g. E001 - Travel; enter 'none' if not applicable)",
		Kind:   ValidateNonEmpty,
		ErrMsg: "Expense cannot be empty.",
	},
	{
		Field:  FieldRate,
		Prompt: "What is the rate?",
		Kind:   ValidateNumber,
		ErrMsg: "Rate must be a number, e.g. 150.",
	},
	{
		Field:   FieldCurrency,
		Prompt:  "Which currency? (USD, EUR or GBP)",
		Kind:    ValidateOneOf,
		Allowed: []string{"usd", "eur", "gbp", "us dollars"},
		ErrMsg:  "Please answer USD, EUR or GBP.",
	},
	{
		Field:  FieldPhaseTask,
		Prompt: "What phase/task applies? (e.g. P100 - Case Assessment)",
		Kind:   ValidateNonEmpty,
		ErrMsg: "Phase/task cannot be empty.",
	},
	{
		Field:   FieldBillCode,
		Prompt:  "Is this Billable or Non-Billable?",
		Kind:    ValidateOneOf,
		Allowed: []string{"billable", "non-billable"},
		ErrMsg:  "Please answer 'Billable' or 'Non-Billable'.",
	},
	{
		Field:   FieldStatus,
		Prompt:  "Should the entry status be Invoice or Hold?",
		Kind:    ValidateOneOf,
		Allowed: []string{"invoice", "hold"},
		ErrMsg:  "Please answer 'Invoice' or 'Hold'.",
	},
	{
		Field:  FieldNarrative,
		Prompt: "Finally, describe the work or expense (narrative).",
		Kind:   ValidateNonEmpty,
		ErrMsg: "Narrative cannot be empty.",
	},
}

// Catalog field names, matching the persisted entry's wire names.
const (
	FieldClient      = "client"
	FieldMatter      = "matter"
	FieldTimekeeper  = "timekeeper"
	FieldDate        = "date"
	FieldType        = "type"
	FieldHoursWorked = "hours_worked"
	FieldHoursBilled = "hours_billed"
	FieldActivity    = "activity"
	FieldQuantity    = "quantity"
	FieldExpense     = "expense"
	FieldRate        = "rate"
	FieldCurrency    = "currency"
	FieldPhaseTask   = "phase_task"
	FieldBillCode    = "bill_code"
	FieldStatus      = "status"
	FieldNarrative   = "narrative"
)
