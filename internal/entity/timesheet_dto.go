package entity

// CreateEntryRequest mirrors the public wire shape of an entry. Dates travel
// as ISO YYYY-MM-DD strings; currency accepts display aliases ("US dollars")
// which are normalized before persistence.
type CreateEntryRequest struct {
	Client      string   `json:"client"`
	Matter      string   `json:"matter"`
	Timekeeper  string   `json:"timekeeper"`
	EntryDate   string   `json:"date"`
	EntryType   string   `json:"type"`
	HoursWorked *float64 `json:"hours_worked,omitempty"`
	HoursBilled *float64 `json:"hours_billed,omitempty"`
	Quantity    *float64 `json:"quantity,omitempty"`
	Rate        float64  `json:"rate"`
	Currency    string   `json:"currency"`
	Total       *float64 `json:"total,omitempty"`
	PhaseTask   string   `json:"phase_task"`
	Activity    *string  `json:"activity,omitempty"`
	Expense     *string  `json:"expense,omitempty"`
	BillCode    string   `json:"bill_code"`
	EntryStatus string   `json:"status"`
	Narrative   string   `json:"narrative"`
}

type EntryResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	EntryID string          `json:"entry_id,omitempty"`
	Entry   *TimesheetEntry `json:"entry,omitempty"`
}

type EntryListResponse struct {
	Success    bool              `json:"success"`
	Entries    []*TimesheetEntry `json:"entries"`
	TotalCount int               `json:"total_count"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
}

type ExportFormat string

const (
	FormatMarkdown ExportFormat = "markdown"
	FormatCSV      ExportFormat = "csv"
	FormatPDF      ExportFormat = "pdf"
	FormatDOCX     ExportFormat = "docx"
)

func (f ExportFormat) IsValid() bool {
	switch f {
	case FormatMarkdown, FormatCSV, FormatPDF, FormatDOCX:
		return true
	default:
		return false
	}
}

// DropdownData feeds the frontend form selectors.
type DropdownData struct {
	Clients     []string `json:"clients"`
	Matters     []string `json:"matters"`
	Timekeepers []string `json:"timekeepers"`
	PhaseTasks  []string `json:"phase_tasks"`
	Activities  []string `json:"activities"`
	Expenses    []string `json:"expenses"`
}
