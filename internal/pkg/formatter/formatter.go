package formatter

import (
	"fmt"

	"github.com/matterai/timesheet-backend/internal/entity"
)

const baseTitle = "Timesheet Entries"

// columns is the fixed export column order shared by every format.
var columns = []string{
	"Date", "Client", "Matter", "Timekeeper", "Type", "Hours Worked",
	"Hours Billed", "Quantity", "Rate", "Currency", "Total", "Phase/Task",
	"Activity", "Expense", "Bill Code", "Status", "Narrative",
}

type Formatter interface {
	Format(entries []*entity.TimesheetEntry) ([]byte, error)
	ContentType() string
	FileExtension() string
}

type Factory struct{}

func NewFactory() *Factory {
	return &Factory{}
}

func (f *Factory) Create(format entity.ExportFormat) (Formatter, error) {
	switch format {
	case entity.FormatMarkdown:
		return NewMarkdownFormatter(), nil
	case entity.FormatCSV:
		return NewCSVFormatter(), nil
	case entity.FormatPDF:
		return NewPDFFormatter(), nil
	case entity.FormatDOCX:
		return NewDOCXFormatter(), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// row flattens one entry into the shared column order.
func row(e *entity.TimesheetEntry) []string {
	return []string{
		e.EntryDate.Format("2006-01-02"),
		e.Client,
		e.Matter,
		e.Timekeeper,
		string(e.EntryType),
		floatCell(e.HoursWorked),
		floatCell(e.HoursBilled),
		floatCell(e.Quantity),
		fmt.Sprintf("%.2f", e.Rate),
		string(e.Currency),
		fmt.Sprintf("%.2f", e.Total),
		e.PhaseTask,
		stringCell(e.Activity),
		stringCell(e.Expense),
		string(e.BillCode),
		string(e.EntryStatus),
		e.Narrative,
	}
}

func floatCell(f *float64) string {
	if f == nil {
		return ""
	}
	return fmt.Sprintf("%.2f", *f)
}

func stringCell(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
