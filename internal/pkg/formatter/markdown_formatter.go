package formatter

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/matterai/timesheet-backend/internal/entity"
)

const (
	markdownContentType   = "text/markdown; charset=utf-8"
	markdownFileExtension = ".md"
)

type MarkdownFormatter struct{}

func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

func (mf *MarkdownFormatter) Format(entries []*entity.TimesheetEntry) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# %s\n\n", baseTitle)

	fmt.Fprintf(&buf, "| %s |\n", strings.Join(columns, " | "))
	buf.WriteString("|")
	buf.WriteString(strings.Repeat(" --- |", len(columns)))
	buf.WriteString("\n")

	for _, entry := range entries {
		cells := row(entry)
		for i, cell := range cells {
			cells[i] = strings.ReplaceAll(cell, "|", "\\|")
		}
		fmt.Fprintf(&buf, "| %s |\n", strings.Join(cells, " | "))
	}

	fmt.Fprintf(&buf, "\n%d entries\n", len(entries))
	return buf.Bytes(), nil
}

func (mf *MarkdownFormatter) ContentType() string {
	return markdownContentType
}

func (mf *MarkdownFormatter) FileExtension() string {
	return markdownFileExtension
}
