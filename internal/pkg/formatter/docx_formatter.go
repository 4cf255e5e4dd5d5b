package formatter

import (
	"bytes"

	"github.com/matterai/timesheet-backend/internal/entity"
	"github.com/unidoc/unioffice/document"
)

const (
	docxContentType   = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	docxFileExtension = ".docx"
)

type DOCXFormatter struct{}

func NewDOCXFormatter() *DOCXFormatter {
	return &DOCXFormatter{}
}

func (df *DOCXFormatter) Format(entries []*entity.TimesheetEntry) ([]byte, error) {
	doc := document.New()
	defer doc.Close()

	titlePar := doc.AddParagraph()
	titlePar.SetStyle("Heading1")
	titlePar.AddRun().AddText(baseTitle)

	table := doc.AddTable()

	header := table.AddRow()
	for _, name := range columns {
		cellPar := header.AddCell().AddParagraph()
		run := cellPar.AddRun()
		run.Properties().SetBold(true)
		run.AddText(name)
	}

	for _, entry := range entries {
		tr := table.AddRow()
		for _, cell := range row(entry) {
			tr.AddCell().AddParagraph().AddRun().AddText(cell)
		}
	}

	var buf bytes.Buffer
	if err := doc.Save(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (df *DOCXFormatter) ContentType() string {
	return docxContentType
}

func (df *DOCXFormatter) FileExtension() string {
	return docxFileExtension
}
