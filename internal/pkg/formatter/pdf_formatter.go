package formatter

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/matterai/timesheet-backend/internal/entity"
)

const (
	pdfContentType   = "application/pdf"
	pdfFileExtension = ".pdf"

	pdfFontName = "Arial"
)

type PDFFormatter struct{}

func NewPDFFormatter() *PDFFormatter {
	return &PDFFormatter{}
}

func (pf *PDFFormatter) Format(entries []*entity.TimesheetEntry) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()

	// Core fonts are cp1252-only; transliterate anything outside it.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont(pdfFontName, "B", 16)
	pdf.Cell(0, 10, tr(baseTitle))
	pdf.Ln(12)

	pdf.SetFont(pdfFontName, "", 10)
	_, lineHeight := pdf.GetFontSize()

	for _, entry := range entries {
		pdf.SetFont(pdfFontName, "B", 10)
		pdf.Cell(0, lineHeight*1.5, tr(fmt.Sprintf("%s / %s (%s)",
			entry.Client, entry.Matter, entry.EntryDate.Format("2006-01-02"))))
		pdf.Ln(-1)

		pdf.SetFont(pdfFontName, "", 10)
		cells := row(entry)
		for i, name := range columns {
			if cells[i] == "" {
				continue
			}
			pdf.MultiCell(0, lineHeight*1.4, tr(fmt.Sprintf("%s: %s", name, cells[i])), "", "", false)
		}
		pdf.Ln(4)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (pf *PDFFormatter) ContentType() string {
	return pdfContentType
}

func (pf *PDFFormatter) FileExtension() string {
	return pdfFileExtension
}
