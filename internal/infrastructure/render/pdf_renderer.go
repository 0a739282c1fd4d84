// Package render produces the PDF documents for signed radiology reports.
package render

import (
	"bytes"
	"fmt"

	"github.com/jtsigarra/xferdx/internal/domain/reports"
	"github.com/jtsigarra/xferdx/internal/pkg/logger"

	"github.com/go-pdf/fpdf"
)

const (
	pageMargin  = 15.0
	lineHeight  = 5.0
	labelWidth  = 42.0
	sectionFont = 11.0
	bodyFont    = 10.0
)

type pdfRenderer struct {
	facilityName string
	logger       logger.Logger
}

// NewPdfRenderer creates a ReportRenderer producing A4 portrait documents.
func NewPdfRenderer(facilityName string, logger logger.Logger) reports.ReportRenderer {
	if facilityName == "" {
		facilityName = "xferDx Imaging Center"
	}
	return &pdfRenderer{
		facilityName: facilityName,
		logger:       logger,
	}
}

func (r *pdfRenderer) Render(doc *reports.Document) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.AddPage()

	// Header
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 8, r.facilityName, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 6, "Radiology Report", "", 1, "C", false, 0, "")
	pdf.Ln(2)
	pdf.SetDrawColor(80, 80, 80)
	pdf.Line(pageMargin, pdf.GetY(), 210-pageMargin, pdf.GetY())
	pdf.Ln(4)

	// Patient and study demographics
	r.field(pdf, "Patient", doc.PatientName)
	r.field(pdf, "Patient Code", doc.PatientCode)
	r.field(pdf, "Age / Sex", fmt.Sprintf("%d / %s", doc.PatientAge, doc.Gender))
	r.field(pdf, "Date of Birth", doc.DateOfBirth.Format("January 2, 2006"))
	r.field(pdf, "Study Code", doc.StudyCode)
	r.field(pdf, "Procedure", doc.ProcedureType)
	r.field(pdf, "Procedure Date", doc.ProcedureDate.Format("January 2, 2006"))
	pdf.Ln(3)

	if doc.ClinicalHistory != "" {
		r.section(pdf, "CLINICAL HISTORY", doc.ClinicalHistory)
	}
	r.section(pdf, "FINDINGS", doc.Findings)
	r.section(pdf, "IMPRESSION", doc.Impression)

	// Signature block
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "B", bodyFont)
	pdf.CellFormat(0, lineHeight, doc.RadiologistName, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "I", 9)
	signedAt := doc.SignedAt.Format("January 2, 2006 15:04")
	pdf.CellFormat(0, lineHeight, "Electronically signed on "+signedAt, "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render report PDF: %w", err)
	}

	r.logger.Info("Rendered report PDF for study ", doc.StudyCode)
	return buf.Bytes(), nil
}

func (r *pdfRenderer) field(pdf *fpdf.Fpdf, label, value string) {
	pdf.SetFont("Helvetica", "B", bodyFont)
	pdf.CellFormat(labelWidth, lineHeight, label+":", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", bodyFont)
	pdf.CellFormat(0, lineHeight, value, "", 1, "L", false, 0, "")
}

func (r *pdfRenderer) section(pdf *fpdf.Fpdf, title, body string) {
	pdf.SetFont("Helvetica", "B", sectionFont)
	pdf.CellFormat(0, 7, title, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", bodyFont)
	pdf.MultiCell(0, lineHeight, body, "", "L", false)
	pdf.Ln(2)
}
