//go:build unit
// +build unit

package render

import (
	"testing"
	"time"

	"github.com/jtsigarra/xferdx/internal/domain/reports"
	"github.com/jtsigarra/xferdx/internal/pkg/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDocument() *reports.Document {
	return &reports.Document{
		PatientCode:     "PAT-0001",
		PatientName:     "Juan Dela Cruz",
		PatientAge:      41,
		Gender:          "M",
		DateOfBirth:     time.Date(1985, 6, 15, 0, 0, 0, 0, time.UTC),
		StudyCode:       "JDC-0001",
		ProcedureType:   "xray",
		ProcedureDate:   time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC),
		ClinicalHistory: "Persistent cough for two weeks.",
		Findings:        "Lungs are clear. Heart is not enlarged.",
		Impression:      "Normal chest radiograph.",
		RadiologistName: "Dr. Rosa Madrigal",
		SignedAt:        time.Date(2026, 8, 11, 14, 30, 0, 0, time.UTC),
	}
}

func TestPdfRenderer_Render(t *testing.T) {
	renderer := NewPdfRenderer("Test Imaging Center", testutil.SetupTestLogger(t))

	pdf, err := renderer.Render(testDocument())
	require.NoError(t, err)
	require.NotEmpty(t, pdf)

	// A rendered document starts with the PDF magic
	assert.Equal(t, "%PDF", string(pdf[:4]))
	assert.Greater(t, len(pdf), 1000)
}

func TestPdfRenderer_Render_WithoutClinicalHistory(t *testing.T) {
	renderer := NewPdfRenderer("", testutil.SetupTestLogger(t))

	doc := testDocument()
	doc.ClinicalHistory = ""

	pdf, err := renderer.Render(doc)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}

func TestPdfRenderer_Render_MultilineFindings(t *testing.T) {
	renderer := NewPdfRenderer("Test Imaging Center", testutil.SetupTestLogger(t))

	doc := testDocument()
	doc.Findings = "Line one.\nLine two.\nLine three with a considerably longer body of text that wraps across the page width without failing."

	pdf, err := renderer.Render(doc)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}
