package export

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"github.com/jung-kurt/gofpdf"
)

const (
	landscapeColumns = 6
	minColumnWidth   = 14.0
)

// PDFExporter renders datasets into a tabular PDF report.
type PDFExporter struct{}

// NewPDFExporter constructs a PDF exporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// ContentType of the rendered document.
func (e *PDFExporter) ContentType() string { return "application/pdf" }

// Extension of the rendered document.
func (e *PDFExporter) Extension() string { return "pdf" }

// Render creates a PDF document. Wide tables switch to landscape and column
// widths follow the longest cell of each column.
func (e *PDFExporter) Render(data Dataset) ([]byte, error) {
	if len(data.Headers) == 0 {
		return nil, fmt.Errorf("pdf requires at least one header")
	}
	orientation := "P"
	if len(data.Headers) > landscapeColumns {
		orientation = "L"
	}
	pdf := gofpdf.New(orientation, "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()
	pageWidth, _ := pdf.GetPageSize()
	usable := pageWidth - 20

	if data.Title != "" {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 10, data.Title, "", 1, "C", false, 0, "")
	}
	if data.Subtitle != "" {
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(0, 6, data.Subtitle, "", 1, "C", false, 0, "")
	}
	pdf.Ln(4)

	widths := columnWidths(data, usable)
	writeHeader := func() {
		pdf.SetFont("Arial", "B", 9)
		pdf.SetFillColor(230, 230, 230)
		for i, header := range data.Headers {
			pdf.CellFormat(widths[i], 8, header, "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Arial", "", 8)
	}
	pdf.SetHeaderFuncMode(func() {
		if pdf.PageNo() > 1 {
			writeHeader()
		}
	}, true)
	writeHeader()

	for _, row := range data.Rows {
		for i, value := range data.Record(row) {
			pdf.CellFormat(widths[i], 7, value, "1", 0, "", false, 0, "")
		}
		pdf.Ln(-1)
	}
	if len(data.Rows) == 0 {
		pdf.CellFormat(usable, 7, "No entries", "1", 1, "C", false, 0, "")
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func columnWidths(data Dataset, usable float64) []float64 {
	weights := make([]float64, len(data.Headers))
	total := 0.0
	for i, header := range data.Headers {
		longest := utf8.RuneCountInString(header)
		for _, row := range data.Rows {
			if n := utf8.RuneCountInString(row[header]); n > longest {
				longest = n
			}
		}
		if longest > 40 {
			longest = 40
		}
		weights[i] = float64(longest) + 2
		total += weights[i]
	}
	widths := make([]float64, len(weights))
	for i, w := range weights {
		widths[i] = usable * w / total
		if widths[i] < minColumnWidth {
			widths[i] = minColumnWidth
		}
	}
	return widths
}
