package report

import (
	"bytes"
	"fmt"
	"sort"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// ToPDF renders a report as a complete PDF document held in memory.
// The returned bytes are final; callers can write the HTTP response in
// one shot instead of streaming a document that may still fail
// half-way through generation.
func ToPDF(r *Report) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("AnyHire Activity Report", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "AnyHire Activity Report", "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Report type: %s", r.ReportType), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Window: %s (%s to %s)",
		r.Window.Token,
		r.Window.Start.Format(time.RFC3339),
		r.Window.End.Format(time.RFC3339),
	), "", 1, "L", false, 0, "")
	if r.UserID != "" {
		pdf.CellFormat(0, 6, fmt.Sprintf("User: %s", r.UserID), "", 1, "L", false, 0, "")
	}
	pdf.CellFormat(0, 6, fmt.Sprintf("Generated: %s", r.GeneratedAt.Format(time.RFC3339)), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	row, err := flattenReport(r)
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(row))
	for k := range row {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(110, 7, "Field", "B", 0, "L", false, 0, "")
	pdf.CellFormat(0, 7, "Value", "B", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	for _, k := range keys {
		pdf.CellFormat(110, 6, k, "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 6, row[k], "", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render pdf: %w", err)
	}

	return buf.Bytes(), nil
}
