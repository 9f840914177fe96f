package report

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/jung-kurt/gofpdf"
)

// PDFExporter renders a one-page utilization summary PDF.
type PDFExporter struct{}

// NewPDFExporter creates a new PDF exporter instance.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// Export generates the summary PDF: header, fleet counts, and the busiest
// radios ranked by utilization.
func (e *PDFExporter) Export(r *Report) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	e.addHeader(pdf, r)
	e.addCounts(pdf, r)
	e.addBusiestRadios(pdf, r)
	e.addFooter(pdf, r)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func (e *PDFExporter) addHeader(pdf *gofpdf.Fpdf, r *Report) {
	pdf.SetFont("Arial", "B", 22)
	pdf.SetTextColor(0, 51, 102)
	pdf.CellFormat(0, 14, "AP Utilization Summary", "", 1, "L", false, 0, "")

	pdf.SetFont("Arial", "", 13)
	pdf.SetTextColor(100, 100, 100)
	pdf.CellFormat(0, 8, r.NetworkName, "", 1, "L", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	pdf.SetTextColor(120, 120, 120)
	dateStr := fmt.Sprintf("Generated: %s", r.GeneratedAt.Format("2006-01-02 15:04"))
	pdf.CellFormat(0, 6, dateStr, "", 1, "L", false, 0, "")

	pdf.Ln(6)
}

func (e *PDFExporter) addCounts(pdf *gofpdf.Fpdf, r *Report) {
	red, orange := 0, 0
	for _, row := range r.Rows {
		switch row.Severity {
		case SeverityRed:
			red++
		case SeverityOrange:
			orange++
		}
	}

	pdf.SetFont("Arial", "B", 13)
	pdf.SetTextColor(0, 51, 102)
	pdf.CellFormat(0, 9, "Fleet Overview", "", 1, "L", false, 0, "")
	pdf.Ln(1)

	stats := []struct {
		label string
		value string
		color []int
	}{
		{"Online APs", fmt.Sprintf("%d", r.OnlineCount), []int{52, 199, 89}},
		{"Offline APs", fmt.Sprintf("%d", r.OfflineCount), []int{150, 150, 150}},
		{"Radios over 70% / 100 clients", fmt.Sprintf("%d", red), []int{220, 53, 69}},
		{"Radios over 50% / 50 clients", fmt.Sprintf("%d", orange), []int{255, 149, 0}},
	}

	for _, stat := range stats {
		pdf.SetFont("Arial", "", 10)
		pdf.SetTextColor(100, 100, 100)
		pdf.CellFormat(70, 7, stat.label+":", "", 0, "L", false, 0, "")

		pdf.SetFont("Arial", "B", 11)
		pdf.SetTextColor(stat.color[0], stat.color[1], stat.color[2])
		pdf.CellFormat(30, 7, stat.value, "", 1, "L", false, 0, "")
	}

	pdf.Ln(6)
}

func (e *PDFExporter) addBusiestRadios(pdf *gofpdf.Fpdf, r *Report) {
	pdf.SetFont("Arial", "B", 13)
	pdf.SetTextColor(0, 51, 102)
	pdf.CellFormat(0, 9, "Busiest Radios", "", 1, "L", false, 0, "")
	pdf.Ln(1)

	var online []Row
	for _, row := range r.Rows {
		if !row.Offline {
			online = append(online, row)
		}
	}
	sort.SliceStable(online, func(i, j int) bool {
		return online[i].UtilizationPercent > online[j].UtilizationPercent
	})
	if len(online) > 10 {
		online = online[:10]
	}

	if len(online) == 0 {
		pdf.SetFont("Arial", "I", 10)
		pdf.SetTextColor(100, 100, 100)
		pdf.CellFormat(0, 7, "No online access points", "", 1, "L", false, 0, "")
		return
	}

	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 10)
	pdf.SetTextColor(60, 60, 60)
	pdf.CellFormat(60, 8, "Access Point", "1", 0, "L", true, 0, "")
	pdf.CellFormat(35, 8, "Serial", "1", 0, "L", true, 0, "")
	pdf.CellFormat(25, 8, "Band", "1", 0, "C", true, 0, "")
	pdf.CellFormat(30, 8, "Util [%]", "1", 0, "C", true, 0, "")
	pdf.CellFormat(25, 8, "Clients", "1", 1, "C", true, 0, "")

	pdf.SetFont("Arial", "", 9)
	for _, row := range online {
		cr, cg, cb := e.severityColor(row.Severity)

		pdf.SetTextColor(60, 60, 60)
		name := row.Name
		if len(name) > 32 {
			name = name[:29] + "..."
		}
		pdf.CellFormat(60, 7, name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(35, 7, row.Serial, "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 7, row.BandLabel, "1", 0, "C", false, 0, "")

		pdf.SetTextColor(cr, cg, cb)
		pdf.CellFormat(30, 7, fmt.Sprintf("%.1f", row.UtilizationPercent), "1", 0, "C", false, 0, "")

		pdf.SetTextColor(60, 60, 60)
		pdf.CellFormat(25, 7, fmt.Sprintf("%d", row.ClientCount), "1", 1, "C", false, 0, "")
	}
}

func (e *PDFExporter) severityColor(s Severity) (r, g, b int) {
	switch s {
	case SeverityRed:
		return 220, 53, 69
	case SeverityOrange:
		return 255, 149, 0
	default:
		return 60, 60, 60
	}
}

func (e *PDFExporter) addFooter(pdf *gofpdf.Fpdf, r *Report) {
	pdf.SetY(-20)
	pdf.SetDrawColor(200, 200, 200)
	pdf.Line(20, pdf.GetY(), 190, pdf.GetY())
	pdf.Ln(3)

	pdf.SetFont("Arial", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	footerText := fmt.Sprintf("Report ID: %s", r.ID[:8])
	pdf.CellFormat(0, 5, footerText, "", 1, "C", false, 0, "")
}
