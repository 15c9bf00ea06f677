package reports

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/buildsense/energy-backend/internal/energy"
)

// Document is everything a rendered report shows.
type Document struct {
	City        string
	GeneratedAt time.Time
	Results     []energy.AnalysisResult
	Comparison  energy.ComparativeAnalysis
	Insights    string
}

const (
	pageMargin = 15.0
	chartH     = 60.0
)

// Render lays out the report as an A4 PDF: summary, results table, an
// energy consumption bar chart and the narrative insights.
func Render(doc Document) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.SetTitle("Building Analysis Report", true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 2*pageMargin

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(contentW, 10, "Building Analysis Report", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(contentW, 6, tr("City: "+doc.City), "", 1, "C", false, 0, "")
	pdf.CellFormat(contentW, 6, "Generated: "+doc.GeneratedAt.UTC().Format(time.RFC1123), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	section(pdf, "Energy Consumption Analysis")
	resultsTable(pdf, tr, contentW, doc.Results)
	pdf.Ln(4)
	barChart(pdf, tr, contentW, doc.Results)
	pdf.Ln(4)

	if doc.Comparison.BestPerformer != nil {
		section(pdf, "Comparison")
		pdf.SetFont("Helvetica", "", 10)
		lines := []string{
			fmt.Sprintf("Best performer: %s (Rs %.2f/h)", doc.Comparison.BestPerformer.Name, doc.Comparison.BestPerformer.Cost),
			fmt.Sprintf("Worst performer: %s (Rs %.2f/h)", doc.Comparison.WorstPerformer.Name, doc.Comparison.WorstPerformer.Cost),
			fmt.Sprintf("Average cost: Rs %.2f/h, potential savings: Rs %.2f/h", doc.Comparison.AverageCost, doc.Comparison.CostSavings),
		}
		for _, l := range lines {
			pdf.MultiCell(contentW, 5, tr(l), "", "L", false)
		}
		pdf.Ln(4)
	}

	section(pdf, "AI Analysis Insights")
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetFillColor(245, 245, 245)
	for _, line := range strings.Split(doc.Insights, "\n") {
		pdf.MultiCell(contentW, 5, tr(line), "", "L", true)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func section(pdf *fpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 13)
	pdf.SetTextColor(60, 60, 60)
	pdf.CellFormat(0, 8, title, "", 1, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

func resultsTable(pdf *fpdf.Fpdf, tr func(string) string, width float64, results []energy.AnalysisResult) {
	headers := []string{"Design", "Heat gain (BTU)", "Cooling load (kWh)", "Energy (kWh)", "Cost (Rs)"}
	widths := []float64{width * 0.32, width * 0.17, width * 0.17, width * 0.17, width * 0.17}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(220, 230, 241)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, r := range results {
		cells := []string{
			tr(r.Name),
			fmt.Sprintf("%.1f", r.HeatGain.Total),
			fmt.Sprintf("%.3f", r.CoolingLoad),
			fmt.Sprintf("%.3f", r.EnergyConsumption),
			fmt.Sprintf("%.2f", r.CoolingCost),
		}
		for i, c := range cells {
			align := "R"
			if i == 0 {
				align = "L"
			}
			pdf.CellFormat(widths[i], 6, c, "1", 0, align, false, 0, "")
		}
		pdf.Ln(-1)
	}
}

// barChart draws energy consumption per design as horizontal-axis bars.
func barChart(pdf *fpdf.Fpdf, tr func(string) string, width float64, results []energy.AnalysisResult) {
	if len(results) == 0 {
		return
	}
	var maxE float64
	for _, r := range results {
		if r.EnergyConsumption > maxE {
			maxE = r.EnergyConsumption
		}
	}
	if maxE == 0 {
		return
	}

	x0, y0 := pdf.GetXY()
	if y0+chartH+12 > 297-pageMargin {
		pdf.AddPage()
		x0, y0 = pdf.GetXY()
	}

	slot := width / float64(len(results))
	barW := slot * 0.6
	pdf.SetFillColor(54, 162, 235)
	pdf.SetFont("Helvetica", "", 7)
	for i, r := range results {
		h := r.EnergyConsumption / maxE * chartH
		x := x0 + float64(i)*slot + (slot-barW)/2
		pdf.Rect(x, y0+chartH-h, barW, h, "F")
		pdf.SetXY(x0+float64(i)*slot, y0+chartH+1)
		pdf.CellFormat(slot, 4, tr(truncate(r.Name, 18)), "", 0, "C", false, 0, "")
	}
	pdf.Line(x0, y0+chartH, x0+width, y0+chartH)
	pdf.SetXY(x0, y0+chartH+6)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
