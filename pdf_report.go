package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-pdf/fpdf"
)

// PDFLifespanReport renders a report with the core fonts, so all text is English
type PDFLifespanReport struct {
	pdf    *fpdf.Fpdf
	report *Report
	tr     func(string) string
}

const (
	pageWidth    = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 20.0
	contentWidth = pageWidth - marginLeft - marginRight
)

// GeneratePDFReport renders the report as an A4 PDF
func GeneratePDFReport(report *Report) ([]byte, error) {
	r := &PDFLifespanReport{
		pdf:    fpdf.New("P", "mm", "A4", ""),
		report: report,
	}
	r.tr = r.pdf.UnicodeTranslatorFromDescriptor("")

	r.pdf.SetMargins(marginLeft, marginTop, marginRight)
	r.pdf.SetAutoPageBreak(true, marginBottom)
	r.pdf.SetTitle("Lifespan Forecast", true)

	r.addSummaryPage()
	r.addFactorsPage()
	r.addRecommendationsPage()

	var buf bytes.Buffer
	if err := r.pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GeneratePDFReportInDir writes report_<timestamp>.pdf into outputDir and returns its path
func GeneratePDFReportInDir(report *Report, outputDir string) (string, error) {
	data, err := GeneratePDFReport(report)
	if err != nil {
		return "", fmt.Errorf("failed to generate PDF report: %w", err)
	}
	if outputDir != "." && outputDir != "" {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return "", fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	path := filepath.Join(outputDir, fmt.Sprintf("report_%s.pdf", report.GeneratedAt.Format("2006-01-02_150405")))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", err
	}
	return path, nil
}

func (r *PDFLifespanReport) addSummaryPage() {
	res := r.report.Result
	r.pdf.AddPage()

	r.pdf.SetFont("Arial", "B", 26)
	r.pdf.SetTextColor(0, 51, 102)
	r.pdf.Ln(20)
	r.pdf.CellFormat(contentWidth, 14, "Lifespan Forecast", "", 1, "C", false, 0, "")

	gender := "Male"
	if r.report.Profile.Gender == Female {
		gender = "Female"
	}
	r.pdf.SetFont("Arial", "", 13)
	r.pdf.SetTextColor(80, 80, 80)
	r.pdf.CellFormat(contentWidth, 8, fmt.Sprintf("%s, age %d", gender, r.report.Profile.Age), "", 1, "C", false, 0, "")

	r.pdf.SetFont("Arial", "I", 10)
	r.pdf.CellFormat(contentWidth, 7, fmt.Sprintf("Generated: %s  |  Report %s",
		r.report.GeneratedAt.Format("2 January 2006 15:04"), r.report.ID), "", 1, "C", false, 0, "")

	// Headline box
	r.pdf.Ln(12)
	r.pdf.SetFillColor(245, 247, 250)
	r.pdf.SetDrawColor(200, 200, 200)
	r.pdf.SetFont("Arial", "B", 12)
	r.pdf.SetTextColor(0, 51, 102)
	r.pdf.CellFormat(contentWidth, 8, "Expected Lifespan", "1", 1, "C", true, 0, "")
	r.pdf.SetFont("Arial", "B", 30)
	r.setSignColor(-sign(res.LifespanChange))
	r.pdf.CellFormat(contentWidth, 16, fmt.Sprintf("%.1f years", res.TotalLifespan), "LR", 1, "C", true, 0, "")
	r.pdf.SetFont("Arial", "", 11)
	r.pdf.SetTextColor(50, 50, 50)
	r.pdf.CellFormat(contentWidth, 7, fmt.Sprintf("%.1f years remaining", res.RemainingYears), "LRB", 1, "C", true, 0, "")

	if w := res.LimitWarning; w != nil {
		r.pdf.Ln(6)
		title := "Serious health warning"
		r.pdf.SetFillColor(254, 226, 226)
		if w.Type == LimitMax {
			title = "Realistic lifespan limit reached"
			r.pdf.SetFillColor(254, 243, 199)
		}
		r.pdf.SetFont("Arial", "B", 11)
		r.pdf.SetTextColor(120, 53, 15)
		r.pdf.CellFormat(contentWidth, 7, title, "LRT", 1, "L", true, 0, "")
		r.pdf.SetFont("Arial", "", 10)
		r.pdf.MultiCell(contentWidth, 5, r.tr(w.MessageEN), "LRB", "L", true)
	}

	r.pdf.Ln(8)
	r.drawSectionHeader("Comparison")
	widths := []float64{90, 90}
	r.drawTableHeader([]string{"Measure", "Value"}, widths)
	r.drawTableRow([]string{"All-cause mortality change", FormatSigned(res.TotalACM) + " (" + acmStatusEN(r.report.ACMStatus()) + ")"}, widths, false)
	if res.EffectiveACM != res.TotalACM {
		r.drawTableRow([]string{"ACM used for conversion", FormatSigned(res.EffectiveACM)}, widths, false)
	}
	r.drawTableRow([]string{fmt.Sprintf("Baseline (%s average)", gender), fmt.Sprintf("%.0f years", res.BaseLifespan)}, widths, false)
	r.drawTableRow([]string{"Your lifespan", fmt.Sprintf("%.1f years", res.TotalLifespan)}, widths, false)
	r.drawTableRow([]string{"Difference", FormatYearsDelta(res.LifespanChange) + " years"}, widths, true)
	if res.OriginalLifespan != res.TotalLifespan {
		r.drawTableRow([]string{"Before limits", fmt.Sprintf("%.1f years", res.OriginalLifespan)}, widths, false)
	}

	r.pdf.Ln(8)
	r.drawSectionHeader("By Category")
	widths = []float64{80, 30, 70}
	r.drawTableHeader([]string{"Category", "Factors", "ACM"}, widths)
	for _, c := range r.report.CategoryStats {
		r.drawTableRow([]string{c.Category.EnglishName(), fmt.Sprint(c.Count), FormatSigned(c.TotalACM)}, widths, false)
	}
}

func (r *PDFLifespanReport) addFactorsPage() {
	r.pdf.AddPage()
	r.drawSectionHeader("Main Factors")

	if len(r.report.TopImpacts) == 0 {
		r.pdf.SetFont("Arial", "I", 10)
		r.pdf.SetTextColor(80, 80, 80)
		r.pdf.CellFormat(contentWidth, 7, "No factor changes mortality; the baseline applies.", "", 1, "L", false, 0, "")
	} else {
		widths := []float64{110, 70}
		r.drawTableHeader([]string{"Factor", "ACM"}, widths)
		for _, i := range r.report.TopImpacts {
			r.drawTableRow([]string{r.tr(i.LabelEN), FormatSigned(i.Value)}, widths, false)
		}
	}

	r.pdf.Ln(8)
	r.drawSectionHeader("All Answers")
	reg := NewFactorRegistry()
	widths := []float64{60, 90, 30}
	r.drawTableHeader([]string{"Factor", "Answer", "ACM"}, widths)
	for _, i := range r.report.Impacts {
		name := string(i.Factor)
		if f := reg.Get(i.Factor); f != nil {
			name = f.NameEN
		}
		r.drawTableRow([]string{r.tr(name), r.tr(i.LabelEN), FormatSigned(i.Value)}, widths, false)
	}
}

func (r *PDFLifespanReport) addRecommendationsPage() {
	r.pdf.AddPage()

	if len(r.report.Negative) > 0 {
		r.drawSectionHeader("Areas to Improve")
		for _, rec := range r.report.Negative {
			r.pdf.SetFont("Arial", "B", 10)
			r.setPriorityColor(rec.Priority)
			r.pdf.CellFormat(contentWidth, 6, r.tr(fmt.Sprintf("[%s] %s  (+%d%% ACM)", rec.Priority, rec.LabelEN, rec.CurrentImpact)), "", 1, "L", false, 0, "")
			r.pdf.SetFont("Arial", "", 10)
			r.pdf.SetTextColor(50, 50, 50)
			r.pdf.MultiCell(contentWidth, 5, r.tr(rec.AdviceEN), "", "L", false)
			r.pdf.Ln(2)
		}
		r.pdf.Ln(4)
	}

	if len(r.report.Opportunities) > 0 {
		r.drawSectionHeader("Opportunities")
		for _, o := range r.report.Opportunities {
			r.pdf.SetFont("Arial", "B", 10)
			r.setPriorityColor(o.Priority)
			r.pdf.CellFormat(contentWidth, 6, fmt.Sprintf("[%s] potential gain %d%% ACM", o.Priority, o.PotentialGain), "", 1, "L", false, 0, "")
			r.pdf.SetFont("Arial", "", 10)
			r.pdf.SetTextColor(50, 50, 50)
			r.pdf.MultiCell(contentWidth, 5, r.tr(o.AdviceEN), "", "L", false)
			r.pdf.Ln(2)
		}
		r.pdf.Ln(4)
	}

	r.drawSectionHeader("Please Note")
	r.pdf.SetFont("Arial", "I", 9)
	r.pdf.SetTextColor(120, 120, 120)
	for _, line := range disclaimerEN {
		r.pdf.MultiCell(contentWidth, 5, "- "+line, "", "L", false)
	}
}

// Helper functions

func (r *PDFLifespanReport) drawSectionHeader(title string) {
	r.pdf.SetFont("Arial", "B", 16)
	r.pdf.SetTextColor(0, 51, 102)
	r.pdf.CellFormat(contentWidth, 10, title, "", 1, "L", false, 0, "")
	r.pdf.SetDrawColor(0, 51, 102)
	r.pdf.Line(marginLeft, r.pdf.GetY(), marginLeft+contentWidth, r.pdf.GetY())
	r.pdf.Ln(5)
}

func (r *PDFLifespanReport) drawTableHeader(headers []string, widths []float64) {
	r.pdf.SetFillColor(0, 51, 102)
	r.pdf.SetTextColor(255, 255, 255)
	r.pdf.SetFont("Arial", "B", 9)

	for i, header := range headers {
		align := "L"
		if i > 0 {
			align = "R"
		}
		r.pdf.CellFormat(widths[i], 6, header, "1", 0, align, true, 0, "")
	}
	r.pdf.Ln(-1)
}

func (r *PDFLifespanReport) drawTableRow(cells []string, widths []float64, isBold bool) {
	r.pdf.SetFillColor(250, 250, 250)
	r.pdf.SetTextColor(50, 50, 50)

	if isBold {
		r.pdf.SetFont("Arial", "B", 9)
		r.pdf.SetFillColor(240, 240, 240)
	} else {
		r.pdf.SetFont("Arial", "", 9)
	}

	for i, cell := range cells {
		align := "L"
		if i > 0 {
			align = "R"
		}
		r.pdf.CellFormat(widths[i], 5, cell, "1", 0, align, true, 0, "")
	}
	r.pdf.Ln(-1)
}

func (r *PDFLifespanReport) setPriorityColor(p Priority) {
	switch p {
	case PriorityHigh:
		r.pdf.SetTextColor(180, 0, 0)
	case PriorityMedium:
		r.pdf.SetTextColor(180, 100, 0)
	default:
		r.pdf.SetTextColor(0, 0, 180)
	}
}

// setSignColor colours good outcomes green and bad ones red
func (r *PDFLifespanReport) setSignColor(s int) {
	switch {
	case s < 0:
		r.pdf.SetTextColor(22, 163, 74)
	case s > 0:
		r.pdf.SetTextColor(220, 38, 38)
	default:
		r.pdf.SetTextColor(0, 51, 102)
	}
}

func sign(x float64) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}

func acmStatusEN(status string) string {
	switch status {
	case "above":
		return "above average"
	case "below":
		return "below average"
	default:
		return "average"
	}
}
