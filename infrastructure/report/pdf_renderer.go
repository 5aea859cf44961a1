// Package report renders a completed governance evaluation into a
// paginated PDF document. Rendering is pure: given the same record,
// result, and timestamp it produces identical bytes, with no network
// access or randomness.
package report

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/parul-khanna/aigovlens/internal/domain"
	"github.com/parul-khanna/aigovlens/internal/ports"
)

var _ ports.ReportRenderer = (*PDFRenderer)(nil)

// Layout constants.
const (
	// MaxActionRows caps the recommended-actions table at the first
	// rows in original order, regardless of priority values.
	MaxActionRows = 6

	// MaxActionChars and MaxRegulationChars cap cell text for layout
	// stability. Caps are counted in runes so a multi-byte character
	// is never split.
	MaxActionChars     = 60
	MaxRegulationChars = 30
)

// rgb is a color in the report palette.
type rgb struct{ r, g, b int }

var (
	colorHeading  = rgb{30, 41, 59}    // slate, main headings
	colorSubtitle = rgb{100, 116, 139} // muted slate, labels and subtitles
	colorAccent   = rgb{59, 130, 246}  // blue, section headings and rules
	colorBody     = rgb{55, 65, 81}    // near-black body text
	colorGrid     = rgb{226, 232, 240} // light table grid
	colorFooter   = rgb{148, 163, 184} // footer text
	colorWhite    = rgb{255, 255, 255}

	riskColors = map[domain.RiskLevel]rgb{
		domain.RiskHigh:   {220, 38, 38},
		domain.RiskMedium: {217, 119, 6},
		domain.RiskLow:    {5, 150, 105},
	}
)

// levelColor returns the palette color for a risk level; levels
// outside the contract set render in neutral gray.
func levelColor(level domain.RiskLevel) rgb {
	if c, ok := riskColors[level]; ok {
		return c
	}
	return colorSubtitle
}

// PDFRenderer produces the governance report document.
type PDFRenderer struct {
	// Attribution is the footer attribution line.
	Attribution string
}

// NewPDFRenderer creates a renderer with the standard attribution.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{
		Attribution: "Generated by AIGovLens - Open Source AI Governance Toolkit",
	}
}

// Render produces the paginated report for a completed evaluation.
// Sections appear in fixed order: title block, use case overview,
// overall assessment, per-category risk breakdown, recommended
// actions, footer.
func (r *PDFRenderer) Render(record domain.UseCaseRecord, result domain.EvaluationResult, generatedAt time.Time) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "Letter", "")
	// Pin the document metadata clock; otherwise identical inputs
	// produce different bytes.
	pdf.SetCreationDate(generatedAt)
	pdf.SetModificationDate(generatedAt)
	pdf.SetMargins(15, 12, 15)
	pdf.SetAutoPageBreak(true, 18)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	r.renderTitle(pdf, generatedAt)
	r.renderOverview(pdf, tr, record)
	r.renderAssessment(pdf, tr, result)
	r.renderRiskBreakdown(pdf, tr, result)
	r.renderActions(pdf, tr, result.RecommendedActions)
	r.renderFooter(pdf, tr)

	if pdf.Err() {
		return nil, fmt.Errorf("report rendering failed: %w", pdf.Error())
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("report output failed: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *PDFRenderer) renderTitle(pdf *fpdf.Fpdf, generatedAt time.Time) {
	pdf.SetFont("Helvetica", "B", 24)
	setText(pdf, colorHeading)
	pdf.CellFormat(0, 12, "AIGovLens Governance Report", "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 12)
	setText(pdf, colorSubtitle)
	pdf.CellFormat(0, 8, "Generated: "+generatedAt.Format("January 2, 2006 at 3:04 PM"), "", 1, "L", false, 0, "")

	pdf.SetDrawColor(colorAccent.r, colorAccent.g, colorAccent.b)
	pdf.SetLineWidth(0.7)
	x, y := pdf.GetX(), pdf.GetY()+2
	pageWidth, _ := pdf.GetPageSize()
	_, _, right, _ := pdf.GetMargins()
	pdf.Line(x, y, pageWidth-right, y)
	pdf.Ln(8)
}

func (r *PDFRenderer) renderOverview(pdf *fpdf.Fpdf, tr func(string) string, record domain.UseCaseRecord) {
	r.sectionHeading(pdf, "Use Case Overview")

	rows := [][2]string{
		{"Use Case Name:", record.Name},
		{"Department:", record.Department},
		{"AI Techniques:", record.AITechniques},
		{"Deployment Stage:", record.Stage},
		{"Target Markets:", strings.Join(record.Markets, ", ")},
		{"Data Types:", strings.Join(record.DataTypes, ", ")},
	}

	const labelWidth, valueWidth = 42.0, 141.0
	for _, row := range rows {
		pdf.SetFont("Helvetica", "B", 10)
		setText(pdf, colorSubtitle)
		pdf.CellFormat(labelWidth, 7, tr(row[0]), "", 0, "L", false, 0, "")

		pdf.SetFont("Helvetica", "", 10)
		setText(pdf, colorHeading)
		pdf.MultiCell(valueWidth, 7, tr(row[1]), "", "L", false)
	}
	pdf.Ln(3)

	pdf.SetFont("Helvetica", "B", 10)
	setText(pdf, colorSubtitle)
	pdf.CellFormat(0, 6, "Description:", "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	setText(pdf, colorBody)
	pdf.MultiCell(0, 5.5, tr(record.Description), "", "L", false)
}

func (r *PDFRenderer) renderAssessment(pdf *fpdf.Fpdf, tr func(string) string, result domain.EvaluationResult) {
	r.sectionHeading(pdf, "Overall Assessment")

	const labelWidth = 42.0

	pdf.SetFont("Helvetica", "B", 12)
	setText(pdf, colorSubtitle)
	pdf.CellFormat(labelWidth, 8, "Overall Score:", "", 0, "L", false, 0, "")
	setText(pdf, colorHeading)
	pdf.CellFormat(0, 8, fmt.Sprintf("%d/100", result.OverallScore), "", 1, "L", false, 0, "")

	setText(pdf, colorSubtitle)
	pdf.CellFormat(labelWidth, 8, "Risk Level:", "", 0, "L", false, 0, "")
	setText(pdf, levelColor(result.RiskLevel))
	pdf.CellFormat(0, 8, string(result.RiskLevel), "", 1, "L", false, 0, "")

	if result.ExecutiveSummary != "" {
		pdf.Ln(2)
		pdf.SetFont("Helvetica", "", 10)
		setText(pdf, colorBody)
		pdf.MultiCell(0, 5.5, tr(result.ExecutiveSummary), "", "L", false)
	}
}

func (r *PDFRenderer) renderRiskBreakdown(pdf *fpdf.Fpdf, tr func(string) string, result domain.EvaluationResult) {
	r.sectionHeading(pdf, "Risk Assessment")

	for _, category := range domain.Categories {
		assessment := result.Assessment(category)

		pdf.SetFont("Helvetica", "B", 10)
		setText(pdf, colorHeading)
		pdf.CellFormat(pdf.GetStringWidth(category.Title()+" Risk: ")+1, 6, category.Title()+" Risk: ", "", 0, "L", false, 0, "")
		setText(pdf, levelColor(assessment.Level))
		pdf.CellFormat(0, 6, string(assessment.Level), "", 1, "L", false, 0, "")

		if assessment.Summary != "" {
			pdf.SetFont("Helvetica", "", 10)
			setText(pdf, colorBody)
			pdf.MultiCell(0, 5.5, tr(assessment.Summary), "", "L", false)
		}
		pdf.Ln(3)
	}
}

func (r *PDFRenderer) renderActions(pdf *fpdf.Fpdf, tr func(string) string, actions []domain.Action) {
	r.sectionHeading(pdf, "Recommended Actions")

	if len(actions) == 0 {
		pdf.SetFont("Helvetica", "I", 10)
		setText(pdf, colorSubtitle)
		pdf.CellFormat(0, 6, "No specific actions recommended.", "", 1, "L", false, 0, "")
		return
	}

	widths := []float64{16, 85, 44, 38}
	headers := []string{"Priority", "Action", "Regulation", "Owner"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(colorAccent.r, colorAccent.g, colorAccent.b)
	setText(pdf, colorWhite)
	pdf.SetDrawColor(colorGrid.r, colorGrid.g, colorGrid.b)
	pdf.SetLineWidth(0.2)
	for i, header := range headers {
		pdf.CellFormat(widths[i], 8, header, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	setText(pdf, colorBody)
	for _, row := range actionRows(actions) {
		for i, cell := range row {
			pdf.CellFormat(widths[i], 8, tr(cell), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}
}

func (r *PDFRenderer) renderFooter(pdf *fpdf.Fpdf, tr func(string) string) {
	pdf.Ln(12)
	pdf.SetDrawColor(colorGrid.r, colorGrid.g, colorGrid.b)
	pdf.SetLineWidth(0.3)
	x, y := pdf.GetX(), pdf.GetY()
	pageWidth, _ := pdf.GetPageSize()
	_, _, right, _ := pdf.GetMargins()
	pdf.Line(x, y, pageWidth-right, y)
	pdf.Ln(3)

	pdf.SetFont("Helvetica", "", 8)
	setText(pdf, colorFooter)
	pdf.CellFormat(0, 4.5, tr(r.Attribution), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 4.5, "github.com/parul-khanna/aigovlens | MIT License", "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 4.5, "This report is for informational purposes only and does not constitute legal advice.", "", 1, "C", false, 0, "")
}

func (r *PDFRenderer) sectionHeading(pdf *fpdf.Fpdf, title string) {
	pdf.Ln(6)
	pdf.SetFont("Helvetica", "B", 14)
	setText(pdf, colorAccent)
	pdf.CellFormat(0, 9, title, "", 1, "L", false, 0, "")
	pdf.Ln(1)
}

func setText(pdf *fpdf.Fpdf, c rgb) { pdf.SetTextColor(c.r, c.g, c.b) }

// actionRows converts actions into table rows: at most MaxActionRows
// rows in original order, with action and regulation text capped at
// their column limits.
func actionRows(actions []domain.Action) [][4]string {
	limit := len(actions)
	if limit > MaxActionRows {
		limit = MaxActionRows
	}

	rows := make([][4]string, 0, limit)
	for _, action := range actions[:limit] {
		priority := "P-"
		if action.Priority > 0 {
			priority = fmt.Sprintf("P%d", action.Priority)
		}
		rows = append(rows, [4]string{
			priority,
			truncateRunes(action.Action, MaxActionChars),
			truncateRunes(action.Regulation, MaxRegulationChars),
			action.Owner,
		})
	}
	return rows
}

// truncateRunes hard-caps s at max runes. The cap counts runes, not
// bytes, so a multi-byte character is kept whole or dropped entirely.
func truncateRunes(s string, max int) string {
	if max <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == max {
			return s[:i]
		}
		count++
	}
	return s
}
