package export

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/panelplan/internal/model"
)

// Page layout constants (A4 landscape in mm).
const (
	pdfPageWidth    = 297.0
	pdfPageHeight   = 210.0
	pdfMarginLeft   = 15.0
	pdfMarginRight  = 15.0
	pdfMarginTop    = 15.0
	pdfMarginBottom = 15.0
	pdfHeaderHeight = 12.0
	pdfStatsHeight  = 20.0
	pdfDrawAreaTop  = pdfMarginTop + pdfHeaderHeight + 5.0
)

// ExportReportPDF renders one page per room (its panel rectangles drawn
// to scale, full/cut/reused panels shaded differently) followed by a
// project summary page.
func ExportReportPDF(path string, report model.GenerationReport, plans []model.Plan) error {
	if len(plans) == 0 {
		return fmt.Errorf("no plans to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, pdfMarginBottom)

	for _, plan := range plans {
		pdf.AddPage()
		renderPlanPage(pdf, plan)
	}

	pdf.AddPage()
	renderSummaryPage(pdf, report)

	return pdf.OutputFileAndClose(path)
}

func renderPlanPage(pdf *fpdf.Fpdf, plan model.Plan) {
	label := plan.RoomID
	if plan.ZoneID != "" {
		label = "Zone " + plan.ZoneID
	}

	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(pdfMarginLeft, pdfMarginTop)
	title := fmt.Sprintf("%s: %s (%s)", plan.Kind, label, plan.OrientationStrategy)
	pdf.CellFormat(pdfPageWidth-pdfMarginLeft-pdfMarginRight, pdfHeaderHeight, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(pdfMarginLeft, pdfMarginTop+pdfHeaderHeight)
	stats := fmt.Sprintf("Panels: %d | Full: %d | Cut: %d | From leftover: %d | Waste: %.1f%%",
		plan.Stats.PanelCount, plan.Stats.FullPanelCount, plan.Stats.CutPanelCount,
		plan.Stats.FromLeftoverCount, plan.Stats.WastePercentage)
	pdf.CellFormat(pdfPageWidth-pdfMarginLeft-pdfMarginRight, 5, stats, "", 0, "L", false, 0, "")

	bbox := planBBox(plan.Panels)
	if !bbox.Valid() {
		return
	}

	drawWidth := pdfPageWidth - pdfMarginLeft - pdfMarginRight
	drawHeight := pdfPageHeight - pdfDrawAreaTop - pdfMarginBottom - pdfStatsHeight

	scaleX := drawWidth / bbox.Width()
	scaleY := drawHeight / bbox.Height()
	scale := math.Min(scaleX, scaleY)

	offsetX := pdfMarginLeft
	offsetY := pdfDrawAreaTop

	for _, p := range plan.Panels {
		col := colorFor(p)
		px := offsetX + (p.Rect.MinX-bbox.MinX)*scale
		py := offsetY + (p.Rect.MinY-bbox.MinY)*scale
		pw := p.Rect.Width() * scale
		ph := p.Rect.Height() * scale

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.3)
		pdf.Rect(px, py, pw, ph, "FD")

		pdf.SetFont("Helvetica", "", 6)
		pdf.SetTextColor(20, 20, 20)
		pdf.SetXY(px, py+ph/2-2)
		pdf.CellFormat(pw, 4, p.PanelID, "", 0, "C", false, 0, "")
	}
	pdf.SetTextColor(0, 0, 0)
}

func renderSummaryPage(pdf *fpdf.Fpdf, report model.GenerationReport) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(pdfMarginLeft, pdfMarginTop)
	pdf.CellFormat(pdfPageWidth-pdfMarginLeft-pdfMarginRight, pdfHeaderHeight, "Project Summary", "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	lines := []string{
		fmt.Sprintf("Plan kind: %s", report.PlanKind),
		fmt.Sprintf("Recommended strategy: %s", report.RecommendedStrategy),
		fmt.Sprintf("Total panels: %d", report.TotalPanels),
		fmt.Sprintf("Project waste: %.2f%%", report.ProjectWastePercentage),
		fmt.Sprintf("Leftovers created: %d", report.LeftoversCreated),
		fmt.Sprintf("Leftovers reused: %d", report.LeftoversReused),
		fmt.Sprintf("Full panels saved: %d", report.FullPanelsSaved),
	}
	for _, line := range lines {
		pdf.SetX(pdfMarginLeft)
		pdf.CellFormat(pdfPageWidth-pdfMarginLeft-pdfMarginRight, 7, line, "", 1, "L", false, 0, "")
	}

	if len(report.Warnings) > 0 {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "I", 9)
		pdf.SetTextColor(160, 60, 0)
		for _, w := range report.Warnings {
			pdf.SetX(pdfMarginLeft)
			pdf.CellFormat(pdfPageWidth-pdfMarginLeft-pdfMarginRight, 5, w, "", 1, "L", false, 0, "")
		}
		pdf.SetTextColor(0, 0, 0)
	}
}

func planBBox(panels []model.Panel) model.Rect {
	if len(panels) == 0 {
		return model.Rect{}
	}
	bbox := panels[0].Rect
	for _, p := range panels[1:] {
		bbox.MinX = math.Min(bbox.MinX, p.Rect.MinX)
		bbox.MinY = math.Min(bbox.MinY, p.Rect.MinY)
		bbox.MaxX = math.Max(bbox.MaxX, p.Rect.MaxX)
		bbox.MaxY = math.Max(bbox.MaxY, p.Rect.MaxY)
	}
	return bbox
}
