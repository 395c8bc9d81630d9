package export

import (
	"fmt"

	"github.com/piwi3910/panelplan/internal/model"
	"github.com/xuri/excelize/v2"
)

// ExportCutListXLSX writes one worksheet per room's panel cut list plus a
// project summary sheet: one row per panel, columns matching the Panel
// fields a cutting crew needs on the shop floor.
func ExportCutListXLSX(path string, report model.GenerationReport, plans []model.Plan) error {
	f := excelize.NewFile()
	defer f.Close()

	summarySheet := "Summary"
	f.SetSheetName("Sheet1", summarySheet)
	writeSummarySheet(f, summarySheet, report)

	for _, plan := range plans {
		name := sheetNameForPlan(plan)
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("export xlsx: creating sheet %q: %w", name, err)
		}
		writePlanSheet(f, name, plan)
	}

	return f.SaveAs(path)
}

func sheetNameForPlan(plan model.Plan) string {
	if plan.ZoneID != "" {
		return truncateSheetName("Zone " + plan.ZoneID)
	}
	return truncateSheetName("Room " + plan.RoomID)
}

// truncateSheetName enforces Excel's 31-character worksheet name limit.
func truncateSheetName(name string) string {
	if len(name) <= 31 {
		return name
	}
	return name[:31]
}

func writeSummarySheet(f *excelize.File, sheet string, report model.GenerationReport) {
	rows := [][]any{
		{"Project ID", report.ProjectID},
		{"Plan kind", string(report.PlanKind)},
		{"Recommended strategy", string(report.RecommendedStrategy)},
		{"Total panels", report.TotalPanels},
		{"Project waste %", report.ProjectWastePercentage},
		{"Leftovers created", report.LeftoversCreated},
		{"Leftovers reused", report.LeftoversReused},
		{"Full panels saved", report.FullPanelsSaved},
	}
	for i, row := range rows {
		rowNum := i + 1
		_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", rowNum), row[0])
		_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", rowNum), row[1])
	}

	if len(report.Warnings) == 0 {
		return
	}
	headerRow := len(rows) + 2
	_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", headerRow), "Warnings")
	for i, w := range report.Warnings {
		_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", headerRow+i+1), w)
	}
}

var cutListHeader = []string{
	"Panel ID", "Width (mm)", "Length (mm)", "Min X", "Min Y", "Max X", "Max Y",
	"Is Cut", "From Leftover", "Cut Notes",
}

func writePlanSheet(f *excelize.File, sheet string, plan model.Plan) {
	for col, header := range cutListHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		_ = f.SetCellValue(sheet, cell, header)
	}

	for i, p := range plan.Panels {
		row := i + 2
		values := []any{
			p.PanelID, p.Width, p.Length,
			p.Rect.MinX, p.Rect.MinY, p.Rect.MaxX, p.Rect.MaxY,
			p.IsCut, p.FromLeftover, p.CutNotes,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}
}
