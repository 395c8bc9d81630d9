package export

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/piwi3910/panelplan/internal/model"
	"github.com/xuri/excelize/v2"
)

func TestExportCutListXLSX_CreatesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cutlist.xlsx")

	err := ExportCutListXLSX(path, buildTestReport(), buildTestPlans())
	if err != nil {
		t.Fatalf("ExportCutListXLSX returned error: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("failed to reopen generated workbook: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 3 {
		t.Fatalf("got %d sheets, want 3 (Summary + 2 rooms)", len(sheets))
	}
	if sheets[0] != "Summary" {
		t.Errorf("first sheet = %q, want Summary", sheets[0])
	}

	rows, err := f.GetRows("Room r1")
	if err != nil {
		t.Fatalf("reading Room r1 sheet: %v", err)
	}
	if len(rows) != 3 { // header + 2 panels
		t.Fatalf("Room r1 sheet has %d rows, want 3", len(rows))
	}
	if rows[0][0] != "Panel ID" {
		t.Errorf("header row[0] = %q, want Panel ID", rows[0][0])
	}
	if rows[1][0] != "CP_001" {
		t.Errorf("data row[0] = %q, want CP_001", rows[1][0])
	}
}

func TestExportCutListXLSX_ZoneSheetNaming(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "zone.xlsx")

	plan := model.Plan{ID: "plan-z1", ZoneID: "Z1", Panels: buildTestPanels()}
	if err := ExportCutListXLSX(path, buildTestReport(), []model.Plan{plan}); err != nil {
		t.Fatalf("ExportCutListXLSX returned error: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("failed to reopen workbook: %v", err)
	}
	defer f.Close()

	found := false
	for _, s := range f.GetSheetList() {
		if s == "Zone Z1" {
			found = true
		}
	}
	if !found {
		t.Errorf("sheet list %v missing Zone Z1", f.GetSheetList())
	}
}

func TestTruncateSheetName(t *testing.T) {
	long := strings.Repeat("x", 40)
	got := truncateSheetName(long)
	if len(got) != 31 {
		t.Errorf("truncateSheetName(len 40) has len %d, want 31", len(got))
	}

	short := "Room r1"
	if got := truncateSheetName(short); got != short {
		t.Errorf("truncateSheetName(%q) = %q, want unchanged", short, got)
	}
}
