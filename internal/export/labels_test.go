package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/panelplan/internal/model"
)

func TestExportPanelLabelsPDF_CreatesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "labels.pdf")

	err := ExportPanelLabelsPDF(path, buildTestPanels())
	if err != nil {
		t.Fatalf("ExportPanelLabelsPDF returned error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("PDF file was not created: %v", err)
	}
	if info.Size() < 500 {
		t.Errorf("PDF file seems too small: %d bytes", info.Size())
	}
}

func TestExportPanelLabelsPDF_EmptyPanels(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.pdf")

	err := ExportPanelLabelsPDF(path, nil)
	if err == nil {
		t.Fatal("expected error for empty panel list, got nil")
	}
}

func TestExportPanelLabelsPDF_ManyPanelsSpanPages(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "many_labels.pdf")

	panels := make([]model.Panel, 35)
	for i := range panels {
		panels[i] = model.Panel{
			PanelID: "CP_" + itoa3(i+1),
			Rect:    model.Rect{MinX: 0, MinY: 0, MaxX: 600, MaxY: 1200},
			Width:   600, Length: 1200,
			RoomID: "r1",
		}
	}

	if err := ExportPanelLabelsPDF(path, panels); err != nil {
		t.Fatalf("ExportPanelLabelsPDF returned error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("PDF file was not created: %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("PDF file is empty")
	}
}

func TestPanelLabelInfo_JSONRoundTrip(t *testing.T) {
	info := PanelLabelInfo{
		PanelID: "CP_001", RoomID: "r1", Width: 600, Length: 1200,
		IsCut: true, FromLeftover: false,
	}

	data, err := json.Marshal(info)
	if err != nil {
		t.Fatalf("failed to marshal: %v", err)
	}

	var decoded PanelLabelInfo
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}

	if decoded.PanelID != info.PanelID {
		t.Errorf("panel ID mismatch: got %q, want %q", decoded.PanelID, info.PanelID)
	}
	if decoded.Width != info.Width || decoded.Length != info.Length {
		t.Errorf("dimensions mismatch: got %.0fx%.0f, want %.0fx%.0f",
			decoded.Width, decoded.Length, info.Width, info.Length)
	}
	if decoded.IsCut != info.IsCut {
		t.Error("is_cut flag mismatch")
	}
}

// itoa3 zero-pads small integers for readable synthetic panel IDs without
// importing fmt into the test's hot loop.
func itoa3(n int) string {
	s := ""
	for n > 0 {
		s = string(rune('0'+n%10)) + s
		n /= 10
	}
	for len(s) < 3 {
		s = "0" + s
	}
	return s
}
