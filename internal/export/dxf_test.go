package export

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExportLayoutDXF_CreatesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "layout.dxf")

	err := ExportLayoutDXF(path, buildTestPanels())
	if err != nil {
		t.Fatalf("ExportLayoutDXF returned error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("DXF file was not created: %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("DXF file is empty")
	}
}

func TestExportLayoutDXF_NoPanels(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.dxf")

	err := ExportLayoutDXF(path, nil)
	if err == nil {
		t.Fatal("expected error for empty panel list, got nil")
	}
}
