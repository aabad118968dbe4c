package importer

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/piwi3910/StudCode/internal/model"
	"github.com/xuri/excelize/v2"
)

// ─── DetectCSVDelimiter Tests ──────────────────────────────

func TestDetectCSVDelimiter_Comma(t *testing.T) {
	data := []byte("Name,Width,Height\n2x4,2,4\n1x1,1,1\n")
	if got := DetectCSVDelimiter(data); got != ',' {
		t.Errorf("expected comma delimiter, got %q", got)
	}
}

func TestDetectCSVDelimiter_Semicolon(t *testing.T) {
	data := []byte("Name;Width;Height\n2x4;2;4\n1x1;1;1\n")
	if got := DetectCSVDelimiter(data); got != ';' {
		t.Errorf("expected semicolon delimiter, got %q", got)
	}
}

func TestDetectCSVDelimiter_Tab(t *testing.T) {
	data := []byte("Name\tWidth\tHeight\n2x4\t2\t4\n1x1\t1\t1\n")
	if got := DetectCSVDelimiter(data); got != '\t' {
		t.Errorf("expected tab delimiter, got %q", got)
	}
}

// ─── DetectColumns Tests ───────────────────────────────────

func TestDetectColumns_StandardHeaders(t *testing.T) {
	mapping, ok := DetectColumns([]string{"Name", "Width", "Height", "Rotations", "Shape"})
	if !ok {
		t.Fatal("expected header to be detected")
	}
	want := ColumnMapping{Name: 0, Width: 1, Height: 2, Rotations: 3, Shape: 4}
	if mapping != want {
		t.Errorf("got %+v, want %+v", mapping, want)
	}
}

func TestDetectColumns_ReorderedAndAliased(t *testing.T) {
	mapping, ok := DetectColumns([]string{"ROT", "h", "Piece", "W"})
	if !ok {
		t.Fatal("expected header to be detected")
	}
	want := ColumnMapping{Name: 2, Width: 3, Height: 1, Rotations: 0, Shape: -1}
	if mapping != want {
		t.Errorf("got %+v, want %+v", mapping, want)
	}
}

func TestDetectColumns_NoHeader(t *testing.T) {
	mapping, ok := DetectColumns([]string{"2x4", "2", "4"})
	if ok {
		t.Error("did not expect a header")
	}
	if mapping.Name != 0 || mapping.Width != 1 || mapping.Height != 2 {
		t.Errorf("unexpected positional mapping %+v", mapping)
	}
}

// ─── Row parsing ───────────────────────────────────────────

func TestParseRotations(t *testing.T) {
	tests := []struct {
		in   string
		want []int
		ok   bool
	}{
		{"0;90", []int{0, 90}, true},
		{"90 0", []int{90, 0}, true},
		{"all", []int{0, 90, 180, 270}, true},
		{"none", []int{0}, true},
		{"0/180", []int{0, 180}, true},
		{"45", nil, false},
		{"sideways", nil, false},
	}
	for _, tt := range tests {
		got, ok := parseRotations(tt.in)
		if ok != tt.ok || !reflect.DeepEqual(got, tt.want) {
			t.Errorf("parseRotations(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestImportCSVFromReader_WithHeaders(t *testing.T) {
	input := "Name,Width,Height,Rotations\nBig,6,6,\nLong,1,8,90;0\n"
	result := ImportCSVFromReader(strings.NewReader(input), ',')

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Parts) != 2 {
		t.Fatalf("expected 2 parts, got %d", len(result.Parts))
	}
	if result.Parts[0].Name != "Big" || result.Parts[0].Footprint.Cells() != 36 {
		t.Errorf("unexpected first part %+v", result.Parts[0])
	}
	if !reflect.DeepEqual(result.Parts[0].Rotations, []int{0}) {
		t.Errorf("square parts default to a single rotation, got %v", result.Parts[0].Rotations)
	}
	if !reflect.DeepEqual(result.Parts[1].Rotations, []int{90, 0}) {
		t.Errorf("expected listed rotation order, got %v", result.Parts[1].Rotations)
	}
}

func TestImportCSVFromReader_DefaultName(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader("2,4\n"), ',')
	// Two columns: no name column, so width lands in Name and height in Width.
	if len(result.Errors) != 1 {
		t.Fatalf("expected missing height error, got %v", result.Errors)
	}

	result = ImportCSVFromReader(strings.NewReader("Width,Height\n2,4\n"), ',')
	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if result.Parts[0].Name != "2x4" {
		t.Errorf("expected generated name 2x4, got %q", result.Parts[0].Name)
	}
}

func TestImportCSVFromReader_CornerShape(t *testing.T) {
	input := "Name,Width,Height,Rotations,Shape\n,2,2,,corner\nBig L,3,3,0,corner\n"
	result := ImportCSVFromReader(strings.NewReader(input), ',')

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if result.Parts[0].Name != "2x2 corner" || result.Parts[0].Footprint.Cells() != 3 {
		t.Errorf("unexpected corner %+v", result.Parts[0])
	}
	if len(result.Parts[0].Rotations) != 4 {
		t.Errorf("corners default to all four rotations, got %v", result.Parts[0].Rotations)
	}
	if result.Parts[1].Footprint.Cells() != 8 {
		t.Errorf("3x3 corner has 8 studs, got %d", result.Parts[1].Footprint.Cells())
	}
}

func TestImportCSVFromReader_InvalidRows(t *testing.T) {
	input := "Name,Width,Height,Rotations,Shape\n" +
		"bad,abc,2,,\n" +
		"zero,0,2,,\n" +
		"tiny corner,1,2,,corner\n" +
		"blob,2,2,,blob\n" +
		"ok,1,2,,\n"
	result := ImportCSVFromReader(strings.NewReader(input), ',')

	if len(result.Errors) != 4 {
		t.Errorf("expected 4 errors, got %d: %v", len(result.Errors), result.Errors)
	}
	if len(result.Parts) != 1 || result.Parts[0].Name != "ok" {
		t.Errorf("expected only the valid row to import, got %+v", result.Parts)
	}
}

func TestImportCSVFromReader_UnknownRotationsWarns(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader("Name,Width,Height,Rotations\nx,1,3,diagonal\n"), ',')
	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if !reflect.DeepEqual(result.Parts[0].Rotations, []int{0, 90}) {
		t.Errorf("expected default rotations, got %v", result.Parts[0].Rotations)
	}
	found := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "diagonal") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a warning naming the bad value, got %v", result.Warnings)
	}
}

func TestImportCSVFromReader_MissingRequiredColumnInHeader(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader("Name,Width\n2x2,2\n"), ',')
	if len(result.Errors) != 1 || !strings.Contains(result.Errors[0], "Height") {
		t.Errorf("expected missing Height error, got %v", result.Errors)
	}
}

func TestImportCSVFromReader_EmptyRows(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader("Name,Width,Height\n\n2x2,2,2\n,,\n"), ',')
	if len(result.Parts) != 1 || len(result.Errors) != 0 {
		t.Errorf("expected 1 part and no errors, got %d parts, errors %v", len(result.Parts), result.Errors)
	}
}

// ─── File imports ──────────────────────────────────────────

func TestImportCSV_SemicolonFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "parts.csv")
	if err := os.WriteFile(path, []byte("Name;Width;Height\n2x4;2;4\n1x1;1;1\n"), 0644); err != nil {
		t.Fatal(err)
	}

	result := ImportCSV(path)
	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Parts) != 2 {
		t.Fatalf("expected 2 parts, got %d", len(result.Parts))
	}
	if len(result.Warnings) == 0 || !strings.Contains(result.Warnings[0], "semicolon") {
		t.Errorf("expected delimiter warning, got %v", result.Warnings)
	}
}

func TestImportCSV_FileNotFound(t *testing.T) {
	result := ImportCSV(filepath.Join(t.TempDir(), "missing.csv"))
	if len(result.Errors) == 0 {
		t.Error("expected error for missing file")
	}
}

func TestImportCSV_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	if err := os.WriteFile(path, []byte("  \n"), 0644); err != nil {
		t.Fatal(err)
	}
	result := ImportCSV(path)
	if len(result.Errors) != 1 || result.Errors[0] != "File is empty" {
		t.Errorf("expected empty file error, got %v", result.Errors)
	}
}

func createTestExcel(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "parts.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	for i, row := range rows {
		for j, cell := range row {
			cellRef, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				t.Fatalf("failed to create cell reference: %v", err)
			}
			if err := f.SetCellValue(sheet, cellRef, cell); err != nil {
				t.Fatalf("failed to set cell value: %v", err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		t.Fatalf("failed to save Excel file: %v", err)
	}
	return path
}

func TestImportExcel_WithHeaders(t *testing.T) {
	path := createTestExcel(t, [][]interface{}{
		{"Part", "Width", "Height", "Rotations"},
		{"2x6", 2, 6, "0;90"},
		{"1x1", 1, 1, ""},
	})

	result := ImportExcel(path)
	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Parts) != 2 {
		t.Fatalf("expected 2 parts, got %d", len(result.Parts))
	}
	if result.Parts[0].Name != "2x6" || result.Parts[0].Footprint.Cells() != 12 {
		t.Errorf("unexpected first part %+v", result.Parts[0])
	}
}

func TestImportExcel_FileNotFound(t *testing.T) {
	result := ImportExcel(filepath.Join(t.TempDir(), "missing.xlsx"))
	if len(result.Errors) == 0 {
		t.Error("expected error for missing file")
	}
}

func TestLoadCatalog_OrdersByPolicy(t *testing.T) {
	path := createTestExcel(t, [][]interface{}{
		{"Name", "Width", "Height"},
		{"1x1", 1, 1},
		{"2x2", 2, 2},
		{"1x2", 1, 2},
	})

	cat, _, err := LoadCatalog(path, model.PolicyArea)
	if err != nil {
		t.Fatalf("LoadCatalog returned error: %v", err)
	}
	if got := cat.Names(); !reflect.DeepEqual(got, []string{"2x2", "1x2", "1x1"}) {
		t.Errorf("expected area order, got %v", got)
	}

	cat, _, err = LoadCatalog(path, model.PolicyDeclared)
	if err != nil {
		t.Fatalf("LoadCatalog returned error: %v", err)
	}
	if got := cat.Names(); !reflect.DeepEqual(got, []string{"1x1", "2x2", "1x2"}) {
		t.Errorf("expected declared order, got %v", got)
	}
}

func TestLoadCatalog_RowErrorFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "parts.csv")
	if err := os.WriteFile(path, []byte("Name,Width,Height\n1x1,1,1\nbad,x,1\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := LoadCatalog(path, model.PolicyArea); err == nil {
		t.Fatal("expected error for invalid row")
	}
}
