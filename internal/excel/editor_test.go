package excel

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestSetCellFill_KeepsNumberFormat(t *testing.T) {
	e := CreateNewFile()
	defer e.Close()

	dateStyle, err := e.file.NewStyle(&excelize.Style{NumFmt: 22})
	if err != nil {
		t.Fatalf("NewStyle: %v", err)
	}
	if err := e.file.SetCellStyle("Sheet1", "B2", "B2", dateStyle); err != nil {
		t.Fatalf("SetCellStyle: %v", err)
	}

	if err := e.SetCellFill("Sheet1", "B2", "#ff0000"); err != nil {
		t.Fatalf("SetCellFill: %v", err)
	}

	got, err := e.GetCellFill("Sheet1", "B2")
	if err != nil {
		t.Fatalf("GetCellFill: %v", err)
	}
	if got != "FF0000" {
		t.Fatalf("fill=%q, want FF0000", got)
	}

	styleID, _ := e.file.GetCellStyle("Sheet1", "B2")
	style, err := e.file.GetStyle(styleID)
	if err != nil {
		t.Fatalf("GetStyle: %v", err)
	}
	if style.NumFmt != 22 {
		t.Fatalf("number format=%d, want 22", style.NumFmt)
	}
}

func TestSetCellFill_ReusesDerivedStyle(t *testing.T) {
	e := CreateNewFile()
	defer e.Close()

	for _, cell := range []string{"A1", "B1", "C1"} {
		if err := e.SetCellFill("Sheet1", cell, "00FF00"); err != nil {
			t.Fatalf("SetCellFill %s: %v", cell, err)
		}
	}
	if len(e.fills) != 1 {
		t.Fatalf("expected one cached style, got %d", len(e.fills))
	}

	a, _ := e.file.GetCellStyle("Sheet1", "A1")
	c, _ := e.file.GetCellStyle("Sheet1", "C1")
	if a != c {
		t.Fatalf("cells share a base style, expected same derived style, got %d and %d", a, c)
	}
}

func TestGetCellFill_Unfilled(t *testing.T) {
	e := CreateNewFile()
	defer e.Close()

	got, err := e.GetCellFill("Sheet1", "D4")
	if err != nil {
		t.Fatalf("GetCellFill: %v", err)
	}
	if got != "" {
		t.Fatalf("fill=%q, want empty", got)
	}
}

func TestAddTableAndHasTable(t *testing.T) {
	e := CreateNewFile()
	defer e.Close()

	if err := e.SetSheetRow("Sheet1", "A1", []interface{}{"Supplier", "Red Qty"}); err != nil {
		t.Fatalf("SetSheetRow: %v", err)
	}
	if err := e.SetSheetRow("Sheet1", "A2", []interface{}{"Acme", 1}); err != nil {
		t.Fatalf("SetSheetRow: %v", err)
	}

	has, err := e.HasTable("Sheet1")
	if err != nil {
		t.Fatalf("HasTable: %v", err)
	}
	if has {
		t.Fatalf("fresh sheet should have no table")
	}

	if err := e.AddTable("Sheet1", "A1:B2", "Table_1", "TableStyleMedium9"); err != nil {
		t.Fatalf("AddTable: %v", err)
	}
	if has, _ = e.HasTable("Sheet1"); !has {
		t.Fatalf("expected table after AddTable")
	}
}

func TestSheetLifecycle(t *testing.T) {
	e := CreateNewFile()
	defer e.Close()

	if e.ActiveSheet() != "Sheet1" {
		t.Fatalf("active sheet=%q, want Sheet1", e.ActiveSheet())
	}
	if e.HasSheet("Summary") {
		t.Fatalf("unexpected Summary sheet")
	}
	if err := e.AddSheet("Summary"); err != nil {
		t.Fatalf("AddSheet: %v", err)
	}
	if !e.HasSheet("Summary") {
		t.Fatalf("expected Summary sheet")
	}
	if err := e.DeleteSheet("Summary"); err != nil {
		t.Fatalf("DeleteSheet: %v", err)
	}
	if e.HasSheet("Summary") {
		t.Fatalf("Summary sheet should be gone")
	}
}

func TestSave_RequiresPath(t *testing.T) {
	e := CreateNewFile()
	defer e.Close()

	if err := e.Save(); err == nil {
		t.Fatalf("expected error saving without a path")
	}

	path := filepath.Join(t.TempDir(), "book.xlsx")
	if err := e.file.SaveAs(path); err != nil {
		t.Fatalf("SaveAs: %v", err)
	}

	reopened, err := OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	defer reopened.Close()

	if reopened.Path() != path {
		t.Fatalf("path=%q, want %q", reopened.Path(), path)
	}
	if err := reopened.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}
}

func TestDate1904(t *testing.T) {
	e := CreateNewFile()
	defer e.Close()

	if e.Date1904() {
		t.Fatalf("new workbooks use the 1900 date system")
	}
	date1904 := true
	if err := e.file.SetWorkbookProps(&excelize.WorkbookPropsOptions{Date1904: &date1904}); err != nil {
		t.Fatalf("SetWorkbookProps: %v", err)
	}
	if !e.Date1904() {
		t.Fatalf("expected 1904 date system")
	}
}

func TestGetCellType(t *testing.T) {
	e := CreateNewFile()
	defer e.Close()

	if err := e.SetSheetRow("Sheet1", "A1", []interface{}{1001, "PO-7"}); err != nil {
		t.Fatalf("SetSheetRow: %v", err)
	}
	if got, _ := e.GetCellType("Sheet1", "A1"); got != excelize.CellTypeUnset && got != excelize.CellTypeNumber {
		t.Fatalf("numeric cell type=%v", got)
	}
	if got, _ := e.GetCellType("Sheet1", "B1"); got != excelize.CellTypeSharedString {
		t.Fatalf("text cell type=%v, want shared string", got)
	}
}

func TestGetXlsxFiles_SkipsLockFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.xlsx", "B.XLSX", "~$a.xlsx", "old.xls", "notes.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	files, err := GetXlsxFiles(dir)
	if err != nil {
		t.Fatalf("GetXlsxFiles: %v", err)
	}
	for i := range files {
		files[i] = filepath.Base(files[i])
	}
	sort.Strings(files)
	if len(files) != 2 || files[0] != "B.XLSX" || files[1] != "a.xlsx" {
		t.Fatalf("unexpected files: %v", files)
	}
}

func TestNormalizeColor(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"#ff0000":  "FF0000",
		"FFFF0000": "FF0000",
		"00FF00":   "00FF00",
		"FF00FF00": "00FF00",
	}
	for in, want := range cases {
		if got := normalizeColor(in); got != want {
			t.Fatalf("normalizeColor(%q)=%q, want %q", in, got, want)
		}
	}
}

func TestDeleteSheet_FreesTableName(t *testing.T) {
	e := CreateNewFile()
	defer e.Close()

	build := func() {
		t.Helper()
		if err := e.AddSheet("Summary"); err != nil {
			t.Fatalf("AddSheet: %v", err)
		}
		if err := e.SetSheetRow("Summary", "A1", []interface{}{"Supplier", "Red Qty"}); err != nil {
			t.Fatalf("SetSheetRow: %v", err)
		}
		if err := e.SetSheetRow("Summary", "A2", []interface{}{"Acme", 1}); err != nil {
			t.Fatalf("SetSheetRow: %v", err)
		}
		if err := e.AddTable("Summary", "A1:B2", "Table_2", "TableStyleMedium9"); err != nil {
			t.Fatalf("AddTable: %v", err)
		}
	}

	build()
	if err := e.DeleteSheet("Summary"); err != nil {
		t.Fatalf("DeleteSheet: %v", err)
	}
	build()
}
