package report

import (
	"agedASN/internal/excel"
	"fmt"
	"path/filepath"
)

// HeaderScan is the header lookup result for one workbook
type HeaderScan struct {
	File   string
	Sheet  string
	Layout *HeaderLayout
	Err    error
}

// ScanDirectory locates the required headers in the active sheet of every
// .xlsx file below dir without modifying any file.
func ScanDirectory(dir string, labels HeaderLabels) ([]HeaderScan, error) {
	files, err := excel.GetXlsxFiles(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to get xlsx files: %v", err)
	}

	results := make([]HeaderScan, 0, len(files))
	for _, path := range files {
		results = append(results, scanFile(path, labels))
	}
	return results, nil
}

func scanFile(path string, labels HeaderLabels) HeaderScan {
	scan := HeaderScan{File: path}

	editor, err := excel.OpenFile(path)
	if err != nil {
		scan.Err = err
		return scan
	}
	defer editor.Close()

	scan.Sheet = editor.ActiveSheet()
	rows, err := editor.GetRawRows(scan.Sheet)
	if err != nil {
		scan.Err = err
		return scan
	}
	scan.Layout, scan.Err = LocateHeaders(rows, labels)
	return scan
}

// FormatHeaderScan renders scan results one line per file
func FormatHeaderScan(results []HeaderScan) []string {
	lines := make([]string, 0, len(results))
	for _, r := range results {
		name := filepath.Base(r.File)
		if r.Err != nil {
			lines = append(lines, fmt.Sprintf("%s\tERROR\t%v", name, r.Err))
			continue
		}
		l := r.Layout
		lines = append(lines, fmt.Sprintf("%s\tOK\tsheet=%s header_row=%d po_col=%d vendor_col=%d due_col=%d due_label=%q",
			name, r.Sheet, l.HeaderRow, l.PONumberCol, l.VendorCol, l.DueDateCol, l.DueDateLabel))
	}
	return lines
}
