package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// VendorSummary counts classified lines per bucket for one vendor
type VendorSummary struct {
	Vendor string
	Red    int
	Yellow int
	Green  int
}

// Total returns the number of classified lines of the vendor
func (v VendorSummary) Total() int {
	return v.Red + v.Yellow + v.Green
}

// Totals counts all data rows by bucket
type Totals struct {
	Red          int
	Yellow       int
	Green        int
	Unclassified int
}

// Aggregate groups classified rows by vendor in order of first sighting.
// Blank vendors and the literal "0" are skipped. A vendor seen only on
// unclassified rows still gets a zero record.
func Aggregate(rows []ClassifiedRow) []VendorSummary {
	index := make(map[string]int)
	var out []VendorSummary

	for _, r := range rows {
		if r.Vendor == "" || r.Vendor == "0" {
			continue
		}
		i, ok := index[r.Vendor]
		if !ok {
			i = len(out)
			index[r.Vendor] = i
			out = append(out, VendorSummary{Vendor: r.Vendor})
		}

		switch r.Bucket {
		case Overdue:
			out[i].Red++
		case DueSoon:
			out[i].Yellow++
		case NotDue:
			out[i].Green++
		}
	}
	return out
}

// CountBuckets tallies every classified row, vendor or not
func CountBuckets(rows []ClassifiedRow) Totals {
	var t Totals
	for _, r := range rows {
		switch r.Bucket {
		case Overdue:
			t.Red++
		case DueSoon:
			t.Yellow++
		case NotDue:
			t.Green++
		default:
			t.Unclassified++
		}
	}
	return t
}

// SummaryEditor is the part of the workbook editor the summary writer needs
type SummaryEditor interface {
	HasSheet(sheetName string) bool
	DeleteSheet(sheetName string) error
	AddSheet(sheetName string) error
	SetSheetRow(sheet, cell string, values []interface{}) error
	SetCellFill(sheet, cell, color string) error
	HasTable(sheet string) (bool, error)
	AddTable(sheet, cellRange, name, style string) error
}

// SummaryOptions names the generated sheet and its table
type SummaryOptions struct {
	SheetName  string
	TableName  string
	TableStyle string
}

var summaryHeaders = []interface{}{"Supplier", "Red Qty", "Yellow Qty", "Green Qty"}

const summaryHeaderColor = "FFFFCC"

// WriteSummary replaces the summary sheet with one row per vendor below a
// highlighted header row, wrapped in a table.
func WriteSummary(e SummaryEditor, vendors []VendorSummary, opts SummaryOptions) error {
	sheet := opts.SheetName
	if e.HasSheet(sheet) {
		if err := e.DeleteSheet(sheet); err != nil {
			return fmt.Errorf("failed to delete previous %s sheet: %w", sheet, err)
		}
	}
	if err := e.AddSheet(sheet); err != nil {
		return fmt.Errorf("failed to create %s sheet: %w", sheet, err)
	}

	if err := e.SetSheetRow(sheet, "A1", summaryHeaders); err != nil {
		return fmt.Errorf("failed to write summary header: %w", err)
	}
	for col := 1; col <= len(summaryHeaders); col++ {
		cell, _ := excelize.CoordinatesToCellName(col, 1)
		if err := e.SetCellFill(sheet, cell, summaryHeaderColor); err != nil {
			return err
		}
	}

	for i, v := range vendors {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := e.SetSheetRow(sheet, cell, []interface{}{v.Vendor, v.Red, v.Yellow, v.Green}); err != nil {
			return fmt.Errorf("failed to write summary row for %s: %w", v.Vendor, err)
		}
	}

	// a table needs at least one data row
	if len(vendors) == 0 {
		return nil
	}
	hasTable, err := e.HasTable(sheet)
	if err != nil {
		return err
	}
	if hasTable {
		return nil
	}
	lastCell, _ := excelize.CoordinatesToCellName(len(summaryHeaders), len(vendors)+1)
	return e.AddTable(sheet, "A1:"+lastCell, opts.TableName, opts.TableStyle)
}
