package report

import (
	"agedASN/internal/logger"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// RowWriter is the part of the workbook editor the classifier mutates
type RowWriter interface {
	GetCellType(sheet, cell string) (excelize.CellType, error)
	SetCellValue(sheet, cell string, value interface{}) error
	SetCellFill(sheet, cell, color string) error
}

// ClassifiedRow is one data row after classification
type ClassifiedRow struct {
	Row        int // 1-based worksheet row
	Position   int // 0-based table position
	PONumber   string
	Vendor     string
	DueDate    time.Time
	HasDueDate bool
	DaysDelta  int
	Membership Membership
	Bucket     Bucket
}

// Classifier colors the data rows below the header row
type Classifier struct {
	Today       time.Time
	OverdueDays int
	DateLayout  string
	Date1904    bool // serial due dates count from 1904
	Log         *slog.Logger
}

// Classify walks every row below the header row. Blank first-column cells
// take the last non-blank first-column value seen above them, keeping its
// cell type. In-scope rows with a bucket get the bucket color on their PO
// number, vendor and due date cells.
func (c *Classifier) Classify(w RowWriter, sheet string, rows [][]string, layout *HeaderLayout, scope *Scope) ([]ClassifiedRow, error) {
	log := c.Log
	if log == nil {
		log = logger.Logger
	}
	today := civilDate(c.Today)

	var out []ClassifiedRow
	lastFirst := ""
	lastFirstCell := ""
	var carried interface{}

	for r := layout.HeaderRow + 1; r <= len(rows); r++ {
		row := rows[r-1]
		if isBlankRow(row) {
			continue
		}

		first := cellAt(row, 0)
		firstCell, _ := excelize.CoordinatesToCellName(1, r)
		if first == "" && lastFirst != "" {
			if carried == nil {
				value, err := typedValue(w, sheet, lastFirstCell, lastFirst)
				if err != nil {
					return nil, err
				}
				carried = value
			}
			if err := w.SetCellValue(sheet, firstCell, carried); err != nil {
				return nil, fmt.Errorf("failed to carry PO number into %s: %w", firstCell, err)
			}
			first = lastFirst
		} else if first != "" {
			lastFirst = first
			lastFirstCell = firstCell
			carried = nil
		}

		cr := ClassifiedRow{
			Row:        r,
			Position:   PositionForRow(r),
			PONumber:   cellAt(row, layout.PONumberCol-1),
			Vendor:     cellAt(row, layout.VendorCol-1),
			Membership: scope.Of(PositionForRow(r)),
		}
		if layout.PONumberCol == 1 {
			cr.PONumber = first
		}

		rawDue := cellAt(row, layout.DueDateCol-1)
		if rawDue != "" {
			due, err := parseDueDate(rawDue, c.DateLayout, c.Date1904)
			switch {
			case err == nil:
				cr.DueDate = due
				cr.HasDueDate = true
				cr.DaysDelta = int(due.Sub(today) / (24 * time.Hour))
			case cr.Membership == InProgress:
				cell, _ := excelize.CoordinatesToCellName(layout.DueDateCol, r)
				return nil, fmt.Errorf("malformed due date %q in %s: %w", rawDue, cell, err)
			default:
				log.Debug("Ignoring unparseable due date outside in-progress scope", "row", r, "value", rawDue)
			}
		}

		switch cr.Membership {
		case InProgress:
			if cr.HasDueDate {
				cr.Bucket = BucketForDelta(cr.DaysDelta, c.OverdueDays)
			}
		case FullyReceived:
			cr.Bucket = NotDue
		}

		if color := cr.Bucket.Color(); color != "" {
			for _, col := range []int{layout.PONumberCol, layout.VendorCol, layout.DueDateCol} {
				cell, _ := excelize.CoordinatesToCellName(col, r)
				if err := w.SetCellFill(sheet, cell, color); err != nil {
					return nil, err
				}
			}
		}

		out = append(out, cr)
	}

	log.Info("Rows classified", "rows", len(out))
	return out, nil
}

// typedValue returns the value of a first-column cell with its cell type,
// so numeric PO numbers are carried down as numbers.
func typedValue(w RowWriter, sheet, cell, raw string) (interface{}, error) {
	cellType, err := w.GetCellType(sheet, cell)
	if err != nil {
		return nil, fmt.Errorf("failed to read cell type of %s: %w", cell, err)
	}
	switch cellType {
	case excelize.CellTypeUnset, excelize.CellTypeNumber:
		if n, err := strconv.ParseFloat(raw, 64); err == nil {
			return n, nil
		}
	case excelize.CellTypeBool:
		return raw == "1" || strings.EqualFold(raw, "TRUE"), nil
	}
	return raw, nil
}

// parseDueDate accepts an Excel date serial, the configured date-time
// layout or a bare ISO date, and truncates the result to a calendar date.
func parseDueDate(raw, layout string, date1904 bool) (time.Time, error) {
	if serial, err := strconv.ParseFloat(raw, 64); err == nil {
		t, err := excelize.ExcelDateToTime(serial, date1904)
		if err != nil {
			return time.Time{}, err
		}
		return civilDate(t), nil
	}

	layouts := []string{layout, "2006-01-02"}
	var lastErr error
	for _, l := range layouts {
		if l == "" {
			continue
		}
		t, err := time.Parse(l, raw)
		if err == nil {
			return civilDate(t), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

func civilDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
