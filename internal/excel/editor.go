package excel

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

type Editor struct {
	file     *excelize.File
	filepath string

	// fills caches derived styles by base style id and fill color
	fills map[fillKey]int
}

type fillKey struct {
	base  int
	color string
}

// OpenFile opens an existing Excel file
func OpenFile(filepath string) (*Editor, error) {
	file, err := excelize.OpenFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return newEditor(file, filepath), nil
}

// CreateNewFile creates a new Excel file in memory
func CreateNewFile() *Editor {
	return newEditor(excelize.NewFile(), "")
}

func newEditor(file *excelize.File, filepath string) *Editor {
	return &Editor{
		file:     file,
		filepath: filepath,
		fills:    make(map[fillKey]int),
	}
}

// Path returns the file the editor saves to
func (e *Editor) Path() string {
	return e.filepath
}

// ActiveSheet returns the name of the sheet selected when the workbook was saved
func (e *Editor) ActiveSheet() string {
	return e.file.GetSheetName(e.file.GetActiveSheetIndex())
}

// Date1904 reports whether the workbook counts date serials from 1904
func (e *Editor) Date1904() bool {
	props, err := e.file.GetWorkbookProps()
	return err == nil && props.Date1904 != nil && *props.Date1904
}

// HasSheet reports whether a sheet with the exact name exists
func (e *Editor) HasSheet(sheetName string) bool {
	idx, err := e.file.GetSheetIndex(sheetName)
	return err == nil && idx >= 0
}

// AddSheet creates a new sheet
func (e *Editor) AddSheet(sheetName string) error {
	_, err := e.file.NewSheet(sheetName)
	return err
}

// DeleteSheet removes a sheet together with its tables, so their names can
// be reused by a sheet created later
func (e *Editor) DeleteSheet(sheetName string) error {
	tables, err := e.file.GetTables(sheetName)
	if err != nil {
		return fmt.Errorf("failed to list tables: %w", err)
	}
	for _, t := range tables {
		if err := e.file.DeleteTable(t.Name); err != nil {
			return fmt.Errorf("failed to delete table %s: %w", t.Name, err)
		}
	}
	return e.file.DeleteSheet(sheetName)
}

// GetRawRows returns all rows of a sheet with unformatted cell values,
// so date cells come back as Excel serial numbers.
func (e *Editor) GetRawRows(sheet string) ([][]string, error) {
	rows, err := e.file.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}
	return rows, nil
}

// GetCellType returns the stored data type of a cell
func (e *Editor) GetCellType(sheet, cell string) (excelize.CellType, error) {
	return e.file.GetCellType(sheet, cell)
}

// SetCellValue sets a value in a specific cell
func (e *Editor) SetCellValue(sheet, cell string, value interface{}) error {
	return e.file.SetCellValue(sheet, cell, value)
}

// SetSheetRow writes values left to right starting at cell
func (e *Editor) SetSheetRow(sheet, cell string, values []interface{}) error {
	return e.file.SetSheetRow(sheet, cell, &values)
}

// SetCellFill replaces the fill of a cell with a solid color, keeping the
// rest of the cell's style (number format, borders, font) intact.
func (e *Editor) SetCellFill(sheet, cell, color string) error {
	base, err := e.file.GetCellStyle(sheet, cell)
	if err != nil {
		return fmt.Errorf("failed to read style of %s: %w", cell, err)
	}

	key := fillKey{base: base, color: normalizeColor(color)}
	styleID, ok := e.fills[key]
	if !ok {
		style, err := e.file.GetStyle(base)
		if err != nil {
			return fmt.Errorf("failed to load style %d: %w", base, err)
		}
		style.Fill = excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{key.color}}

		styleID, err = e.file.NewStyle(style)
		if err != nil {
			return fmt.Errorf("failed to create fill style: %w", err)
		}
		e.fills[key] = styleID
	}

	if err := e.file.SetCellStyle(sheet, cell, cell, styleID); err != nil {
		return fmt.Errorf("failed to apply fill to %s: %w", cell, err)
	}
	return nil
}

// GetCellFill returns the solid fill color of a cell as six uppercase hex
// digits, or an empty string when the cell has no pattern fill.
func (e *Editor) GetCellFill(sheet, cell string) (string, error) {
	styleID, err := e.file.GetCellStyle(sheet, cell)
	if err != nil {
		return "", err
	}
	style, err := e.file.GetStyle(styleID)
	if err != nil {
		return "", err
	}
	if style.Fill.Type != "pattern" || len(style.Fill.Color) == 0 {
		return "", nil
	}
	return normalizeColor(style.Fill.Color[0]), nil
}

// HasTable reports whether the sheet already carries a table object
func (e *Editor) HasTable(sheet string) (bool, error) {
	tables, err := e.file.GetTables(sheet)
	if err != nil {
		return false, fmt.Errorf("failed to list tables: %w", err)
	}
	return len(tables) > 0, nil
}

// AddTable wraps a cell range in a striped table
func (e *Editor) AddTable(sheet, cellRange, name, style string) error {
	stripes := true
	err := e.file.AddTable(sheet, &excelize.Table{
		Range:          cellRange,
		Name:           name,
		StyleName:      style,
		ShowRowStripes: &stripes,
	})
	if err != nil {
		return fmt.Errorf("failed to add table %s on %s: %w", name, cellRange, err)
	}
	return nil
}

// Save saves the Excel file to the original filepath
func (e *Editor) Save() error {
	if e.filepath == "" {
		return fmt.Errorf("no filepath specified, use SaveAs instead")
	}
	return e.file.SaveAs(e.filepath)
}

// Close closes the Excel file
func (e *Editor) Close() error {
	return e.file.Close()
}

// normalizeColor turns "#ff0000" or "FFFF0000" into "FF0000"
func normalizeColor(color string) string {
	color = strings.ToUpper(strings.TrimPrefix(color, "#"))
	if len(color) == 8 {
		color = color[2:]
	}
	return color
}
