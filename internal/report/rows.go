package report

// rowOffset bridges 1-based worksheet rows and 0-based table positions.
// Worksheet row 1 holds the header and the table index starts at row 2.
const rowOffset = 2

// PositionForRow converts a 1-based worksheet row to its 0-based table position
func PositionForRow(row int) int {
	return row - rowOffset
}

// RowForPosition converts a 0-based table position back to its worksheet row
func RowForPosition(pos int) int {
	return pos + rowOffset
}

// cellAt returns the value at a 0-based column, or "" past the end of a short row
func cellAt(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col]
}

// isBlankRow reports whether every cell of the row is empty
func isBlankRow(row []string) bool {
	for _, v := range row {
		if v != "" {
			return false
		}
	}
	return true
}
