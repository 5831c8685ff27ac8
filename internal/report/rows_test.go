package report

import "testing"

func TestRowOffset(t *testing.T) {
	t.Parallel()

	if got := PositionForRow(2); got != 0 {
		t.Fatalf("PositionForRow(2)=%d, want 0", got)
	}
	if got := PositionForRow(3); got != 1 {
		t.Fatalf("PositionForRow(3)=%d, want 1", got)
	}
	if got := RowForPosition(0); got != 2 {
		t.Fatalf("RowForPosition(0)=%d, want 2", got)
	}
	for row := 2; row < 50; row++ {
		if got := RowForPosition(PositionForRow(row)); got != row {
			t.Fatalf("round trip of row %d gave %d", row, got)
		}
	}
}
