package report

import (
	"agedASN/internal/config"
	"errors"
	"reflect"
	"testing"
)

func defaultLabels() HeaderLabels {
	return LabelsFromConfig(config.Default().Report)
}

func TestLocateHeaders_Standard(t *testing.T) {
	t.Parallel()

	rows := [][]string{
		{"PO Number", "Line", "Due Date", "Vendor Name", "ASN Status"},
		{"1001", "1", "2026-10-01 00:00:00", "Acme", "EXPECTED"},
	}

	layout, err := LocateHeaders(rows, defaultLabels())
	if err != nil {
		t.Fatalf("LocateHeaders: %v", err)
	}
	want := &HeaderLayout{HeaderRow: 1, PONumberCol: 1, VendorCol: 4, DueDateCol: 3, DueDateLabel: "Due Date"}
	if !reflect.DeepEqual(layout, want) {
		t.Fatalf("layout=%+v, want %+v", layout, want)
	}
}

func TestLocateHeaders_ETAVariantBelowTitle(t *testing.T) {
	t.Parallel()

	rows := [][]string{
		{"Firm Order Report"},
		{},
		{"PO Number", "Vendor Name", "Estimated Receipt Date (ETA)"},
		{"1001", "Acme", "46313"},
	}

	layout, err := LocateHeaders(rows, defaultLabels())
	if err != nil {
		t.Fatalf("LocateHeaders: %v", err)
	}
	if layout.HeaderRow != 3 || layout.DueDateCol != 3 || layout.DueDateLabel != "Estimated Receipt Date (ETA)" {
		t.Fatalf("unexpected layout: %+v", layout)
	}
}

func TestLocateHeaders_SplitAcrossRowsFirstOccurrenceWins(t *testing.T) {
	t.Parallel()

	rows := [][]string{
		{"", "PO Number"},
		{"Vendor Name", "PO Number", "Due Date"},
		{"Vendor Name", "x", "Due Date"},
	}

	layout, err := LocateHeaders(rows, defaultLabels())
	if err != nil {
		t.Fatalf("LocateHeaders: %v", err)
	}
	want := &HeaderLayout{HeaderRow: 2, PONumberCol: 2, VendorCol: 1, DueDateCol: 3, DueDateLabel: "Due Date"}
	if !reflect.DeepEqual(layout, want) {
		t.Fatalf("layout=%+v, want %+v", layout, want)
	}
}

func TestLocateHeaders_MissingReportsEveryLabel(t *testing.T) {
	t.Parallel()

	rows := [][]string{
		{"PO Number", "Supplier", "ETA"},
	}

	_, err := LocateHeaders(rows, defaultLabels())
	var missing *MissingHeadersError
	if !errors.As(err, &missing) {
		t.Fatalf("err=%v, want MissingHeadersError", err)
	}
	if got, want := missing.Fields, []string{"Vendor Name", "Due Date"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("missing=%v, want %v", got, want)
	}
	if got := err.Error(); got != "missing required header(s): Vendor Name, Due Date or Estimated Receipt Date (ETA)" {
		t.Fatalf("unexpected message: %s", got)
	}
}

func TestLocateHeaders_Aliases(t *testing.T) {
	t.Parallel()

	rows := [][]string{
		{"PO Number", "Supplier", "ETA"},
	}
	labels := defaultLabels().WithAliases(map[string]string{
		"Supplier": "Vendor Name",
		"ETA":      "Estimated Receipt Date (ETA)",
		"Noise":    "Unknown Label",
	})

	layout, err := LocateHeaders(rows, labels)
	if err != nil {
		t.Fatalf("LocateHeaders: %v", err)
	}
	if layout.VendorCol != 2 || layout.DueDateCol != 3 || layout.DueDateLabel != "ETA" {
		t.Fatalf("unexpected layout: %+v", layout)
	}

	// aliases never leak into the labels they were derived from
	if len(defaultLabels().Vendor) != 1 {
		t.Fatalf("base labels mutated")
	}
}

func TestCandidateHeaders(t *testing.T) {
	t.Parallel()

	rows := [][]string{
		{"Firm Order Report", ""},
		{"PO", "Supplier", "PO"},
		{"1001", "Acme"},
	}
	got := CandidateHeaders(rows, 2)
	want := []string{"Firm Order Report", "PO", "Supplier"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("candidates=%v, want %v", got, want)
	}
}
