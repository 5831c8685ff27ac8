package report

import (
	"agedASN/internal/excel"
	"reflect"
	"testing"
)

func TestAggregate(t *testing.T) {
	t.Parallel()

	rows := []ClassifiedRow{
		{Vendor: "Acme", Bucket: Overdue},
		{Vendor: "Globex", Bucket: Unclassified},
		{Vendor: "Acme", Bucket: NotDue},
		{Vendor: "0", Bucket: Overdue},
		{Vendor: "", Bucket: DueSoon},
		{Vendor: "acme", Bucket: DueSoon},
		{Vendor: "Acme", Bucket: DueSoon},
	}

	got := Aggregate(rows)
	want := []VendorSummary{
		{Vendor: "Acme", Red: 1, Yellow: 1, Green: 1},
		{Vendor: "Globex"},
		{Vendor: "acme", Yellow: 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("summary=%+v, want %+v", got, want)
	}

	classified := map[string]int{}
	for _, r := range rows {
		if r.Bucket != Unclassified {
			classified[r.Vendor]++
		}
	}
	for _, v := range got {
		if v.Total() != classified[v.Vendor] {
			t.Fatalf("%s total=%d, classified rows=%d", v.Vendor, v.Total(), classified[v.Vendor])
		}
	}
}

func TestCountBuckets(t *testing.T) {
	t.Parallel()

	got := CountBuckets([]ClassifiedRow{{Bucket: Overdue}, {Bucket: NotDue}, {Bucket: NotDue}, {}})
	if got != (Totals{Red: 1, Green: 2, Unclassified: 1}) {
		t.Fatalf("totals=%+v", got)
	}
}

func TestWriteSummary_ReplacesSheet(t *testing.T) {
	e := excel.CreateNewFile()
	defer e.Close()

	opts := SummaryOptions{SheetName: "Summary", TableName: "Table_2", TableStyle: "TableStyleMedium9"}
	vendors := []VendorSummary{
		{Vendor: "Acme", Red: 1},
		{Vendor: "Globex", Yellow: 2, Green: 3},
	}

	if err := WriteSummary(e, []VendorSummary{{Vendor: "Stale", Red: 9}, {Vendor: "Older"}, {Vendor: "Oldest"}}, opts); err != nil {
		t.Fatalf("first WriteSummary: %v", err)
	}
	if err := WriteSummary(e, vendors, opts); err != nil {
		t.Fatalf("second WriteSummary: %v", err)
	}
	first, err := e.GetRawRows("Summary")
	if err != nil {
		t.Fatalf("GetRawRows: %v", err)
	}
	want := [][]string{
		{"Supplier", "Red Qty", "Yellow Qty", "Green Qty"},
		{"Acme", "1", "0", "0"},
		{"Globex", "0", "2", "3"},
	}
	if !reflect.DeepEqual(first, want) {
		t.Fatalf("summary rows=%v, want %v", first, want)
	}

	if err := WriteSummary(e, vendors, opts); err != nil {
		t.Fatalf("third WriteSummary: %v", err)
	}
	again, _ := e.GetRawRows("Summary")
	if !reflect.DeepEqual(first, again) {
		t.Fatalf("rerun changed summary: %v vs %v", first, again)
	}

	if fill, _ := e.GetCellFill("Summary", "D1"); fill != summaryHeaderColor {
		t.Fatalf("header fill=%q, want %s", fill, summaryHeaderColor)
	}
	if has, _ := e.HasTable("Summary"); !has {
		t.Fatalf("expected summary table")
	}
}

func TestWriteSummary_NoVendorsNoTable(t *testing.T) {
	e := excel.CreateNewFile()
	defer e.Close()

	if err := WriteSummary(e, nil, SummaryOptions{SheetName: "Summary", TableName: "Table_2", TableStyle: "TableStyleMedium9"}); err != nil {
		t.Fatalf("WriteSummary: %v", err)
	}
	if has, _ := e.HasTable("Summary"); has {
		t.Fatalf("no table expected without vendor rows")
	}
	rows, _ := e.GetRawRows("Summary")
	if len(rows) != 1 {
		t.Fatalf("expected header row only, got %v", rows)
	}
}
