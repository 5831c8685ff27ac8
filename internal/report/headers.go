package report

import (
	"agedASN/internal/config"
)

type headerField int

const (
	fieldPONumber headerField = iota
	fieldVendor
	fieldDueDate
	fieldCount
)

// HeaderLabels lists the accepted spellings of each required header.
// The first entry of each list is the primary label.
type HeaderLabels struct {
	PONumber []string
	Vendor   []string
	DueDate  []string
}

// LabelsFromConfig builds the header labels from report settings
func LabelsFromConfig(cfg config.ReportConfig) HeaderLabels {
	return HeaderLabels{
		PONumber: []string{cfg.PONumberHeader},
		Vendor:   []string{cfg.VendorHeader},
		DueDate:  append([]string(nil), cfg.DueDateHeaders...),
	}
}

// WithAliases returns a copy of the labels extended by sheet header aliases.
// aliases maps a header as it appears in a sheet to one of the known labels;
// aliases pointing at unknown labels are ignored.
func (l HeaderLabels) WithAliases(aliases map[string]string) HeaderLabels {
	out := HeaderLabels{
		PONumber: append([]string(nil), l.PONumber...),
		Vendor:   append([]string(nil), l.Vendor...),
		DueDate:  append([]string(nil), l.DueDate...),
	}
	for sheetHeader, canonical := range aliases {
		field, ok := l.fieldFor(canonical)
		if !ok {
			continue
		}
		switch field {
		case fieldPONumber:
			out.PONumber = append(out.PONumber, sheetHeader)
		case fieldVendor:
			out.Vendor = append(out.Vendor, sheetHeader)
		case fieldDueDate:
			out.DueDate = append(out.DueDate, sheetHeader)
		}
	}
	return out
}

func (l HeaderLabels) fieldFor(value string) (headerField, bool) {
	for field, labels := range l.byField() {
		for _, label := range labels {
			if label != "" && value == label {
				return headerField(field), true
			}
		}
	}
	return 0, false
}

func (l HeaderLabels) byField() [fieldCount][]string {
	return [fieldCount][]string{l.PONumber, l.Vendor, l.DueDate}
}

// HeaderLayout records where the required headers sit. Rows and columns are 1-based.
type HeaderLayout struct {
	HeaderRow    int
	PONumberCol  int
	VendorCol    int
	DueDateCol   int
	DueDateLabel string
}

// LocateHeaders scans the grid top to bottom, left to right, for exact
// matches of the required labels. The first occurrence of each label wins
// and the scan stops at the row where the last missing label turns up; that
// row is the header row.
func LocateHeaders(rows [][]string, labels HeaderLabels) (*HeaderLayout, error) {
	var cols [fieldCount]int
	found := 0
	dueLabel := ""

	for r, row := range rows {
		for c, value := range row {
			field, ok := labels.fieldFor(value)
			if !ok || cols[field] != 0 {
				continue
			}
			cols[field] = c + 1
			if field == fieldDueDate {
				dueLabel = value
			}
			found++
		}
		if found == int(fieldCount) {
			return &HeaderLayout{
				HeaderRow:    r + 1,
				PONumberCol:  cols[fieldPONumber],
				VendorCol:    cols[fieldVendor],
				DueDateCol:   cols[fieldDueDate],
				DueDateLabel: dueLabel,
			}, nil
		}
	}

	missing := &MissingHeadersError{}
	for field, alternatives := range labels.byField() {
		if cols[field] != 0 {
			continue
		}
		primary := ""
		if len(alternatives) > 0 {
			primary = alternatives[0]
		}
		missing.Fields = append(missing.Fields, primary)
		missing.Labels = append(missing.Labels, alternatives)
	}
	return nil, missing
}

// CandidateHeaders returns the distinct non-empty cell values of the first
// maxRows rows, in reading order. They are offered to a HeaderResolver when
// exact labels are missing.
func CandidateHeaders(rows [][]string, maxRows int) []string {
	seen := make(map[string]bool)
	var out []string
	for r, row := range rows {
		if r >= maxRows {
			break
		}
		for _, v := range row {
			if v == "" || seen[v] {
				continue
			}
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}
