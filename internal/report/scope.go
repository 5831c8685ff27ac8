package report

import (
	"fmt"
	"sort"
	"strings"
)

// ASN status values that decide whether a purchase order line is evaluated
const (
	StatusExpected          = "EXPECTED"
	StatusPartiallyReceived = "PARTIALLY RECEIVED"
	StatusFullyReceived     = "FULLY RECEIVED"
)

// Membership tells which scope set a table position belongs to
type Membership int

const (
	OutOfScope Membership = iota
	InProgress
	FullyReceived
)

func (m Membership) String() string {
	switch m {
	case InProgress:
		return "in-progress"
	case FullyReceived:
		return "fully-received"
	default:
		return "out-of-scope"
	}
}

// Scope holds the two disjoint sets of table positions
type Scope struct {
	inProgress    map[int]struct{}
	fullyReceived map[int]struct{}
}

func newScope() *Scope {
	return &Scope{
		inProgress:    make(map[int]struct{}),
		fullyReceived: make(map[int]struct{}),
	}
}

// Of returns the scope set containing pos
func (s *Scope) Of(pos int) Membership {
	if _, ok := s.inProgress[pos]; ok {
		return InProgress
	}
	if _, ok := s.fullyReceived[pos]; ok {
		return FullyReceived
	}
	return OutOfScope
}

// InProgress returns the in-progress positions in ascending order
func (s *Scope) InProgress() []int {
	return sortedKeys(s.inProgress)
}

// FullyReceived returns the fully-received positions in ascending order
func (s *Scope) FullyReceived() []int {
	return sortedKeys(s.fullyReceived)
}

func sortedKeys(set map[int]struct{}) []int {
	out := make([]int, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Ints(out)
	return out
}

// membershipForStatus matches the literal status strings exactly, without
// trimming or case folding.
func membershipForStatus(status string) Membership {
	switch status {
	case StatusPartiallyReceived, StatusExpected:
		return InProgress
	case StatusFullyReceived:
		return FullyReceived
	default:
		return OutOfScope
	}
}

// ResolveScope reads the source table and splits its rows into the
// in-progress and fully-received sets.
//
// The first row is the table header unless its first cell does not read
// "po number" (any case); then the first row is a report title and the
// second row is promoted to header. Positions are table indexes and map to
// worksheet rows through PositionForRow in both layouts.
func ResolveScope(rows [][]string, statusHeader string) (*Scope, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("source table is empty")
	}

	headerIdx := 0
	if strings.ToLower(cellAt(rows[0], 0)) != "po number" {
		headerIdx = 1
	}
	if headerIdx >= len(rows) {
		return nil, fmt.Errorf("source table has no header row")
	}

	statusCol := -1
	for i, h := range rows[headerIdx] {
		if h == statusHeader {
			statusCol = i
			break
		}
	}
	if statusCol < 0 {
		return nil, fmt.Errorf("%w: %q", ErrMissingStatusColumn, statusHeader)
	}

	scope := newScope()
	for i := headerIdx + 1; i < len(rows); i++ {
		pos := PositionForRow(i + 1)
		switch membershipForStatus(cellAt(rows[i], statusCol)) {
		case InProgress:
			scope.inProgress[pos] = struct{}{}
		case FullyReceived:
			scope.fullyReceived[pos] = struct{}{}
		}
	}
	return scope, nil
}
