package report

import (
	"errors"
	"fmt"
	"strings"
)

// Numeric codes shown to the operator for recoverable failures
const (
	CodeFileLocked   = 303
	CodeFileNotFound = 403
	CodeInvalidPath  = 405
	CodeLegacyFormat = 603
	CodeRemoteFile   = 604
)

// CodedError is a recoverable failure reported to the operator with a numeric code
type CodedError struct {
	Code    int
	Message string
	Err     error
}

func (e *CodedError) Error() string {
	return fmt.Sprintf("Error %d: %s", e.Code, e.Message)
}

func (e *CodedError) Unwrap() error {
	return e.Err
}

// ErrMissingStatusColumn is returned when the source table has no ASN status column
var ErrMissingStatusColumn = errors.New("status column not found in source table")

// MissingHeadersError lists the required header labels that were never located
type MissingHeadersError struct {
	// Fields holds the primary label of each missing header, e.g. "Vendor Name"
	Fields []string
	// Labels holds every accepted spelling per missing header, for messages
	Labels [][]string
}

func (e *MissingHeadersError) Error() string {
	parts := make([]string, 0, len(e.Labels))
	for _, alternatives := range e.Labels {
		parts = append(parts, strings.Join(alternatives, " or "))
	}
	return "missing required header(s): " + strings.Join(parts, ", ")
}
