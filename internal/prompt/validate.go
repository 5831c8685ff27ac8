package prompt

import (
	"agedASN/internal/report"
	"errors"
	"strings"
)

const (
	helpSentinel = "1"
	exitSentinel = "0"

	minPathLength = 15
)

// ErrExit is returned when the operator asks to close the program
var ErrExit = errors.New("exit requested")

// ValidatePath strips surrounding quotes left by "Copy as path" and checks
// the path against the rules the report runner supports.
func ValidatePath(input string) (string, error) {
	path := input
	if strings.HasPrefix(path, `"`) {
		path = strings.TrimSuffix(strings.TrimPrefix(path, `"`), `"`)
	}

	switch {
	case path == exitSentinel:
		return "", ErrExit
	case len(path) < minPathLength:
		return "", &report.CodedError{Code: report.CodeInvalidPath, Message: "Invalid file path."}
	case strings.HasSuffix(path, "xls"):
		return "", &report.CodedError{
			Code:    report.CodeLegacyFormat,
			Message: "This program does not support the old .xls file format. Please convert it to the more recent .xlsx file format.",
		}
	case strings.HasPrefix(path, "https"):
		return "", &report.CodedError{
			Code:    report.CodeRemoteFile,
			Message: "This program cannot access files stored online. Please download the file to your computer.",
		}
	}
	return path, nil
}
