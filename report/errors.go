package report

import (
	"errors"
	"fmt"
)

// Sentinel errors for reading saved reports.
// Use errors.Is(err, ErrXxx) for typed assertions.
var (
	// ErrNotCrashReport indicates the input does not start with the report header.
	ErrNotCrashReport = errors.New("not a crash report")

	// ErrMalformedReport indicates a report line that does not match the layout.
	ErrMalformedReport = errors.New("malformed crash report")

	// ErrMalformedRecord indicates a structured record that cannot be decoded.
	ErrMalformedRecord = errors.New("malformed crash record")

	// ErrUnsupportedVersion indicates a record written by a newer format.
	ErrUnsupportedVersion = errors.New("unsupported crash record version")
)

// FormatError wraps a read failure with its classification and, for text
// reports, the 1-based line number.
type FormatError struct {
	// Kind is the sentinel error for classification.
	Kind error
	// Line is the offending line, or 0 when not applicable.
	Line int
	// Err is the underlying error.
	Err error
}

func (e *FormatError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %v: %v", e.Line, e.Kind, e.Err)
	}
	return fmt.Sprintf("%v: %v", e.Kind, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As chain traversal.
func (e *FormatError) Unwrap() error {
	return e.Err
}

// Is reports whether the error matches the target sentinel.
func (e *FormatError) Is(target error) bool {
	return errors.Is(e.Kind, target)
}
