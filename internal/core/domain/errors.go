package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent conversion failures.
// These are distinct from infrastructure errors, which pass through unchanged.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an unknown spectral format.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrFormat indicates file content that does not follow the format.
	// Returned errors are usually *FormatError values that match it.
	ErrFormat = errors.New("format error")

	// ErrCardinality indicates a writer was handed anything other than
	// exactly one spectrum.
	ErrCardinality = errors.New("can only write a single spectrum")

	// ErrNoMatch indicates a sample ID pattern did not match the file name.
	ErrNoMatch = errors.New("sample id pattern did not match")
)

// FormatError describes the data line that could not be parsed.
type FormatError struct {
	// Line is the 1-based physical line number.
	Line int

	// Text is the trimmed line content.
	Text string

	// Reason is a short description of the failure.
	Reason string

	// Err is the underlying parse error, if any.
	Err error
}

func (e *FormatError) Error() string {
	msg := fmt.Sprintf("format error at line %d (%q): %s", e.Line, e.Text, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Is reports whether target is ErrFormat.
func (e *FormatError) Is(target error) bool {
	return target == ErrFormat
}

// Unwrap returns the underlying parse error.
func (e *FormatError) Unwrap() error {
	return e.Err
}
