package services

import (
	"errors"
	"fmt"
)

// Sentinel errors for the aggregation and source layers. Callers match
// with errors.Is and convert to structured payloads at the handler
// boundary, never via panic-style control flow.
var (
	ErrInvalidDateFormat = errors.New("invalid date format")
	ErrNoDataForPeriod   = errors.New("no data for period")
	ErrMissingColumn     = errors.New("missing column")
	ErrEmptySource       = errors.New("empty source")
)

// InvalidDateFormatError reports a date string that does not match the
// expected layout.
type InvalidDateFormatError struct {
	Input    string
	Expected string
}

func (e *InvalidDateFormatError) Error() string {
	return fmt.Sprintf("invalid date format %q, expected %s", e.Input, e.Expected)
}

func (e *InvalidDateFormatError) Unwrap() error { return ErrInvalidDateFormat }

// MissingColumnError reports an expected spreadsheet header that was
// not found.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("missing column %q", e.Column)
}

func (e *MissingColumnError) Unwrap() error { return ErrMissingColumn }
