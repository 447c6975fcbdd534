package services

import (
	"fmt"
	"time"
)

// Date layouts accepted by the window calculator
const (
	ReferenceLayout = "2006-01-02 15:04:05"
	DateLayout      = "2006-01-02"
	YearMonthLayout = "2006-01"
)

// DateWindow is an inclusive [Start, End] date range used to filter
// transactions.
type DateWindow struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls within the window, bounds included
func (w DateWindow) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// String renders the window boundaries for display
func (w DateWindow) String() string {
	return fmt.Sprintf("%s to %s", w.Start.Format(DateLayout), w.End.Format(DateLayout))
}

// MonthToDate builds a window from the first day of the reference
// month (time zeroed) to the reference timestamp at full precision.
// The reference must be formatted as "2006-01-02 15:04:05".
func MonthToDate(reference string) (DateWindow, error) {
	ref, err := time.Parse(ReferenceLayout, reference)
	if err != nil {
		return DateWindow{}, &InvalidDateFormatError{Input: reference, Expected: ReferenceLayout}
	}

	start := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
	return DateWindow{Start: start, End: ref}, nil
}

// Trailing builds a window covering the given number of calendar days
// up to and including the reference timestamp. Subtraction is plain
// calendar arithmetic, not clamped to month boundaries.
func Trailing(reference string, days int) (DateWindow, error) {
	ref, err := time.Parse(ReferenceLayout, reference)
	if err != nil {
		return DateWindow{}, &InvalidDateFormatError{Input: reference, Expected: ReferenceLayout}
	}

	return DateWindow{Start: ref.AddDate(0, 0, -days), End: ref}, nil
}

// TrailingFromDate is Trailing for a bare "2006-01-02" start date,
// spanning forward the given number of days. Used by category reports
// where the caller supplies a start date rather than a timestamp.
func TrailingFromDate(start string, days int) (DateWindow, error) {
	from, err := time.Parse(DateLayout, start)
	if err != nil {
		return DateWindow{}, &InvalidDateFormatError{Input: start, Expected: DateLayout}
	}

	return DateWindow{Start: from, End: from.AddDate(0, 0, days)}, nil
}

// MonthEnd returns the last calendar day of the given "2006-01" month.
// The day is found by rolling past the month boundary and stepping
// back one day, so 28/29/30/31-day months all come out right.
func MonthEnd(yearMonth string) (time.Time, error) {
	first, err := time.Parse(YearMonthLayout, yearMonth)
	if err != nil {
		return time.Time{}, &InvalidDateFormatError{Input: yearMonth, Expected: YearMonthLayout}
	}

	return first.AddDate(0, 1, 0).AddDate(0, 0, -1), nil
}

// MonthWindow builds the full-month window for the given "2006-01"
// month, ending on the last nanosecond of its final day.
func MonthWindow(yearMonth string) (DateWindow, error) {
	first, err := time.Parse(YearMonthLayout, yearMonth)
	if err != nil {
		return DateWindow{}, &InvalidDateFormatError{Input: yearMonth, Expected: YearMonthLayout}
	}

	end := first.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return DateWindow{Start: first, End: end}, nil
}
