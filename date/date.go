// Package date provides a day granularity date and the compact month format
// of the statements.
package date

import (
	"fmt"
	"time"
)

// DateFormat is the format used to represent dates as strings in ISO-8601 format.
const DateFormat = "2006-01-02"

const (
	monthYearFormat = "012006" // MMYYYY

	// MonthFormat is the month-first format used for payment months.
	MonthFormat = "01-2006"
)

// Date represent a date with no lower than day granularity.
type Date struct {
	y int
	m time.Month
	d int
}

// time returns a time.Time that is a canonical representation of that day (at midnight UTC).
func (d Date) time() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }

// New returns a normalized Date for the given year, month, and day.
func New(year int, month time.Month, day int) Date {
	d := Date{year, month, day}
	d.y, d.m, d.d = d.time().Date()
	return d
}

// Today returns the current day, in local time.
func Today() Date { return New(time.Now().Date()) }

// String format the date in its standard format.
func (d Date) String() string { return d.time().Format(DateFormat) }

// Format formats the date using a time layout.
func (d Date) Format(layout string) string { return d.time().Format(layout) }

// ParseMonthYear parses a MMYYYY month into the first day of that month.
func ParseMonthYear(str string) (Date, error) {
	if len(str) != len(monthYearFormat) {
		return Date{}, fmt.Errorf("invalid month %q: want 6 digits MMYYYY", str)
	}
	on, err := time.Parse(monthYearFormat, str)
	if err != nil {
		return Date{}, fmt.Errorf("invalid month %q want format MMYYYY: %w", str, err)
	}
	return New(on.Date()), nil
}
