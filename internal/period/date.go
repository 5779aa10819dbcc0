package period

import (
	"fmt"
	"time"

	"github.com/julianstephens/attendo/internal/constants"
)

// LocalDate is a calendar date without a time zone.
type LocalDate struct {
	Year  int
	Month time.Month
	Day   int
}

// NewLocalDate returns the calendar date of t in t's own location.
func NewLocalDate(t time.Time) LocalDate {
	y, m, d := t.Date()
	return LocalDate{Year: y, Month: m, Day: d}
}

// Date is a shorthand constructor, normalizing out-of-range values the way time.Date does.
func Date(year int, month time.Month, day int) LocalDate {
	return NewLocalDate(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// ParseDate parses a date string (YYYY-MM-DD).
func ParseDate(s string) (LocalDate, error) {
	t, err := time.Parse(constants.DateFormat, s)
	if err != nil {
		return LocalDate{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return NewLocalDate(t), nil
}

// MustParseDate is like ParseDate but panics on malformed input. Intended for tests and literals.
func MustParseDate(s string) LocalDate {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Time returns midnight of the date in UTC.
func (d LocalDate) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

func (d LocalDate) String() string {
	return d.Time().Format(constants.DateFormat)
}

func (d LocalDate) IsZero() bool {
	return d == LocalDate{}
}

func (d LocalDate) AddDays(n int) LocalDate {
	return NewLocalDate(d.Time().AddDate(0, 0, n))
}

func (d LocalDate) Compare(other LocalDate) int {
	return d.Time().Compare(other.Time())
}

func (d LocalDate) Before(other LocalDate) bool { return d.Compare(other) < 0 }
func (d LocalDate) After(other LocalDate) bool  { return d.Compare(other) > 0 }

// Weekday returns the Go weekday (Sunday = 0).
func (d LocalDate) Weekday() time.Weekday {
	return d.Time().Weekday()
}

// ISOWeekday returns the ISO-8601 weekday number, Monday = 1 ... Sunday = 7.
func (d LocalDate) ISOWeekday() int {
	return ISOWeekday(d.Weekday())
}

// IsWeekend reports whether the date falls on Saturday or Sunday.
func (d LocalDate) IsWeekend() bool {
	return d.ISOWeekday() >= 6
}

// ISOWeekday converts a Go weekday to its ISO-8601 number.
func ISOWeekday(wd time.Weekday) int {
	if wd == time.Sunday {
		return 7
	}
	return int(wd)
}

// MarshalText lets dates serve as JSON values and map keys. The zero date is empty.
func (d LocalDate) MarshalText() ([]byte, error) {
	if d.IsZero() {
		return []byte{}, nil
	}
	return []byte(d.String()), nil
}

func (d *LocalDate) UnmarshalText(data []byte) error {
	if len(data) == 0 {
		*d = LocalDate{}
		return nil
	}
	parsed, err := ParseDate(string(data))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
