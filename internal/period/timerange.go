package period

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/attendo/internal/constants"
)

const minutesPerDay = 24 * 60

// LocalTime is a time of day with minute precision.
type LocalTime struct {
	minutes int
}

// NewLocalTime builds a LocalTime from hour and minute, rejecting out-of-range values.
func NewLocalTime(hour, minute int) (LocalTime, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return LocalTime{}, fmt.Errorf("invalid time of day %02d:%02d", hour, minute)
	}
	return LocalTime{minutes: hour*60 + minute}, nil
}

// ParseTime parses a time string in the standard format (HH:MM).
func ParseTime(s string) (LocalTime, error) {
	t, err := time.Parse(constants.TimeFormat, strings.TrimSpace(s))
	if err != nil {
		return LocalTime{}, fmt.Errorf("invalid time %q: %w", s, err)
	}
	return LocalTime{minutes: t.Hour()*60 + t.Minute()}, nil
}

func MustParseTime(s string) LocalTime {
	t, err := ParseTime(s)
	if err != nil {
		panic(err)
	}
	return t
}

func (t LocalTime) Hour() int    { return t.minutes / 60 }
func (t LocalTime) Minute() int  { return t.minutes % 60 }
func (t LocalTime) Minutes() int { return t.minutes }

// IsMidnight reports whether t is 00:00.
func (t LocalTime) IsMidnight() bool { return t.minutes == 0 }

func (t LocalTime) Before(other LocalTime) bool { return t.minutes < other.minutes }
func (t LocalTime) After(other LocalTime) bool  { return t.minutes > other.minutes }

func (t LocalTime) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

func (t LocalTime) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *LocalTime) UnmarshalText(data []byte) error {
	parsed, err := ParseTime(string(data))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// TimeRange is a half-open time-of-day range [Start, End).
// An End of 00:00 in stored data denotes the end of the day.
type TimeRange struct {
	Start LocalTime `json:"start"`
	End   LocalTime `json:"end"`
}

// NewTimeRange returns [start, end), requiring start to precede end.
func NewTimeRange(start, end LocalTime) (TimeRange, error) {
	r := TimeRange{Start: start, End: end}
	if r.endMinutes() <= start.minutes {
		return TimeRange{}, fmt.Errorf("invalid time range %s: end must be after start", r)
	}
	return r, nil
}

// MustTimeRange parses "HH:MM" pairs and panics on error. Intended for tests and literals.
func MustTimeRange(start, end string) TimeRange {
	r, err := NewTimeRange(MustParseTime(start), MustParseTime(end))
	if err != nil {
		panic(err)
	}
	return r
}

func (r TimeRange) endMinutes() int {
	if r.End.minutes == 0 {
		return minutesPerDay
	}
	return r.End.minutes
}

func (r TimeRange) String() string {
	return fmt.Sprintf("%s-%s", r.Start, r.End)
}

// Contains reports whether t falls within [Start, End).
func (r TimeRange) Contains(t LocalTime) bool {
	return t.minutes >= r.Start.minutes && t.minutes < r.endMinutes()
}

// ContainsRange reports whether other lies entirely within r.
func (r TimeRange) ContainsRange(other TimeRange) bool {
	return other.Start.minutes >= r.Start.minutes && other.endMinutes() <= r.endMinutes()
}

func (r TimeRange) Overlaps(other TimeRange) bool {
	return r.Start.minutes < other.endMinutes() && other.Start.minutes < r.endMinutes()
}

// Intersect returns the overlap of two ranges, or false if they do not overlap.
func (r TimeRange) Intersect(other TimeRange) (TimeRange, bool) {
	if !r.Overlaps(other) {
		return TimeRange{}, false
	}
	start := r.Start
	if other.Start.After(start) {
		start = other.Start
	}
	end := r.End
	if other.endMinutes() < r.endMinutes() {
		end = other.End
	}
	return TimeRange{Start: start, End: end}, true
}

// Duration returns the length of the range.
func (r TimeRange) Duration() time.Duration {
	return time.Duration(r.endMinutes()-r.Start.minutes) * time.Minute
}

// TimeInterval is an interval whose end may still be open, such as an ongoing attendance.
type TimeInterval struct {
	Start LocalTime  `json:"start"`
	End   *LocalTime `json:"end,omitempty"`
}

// IsOpen reports whether the interval has no end yet.
func (i TimeInterval) IsOpen() bool {
	return i.End == nil
}

func (i TimeInterval) String() string {
	if i.End == nil {
		return i.Start.String() + "-"
	}
	return fmt.Sprintf("%s-%s", i.Start, i.End)
}

// Contains reports whether t falls within the interval; an open interval extends to the end of day.
func (i TimeInterval) Contains(t LocalTime) bool {
	if t.minutes < i.Start.minutes {
		return false
	}
	if i.End == nil || i.End.minutes == 0 {
		return true
	}
	return t.minutes < i.End.minutes
}
