package period

import (
	"fmt"
	"iter"
)

// DateRange is a closed range of dates: both Start and End are included.
type DateRange struct {
	Start LocalDate `json:"start"`
	End   LocalDate `json:"end"`
}

// NewDateRange returns the range [start, end], rejecting an end before the start.
func NewDateRange(start, end LocalDate) (DateRange, error) {
	if end.Before(start) {
		return DateRange{}, fmt.Errorf("invalid date range: end %s is before start %s", end, start)
	}
	return DateRange{Start: start, End: end}, nil
}

// SingleDay returns the range covering only d.
func SingleDay(d LocalDate) DateRange {
	return DateRange{Start: d, End: d}
}

func (r DateRange) String() string {
	return fmt.Sprintf("%s - %s", r.Start, r.End)
}

func (r DateRange) Contains(d LocalDate) bool {
	return !d.Before(r.Start) && !d.After(r.End)
}

// ContainsRange reports whether other lies entirely within r.
func (r DateRange) ContainsRange(other DateRange) bool {
	return r.Contains(other.Start) && r.Contains(other.End)
}

func (r DateRange) Overlaps(other DateRange) bool {
	return !r.Start.After(other.End) && !other.Start.After(r.End)
}

// Intersect returns the overlap of the two ranges, or false if they are disjoint.
func (r DateRange) Intersect(other DateRange) (DateRange, bool) {
	start := r.Start
	if other.Start.After(start) {
		start = other.Start
	}
	end := r.End
	if other.End.Before(end) {
		end = other.End
	}
	if start.After(end) {
		return DateRange{}, false
	}
	return DateRange{Start: start, End: end}, true
}

// Days returns the number of dates in the range.
func (r DateRange) Days() int {
	if r.End.Before(r.Start) {
		return 0
	}
	return int(r.End.Time().Sub(r.Start.Time()).Hours()/24) + 1
}

// Dates iterates the range in ascending order.
func (r DateRange) Dates() iter.Seq[LocalDate] {
	return func(yield func(LocalDate) bool) {
		for d := r.Start; !d.After(r.End); d = d.AddDays(1) {
			if !yield(d) {
				return
			}
		}
	}
}
