// Package reservability precomputes which dates a cohort's children may be reserved on.
package reservability

import (
	"github.com/julianstephens/attendo/internal/models"
	"github.com/julianstephens/attendo/internal/period"
)

// Index is built once per cohort query and is read-only afterwards.
type Index struct {
	weekdays         map[int]bool
	reservable       map[string]map[period.LocalDate]bool
	includesWeekends bool
	shiftCare        bool
}

// New scans the calendar days once.
func New(days []models.CalendarDay, includesWeekends bool) *Index {
	idx := &Index{
		weekdays:         make(map[int]bool, 7),
		reservable:       make(map[string]map[period.LocalDate]bool),
		includesWeekends: includesWeekends,
	}
	for _, day := range days {
		idx.weekdays[day.Date.ISOWeekday()] = true
		for _, c := range day.Children {
			if c.Closed {
				continue
			}
			dates, ok := idx.reservable[c.ChildID]
			if !ok {
				dates = make(map[period.LocalDate]bool)
				idx.reservable[c.ChildID] = dates
			}
			dates[day.Date] = true
			if c.ShiftCare {
				idx.shiftCare = true
			}
		}
	}
	return idx
}

// IsOperationalDayForAnyChild reports whether any calendar day of the cohort falls on the ISO weekday.
func (i *Index) IsOperationalDayForAnyChild(isoWeekday int) bool {
	return i.weekdays[isoWeekday]
}

// IsWholeRangeReservableForChild reports whether every date in r is reservable for the
// child, skipping weekend dates when the cohort calendar excludes weekends.
func (i *Index) IsWholeRangeReservableForChild(r period.DateRange, childID string) bool {
	dates := i.reservable[childID]
	for date := range r.Dates() {
		if i.skipped(date) {
			continue
		}
		if !dates[date] {
			return false
		}
	}
	return true
}

// ReservableDatesInRangeForChild lists the dates in r a write for the child may touch.
func (i *Index) ReservableDatesInRangeForChild(r period.DateRange, childID string) []period.LocalDate {
	dates := i.reservable[childID]
	out := []period.LocalDate{}
	for date := range r.Dates() {
		if !i.skipped(date) && dates[date] {
			out = append(out, date)
		}
	}
	return out
}

// AnyShiftCare reports whether any child of the cohort is in shift care.
func (i *Index) AnyShiftCare() bool {
	return i.shiftCare
}

func (i *Index) IncludesWeekends() bool {
	return i.includesWeekends
}

func (i *Index) skipped(date period.LocalDate) bool {
	return !i.includesWeekends && date.IsWeekend()
}
