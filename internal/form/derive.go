package form

import (
	apperrors "github.com/julianstephens/attendo/internal/errors"
	"github.com/julianstephens/attendo/internal/models"
	"github.com/julianstephens/attendo/internal/period"
	"github.com/julianstephens/attendo/internal/reservability"
)

// Input is the in-memory data the deriver works on.
type Input struct {
	Repetition Repetition
	Range      period.DateRange
	// Weekdays selects ISO weekdays for DAILY; empty means every weekday.
	Weekdays       []int
	Children       []string
	Days           []models.CalendarDay
	HolidayPeriods []models.HolidayPeriod
	// Index is built from Days without weekends when nil.
	Index *reservability.Index
}

// guard is one step of a decision tree: it returns a state when it applies.
type guard func() (DayFormState, bool)

// first evaluates guards in order and returns the state of the first one that applies.
func first(guards ...guard) DayFormState {
	for _, g := range guards {
		if s, ok := g(); ok {
			return s
		}
	}
	return emptyReservation()
}

// Derive produces the initial form state. It panics with an InvariantViolation for an
// unknown repetition or when common reservations hold more than two ranges.
func Derive(in Input) State {
	if in.Index == nil {
		in.Index = reservability.New(in.Days, false)
	}
	state := State{
		Range:               in.Range,
		Children:            in.Children,
		PartiallyReservable: []string{},
	}
	for _, id := range in.Children {
		if !in.Index.IsWholeRangeReservableForChild(in.Range, id) {
			state.PartiallyReservable = append(state.PartiallyReservable, id)
		}
	}

	c := newCohort(in)
	switch in.Repetition {
	case Daily:
		state.Times = c.daily(in.Weekdays)
	case Weekly:
		state.Times = c.weekly()
	case Irregular:
		state.Times = c.irregular()
	default:
		apperrors.Invariantf("unknown repetition %q", in.Repetition)
	}
	return state
}

// cohort holds the calendar of the selected children inside the form range.
type cohort struct {
	in       Input
	byDate   map[period.LocalDate]models.CalendarDay
	children map[string]bool
}

func newCohort(in Input) cohort {
	c := cohort{
		in:       in,
		byDate:   make(map[period.LocalDate]models.CalendarDay, len(in.Days)),
		children: make(map[string]bool, len(in.Children)),
	}
	for _, id := range in.Children {
		c.children[id] = true
	}
	for _, day := range in.Days {
		if in.Range.Contains(day.Date) {
			c.byDate[day.Date] = day
		}
	}
	return c
}

// entries returns the open calendar entries of the cohort's children on the given dates.
func (c cohort) entries(dates []period.LocalDate) []models.CalendarChild {
	var out []models.CalendarChild
	for _, date := range dates {
		day, ok := c.byDate[date]
		if !ok {
			continue
		}
		for _, child := range day.Children {
			if c.children[child.ChildID] && !child.Closed {
				out = append(out, child)
			}
		}
	}
	return out
}

func (c cohort) dates(keep func(period.LocalDate) bool) []period.LocalDate {
	var out []period.LocalDate
	for date := range c.in.Range.Dates() {
		if keep(date) {
			out = append(out, date)
		}
	}
	return out
}

func (c cohort) openHolidayPeriodCovers(r period.DateRange) bool {
	for _, hp := range c.in.HolidayPeriods {
		if hp.IsOpen && hp.Period.ContainsRange(r) {
			return true
		}
	}
	return false
}

func (c cohort) daily(weekdays []int) DailyTimes {
	selected := make(map[int]bool, 7)
	for _, wd := range weekdays {
		selected[wd] = true
	}
	entries := c.entries(c.dates(func(d period.LocalDate) bool {
		return len(selected) == 0 || selected[d.ISOWeekday()]
	}))

	day := first(
		c.openHolidayGuard(c.in.Range),
		incompleteGuard(entries),
		commonRangeGuard(entries),
	)
	return DailyTimes{Weekdays: weekdays, Day: day}
}

func (c cohort) weekly() WeeklyTimes {
	var times WeeklyTimes
	for wd := 1; wd <= 7; wd++ {
		dates := c.dates(func(d period.LocalDate) bool { return d.ISOWeekday() == wd })
		entries := c.entries(dates)

		times.Days[wd-1] = first(
			func() (DayFormState, bool) {
				return ReadOnly{Reason: None}, len(dates) == 0 || !c.in.Index.IsOperationalDayForAnyChild(wd)
			},
			c.openHolidayGuard(c.in.Range),
			employeeAbsenceGuard(entries),
			absenceGuard(entries),
			incompleteGuard(entries),
			commonRangeGuard(entries),
		)
	}
	return times
}

func (c cohort) irregular() IrregularTimes {
	times := IrregularTimes{Days: []DatedState{}}
	dates := c.dates(func(d period.LocalDate) bool {
		return c.in.Index.IsOperationalDayForAnyChild(d.ISOWeekday())
	})
	for _, date := range dates {
		day, found := c.byDate[date]
		entries := c.entries([]period.LocalDate{date})

		state := first(
			c.openHolidayGuard(period.SingleDay(date)),
			func() (DayFormState, bool) { return emptyReservation(), !found },
			func() (DayFormState, bool) {
				return ReadOnly{Reason: Holiday}, day.Holiday && !c.in.Index.AnyShiftCare()
			},
			employeeAbsenceGuard(entries),
			absenceGuard(entries),
			incompleteGuard(entries),
			commonRangeGuard(entries),
		)
		times.Days = append(times.Days, DatedState{Date: date, Day: state})
	}
	return times
}

func (c cohort) openHolidayGuard(r period.DateRange) guard {
	return func() (DayFormState, bool) {
		return HolidayReservation{Choice: NotSet}, c.openHolidayPeriodCovers(r)
	}
}

// employeeAbsenceGuard makes the day read-only when every entry is an absence marked by
// staff. A mix of staff and guardian absences stays editable.
func employeeAbsenceGuard(entries []models.CalendarChild) guard {
	return func() (DayFormState, bool) {
		return ReadOnly{Reason: NotEditable}, len(entries) > 0 && all(entries, func(e models.CalendarChild) bool {
			return e.Absence != nil && e.Absence.MarkedByEmployee
		})
	}
}

func absenceGuard(entries []models.CalendarChild) guard {
	return func() (DayFormState, bool) {
		return emptyReservation(), len(entries) > 0 && all(entries, func(e models.CalendarChild) bool {
			return e.Absence != nil
		})
	}
}

func incompleteGuard(entries []models.CalendarChild) guard {
	return func() (DayFormState, bool) {
		return emptyReservation(), !all(entries, func(e models.CalendarChild) bool {
			return len(e.Reservations) > 0
		})
	}
}

func commonRangeGuard(entries []models.CalendarChild) guard {
	return func() (DayFormState, bool) {
		lists := make([][]models.Reservation, len(entries))
		for i, e := range entries {
			lists[i] = e.Reservations
		}
		ranges, ok := CommonTimeRanges(lists)
		if !ok {
			return nil, false
		}
		return reservationOf(ranges), true
	}
}

func all(entries []models.CalendarChild, pred func(models.CalendarChild) bool) bool {
	for _, e := range entries {
		if !pred(e) {
			return false
		}
	}
	return true
}
