package models

import "github.com/julianstephens/attendo/internal/period"

// CalendarDay is one date of a cohort's reservation calendar.
type CalendarDay struct {
	Date     period.LocalDate `json:"date"`
	Holiday  bool             `json:"holiday"`
	Children []CalendarChild  `json:"children"`
}

// CalendarChild is a child's entry on a calendar day. A child has an entry only on
// dates it is placed in a unit that operates on that weekday.
type CalendarChild struct {
	ChildID      string        `json:"child_id"`
	Reservations []Reservation `json:"reservations"`
	Absence      *AbsenceInfo  `json:"absence,omitempty"`
	ShiftCare    bool          `json:"shift_care"`
	// Closed marks a holiday on which the child's unit is closed. The entry is not reservable.
	Closed bool `json:"closed,omitempty"`
}

type AbsenceInfo struct {
	Type             AbsenceType `json:"type"`
	MarkedByEmployee bool        `json:"marked_by_employee"`
}

// Child returns the entry of the given child, if present.
func (d CalendarDay) Child(childID string) (CalendarChild, bool) {
	for _, c := range d.Children {
		if c.ChildID == childID {
			return c, true
		}
	}
	return CalendarChild{}, false
}
