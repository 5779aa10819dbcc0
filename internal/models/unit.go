package models

import "github.com/julianstephens/attendo/internal/period"

// Unit is a daycare unit. OperationDays holds ISO weekdays (1 = Monday).
type Unit struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	OperationDays []int  `json:"operation_days"`
	// RoundTheClock units provide shift care and stay open on holidays.
	RoundTheClock bool `json:"round_the_clock"`
}

// OperatesOn reports whether the unit is open on the given date.
func (u Unit) OperatesOn(date period.LocalDate, holiday bool) bool {
	if holiday && !u.RoundTheClock {
		return false
	}
	return u.OperatesOnWeekday(date.ISOWeekday())
}

func (u Unit) OperatesOnWeekday(isoWeekday int) bool {
	for _, d := range u.OperationDays {
		if d == isoWeekday {
			return true
		}
	}
	return false
}

// IncludesWeekends reports whether the unit operates on Saturday or Sunday.
func (u Unit) IncludesWeekends() bool {
	return u.OperatesOnWeekday(6) || u.OperatesOnWeekday(7)
}

type Group struct {
	ID     string `json:"id"`
	UnitID string `json:"unit_id"`
	Name   string `json:"name"`
}

type Child struct {
	ID            string           `json:"id"`
	FirstName     string           `json:"first_name"`
	LastName      string           `json:"last_name"`
	PreferredName string           `json:"preferred_name,omitempty"`
	DateOfBirth   period.LocalDate `json:"date_of_birth"`
}

// DisplayName returns the preferred name when set, else the first name, followed by the last name.
func (c Child) DisplayName() string {
	first := c.FirstName
	if c.PreferredName != "" {
		first = c.PreferredName
	}
	if c.LastName == "" {
		return first
	}
	return first + " " + c.LastName
}

type Holiday struct {
	Date        period.LocalDate `json:"date"`
	Description string           `json:"description,omitempty"`
}

// HolidayPeriod is a period (e.g. summer) during which guardians confirm or deny attendance.
// An open period is one where guardians have not yet been asked to answer.
type HolidayPeriod struct {
	Period period.DateRange `json:"period"`
	IsOpen bool             `json:"is_open"`
}
