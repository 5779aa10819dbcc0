package models

import (
	"encoding/json"

	"github.com/julianstephens/attendo/internal/period"
)

type ReservationType string

const (
	ReservationTimes   ReservationType = "TIMES"
	ReservationNoTimes ReservationType = "NO_TIMES"
)

// Reservation is either a timed reservation or a presence without times.
type Reservation interface {
	Type() ReservationType
	isReservation()
}

type TimedReservation struct {
	Range period.TimeRange
}

func (TimedReservation) Type() ReservationType { return ReservationTimes }
func (TimedReservation) isReservation()        {}

func (r TimedReservation) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type      ReservationType  `json:"type"`
		StartTime period.LocalTime `json:"start_time"`
		EndTime   period.LocalTime `json:"end_time"`
	}{r.Type(), r.Range.Start, r.Range.End})
}

type NoTimesReservation struct{}

func (NoTimesReservation) Type() ReservationType { return ReservationNoTimes }
func (NoTimesReservation) isReservation()        {}

func (r NoTimesReservation) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type ReservationType `json:"type"`
	}{r.Type()})
}

// ReservationRecord is a stored reservation row. Missing times mean a NO_TIMES reservation.
type ReservationRecord struct {
	ChildID   string            `json:"child_id"`
	Date      period.LocalDate  `json:"date"`
	StartTime *period.LocalTime `json:"start_time,omitempty"`
	EndTime   *period.LocalTime `json:"end_time,omitempty"`
}

func (r ReservationRecord) Reservation() Reservation {
	if r.StartTime == nil || r.EndTime == nil {
		return NoTimesReservation{}
	}
	return TimedReservation{Range: period.TimeRange{Start: *r.StartTime, End: *r.EndTime}}
}

// AttendanceRecord is an arrival, and departure once the child has left.
type AttendanceRecord struct {
	ChildID  string            `json:"child_id"`
	UnitID   string            `json:"unit_id"`
	Date     period.LocalDate  `json:"date"`
	Arrived  period.LocalTime  `json:"arrived"`
	Departed *period.LocalTime `json:"departed,omitempty"`
}

func (a AttendanceRecord) Interval() period.TimeInterval {
	return period.TimeInterval{Start: a.Arrived, End: a.Departed}
}

type AbsenceType string

const (
	AbsenceOther        AbsenceType = "OTHER_ABSENCE"
	AbsenceSickLeave    AbsenceType = "SICKLEAVE"
	AbsencePlanned      AbsenceType = "PLANNED_ABSENCE"
	AbsenceUnknown      AbsenceType = "UNKNOWN_ABSENCE"
	AbsenceForceMajeure AbsenceType = "FORCE_MAJEURE"
	AbsenceParentLeave  AbsenceType = "PARENTLEAVE"
	AbsenceFree         AbsenceType = "FREE_ABSENCE"
	AbsenceUnauthorized AbsenceType = "UNAUTHORIZED_ABSENCE"
)

type Absence struct {
	ChildID          string           `json:"child_id"`
	Date             period.LocalDate `json:"date"`
	Type             AbsenceType      `json:"type"`
	MarkedByEmployee bool             `json:"marked_by_employee"`
}

type DailyServiceTimesType string

const (
	ServiceTimesRegular   DailyServiceTimesType = "REGULAR"
	ServiceTimesIrregular DailyServiceTimesType = "IRREGULAR"
	ServiceTimesVariable  DailyServiceTimesType = "VARIABLE_TIME"
)

// DailyServiceTimes is the agreed daily care time of a child over a validity period.
// Regular applies to every weekday; Weekly maps ISO weekdays to times for irregular schedules.
type DailyServiceTimes struct {
	ChildID  string                    `json:"child_id"`
	Validity period.DateRange          `json:"validity"`
	Type     DailyServiceTimesType     `json:"type"`
	Regular  *period.TimeRange         `json:"regular,omitempty"`
	Weekly   map[int]*period.TimeRange `json:"weekly,omitempty"`
}

// TimesOn returns the service time in effect on date, if any.
func (d DailyServiceTimes) TimesOn(date period.LocalDate) (period.TimeRange, bool) {
	if !d.Validity.Contains(date) {
		return period.TimeRange{}, false
	}
	switch d.Type {
	case ServiceTimesRegular:
		if d.Regular != nil {
			return *d.Regular, true
		}
	case ServiceTimesIrregular:
		if r := d.Weekly[date.ISOWeekday()]; r != nil {
			return *r, true
		}
	}
	return period.TimeRange{}, false
}
