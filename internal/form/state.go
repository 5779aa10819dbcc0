// Package form derives the initial state of the bulk reservation form and converts a
// filled form into per-child, per-date reservation requests.
package form

import (
	"encoding/json"
	"strings"

	"github.com/julianstephens/attendo/internal/period"
	"github.com/julianstephens/attendo/internal/validation"
)

type Repetition string

const (
	Daily     Repetition = "DAILY"
	Weekly    Repetition = "WEEKLY"
	Irregular Repetition = "IRREGULAR"
)

// ParseRepetition accepts the lower or upper case name of a repetition.
func ParseRepetition(s string) (Repetition, bool) {
	switch Repetition(strings.ToUpper(strings.TrimSpace(s))) {
	case Daily:
		return Daily, true
	case Weekly:
		return Weekly, true
	case Irregular:
		return Irregular, true
	}
	return "", false
}

type ReadOnlyReason string

const (
	NotEditable ReadOnlyReason = "NOT_EDITABLE"
	Holiday     ReadOnlyReason = "HOLIDAY"
	None        ReadOnlyReason = "NONE"
)

type HolidayChoice string

const (
	Present HolidayChoice = "PRESENT"
	Absent  HolidayChoice = "ABSENT"
	NotSet  HolidayChoice = "NOT_SET"
)

type TimeRangeInput = validation.TimeRangeInput

// DayFormState is the state of one editable day: ReadOnly, Reservation or HolidayReservation.
type DayFormState interface {
	isDayFormState()
}

type ReadOnly struct {
	Reason ReadOnlyReason
}

// Reservation holds one or two entered time ranges; a blank entry is an empty TimeRangeInput.
type Reservation struct {
	Ranges []TimeRangeInput
}

// HolidayReservation asks whether the children attend during an open holiday period.
type HolidayReservation struct {
	Choice HolidayChoice
}

func (ReadOnly) isDayFormState()           {}
func (Reservation) isDayFormState()        {}
func (HolidayReservation) isDayFormState() {}

func (s ReadOnly) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type   string         `json:"type"`
		Reason ReadOnlyReason `json:"reason"`
	}{"READ_ONLY", s.Reason})
}

func (s Reservation) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type   string           `json:"type"`
		Ranges []TimeRangeInput `json:"ranges"`
	}{"RESERVATION", s.Ranges})
}

func (s HolidayReservation) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type   string        `json:"type"`
		Choice HolidayChoice `json:"choice"`
	}{"HOLIDAY_RESERVATION", s.Choice})
}

func emptyReservation() Reservation {
	return Reservation{Ranges: []TimeRangeInput{{}}}
}

func reservationOf(ranges []period.TimeRange) Reservation {
	inputs := make([]TimeRangeInput, len(ranges))
	for i, r := range ranges {
		inputs[i] = validation.InputOf(r)
	}
	return Reservation{Ranges: inputs}
}

// Times is the per-repetition layout of day states: DailyTimes, WeeklyTimes or IrregularTimes.
type Times interface {
	Repetition() Repetition
	isTimes()
}

// DailyTimes applies one state to every selected weekday of the range.
type DailyTimes struct {
	Weekdays []int        `json:"weekdays"`
	Day      DayFormState `json:"day"`
}

// WeeklyTimes holds one state per ISO weekday; Days[0] is Monday.
type WeeklyTimes struct {
	Days [7]DayFormState `json:"days"`
}

// IrregularTimes holds one state per date, in date order.
type IrregularTimes struct {
	Days []DatedState `json:"days"`
}

type DatedState struct {
	Date period.LocalDate `json:"date"`
	Day  DayFormState     `json:"day"`
}

func (DailyTimes) Repetition() Repetition     { return Daily }
func (WeeklyTimes) Repetition() Repetition    { return Weekly }
func (IrregularTimes) Repetition() Repetition { return Irregular }

func (DailyTimes) isTimes()     {}
func (WeeklyTimes) isTimes()    {}
func (IrregularTimes) isTimes() {}

// Weekday returns the state of an ISO weekday.
func (w WeeklyTimes) Weekday(isoWeekday int) DayFormState {
	return w.Days[isoWeekday-1]
}

// State is the whole derived form.
type State struct {
	Range    period.DateRange `json:"range"`
	Children []string         `json:"children"`
	Times    Times            `json:"times"`
	// PartiallyReservable lists children whose calendar does not cover the whole range.
	PartiallyReservable []string `json:"partially_reservable"`
}

func (s State) MarshalJSON() ([]byte, error) {
	type plain State
	var rep Repetition
	if s.Times != nil {
		rep = s.Times.Repetition()
	}
	return json.Marshal(struct {
		Repetition Repetition `json:"repetition"`
		plain
	}{rep, plain(s)})
}
