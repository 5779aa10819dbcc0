package form

import (
	"fmt"

	"github.com/julianstephens/attendo/internal/models"
	"github.com/julianstephens/attendo/internal/period"
	"github.com/julianstephens/attendo/internal/reservability"
	"github.com/julianstephens/attendo/internal/validation"
)

type RequestKind string

const (
	KindNothing      RequestKind = "NOTHING"
	KindAbsence      RequestKind = "ABSENCE"
	KindReservations RequestKind = "RESERVATIONS"
)

// DailyReservationRequest is the write request of one child on one date.
type DailyReservationRequest struct {
	ChildID           string             `json:"child_id"`
	Date              period.LocalDate   `json:"date"`
	Kind              RequestKind        `json:"kind"`
	Reservation       models.Reservation `json:"reservation,omitempty"`
	SecondReservation models.Reservation `json:"second_reservation,omitempty"`
}

// Fill replaces every editable day with the given times and every holiday question with
// choice. Read-only days are kept. An empty times or choice leaves those days unchanged.
func Fill(s State, times []TimeRangeInput, choice HolidayChoice) State {
	fill := func(day DayFormState) DayFormState {
		switch day.(type) {
		case Reservation:
			if len(times) > 0 {
				return Reservation{Ranges: append([]TimeRangeInput(nil), times...)}
			}
		case HolidayReservation:
			if choice != "" {
				return HolidayReservation{Choice: choice}
			}
		}
		return day
	}

	switch t := s.Times.(type) {
	case DailyTimes:
		t.Day = fill(t.Day)
		s.Times = t
	case WeeklyTimes:
		for i := range t.Days {
			t.Days[i] = fill(t.Days[i])
		}
		s.Times = t
	case IrregularTimes:
		days := make([]DatedState, len(t.Days))
		for i, d := range t.Days {
			days[i] = DatedState{Date: d.Date, Day: fill(d.Day)}
		}
		s.Times = IrregularTimes{Days: days}
	}
	return s
}

// Validate checks every reservation entered in the form. It returns the first
// *validation.ValidationError found.
func Validate(s State) error {
	check := func(field string, day DayFormState) error {
		if r, ok := day.(Reservation); ok {
			if _, err := validation.ParseReservation(field, r.Ranges); err != nil {
				return err
			}
		}
		return nil
	}

	switch t := s.Times.(type) {
	case DailyTimes:
		return check("daily", t.Day)
	case WeeklyTimes:
		for i, day := range t.Days {
			if err := check(fmt.Sprintf("weekly[%d]", i+1), day); err != nil {
				return err
			}
		}
	case IrregularTimes:
		for _, d := range t.Days {
			if err := check(fmt.Sprintf("irregular[%s]", d.Date), d.Day); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("form has no times")
	}
	return nil
}

// ToRequests validates the filled form and converts it into requests for every child
// and every date the index allows writing to. Read-only days produce no request.
func ToRequests(s State, index *reservability.Index) ([]DailyReservationRequest, error) {
	if err := Validate(s); err != nil {
		return nil, err
	}

	lookup := dayLookup(s.Times)
	requests := []DailyReservationRequest{}
	for _, childID := range s.Children {
		for _, date := range index.ReservableDatesInRangeForChild(s.Range, childID) {
			day, ok := lookup(date)
			if !ok {
				continue
			}
			req, ok := requestOf(childID, date, day)
			if ok {
				requests = append(requests, req)
			}
		}
	}
	return requests, nil
}

func dayLookup(times Times) func(period.LocalDate) (DayFormState, bool) {
	switch t := times.(type) {
	case DailyTimes:
		selected := make(map[int]bool, len(t.Weekdays))
		for _, wd := range t.Weekdays {
			selected[wd] = true
		}
		return func(date period.LocalDate) (DayFormState, bool) {
			if len(selected) > 0 && !selected[date.ISOWeekday()] {
				return nil, false
			}
			return t.Day, true
		}
	case WeeklyTimes:
		return func(date period.LocalDate) (DayFormState, bool) {
			day := t.Weekday(date.ISOWeekday())
			return day, day != nil
		}
	case IrregularTimes:
		byDate := make(map[period.LocalDate]DayFormState, len(t.Days))
		for _, d := range t.Days {
			byDate[d.Date] = d.Day
		}
		return func(date period.LocalDate) (DayFormState, bool) {
			day, ok := byDate[date]
			return day, ok
		}
	}
	return func(period.LocalDate) (DayFormState, bool) { return nil, false }
}

// requestOf assumes the day has passed Validate.
func requestOf(childID string, date period.LocalDate, day DayFormState) (DailyReservationRequest, bool) {
	req := DailyReservationRequest{ChildID: childID, Date: date}
	switch d := day.(type) {
	case ReadOnly:
		return req, false
	case Reservation:
		ranges, _ := validation.ParseReservation("", d.Ranges)
		req.Kind = KindReservations
		req.Reservation = models.TimedReservation{Range: ranges[0]}
		if len(ranges) > 1 {
			req.SecondReservation = models.TimedReservation{Range: ranges[1]}
		}
	case HolidayReservation:
		switch d.Choice {
		case Present:
			req.Kind = KindReservations
			req.Reservation = models.NoTimesReservation{}
		case Absent:
			req.Kind = KindAbsence
		default:
			req.Kind = KindNothing
		}
	default:
		return req, false
	}
	return req, true
}
