package form

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/julianstephens/attendo/internal/models"
	"github.com/julianstephens/attendo/internal/period"
	"github.com/julianstephens/attendo/internal/reservability"
	"github.com/julianstephens/attendo/internal/validation"
)

func TestToRequests_MidnightEndRejectedInEveryMode(t *testing.T) {
	days := weekOf()
	idx := reservability.New(days, false)
	midnight := []TimeRangeInput{{Start: "18:00", End: "00:00"}}

	for _, rep := range []Repetition{Daily, Weekly, Irregular} {
		t.Run(string(rep), func(t *testing.T) {
			state := Derive(Input{Repetition: rep, Range: dr("2024-03-04", "2024-03-08"), Children: []string{"c1", "c2"}, Days: days, Index: idx})
			filled := Fill(state, midnight, "")

			requests, err := ToRequests(filled, idx)
			if !errors.Is(err, validation.ErrMidnightEnd) {
				t.Fatalf("Expected ErrMidnightEnd, got %v", err)
			}
			if requests != nil {
				t.Errorf("Expected no requests, got %d", len(requests))
			}
		})
	}
}

func TestToRequests_BlankReservationIsRequired(t *testing.T) {
	days := weekOf()
	days[0].Children[1] = reserved("c2")
	idx := reservability.New(days, false)

	state := Derive(Input{Repetition: Daily, Range: dr("2024-03-04", "2024-03-08"), Children: []string{"c1", "c2"}, Days: days, Index: idx})
	_, err := ToRequests(state, idx)
	if !errors.Is(err, validation.ErrRequired) {
		t.Errorf("Expected ErrRequired, got %v", err)
	}
}

func TestToRequests_Daily(t *testing.T) {
	days := weekOf()
	days[4].Children = days[4].Children[:1]
	idx := reservability.New(days, false)

	state := Derive(Input{Repetition: Daily, Range: dr("2024-03-04", "2024-03-10"), Weekdays: []int{1, 2, 3, 4, 5}, Children: []string{"c1", "c2"}, Days: days, Index: idx})
	filled := Fill(state, []TimeRangeInput{{Start: "08:00", End: "12:00"}, {Start: "13:00", End: "17:00"}}, "")

	requests, err := ToRequests(filled, idx)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	// c1 on five dates, c2 on four (not placed on Friday)
	if len(requests) != 9 {
		t.Fatalf("Expected 9 requests, got %d", len(requests))
	}
	for _, req := range requests {
		if req.ChildID == "c2" && req.Date == d("2024-03-08") {
			t.Error("Expected no request outside the child's reservable dates")
		}
		if req.Kind != KindReservations {
			t.Errorf("Expected RESERVATIONS, got %s", req.Kind)
		}
		second, ok := req.SecondReservation.(models.TimedReservation)
		if !ok || second.Range != period.MustTimeRange("13:00", "17:00") {
			t.Errorf("Expected second reservation 13:00-17:00, got %#v", req.SecondReservation)
		}
	}
}

func TestToRequests_WeeklySkipsReadOnly(t *testing.T) {
	days := weekOf()
	days[1].Children = []models.CalendarChild{absent("c1", true), absent("c2", true)}
	idx := reservability.New(days, false)

	state := Derive(Input{Repetition: Weekly, Range: dr("2024-03-04", "2024-03-08"), Children: []string{"c1", "c2"}, Days: days, Index: idx})
	requests, err := ToRequests(state, idx)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(requests) != 8 {
		t.Fatalf("Expected 8 requests, got %d", len(requests))
	}
	for _, req := range requests {
		if req.Date == d("2024-03-05") {
			t.Errorf("Expected no request on read-only Tuesday, got %+v", req)
		}
	}
}

func TestToRequests_HolidayChoices(t *testing.T) {
	days := weekOf()
	idx := reservability.New(days, false)
	periods := []models.HolidayPeriod{{Period: dr("2024-03-01", "2024-03-31"), IsOpen: true}}

	tests := []struct {
		choice   HolidayChoice
		kind     RequestKind
		noTimes  bool
		hasValue bool
	}{
		{Present, KindReservations, true, true},
		{Absent, KindAbsence, false, false},
		{NotSet, KindNothing, false, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.choice), func(t *testing.T) {
			state := Derive(Input{Repetition: Irregular, Range: dr("2024-03-04", "2024-03-05"), Children: []string{"c1"}, Days: days, HolidayPeriods: periods, Index: idx})
			requests, err := ToRequests(Fill(state, nil, tt.choice), idx)
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if len(requests) != 2 {
				t.Fatalf("Expected 2 requests, got %d", len(requests))
			}
			req := requests[0]
			if req.Kind != tt.kind {
				t.Errorf("Expected %s, got %s", tt.kind, req.Kind)
			}
			if (req.Reservation != nil) != tt.hasValue {
				t.Errorf("Unexpected reservation %#v", req.Reservation)
			}
			if _, ok := req.Reservation.(models.NoTimesReservation); ok != tt.noTimes {
				t.Errorf("Expected NO_TIMES=%v, got %#v", tt.noTimes, req.Reservation)
			}
		})
	}
}

func TestFill_KeepsReadOnly(t *testing.T) {
	state := State{Times: WeeklyTimes{Days: [7]DayFormState{
		ReadOnly{Reason: NotEditable}, emptyReservation(), HolidayReservation{Choice: NotSet},
		ReadOnly{Reason: None}, ReadOnly{Reason: None}, ReadOnly{Reason: None}, ReadOnly{Reason: None},
	}}}

	filled := Fill(state, []TimeRangeInput{{Start: "08:00", End: "16:00"}}, Absent).Times.(WeeklyTimes)
	if filled.Weekday(1) != (ReadOnly{Reason: NotEditable}) {
		t.Errorf("Expected read-only Monday kept, got %#v", filled.Weekday(1))
	}
	assertReservation(t, filled.Weekday(2), TimeRangeInput{Start: "08:00", End: "16:00"})
	if filled.Weekday(3) != (HolidayReservation{Choice: Absent}) {
		t.Errorf("Expected holiday choice set, got %#v", filled.Weekday(3))
	}
	// The original state is not modified.
	assertReservation(t, state.Times.(WeeklyTimes).Weekday(2), blank)
}

func TestState_JSON(t *testing.T) {
	state := State{
		Range:               dr("2024-03-04", "2024-03-08"),
		Children:            []string{"c1"},
		Times:               DailyTimes{Weekdays: []int{1}, Day: HolidayReservation{Choice: NotSet}},
		PartiallyReservable: []string{},
	}
	data, err := json.Marshal(state)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	out := string(data)
	for _, want := range []string{`"repetition":"DAILY"`, `"type":"HOLIDAY_RESERVATION"`, `"choice":"NOT_SET"`, `"start":"2024-03-04"`} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %s in %s", want, out)
		}
	}
}
