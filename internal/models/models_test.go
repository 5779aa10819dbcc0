package models

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/julianstephens/attendo/internal/period"
)

func TestReservationRecord_Reservation(t *testing.T) {
	start := period.MustParseTime("08:00")
	end := period.MustParseTime("16:00")

	timed := ReservationRecord{ChildID: "c1", StartTime: &start, EndTime: &end}.Reservation()
	if timed.Type() != ReservationTimes {
		t.Errorf("Expected TIMES reservation, got %s", timed.Type())
	}
	if r, ok := timed.(TimedReservation); !ok || r.Range != period.MustTimeRange("08:00", "16:00") {
		t.Errorf("Unexpected timed reservation %#v", timed)
	}

	noTimes := ReservationRecord{ChildID: "c1"}.Reservation()
	if noTimes.Type() != ReservationNoTimes {
		t.Errorf("Expected NO_TIMES reservation, got %s", noTimes.Type())
	}
}

func TestTimedReservation_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(TimedReservation{Range: period.MustTimeRange("08:00", "16:30")})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	got := string(data)
	if !strings.Contains(got, `"type":"TIMES"`) || !strings.Contains(got, `"end_time":"16:30"`) {
		t.Errorf("Unexpected JSON %s", got)
	}
}

func TestDailyServiceTimes_TimesOn(t *testing.T) {
	validity := period.DateRange{Start: period.MustParseDate("2024-03-01"), End: period.MustParseDate("2024-03-31")}
	tuesday := period.MustTimeRange("09:00", "15:00")

	irregular := DailyServiceTimes{
		Type:     ServiceTimesIrregular,
		Validity: validity,
		Weekly:   map[int]*period.TimeRange{2: &tuesday},
	}

	if got, ok := irregular.TimesOn(period.MustParseDate("2024-03-05")); !ok || got != tuesday {
		t.Errorf("Expected Tuesday times, got %v (ok=%v)", got, ok)
	}
	if _, ok := irregular.TimesOn(period.MustParseDate("2024-03-06")); ok {
		t.Error("Expected no times on Wednesday")
	}
	if _, ok := irregular.TimesOn(period.MustParseDate("2024-04-02")); ok {
		t.Error("Expected no times outside validity")
	}

	variable := DailyServiceTimes{Type: ServiceTimesVariable, Validity: validity}
	if _, ok := variable.TimesOn(period.MustParseDate("2024-03-05")); ok {
		t.Error("Expected variable service times to have no fixed times")
	}
}

func TestUnit_OperatesOn(t *testing.T) {
	weekdayUnit := Unit{OperationDays: []int{1, 2, 3, 4, 5}}
	shiftUnit := Unit{OperationDays: []int{1, 2, 3, 4, 5, 6, 7}, RoundTheClock: true}
	saturday := period.MustParseDate("2024-03-09")
	monday := period.MustParseDate("2024-03-04")

	if weekdayUnit.OperatesOn(saturday, false) {
		t.Error("Weekday unit must not operate on Saturday")
	}
	if weekdayUnit.OperatesOn(monday, true) {
		t.Error("Weekday unit must not operate on a holiday")
	}
	if !shiftUnit.OperatesOn(monday, true) {
		t.Error("Round-the-clock unit must operate on a holiday")
	}
	if !shiftUnit.IncludesWeekends() || weekdayUnit.IncludesWeekends() {
		t.Error("Unexpected IncludesWeekends result")
	}
}
