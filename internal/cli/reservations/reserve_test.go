package reservations

import (
	"testing"

	"github.com/julianstephens/attendo/internal/form"
	"github.com/julianstephens/attendo/internal/period"
)

func TestHolidayChoice(t *testing.T) {
	tests := map[string]form.HolidayChoice{
		"present": form.Present,
		"absent":  form.Absent,
		"unset":   "",
	}
	for input, expected := range tests {
		if got := holidayChoice(input); got != expected {
			t.Errorf("holidayChoice(%q) = %q, want %q", input, got, expected)
		}
	}
}

func TestHasHolidayQuestion(t *testing.T) {
	question := form.HolidayReservation{Choice: form.NotSet}
	reservation := form.Reservation{Ranges: []form.TimeRangeInput{{}}}

	var weekly form.WeeklyTimes
	for i := range weekly.Days {
		weekly.Days[i] = form.ReadOnly{Reason: form.None}
	}

	if hasHolidayQuestion(form.DailyTimes{Day: reservation}) {
		t.Error("Expected no question in a plain daily form")
	}
	if !hasHolidayQuestion(form.DailyTimes{Day: question}) {
		t.Error("Expected question in a daily holiday form")
	}
	if hasHolidayQuestion(weekly) {
		t.Error("Expected no question in a read-only week")
	}
	weekly.Days[2] = question
	if !hasHolidayQuestion(weekly) {
		t.Error("Expected question on Wednesday")
	}

	irregular := form.IrregularTimes{Days: []form.DatedState{
		{Date: period.MustParseDate("2024-07-01"), Day: reservation},
		{Date: period.MustParseDate("2024-07-02"), Day: question},
	}}
	if !hasHolidayQuestion(irregular) {
		t.Error("Expected question in irregular form")
	}
}

func TestFormFlags_Request(t *testing.T) {
	flags := FormFlags{Child: []string{"c1"}, From: "2024-03-04", To: "2024-03-08", Mode: "weekly", Weekdays: "mon,fri"}
	req, err := flags.request()
	if err != nil {
		t.Fatalf("request() failed: %v", err)
	}
	if req.Repetition != form.Weekly || len(req.Weekdays) != 2 || req.Range.Days() != 5 {
		t.Errorf("Unexpected request %+v", req)
	}

	flags.Mode = "monthly"
	if _, err := flags.request(); err == nil {
		t.Error("Expected error for unknown mode")
	}
}
