package period

import (
	"slices"
	"testing"
	"time"
)

func TestLocalDate_ISOWeekday(t *testing.T) {
	tests := []struct {
		date string
		want int
	}{
		{"2024-03-04", 1}, // Monday
		{"2024-03-08", 5}, // Friday
		{"2024-03-09", 6}, // Saturday
		{"2024-03-10", 7}, // Sunday
	}

	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			got := MustParseDate(tt.date).ISOWeekday()
			if got != tt.want {
				t.Errorf("ISOWeekday(%s) = %d, want %d", tt.date, got, tt.want)
			}
		})
	}
}

func TestLocalDate_AddDaysAcrossMonth(t *testing.T) {
	got := MustParseDate("2024-02-28").AddDays(2)
	if got != Date(2024, time.March, 1) {
		t.Errorf("Expected 2024-03-01, got %s", got)
	}
}

func TestParseDate_Invalid(t *testing.T) {
	if _, err := ParseDate("2024-13-01"); err == nil {
		t.Error("Expected error for invalid month")
	}
}

func TestDateRange_Intersect(t *testing.T) {
	a := DateRange{Start: MustParseDate("2024-01-01"), End: MustParseDate("2024-01-10")}

	t.Run("overlapping", func(t *testing.T) {
		b := DateRange{Start: MustParseDate("2024-01-05"), End: MustParseDate("2024-01-20")}
		got, ok := a.Intersect(b)
		if !ok {
			t.Fatal("Expected ranges to intersect")
		}
		if got.Start != MustParseDate("2024-01-05") || got.End != MustParseDate("2024-01-10") {
			t.Errorf("Unexpected intersection %s", got)
		}
	})

	t.Run("touching on one day", func(t *testing.T) {
		b := DateRange{Start: MustParseDate("2024-01-10"), End: MustParseDate("2024-01-12")}
		got, ok := a.Intersect(b)
		if !ok || got.Days() != 1 {
			t.Errorf("Expected single-day intersection, got %v (ok=%v)", got, ok)
		}
	})

	t.Run("disjoint", func(t *testing.T) {
		b := DateRange{Start: MustParseDate("2024-01-11"), End: MustParseDate("2024-01-12")}
		if _, ok := a.Intersect(b); ok {
			t.Error("Expected no intersection")
		}
		if a.Overlaps(b) {
			t.Error("Expected Overlaps to be false")
		}
	})
}

func TestDateRange_DatesAndContains(t *testing.T) {
	r, err := NewDateRange(MustParseDate("2024-02-27"), MustParseDate("2024-03-02"))
	if err != nil {
		t.Fatalf("NewDateRange() error = %v", err)
	}

	dates := slices.Collect(r.Dates())
	if len(dates) != 5 || r.Days() != 5 {
		t.Fatalf("Expected 5 dates, got %d (Days()=%d)", len(dates), r.Days())
	}
	if dates[2] != MustParseDate("2024-02-29") {
		t.Errorf("Expected leap day at index 2, got %s", dates[2])
	}
	if !r.ContainsRange(SingleDay(MustParseDate("2024-03-01"))) {
		t.Error("Expected range to contain 2024-03-01")
	}
	if r.Contains(MustParseDate("2024-03-03")) {
		t.Error("Expected range not to contain 2024-03-03")
	}

	if _, err := NewDateRange(MustParseDate("2024-03-02"), MustParseDate("2024-03-01")); err == nil {
		t.Error("Expected error for reversed range")
	}
}

func TestTimeRange_Semantics(t *testing.T) {
	morning := MustTimeRange("08:00", "12:00")

	if !morning.Contains(MustParseTime("08:00")) {
		t.Error("Expected start to be included")
	}
	if morning.Contains(MustParseTime("12:00")) {
		t.Error("Expected end to be excluded")
	}
	if morning.Overlaps(MustTimeRange("12:00", "16:00")) {
		t.Error("Adjacent ranges must not overlap")
	}
	got, ok := morning.Intersect(MustTimeRange("11:00", "13:00"))
	if !ok || got != MustTimeRange("11:00", "12:00") {
		t.Errorf("Unexpected intersection %v (ok=%v)", got, ok)
	}
	if morning.Duration() != 4*time.Hour {
		t.Errorf("Expected 4h duration, got %v", morning.Duration())
	}
}

func TestTimeRange_EndOfDay(t *testing.T) {
	evening, err := NewTimeRange(MustParseTime("18:00"), MustParseTime("00:00"))
	if err != nil {
		t.Fatalf("Expected 00:00 end to mean end of day, got error %v", err)
	}
	if !evening.Contains(MustParseTime("23:59")) {
		t.Error("Expected 23:59 to be contained")
	}
	if _, err := NewTimeRange(MustParseTime("12:00"), MustParseTime("09:00")); err == nil {
		t.Error("Expected error for end before start")
	}
}

func TestTimeInterval_Open(t *testing.T) {
	open := TimeInterval{Start: MustParseTime("07:30")}
	if !open.IsOpen() || !open.Contains(MustParseTime("22:00")) {
		t.Error("Expected open interval to extend to end of day")
	}
	end := MustParseTime("15:00")
	closed := TimeInterval{Start: MustParseTime("07:30"), End: &end}
	if closed.Contains(end) {
		t.Error("Expected end to be excluded")
	}
	if closed.String() != "07:30-15:00" {
		t.Errorf("Unexpected string %q", closed.String())
	}
}
