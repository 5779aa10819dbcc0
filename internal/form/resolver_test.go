package form

import (
	"errors"
	"testing"

	apperrors "github.com/julianstephens/attendo/internal/errors"
	"github.com/julianstephens/attendo/internal/models"
	"github.com/julianstephens/attendo/internal/period"
)

func timed(start, end string) models.Reservation {
	return models.TimedReservation{Range: period.MustTimeRange(start, end)}
}

func repeat(n int, entry []models.Reservation) [][]models.Reservation {
	out := make([][]models.Reservation, n)
	for i := range out {
		out[i] = entry
	}
	return out
}

func TestCommonTimeRanges_SharedRange(t *testing.T) {
	// Two children, three dates each
	entries := repeat(6, []models.Reservation{timed("08:00", "16:00")})

	got, ok := CommonTimeRanges(entries)
	if !ok {
		t.Fatal("Expected a common range")
	}
	if len(got) != 1 || got[0] != period.MustTimeRange("08:00", "16:00") {
		t.Errorf("Expected [08:00-16:00], got %v", got)
	}
}

func TestCommonTimeRanges_OneDifferentEntry(t *testing.T) {
	entries := repeat(6, []models.Reservation{timed("08:00", "16:00")})
	entries[4] = []models.Reservation{timed("09:00", "16:00")}

	if got, ok := CommonTimeRanges(entries); ok {
		t.Errorf("Expected no common range, got %v", got)
	}
}

func TestCommonTimeRanges_OrderMatters(t *testing.T) {
	entries := [][]models.Reservation{
		{timed("08:00", "12:00"), timed("13:00", "17:00")},
		{timed("13:00", "17:00"), timed("08:00", "12:00")},
	}
	if _, ok := CommonTimeRanges(entries); ok {
		t.Error("Expected differently ordered lists to differ")
	}

	entries[1] = entries[0]
	got, ok := CommonTimeRanges(entries)
	if !ok || len(got) != 2 {
		t.Errorf("Expected two common ranges, got %v (ok=%v)", got, ok)
	}
}

func TestCommonTimeRanges_IgnoresNoTimes(t *testing.T) {
	entries := [][]models.Reservation{
		{timed("08:00", "16:00")},
		{models.NoTimesReservation{}},
		{models.NoTimesReservation{}, timed("08:00", "16:00")},
		{},
	}
	got, ok := CommonTimeRanges(entries)
	if !ok || len(got) != 1 {
		t.Errorf("Expected the timed range to be common, got %v (ok=%v)", got, ok)
	}

	if _, ok := CommonTimeRanges([][]models.Reservation{{models.NoTimesReservation{}}}); ok {
		t.Error("Expected no common range without timed reservations")
	}
	if _, ok := CommonTimeRanges(nil); ok {
		t.Error("Expected no common range for no entries")
	}
}

func TestCommonTimeRanges_ThreeRangesIsInvariantViolation(t *testing.T) {
	entries := repeat(2, []models.Reservation{
		timed("07:00", "08:00"), timed("09:00", "10:00"), timed("11:00", "12:00"),
	})

	resolve := func() (err error) {
		defer apperrors.Recover(&err)
		CommonTimeRanges(entries)
		return nil
	}
	if err := resolve(); !errors.Is(err, apperrors.ErrInvariantViolation) {
		t.Errorf("Expected invariant violation, got %v", err)
	}
}
