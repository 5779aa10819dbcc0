package form

import (
	"slices"

	apperrors "github.com/julianstephens/attendo/internal/errors"
	"github.com/julianstephens/attendo/internal/models"
	"github.com/julianstephens/attendo/internal/period"
)

// CommonTimeRanges returns the time ranges shared identically by every child-day entry.
// Each entry is the reservation list of one child on one date. NO_TIMES reservations
// are dropped first and entries left without timed ranges do not take part. Lists are
// compared in order: the first and second reservation are distinct slots.
//
// It panics with an InvariantViolation when the shared list holds more than two ranges.
func CommonTimeRanges(entries [][]models.Reservation) ([]period.TimeRange, bool) {
	var common []period.TimeRange
	found := false

	for _, entry := range entries {
		ranges := timedRanges(entry)
		if len(ranges) == 0 {
			continue
		}
		if !found {
			common, found = ranges, true
			continue
		}
		if !slices.Equal(common, ranges) {
			return nil, false
		}
	}

	if !found {
		return nil, false
	}
	if len(common) > 2 {
		apperrors.Invariantf("common reservation has %d time ranges, at most 2 are possible", len(common))
	}
	return common, true
}

func timedRanges(reservations []models.Reservation) []period.TimeRange {
	var ranges []period.TimeRange
	for _, r := range reservations {
		if timed, ok := r.(models.TimedReservation); ok {
			ranges = append(ranges, timed.Range)
		}
	}
	return ranges
}
