package grid

import (
	"sort"

	"github.com/julianstephens/attendo/internal/models"
	"github.com/julianstephens/attendo/internal/period"
)

type childDay struct {
	childID string
	date    period.LocalDate
}

// DailyData indexes the per-child daily collections by child and date.
type DailyData struct {
	children     map[string]models.Child
	reservations map[childDay][]models.Reservation
	attendances  map[childDay][]period.TimeInterval
	absences     map[childDay]models.Absence
	serviceTimes map[string][]models.DailyServiceTimes
}

// NewDailyData indexes the given records. Reservations are ordered NO_TIMES first, then
// by start time; attendances by arrival.
func NewDailyData(
	children []models.Child,
	reservations []models.ReservationRecord,
	attendances []models.AttendanceRecord,
	absences []models.Absence,
	serviceTimes []models.DailyServiceTimes,
) DailyData {
	d := DailyData{
		children:     make(map[string]models.Child, len(children)),
		reservations: make(map[childDay][]models.Reservation),
		attendances:  make(map[childDay][]period.TimeInterval),
		absences:     make(map[childDay]models.Absence, len(absences)),
		serviceTimes: make(map[string][]models.DailyServiceTimes),
	}
	for _, c := range children {
		d.children[c.ID] = c
	}

	sortedReservations := append([]models.ReservationRecord(nil), reservations...)
	sort.SliceStable(sortedReservations, func(i, j int) bool {
		a, b := sortedReservations[i], sortedReservations[j]
		if a.StartTime == nil || b.StartTime == nil {
			return a.StartTime == nil && b.StartTime != nil
		}
		return a.StartTime.Before(*b.StartTime)
	})
	for _, r := range sortedReservations {
		k := childDay{childID: r.ChildID, date: r.Date}
		d.reservations[k] = append(d.reservations[k], r.Reservation())
	}

	sortedAttendances := append([]models.AttendanceRecord(nil), attendances...)
	sort.SliceStable(sortedAttendances, func(i, j int) bool {
		return sortedAttendances[i].Arrived.Before(sortedAttendances[j].Arrived)
	})
	for _, a := range sortedAttendances {
		k := childDay{childID: a.ChildID, date: a.Date}
		d.attendances[k] = append(d.attendances[k], a.Interval())
	}

	for _, a := range absences {
		d.absences[childDay{childID: a.ChildID, date: a.Date}] = a
	}
	for _, s := range serviceTimes {
		d.serviceTimes[s.ChildID] = append(d.serviceTimes[s.ChildID], s)
	}
	return d
}

func (d DailyData) child(id string) (models.Child, bool) {
	c, ok := d.children[id]
	return c, ok
}

func (d DailyData) reservationsOn(childID string, date period.LocalDate) []models.Reservation {
	return d.reservations[childDay{childID: childID, date: date}]
}

func (d DailyData) attendancesOn(childID string, date period.LocalDate) []period.TimeInterval {
	return d.attendances[childDay{childID: childID, date: date}]
}

func (d DailyData) absenceOn(childID string, date period.LocalDate) (models.Absence, bool) {
	a, ok := d.absences[childDay{childID: childID, date: date}]
	return a, ok
}

func (d DailyData) serviceTimesOn(childID string, date period.LocalDate) (period.TimeRange, bool) {
	for _, s := range d.serviceTimes[childID] {
		if r, ok := s.TimesOn(date); ok {
			return r, true
		}
	}
	return period.TimeRange{}, false
}
