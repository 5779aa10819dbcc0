// Package attendance answers the unit and guardian queries over one storage snapshot.
package attendance

import (
	"fmt"
	"slices"
	"sort"

	apperrors "github.com/julianstephens/attendo/internal/errors"
	"github.com/julianstephens/attendo/internal/grid"
	"github.com/julianstephens/attendo/internal/logger"
	"github.com/julianstephens/attendo/internal/models"
	"github.com/julianstephens/attendo/internal/period"
	"github.com/julianstephens/attendo/internal/placement"
	"github.com/julianstephens/attendo/internal/storage"
)

type Service struct {
	store storage.Provider
}

func NewService(store storage.Provider) *Service {
	return &Service{store: store}
}

// withSnapshot runs fn against one read snapshot and converts invariant panics into errors.
func (s *Service) withSnapshot(fn func(storage.Reader) error) (err error) {
	r, err := s.store.BeginRead()
	if err != nil {
		return err
	}
	defer func() {
		if releaseErr := r.Release(); releaseErr != nil {
			logger.Warn("Failed to release snapshot", "error", releaseErr)
		}
	}()
	defer apperrors.Recover(&err)
	return fn(r)
}

// UnitAttendanceReservations builds the attendance grid of one unit.
func (s *Service) UnitAttendanceReservations(unitID string, window period.DateRange) (grid.UnitAttendanceReservations, error) {
	var out grid.UnitAttendanceReservations
	err := s.withSnapshot(func(r storage.Reader) error {
		unit, err := r.GetUnit(unitID)
		if err != nil {
			return err
		}
		groups, err := r.GetGroups(unitID)
		if err != nil {
			return err
		}

		var src placement.Sources
		if src.Placements, err = r.GetPlacements(unitID, window); err != nil {
			return err
		}
		if src.GroupPlacements, err = r.GetGroupPlacements(unitID, window); err != nil {
			return err
		}
		if src.BackupCares, err = r.GetBackupCares(unitID, window); err != nil {
			return err
		}
		statuses := placement.Overlay(unitID, window, src)

		childIDs := childIDsOf(statuses)
		logger.Debug("Building attendance grid", "unit", unitID, "range", window.String(), "children", len(childIDs))

		data, err := loadDailyData(r, childIDs, window)
		if err != nil {
			return err
		}
		holidays, err := r.GetHolidays(window)
		if err != nil {
			return err
		}

		out = grid.Build(grid.Input{
			Unit:     unit,
			Groups:   groups,
			Window:   window,
			Holidays: holidayDates(holidays),
			Statuses: statuses,
			Data:     data,
		})
		return nil
	})
	return out, err
}

func childIDsOf(statuses []placement.ChildPlacementStatus) []string {
	seen := make(map[string]bool)
	ids := []string{}
	for _, st := range statuses {
		if !seen[st.ChildID] {
			seen[st.ChildID] = true
			ids = append(ids, st.ChildID)
		}
	}
	sort.Strings(ids)
	return ids
}

func loadDailyData(r storage.Reader, childIDs []string, window period.DateRange) (grid.DailyData, error) {
	children, err := r.GetChildren(childIDs)
	if err != nil {
		return grid.DailyData{}, err
	}
	reservations, err := r.GetReservations(childIDs, window)
	if err != nil {
		return grid.DailyData{}, err
	}
	attendances, err := r.GetAttendances(childIDs, window)
	if err != nil {
		return grid.DailyData{}, err
	}
	absences, err := r.GetAbsences(childIDs, window)
	if err != nil {
		return grid.DailyData{}, err
	}
	serviceTimes, err := r.GetDailyServiceTimes(childIDs, window)
	if err != nil {
		return grid.DailyData{}, err
	}
	return grid.NewDailyData(children, reservations, attendances, absences, serviceTimes), nil
}

func holidayDates(holidays []models.Holiday) []period.LocalDate {
	dates := make([]period.LocalDate, len(holidays))
	for i, h := range holidays {
		dates[i] = h.Date
	}
	return dates
}

// Calendar is the operational calendar of a cohort of children.
type Calendar struct {
	Days []models.CalendarDay
	// IncludesWeekends is set when any unit the cohort attends operates on weekends.
	IncludesWeekends bool
}

// CalendarDays lists, per date of window, the children placed in a unit operating on that
// weekday. A child attends the unit of its backup care when there is one, otherwise the
// unit of its placement. On a holiday the entries of children whose unit is closed are
// marked Closed. Dates without any child are left out.
func (s *Service) CalendarDays(childIDs []string, window period.DateRange) (Calendar, error) {
	var out Calendar
	err := s.withSnapshot(func(r storage.Reader) error {
		var err error
		out, err = calendar(r, childIDs, window)
		return err
	})
	return out, err
}

func calendar(r storage.Reader, childIDs []string, window period.DateRange) (Calendar, error) {
	placements, err := r.GetChildPlacements(childIDs, window)
	if err != nil {
		return Calendar{}, err
	}
	backupCares, err := r.GetChildBackupCares(childIDs, window)
	if err != nil {
		return Calendar{}, err
	}
	units, err := unitsOf(r, placements, backupCares)
	if err != nil {
		return Calendar{}, err
	}
	reservations, err := r.GetReservations(childIDs, window)
	if err != nil {
		return Calendar{}, err
	}
	absences, err := r.GetAbsences(childIDs, window)
	if err != nil {
		return Calendar{}, err
	}
	holidays, err := r.GetHolidays(window)
	if err != nil {
		return Calendar{}, err
	}

	type key struct {
		childID string
		date    period.LocalDate
	}
	reservationsOf := make(map[key][]models.ReservationRecord)
	for _, rr := range reservations {
		k := key{rr.ChildID, rr.Date}
		reservationsOf[k] = append(reservationsOf[k], rr)
	}
	absenceOf := make(map[key]models.Absence)
	for _, a := range absences {
		absenceOf[key{a.ChildID, a.Date}] = a
	}
	isHoliday := make(map[period.LocalDate]bool)
	for _, h := range holidays {
		isHoliday[h.Date] = true
	}

	unitOn := func(childID string, date period.LocalDate) (models.Unit, bool) {
		for _, b := range backupCares {
			if b.ChildID == childID && b.Range.Contains(date) {
				u, ok := units[b.UnitID]
				return u, ok
			}
		}
		for _, p := range placements {
			if p.ChildID == childID && p.Range.Contains(date) {
				u, ok := units[p.UnitID]
				return u, ok
			}
		}
		return models.Unit{}, false
	}

	cohort := append([]string(nil), childIDs...)
	sort.Strings(cohort)
	cohort = slices.Compact(cohort)

	out := Calendar{Days: []models.CalendarDay{}}
	for _, u := range units {
		if u.IncludesWeekends() {
			out.IncludesWeekends = true
		}
	}
	for date := range window.Dates() {
		day := models.CalendarDay{Date: date, Holiday: isHoliday[date], Children: []models.CalendarChild{}}
		for _, childID := range cohort {
			unit, ok := unitOn(childID, date)
			if !ok || !unit.OperatesOnWeekday(date.ISOWeekday()) {
				continue
			}
			entry := models.CalendarChild{
				ChildID:      childID,
				Reservations: orderedReservations(reservationsOf[key{childID, date}]),
				ShiftCare:    unit.RoundTheClock,
				Closed:       !unit.OperatesOn(date, day.Holiday),
			}
			if a, ok := absenceOf[key{childID, date}]; ok {
				entry.Absence = &models.AbsenceInfo{Type: a.Type, MarkedByEmployee: a.MarkedByEmployee}
			}
			day.Children = append(day.Children, entry)
		}
		if len(day.Children) > 0 {
			out.Days = append(out.Days, day)
		}
	}
	return out, nil
}

func unitsOf(r storage.Reader, placements []models.PlacementPeriod, backupCares []models.BackupCarePeriod) (map[string]models.Unit, error) {
	units := make(map[string]models.Unit)
	load := func(id string) error {
		if _, ok := units[id]; ok {
			return nil
		}
		u, err := r.GetUnit(id)
		if err != nil {
			return fmt.Errorf("failed to load unit of placement: %w", err)
		}
		units[id] = u
		return nil
	}
	for _, p := range placements {
		if err := load(p.UnitID); err != nil {
			return nil, err
		}
	}
	for _, b := range backupCares {
		if err := load(b.UnitID); err != nil {
			return nil, err
		}
	}
	return units, nil
}

// orderedReservations puts reservations without times first, then timed ones by start.
func orderedReservations(records []models.ReservationRecord) []models.Reservation {
	sorted := append([]models.ReservationRecord(nil), records...)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.StartTime == nil || b.StartTime == nil {
			return a.StartTime == nil && b.StartTime != nil
		}
		return a.StartTime.Before(*b.StartTime)
	})
	out := make([]models.Reservation, len(sorted))
	for i, rr := range sorted {
		out[i] = rr.Reservation()
	}
	return out
}
