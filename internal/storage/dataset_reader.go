package storage

import (
	"fmt"
	"slices"

	"github.com/julianstephens/attendo/internal/models"
	"github.com/julianstephens/attendo/internal/period"
)

// DatasetReader answers Reader queries from an in-memory dataset.
type DatasetReader struct {
	ds models.Dataset
}

func NewDatasetReader(ds models.Dataset) *DatasetReader {
	return &DatasetReader{ds: ds}
}

func filter[T any](items []T, keep func(T) bool) []T {
	out := []T{}
	for _, item := range items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}

func (r *DatasetReader) GetUnit(id string) (models.Unit, error) {
	for _, u := range r.ds.Units {
		if u.ID == id {
			return u, nil
		}
	}
	return models.Unit{}, fmt.Errorf("unit %s: %w", id, ErrNotFound)
}

func (r *DatasetReader) GetUnits() ([]models.Unit, error) {
	return filter(r.ds.Units, func(models.Unit) bool { return true }), nil
}

func (r *DatasetReader) GetGroups(unitID string) ([]models.Group, error) {
	return filter(r.ds.Groups, func(g models.Group) bool { return g.UnitID == unitID }), nil
}

func (r *DatasetReader) groupUnit(groupID string) (string, bool) {
	for _, g := range r.ds.Groups {
		if g.ID == groupID {
			return g.UnitID, true
		}
	}
	return "", false
}

func (r *DatasetReader) GetPlacements(unitID string, dr period.DateRange) ([]models.PlacementPeriod, error) {
	return filter(r.ds.Placements, func(p models.PlacementPeriod) bool {
		return p.UnitID == unitID && p.Range.Overlaps(dr)
	}), nil
}

func (r *DatasetReader) GetGroupPlacements(unitID string, dr period.DateRange) ([]models.GroupPlacementPeriod, error) {
	return filter(r.ds.GroupPlacements, func(gp models.GroupPlacementPeriod) bool {
		u, ok := r.groupUnit(gp.GroupID)
		return ok && u == unitID && gp.Range.Overlaps(dr)
	}), nil
}

func (r *DatasetReader) GetBackupCares(unitID string, dr period.DateRange) ([]models.BackupCarePeriod, error) {
	placed := make(map[string]bool)
	for _, p := range r.ds.Placements {
		if p.UnitID == unitID && p.Range.Overlaps(dr) {
			placed[p.ChildID] = true
		}
	}
	return filter(r.ds.BackupCares, func(b models.BackupCarePeriod) bool {
		return (b.UnitID == unitID || placed[b.ChildID]) && b.Range.Overlaps(dr)
	}), nil
}

func (r *DatasetReader) GetChildren(ids []string) ([]models.Child, error) {
	return filter(r.ds.Children, func(c models.Child) bool { return slices.Contains(ids, c.ID) }), nil
}

func (r *DatasetReader) GetChildPlacements(childIDs []string, dr period.DateRange) ([]models.PlacementPeriod, error) {
	return filter(r.ds.Placements, func(p models.PlacementPeriod) bool {
		return slices.Contains(childIDs, p.ChildID) && p.Range.Overlaps(dr)
	}), nil
}

func (r *DatasetReader) GetChildBackupCares(childIDs []string, dr period.DateRange) ([]models.BackupCarePeriod, error) {
	return filter(r.ds.BackupCares, func(b models.BackupCarePeriod) bool {
		return slices.Contains(childIDs, b.ChildID) && b.Range.Overlaps(dr)
	}), nil
}

func (r *DatasetReader) GetReservations(childIDs []string, dr period.DateRange) ([]models.ReservationRecord, error) {
	return filter(r.ds.Reservations, func(rr models.ReservationRecord) bool {
		return slices.Contains(childIDs, rr.ChildID) && dr.Contains(rr.Date)
	}), nil
}

func (r *DatasetReader) GetAttendances(childIDs []string, dr period.DateRange) ([]models.AttendanceRecord, error) {
	return filter(r.ds.Attendances, func(a models.AttendanceRecord) bool {
		return slices.Contains(childIDs, a.ChildID) && dr.Contains(a.Date)
	}), nil
}

func (r *DatasetReader) GetAbsences(childIDs []string, dr period.DateRange) ([]models.Absence, error) {
	return filter(r.ds.Absences, func(a models.Absence) bool {
		return slices.Contains(childIDs, a.ChildID) && dr.Contains(a.Date)
	}), nil
}

func (r *DatasetReader) GetDailyServiceTimes(childIDs []string, dr period.DateRange) ([]models.DailyServiceTimes, error) {
	return filter(r.ds.DailyServiceTimes, func(s models.DailyServiceTimes) bool {
		return slices.Contains(childIDs, s.ChildID) && s.Validity.Overlaps(dr)
	}), nil
}

func (r *DatasetReader) GetHolidays(dr period.DateRange) ([]models.Holiday, error) {
	return filter(r.ds.Holidays, func(h models.Holiday) bool { return dr.Contains(h.Date) }), nil
}

func (r *DatasetReader) GetHolidayPeriods() ([]models.HolidayPeriod, error) {
	return filter(r.ds.HolidayPeriods, func(models.HolidayPeriod) bool { return true }), nil
}

func (r *DatasetReader) Release() error {
	return nil
}
