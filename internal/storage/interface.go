package storage

import (
	"errors"

	"github.com/julianstephens/attendo/internal/models"
	"github.com/julianstephens/attendo/internal/period"
)

var ErrNotFound = errors.New("not found")

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Import replaces all stored data with the dataset.
	Import(models.Dataset) error

	// BeginRead opens one consistent snapshot. Callers must Release it.
	BeginRead() (Reader, error)

	// Utils
	GetConfigPath() string
}

// Reader reads from one consistent snapshot of the store. Range arguments select
// records whose dates overlap the range.
type Reader interface {
	GetUnit(id string) (models.Unit, error)
	GetUnits() ([]models.Unit, error)
	GetGroups(unitID string) ([]models.Group, error)

	// Interval sources of a unit. Backup cares include both children cared for in the
	// unit and children placed in the unit who are cared for elsewhere.
	GetPlacements(unitID string, r period.DateRange) ([]models.PlacementPeriod, error)
	GetGroupPlacements(unitID string, r period.DateRange) ([]models.GroupPlacementPeriod, error)
	GetBackupCares(unitID string, r period.DateRange) ([]models.BackupCarePeriod, error)

	// Per-child data
	GetChildren(ids []string) ([]models.Child, error)
	GetChildPlacements(childIDs []string, r period.DateRange) ([]models.PlacementPeriod, error)
	GetChildBackupCares(childIDs []string, r period.DateRange) ([]models.BackupCarePeriod, error)
	GetReservations(childIDs []string, r period.DateRange) ([]models.ReservationRecord, error)
	GetAttendances(childIDs []string, r period.DateRange) ([]models.AttendanceRecord, error)
	GetAbsences(childIDs []string, r period.DateRange) ([]models.Absence, error)
	GetDailyServiceTimes(childIDs []string, r period.DateRange) ([]models.DailyServiceTimes, error)

	// Calendar
	GetHolidays(r period.DateRange) ([]models.Holiday, error)
	GetHolidayPeriods() ([]models.HolidayPeriod, error)

	Release() error
}
