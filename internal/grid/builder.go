// Package grid builds the per-group, per-child, per-date attendance reservation grid of a unit.
package grid

import (
	"sort"

	apperrors "github.com/julianstephens/attendo/internal/errors"
	"github.com/julianstephens/attendo/internal/models"
	"github.com/julianstephens/attendo/internal/period"
	"github.com/julianstephens/attendo/internal/placement"
)

type OperationalDay struct {
	Date      period.LocalDate `json:"date"`
	IsHoliday bool             `json:"is_holiday"`
}

// ChildRecordOfDay is one cell of the grid. Reservation and Attendance are nil when
// there is nothing to show, including every date the child spends in another unit.
type ChildRecordOfDay struct {
	Reservation       models.Reservation   `json:"reservation"`
	Attendance        *period.TimeInterval `json:"attendance"`
	Absence           *models.AbsenceType  `json:"absence"`
	DailyServiceTimes *period.TimeRange    `json:"daily_service_times"`
	InOtherUnit       bool                 `json:"in_other_unit"`
}

// ChildDailyRecords holds one row per reservation/attendance slot; a second row
// exists only when some date of the child has two entries.
type ChildDailyRecords struct {
	Child models.Child                            `json:"child"`
	Rows  []map[period.LocalDate]ChildRecordOfDay `json:"rows"`
}

type GroupAttendanceReservations struct {
	Group    models.Group        `json:"group"`
	Children []ChildDailyRecords `json:"children"`
}

type UnitAttendanceReservations struct {
	UnitName        string                        `json:"unit_name"`
	OperationalDays []OperationalDay              `json:"operational_days"`
	Groups          []GroupAttendanceReservations `json:"groups"`
	Ungrouped       []ChildDailyRecords           `json:"ungrouped"`
}

// Input is everything the builder joins, already scoped to one unit and window.
type Input struct {
	Unit     models.Unit
	Groups   []models.Group
	Window   period.DateRange
	Holidays []period.LocalDate
	Statuses []placement.ChildPlacementStatus
	Data     DailyData
}

// Build joins placement statuses with daily data into the unit grid.
//
// It panics with an InvariantViolation when a status refers to a child missing from
// the daily data; the upstream join guarantees coverage.
func Build(in Input) UnitAttendanceReservations {
	buckets := make(map[placement.GroupRef]map[string][]placement.ChildPlacementStatus)
	for _, s := range in.Statuses {
		if _, ok := in.Data.child(s.ChildID); !ok {
			apperrors.Invariantf("child %s has a placement status on %s but no child data", s.ChildID, s.Date)
		}
		byChild, ok := buckets[s.Group]
		if !ok {
			byChild = make(map[string][]placement.ChildPlacementStatus)
			buckets[s.Group] = byChild
		}
		byChild[s.ChildID] = append(byChild[s.ChildID], s)
	}

	result := UnitAttendanceReservations{
		UnitName:        in.Unit.Name,
		OperationalDays: operationalDays(in.Unit, in.Window, in.Holidays),
		Groups:          []GroupAttendanceReservations{},
		Ungrouped:       childRecords(buckets[placement.Ungrouped()], in.Data),
	}

	known := make(map[string]bool, len(in.Groups))
	for _, g := range in.Groups {
		known[g.ID] = true
		result.Groups = append(result.Groups, GroupAttendanceReservations{
			Group:    g,
			Children: childRecords(buckets[placement.InGroup(g.ID)], in.Data),
		})
	}

	// Groups referenced by statuses but not listed for the unit still get a bucket.
	var extra []string
	for ref := range buckets {
		if id, ok := ref.ID(); ok && !known[id] {
			extra = append(extra, id)
		}
	}
	sort.Strings(extra)
	for _, id := range extra {
		result.Groups = append(result.Groups, GroupAttendanceReservations{
			Group:    models.Group{ID: id, UnitID: in.Unit.ID, Name: id},
			Children: childRecords(buckets[placement.InGroup(id)], in.Data),
		})
	}

	return result
}

func operationalDays(unit models.Unit, window period.DateRange, holidays []period.LocalDate) []OperationalDay {
	isHoliday := make(map[period.LocalDate]bool, len(holidays))
	for _, h := range holidays {
		isHoliday[h] = true
	}
	days := []OperationalDay{}
	for d := range window.Dates() {
		if unit.OperatesOn(d, isHoliday[d]) {
			days = append(days, OperationalDay{Date: d, IsHoliday: isHoliday[d]})
		}
	}
	return days
}

func childRecords(byChild map[string][]placement.ChildPlacementStatus, data DailyData) []ChildDailyRecords {
	records := make([]ChildDailyRecords, 0, len(byChild))
	for childID, statuses := range byChild {
		child, _ := data.child(childID)
		records = append(records, ChildDailyRecords{
			Child: child,
			Rows:  rowsFor(childID, statuses, data),
		})
	}
	sort.Slice(records, func(i, j int) bool {
		a, b := records[i].Child, records[j].Child
		if a.LastName != b.LastName {
			return a.LastName < b.LastName
		}
		if a.FirstName != b.FirstName {
			return a.FirstName < b.FirstName
		}
		return a.ID < b.ID
	})
	return records
}

func rowsFor(childID string, statuses []placement.ChildPlacementStatus, data DailyData) []map[period.LocalDate]ChildRecordOfDay {
	rowCount := 1
	for _, s := range statuses {
		if s.InOtherUnit {
			continue
		}
		if len(data.reservationsOn(childID, s.Date)) > 1 || len(data.attendancesOn(childID, s.Date)) > 1 {
			rowCount = 2
			break
		}
	}

	rows := make([]map[period.LocalDate]ChildRecordOfDay, rowCount)
	for i := range rows {
		rows[i] = make(map[period.LocalDate]ChildRecordOfDay, len(statuses))
		for _, s := range statuses {
			rows[i][s.Date] = recordOfDay(childID, s, i, data)
		}
	}
	return rows
}

func recordOfDay(childID string, s placement.ChildPlacementStatus, index int, data DailyData) ChildRecordOfDay {
	record := ChildRecordOfDay{InOtherUnit: s.InOtherUnit}

	if !s.InOtherUnit {
		if reservations := data.reservationsOn(childID, s.Date); index < len(reservations) {
			record.Reservation = reservations[index]
		}
		if attendances := data.attendancesOn(childID, s.Date); index < len(attendances) {
			a := attendances[index]
			record.Attendance = &a
		}
	}
	if absence, ok := data.absenceOn(childID, s.Date); ok {
		t := absence.Type
		record.Absence = &t
	}
	if times, ok := data.serviceTimesOn(childID, s.Date); ok {
		record.DailyServiceTimes = &times
	}
	return record
}
