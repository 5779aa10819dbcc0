package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/julianstephens/attendo/internal/models"
	"github.com/julianstephens/attendo/internal/period"
	"github.com/julianstephens/attendo/internal/storage"
)

// Reader runs all queries inside one transaction.
type Reader struct {
	tx *sql.Tx
	d  Dialect
}

// BeginRead opens a snapshot transaction.
func BeginRead(db *sql.DB, d Dialect) (*Reader, error) {
	tx, err := db.BeginTx(context.Background(), d.ReadTx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin read transaction: %w", err)
	}
	return &Reader{tx: tx, d: d}, nil
}

func (r *Reader) Release() error {
	return r.tx.Rollback()
}

func (r *Reader) query(query string, args ...any) (*sql.Rows, error) {
	return r.tx.Query(r.d.Rebind(query), args...)
}

// scanAll runs query and scans each row with scan.
func scanAll[T any](r *Reader, what string, scan func(*sql.Rows) (T, error), query string, args ...any) ([]T, error) {
	rows, err := r.query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", what, err)
	}
	defer rows.Close()

	out := []T{}
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", what, err)
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", what, err)
	}
	return out, nil
}

// overlapArgs returns arguments for "start_date <= ? AND end_date >= ?".
func overlapArgs(dr period.DateRange) []any {
	return []any{dr.End.String(), dr.Start.String()}
}

func scanUnit(rows *sql.Rows) (models.Unit, error) {
	var u models.Unit
	var days string
	if err := rows.Scan(&u.ID, &u.Name, &days, &u.RoundTheClock); err != nil {
		return u, err
	}
	parsed, err := decodeWeekdays(days)
	if err != nil {
		return u, err
	}
	u.OperationDays = parsed
	return u, nil
}

const unitColumns = "id, name, operation_days, round_the_clock"

func (r *Reader) GetUnit(id string) (models.Unit, error) {
	units, err := scanAll(r, "unit", scanUnit, "SELECT "+unitColumns+" FROM unit WHERE id = ?", id)
	if err != nil {
		return models.Unit{}, err
	}
	if len(units) == 0 {
		return models.Unit{}, fmt.Errorf("unit %s: %w", id, storage.ErrNotFound)
	}
	return units[0], nil
}

func (r *Reader) GetUnits() ([]models.Unit, error) {
	return scanAll(r, "units", scanUnit, "SELECT "+unitColumns+" FROM unit ORDER BY name, id")
}

func (r *Reader) GetGroups(unitID string) ([]models.Group, error) {
	return scanAll(r, "groups", func(rows *sql.Rows) (models.Group, error) {
		var g models.Group
		err := rows.Scan(&g.ID, &g.UnitID, &g.Name)
		return g, err
	}, "SELECT id, unit_id, name FROM unit_group WHERE unit_id = ? ORDER BY name, id", unitID)
}

func scanPlacement(rows *sql.Rows) (models.PlacementPeriod, error) {
	var p models.PlacementPeriod
	var start, end string
	if err := rows.Scan(&p.ChildID, &p.UnitID, &start, &end); err != nil {
		return p, err
	}
	rng, err := parseRange(start, end)
	p.Range = rng
	return p, err
}

func (r *Reader) GetPlacements(unitID string, dr period.DateRange) ([]models.PlacementPeriod, error) {
	args := append([]any{unitID}, overlapArgs(dr)...)
	return scanAll(r, "placements", scanPlacement,
		"SELECT child_id, unit_id, start_date, end_date FROM placement WHERE unit_id = ? AND start_date <= ? AND end_date >= ? ORDER BY child_id, start_date",
		args...)
}

func scanGroupPlacement(rows *sql.Rows) (models.GroupPlacementPeriod, error) {
	var gp models.GroupPlacementPeriod
	var start, end string
	if err := rows.Scan(&gp.ChildID, &gp.GroupID, &start, &end); err != nil {
		return gp, err
	}
	rng, err := parseRange(start, end)
	gp.Range = rng
	return gp, err
}

func (r *Reader) GetGroupPlacements(unitID string, dr period.DateRange) ([]models.GroupPlacementPeriod, error) {
	args := append([]any{unitID}, overlapArgs(dr)...)
	return scanAll(r, "group placements", scanGroupPlacement, `
		SELECT gp.child_id, gp.group_id, gp.start_date, gp.end_date
		FROM group_placement gp
		JOIN unit_group g ON g.id = gp.group_id
		WHERE g.unit_id = ? AND gp.start_date <= ? AND gp.end_date >= ?
		ORDER BY gp.child_id, gp.start_date`, args...)
}

func scanBackupCare(rows *sql.Rows) (models.BackupCarePeriod, error) {
	var b models.BackupCarePeriod
	var group sql.NullString
	var start, end string
	if err := rows.Scan(&b.ChildID, &b.UnitID, &group, &start, &end); err != nil {
		return b, err
	}
	if group.Valid {
		g := group.String
		b.GroupID = &g
	}
	rng, err := parseRange(start, end)
	b.Range = rng
	return b, err
}

func (r *Reader) GetBackupCares(unitID string, dr period.DateRange) ([]models.BackupCarePeriod, error) {
	args := []any{unitID, unitID}
	args = append(args, overlapArgs(dr)...)
	args = append(args, overlapArgs(dr)...)
	return scanAll(r, "backup cares", scanBackupCare, `
		SELECT child_id, unit_id, group_id, start_date, end_date
		FROM backup_care
		WHERE (unit_id = ? OR child_id IN (
			SELECT child_id FROM placement WHERE unit_id = ? AND start_date <= ? AND end_date >= ?
		))
		AND start_date <= ? AND end_date >= ?
		ORDER BY child_id, start_date`, args...)
}

func (r *Reader) GetChildren(ids []string) ([]models.Child, error) {
	if len(ids) == 0 {
		return []models.Child{}, nil
	}
	return scanAll(r, "children", func(rows *sql.Rows) (models.Child, error) {
		var c models.Child
		var dob sql.NullString
		if err := rows.Scan(&c.ID, &c.FirstName, &c.LastName, &c.PreferredName, &dob); err != nil {
			return c, err
		}
		d, err := parseNullDate(dob)
		c.DateOfBirth = d
		return c, err
	}, "SELECT id, first_name, last_name, preferred_name, date_of_birth FROM child WHERE id IN ("+placeholders(len(ids))+") ORDER BY last_name, first_name, id",
		stringArgs(ids)...)
}

// childRangeArgs returns the ids followed by the overlap arguments.
func childRangeArgs(ids []string, dr period.DateRange) []any {
	return append(stringArgs(ids), overlapArgs(dr)...)
}

// childDateArgs returns the ids followed by the range bounds for "date BETWEEN ? AND ?".
func childDateArgs(ids []string, dr period.DateRange) []any {
	return append(stringArgs(ids), dr.Start.String(), dr.End.String())
}

func (r *Reader) GetChildPlacements(childIDs []string, dr period.DateRange) ([]models.PlacementPeriod, error) {
	if len(childIDs) == 0 {
		return []models.PlacementPeriod{}, nil
	}
	return scanAll(r, "placements", scanPlacement,
		"SELECT child_id, unit_id, start_date, end_date FROM placement WHERE child_id IN ("+placeholders(len(childIDs))+") AND start_date <= ? AND end_date >= ? ORDER BY child_id, start_date",
		childRangeArgs(childIDs, dr)...)
}

func (r *Reader) GetChildBackupCares(childIDs []string, dr period.DateRange) ([]models.BackupCarePeriod, error) {
	if len(childIDs) == 0 {
		return []models.BackupCarePeriod{}, nil
	}
	return scanAll(r, "backup cares", scanBackupCare,
		"SELECT child_id, unit_id, group_id, start_date, end_date FROM backup_care WHERE child_id IN ("+placeholders(len(childIDs))+") AND start_date <= ? AND end_date >= ? ORDER BY child_id, start_date",
		childRangeArgs(childIDs, dr)...)
}

func (r *Reader) GetReservations(childIDs []string, dr period.DateRange) ([]models.ReservationRecord, error) {
	if len(childIDs) == 0 {
		return []models.ReservationRecord{}, nil
	}
	return scanAll(r, "reservations", func(rows *sql.Rows) (models.ReservationRecord, error) {
		var rr models.ReservationRecord
		var date string
		var start, end sql.NullString
		if err := rows.Scan(&rr.ChildID, &date, &start, &end); err != nil {
			return rr, err
		}
		var err error
		if rr.Date, err = period.ParseDate(date); err != nil {
			return rr, err
		}
		if rr.StartTime, err = parseNullTime(start); err != nil {
			return rr, err
		}
		rr.EndTime, err = parseNullTime(end)
		return rr, err
	}, "SELECT child_id, date, start_time, end_time FROM reservation WHERE child_id IN ("+placeholders(len(childIDs))+") AND date BETWEEN ? AND ? ORDER BY child_id, date, start_time",
		childDateArgs(childIDs, dr)...)
}

func (r *Reader) GetAttendances(childIDs []string, dr period.DateRange) ([]models.AttendanceRecord, error) {
	if len(childIDs) == 0 {
		return []models.AttendanceRecord{}, nil
	}
	return scanAll(r, "attendances", func(rows *sql.Rows) (models.AttendanceRecord, error) {
		var a models.AttendanceRecord
		var date, arrived string
		var departed sql.NullString
		if err := rows.Scan(&a.ChildID, &a.UnitID, &date, &arrived, &departed); err != nil {
			return a, err
		}
		var err error
		if a.Date, err = period.ParseDate(date); err != nil {
			return a, err
		}
		if a.Arrived, err = period.ParseTime(arrived); err != nil {
			return a, err
		}
		a.Departed, err = parseNullTime(departed)
		return a, err
	}, "SELECT child_id, unit_id, date, arrived, departed FROM attendance WHERE child_id IN ("+placeholders(len(childIDs))+") AND date BETWEEN ? AND ? ORDER BY child_id, date, arrived",
		childDateArgs(childIDs, dr)...)
}

func (r *Reader) GetAbsences(childIDs []string, dr period.DateRange) ([]models.Absence, error) {
	if len(childIDs) == 0 {
		return []models.Absence{}, nil
	}
	return scanAll(r, "absences", func(rows *sql.Rows) (models.Absence, error) {
		var a models.Absence
		var date, absenceType string
		if err := rows.Scan(&a.ChildID, &date, &absenceType, &a.MarkedByEmployee); err != nil {
			return a, err
		}
		a.Type = models.AbsenceType(absenceType)
		var err error
		a.Date, err = period.ParseDate(date)
		return a, err
	}, "SELECT child_id, date, absence_type, marked_by_employee FROM absence WHERE child_id IN ("+placeholders(len(childIDs))+") AND date BETWEEN ? AND ? ORDER BY child_id, date",
		childDateArgs(childIDs, dr)...)
}

func (r *Reader) GetDailyServiceTimes(childIDs []string, dr period.DateRange) ([]models.DailyServiceTimes, error) {
	if len(childIDs) == 0 {
		return []models.DailyServiceTimes{}, nil
	}

	type row struct {
		id    string
		times models.DailyServiceTimes
	}
	rows, err := scanAll(r, "daily service times", func(rows *sql.Rows) (row, error) {
		var out row
		var start, end, kind string
		var regStart, regEnd sql.NullString
		if err := rows.Scan(&out.id, &out.times.ChildID, &start, &end, &kind, &regStart, &regEnd); err != nil {
			return out, err
		}
		out.times.Type = models.DailyServiceTimesType(kind)
		rng, err := parseRange(start, end)
		if err != nil {
			return out, err
		}
		out.times.Validity = rng
		if regStart.Valid && regEnd.Valid {
			reg, err := parseTimeRange(regStart.String, regEnd.String)
			if err != nil {
				return out, err
			}
			out.times.Regular = &reg
		}
		return out, nil
	}, "SELECT id, child_id, start_date, end_date, type, regular_start, regular_end FROM daily_service_times WHERE child_id IN ("+placeholders(len(childIDs))+") AND start_date <= ? AND end_date >= ? ORDER BY child_id, start_date",
		childRangeArgs(childIDs, dr)...)
	if err != nil {
		return nil, err
	}

	out := make([]models.DailyServiceTimes, 0, len(rows))
	for _, rw := range rows {
		if rw.times.Type == models.ServiceTimesIrregular {
			weekly, err := r.weeklyServiceTimes(rw.id)
			if err != nil {
				return nil, err
			}
			rw.times.Weekly = weekly
		}
		out = append(out, rw.times)
	}
	return out, nil
}

func (r *Reader) weeklyServiceTimes(id string) (map[int]*period.TimeRange, error) {
	type entry struct {
		weekday int
		times   period.TimeRange
	}
	entries, err := scanAll(r, "weekly service times", func(rows *sql.Rows) (entry, error) {
		var e entry
		var start, end string
		if err := rows.Scan(&e.weekday, &start, &end); err != nil {
			return e, err
		}
		tr, err := parseTimeRange(start, end)
		e.times = tr
		return e, err
	}, "SELECT iso_weekday, start_time, end_time FROM daily_service_times_weekday WHERE service_times_id = ? ORDER BY iso_weekday", id)
	if err != nil {
		return nil, err
	}

	weekly := make(map[int]*period.TimeRange, len(entries))
	for _, e := range entries {
		times := e.times
		weekly[e.weekday] = &times
	}
	return weekly, nil
}

func (r *Reader) GetHolidays(dr period.DateRange) ([]models.Holiday, error) {
	return scanAll(r, "holidays", func(rows *sql.Rows) (models.Holiday, error) {
		var h models.Holiday
		var date string
		if err := rows.Scan(&date, &h.Description); err != nil {
			return h, err
		}
		var err error
		h.Date, err = period.ParseDate(date)
		return h, err
	}, "SELECT date, description FROM holiday WHERE date BETWEEN ? AND ? ORDER BY date", dr.Start.String(), dr.End.String())
}

func (r *Reader) GetHolidayPeriods() ([]models.HolidayPeriod, error) {
	return scanAll(r, "holiday periods", func(rows *sql.Rows) (models.HolidayPeriod, error) {
		var hp models.HolidayPeriod
		var start, end string
		if err := rows.Scan(&start, &end, &hp.IsOpen); err != nil {
			return hp, err
		}
		rng, err := parseRange(start, end)
		hp.Period = rng
		return hp, err
	}, "SELECT start_date, end_date, is_open FROM holiday_period ORDER BY start_date")
}
