package sqlstore

import (
	"database/sql"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/julianstephens/attendo/internal/logger"
	"github.com/julianstephens/attendo/internal/models"
)

// deleteOrder lists tables children first so that foreign keys hold while clearing.
var deleteOrder = []string{
	"daily_service_times_weekday",
	"daily_service_times",
	"absence",
	"attendance",
	"reservation",
	"backup_care",
	"group_placement",
	"placement",
	"child",
	"unit_group",
	"unit",
	"holiday",
	"holiday_period",
}

// Import replaces all data with the dataset in one transaction. Period and daily
// records get generated ids.
func Import(db *sql.DB, d Dialect, ds models.Dataset) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin import: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range deleteOrder {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	ins := &inserter{tx: tx, d: d}

	for _, u := range ds.Units {
		ins.exec("INSERT INTO unit (id, name, operation_days, round_the_clock) VALUES (?, ?, ?, ?)",
			u.ID, u.Name, encodeWeekdays(u.OperationDays), u.RoundTheClock)
	}
	for _, g := range ds.Groups {
		ins.exec("INSERT INTO unit_group (id, unit_id, name) VALUES (?, ?, ?)", g.ID, g.UnitID, g.Name)
	}
	for _, c := range ds.Children {
		ins.exec("INSERT INTO child (id, first_name, last_name, preferred_name, date_of_birth) VALUES (?, ?, ?, ?, ?)",
			c.ID, c.FirstName, c.LastName, c.PreferredName, dateValue(c.DateOfBirth))
	}
	for _, p := range ds.Placements {
		ins.exec("INSERT INTO placement (id, child_id, unit_id, start_date, end_date) VALUES (?, ?, ?, ?, ?)",
			uuid.NewString(), p.ChildID, p.UnitID, p.Range.Start.String(), p.Range.End.String())
	}
	for _, gp := range ds.GroupPlacements {
		ins.exec("INSERT INTO group_placement (id, child_id, group_id, start_date, end_date) VALUES (?, ?, ?, ?, ?)",
			uuid.NewString(), gp.ChildID, gp.GroupID, gp.Range.Start.String(), gp.Range.End.String())
	}
	for _, b := range ds.BackupCares {
		var group any
		if b.GroupID != nil {
			group = *b.GroupID
		}
		ins.exec("INSERT INTO backup_care (id, child_id, unit_id, group_id, start_date, end_date) VALUES (?, ?, ?, ?, ?, ?)",
			uuid.NewString(), b.ChildID, b.UnitID, group, b.Range.Start.String(), b.Range.End.String())
	}
	for _, r := range ds.Reservations {
		ins.exec("INSERT INTO reservation (id, child_id, date, start_time, end_time) VALUES (?, ?, ?, ?, ?)",
			uuid.NewString(), r.ChildID, r.Date.String(), timeValue(r.StartTime), timeValue(r.EndTime))
	}
	for _, a := range ds.Attendances {
		ins.exec("INSERT INTO attendance (id, child_id, unit_id, date, arrived, departed) VALUES (?, ?, ?, ?, ?, ?)",
			uuid.NewString(), a.ChildID, a.UnitID, a.Date.String(), a.Arrived.String(), timeValue(a.Departed))
	}
	for _, a := range ds.Absences {
		ins.exec("INSERT INTO absence (id, child_id, date, absence_type, marked_by_employee) VALUES (?, ?, ?, ?, ?)",
			uuid.NewString(), a.ChildID, a.Date.String(), string(a.Type), a.MarkedByEmployee)
	}
	for _, s := range ds.DailyServiceTimes {
		id := uuid.NewString()
		var regStart, regEnd any
		if s.Regular != nil {
			regStart, regEnd = s.Regular.Start.String(), s.Regular.End.String()
		}
		ins.exec("INSERT INTO daily_service_times (id, child_id, start_date, end_date, type, regular_start, regular_end) VALUES (?, ?, ?, ?, ?, ?, ?)",
			id, s.ChildID, s.Validity.Start.String(), s.Validity.End.String(), string(s.Type), regStart, regEnd)

		weekdays := make([]int, 0, len(s.Weekly))
		for wd := range s.Weekly {
			weekdays = append(weekdays, wd)
		}
		sort.Ints(weekdays)
		for _, wd := range weekdays {
			r := s.Weekly[wd]
			if r == nil {
				continue
			}
			ins.exec("INSERT INTO daily_service_times_weekday (service_times_id, iso_weekday, start_time, end_time) VALUES (?, ?, ?, ?)",
				id, wd, r.Start.String(), r.End.String())
		}
	}
	for _, h := range ds.Holidays {
		ins.exec("INSERT INTO holiday (date, description) VALUES (?, ?)", h.Date.String(), h.Description)
	}
	for _, hp := range ds.HolidayPeriods {
		ins.exec("INSERT INTO holiday_period (id, start_date, end_date, is_open) VALUES (?, ?, ?, ?)",
			uuid.NewString(), hp.Period.Start.String(), hp.Period.End.String(), hp.IsOpen)
	}

	if ins.err != nil {
		return fmt.Errorf("failed to import dataset: %w", ins.err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit import: %w", err)
	}

	logger.Info("Imported dataset", "units", len(ds.Units), "children", len(ds.Children), "reservations", len(ds.Reservations))
	return nil
}

// inserter keeps the first error so that the import reads as a flat list of inserts.
type inserter struct {
	tx  *sql.Tx
	d   Dialect
	err error
}

func (i *inserter) exec(query string, args ...any) {
	if i.err != nil {
		return
	}
	if _, err := i.tx.Exec(i.d.Rebind(query), args...); err != nil {
		i.err = err
	}
}
