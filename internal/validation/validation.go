package validation

import (
	"fmt"
	"sort"

	"github.com/julianstephens/attendo/internal/constants"
	"github.com/julianstephens/attendo/internal/models"
	"github.com/julianstephens/attendo/internal/period"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictMissingReference      ConflictType = "missing_reference"
	ConflictOverlappingPeriods    ConflictType = "overlapping_periods"
	ConflictTooManyEntries        ConflictType = "too_many_entries"
	ConflictOverlappingTimes      ConflictType = "overlapping_times"
	ConflictInvalidTimeRange      ConflictType = "invalid_time_range"
	ConflictDuplicateAbsence      ConflictType = "duplicate_absence"
	ConflictGroupOutsidePlacement ConflictType = "group_outside_placement"
)

// Conflict represents a detected conflict in a dataset
type Conflict struct {
	Type        ConflictType
	Description string
	Date        string   // YYYY-MM-DD format (if applicable)
	ChildID     string   // Child involved (if applicable)
	Items       []string // Ids of the records involved
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	report := "Conflicts detected:\n"
	for _, conflict := range vr.Conflicts {
		report += fmt.Sprintf("- %s\n", conflict.Description)
	}
	return report
}

func (vr *ValidationResult) add(c Conflict) {
	vr.Conflicts = append(vr.Conflicts, c)
}

// Validator checks imported datasets against the invariants the aggregation relies on
type Validator struct{}

// New creates a new Validator
func New() *Validator {
	return &Validator{}
}

// ValidateDataset checks references, period overlaps within each interval source and
// per-day multiplicity of daily records.
func (v *Validator) ValidateDataset(ds models.Dataset) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	units := make(map[string]bool, len(ds.Units))
	for _, u := range ds.Units {
		units[u.ID] = true
	}
	groups := make(map[string]models.Group, len(ds.Groups))
	for _, g := range ds.Groups {
		groups[g.ID] = g
		if !units[g.UnitID] {
			result.add(missing("Group", g.ID, "unit", g.UnitID))
		}
	}
	children := make(map[string]bool, len(ds.Children))
	for _, c := range ds.Children {
		children[c.ID] = true
	}

	// Plain placements
	placements := make(map[string][]period.DateRange)
	for _, p := range ds.Placements {
		if !children[p.ChildID] {
			result.add(missing("Placement", p.Range.String(), "child", p.ChildID))
		}
		if !units[p.UnitID] {
			result.add(missing("Placement", p.Range.String(), "unit", p.UnitID))
		}
		placements[p.ChildID] = append(placements[p.ChildID], p.Range)
	}
	checkOverlaps(&result, "placement", placements)

	// Group placements must nest inside a placement of the group's unit
	groupPlacements := make(map[string][]period.DateRange)
	for _, gp := range ds.GroupPlacements {
		if !children[gp.ChildID] {
			result.add(missing("Group placement", gp.Range.String(), "child", gp.ChildID))
		}
		g, ok := groups[gp.GroupID]
		if !ok {
			result.add(missing("Group placement", gp.Range.String(), "group", gp.GroupID))
		} else if !nestedInPlacement(ds.Placements, gp.ChildID, g.UnitID, gp.Range) {
			result.add(Conflict{
				Type:        ConflictGroupOutsidePlacement,
				Description: fmt.Sprintf("Group placement of child %s in %s (%s) is not covered by a placement in unit %s", gp.ChildID, gp.GroupID, gp.Range, g.UnitID),
				ChildID:     gp.ChildID,
				Items:       []string{gp.GroupID},
			})
		}
		groupPlacements[gp.ChildID] = append(groupPlacements[gp.ChildID], gp.Range)
	}
	checkOverlaps(&result, "group placement", groupPlacements)

	// Backup cares
	backups := make(map[string][]period.DateRange)
	for _, b := range ds.BackupCares {
		if !children[b.ChildID] {
			result.add(missing("Backup care", b.Range.String(), "child", b.ChildID))
		}
		if !units[b.UnitID] {
			result.add(missing("Backup care", b.Range.String(), "unit", b.UnitID))
		}
		if b.GroupID != nil {
			if _, ok := groups[*b.GroupID]; !ok {
				result.add(missing("Backup care", b.Range.String(), "group", *b.GroupID))
			}
		}
		backups[b.ChildID] = append(backups[b.ChildID], b.Range)
	}
	checkOverlaps(&result, "backup care", backups)

	v.validateDaily(&result, ds)
	return result
}

func (v *Validator) validateDaily(result *ValidationResult, ds models.Dataset) {
	type childDay struct {
		childID string
		date    period.LocalDate
	}

	timed := make(map[childDay][]period.TimeRange)
	reservationCount := make(map[childDay]int)
	for _, r := range ds.Reservations {
		k := childDay{r.ChildID, r.Date}
		reservationCount[k]++
		if res, ok := r.Reservation().(models.TimedReservation); ok {
			if _, err := period.NewTimeRange(res.Range.Start, res.Range.End); err != nil {
				result.add(Conflict{
					Type:        ConflictInvalidTimeRange,
					Description: fmt.Sprintf("%s: reservation of child %s ends before it starts (%s)", r.Date, r.ChildID, res.Range),
					Date:        r.Date.String(),
					ChildID:     r.ChildID,
				})
				continue
			}
			timed[k] = append(timed[k], res.Range)
		}
	}
	for _, k := range sortedKeys(reservationCount, func(k childDay) (string, period.LocalDate) { return k.childID, k.date }) {
		if n := reservationCount[k]; n > constants.MaxDailyEntries {
			result.add(tooMany("reservations", k.childID, k.date, n))
		}
		if ranges := timed[k]; len(ranges) == 2 && ranges[0].Overlaps(ranges[1]) {
			result.add(Conflict{
				Type:        ConflictOverlappingTimes,
				Description: fmt.Sprintf("%s: reservations of child %s overlap (%s, %s)", k.date, k.childID, ranges[0], ranges[1]),
				Date:        k.date.String(),
				ChildID:     k.childID,
			})
		}
	}

	attendanceCount := make(map[childDay]int)
	for _, a := range ds.Attendances {
		attendanceCount[childDay{a.ChildID, a.Date}]++
	}
	for _, k := range sortedKeys(attendanceCount, func(k childDay) (string, period.LocalDate) { return k.childID, k.date }) {
		if n := attendanceCount[k]; n > constants.MaxDailyEntries {
			result.add(tooMany("attendances", k.childID, k.date, n))
		}
	}

	absenceCount := make(map[childDay]int)
	for _, a := range ds.Absences {
		absenceCount[childDay{a.ChildID, a.Date}]++
	}
	for _, k := range sortedKeys(absenceCount, func(k childDay) (string, period.LocalDate) { return k.childID, k.date }) {
		if n := absenceCount[k]; n > 1 {
			result.add(Conflict{
				Type:        ConflictDuplicateAbsence,
				Description: fmt.Sprintf("%s: child %s has %d absences", k.date, k.childID, n),
				Date:        k.date.String(),
				ChildID:     k.childID,
			})
		}
	}
}

func missing(kind, id, refKind, ref string) Conflict {
	return Conflict{
		Type:        ConflictMissingReference,
		Description: fmt.Sprintf("%s %s references missing %s: %s", kind, id, refKind, ref),
		Items:       []string{ref},
	}
}

func tooMany(kind, childID string, date period.LocalDate, n int) Conflict {
	return Conflict{
		Type:        ConflictTooManyEntries,
		Description: fmt.Sprintf("%s: child %s has %d %s (max %d)", date, childID, n, kind, constants.MaxDailyEntries),
		Date:        date.String(),
		ChildID:     childID,
	}
}

func checkOverlaps(result *ValidationResult, kind string, byChild map[string][]period.DateRange) {
	ids := make([]string, 0, len(byChild))
	for id := range byChild {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		ranges := byChild[id]
		for i := 0; i < len(ranges); i++ {
			for j := i + 1; j < len(ranges); j++ {
				if ranges[i].Overlaps(ranges[j]) {
					result.add(Conflict{
						Type:        ConflictOverlappingPeriods,
						Description: fmt.Sprintf("Child %s has overlapping %s periods: %s and %s", id, kind, ranges[i], ranges[j]),
						ChildID:     id,
					})
				}
			}
		}
	}
}

func nestedInPlacement(placements []models.PlacementPeriod, childID, unitID string, r period.DateRange) bool {
	for _, p := range placements {
		if p.ChildID == childID && p.UnitID == unitID && p.Range.ContainsRange(r) {
			return true
		}
	}
	return false
}

func sortedKeys[K comparable](m map[K]int, parts func(K) (string, period.LocalDate)) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		ci, di := parts(keys[i])
		cj, dj := parts(keys[j])
		if di != dj {
			return di.Before(dj)
		}
		return ci < cj
	})
	return keys
}
