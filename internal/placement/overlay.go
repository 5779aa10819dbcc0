// Package placement reconciles the three independently stored assignment sources of a
// unit (placements, group placements and backup care) into one answer per child and date.
package placement

import (
	"sort"

	"github.com/julianstephens/attendo/internal/models"
	"github.com/julianstephens/attendo/internal/period"
)

// GroupRef is either a group id or "no group". The zero value is Ungrouped.
type GroupRef struct {
	id string
	ok bool
}

func Ungrouped() GroupRef { return GroupRef{} }

func InGroup(id string) GroupRef { return GroupRef{id: id, ok: true} }

// ID returns the group id and whether a group is assigned.
func (g GroupRef) ID() (string, bool) { return g.id, g.ok }

func (g GroupRef) IsGrouped() bool { return g.ok }

func (g GroupRef) String() string {
	if !g.ok {
		return "(ungrouped)"
	}
	return g.id
}

func groupRefOf(id *string) GroupRef {
	if id == nil {
		return Ungrouped()
	}
	return InGroup(*id)
}

// ChildPlacementStatus says where a child is on a date from the point of view of one unit.
type ChildPlacementStatus struct {
	Date        period.LocalDate
	ChildID     string
	Group       GroupRef
	InOtherUnit bool
}

// Sources are the interval sets of one unit, already fetched for the query window.
type Sources struct {
	Placements      []models.PlacementPeriod
	GroupPlacements []models.GroupPlacementPeriod
	BackupCares     []models.BackupCarePeriod
}

type childDate struct {
	childID string
	date    period.LocalDate
}

// dayFacts holds what each source says about one child on one date. A plain
// placement only creates the entry.
type dayFacts struct {
	group  *string
	backup *models.BackupCarePeriod
}

// Overlay produces one status per (date, child) for every date of window on which any
// source is active for the child. The result is ordered by date, then child id.
//
// Precedence: backup care in unitID wins with the backup's own group; backup care
// elsewhere marks the child in another unit and keeps the child's group placement here;
// otherwise the group placement wins, then a plain placement with no group.
func Overlay(unitID string, window period.DateRange, src Sources) []ChildPlacementStatus {
	facts := make(map[childDate]*dayFacts)
	at := func(childID string, date period.LocalDate) *dayFacts {
		k := childDate{childID: childID, date: date}
		f, ok := facts[k]
		if !ok {
			f = &dayFacts{}
			facts[k] = f
		}
		return f
	}

	for _, p := range src.Placements {
		clipped, ok := p.Range.Intersect(window)
		if !ok {
			continue
		}
		for d := range clipped.Dates() {
			at(p.ChildID, d)
		}
	}

	for _, gp := range src.GroupPlacements {
		clipped, ok := gp.Range.Intersect(window)
		if !ok {
			continue
		}
		groupID := gp.GroupID
		for d := range clipped.Dates() {
			at(gp.ChildID, d).group = &groupID
		}
	}

	for i := range src.BackupCares {
		bc := &src.BackupCares[i]
		clipped, ok := bc.Range.Intersect(window)
		if !ok {
			continue
		}
		for d := range clipped.Dates() {
			at(bc.ChildID, d).backup = bc
		}
	}

	statuses := make([]ChildPlacementStatus, 0, len(facts))
	for k, f := range facts {
		statuses = append(statuses, resolve(unitID, k, f))
	}

	sort.Slice(statuses, func(i, j int) bool {
		if c := statuses[i].Date.Compare(statuses[j].Date); c != 0 {
			return c < 0
		}
		return statuses[i].ChildID < statuses[j].ChildID
	})
	return statuses
}

func resolve(unitID string, k childDate, f *dayFacts) ChildPlacementStatus {
	status := ChildPlacementStatus{Date: k.date, ChildID: k.childID}
	switch {
	case f.backup != nil && f.backup.UnitID == unitID:
		status.Group = groupRefOf(f.backup.GroupID)
	case f.backup != nil:
		status.InOtherUnit = true
		status.Group = groupRefOf(f.group)
	default:
		status.Group = groupRefOf(f.group)
	}
	return status
}
