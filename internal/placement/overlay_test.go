package placement

import (
	"testing"

	"github.com/julianstephens/attendo/internal/models"
	"github.com/julianstephens/attendo/internal/period"
)

func dr(start, end string) period.DateRange {
	return period.DateRange{Start: period.MustParseDate(start), End: period.MustParseDate(end)}
}

func strPtr(s string) *string { return &s }

func statusMap(statuses []ChildPlacementStatus) map[string]ChildPlacementStatus {
	m := make(map[string]ChildPlacementStatus, len(statuses))
	for _, s := range statuses {
		m[s.ChildID+"@"+s.Date.String()] = s
	}
	return m
}

func TestOverlay_GroupPlacementWinsOverPlainPlacement(t *testing.T) {
	window := dr("2024-03-04", "2024-03-08")
	src := Sources{
		Placements:      []models.PlacementPeriod{{ChildID: "c1", UnitID: "u1", Range: dr("2024-03-01", "2024-03-31")}},
		GroupPlacements: []models.GroupPlacementPeriod{{ChildID: "c1", GroupID: "g1", Range: dr("2024-03-06", "2024-03-31")}},
	}

	got := statusMap(Overlay("u1", window, src))
	if len(got) != 5 {
		t.Fatalf("Expected 5 statuses (clipped to window), got %d", len(got))
	}

	if s := got["c1@2024-03-05"]; s.Group.IsGrouped() || s.InOtherUnit {
		t.Errorf("Expected ungrouped status before group placement, got %+v", s)
	}
	if s := got["c1@2024-03-06"]; s.Group != InGroup("g1") {
		t.Errorf("Expected group g1, got %v", s.Group)
	}
}

func TestOverlay_BackupCareInQueriedUnit(t *testing.T) {
	window := dr("2024-03-04", "2024-03-08")
	src := Sources{
		Placements:      []models.PlacementPeriod{{ChildID: "c1", UnitID: "u1", Range: window}},
		GroupPlacements: []models.GroupPlacementPeriod{{ChildID: "c1", GroupID: "g1", Range: window}},
		BackupCares: []models.BackupCarePeriod{
			// Child of another unit visiting this unit
			{ChildID: "c2", UnitID: "u1", GroupID: strPtr("g2"), Range: dr("2024-03-05", "2024-03-06")},
			// Own child moved to another group in the same unit
			{ChildID: "c1", UnitID: "u1", GroupID: strPtr("g3"), Range: dr("2024-03-07", "2024-03-07")},
		},
	}

	statuses := Overlay("u1", window, src)
	got := statusMap(statuses)

	for _, s := range statuses {
		if s.ChildID == "c2" && (s.Group != InGroup("g2") || s.InOtherUnit) {
			t.Errorf("Backup child must be in backup group and not in other unit, got %+v", s)
		}
	}
	if _, ok := got["c2@2024-03-04"]; ok {
		t.Error("Backup child must not appear outside its backup period")
	}
	if s := got["c1@2024-03-07"]; s.Group != InGroup("g3") || s.InOtherUnit {
		t.Errorf("Expected backup group g3 to win, got %+v", s)
	}
	if s := got["c1@2024-03-08"]; s.Group != InGroup("g1") {
		t.Errorf("Expected own group after backup ends, got %+v", s)
	}
}

func TestOverlay_BackupCareWithoutGroupIsUngrouped(t *testing.T) {
	window := dr("2024-03-04", "2024-03-04")
	src := Sources{
		GroupPlacements: []models.GroupPlacementPeriod{{ChildID: "c1", GroupID: "g1", Range: window}},
		BackupCares:     []models.BackupCarePeriod{{ChildID: "c1", UnitID: "u1", Range: window}},
	}

	statuses := Overlay("u1", window, src)
	if len(statuses) != 1 {
		t.Fatalf("Expected 1 status, got %d", len(statuses))
	}
	if statuses[0].Group.IsGrouped() {
		t.Errorf("Expected backup without group to be ungrouped, got %v", statuses[0].Group)
	}
}

func TestOverlay_BackupCareInOtherUnit(t *testing.T) {
	window := dr("2024-03-04", "2024-03-08")
	src := Sources{
		Placements: []models.PlacementPeriod{
			{ChildID: "c1", UnitID: "u1", Range: window},
			{ChildID: "c2", UnitID: "u1", Range: window},
		},
		GroupPlacements: []models.GroupPlacementPeriod{{ChildID: "c1", GroupID: "g1", Range: window}},
		BackupCares: []models.BackupCarePeriod{
			{ChildID: "c1", UnitID: "u2", GroupID: strPtr("other-group"), Range: dr("2024-03-05", "2024-03-06")},
			{ChildID: "c2", UnitID: "u2", Range: dr("2024-03-05", "2024-03-05")},
		},
	}

	got := statusMap(Overlay("u1", window, src))

	for _, key := range []string{"c1@2024-03-05", "c1@2024-03-06"} {
		s := got[key]
		if !s.InOtherUnit {
			t.Errorf("%s: expected InOtherUnit", key)
		}
		if s.Group != InGroup("g1") {
			t.Errorf("%s: expected fallback to own group g1, got %v", key, s.Group)
		}
	}
	if s := got["c2@2024-03-05"]; !s.InOtherUnit || s.Group.IsGrouped() {
		t.Errorf("Expected c2 in other unit without group, got %+v", s)
	}
	if s := got["c1@2024-03-07"]; s.InOtherUnit {
		t.Errorf("Expected c1 back in unit after backup, got %+v", s)
	}
}

func TestOverlay_IdempotentAndOrderIndependent(t *testing.T) {
	window := dr("2024-03-04", "2024-03-10")
	src := Sources{
		Placements: []models.PlacementPeriod{
			{ChildID: "b", UnitID: "u1", Range: dr("2024-03-01", "2024-03-07")},
			{ChildID: "a", UnitID: "u1", Range: dr("2024-03-06", "2024-03-31")},
		},
		GroupPlacements: []models.GroupPlacementPeriod{
			{ChildID: "a", GroupID: "g1", Range: dr("2024-03-06", "2024-03-08")},
		},
		BackupCares: []models.BackupCarePeriod{
			{ChildID: "b", UnitID: "u2", Range: dr("2024-03-04", "2024-03-04")},
		},
	}
	reversed := Sources{
		Placements:      []models.PlacementPeriod{src.Placements[1], src.Placements[0]},
		GroupPlacements: src.GroupPlacements,
		BackupCares:     src.BackupCares,
	}

	first := Overlay("u1", window, src)
	second := Overlay("u1", window, src)
	third := Overlay("u1", window, reversed)

	if len(first) != len(second) || len(first) != len(third) {
		t.Fatalf("Expected equal lengths, got %d, %d, %d", len(first), len(second), len(third))
	}
	for i := range first {
		if first[i] != second[i] || first[i] != third[i] {
			t.Errorf("Status %d differs: %+v / %+v / %+v", i, first[i], second[i], third[i])
		}
	}
	for i := 1; i < len(first); i++ {
		prev, cur := first[i-1], first[i]
		if prev.Date.After(cur.Date) || (prev.Date == cur.Date && prev.ChildID >= cur.ChildID) {
			t.Errorf("Statuses not ordered at %d: %+v then %+v", i, prev, cur)
		}
	}
}

func TestOverlay_NoSourcesInWindow(t *testing.T) {
	src := Sources{
		Placements: []models.PlacementPeriod{{ChildID: "c1", UnitID: "u1", Range: dr("2024-01-01", "2024-01-31")}},
	}
	if got := Overlay("u1", dr("2024-03-01", "2024-03-31"), src); len(got) != 0 {
		t.Errorf("Expected no statuses, got %d", len(got))
	}
}
