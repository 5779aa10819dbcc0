package models

import "github.com/julianstephens/attendo/internal/period"

// PlacementPeriod assigns a child to a unit for a date range.
type PlacementPeriod struct {
	ChildID string           `json:"child_id"`
	UnitID  string           `json:"unit_id"`
	Range   period.DateRange `json:"range"`
}

// GroupPlacementPeriod assigns a child to a group within the unit of an enclosing placement.
type GroupPlacementPeriod struct {
	ChildID string           `json:"child_id"`
	GroupID string           `json:"group_id"`
	Range   period.DateRange `json:"range"`
}

// BackupCarePeriod temporarily moves a child to a (possibly different) unit and optional group.
type BackupCarePeriod struct {
	ChildID string           `json:"child_id"`
	UnitID  string           `json:"unit_id"`
	GroupID *string          `json:"group_id,omitempty"`
	Range   period.DateRange `json:"range"`
}
