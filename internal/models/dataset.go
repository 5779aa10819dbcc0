package models

// Dataset is the full import/export document of the stores.
type Dataset struct {
	Version           int                    `json:"version"`
	Units             []Unit                 `json:"units"`
	Groups            []Group                `json:"groups"`
	Children          []Child                `json:"children"`
	Placements        []PlacementPeriod      `json:"placements"`
	GroupPlacements   []GroupPlacementPeriod `json:"group_placements"`
	BackupCares       []BackupCarePeriod     `json:"backup_cares"`
	Reservations      []ReservationRecord    `json:"reservations"`
	Attendances       []AttendanceRecord     `json:"attendances"`
	Absences          []Absence              `json:"absences"`
	DailyServiceTimes []DailyServiceTimes    `json:"daily_service_times"`
	Holidays          []Holiday              `json:"holidays"`
	HolidayPeriods    []HolidayPeriod        `json:"holiday_periods"`
}
