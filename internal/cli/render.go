package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/julianstephens/attendo/internal/form"
	"github.com/julianstephens/attendo/internal/grid"
	"github.com/julianstephens/attendo/internal/models"
	"github.com/julianstephens/attendo/internal/period"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("236")).
			Padding(0, 1).
			Bold(true)

	cellStyle = lipgloss.NewStyle().Padding(0, 1)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Padding(0, 1)

	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col == 0 {
				return cellStyle.Bold(true)
			}
			return cellStyle
		})
}

func dayHeader(d period.LocalDate, holiday bool) string {
	h := fmt.Sprintf("%s %02d.%02d", d.Weekday().String()[:3], d.Day, int(d.Month))
	if holiday {
		h += " *"
	}
	return h
}

// ReservationText formats a reservation for display.
func ReservationText(r models.Reservation) string {
	switch r := r.(type) {
	case models.TimedReservation:
		return r.Range.String()
	case models.NoTimesReservation:
		return "reserved"
	}
	return ""
}

// CellText formats one grid cell; ok is false when the child has no status on the date.
func CellText(rec grid.ChildRecordOfDay, ok bool) string {
	if !ok {
		return ""
	}
	var parts []string
	if rec.InOtherUnit {
		parts = append(parts, "other unit")
	}
	if rec.Reservation != nil {
		parts = append(parts, ReservationText(rec.Reservation))
	}
	if rec.Attendance != nil {
		parts = append(parts, "in "+rec.Attendance.String())
	}
	if rec.Absence != nil {
		parts = append(parts, strings.ToLower(string(*rec.Absence)))
	}
	if len(parts) == 0 && rec.DailyServiceTimes != nil {
		parts = append(parts, "("+rec.DailyServiceTimes.String()+")")
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, " ")
}

// RenderGrid renders one table per group followed by the ungrouped children.
func RenderGrid(result grid.UnitAttendanceReservations) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(result.UnitName))
	b.WriteString("\n")

	if len(result.OperationalDays) == 0 {
		b.WriteString(mutedStyle.Render("No operational days in range."))
		b.WriteString("\n")
		return b.String()
	}

	headers := []string{"Child"}
	for _, day := range result.OperationalDays {
		headers = append(headers, dayHeader(day.Date, day.IsHoliday))
	}

	section := func(title string, children []grid.ChildDailyRecords) {
		b.WriteString("\n")
		b.WriteString(titleStyle.Render(title))
		b.WriteString("\n")
		if len(children) == 0 {
			b.WriteString(mutedStyle.Render("No children."))
			b.WriteString("\n")
			return
		}
		t := newTable(headers...)
		for _, child := range children {
			for i, row := range child.Rows {
				name := child.Child.DisplayName()
				if i > 0 {
					name = ""
				}
				cells := []string{name}
				for _, day := range result.OperationalDays {
					rec, ok := row[day.Date]
					cells = append(cells, CellText(rec, ok))
				}
				t.Row(cells...)
			}
		}
		b.WriteString(t.String())
		b.WriteString("\n")
	}

	for _, g := range result.Groups {
		section(g.Group.Name, g.Children)
	}
	if len(result.Ungrouped) > 0 {
		section("Without group", result.Ungrouped)
	}
	return b.String()
}

// DayText formats one form day state.
func DayText(day form.DayFormState) string {
	switch day := day.(type) {
	case form.ReadOnly:
		if day.Reason == form.None {
			return "-"
		}
		return "read-only (" + strings.ToLower(strings.ReplaceAll(string(day.Reason), "_", " ")) + ")"
	case form.Reservation:
		var ranges []string
		for _, r := range day.Ranges {
			if !r.IsEmpty() {
				ranges = append(ranges, r.String())
			}
		}
		if len(ranges) == 0 {
			return "(empty)"
		}
		return strings.Join(ranges, ", ")
	case form.HolidayReservation:
		return "holiday: " + strings.ToLower(strings.ReplaceAll(string(day.Choice), "_", " "))
	}
	return ""
}

var weekdayNames = [7]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// RenderForm renders a derived reservation form.
func RenderForm(s form.State) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Reservations %s", s.Range)))
	b.WriteString("\n")

	t := newTable("Day", "State")
	switch times := s.Times.(type) {
	case form.DailyTimes:
		label := "Every day"
		if len(times.Weekdays) > 0 {
			var names []string
			for _, wd := range times.Weekdays {
				names = append(names, weekdayNames[wd-1][:3])
			}
			label = strings.Join(names, ", ")
		}
		t.Row(label, DayText(times.Day))
	case form.WeeklyTimes:
		for i, day := range times.Days {
			t.Row(weekdayNames[i], DayText(day))
		}
	case form.IrregularTimes:
		for _, day := range times.Days {
			t.Row(dayHeader(day.Date, false), DayText(day.Day))
		}
	}
	b.WriteString(t.String())
	b.WriteString("\n")

	if len(s.PartiallyReservable) > 0 {
		b.WriteString(mutedStyle.Render("Not reservable for the whole range: " + strings.Join(s.PartiallyReservable, ", ")))
		b.WriteString("\n")
	}
	return b.String()
}

// RenderRequests renders converted daily requests.
func RenderRequests(requests []form.DailyReservationRequest) string {
	if len(requests) == 0 {
		return mutedStyle.Render("No reservable days in range.") + "\n"
	}
	t := newTable("Child", "Date", "Kind", "Reservation", "Second")
	for _, r := range requests {
		t.Row(r.ChildID, r.Date.String(), string(r.Kind), ReservationText(r.Reservation), ReservationText(r.SecondReservation))
	}
	return t.String() + "\n"
}
