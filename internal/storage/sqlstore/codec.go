package sqlstore

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/julianstephens/attendo/internal/period"
)

// Dates and times are stored as ISO text in both databases.

func dateValue(d period.LocalDate) any {
	if d.IsZero() {
		return nil
	}
	return d.String()
}

func timeValue(t *period.LocalTime) any {
	if t == nil {
		return nil
	}
	return t.String()
}

func parseNullDate(s sql.NullString) (period.LocalDate, error) {
	if !s.Valid || s.String == "" {
		return period.LocalDate{}, nil
	}
	return period.ParseDate(s.String)
}

func parseNullTime(s sql.NullString) (*period.LocalTime, error) {
	if !s.Valid {
		return nil, nil
	}
	t, err := period.ParseTime(s.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func parseRange(start, end string) (period.DateRange, error) {
	s, err := period.ParseDate(start)
	if err != nil {
		return period.DateRange{}, err
	}
	e, err := period.ParseDate(end)
	if err != nil {
		return period.DateRange{}, err
	}
	return period.DateRange{Start: s, End: e}, nil
}

func parseTimeRange(start, end string) (period.TimeRange, error) {
	s, err := period.ParseTime(start)
	if err != nil {
		return period.TimeRange{}, err
	}
	e, err := period.ParseTime(end)
	if err != nil {
		return period.TimeRange{}, err
	}
	return period.TimeRange{Start: s, End: e}, nil
}

func encodeWeekdays(days []int) string {
	parts := make([]string, len(days))
	for i, d := range days {
		parts[i] = strconv.Itoa(d)
	}
	return strings.Join(parts, ",")
}

func decodeWeekdays(s string) ([]int, error) {
	days := []int{}
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		d, err := strconv.Atoi(part)
		if err != nil || d < 1 || d > 7 {
			return nil, fmt.Errorf("invalid operation day %q", part)
		}
		days = append(days, d)
	}
	return days, nil
}
