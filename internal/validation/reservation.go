package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/attendo/internal/constants"
	"github.com/julianstephens/attendo/internal/period"
)

var (
	ErrRequired          = errors.New("required")
	ErrTimeFormat        = errors.New("invalid time, expected HH:MM")
	ErrMidnightEnd       = errors.New("end time 00:00 is not allowed")
	ErrEndBeforeStart    = errors.New("end time must be after start time")
	ErrTooManyRanges     = errors.New("at most two time ranges per day")
	ErrOverlappingRanges = errors.New("time ranges overlap")
)

// ValidationError is a user input error on one form field.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func fieldError(field string, err error) error {
	return &ValidationError{Field: field, Err: err}
}

// TimeRangeInput is a time range as typed by the user, before parsing.
type TimeRangeInput struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

func (in TimeRangeInput) IsEmpty() bool {
	return strings.TrimSpace(in.Start) == "" && strings.TrimSpace(in.End) == ""
}

func (in TimeRangeInput) String() string {
	return in.Start + "-" + in.End
}

// InputOf formats a parsed range back into editable input.
func InputOf(r period.TimeRange) TimeRangeInput {
	return TimeRangeInput{Start: r.Start.String(), End: r.End.String()}
}

// ParseTimeRange validates one entered range. The end may not be 00:00: that value
// only denotes end of day in stored data and is never a valid entered end.
func ParseTimeRange(field string, in TimeRangeInput) (period.TimeRange, error) {
	if strings.TrimSpace(in.Start) == "" || strings.TrimSpace(in.End) == "" {
		return period.TimeRange{}, fieldError(field, ErrRequired)
	}
	start, err := period.ParseTime(in.Start)
	if err != nil {
		return period.TimeRange{}, fieldError(field+".start", ErrTimeFormat)
	}
	end, err := period.ParseTime(in.End)
	if err != nil {
		return period.TimeRange{}, fieldError(field+".end", ErrTimeFormat)
	}
	if strings.TrimSpace(in.End) == constants.MidnightTime || end.IsMidnight() {
		return period.TimeRange{}, fieldError(field+".end", ErrMidnightEnd)
	}
	r, err := period.NewTimeRange(start, end)
	if err != nil {
		return period.TimeRange{}, fieldError(field, ErrEndBeforeStart)
	}
	return r, nil
}

// ParseReservation validates the one or two ranges entered for a day.
func ParseReservation(field string, inputs []TimeRangeInput) ([]period.TimeRange, error) {
	if len(inputs) == 0 {
		return nil, fieldError(field, ErrRequired)
	}
	if len(inputs) > constants.MaxDailyEntries {
		return nil, fieldError(field, ErrTooManyRanges)
	}
	ranges := make([]period.TimeRange, 0, len(inputs))
	for i, in := range inputs {
		r, err := ParseTimeRange(fmt.Sprintf("%s[%d]", field, i), in)
		if err != nil {
			return nil, err
		}
		ranges = append(ranges, r)
	}
	if len(ranges) == 2 && ranges[0].Overlaps(ranges[1]) {
		return nil, fieldError(field, ErrOverlappingRanges)
	}
	return ranges, nil
}

// SplitTimes parses the command line form "08:00-12:00,13:00-16:00" into inputs.
// Parts are kept as typed so that ParseReservation reports the errors.
func SplitTimes(s string) []TimeRangeInput {
	var inputs []TimeRangeInput
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		start, end, _ := strings.Cut(part, "-")
		inputs = append(inputs, TimeRangeInput{Start: strings.TrimSpace(start), End: strings.TrimSpace(end)})
	}
	return inputs
}
