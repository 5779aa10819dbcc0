package attendance

import (
	"fmt"

	"github.com/julianstephens/attendo/internal/form"
	"github.com/julianstephens/attendo/internal/logger"
	"github.com/julianstephens/attendo/internal/period"
	"github.com/julianstephens/attendo/internal/reservability"
	"github.com/julianstephens/attendo/internal/storage"
)

// FormRequest selects the cohort, range and repetition of a reservation form.
type FormRequest struct {
	Children   []string
	Range      period.DateRange
	Repetition form.Repetition
	// Weekdays limits DAILY forms to these ISO weekdays.
	Weekdays []int
}

func (req FormRequest) validate() error {
	if len(req.Children) == 0 {
		return fmt.Errorf("at least one child is required")
	}
	if req.Range.End.Before(req.Range.Start) {
		return fmt.Errorf("invalid range %s", req.Range)
	}
	for _, wd := range req.Weekdays {
		if wd < 1 || wd > 7 {
			return fmt.Errorf("invalid weekday %d", wd)
		}
	}
	return nil
}

// ReservationForm derives the initial form state for the cohort.
func (s *Service) ReservationForm(req FormRequest) (form.State, error) {
	state, _, err := s.derive(req)
	return state, err
}

// Submit fills the form with times and the holiday choice and converts it into daily
// requests. Nothing is written.
func (s *Service) Submit(req FormRequest, times []form.TimeRangeInput, choice form.HolidayChoice) ([]form.DailyReservationRequest, error) {
	state, index, err := s.derive(req)
	if err != nil {
		return nil, err
	}
	requests, err := form.ToRequests(form.Fill(state, times, choice), index)
	if err != nil {
		return nil, err
	}
	logger.Debug("Converted reservation form", "children", len(req.Children), "requests", len(requests))
	return requests, nil
}

func (s *Service) derive(req FormRequest) (form.State, *reservability.Index, error) {
	if err := req.validate(); err != nil {
		return form.State{}, nil, err
	}

	var state form.State
	var index *reservability.Index
	err := s.withSnapshot(func(r storage.Reader) error {
		cal, err := calendar(r, req.Children, req.Range)
		if err != nil {
			return err
		}
		periods, err := r.GetHolidayPeriods()
		if err != nil {
			return err
		}

		logger.Debug("Deriving reservation form",
			"repetition", req.Repetition, "range", req.Range.String(), "children", len(req.Children), "days", len(cal.Days))

		index = reservability.New(cal.Days, cal.IncludesWeekends)
		state = form.Derive(form.Input{
			Repetition:     req.Repetition,
			Range:          req.Range,
			Weekdays:       req.Weekdays,
			Children:       req.Children,
			Days:           cal.Days,
			HolidayPeriods: periods,
			Index:          index,
		})
		return nil
	})
	return state, index, err
}
