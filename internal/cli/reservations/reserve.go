package reservations

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/attendo/internal/cli"
	"github.com/julianstephens/attendo/internal/form"
	"github.com/julianstephens/attendo/internal/validation"
)

// ReserveCmd fills a form and prints the daily requests it converts into.
type ReserveCmd struct {
	FormFlags   `embed:""`
	Times       string `help:"Reservation times, e.g. 08:00-12:00,13:00-16:00."`
	Holiday     string `help:"Answer to holiday period questions." enum:"unset,present,absent" default:"unset"`
	Interactive bool   `help:"Ask for missing answers and confirm before printing." short:"i"`
	JSON        bool   `help:"Print JSON instead of a table." name:"json"`
}

var errCancelled = errors.New("cancelled")

func holidayChoice(s string) form.HolidayChoice {
	switch s {
	case "present":
		return form.Present
	case "absent":
		return form.Absent
	}
	return ""
}

// hasHolidayQuestion reports whether any day of the form asks about an open holiday period.
func hasHolidayQuestion(times form.Times) bool {
	isQuestion := func(day form.DayFormState) bool {
		_, ok := day.(form.HolidayReservation)
		return ok
	}
	switch t := times.(type) {
	case form.DailyTimes:
		return isQuestion(t.Day)
	case form.WeeklyTimes:
		for _, day := range t.Days {
			if isQuestion(day) {
				return true
			}
		}
	case form.IrregularTimes:
		for _, day := range t.Days {
			if isQuestion(day.Day) {
				return true
			}
		}
	}
	return false
}

func (c *ReserveCmd) Run(ctx *cli.Context) error {
	req, err := c.request()
	if err != nil {
		return err
	}

	times := validation.SplitTimes(c.Times)
	choice := holidayChoice(c.Holiday)

	if c.Interactive {
		state, err := ctx.Service.ReservationForm(req)
		if err != nil {
			return err
		}
		fmt.Print(cli.RenderForm(state))

		if choice == "" && hasHolidayQuestion(state.Times) {
			if choice, err = askHolidayChoice(); err != nil {
				return err
			}
		}
		if len(times) == 0 {
			if times, err = askTimes(); err != nil {
				return err
			}
		}
	}

	requests, err := ctx.Service.Submit(req, times, choice)
	if err != nil {
		return err
	}

	if c.Interactive {
		fmt.Print(cli.RenderRequests(requests))
		confirmed := true
		confirm := huh.NewConfirm().
			Title(fmt.Sprintf("Send %d request(s)?", len(requests))).
			Affirmative("Yes").
			Negative("No").
			Value(&confirmed)
		if err := huh.NewForm(huh.NewGroup(confirm)).Run(); err != nil {
			return err
		}
		if !confirmed {
			return errCancelled
		}
	}

	if c.JSON {
		return printJSON(requests)
	}
	if !c.Interactive {
		fmt.Print(cli.RenderRequests(requests))
	}
	return nil
}

func askHolidayChoice() (form.HolidayChoice, error) {
	choice := form.NotSet
	sel := huh.NewSelect[form.HolidayChoice]().
		Title("Will the children attend during the holiday period?").
		Options(
			huh.NewOption("Present", form.Present),
			huh.NewOption("Absent", form.Absent),
			huh.NewOption("Decide later", form.NotSet),
		).
		Value(&choice)
	if err := huh.NewForm(huh.NewGroup(sel)).Run(); err != nil {
		return "", err
	}
	return choice, nil
}

func askTimes() ([]form.TimeRangeInput, error) {
	var raw string
	input := huh.NewInput().
		Title("Reservation times").
		Placeholder("08:00-16:00").
		Validate(func(s string) error {
			if s == "" {
				return nil
			}
			_, err := validation.ParseReservation("times", validation.SplitTimes(s))
			return err
		}).
		Value(&raw)
	if err := huh.NewForm(huh.NewGroup(input)).Run(); err != nil {
		return nil, err
	}
	return validation.SplitTimes(raw), nil
}
