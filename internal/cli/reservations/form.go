package reservations

import (
	"fmt"

	"github.com/julianstephens/attendo/internal/attendance"
	"github.com/julianstephens/attendo/internal/cli"
	"github.com/julianstephens/attendo/internal/form"
)

// FormFlags select the cohort and layout of a reservation form.
type FormFlags struct {
	Child    []string `help:"Child id; repeat for several children." required:""`
	From     string   `help:"First date (YYYY-MM-DD)." required:""`
	To       string   `help:"Last date (YYYY-MM-DD). Defaults to --from."`
	Mode     string   `help:"Repetition: daily, weekly or irregular." enum:"daily,weekly,irregular" default:"daily"`
	Weekdays string   `help:"Weekdays of a daily form, e.g. mon,wed,fri."`
}

func (f FormFlags) request() (attendance.FormRequest, error) {
	r, err := cli.ParseRange(f.From, f.To)
	if err != nil {
		return attendance.FormRequest{}, err
	}
	rep, ok := form.ParseRepetition(f.Mode)
	if !ok {
		return attendance.FormRequest{}, fmt.Errorf("invalid mode: %s", f.Mode)
	}
	weekdays, err := cli.ParseWeekdays(f.Weekdays)
	if err != nil {
		return attendance.FormRequest{}, err
	}
	return attendance.FormRequest{
		Children:   f.Child,
		Range:      r,
		Repetition: rep,
		Weekdays:   weekdays,
	}, nil
}

type FormCmd struct {
	FormFlags `embed:""`
	JSON      bool `help:"Print JSON instead of a table." name:"json"`
}

func (c *FormCmd) Run(ctx *cli.Context) error {
	req, err := c.request()
	if err != nil {
		return err
	}
	state, err := ctx.Service.ReservationForm(req)
	if err != nil {
		return err
	}
	if c.JSON {
		return printJSON(state)
	}
	fmt.Print(cli.RenderForm(state))
	return nil
}
