package reservations

import (
	"encoding/json"
	"fmt"

	"github.com/julianstephens/attendo/internal/cli"
)

type GridCmd struct {
	Unit string `arg:"" help:"Unit id."`
	From string `help:"First date (YYYY-MM-DD)." required:""`
	To   string `help:"Last date (YYYY-MM-DD). Defaults to --from."`
	JSON bool   `help:"Print JSON instead of a table." name:"json"`
}

func (c *GridCmd) Run(ctx *cli.Context) error {
	window, err := cli.ParseRange(c.From, c.To)
	if err != nil {
		return err
	}
	result, err := ctx.Service.UnitAttendanceReservations(c.Unit, window)
	if err != nil {
		return err
	}
	if c.JSON {
		return printJSON(result)
	}
	fmt.Print(cli.RenderGrid(result))
	return nil
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize output: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
