package system

import (
	"fmt"

	"github.com/julianstephens/attendo/internal/cli"
	"github.com/julianstephens/attendo/internal/storage"
	"github.com/julianstephens/attendo/internal/validation"
)

// ValidateCmd checks a dataset file for conflicts, or reservation input given with --times.
type ValidateCmd struct {
	File  string `arg:"" optional:"" help:"Dataset JSON file to check." type:"existingfile"`
	Times string `help:"Reservation times to check, e.g. 08:00-12:00,13:00-16:00."`
}

func (c *ValidateCmd) Run(ctx *cli.Context) error {
	if c.File == "" && c.Times == "" {
		return fmt.Errorf("nothing to validate: give a dataset file or --times")
	}

	if c.Times != "" {
		ranges, err := validation.ParseReservation("times", validation.SplitTimes(c.Times))
		if err != nil {
			return err
		}
		fmt.Printf("Times are valid: %d range(s)\n", len(ranges))
	}

	if c.File != "" {
		ds, err := storage.ReadDatasetFile(c.File)
		if err != nil {
			return err
		}
		fmt.Println("Validating dataset...")
		fmt.Println()
		result := validation.New().ValidateDataset(ds)
		fmt.Println(result.FormatReport())
	}
	return nil
}
