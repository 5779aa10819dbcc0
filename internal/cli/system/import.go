package system

import (
	"fmt"

	"github.com/julianstephens/attendo/internal/backup"
	"github.com/julianstephens/attendo/internal/cli"
	"github.com/julianstephens/attendo/internal/logger"
	"github.com/julianstephens/attendo/internal/storage"
	"github.com/julianstephens/attendo/internal/storage/sqlite"
	"github.com/julianstephens/attendo/internal/validation"
)

type ImportCmd struct {
	File     string `arg:"" help:"Dataset JSON file to import." type:"existingfile"`
	Force    bool   `help:"Import even when the dataset has conflicts."`
	NoBackup bool   `help:"Skip the database snapshot taken before a SQLite import."`
}

func (c *ImportCmd) Run(ctx *cli.Context) error {
	ds, err := storage.ReadDatasetFile(c.File)
	if err != nil {
		return err
	}

	result := validation.New().ValidateDataset(ds)
	if result.HasConflicts() {
		fmt.Println(result.FormatReport())
		if !c.Force {
			return fmt.Errorf("dataset has %d conflict(s), use --force to import anyway", len(result.Conflicts))
		}
	}

	if _, ok := ctx.Store.(*sqlite.Store); ok && !c.NoBackup {
		if _, err := backup.NewManager(ctx.Store.GetConfigPath()).Create(); err != nil {
			logger.Warn("Backup before import failed", "error", err)
		}
	}

	if err := ctx.Store.Import(ds); err != nil {
		return err
	}
	fmt.Printf("Imported %d unit(s), %d child(ren) and %d reservation(s) into %s\n",
		len(ds.Units), len(ds.Children), len(ds.Reservations), ctx.Store.GetConfigPath())
	return nil
}
