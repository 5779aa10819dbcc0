package main

import (
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/attendo/internal/cli"
	"github.com/julianstephens/attendo/internal/cli/reservations"
	"github.com/julianstephens/attendo/internal/cli/system"
	"github.com/julianstephens/attendo/internal/constants"
	apperrors "github.com/julianstephens/attendo/internal/errors"
	"github.com/julianstephens/attendo/internal/logger"
)

var CLI struct {
	Version  kong.VersionFlag
	Config   string `help:"SQLite database path, dataset .json file or PostgreSQL connection string. PostgreSQL credentials must NOT be embedded; use .pgpass, ATTENDO_DB_CONNECTION or the OS keyring." default:"${config}" env:"ATTENDO_CONFIG"`
	Postgres bool   `help:"Connect to PostgreSQL using ATTENDO_DB_CONNECTION or the connection string stored in the OS keyring."`
	Debug    bool   `help:"Log debug output to stderr." env:"ATTENDO_DEBUG"`
	LogDir   string `help:"Directory for log files." env:"ATTENDO_LOG_DIR"`

	Init     system.InitCmd          `cmd:"" help:"Initialize attendo storage."`
	Import   system.ImportCmd        `cmd:"" help:"Replace stored data with a dataset file."`
	Validate system.ValidateCmd      `cmd:"" help:"Check a dataset or reservation times for conflicts."`
	Keyring  system.KeyringCmd       `cmd:"" help:"Manage the PostgreSQL connection string in the OS keyring."`
	Backup   system.BackupCmd        `cmd:"" help:"Manage SQLite database snapshots."`
	Grid     reservations.GridCmd    `cmd:"" help:"Show the attendance reservation grid of a unit."`
	Form     reservations.FormCmd    `cmd:"" help:"Show the reservation form of one or more children."`
	Reserve  reservations.ReserveCmd `cmd:"" help:"Fill a reservation form and print the daily requests."`
}

// needsStore lists the commands that run against loaded storage.
var needsStore = map[string]bool{
	"import":  true,
	"grid":    true,
	"form":    true,
	"reserve": true,
}

func logDir(flag string) string {
	if flag != "" {
		return flag
	}
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, constants.AppName, constants.DefaultLogSubdir)
	}
	return filepath.Join(os.TempDir(), constants.AppName, constants.DefaultLogSubdir)
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Attendance reservations for daycare units"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version": constants.Version,
			"config":  constants.DefaultConfigPath,
		},
	)

	if err := logger.Init(logger.Config{Debug: CLI.Debug, LogDir: logDir(CLI.LogDir)}); err != nil {
		apperrors.Fatal(err)
	}

	store, err := cli.OpenStore(CLI.Config, CLI.Postgres)
	if err != nil {
		apperrors.Fatal(err)
	}
	defer store.Close()

	if needsStore[ctx.Selected().Name] {
		if err := store.Load(); err != nil {
			apperrors.Fatal(err)
		}
	}

	logger.Debug("Running command", "command", ctx.Command(), "storage", store.GetConfigPath())
	if err := ctx.Run(cli.NewContext(store)); err != nil {
		store.Close()
		apperrors.Fatal(err)
	}
}
