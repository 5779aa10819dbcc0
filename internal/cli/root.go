package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/julianstephens/attendo/internal/attendance"
	"github.com/julianstephens/attendo/internal/constants"
	"github.com/julianstephens/attendo/internal/keyring"
	"github.com/julianstephens/attendo/internal/period"
	"github.com/julianstephens/attendo/internal/storage"
	"github.com/julianstephens/attendo/internal/storage/postgres"
	"github.com/julianstephens/attendo/internal/storage/sqlite"
)

type Context struct {
	Store   storage.Provider
	Service *attendance.Service
}

func NewContext(store storage.Provider) *Context {
	return &Context{
		Store:   store,
		Service: attendance.NewService(store),
	}
}

func isPostgresURL(s string) bool {
	return strings.HasPrefix(s, "postgres://") || strings.HasPrefix(s, "postgresql://")
}

// OpenStore picks the store for config: a PostgreSQL connection string, a .json dataset
// file or a SQLite database path. With usePostgres the connection string comes from
// ATTENDO_DB_CONNECTION or the OS keyring instead.
func OpenStore(config string, usePostgres bool) (storage.Provider, error) {
	if usePostgres {
		// The keyring and the environment may hold a password.
		connStr, err := keyring.ResolveConnectionString("", os.Getenv(constants.EnvDBConnection))
		if err != nil {
			return nil, err
		}
		return postgres.New(connStr), nil
	}

	if isPostgresURL(config) || strings.Contains(config, "host=") {
		if _, err := postgres.ValidateConnString(config); err != nil {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return nil, fmt.Errorf("PostgreSQL connection strings with embedded credentials are not allowed; use %s, .pgpass or 'attendo keyring set'", constants.EnvDBConnection)
			}
			return nil, err
		}
		return postgres.New(config), nil
	}

	path, err := ExpandHome(config)
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return storage.NewJSONStore(path), nil
	}
	return sqlite.NewStore(path), nil
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// ParseRange parses an inclusive date range; an empty to means a single day.
func ParseRange(from, to string) (period.DateRange, error) {
	start, err := period.ParseDate(from)
	if err != nil {
		return period.DateRange{}, err
	}
	end := start
	if to != "" {
		if end, err = period.ParseDate(to); err != nil {
			return period.DateRange{}, err
		}
	}
	return period.NewDateRange(start, end)
}

// ParseWeekdays parses a comma-separated list of weekdays into ISO weekdays (1 = Monday).
func ParseWeekdays(s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}

	dayMap := map[string]int{
		"mon":       1,
		"monday":    1,
		"tue":       2,
		"tuesday":   2,
		"wed":       3,
		"wednesday": 3,
		"thu":       4,
		"thursday":  4,
		"fri":       5,
		"friday":    5,
		"sat":       6,
		"saturday":  6,
		"sun":       7,
		"sunday":    7,
	}

	var weekdays []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(strings.ToLower(part))
		if wd, ok := dayMap[part]; ok {
			weekdays = append(weekdays, wd)
			continue
		}
		num, err := strconv.Atoi(part)
		if err != nil || num < 1 || num > 7 {
			return nil, fmt.Errorf("invalid weekday: %s", part)
		}
		weekdays = append(weekdays, num)
	}
	return weekdays, nil
}
