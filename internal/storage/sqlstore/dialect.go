// Package sqlstore holds the SQL queries shared by the SQLite and PostgreSQL stores.
package sqlstore

import (
	"database/sql"
	"strconv"
	"strings"
)

// Dialect captures what differs between the supported databases.
type Dialect struct {
	Name string
	// ReadTx are the options of snapshot transactions.
	ReadTx *sql.TxOptions
	// numbered placeholders ($1, $2, ...) instead of ?
	numbered bool
}

var (
	SQLite = Dialect{Name: "sqlite"}
	// Postgres reads through repeatable read transactions so that all queries of one
	// request see the same snapshot.
	Postgres = Dialect{
		Name:     "postgres",
		ReadTx:   &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true},
		numbered: true,
	}
)

// Rebind rewrites ? placeholders into the dialect's form.
func (d Dialect) Rebind(query string) string {
	if !d.numbered {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// placeholders returns "?, ?, ?" for n values.
func placeholders(n int) string {
	if n == 0 {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

func stringArgs(ids []string) []any {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return args
}
