package database

import (
	"errors"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
)

// Dialect identifies the SQL flavour of the open connection.
type Dialect string

const (
	SQLite   Dialect = "sqlite3"
	LibSQL   Dialect = "libsql"
	Postgres Dialect = "postgres"
)

func (d Dialect) gooseDialect() string {
	switch d {
	case LibSQL:
		return "turso"
	case Postgres:
		return "postgres"
	}
	return "sqlite3"
}

// Rebind rewrites ? placeholders into the form the dialect expects.
// Queries must not contain a literal question mark.
func (d Dialect) Rebind(query string) string {
	if d != Postgres {
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

const pgUniqueViolation = "23505"

// IsUniqueViolation reports whether err comes from a unique or primary key
// constraint in any of the supported drivers.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	// libsql only surfaces the server message.
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
