// Package testutil provides database fixtures for package tests.
package testutil

import (
	"context"
	"database/sql"
	"testing"

	"github.com/dmitrijs2005/tasktracker/internal/migrations"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

// SQLiteDSN is an in-memory database with foreign key enforcement on and
// times written in a sortable layout.
// Every connection gets its own database, so callers keep the pool at one
// connection.
const SQLiteDSN = "file::memory:?_pragma=foreign_keys(1)&_time_format=sqlite"

// OpenSQLite opens an in-memory SQLite database with the task tracker
// schema applied. The database is closed when the test ends.
func OpenSQLite(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", SQLiteDSN)
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	p, err := goose.NewProvider(goose.DialectSQLite3, db, migrations.SQLite())
	require.NoError(t, err)
	_, err = p.Up(context.Background())
	require.NoError(t, err)

	return db
}

// MustExec runs a statement and fails the test on error.
func MustExec(t *testing.T, db *sql.DB, query string, args ...any) sql.Result {
	t.Helper()
	res, err := db.Exec(query, args...)
	require.NoError(t, err)
	return res
}
