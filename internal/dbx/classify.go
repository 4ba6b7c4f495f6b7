package dbx

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/tasktracker/internal/common"
	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// PostgreSQL SQLSTATE codes of the integrity constraint violation class.
const (
	pgNotNullViolation    = "23502"
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
	pgCheckViolation      = "23514"
)

// ClassifyError joins a constraint sentinel from package common to err when
// err is a constraint violation raised by PostgreSQL (pgx) or SQLite
// (modernc). Any other error, including nil, is returned unchanged.
func ClassifyError(err error) error {
	if err == nil {
		return nil
	}

	if kind := constraintKind(err); kind != nil {
		return fmt.Errorf("%w: %w", kind, err)
	}

	return err
}

func constraintKind(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgKind(pgErr.Code)
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		return sqliteKind(liteErr.Code(), liteErr.Error())
	}

	return nil
}

func pgKind(code string) error {
	switch code {
	case pgUniqueViolation:
		return common.ErrUniqueViolation
	case pgNotNullViolation:
		return common.ErrNotNullViolation
	case pgCheckViolation:
		return common.ErrCheckViolation
	case pgForeignKeyViolation:
		return common.ErrForeignKeyViolation
	}
	return nil
}

func sqliteKind(code int, msg string) error {
	switch code {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return common.ErrUniqueViolation
	case sqlite3.SQLITE_CONSTRAINT_NOTNULL:
		return common.ErrNotNullViolation
	case sqlite3.SQLITE_CONSTRAINT_CHECK:
		return common.ErrCheckViolation
	case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
		return common.ErrForeignKeyViolation
	}

	// primary result code only, fall back to the message text
	if code&0xff != sqlite3.SQLITE_CONSTRAINT {
		return nil
	}
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed"):
		return common.ErrUniqueViolation
	case strings.Contains(msg, "NOT NULL constraint failed"):
		return common.ErrNotNullViolation
	case strings.Contains(msg, "CHECK constraint failed"):
		return common.ErrCheckViolation
	case strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return common.ErrForeignKeyViolation
	}
	return nil
}
