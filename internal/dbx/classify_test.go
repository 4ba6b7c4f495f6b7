package dbx

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/dmitrijs2005/tasktracker/internal/common"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func TestClassifyError_Postgres(t *testing.T) {
	tests := []struct {
		code string
		want error
	}{
		{"23505", common.ErrUniqueViolation},
		{"23502", common.ErrNotNullViolation},
		{"23514", common.ErrCheckViolation},
		{"23503", common.ErrForeignKeyViolation},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			pgErr := &pgconn.PgError{Code: tt.code, ConstraintName: "c"}
			err := ClassifyError(fmt.Errorf("exec: %w", pgErr))

			assert.ErrorIs(t, err, tt.want)

			var got *pgconn.PgError
			require.ErrorAs(t, err, &got, "driver error must stay in the chain")
			assert.Equal(t, tt.code, got.Code)
		})
	}
}

func TestClassifyError_PassThrough(t *testing.T) {
	assert.NoError(t, ClassifyError(nil))

	plain := errors.New("connection reset")
	assert.Same(t, plain, ClassifyError(plain))

	syntax := &pgconn.PgError{Code: "42601"}
	got := ClassifyError(syntax)
	assert.Equal(t, error(syntax), got)
	for _, sentinel := range []error{common.ErrUniqueViolation, common.ErrNotNullViolation, common.ErrCheckViolation, common.ErrForeignKeyViolation} {
		assert.NotErrorIs(t, got, sentinel)
	}

	assert.Equal(t, sql.ErrNoRows, ClassifyError(sql.ErrNoRows))
}

func TestClassifyError_SQLite(t *testing.T) {
	db, err := sql.Open("sqlite", "file::memory:?_pragma=foreign_keys(1)")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE owners (id INTEGER PRIMARY KEY, email VARCHAR(100) UNIQUE NOT NULL);
CREATE TABLE items (
  id INTEGER PRIMARY KEY,
  owner_id INTEGER REFERENCES owners(id),
  priority INTEGER CHECK (priority BETWEEN 1 AND 10)
);`)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO owners(email) VALUES ('a@x.com')`)
	require.NoError(t, err)

	tests := []struct {
		name  string
		query string
		want  error
	}{
		{"unique", `INSERT INTO owners(email) VALUES ('a@x.com')`, common.ErrUniqueViolation},
		{"not null", `INSERT INTO owners(email) VALUES (NULL)`, common.ErrNotNullViolation},
		{"check", `INSERT INTO items(owner_id, priority) VALUES (1, 11)`, common.ErrCheckViolation},
		{"foreign key", `INSERT INTO items(owner_id, priority) VALUES (42, 5)`, common.ErrForeignKeyViolation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := db.Exec(tt.query)
			require.Error(t, err)
			assert.ErrorIs(t, ClassifyError(err), tt.want)
		})
	}
}
