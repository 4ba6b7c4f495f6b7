// Package migrations embeds the task tracker schema as goose migrations,
// one directory per database dialect. Both dialects declare the same
// tables and constraints: unique non-null email, priority between 1 and
// 10, and tasks.user_id referencing users(id) with ON DELETE CASCADE.
package migrations

import (
	"embed"
	"io/fs"
)

//go:embed postgres/*.sql sqlite/*.sql
var Migrations embed.FS

// Postgres returns the PostgreSQL migrations rooted at their directory.
func Postgres() fs.FS {
	return sub("postgres")
}

// SQLite returns the SQLite migrations rooted at their directory.
func SQLite() fs.FS {
	return sub("sqlite")
}

func sub(dir string) fs.FS {
	f, err := fs.Sub(Migrations, dir)
	if err != nil {
		// dir is a compile-time constant matched by the embed pattern
		panic(err)
	}
	return f
}
