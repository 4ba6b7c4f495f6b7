// Package app wires configuration, logging and storage together: it opens
// the configured database, waits until it answers, applies the task
// tracker schema and reports the resulting tables.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrijs2005/tasktracker/internal/config"
	"github.com/dmitrijs2005/tasktracker/internal/logging"
	"github.com/dmitrijs2005/tasktracker/internal/repositories/repomanager"
	"github.com/sethvargo/go-retry"
)

const (
	postgresTablesQuery = `SELECT table_name FROM information_schema.tables
		WHERE table_schema = current_schema() AND table_type = 'BASE TABLE'
		ORDER BY table_name`
	sqliteTablesQuery = `SELECT name FROM sqlite_master
		WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
		ORDER BY name`
)

// ErrForeignKeysOff is returned for a SQLite database opened without
// foreign key enforcement, which would leave tasks behind on user delete.
var ErrForeignKeysOff = errors.New("sqlite foreign keys are disabled, add _pragma=foreign_keys(1) to the DSN")

type App struct {
	config  *config.Config
	logger  logging.Logger
	manager repomanager.RepositoryManager
}

// NewApp validates c and builds the logger (writing to out) and the
// repository manager for the configured driver.
func NewApp(c *config.Config, out io.Writer) (*App, error) {
	logger, err := logging.New(c.LogFormat, out)
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}

	m, err := repomanager.New(c.Driver)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	return &App{config: c, logger: logger.With("driver", c.Driver), manager: m}, nil
}

// Run applies the schema and returns. SIGINT, SIGTERM and SIGQUIT cancel
// a run that is still waiting for the database.
func (app *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()
	defer func() { _ = app.logger.Sync() }()

	app.logger.Info(ctx, "Starting app...")

	db, err := app.openDB(ctx)
	if err != nil {
		app.logger.Error(ctx, "database unavailable", "error", err)
		return err
	}
	defer db.Close()

	if err := app.manager.RunMigrations(ctx, db); err != nil {
		app.logger.Error(ctx, "schema migration failed", "error", err)
		return fmt.Errorf("migrations: %w", err)
	}

	tables, err := app.tables(ctx, db)
	if err != nil {
		app.logger.Warn(ctx, "could not list tables", "error", err)
		return nil
	}

	app.logger.Info(ctx, "schema applied", "tables", tables)
	return nil
}

func (app *App) openDB(ctx context.Context) (*sql.DB, error) {
	db, err := sql.Open(app.manager.DriverName(), app.config.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	if app.config.Driver == repomanager.DriverSQLite {
		// pragmas are per connection and in-memory databases per connection too
		db.SetMaxOpenConns(1)
	} else if app.config.MaxOpenConns > 0 {
		db.SetMaxOpenConns(app.config.MaxOpenConns)
	}

	if err := app.ping(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	if app.config.Driver == repomanager.DriverSQLite {
		if err := foreignKeysOn(ctx, db); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	return db, nil
}

func (app *App) ping(ctx context.Context, db *sql.DB) error {
	delay := app.config.ConnectRetryDelay
	if delay <= 0 {
		delay = time.Millisecond
	}
	retries := app.config.ConnectRetries
	if retries < 0 {
		retries = 0
	}

	attempt := 0
	b := retry.WithMaxRetries(uint64(retries), retry.NewConstant(delay))

	err := retry.Do(ctx, b, func(ctx context.Context) error {
		attempt++
		if err := db.PingContext(ctx); err != nil {
			app.logger.Warn(ctx, "database not ready", "attempt", attempt, "error", err)
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("database not ready after %d attempts: %w", attempt, err)
	}

	app.logger.Debug(ctx, "database ready", "attempt", attempt)
	return nil
}

func foreignKeysOn(ctx context.Context, db *sql.DB) error {
	var on int
	if err := db.QueryRowContext(ctx, `PRAGMA foreign_keys`).Scan(&on); err != nil {
		return fmt.Errorf("reading foreign_keys pragma: %w", err)
	}
	if on == 0 {
		return ErrForeignKeysOff
	}
	return nil
}

func (app *App) tables(ctx context.Context, db *sql.DB) ([]string, error) {
	query := postgresTablesQuery
	if app.config.Driver == repomanager.DriverSQLite {
		query = sqliteTablesQuery
	}

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		tables = append(tables, name)
	}

	return tables, rows.Err()
}
