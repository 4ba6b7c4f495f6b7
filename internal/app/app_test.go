package app

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/tasktracker/internal/config"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sqliteConfig(dsn string) *config.Config {
	return &config.Config{
		Driver:            "sqlite",
		DatabaseDSN:       dsn,
		ConnectRetries:    1,
		ConnectRetryDelay: time.Millisecond,
		LogFormat:         "json",
	}
}

func TestNewApp_Errors(t *testing.T) {
	var out bytes.Buffer

	c := sqliteConfig("file::memory:")
	c.LogFormat = "xml"
	_, err := NewApp(c, &out)
	assert.ErrorContains(t, err, "logger init error")

	c = sqliteConfig("file::memory:")
	c.Driver = "oracle"
	_, err = NewApp(c, &out)
	assert.ErrorContains(t, err, "db init error")
}

func TestRun_SQLiteAppliesSchema(t *testing.T) {
	t.Cleanup(func() { goose.SetBaseFS(nil) })

	var out bytes.Buffer
	a, err := NewApp(sqliteConfig("file::memory:?_pragma=foreign_keys(1)"), &out)
	require.NoError(t, err)

	require.NoError(t, a.Run(context.Background()))

	logs := out.String()
	assert.Contains(t, logs, `"msg":"schema applied"`)
	assert.Contains(t, logs, `"driver":"sqlite"`)
	assert.Contains(t, logs, `"users"`)
	assert.Contains(t, logs, `"tasks"`)
}

func TestRun_SQLiteWithoutForeignKeys(t *testing.T) {
	var out bytes.Buffer
	a, err := NewApp(sqliteConfig("file::memory:"), &out)
	require.NoError(t, err)

	err = a.Run(context.Background())
	assert.ErrorIs(t, err, ErrForeignKeysOff)
	assert.NotContains(t, out.String(), "schema applied")
}

func TestRun_ZapLogger(t *testing.T) {
	t.Cleanup(func() { goose.SetBaseFS(nil) })

	var out bytes.Buffer
	c := sqliteConfig("file::memory:?_pragma=foreign_keys(1)")
	c.LogFormat = "zap"

	a, err := NewApp(c, &out)
	require.NoError(t, err)

	require.NoError(t, a.Run(context.Background()))
	assert.Contains(t, out.String(), `"msg":"schema applied"`)
}

func TestRun_CancelledWhileWaiting(t *testing.T) {
	var out bytes.Buffer
	c := sqliteConfig("file:/nonexistent-dir/tasks.db?mode=ro")
	c.ConnectRetries = 100
	c.ConnectRetryDelay = time.Hour

	a, err := NewApp(c, &out)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err = a.Run(ctx)
	require.Error(t, err)
	assert.Contains(t, out.String(), "database not ready")
}
