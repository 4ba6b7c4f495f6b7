package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/tasktracker/internal/flagx"
	"github.com/dmitrijs2005/tasktracker/internal/timex"
)

// JsonConfig mirrors Config for decoding. Pointer fields distinguish keys
// that are absent from the file, which leave the current value alone.
type JsonConfig struct {
	Driver            *string         `json:"driver"`
	DatabaseDSN       *string         `json:"database_dsn"`
	MaxOpenConns      *int            `json:"max_open_conns"`
	ConnectRetries    *int            `json:"connect_retries"`
	ConnectRetryDelay *timex.Duration `json:"connect_retry_delay"`
	LogFormat         *string         `json:"log_format"`
}

// parseJson overlays values from the file named by -c/-config. Without
// the flag nothing is loaded. An unreadable file or invalid JSON panics.
func parseJson(config *Config) {

	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.Driver != nil {
		config.Driver = *c.Driver
	}
	if c.DatabaseDSN != nil {
		config.DatabaseDSN = *c.DatabaseDSN
	}
	if c.MaxOpenConns != nil {
		config.MaxOpenConns = *c.MaxOpenConns
	}
	if c.ConnectRetries != nil {
		config.ConnectRetries = *c.ConnectRetries
	}
	if c.ConnectRetryDelay != nil {
		config.ConnectRetryDelay = c.ConnectRetryDelay.Duration
	}
	if c.LogFormat != nil {
		config.LogFormat = *c.LogFormat
	}
}
