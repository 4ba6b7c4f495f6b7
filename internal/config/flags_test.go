package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	tests := []struct {
		name        string
		args        []string
		start       Config
		expected    *Config
		expectPanic bool
	}{
		{
			name: "all flags",
			args: []string{"taskdb",
				"-driver", "sqlite", "-d", "file:tasks.db", "-m", "1", "-r", "3", "-w", "4", "-l", "zap",
			},
			expected: &Config{
				Driver:            "sqlite",
				DatabaseDSN:       "file:tasks.db",
				MaxOpenConns:      1,
				ConnectRetries:    3,
				ConnectRetryDelay: 4 * time.Second,
				LogFormat:         "zap",
			},
		},
		{
			name:  "unset delay keeps sub-second value",
			args:  []string{"taskdb", "-c", "cfg.json", "-l", "text"},
			start: Config{ConnectRetryDelay: 250 * time.Millisecond},
			expected: &Config{
				ConnectRetryDelay: 250 * time.Millisecond,
				LogFormat:         "text",
			},
		},
		{
			name:        "bad int panics",
			args:        []string{"taskdb", "-m", "many"},
			expectPanic: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args
			config := tt.start

			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(&config) })
				return
			}

			require.NotPanics(t, func() { parseFlags(&config) })
			assert.Empty(t, cmp.Diff(tt.expected, &config))
		})
	}
}
