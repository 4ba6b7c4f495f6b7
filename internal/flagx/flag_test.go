package flagx

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name         string
		args         []string
		allowedFlags []string
		want         []string
	}{
		{
			name:         "separate value",
			args:         []string{"-d", "postgres://db", "-x", "1"},
			allowedFlags: []string{"-d"},
			want:         []string{"-d", "postgres://db"},
		},
		{
			name:         "equals form",
			args:         []string{"-driver=sqlite", "-x", "1"},
			allowedFlags: []string{"-driver"},
			want:         []string{"-driver=sqlite"},
		},
		{
			name:         "unknown flags and positionals ignored",
			args:         []string{"-x", "1", "--y=2", "positional"},
			allowedFlags: []string{"-d"},
			want:         []string{},
		},
		{
			name:         "flag without value at end",
			args:         []string{"-d"},
			allowedFlags: []string{"-d"},
			want:         []string{"-d"},
		},
		{
			name:         "next dash token is not a value",
			args:         []string{"-d", "-m", "4"},
			allowedFlags: []string{"-d", "-m"},
			want:         []string{"-d", "-m", "4"},
		},
		{
			name:         "value containing equals sign",
			args:         []string{"-d", "file:tasks.db?_pragma=foreign_keys(1)"},
			allowedFlags: []string{"-d"},
			want:         []string{"-d", "file:tasks.db?_pragma=foreign_keys(1)"},
		},
		{
			name:         "repeated flag keeps order",
			args:         []string{"-c", "one.json", "-c", "two.json"},
			allowedFlags: []string{"-c"},
			want:         []string{"-c", "one.json", "-c", "two.json"},
		},
		{
			name:         "empty args",
			args:         []string{},
			allowedFlags: []string{"-c"},
			want:         []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowedFlags))
		})
	}
}

func TestJsonConfigFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	t.Run("short -c", func(t *testing.T) {
		os.Args = []string{"taskdb", "-c", "/etc/taskdb.json", "-driver", "sqlite"}
		assert.Equal(t, "/etc/taskdb.json", JsonConfigFlags())
	})

	t.Run("long -config with equals", func(t *testing.T) {
		os.Args = []string{"taskdb", "-config=/etc/taskdb.json"}
		assert.Equal(t, "/etc/taskdb.json", JsonConfigFlags())
	})

	t.Run("absent", func(t *testing.T) {
		os.Args = []string{"taskdb", "-d", "dsn"}
		assert.Empty(t, JsonConfigFlags())
	})

	t.Run("last wins", func(t *testing.T) {
		os.Args = []string{"taskdb", "-c", "/a.json", "-config", "/b.json"}
		assert.Equal(t, "/b.json", JsonConfigFlags())
	})
}
