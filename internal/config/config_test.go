package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, StoreMemory, cfg.Store)
	assert.Empty(t, cfg.StaticPath)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, cfg.Metrics)
	assert.Equal(t, ":8080", cfg.Addr())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("TRIPLEDGER_PORT", "9090")
	t.Setenv("TRIPLEDGER_STORE", "sqlite")
	t.Setenv("TRIPLEDGER_STATIC_PATH", "/srv/static")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("TRIPLEDGER_METRICS", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, StoreSQLite, cfg.Store)
	assert.Equal(t, "/srv/static", cfg.StaticPath)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.False(t, cfg.Metrics)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
		want  string
	}{
		{"port not a number", "TRIPLEDGER_PORT", "abc", "parse env:"},
		{"port out of range", "TRIPLEDGER_PORT", "70000", "invalid port"},
		{"unknown store", "TRIPLEDGER_STORE", "postgres", "unknown store"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
