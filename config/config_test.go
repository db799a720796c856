package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "LOG_LEVEL", "TICK_INTERVAL", "ORDER_ID_POLICY", "STRICT_LOOKUPS", "DB_DSN"} {
		t.Setenv(k, "")
	}
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, time.Minute, cfg.TickInterval)
	assert.Equal(t, "length", cfg.IDPolicy)
	assert.False(t, cfg.StrictLookups)
	assert.Equal(t, DefaultDSN, cfg.DBDSN)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("TICK_INTERVAL", "2s")
	t.Setenv("ORDER_ID_POLICY", "sequence")
	t.Setenv("STRICT_LOOKUPS", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 2*time.Second, cfg.TickInterval)
	assert.Equal(t, "sequence", cfg.IDPolicy)
	assert.True(t, cfg.StrictLookups)
}

func TestLoad_BadValues(t *testing.T) {
	t.Setenv("TICK_INTERVAL", "soon")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("TICK_INTERVAL", "-1s")
	_, err = Load()
	assert.Error(t, err)

	t.Setenv("TICK_INTERVAL", "1m")
	t.Setenv("STRICT_LOOKUPS", "maybe")
	_, err = Load()
	assert.Error(t, err)
}

func TestInitDB_Migrates(t *testing.T) {
	db, err := InitDB("file:config_test?mode=memory&cache=shared")
	require.NoError(t, err)
	assert.True(t, db.Migrator().HasTable("stage_histories"))
}
