package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("SEEDCTL_ORGANIZATION_ID", "")
	t.Setenv("LOG_FORMAT", "")

	cfg, err := LoadConfig("testdata/seedctl.yaml")
	require.NoError(t, err)
	assert.Equal(t, "seed-config.json", cfg.Connection)
	assert.Equal(t, 7, cfg.OrganizationID)
	assert.Equal(t, "yaml", cfg.Format)
	assert.Equal(t, 15*time.Second, cfg.Timeout)
	assert.Equal(t, "auto", cfg.LogFormat)
	assert.Contains(t, cfg.ConfigFile, "seedctl.yaml")
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("SEEDCTL_ORGANIZATION_ID", "12")

	cfg, err := LoadConfig("testdata/seedctl.yaml")
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.OrganizationID)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig("testdata/nope.yaml")
	require.Error(t, err)
}

func TestUpdateFromFlags(t *testing.T) {
	cfg := &Config{Format: "yaml", LogLevel: "warn"}

	cfg.UpdateFromFlags(true, false, true, "", "")
	assert.True(t, cfg.Verbose)
	assert.True(t, cfg.NoColor)
	assert.Equal(t, "yaml", cfg.Format, "unset flags keep file values")
	assert.Equal(t, "warn", cfg.LogLevel)

	cfg.UpdateFromFlags(false, false, false, "json", "debug")
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, "debug", cfg.LogLevel)
}
