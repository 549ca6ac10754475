package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agvfleet/scheduler/config"
)

func TestDefault_IsValid(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, cfg.Validate())
	assert.Len(t, cfg.Fleet, 3)
	assert.True(t, cfg.ChargingStationDeclared())
}

func TestLoad_NoPathReturnsDefault(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Metrics.Address)
}

func TestLoad_YAMLOverridesMetricsAddress(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sim.yaml")
	require.NoError(t, os.WriteFile(path, []byte("metrics:\n  address: \":9999\"\n"), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9999", cfg.Metrics.Address)
	// Untouched fields keep their defaults.
	assert.Len(t, cfg.Fleet, 3)
}

func TestLoad_EnvOverlayWinsOverFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sim.yaml")
	require.NoError(t, os.WriteFile(path, []byte("metrics:\n  address: \":9999\"\n"), 0o644))

	t.Setenv("AGV_SCHED_METRICS__ADDRESS", ":7777")
	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":7777", cfg.Metrics.Address)
}

func TestLoad_RejectsUnknownExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sim.toml")
	require.NoError(t, os.WriteFile(path, []byte("x=1"), 0o644))

	_, err := config.Load(path)
	assert.Error(t, err)
}

func TestValidate_RejectsUndeclaredStation(t *testing.T) {
	cfg := config.Default()
	cfg.Fleet = append(cfg.Fleet, config.AGVConfig{ID: "AGV-X", Station: 999})
	assert.Error(t, cfg.Validate())
}
