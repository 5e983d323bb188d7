package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hammamikhairi/ottobrew/internal/domain"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ottobrew.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	require.NoError(t, cfg.Validate())
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
machine:
  power_watts: 1500
  min_brew: 3s
  max_brew: 4s
audio:
  enabled: false
refill:
  coffee: 25
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 1500.0, cfg.Machine.PowerWatts)
	assert.False(t, cfg.Audio.Enabled)
	assert.Equal(t, 25.0, cfg.Refill.Step(domain.Coffee))
	assert.Equal(t, 100.0, cfg.Refill.Step(domain.Water), "untouched fields keep defaults")

	min, max, err := cfg.BrewBounds()
	require.NoError(t, err)
	assert.Equal(t, 3*time.Second, min)
	assert.Equal(t, 4*time.Second, max)
}

func TestLoadExpandsEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("OTTOBREW_HOME", dir)

	path := writeConfig(t, `
storage:
  snapshot_path: ${OTTOBREW_HOME}/state.json
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, dir+"/state.json", cfg.Storage.SnapshotPath)
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"zero power", "machine:\n  power_watts: 0\n"},
		{"bad duration", "machine:\n  min_brew: soon\n"},
		{"min above max", "machine:\n  min_brew: 4s\n  max_brew: 3s\n"},
		{"min below range", "machine:\n  min_brew: 1s\n"},
		{"max above range", "machine:\n  max_brew: 8s\n"},
		{"negative refill", "refill:\n  milk: -10\n"},
		{"loud volume", "audio:\n  volume: 3\n"},
		{"unknown log level", "log:\n  level: shouty\n"},
		{"missing snapshot path", "storage:\n  snapshot_path: \"\"\n"},
		{"not yaml", "machine: [unclosed\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestEphemeralNeedsNoPath(t *testing.T) {
	cfg, err := Load(writeConfig(t, "storage:\n  snapshot_path: \"\"\n  ephemeral: true\n"))
	require.NoError(t, err)
	assert.True(t, cfg.Storage.Ephemeral)
}
