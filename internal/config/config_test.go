package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultTuning(t *testing.T) {
	c := Default()
	require.Equal(t, 60, c.GameDurationDays)
	require.Equal(t, 50_000.0, c.StartingCash)
	require.Equal(t, 0.08, c.Scheduler.SpikeChance)
	require.Equal(t, 0.65, c.Ripple.DecayPerDay)
	require.Equal(t, 2, c.Encounter.MaxPerGame)
	require.Equal(t, 10.0, c.Ledger.MaxLeverage)
}

func TestLoadOverridesAndBackfills(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.yaml")
	src := []byte(`
game_duration_days: 30
starting_cash: 10000
scheduler:
  spike_chance: 0.5
encounter:
  cooldown_days: 4
`)
	require.NoError(t, os.WriteFile(path, src, 0o644))

	c, err := Load(path)
	require.NoError(t, err)

	// Explicit values win.
	require.Equal(t, 30, c.GameDurationDays)
	require.Equal(t, 10_000.0, c.StartingCash)
	require.Equal(t, 0.5, c.Scheduler.SpikeChance)
	require.Equal(t, 4, c.Encounter.CooldownDays)

	// Everything unset falls back to the defaults.
	require.Equal(t, 0.60, c.Scheduler.RumorChance)
	require.Equal(t, 3, c.Encounter.MinDay)
	require.Equal(t, 0.01, c.Ledger.MinPrice)
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("scheduler: ["), 0o644))
	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}
