package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ChizhovVadim/CounterBot/pkg/common"
	"github.com/ChizhovVadim/CounterBot/pkg/eval"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	var path = filepath.Join(t.TempDir(), "counterbot.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	var config, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, Default().Engine.ThinkTime, config.Engine.ThinkTime)
	assert.Equal(t, 1.0, config.Eval.PositionalWeight)
	assert.Equal(t, "info", config.LogLevel)
}

func TestLoadOverridesDefaults(t *testing.T) {
	var path = writeConfig(t, `
log_level: debug
engine:
  think_time: 500ms
  cache_ceiling: 5000
  use_trans_cache: false
eval:
  positional_weight: 0.5
  king_escape:
    queen: 12
  phase:
    opening_plies: 10
bench:
  workers: 3
`)
	var config, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", config.LogLevel)
	assert.Equal(t, 500*time.Millisecond, config.Engine.ThinkTime)
	assert.Equal(t, 5000, config.Engine.CacheCeiling)
	assert.False(t, config.Engine.UseTransCache)
	assert.Equal(t, 4, config.Engine.ExtensionLimit)
	assert.Equal(t, 0.5, config.Eval.PositionalWeight)
	assert.Equal(t, 12, config.Eval.KingEscape.Queen)
	assert.Equal(t, eval.DefaultWeights().KingEscape.Rook, config.Eval.KingEscape.Rook)
	assert.Equal(t, 10, config.Eval.Phase.OpeningPlies)
	assert.Equal(t, common.DefaultPhaseThresholds().EarlyPlies, config.Eval.Phase.EarlyPlies)
	assert.Equal(t, 3, config.Bench.Workers)
	assert.Equal(t, 200, config.Arena.MaxPlies)
}

func TestLoadEmptyFile(t *testing.T) {
	var config, err = Load(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, Default().Engine.CacheCeiling, config.Engine.CacheCeiling)
}

func TestLoadErrors(t *testing.T) {
	var tests = []struct {
		name    string
		content string
	}{
		{"unknown field", "engine:\n  hash: 10\n"},
		{"bad duration", "engine:\n  think_time: soon\n"},
		{"zero think time", "engine:\n  think_time: 0s\n"},
		{"zero ceiling", "engine:\n  cache_ceiling: 0\n"},
		{"negative extensions", "engine:\n  extension_limit: -1\n"},
		{"negative weight", "eval:\n  positional_weight: -1\n"},
		{"phase order", "eval:\n  phase:\n    endgame_pieces: 20\n"},
		{"log level", "log_level: loud\n"},
		{"bench workers", "bench:\n  workers: 0\n"},
		{"arena limits", "arena:\n  depth: 0\n"},
		{"arena weight", "arena:\n  opponent_positional_weight: -0.5\n"},
	}
	for _, test := range tests {
		var _, err = Load(writeConfig(t, test.content))
		assert.Error(t, err, test.name)
	}

	var _, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
