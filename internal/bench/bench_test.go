package bench

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ChizhovVadim/CounterBot/internal/config"
)

func benchConfig(workers int) config.Config {
	var cfg = config.Default()
	cfg.Bench.Depth = 2
	cfg.Bench.Workers = workers
	return cfg
}

func TestRun(t *testing.T) {
	var result, err = Run(context.Background(), benchConfig(3), DefaultFENs)
	require.NoError(t, err)
	require.Len(t, result.Positions, len(DefaultFENs))

	var total int64
	for i, r := range result.Positions {
		assert.Equal(t, DefaultFENs[i], r.FEN)
		assert.NotZero(t, r.Move, r.FEN)
		if r.Score.Mate != 0 {
			// a found mate ends the search early
			assert.LessOrEqual(t, r.Depth, 2, r.FEN)
		} else {
			assert.Equal(t, 2, r.Depth, r.FEN)
		}
		total += r.Nodes
	}
	assert.Equal(t, total, result.Nodes)

	var mate = result.Positions[len(DefaultFENs)-1]
	require.Equal(t, "6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1", mate.FEN)
	assert.Equal(t, 1, mate.Score.Mate)
	assert.Equal(t, 1, mate.Depth)
	assert.Equal(t, "a1a8", mate.Move.String())
	assert.Positive(t, result.NPS())
}

func TestRunDeterministicAcrossWorkers(t *testing.T) {
	var single, err = Run(context.Background(), benchConfig(1), DefaultFENs)
	require.NoError(t, err)
	multi, err := Run(context.Background(), benchConfig(4), DefaultFENs)
	require.NoError(t, err)
	for i := range single.Positions {
		assert.Equal(t, single.Positions[i].Move, multi.Positions[i].Move)
		assert.Equal(t, single.Positions[i].Nodes, multi.Positions[i].Nodes)
		assert.Equal(t, single.Positions[i].Score, multi.Positions[i].Score)
	}
}

func TestRunInvalidFEN(t *testing.T) {
	var _, err = Run(context.Background(), benchConfig(2), []string{"not a fen"})
	assert.Error(t, err)
}

func TestRunCancelled(t *testing.T) {
	var ctx, cancel = context.WithCancel(context.Background())
	cancel()
	var _, err = Run(ctx, benchConfig(2), DefaultFENs)
	assert.ErrorIs(t, err, context.Canceled)
}
