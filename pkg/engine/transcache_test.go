package engine

import (
	"testing"

	"github.com/ChizhovVadim/CounterBot/pkg/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransCacheDepth(t *testing.T) {
	var tc = NewTransCache(100)
	tc.Store(1, 3, SearchResult{Score: 42}, boundExact)

	var r, ok = tc.Lookup(1, 3, -valueInfinity, valueInfinity)
	require.True(t, ok)
	assert.Equal(t, 42, r.Score)

	_, ok = tc.Lookup(1, 2, -valueInfinity, valueInfinity)
	assert.True(t, ok, "deeper result serves a shallower query")

	_, ok = tc.Lookup(1, 4, -valueInfinity, valueInfinity)
	assert.False(t, ok, "shallower result is never trusted")

	_, ok = tc.Lookup(2, 0, -valueInfinity, valueInfinity)
	assert.False(t, ok)
}

func TestTransCacheBounds(t *testing.T) {
	var tc = NewTransCache(100)
	tc.Store(1, 2, SearchResult{Score: 50}, boundLower)
	tc.Store(2, 2, SearchResult{Score: -50}, boundUpper)

	var _, ok = tc.Lookup(1, 2, 0, 40)
	assert.True(t, ok, "lower bound above beta")
	_, ok = tc.Lookup(1, 2, 0, 60)
	assert.False(t, ok, "lower bound inside window")

	_, ok = tc.Lookup(2, 2, -40, 0)
	assert.True(t, ok, "upper bound below alpha")
	_, ok = tc.Lookup(2, 2, -60, 0)
	assert.False(t, ok, "upper bound inside window")

	assert.Equal(t, boundUpper, boundFor(-10, -10, 10))
	assert.Equal(t, boundLower, boundFor(10, -10, 10))
	assert.Equal(t, boundExact, boundFor(0, -10, 10))
}

func TestTransCacheReplace(t *testing.T) {
	var tc = NewTransCache(100)
	tc.Store(1, 5, SearchResult{Score: 1}, boundExact)
	tc.Store(1, 4, SearchResult{Score: 2}, boundExact)
	var r, _ = tc.Lookup(1, 0, -valueInfinity, valueInfinity)
	assert.Equal(t, 1, r.Score, "shallower store keeps the deeper entry")

	tc.Store(1, 5, SearchResult{Score: 3}, boundExact)
	r, _ = tc.Lookup(1, 0, -valueInfinity, valueInfinity)
	assert.Equal(t, 3, r.Score, "equal depth replaces")
}

func TestTransCacheClearIfFull(t *testing.T) {
	var tc = NewTransCache(3)
	for key := uint64(0); key < 3; key++ {
		tc.Store(key, 1, SearchResult{}, boundExact)
	}
	assert.Equal(t, 0, tc.ClearIfFull())
	assert.Equal(t, 3, tc.Len())

	tc.Store(3, 1, SearchResult{}, boundExact)
	assert.Equal(t, 4, tc.ClearIfFull())
	assert.Equal(t, 0, tc.Len())
}

func TestTransCacheBestMove(t *testing.T) {
	var p, err = common.NewPositionFromFEN(common.InitialPositionFen)
	require.NoError(t, err)
	var moves = p.LegalMoves(false)

	var tc = NewTransCache(10)
	var _, ok = tc.BestMove(7)
	assert.False(t, ok)

	// lines are kept deepest move first
	tc.Store(7, 2, SearchResult{PV: []common.Move{moves[3], moves[5]}}, boundExact)
	m, ok := tc.BestMove(7)
	require.True(t, ok)
	assert.Equal(t, moves[5], m)
}
