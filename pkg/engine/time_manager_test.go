package engine

import (
	"testing"
	"time"

	"github.com/ChizhovVadim/CounterBot/pkg/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalcLimits(t *testing.T) {
	var soft, hard = calcLimits(60*time.Second, 0, 0)
	assert.Less(t, soft, hard)
	assert.Greater(t, soft, time.Duration(0))

	soft, hard = calcLimits(10*time.Millisecond, 0, 0)
	assert.Equal(t, time.Millisecond, soft)
	assert.Equal(t, time.Millisecond, hard)

	soft, hard = calcLimits(41*time.Second+300*time.Millisecond, time.Second, 40)
	assert.Equal(t, (time.Second+time.Second)*7/10, soft)
	assert.Equal(t, (time.Second+time.Second)*21/10, hard)
}

func TestTimeManagerLimits(t *testing.T) {
	var p, err = common.NewPositionFromFEN(common.InitialPositionFen)
	require.NoError(t, err)

	var tm = newTimeManager(fixedTimer(0), common.LimitsType{MoveTime: 500}, time.Second, p)
	assert.Equal(t, 500*time.Millisecond, tm.hardLimit)

	tm = newTimeManager(fixedTimer(0), common.LimitsType{}, time.Second, p)
	assert.Equal(t, time.Second, tm.softLimit)
	assert.False(t, tm.OnIterationComplete(3, 10))
	assert.True(t, tm.OnIterationComplete(3, MateIn(5)))

	tm = newTimeManager(fixedTimer(time.Minute), common.LimitsType{Depth: 6}, time.Second, p)
	assert.False(t, tm.IsHardLimitReached(0), "depth search ignores think time")
	assert.False(t, tm.OnIterationComplete(5, 0))
	assert.True(t, tm.OnIterationComplete(6, 0))

	tm = newTimeManager(fixedTimer(time.Minute), common.LimitsType{Infinite: true}, time.Second, p)
	assert.False(t, tm.OnIterationComplete(20, MateIn(1)))

	tm = newTimeManager(fixedTimer(0), common.LimitsType{Nodes: 1000}, time.Second, p)
	assert.False(t, tm.IsHardLimitReached(999))
	assert.True(t, tm.IsHardLimitReached(1000))

	tm = newTimeManager(fixedTimer(4*time.Second), common.LimitsType{WhiteTime: 60_000, BlackTime: 1}, 0, p)
	assert.True(t, tm.IsHardLimitReached(0))
}
