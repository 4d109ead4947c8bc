package engine

import (
	"testing"

	"github.com/ChizhovVadim/CounterBot/pkg/common"
	"github.com/stretchr/testify/assert"
)

func TestMateCodec(t *testing.T) {
	assert.True(t, IsMateScore(MateIn(1)))
	assert.True(t, IsMateScore(-MateIn(7)))
	assert.True(t, IsMateScore(valueWin))
	assert.False(t, IsMateScore(valueWin-1))
	assert.False(t, IsMateScore(0))

	// shorter mates compare better for the winner
	assert.Greater(t, MateIn(1), MateIn(3))
	assert.Greater(t, MateIn(mateBand-1), 100_000)

	assert.Equal(t, MateIn(2), BumpMateDistance(MateIn(1)))
	assert.Equal(t, -MateIn(2), BumpMateDistance(-MateIn(1)))
	assert.Equal(t, 250, BumpMateDistance(250))
	assert.Equal(t, -valueWin+1, BumpMateDistance(-valueWin))
}

func TestUnbumpWindow(t *testing.T) {
	// a child score x passes the translated bound exactly when its bumped value passes the original
	var bounds = []int{-valueInfinity, -valueMate, valueLoss - 1, valueLoss, valueLoss + 1, valueLoss + 2,
		-5, 0, 5, valueWin - 2, valueWin - 1, valueWin, valueWin + 1, valueMate, valueInfinity}
	for _, bound := range bounds {
		var u = unbumpMateDistance(bound)
		for _, x := range scoresNearMate() {
			if x <= u {
				assert.LessOrEqual(t, BumpMateDistance(x), bound, "x=%d bound=%d", x, bound)
			}
			if x >= u {
				assert.GreaterOrEqual(t, BumpMateDistance(x), bound, "x=%d bound=%d", x, bound)
			}
		}
	}
}

func scoresNearMate() []int {
	var result []int
	for x := -valueMate; x <= valueLoss+5; x++ {
		result = append(result, x)
	}
	for x := -5; x <= 5; x++ {
		result = append(result, x)
	}
	for x := valueWin - 5; x <= valueMate; x++ {
		result = append(result, x)
	}
	return result
}

func TestUciScore(t *testing.T) {
	assert.Equal(t, common.UciScore{Mate: 1}, newUciScore(MateIn(1)))
	assert.Equal(t, common.UciScore{Mate: 2}, newUciScore(MateIn(3)))
	assert.Equal(t, common.UciScore{Mate: -1}, newUciScore(-MateIn(2)))
	assert.Equal(t, common.UciScore{Centipawns: 35}, newUciScore(35))
}

func TestExtendPV(t *testing.T) {
	var p, _ = common.NewPositionFromFEN(common.InitialPositionFen)
	var moves = p.LegalMoves(false)
	var child = make([]common.Move, 1, 4)
	child[0] = moves[0]
	var a = extendPV(child, moves[1])
	var b = extendPV(child, moves[2])
	assert.Equal(t, []common.Move{moves[0], moves[1]}, a)
	assert.Equal(t, []common.Move{moves[0], moves[2]}, b)
}
