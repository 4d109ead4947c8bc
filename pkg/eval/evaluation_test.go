package eval

import (
	"testing"

	"github.com/ChizhovVadim/CounterBot/pkg/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testFENs = []string{
	common.InitialPositionFen,
	"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
	"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
	"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
	"r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/P1NP1N2/1PP1QPPP/R4RK1 w - - 0 10",
	"8/8/3k4/8/3K4/8/4P3/8 w - - 0 50",
	"6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 40",
}

func TestEvalMirror(t *testing.T) {
	var e = NewEvaluationService(DefaultWeights())
	for _, fen := range testFENs {
		var p, err = common.NewPositionFromFEN(fen)
		require.NoError(t, err)
		var mirror, err2 = common.NewPositionFromFEN(common.MirrorFEN(fen))
		require.NoError(t, err2)
		assert.Equal(t, e.Evaluate(p), -e.Evaluate(mirror), fen)
		assert.Equal(t, e.Phase(p), e.Phase(mirror), fen)
	}
}

func TestEvalStartPosition(t *testing.T) {
	var p, err = common.NewPositionFromFEN(common.InitialPositionFen)
	require.NoError(t, err)
	assert.Equal(t, 0, NewEvaluationService(DefaultWeights()).Evaluate(p))
}

func TestMaterialOnly(t *testing.T) {
	var w = DefaultWeights()
	w.PositionalWeight = 0
	var e = NewEvaluationService(w)

	// white is a knight up in the opening
	var p, err = common.NewPositionFromFEN("rnbqkb1r/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1")
	require.NoError(t, err)
	assert.Equal(t, amplify(300, 3640), e.Evaluate(p))
	assert.Greater(t, e.Evaluate(p), 300)
}

func TestAmplification(t *testing.T) {
	// same difference counts for more when the weaker side has less left
	assert.Greater(t, amplify(100, 0), amplify(100, 1000))
	assert.Equal(t, 600, amplify(100, 0))
	assert.Equal(t, -amplify(250, 800), amplify(-250, 800))
}

func TestPieceValues(t *testing.T) {
	var opening = PieceValues(common.PhaseOpening)
	var endgame = PieceValues(common.PhaseEndgame)
	assert.Equal(t, 100, opening[common.Pawn])
	assert.Equal(t, 900, opening[common.Queen])
	assert.Greater(t, endgame[common.Pawn], opening[common.Pawn])
	assert.Greater(t, endgame[common.Rook], opening[common.Rook])
	assert.Equal(t, opening[common.Knight], endgame[common.Knight])
}

func TestEndgameKingActivity(t *testing.T) {
	var w = DefaultWeights()
	var e = NewEvaluationService(w)
	// white is a rook up: a closer white king and a cornered black king score higher
	var near, err = common.NewPositionFromFEN("7k/8/5K2/8/8/8/8/R7 w - - 0 60")
	require.NoError(t, err)
	far, err := common.NewPositionFromFEN("8/8/8/3k4/8/8/8/R6K w - - 0 60")
	require.NoError(t, err)
	assert.Greater(t, e.Evaluate(near), e.Evaluate(far))
}

func TestPassedPawn(t *testing.T) {
	var e = NewEvaluationService(DefaultWeights())
	var free, err = common.NewPositionFromFEN("4k3/8/8/8/8/8/P7/4K3 w - - 0 60")
	require.NoError(t, err)
	require.GreaterOrEqual(t, e.Phase(free), common.PhaseEndgame)
	var base = e.endgame(free, common.SideWhite, false)

	var tests = []struct {
		fen    string
		passed bool
	}{
		// b4 attacks the stop square a3
		{"4k3/8/8/8/1p6/8/P7/4K3 w - - 0 60", false},
		// a3 stands on the stop square
		{"4k3/8/8/8/8/p7/P7/4K3 w - - 0 60", false},
		// b7 is ahead but does not reach a3 yet
		{"4k3/1p6/8/8/8/8/P7/4K3 w - - 0 60", true},
		// c4 attacks b3 and d3, not a3
		{"4k3/8/8/8/2p5/8/P7/4K3 w - - 0 60", true},
	}
	for _, test := range tests {
		var p, err = common.NewPositionFromFEN(test.fen)
		require.NoError(t, err)
		var want = base
		if !test.passed {
			want -= e.PassedPawn
		}
		assert.Equal(t, want, e.endgame(p, common.SideWhite, false), test.fen)
	}
}

func TestIsPassedBlack(t *testing.T) {
	// black pawn on h7, stop square h6
	assert.True(t, isPassed(common.SquareH7, common.SideBlack, 0))
	assert.False(t, isPassed(common.SquareH7, common.SideBlack, common.SquareMask[common.SquareG5]))
	assert.True(t, isPassed(common.SquareH7, common.SideBlack, common.SquareMask[common.SquareG4]))
	assert.False(t, isPassed(common.SquareH7, common.SideBlack, common.SquareMask[common.SquareH6]))
}
