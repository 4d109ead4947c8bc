package engine

import (
	"testing"

	"github.com/ChizhovVadim/CounterBot/pkg/common"
	"github.com/ChizhovVadim/CounterBot/pkg/eval"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrderer(p *common.Position) *moveOrderer {
	var phase = common.Phase(p)
	var values = eval.PieceValues(phase)
	return &moveOrderer{values: &values, phase: phase}
}

func moveStrings(ml []common.Move) []string {
	var result = make([]string, len(ml))
	for i, m := range ml {
		result[i] = m.String()
	}
	return result
}

func TestOrderCheckFirst(t *testing.T) {
	var p, err = common.NewPositionFromFEN("6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1")
	require.NoError(t, err)
	var ordered = newTestOrderer(p).Order(p, false, nil)
	assert.Equal(t, "a1a8", ordered[0].String())
	assert.ElementsMatch(t, moveStrings(p.LegalMoves(false)), moveStrings(ordered))
}

func TestOrderCaptureValue(t *testing.T) {
	var p, err = common.NewPositionFromFEN("4k3/8/8/3q4/8/2N5/8/4K3 w - - 0 1")
	require.NoError(t, err)
	var ordered = newTestOrderer(p).Order(p, false, nil)
	assert.Equal(t, "c3d5", ordered[0].String())

	var captures = newTestOrderer(p).Order(p, true, nil)
	assert.Equal(t, []string{"c3d5"}, moveStrings(captures))
}

func TestOrderPriority(t *testing.T) {
	var p, err = common.NewPositionFromFEN("4k3/8/8/3q4/8/2N5/8/4K3 w - - 0 1")
	require.NoError(t, err)
	var first, _ = p.ParseMoveLAN("e1f2")
	var second, _ = p.ParseMoveLAN("c3b1")
	var illegal, _ = common.NewPositionFromFEN(common.InitialPositionFen)
	var foreign = illegal.LegalMoves(false)[0]

	var ordered = newTestOrderer(p).Order(p, false, []common.Move{first, foreign, second})
	assert.Equal(t, first, ordered[0])
	assert.Equal(t, second, ordered[1])
	assert.Equal(t, "c3d5", ordered[2].String())
	assert.Len(t, ordered, len(p.LegalMoves(false)))
}

func TestOrderPawnAttackedSquare(t *testing.T) {
	var p, err = common.NewPositionFromFEN("4k3/8/8/8/2p5/8/1N6/4K3 w - - 0 1")
	require.NoError(t, err)
	var ordered = moveStrings(newTestOrderer(p).Order(p, false, nil))
	assert.Equal(t, "b2c4", ordered[0])
	assert.Equal(t, "b2d3", ordered[len(ordered)-1])
}

func TestOrderStable(t *testing.T) {
	var p, err = common.NewPositionFromFEN(common.InitialPositionFen)
	require.NoError(t, err)
	// no move from the initial position scores anything, so order is generation order
	assert.Equal(t, p.LegalMoves(false), newTestOrderer(p).Order(p, false, nil))

	var ml = []orderedMove{{Key: 1}, {Move: 1, Key: 2}, {Move: 2, Key: 1}, {Move: 3, Key: 2}}
	sortMoves(ml)
	assert.Equal(t, []orderedMove{{Move: 1, Key: 2}, {Move: 3, Key: 2}, {Key: 1}, {Move: 2, Key: 1}}, ml)
}

func TestOrderKeepsPosition(t *testing.T) {
	var p, err = common.NewPositionFromFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	require.NoError(t, err)
	var fen = p.FEN()
	newTestOrderer(p).Order(p, false, nil)
	assert.Equal(t, fen, p.FEN())
	assert.Equal(t, 0, p.Height())
}
