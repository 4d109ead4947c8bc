package engine

import (
	"github.com/samber/lo"

	. "github.com/ChizhovVadim/CounterBot/pkg/common"
)

// quiescence resolves captures at the horizon. Every step removes a piece,
// so the recursion is bounded by the material on the board.
func (sc *searchContext) quiescence(alpha, beta, height int) int {
	sc.nodes++
	var p = sc.position

	var moves = p.LegalMoves(false)
	if len(moves) == 0 {
		if p.IsCheck() {
			return -valueMate
		}
		return valueDraw
	}
	if p.IsDrawByRule() {
		return valueDraw
	}

	var sideSign = 1
	if !p.WhiteMove() {
		sideSign = -1
	}
	var best = sideSign * sc.evaluator.Evaluate(p)
	if best >= beta || height >= maxHeight {
		return best
	}
	if best > alpha {
		alpha = best
	}

	var captures = lo.Filter(moves, func(m Move, _ int) bool {
		return p.IsCapture(m)
	})
	for _, move := range sc.orderer.OrderList(p, captures, nil) {
		var score int
		withMove(p, move, func() {
			score = BumpMateDistance(-sc.quiescence(
				-unbumpMateDistance(beta), -unbumpMateDistance(alpha), height+1))
		})
		if score > best {
			best = score
		}
		if score > alpha {
			alpha = score
			if alpha >= beta {
				break
			}
		}
	}
	return best
}
