package engine

import (
	"github.com/samber/lo"

	. "github.com/ChizhovVadim/CounterBot/pkg/common"
)

const sortTableKeyImportant = 100000

type orderedMove struct {
	Move Move
	Key  int
}

// moveOrderer ranks moves so that likely cutoffs are searched first.
type moveOrderer struct {
	values *[King + 1]int
	phase  GamePhase
}

// Order returns the legal moves of p, priority moves first in the order given,
// then the rest by descending heuristic score. Ties keep generation order.
func (mo *moveOrderer) Order(p *Position, capturesOnly bool, priority []Move) []Move {
	return mo.OrderList(p, p.LegalMoves(capturesOnly), priority)
}

// OrderList orders already generated legal moves of p.
func (mo *moveOrderer) OrderList(p *Position, moves []Move, priority []Move) []Move {
	var enemyPawnAttacks = p.PawnAttacks(!p.WhiteMove())
	var ml = make([]orderedMove, len(moves))
	for i, m := range moves {
		var key int
		if index := lo.IndexOf(priority, m); index >= 0 {
			key = sortTableKeyImportant + len(priority) - index
		} else {
			key = mo.score(p, m, enemyPawnAttacks)
		}
		ml[i] = orderedMove{Move: m, Key: key}
	}
	sortMoves(ml)
	return lo.Map(ml, func(om orderedMove, _ int) Move {
		return om.Move
	})
}

func (mo *moveOrderer) score(p *Position, m Move, enemyPawnAttacks uint64) int {
	var score = 0
	var moving = p.MovingPiece(m)
	var captured = p.CapturedPiece(m)

	if captured != Empty {
		score += 5 + (mo.values[captured]-mo.values[moving])/100
	}
	if m.Promotion() != Empty {
		score += 9
	}
	if p.IsCastling(m) {
		score += 1
	} else if moving == King && mo.phase < PhaseEndgame {
		score -= 1
	}
	if p.IsEnPassant(m) {
		score += 1
	}
	if moving != Pawn && captured == Empty && enemyPawnAttacks&SquareMask[m.To()] != 0 {
		score -= mo.values[moving] / 100
	}

	withMove(p, m, func() {
		if p.IsCheck() {
			score += 20
		}
	})
	return score
}

func sortMoves(moves []orderedMove) {
	for i := 1; i < len(moves); i++ {
		j, t := i, moves[i]
		for ; j > 0 && moves[j-1].Key < t.Key; j-- {
			moves[j] = moves[j-1]
		}
		moves[j] = t
	}
}
