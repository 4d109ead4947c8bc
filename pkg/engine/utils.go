package engine

import (
	. "github.com/ChizhovVadim/CounterBot/pkg/common"
)

const (
	maxHeight     = MaxHeight - 1
	valueDraw     = 0
	valueMate     = 1_000_000
	mateBand      = 1000
	valueWin      = valueMate - mateBand
	valueLoss     = -valueWin
	valueInfinity = valueMate + 1
)

// MateIn is the score of delivering mate in the given number of plies.
func MateIn(plies int) int {
	return valueMate - plies
}

func IsMateScore(v int) bool {
	return v >= valueWin || v <= valueLoss
}

// BumpMateDistance moves a mate score one ply further from the mate.
// Other scores are returned unchanged.
func BumpMateDistance(v int) int {
	if v >= valueWin {
		return v - 1
	}
	if v <= valueLoss {
		return v + 1
	}
	return v
}

// unbumpMateDistance maps a window bound at the parent to the child's scale,
// so that BumpMateDistance(child) compares against the bound exactly.
func unbumpMateDistance(v int) int {
	if v >= valueInfinity || v <= -valueInfinity {
		return v
	}
	if v >= valueWin-1 {
		return v + 1
	}
	if v <= valueLoss+1 {
		return v - 1
	}
	return v
}

func newUciScore(v int) UciScore {
	if v >= valueWin {
		return UciScore{Mate: (valueMate - v + 1) / 2}
	} else if v <= valueLoss {
		return UciScore{Mate: (-valueMate - v) / 2}
	} else {
		return UciScore{Centipawns: v}
	}
}

// withMove runs f with m made on p. The move is undone on every exit path.
func withMove(p *Position, m Move, f func()) {
	p.MakeMove(m)
	defer p.UndoMove(m)
	f()
}

// extendPV returns a new line with m appended after the child's line.
// Lines are stored deepest move first until the root reverses them.
func extendPV(child []Move, m Move) []Move {
	var result = make([]Move, len(child), len(child)+1)
	copy(result, child)
	return append(result, m)
}
