package common

import (
	"strings"

	"github.com/dylhunn/dragontoothmg"
)

// Move wraps the rules engine encoding. The zero value is the null move.
type Move dragontoothmg.Move

const MoveEmpty = Move(0)

func (m Move) From() int {
	var dm = dragontoothmg.Move(m)
	return int(dm.From())
}

func (m Move) To() int {
	var dm = dragontoothmg.Move(m)
	return int(dm.To())
}

func (m Move) Promotion() int {
	var dm = dragontoothmg.Move(m)
	return int(dm.Promote())
}

func (m Move) String() string {
	if m == MoveEmpty {
		return "0000"
	}
	var sPromotion = ""
	if m.Promotion() != Empty {
		sPromotion = string("nbrq"[m.Promotion()-Knight])
	}
	return SquareName(m.From()) + SquareName(m.To()) + sPromotion
}

// ParseMoveLAN finds the legal move written in long algebraic notation.
func (p *Position) ParseMoveLAN(lan string) (Move, bool) {
	for _, mv := range p.LegalMoves(false) {
		if strings.EqualFold(mv.String(), lan) {
			return mv, true
		}
	}
	return MoveEmpty, false
}

// MakeMoveLAN applies a move given in long algebraic notation.
func (p *Position) MakeMoveLAN(lan string) bool {
	var mv, ok = p.ParseMoveLAN(lan)
	if !ok {
		return false
	}
	p.MakeMove(mv)
	return true
}
