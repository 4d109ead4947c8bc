package eval

import (
	"math"

	. "github.com/ChizhovVadim/CounterBot/pkg/common"
)

// safe king files: a, b, c, g, h
const kingSafeFiles = FileAMask | FileBMask | FileCMask | FileGMask | FileHMask

// EvaluationService scores positions from white's point of view.
// Terminal states (mate, draw) are the caller's business.
type EvaluationService struct {
	Weights
}

func NewEvaluationService(w Weights) *EvaluationService {
	return &EvaluationService{Weights: w}
}

func (e *EvaluationService) Phase(p *Position) GamePhase {
	return e.Weights.Phase.Phase(p)
}

func (e *EvaluationService) PieceValues(phase GamePhase) [King + 1]int {
	return PieceValues(phase)
}

func (e *EvaluationService) Evaluate(p *Position) int {
	var phase = e.Phase(p)
	var values = PieceValues(phase)

	var matWhite = material(p, SideWhite, &values)
	var matBlack = material(p, SideBlack, &values)
	var eval = amplify(matWhite-matBlack, Min(matWhite, matBlack))

	if e.PositionalWeight != 0 {
		var positional = e.positional(p, SideWhite, phase, matWhite, matBlack) -
			e.positional(p, SideBlack, phase, matBlack, matWhite)
		eval += int(float64(positional) * e.PositionalWeight)
	}
	return eval
}

func material(p *Position, side bool, values *[King + 1]int) int {
	var result = 0
	for piece := Pawn; piece <= Queen; piece++ {
		result += values[piece] * p.PieceCount(side, piece)
	}
	return result
}

// amplify grows the material difference as the weaker side runs out of material.
func amplify(diff, weakerMaterial int) int {
	var multiplier = 5*math.Exp(-0.2*float64(weakerMaterial)/100) + 1
	return int(float64(diff) * multiplier)
}

func (e *EvaluationService) positional(p *Position, side bool, phase GamePhase, own, other int) int {
	if phase >= PhaseEndgame {
		return e.endgame(p, side, own > other)
	}
	return e.centre(p, side) + e.rooks(p, side) + e.kingSafety(p, side, phase)
}

func (e *EvaluationService) endgame(p *Position, side bool, leading bool) int {
	var result = 0
	var king = p.KingSquare(side)
	var enemyKing = p.KingSquare(!side)
	if leading {
		result += (14 - ManhattanDistance(king, enemyKing)) * e.KingDistance
		result += CentreDistance(enemyKing) * e.KingCornering
	}
	result += (6 - CentreDistance(king)) * e.KingCentralization

	var enemyPawns = p.Pieces(!side, Pawn)
	for x := p.Pieces(side, Pawn); x != 0; x &= x - 1 {
		var sq = FirstOne(x)
		var rank = RelativeRank(sq, side)
		result += (rank - Rank2) * e.PawnAdvance
		if isPassed(sq, side, enemyPawns) {
			result += e.PassedPawn
		}
	}
	return result
}

// isPassed reports that no enemy pawn stands on or attacks the stop square.
func isPassed(sq int, side bool, enemyPawns uint64) bool {
	var stop = sq + 8
	if !side {
		stop = sq - 8
	}
	return (SquareMask[stop]|PawnAttacks(stop, side))&enemyPawns == 0
}

func (e *EvaluationService) centre(p *Position, side bool) int {
	var result = 0
	var ring = ExtendedCentreMask &^ CentreMask
	for _, piece := range [...]int{Pawn, Knight, Bishop} {
		var pieces = p.Pieces(side, piece)
		result += PopCount(pieces&CentreMask) * e.CentreOccupy
		for x := pieces; x != 0; x &= x - 1 {
			var attacks = p.AttacksFrom(piece, side, FirstOne(x))
			result += PopCount(attacks&CentreMask)*e.CentreAttack +
				PopCount(attacks&ring)*e.ExtendedCentreAttack
		}
	}
	return result
}

func (e *EvaluationService) rooks(p *Position, side bool) int {
	var result = 0
	var ownPawns = p.Pieces(side, Pawn)
	var allPawns = ownPawns | p.Pieces(!side, Pawn)
	for x := p.Pieces(side, Rook); x != 0; x &= x - 1 {
		var file = FileMask[File(FirstOne(x))]
		if file&allPawns == 0 {
			result += e.RookOpenFile
		} else if file&ownPawns == 0 {
			result += e.RookSemiOpenFile
		}
	}
	return result
}

func (e *EvaluationService) kingSafety(p *Position, side bool, phase GamePhase) int {
	var result = 0
	var king = p.KingSquare(side)
	var kingMask = SquareMask[king]
	var ownPawns = p.Pieces(side, Pawn)

	if kingMask&kingSafeFiles != 0 {
		result += e.KingSafeFile
	}

	var escape = KingAttacks[king]
	var attacked = 0
	for piece := Pawn; piece <= Queen; piece++ {
		attacked += PopCount(escape&p.AttacksBy(!side, piece)) * e.KingEscape.forPiece(piece)
	}
	result -= attacked * int(PhaseEndgame-phase) / int(PhaseEndgame)

	if RelativeRank(king, side) != Rank1 {
		result -= e.KingOffBackRank
	}
	if escape&ownPawns == 0 {
		result -= e.KingNoShield
	}
	if FileMask[File(king)]&(ownPawns|p.Pieces(!side, Pawn)) == 0 {
		result -= e.KingOpenFile
	}
	return result
}
