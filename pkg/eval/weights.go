package eval

import (
	"github.com/ChizhovVadim/CounterBot/pkg/common"
)

// Weights are the tunable evaluation constants. All positional terms are in
// centipawns before PositionalWeight is applied.
type Weights struct {
	PositionalWeight float64                `yaml:"positional_weight"`
	Phase            common.PhaseThresholds `yaml:"phase"`

	CentreOccupy         int `yaml:"centre_occupy"`
	CentreAttack         int `yaml:"centre_attack"`
	ExtendedCentreAttack int `yaml:"extended_centre_attack"`
	RookOpenFile         int `yaml:"rook_open_file"`
	RookSemiOpenFile     int `yaml:"rook_semi_open_file"`

	KingSafeFile    int        `yaml:"king_safe_file"`
	KingEscape      KingEscape `yaml:"king_escape"`
	KingOffBackRank int        `yaml:"king_off_back_rank"`
	KingNoShield    int        `yaml:"king_no_shield"`
	KingOpenFile    int        `yaml:"king_open_file"`

	KingDistance       int `yaml:"king_distance"`
	KingCornering      int `yaml:"king_cornering"`
	PawnAdvance        int `yaml:"pawn_advance"`
	KingCentralization int `yaml:"king_centralization"`
	PassedPawn         int `yaml:"passed_pawn"`
}

// KingEscape is the penalty per escape square attacked by an enemy piece type.
type KingEscape struct {
	Pawn   int `yaml:"pawn"`
	Knight int `yaml:"knight"`
	Bishop int `yaml:"bishop"`
	Rook   int `yaml:"rook"`
	Queen  int `yaml:"queen"`
}

func (k KingEscape) forPiece(piece int) int {
	switch piece {
	case common.Pawn:
		return k.Pawn
	case common.Knight:
		return k.Knight
	case common.Bishop:
		return k.Bishop
	case common.Rook:
		return k.Rook
	case common.Queen:
		return k.Queen
	}
	return 0
}

func DefaultWeights() Weights {
	return Weights{
		PositionalWeight: 1,
		Phase:            common.DefaultPhaseThresholds(),

		CentreOccupy:         15,
		CentreAttack:         10,
		ExtendedCentreAttack: 4,
		RookOpenFile:         20,
		RookSemiOpenFile:     10,

		KingSafeFile: 20,
		KingEscape: KingEscape{
			Pawn:   4,
			Knight: 6,
			Bishop: 6,
			Rook:   8,
			Queen:  10,
		},
		KingOffBackRank: 25,
		KingNoShield:    15,
		KingOpenFile:    20,

		KingDistance:       8,
		KingCornering:      10,
		PawnAdvance:        6,
		KingCentralization: 8,
		PassedPawn:         25,
	}
}

// PieceValues returns the material table indexed by piece type for a phase.
// Pawns and rooks are worth more once the endgame starts.
func PieceValues(phase common.GamePhase) [common.King + 1]int {
	var values = [common.King + 1]int{
		common.Pawn:   100,
		common.Knight: 300,
		common.Bishop: 320,
		common.Rook:   500,
		common.Queen:  900,
	}
	if phase >= common.PhaseEndgame {
		values[common.Pawn] = 130
		values[common.Rook] = 550
	}
	return values
}
