package common

// GamePhase is an ordered classification of game progress.
type GamePhase int

const (
	PhaseOpening GamePhase = iota
	PhaseEarly
	PhaseMiddle
	PhaseLateMiddle
	PhaseEndgame
	PhaseLateEndgame
	PhaseInsufficientMaterial
)

var phaseNames = [...]string{
	"opening", "early", "middle", "late-middle", "endgame", "late-endgame", "insufficient-material",
}

func (ph GamePhase) String() string {
	if ph < PhaseOpening || ph > PhaseInsufficientMaterial {
		return "unknown"
	}
	return phaseNames[ph]
}

// PhaseThresholds are the ply and piece cutoffs between phases.
// Piece counts include knights, bishops, rooks and queens of both sides.
type PhaseThresholds struct {
	OpeningPlies      int `yaml:"opening_plies"`
	EarlyPlies        int `yaml:"early_plies"`
	LateMiddlePieces  int `yaml:"late_middle_pieces"`
	EndgamePieces     int `yaml:"endgame_pieces"`
	LateEndgamePieces int `yaml:"late_endgame_pieces"`
}

func DefaultPhaseThresholds() PhaseThresholds {
	return PhaseThresholds{
		OpeningPlies:      12,
		EarlyPlies:        24,
		LateMiddlePieces:  10,
		EndgamePieces:     6,
		LateEndgamePieces: 2,
	}
}

func (t PhaseThresholds) Phase(p *Position) GamePhase {
	if p.IsInsufficientMaterial() {
		return PhaseInsufficientMaterial
	}
	var pieces = 0
	for _, side := range [...]bool{SideWhite, SideBlack} {
		pieces += p.PieceCount(side, Knight) + p.PieceCount(side, Bishop) +
			p.PieceCount(side, Rook) + p.PieceCount(side, Queen)
	}
	switch {
	case pieces <= t.LateEndgamePieces:
		return PhaseLateEndgame
	case pieces <= t.EndgamePieces:
		return PhaseEndgame
	case pieces <= t.LateMiddlePieces:
		return PhaseLateMiddle
	case p.Ply() < t.OpeningPlies:
		return PhaseOpening
	case p.Ply() < t.EarlyPlies:
		return PhaseEarly
	}
	return PhaseMiddle
}

// Phase classifies p with the default thresholds.
func Phase(p *Position) GamePhase {
	return DefaultPhaseThresholds().Phase(p)
}
