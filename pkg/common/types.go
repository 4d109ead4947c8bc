package common

const (
	Empty int = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

const (
	SideWhite = true
	SideBlack = false
)

const InitialPositionFen = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

const MaxHeight = 128

func PieceName(piece int) string {
	if piece < Empty || piece > King {
		return "?"
	}
	return string(" pnbrqk"[piece])
}
