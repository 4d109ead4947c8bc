package common

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dylhunn/dragontoothmg"
)

var ErrInvalidFEN = errors.New("invalid fen")

// Position is a mutable game state. Moves are applied with MakeMove and
// reverted with UndoMove in strict LIFO order.
type Position struct {
	board   dragontoothmg.Board
	rule50  int
	ply     int
	history []uint64
	stack   []undoInfo
}

type undoInfo struct {
	move    Move
	unapply func()
	rule50  int
}

func NewPositionFromFEN(fen string) (*Position, error) {
	var fields = strings.Fields(fen)
	if len(fields) < 4 || len(fields) > 6 {
		return nil, fmt.Errorf("%w: expected 4 to 6 fields, got %d", ErrInvalidFEN, len(fields))
	}
	if err := validatePlacement(fields[0]); err != nil {
		return nil, err
	}
	if fields[1] != "w" && fields[1] != "b" {
		return nil, fmt.Errorf("%w: side to move %q", ErrInvalidFEN, fields[1])
	}
	if strings.Trim(fields[2], "KQkq") != "" && fields[2] != "-" {
		return nil, fmt.Errorf("%w: castling rights %q", ErrInvalidFEN, fields[2])
	}
	if fields[3] != "-" {
		var ep = ParseSquare(fields[3])
		if ep == SquareNone || (Rank(ep) != Rank3 && Rank(ep) != Rank6) {
			return nil, fmt.Errorf("%w: en passant square %q", ErrInvalidFEN, fields[3])
		}
	}
	var rule50, moveNumber = 0, 1
	if len(fields) >= 5 {
		var n, err = strconv.Atoi(fields[4])
		if err != nil || n < 0 {
			return nil, fmt.Errorf("%w: halfmove clock %q", ErrInvalidFEN, fields[4])
		}
		rule50 = n
	}
	if len(fields) >= 6 {
		var n, err = strconv.Atoi(fields[5])
		if err != nil || n < 1 {
			return nil, fmt.Errorf("%w: move number %q", ErrInvalidFEN, fields[5])
		}
		moveNumber = n
	}

	var normalized = strings.Join(fields[:4], " ") + " " +
		strconv.Itoa(Min(rule50, 255)) + " " + strconv.Itoa(moveNumber)
	var board, err = parseBoard(normalized)
	if err != nil {
		return nil, err
	}

	var p = &Position{
		board:  board,
		rule50: rule50,
		ply:    2*(moveNumber-1) + let(board.Wtomove, 0, 1),
	}
	if p.isOpponentInCheck() {
		return nil, fmt.Errorf("%w: side not to move is in check", ErrInvalidFEN)
	}
	p.history = append(p.history, p.board.Hash())
	return p, nil
}

func parseBoard(fen string) (board dragontoothmg.Board, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrInvalidFEN, r)
		}
	}()
	return dragontoothmg.ParseFen(fen), nil
}

func validatePlacement(s string) error {
	var ranks = strings.Split(s, "/")
	if len(ranks) != 8 {
		return fmt.Errorf("%w: expected 8 ranks, got %d", ErrInvalidFEN, len(ranks))
	}
	var kings = map[rune]int{}
	for i, rank := range ranks {
		var files = 0
		for _, ch := range rank {
			switch {
			case ch >= '1' && ch <= '8':
				files += int(ch - '0')
			case strings.ContainsRune("pnbrqkPNBRQK", ch):
				files++
				if ch == 'k' || ch == 'K' {
					kings[ch]++
				}
				if (ch == 'p' || ch == 'P') && (i == 0 || i == 7) {
					return fmt.Errorf("%w: pawn on back rank", ErrInvalidFEN)
				}
			default:
				return fmt.Errorf("%w: unexpected character %q", ErrInvalidFEN, ch)
			}
		}
		if files != 8 {
			return fmt.Errorf("%w: rank %d has %d files", ErrInvalidFEN, 8-i, files)
		}
	}
	if kings['K'] != 1 || kings['k'] != 1 {
		return fmt.Errorf("%w: each side needs exactly one king", ErrInvalidFEN)
	}
	return nil
}

func (p *Position) WhiteMove() bool {
	return p.board.Wtomove
}

// Key is the Zobrist hash of the current position.
func (p *Position) Key() uint64 {
	return p.board.Hash()
}

// Ply counts half moves since the start of the game.
func (p *Position) Ply() int {
	return p.ply
}

func (p *Position) Rule50() int {
	return p.rule50
}

// Height is the number of moves made on top of the initial position.
func (p *Position) Height() int {
	return len(p.stack)
}

func (p *Position) LastMove() Move {
	if len(p.stack) == 0 {
		return MoveEmpty
	}
	return p.stack[len(p.stack)-1].move
}

// LegalMoves returns the legal moves in generation order.
func (p *Position) LegalMoves(capturesOnly bool) []Move {
	var generated = p.board.GenerateLegalMoves()
	var ml = make([]Move, 0, len(generated))
	for _, m := range generated {
		var mv = Move(m)
		if capturesOnly && !p.IsCapture(mv) {
			continue
		}
		ml = append(ml, mv)
	}
	return ml
}

func (p *Position) MakeMove(m Move) {
	var rule50 = p.rule50
	if p.MovingPiece(m) == Pawn || p.IsCapture(m) {
		p.rule50 = 0
	} else {
		p.rule50++
	}
	var unapply = p.board.Apply(dragontoothmg.Move(m))
	p.stack = append(p.stack, undoInfo{move: m, unapply: unapply, rule50: rule50})
	p.history = append(p.history, p.board.Hash())
	p.ply++
}

// UndoMove reverts the most recent MakeMove. It panics if m is not that move.
func (p *Position) UndoMove(m Move) {
	if len(p.stack) == 0 {
		panic("common: UndoMove without MakeMove")
	}
	var top = p.stack[len(p.stack)-1]
	if top.move != m {
		panic(fmt.Sprintf("common: UndoMove %v, last move is %v", m, top.move))
	}
	top.unapply()
	p.rule50 = top.rule50
	p.stack = p.stack[:len(p.stack)-1]
	p.history = p.history[:len(p.history)-1]
	p.ply--
}

func (p *Position) IsCheck() bool {
	return p.board.OurKingInCheck()
}

func (p *Position) isOpponentInCheck() bool {
	var us, them = p.sides(p.board.Wtomove)
	var kingSq = FirstOne(them.Kings)
	return p.attackersTo(kingSq, p.board.Wtomove, us.All|them.All)&us.All != 0
}

func (p *Position) IsCheckmate() bool {
	return p.IsCheck() && len(p.board.GenerateLegalMoves()) == 0
}

func (p *Position) IsStalemate() bool {
	return !p.IsCheck() && len(p.board.GenerateLegalMoves()) == 0
}

// IsDraw reports any drawn state, stalemate included.
func (p *Position) IsDraw() bool {
	return p.IsDrawByRule() || p.IsStalemate()
}

// IsDrawByRule reports draws that need no move generation: the fifty move
// rule, threefold repetition and insufficient material.
func (p *Position) IsDrawByRule() bool {
	if p.rule50 >= 100 && !p.IsCheckmate() {
		return true
	}
	return p.IsRepetition(3) || p.IsInsufficientMaterial()
}

// IsRepetition reports whether the current position occurred count times.
func (p *Position) IsRepetition(count int) bool {
	var key = p.history[len(p.history)-1]
	var seen = 1
	var lowest = Max(0, len(p.history)-1-p.rule50)
	for i := len(p.history) - 3; i >= lowest; i -= 2 {
		if p.history[i] == key {
			seen++
			if seen >= count {
				return true
			}
		}
	}
	return false
}

func (p *Position) IsInsufficientMaterial() bool {
	var w, b = &p.board.White, &p.board.Black
	if (w.Pawns|b.Pawns|w.Rooks|b.Rooks|w.Queens|b.Queens) != 0 {
		return false
	}
	return PopCount(w.Knights|w.Bishops|b.Knights|b.Bishops) <= 1
}

func (p *Position) sides(white bool) (us, them *dragontoothmg.Bitboards) {
	if white {
		return &p.board.White, &p.board.Black
	}
	return &p.board.Black, &p.board.White
}

func (p *Position) side(white bool) *dragontoothmg.Bitboards {
	var us, _ = p.sides(white)
	return us
}

// Pieces returns the bitboard of the given piece type for a side.
func (p *Position) Pieces(side bool, piece int) uint64 {
	var bb = p.side(side)
	switch piece {
	case Pawn:
		return bb.Pawns
	case Knight:
		return bb.Knights
	case Bishop:
		return bb.Bishops
	case Rook:
		return bb.Rooks
	case Queen:
		return bb.Queens
	case King:
		return bb.Kings
	case Empty:
		return bb.All
	}
	return 0
}

func (p *Position) PieceCount(side bool, piece int) int {
	return PopCount(p.Pieces(side, piece))
}

func (p *Position) Occupied() uint64 {
	return p.board.White.All | p.board.Black.All
}

func (p *Position) KingSquare(side bool) int {
	return FirstOne(p.side(side).Kings)
}

// PieceOn returns the piece type and colour on sq, or Empty.
func (p *Position) PieceOn(sq int) (piece int, side bool) {
	var mask = SquareMask[sq]
	if p.board.White.All&mask != 0 {
		return pieceAt(&p.board.White, mask), SideWhite
	}
	if p.board.Black.All&mask != 0 {
		return pieceAt(&p.board.Black, mask), SideBlack
	}
	return Empty, false
}

func pieceAt(bb *dragontoothmg.Bitboards, mask uint64) int {
	switch {
	case bb.Pawns&mask != 0:
		return Pawn
	case bb.Knights&mask != 0:
		return Knight
	case bb.Bishops&mask != 0:
		return Bishop
	case bb.Rooks&mask != 0:
		return Rook
	case bb.Queens&mask != 0:
		return Queen
	case bb.Kings&mask != 0:
		return King
	}
	return Empty
}

// AttacksFrom returns the squares a piece of the given type and side on sq attacks.
func (p *Position) AttacksFrom(piece int, side bool, sq int) uint64 {
	switch piece {
	case Pawn:
		return PawnAttacks(sq, side)
	case Knight:
		return KnightAttacks[sq]
	case Bishop:
		return BishopAttacks(sq, p.Occupied())
	case Rook:
		return RookAttacks(sq, p.Occupied())
	case Queen:
		return QueenAttacks(sq, p.Occupied())
	case King:
		return KingAttacks[sq]
	}
	return 0
}

// AttacksBy is the union of attacks of every piece of the given type and side.
func (p *Position) AttacksBy(side bool, piece int) uint64 {
	if piece == Pawn {
		return p.PawnAttacks(side)
	}
	var result uint64
	for x := p.Pieces(side, piece); x != 0; x &= x - 1 {
		result |= p.AttacksFrom(piece, side, FirstOne(x))
	}
	return result
}

func (p *Position) PawnAttacks(side bool) uint64 {
	if side {
		return AllWhitePawnAttacks(p.board.White.Pawns)
	}
	return AllBlackPawnAttacks(p.board.Black.Pawns)
}

// attackersTo returns pieces of side that attack sq.
func (p *Position) attackersTo(sq int, side bool, occ uint64) uint64 {
	var bb = p.side(side)
	return (PawnAttacks(sq, !side) & bb.Pawns) |
		(KnightAttacks[sq] & bb.Knights) |
		(KingAttacks[sq] & bb.Kings) |
		(BishopAttacks(sq, occ) & (bb.Bishops | bb.Queens)) |
		(RookAttacks(sq, occ) & (bb.Rooks | bb.Queens))
}

func (p *Position) MovingPiece(m Move) int {
	var piece, _ = p.PieceOn(m.From())
	return piece
}

// CapturedPiece returns the piece taken by m, Pawn for en passant, Empty otherwise.
func (p *Position) CapturedPiece(m Move) int {
	if p.IsEnPassant(m) {
		return Pawn
	}
	var piece, side = p.PieceOn(m.To())
	if piece == Empty || side == p.board.Wtomove {
		return Empty
	}
	return piece
}

func (p *Position) IsCapture(m Move) bool {
	return p.CapturedPiece(m) != Empty
}

func (p *Position) IsEnPassant(m Move) bool {
	return p.MovingPiece(m) == Pawn &&
		File(m.From()) != File(m.To()) &&
		p.Occupied()&SquareMask[m.To()] == 0
}

func (p *Position) IsCastling(m Move) bool {
	return p.MovingPiece(m) == King && FileDistance(m.From(), m.To()) == 2
}

// FEN renders the position with this position's own clocks.
func (p *Position) FEN() string {
	var fields = strings.Fields(p.board.ToFen())
	var moveNumber = p.ply/2 + 1
	return strings.Join(fields[:4], " ") + " " + strconv.Itoa(p.rule50) + " " + strconv.Itoa(moveNumber)
}

func (p *Position) String() string {
	var sb strings.Builder
	for rank := Rank8; rank >= Rank1; rank-- {
		for file := FileA; file <= FileH; file++ {
			var piece, side = p.PieceOn(MakeSquare(file, rank))
			var ch = PieceName(piece)
			if piece == Empty {
				ch = "."
			} else if side {
				ch = strings.ToUpper(ch)
			}
			sb.WriteString(ch)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// MirrorFEN flips the board vertically and swaps colours.
func MirrorFEN(fen string) string {
	var fields = strings.Fields(fen)
	var ranks = strings.Split(fields[0], "/")
	for i, j := 0, len(ranks)-1; i < j; i, j = i+1, j-1 {
		ranks[i], ranks[j] = ranks[j], ranks[i]
	}
	fields[0] = swapCase(strings.Join(ranks, "/"))
	if len(fields) > 1 {
		fields[1] = map[string]string{"w": "b", "b": "w"}[fields[1]]
	}
	if len(fields) > 2 && fields[2] != "-" {
		var rights = swapCase(fields[2])
		var ordered = ""
		for _, ch := range "KQkq" {
			if strings.ContainsRune(rights, ch) {
				ordered += string(ch)
			}
		}
		fields[2] = ordered
	}
	if len(fields) > 3 && fields[3] != "-" {
		var sq = ParseSquare(fields[3])
		if sq != SquareNone {
			fields[3] = SquareName(FlipSquare(sq))
		}
	}
	return strings.Join(fields, " ")
}

func swapCase(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return r - 'a' + 'A'
		case r >= 'A' && r <= 'Z':
			return r - 'A' + 'a'
		}
		return r
	}, s)
}
