package board

import "fmt"

// StartingFEN is the standard initial position.
const StartingFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// Board is an immutable snapshot of a chess position. Methods never mutate
// the receiver; MakeMove returns a fresh Board, which is what makes history,
// undo, and preview stepping safe to share across goroutines.
type Board struct {
	squares   [64]Piece
	turn      Color
	castling  CastlingRights
	enPassant Square // NoSquare when absent
	halfMove  int
	fullMove  int
}

// Starting returns the standard initial position.
func Starting() Board {
	b, err := FromFEN(StartingFEN)
	if err != nil {
		panic("board: starting FEN failed to parse: " + err.Error())
	}
	return b
}

// PieceAt returns the piece on the given square, NoPiece when empty.
func (b Board) PieceAt(sq Square) Piece {
	if sq >= NoSquare {
		return NoPiece
	}
	return b.squares[sq]
}

// Turn returns the color to move.
func (b Board) Turn() Color { return b.turn }

// Castling returns the remaining castling rights.
func (b Board) Castling() CastlingRights { return b.castling }

// EnPassantTarget returns the en passant target square and whether one exists.
func (b Board) EnPassantTarget() (Square, bool) {
	return b.enPassant, b.enPassant != NoSquare
}

// HalfMoveClock returns plies since the last pawn move or capture.
func (b Board) HalfMoveClock() int { return b.halfMove }

// FullMoveNumber returns the full move counter, starting at 1.
func (b Board) FullMoveNumber() int { return b.fullMove }

// kingSquare locates the king of the given color. A board without that king
// is structurally corrupt and legality queries over it are undefined.
func (b Board) kingSquare(c Color) Square {
	for sq := Square(0); sq < NoSquare; sq++ {
		p := b.squares[sq]
		if p.Type == King && p.Color == c {
			return sq
		}
	}
	panic(fmt.Sprintf("board: no %s king on board %q", c, b.FEN()))
}

// MakeMove applies a pseudo-legal move and returns the resulting position.
// The move is not legality-checked here; callers obtain candidate moves from
// LegalMoves. It fails only when the source square is empty.
func (b Board) MakeMove(m Move) (Board, error) {
	mover := b.squares[m.From]
	if mover.IsEmpty() {
		return Board{}, fmt.Errorf("no piece on source square %s", m.From)
	}

	next := b
	captured := next.squares[m.To]
	next.squares[m.From] = NoPiece

	if m.IsEnPassant {
		// The captured pawn sits beside the destination, not on it.
		capSq := mustSquare(m.To.File(), m.From.Rank())
		captured = next.squares[capSq]
		next.squares[capSq] = NoPiece
	}

	placed := mover
	if m.Promotion != NoPieceType {
		placed = Piece{Type: m.Promotion, Color: mover.Color}
	}
	next.squares[m.To] = placed

	if m.IsCastle {
		rookFrom, rookTo := castleRookSquares(m)
		next.squares[rookTo] = next.squares[rookFrom]
		next.squares[rookFrom] = NoPiece
	}

	next.updateCastlingRights(mover, m)

	next.enPassant = NoSquare
	if mover.Type == Pawn && abs(m.To.Rank()-m.From.Rank()) == 2 {
		next.enPassant = mustSquare(m.From.File(), (m.From.Rank()+m.To.Rank())/2)
	}

	if mover.Type == Pawn || !captured.IsEmpty() {
		next.halfMove = 0
	} else {
		next.halfMove = b.halfMove + 1
	}
	if b.turn == Black {
		next.fullMove = b.fullMove + 1
	}
	next.turn = b.turn.Other()
	return next, nil
}

// castleRookSquares maps a castling king move to the rook relocation.
func castleRookSquares(m Move) (from, to Square) {
	rank := m.From.Rank()
	if m.To.File() > m.From.File() {
		return mustSquare(7, rank), mustSquare(5, rank)
	}
	return mustSquare(0, rank), mustSquare(3, rank)
}

// updateCastlingRights revokes rights when a king moves, when an original
// rook leaves its home square, or when a rook is captured on its home square.
func (b *Board) updateCastlingRights(mover Piece, m Move) {
	if mover.Type == King {
		if mover.Color == White {
			b.castling.WhiteKingSide = false
			b.castling.WhiteQueenSide = false
		} else {
			b.castling.BlackKingSide = false
			b.castling.BlackQueenSide = false
		}
	}
	for _, sq := range [2]Square{m.From, m.To} {
		switch sq {
		case A1:
			b.castling.WhiteQueenSide = false
		case H1:
			b.castling.WhiteKingSide = false
		case A8:
			b.castling.BlackQueenSide = false
		case H8:
			b.castling.BlackKingSide = false
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
