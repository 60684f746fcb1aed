package board

var (
	knightOffsets = [8][2]int{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}
	kingOffsets   = [8][2]int{{0, 1}, {1, 1}, {1, 0}, {1, -1}, {0, -1}, {-1, -1}, {-1, 0}, {-1, 1}}
	diagonalRays  = [4][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	straightRays  = [4][2]int{{0, 1}, {1, 0}, {0, -1}, {-1, 0}}
)

// IsSquareAttacked reports whether byColor attacks the given square. Each
// attack family is evaluated independently: pawn diagonals, knight leaps,
// adjacent kings, and the eight sliding rays stopping at the first occupied
// square.
func IsSquareAttacked(b Board, sq Square, byColor Color) bool {
	file, rank := sq.File(), sq.Rank()

	// Pawn attacks come from the rank the attacker advances from.
	pawnRank := rank - 1
	if byColor == Black {
		pawnRank = rank + 1
	}
	for _, df := range [2]int{-1, 1} {
		if p, ok := pieceAtCoords(b, file+df, pawnRank); ok && p.Type == Pawn && p.Color == byColor {
			return true
		}
	}

	for _, off := range knightOffsets {
		if p, ok := pieceAtCoords(b, file+off[0], rank+off[1]); ok && p.Type == Knight && p.Color == byColor {
			return true
		}
	}

	for _, off := range kingOffsets {
		if p, ok := pieceAtCoords(b, file+off[0], rank+off[1]); ok && p.Type == King && p.Color == byColor {
			return true
		}
	}

	if rayAttacked(b, file, rank, byColor, diagonalRays, Bishop) {
		return true
	}
	return rayAttacked(b, file, rank, byColor, straightRays, Rook)
}

// rayAttacked walks each ray until the first occupied square; that square
// attacks only when it holds a byColor piece of the matching slider type, the
// queen matching both ray families.
func rayAttacked(b Board, file, rank int, byColor Color, rays [4][2]int, slider PieceType) bool {
	for _, ray := range rays {
		f, r := file+ray[0], rank+ray[1]
		for f >= 0 && f <= 7 && r >= 0 && r <= 7 {
			p := b.squares[mustSquare(f, r)]
			if !p.IsEmpty() {
				if p.Color == byColor && (p.Type == slider || p.Type == Queen) {
					return true
				}
				break
			}
			f += ray[0]
			r += ray[1]
		}
	}
	return false
}

func pieceAtCoords(b Board, file, rank int) (Piece, bool) {
	if file < 0 || file > 7 || rank < 0 || rank > 7 {
		return NoPiece, false
	}
	p := b.squares[mustSquare(file, rank)]
	if p.IsEmpty() {
		return NoPiece, false
	}
	return p, true
}
