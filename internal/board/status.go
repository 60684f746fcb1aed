package board

// IsInCheck reports whether the side to move is in check.
func IsInCheck(b Board) bool {
	us := b.turn
	return IsSquareAttacked(b, b.kingSquare(us), us.Other())
}

// IsCheckmate reports whether the side to move is in check with no legal moves.
func IsCheckmate(b Board) bool {
	return IsInCheck(b) && len(LegalMoves(b)) == 0
}

// IsStalemate reports whether the side to move is not in check yet has no
// legal moves.
func IsStalemate(b Board) bool {
	return !IsInCheck(b) && len(LegalMoves(b)) == 0
}

// IsDraw reports stalemate, the fifty-move rule (half-move clock >= 100), or
// insufficient material.
func IsDraw(b Board) bool {
	if b.halfMove >= 100 {
		return true
	}
	if IsInsufficientMaterial(b) {
		return true
	}
	return IsStalemate(b)
}

// IsInsufficientMaterial covers bare king vs bare king and king plus a single
// minor piece vs bare king, either side. Other drawish material combinations
// are intentionally not classified as draws.
func IsInsufficientMaterial(b Board) bool {
	var whiteMinors, blackMinors int
	for sq := Square(0); sq < NoSquare; sq++ {
		p := b.squares[sq]
		switch p.Type {
		case NoPieceType, King:
		case Knight, Bishop:
			if p.Color == White {
				whiteMinors++
			} else {
				blackMinors++
			}
		default:
			return false
		}
	}
	if whiteMinors+blackMinors == 0 {
		return true
	}
	return whiteMinors+blackMinors == 1
}
