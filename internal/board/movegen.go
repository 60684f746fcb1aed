package board

// LegalMoves generates all legal moves for the side to move: pseudo-legal
// generation followed by simulating each move and discarding any that leaves
// the mover's own king attacked. Generate-then-filter is deliberately simple
// over incremental legality tracking; the search depths downstream are small.
func LegalMoves(b Board) []Move {
	pseudo := PseudoLegalMoves(b)
	legal := make([]Move, 0, len(pseudo))
	us := b.turn
	for _, m := range pseudo {
		next, err := b.MakeMove(m)
		if err != nil {
			continue
		}
		if !IsSquareAttacked(next, next.kingSquare(us), us.Other()) {
			legal = append(legal, m)
		}
	}
	return legal
}

// PseudoLegalMoves generates moves that obey piece-movement shape rules but
// may leave the mover's king in check.
func PseudoLegalMoves(b Board) []Move {
	moves := make([]Move, 0, 48)
	us := b.turn
	for sq := Square(0); sq < NoSquare; sq++ {
		p := b.squares[sq]
		if p.IsEmpty() || p.Color != us {
			continue
		}
		switch p.Type {
		case Pawn:
			moves = appendPawnMoves(b, sq, us, moves)
		case Knight:
			moves = appendStepMoves(b, sq, us, knightOffsets, moves)
		case Bishop:
			moves = appendSlideMoves(b, sq, us, diagonalRays, moves)
		case Rook:
			moves = appendSlideMoves(b, sq, us, straightRays, moves)
		case Queen:
			moves = appendSlideMoves(b, sq, us, diagonalRays, moves)
			moves = appendSlideMoves(b, sq, us, straightRays, moves)
		case King:
			moves = appendStepMoves(b, sq, us, kingOffsets, moves)
		}
	}
	moves = appendCastleMoves(b, us, moves)
	return moves
}

func appendPawnMoves(b Board, from Square, us Color, moves []Move) []Move {
	file, rank := from.File(), from.Rank()
	dir, startRank, promoRank := 1, 1, 7
	if us == Black {
		dir, startRank, promoRank = -1, 6, 0
	}

	// Single push, and double push from the start rank through empty squares.
	if oneUp := rank + dir; oneUp >= 0 && oneUp <= 7 {
		to := mustSquare(file, oneUp)
		if b.squares[to].IsEmpty() {
			moves = appendPawnAdvance(moves, from, to, oneUp == promoRank)
			if rank == startRank {
				twoUp := mustSquare(file, rank+2*dir)
				if b.squares[twoUp].IsEmpty() {
					moves = append(moves, Move{From: from, To: twoUp})
				}
			}
		}
	}

	// Diagonal captures and the en passant capture against the board target.
	for _, df := range [2]int{-1, 1} {
		tf, tr := file+df, rank+dir
		if tf < 0 || tf > 7 || tr < 0 || tr > 7 {
			continue
		}
		to := mustSquare(tf, tr)
		target := b.squares[to]
		if !target.IsEmpty() && target.Color != us {
			moves = appendPawnAdvance(moves, from, to, tr == promoRank)
		} else if to == b.enPassant {
			moves = append(moves, Move{From: from, To: to, IsEnPassant: true})
		}
	}
	return moves
}

// appendPawnAdvance expands a push or capture landing on the farthest rank
// into all four promotions.
func appendPawnAdvance(moves []Move, from, to Square, promotes bool) []Move {
	if !promotes {
		return append(moves, Move{From: from, To: to})
	}
	for _, pt := range [4]PieceType{Queen, Rook, Bishop, Knight} {
		moves = append(moves, Move{From: from, To: to, Promotion: pt})
	}
	return moves
}

func appendStepMoves(b Board, from Square, us Color, offsets [8][2]int, moves []Move) []Move {
	file, rank := from.File(), from.Rank()
	for _, off := range offsets {
		tf, tr := file+off[0], rank+off[1]
		if tf < 0 || tf > 7 || tr < 0 || tr > 7 {
			continue
		}
		to := mustSquare(tf, tr)
		if target := b.squares[to]; target.IsEmpty() || target.Color != us {
			moves = append(moves, Move{From: from, To: to})
		}
	}
	return moves
}

func appendSlideMoves(b Board, from Square, us Color, rays [4][2]int, moves []Move) []Move {
	file, rank := from.File(), from.Rank()
	for _, ray := range rays {
		f, r := file+ray[0], rank+ray[1]
		for f >= 0 && f <= 7 && r >= 0 && r <= 7 {
			to := mustSquare(f, r)
			target := b.squares[to]
			if target.IsEmpty() {
				moves = append(moves, Move{From: from, To: to})
				f += ray[0]
				r += ray[1]
				continue
			}
			if target.Color != us {
				moves = append(moves, Move{From: from, To: to})
			}
			break
		}
	}
	return moves
}

// appendCastleMoves emits castling when the right is held, the squares
// between king and rook are empty, the king is not in check, and no square
// the king occupies or transits (destination included) is attacked. Rights
// revocation is the sole defense against a missing rook; the rook square is
// not re-validated here.
func appendCastleMoves(b Board, us Color, moves []Move) []Move {
	rank := 0
	kingSide, queenSide := b.castling.WhiteKingSide, b.castling.WhiteQueenSide
	if us == Black {
		rank = 7
		kingSide, queenSide = b.castling.BlackKingSide, b.castling.BlackQueenSide
	}
	if !kingSide && !queenSide {
		return moves
	}

	kingSq := mustSquare(4, rank)
	them := us.Other()
	if IsSquareAttacked(b, kingSq, them) {
		return moves
	}

	if kingSide &&
		b.squares[mustSquare(5, rank)].IsEmpty() &&
		b.squares[mustSquare(6, rank)].IsEmpty() &&
		!IsSquareAttacked(b, mustSquare(5, rank), them) &&
		!IsSquareAttacked(b, mustSquare(6, rank), them) {
		moves = append(moves, Move{From: kingSq, To: mustSquare(6, rank), IsCastle: true})
	}
	if queenSide &&
		b.squares[mustSquare(1, rank)].IsEmpty() &&
		b.squares[mustSquare(2, rank)].IsEmpty() &&
		b.squares[mustSquare(3, rank)].IsEmpty() &&
		!IsSquareAttacked(b, mustSquare(3, rank), them) &&
		!IsSquareAttacked(b, mustSquare(2, rank), them) {
		moves = append(moves, Move{From: kingSq, To: mustSquare(2, rank), IsCastle: true})
	}
	return moves
}
