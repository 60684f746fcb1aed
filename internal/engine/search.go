package engine

import (
	"context"
	"sort"

	"github.com/kapu/ghostchess/internal/board"
)

const (
	infinity  = 1 << 24
	mateValue = 100000
)

// search is a plain alpha-beta minimax: White maximizes, Black minimizes,
// and the returned line is the principal variation. The context is checked
// at every node so a cancellation surfaces quickly even mid-tree.
func (e *Minimax) search(ctx context.Context, b board.Board, depth, alpha, beta int) (int, []board.Move, error) {
	if err := ctx.Err(); err != nil {
		return 0, nil, err
	}
	if depth == 0 {
		return e.Evaluate(b), nil, nil
	}

	moves := board.LegalMoves(b)
	if len(moves) == 0 {
		if board.IsInCheck(b) {
			// Mate found earlier in the tree scores higher.
			if b.Turn() == board.White {
				return -(mateValue + depth), nil, nil
			}
			return mateValue + depth, nil, nil
		}
		return 0, nil, nil
	}
	if board.IsDraw(b) {
		return 0, nil, nil
	}

	orderMoves(b, moves)

	maximizing := b.Turn() == board.White
	var bestScore int
	if maximizing {
		bestScore = -infinity
	} else {
		bestScore = infinity
	}
	var bestLine []board.Move

	for _, m := range moves {
		next, err := b.MakeMove(m)
		if err != nil {
			return 0, nil, err
		}
		score, childLine, err := e.search(ctx, next, depth-1, alpha, beta)
		if err != nil {
			return 0, nil, err
		}
		if maximizing {
			if score > bestScore || bestLine == nil {
				bestScore = score
				bestLine = append([]board.Move{m}, childLine...)
			}
			if bestScore > alpha {
				alpha = bestScore
			}
		} else {
			if score < bestScore || bestLine == nil {
				bestScore = score
				bestLine = append([]board.Move{m}, childLine...)
			}
			if bestScore < beta {
				beta = bestScore
			}
		}
		if alpha >= beta {
			break
		}
	}
	return bestScore, bestLine, nil
}

// orderMoves puts captures of valuable pieces first to tighten the alpha-beta
// window early.
func orderMoves(b board.Board, moves []board.Move) {
	sort.SliceStable(moves, func(i, j int) bool {
		return captureGain(b, moves[i]) > captureGain(b, moves[j])
	})
}

func captureGain(b board.Board, m board.Move) int {
	if m.IsEnPassant {
		return pieceValue(board.Pawn)
	}
	target := b.PieceAt(m.To)
	if target.IsEmpty() {
		return 0
	}
	return pieceValue(target.Type)
}
