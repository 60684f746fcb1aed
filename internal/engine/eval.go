package engine

import (
	"fmt"

	"github.com/kapu/ghostchess/internal/board"
)

func pieceValue(t board.PieceType) int {
	switch t {
	case board.Pawn:
		return 100
	case board.Knight:
		return 320
	case board.Bishop:
		return 330
	case board.Rook:
		return 500
	case board.Queen:
		return 900
	default:
		return 0
	}
}

// centerSquares get a small occupancy bonus regardless of piece type.
var centerSquares = [...]board.Square{board.D4, board.E4, board.D5, board.E5}

// Evaluate scores the position from White's perspective in centipawn-like
// units: material plus a light positional term for central occupancy and pawn
// advancement. It needs no lifecycle and works on any parseable position.
func (e *Minimax) Evaluate(b board.Board) int {
	score := 0
	for sq := board.Square(0); sq < 64; sq++ {
		p := b.PieceAt(sq)
		if p.IsEmpty() {
			continue
		}
		v := pieceValue(p.Type)
		if p.Type == board.Pawn {
			// Advancement measured from the pawn's own back rank.
			if p.Color == board.White {
				v += 2 * int(sq.Rank()-1)
			} else {
				v += 2 * int(6-sq.Rank())
			}
		}
		if p.Color == board.White {
			score += v
		} else {
			score -= v
		}
	}
	for _, sq := range centerSquares {
		p := b.PieceAt(sq)
		if p.IsEmpty() {
			continue
		}
		if p.Color == board.White {
			score += 10
		} else {
			score -= 10
		}
	}
	return score
}

// commentary renders a one-line verdict for an analysis result.
func commentary(b board.Board, score int, line []board.Move) string {
	if len(line) == 0 {
		if board.IsCheckmate(b) {
			return fmt.Sprintf("checkmate, %s has no moves", b.Turn())
		}
		return "no legal moves, the game is drawn"
	}
	verdict := "the position is balanced"
	switch {
	case score >= mateValue:
		verdict = "White has a forced mate"
	case score <= -mateValue:
		verdict = "Black has a forced mate"
	case score >= 150:
		verdict = "White is clearly better"
	case score >= 50:
		verdict = "White is slightly better"
	case score <= -150:
		verdict = "Black is clearly better"
	case score <= -50:
		verdict = "Black is slightly better"
	}
	return fmt.Sprintf("%s; best is %s", verdict, line[0])
}

// describe builds the diagnostic thought for a position: the side to move,
// immediate threats (check, hanging pieces under attack), and opening-phase
// development notes.
func describe(b board.Board, score int) Thought {
	turn := b.Turn()
	var threats []string
	if board.IsInCheck(b) {
		threats = append(threats, fmt.Sprintf("%s king is in check", turn))
	}
	for sq := board.Square(0); sq < 64; sq++ {
		p := b.PieceAt(sq)
		if p.IsEmpty() || p.Color != turn || p.Type == board.King || p.Type == board.Pawn {
			continue
		}
		if board.IsSquareAttacked(b, sq, turn.Other()) {
			threats = append(threats, fmt.Sprintf("%s %s on %s is under attack", p.Color, pieceName(p.Type), sq))
		}
	}

	var notes []string
	if b.FullMoveNumber() <= 10 {
		if n := undevelopedMinors(b, turn); n > 0 {
			notes = append(notes, fmt.Sprintf("%d minor pieces still on their home squares", n))
		}
	}
	switch {
	case score >= 150:
		notes = append(notes, "White holds a material or positional edge")
	case score <= -150:
		notes = append(notes, "Black holds a material or positional edge")
	}

	desc := fmt.Sprintf("%s to move, evaluation %+d", turn, score)
	return Thought{
		Description:    desc,
		Threats:        threats,
		StrategicNotes: notes,
	}
}

// undevelopedMinors counts knights and bishops of the given color still on
// their initial squares.
func undevelopedMinors(b board.Board, c board.Color) int {
	homes := []struct {
		sq board.Square
		pt board.PieceType
	}{
		{board.B1, board.Knight}, {board.G1, board.Knight},
		{board.C1, board.Bishop}, {board.F1, board.Bishop},
	}
	if c == board.Black {
		homes = []struct {
			sq board.Square
			pt board.PieceType
		}{
			{board.B8, board.Knight}, {board.G8, board.Knight},
			{board.C8, board.Bishop}, {board.F8, board.Bishop},
		}
	}
	n := 0
	for _, h := range homes {
		p := b.PieceAt(h.sq)
		if p.Type == h.pt && p.Color == c {
			n++
		}
	}
	return n
}

func pieceName(t board.PieceType) string {
	switch t {
	case board.Pawn:
		return "pawn"
	case board.Knight:
		return "knight"
	case board.Bishop:
		return "bishop"
	case board.Rook:
		return "rook"
	case board.Queen:
		return "queen"
	case board.King:
		return "king"
	default:
		return "piece"
	}
}
