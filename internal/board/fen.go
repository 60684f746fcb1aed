package board

import (
	"fmt"
	"strconv"
	"strings"
)

// FromFEN parses a 6-field FEN string into a Board. The grammar is validated
// strictly: six fields, eight files per rank, recognized piece letters only.
func FromFEN(fen string) (Board, error) {
	fields := strings.Fields(strings.TrimSpace(fen))
	if len(fields) != 6 {
		return Board{}, fmt.Errorf("invalid FEN %q: want 6 fields, got %d", fen, len(fields))
	}

	b := Board{enPassant: NoSquare}

	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return Board{}, fmt.Errorf("invalid FEN placement %q: want 8 ranks, got %d", fields[0], len(ranks))
	}
	for i, rankStr := range ranks {
		rank := 7 - i
		file := 0
		for j := 0; j < len(rankStr); j++ {
			ch := rankStr[j]
			if ch >= '1' && ch <= '8' {
				file += int(ch - '0')
				continue
			}
			piece, err := pieceFromFENLetter(ch)
			if err != nil {
				return Board{}, fmt.Errorf("invalid FEN placement %q: %w", fields[0], err)
			}
			if file > 7 {
				return Board{}, fmt.Errorf("invalid FEN placement %q: rank %d overflows", fields[0], rank+1)
			}
			b.squares[mustSquare(file, rank)] = piece
			file++
		}
		if file != 8 {
			return Board{}, fmt.Errorf("invalid FEN placement %q: rank %d has %d files", fields[0], rank+1, file)
		}
	}

	switch fields[1] {
	case "w":
		b.turn = White
	case "b":
		b.turn = Black
	default:
		return Board{}, fmt.Errorf("invalid FEN active color %q", fields[1])
	}

	castling, err := CastlingRightsFromFEN(fields[2])
	if err != nil {
		return Board{}, fmt.Errorf("invalid FEN castling field %q: %w", fields[2], err)
	}
	b.castling = castling

	if fields[3] != "-" {
		sq, err := ParseSquare(fields[3])
		if err != nil {
			return Board{}, fmt.Errorf("invalid FEN en passant field %q: %w", fields[3], err)
		}
		b.enPassant = sq
	}

	halfMove, err := strconv.Atoi(fields[4])
	if err != nil || halfMove < 0 {
		return Board{}, fmt.Errorf("invalid FEN half-move clock %q", fields[4])
	}
	b.halfMove = halfMove

	fullMove, err := strconv.Atoi(fields[5])
	if err != nil || fullMove < 1 {
		return Board{}, fmt.Errorf("invalid FEN full-move number %q", fields[5])
	}
	b.fullMove = fullMove

	return b, nil
}

// FEN encodes the position, the exact inverse of FromFEN.
func (b Board) FEN() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			p := b.squares[mustSquare(file, rank)]
			if p.IsEmpty() {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			letter, _ := p.fenLetter()
			sb.WriteByte(letter)
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	if b.turn == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	sb.WriteByte(' ')
	sb.WriteString(b.castling.FEN())

	sb.WriteByte(' ')
	sb.WriteString(b.enPassant.String())

	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(b.halfMove))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(b.fullMove))
	return sb.String()
}
