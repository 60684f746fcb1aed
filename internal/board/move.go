package board

import (
	"fmt"
	"strings"
)

// Move describes a single move in coordinate form. Equality is structural.
type Move struct {
	From        Square
	To          Square
	Promotion   PieceType
	IsEnPassant bool
	IsCastle    bool
}

// String encodes the move as <from><to>[promotion-letter], e.g. "e2e4" or "e7e8q".
func (m Move) String() string {
	s := m.From.String() + m.To.String()
	if letter := m.Promotion.promoLetter(); letter != 0 {
		s += string(letter)
	}
	return s
}

// SameAction reports whether two moves describe the same from/to/promotion
// triple, ignoring the derived en passant and castle flags. Callers matching
// parsed input against generated moves use this rather than full equality.
func (m Move) SameAction(o Move) bool {
	return m.From == o.From && m.To == o.To && m.Promotion == o.Promotion
}

// ParseMove decodes 4- or 5-character coordinate notation. The en passant and
// castle flags cannot be derived from the text alone; they are resolved when
// the move is matched against the legal move set for a position.
func ParseMove(s string) (Move, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) != 4 && len(s) != 5 {
		return Move{}, fmt.Errorf("invalid move %q: want 4 or 5 characters", s)
	}
	from, err := ParseSquare(s[:2])
	if err != nil {
		return Move{}, fmt.Errorf("invalid move %q: %w", s, err)
	}
	to, err := ParseSquare(s[2:4])
	if err != nil {
		return Move{}, fmt.Errorf("invalid move %q: %w", s, err)
	}
	move := Move{From: from, To: to}
	if len(s) == 5 {
		switch s[4] {
		case 'q':
			move.Promotion = Queen
		case 'r':
			move.Promotion = Rook
		case 'b':
			move.Promotion = Bishop
		case 'n':
			move.Promotion = Knight
		default:
			return Move{}, fmt.Errorf("invalid promotion letter %q in move %q", string(s[4]), s)
		}
	}
	return move, nil
}
