package board

import (
	"fmt"
	"strings"
)

// Square identifies one of the 64 board squares, a1=0 .. h8=63.
type Square uint8

// NoSquare is the out-of-board sentinel used for an absent en passant target.
const NoSquare Square = 64

// Named squares referenced by castling and tests.
const (
	A1 Square = 0
	B1 Square = 1
	C1 Square = 2
	D1 Square = 3
	E1 Square = 4
	F1 Square = 5
	G1 Square = 6
	H1 Square = 7
	D4 Square = 27
	E4 Square = 28
	D5 Square = 35
	E5 Square = 36
	A8 Square = 56
	B8 Square = 57
	C8 Square = 58
	D8 Square = 59
	E8 Square = 60
	F8 Square = 61
	G8 Square = 62
	H8 Square = 63
)

// NewSquare builds a square from file and rank coordinates, both in [0,7].
func NewSquare(file, rank int) (Square, error) {
	if file < 0 || file > 7 || rank < 0 || rank > 7 {
		return NoSquare, fmt.Errorf("square coordinates out of range: file=%d rank=%d", file, rank)
	}
	return Square(rank*8 + file), nil
}

// mustSquare is used internally where coordinates are already bounds-checked.
func mustSquare(file, rank int) Square {
	return Square(rank*8 + file)
}

// ParseSquare decodes algebraic notation such as "e4".
func ParseSquare(s string) (Square, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) != 2 {
		return NoSquare, fmt.Errorf("invalid square %q", s)
	}
	file := int(s[0] - 'a')
	rank := int(s[1] - '1')
	return NewSquare(file, rank)
}

// File returns the file coordinate, 0 = a-file.
func (sq Square) File() int { return int(sq) % 8 }

// Rank returns the rank coordinate, 0 = rank 1.
func (sq Square) Rank() int { return int(sq) / 8 }

// String implements fmt.Stringer and returns algebraic notation.
func (sq Square) String() string {
	if sq >= NoSquare {
		return "-"
	}
	return string([]byte{byte('a' + sq.File()), byte('1' + sq.Rank())})
}
