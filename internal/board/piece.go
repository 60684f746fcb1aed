package board

import "fmt"

// Color identifies a chess side.
type Color uint8

const (
	White Color = iota
	Black
)

// Other returns the opposing color.
func (c Color) Other() Color {
	if c == White {
		return Black
	}
	return White
}

// String implements fmt.Stringer.
func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

// PieceType identifies the kind of a piece, without color.
type PieceType uint8

const (
	NoPieceType PieceType = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

var pieceTypeNames = map[PieceType]string{
	Pawn:   "pawn",
	Knight: "knight",
	Bishop: "bishop",
	Rook:   "rook",
	Queen:  "queen",
	King:   "king",
}

// String implements fmt.Stringer.
func (pt PieceType) String() string {
	if name, ok := pieceTypeNames[pt]; ok {
		return name
	}
	return "none"
}

// promoLetter returns the lowercase UCI promotion letter for the type.
func (pt PieceType) promoLetter() byte {
	switch pt {
	case Knight:
		return 'n'
	case Bishop:
		return 'b'
	case Rook:
		return 'r'
	case Queen:
		return 'q'
	}
	return 0
}

// Piece is an immutable (type, color) pair. The zero value is the empty square.
type Piece struct {
	Type  PieceType
	Color Color
}

// NoPiece is the empty-square value.
var NoPiece = Piece{}

// IsEmpty reports whether the piece denotes an empty square.
func (p Piece) IsEmpty() bool { return p.Type == NoPieceType }

// fenLetter returns the FEN piece letter, uppercase for White.
func (p Piece) fenLetter() (byte, error) {
	var letter byte
	switch p.Type {
	case Pawn:
		letter = 'p'
	case Knight:
		letter = 'n'
	case Bishop:
		letter = 'b'
	case Rook:
		letter = 'r'
	case Queen:
		letter = 'q'
	case King:
		letter = 'k'
	default:
		return 0, fmt.Errorf("no FEN letter for empty piece")
	}
	if p.Color == White {
		letter -= 'a' - 'A'
	}
	return letter, nil
}

// pieceFromFENLetter decodes a FEN placement letter.
func pieceFromFENLetter(letter byte) (Piece, error) {
	color := Black
	if letter >= 'A' && letter <= 'Z' {
		color = White
		letter += 'a' - 'A'
	}
	var pt PieceType
	switch letter {
	case 'p':
		pt = Pawn
	case 'n':
		pt = Knight
	case 'b':
		pt = Bishop
	case 'r':
		pt = Rook
	case 'q':
		pt = Queen
	case 'k':
		pt = King
	default:
		return NoPiece, fmt.Errorf("unrecognized piece letter %q", string(letter))
	}
	return Piece{Type: pt, Color: color}, nil
}
