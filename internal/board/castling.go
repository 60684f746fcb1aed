package board

import "fmt"

// CastlingRights tracks the four independent castling permissions.
type CastlingRights struct {
	WhiteKingSide  bool
	WhiteQueenSide bool
	BlackKingSide  bool
	BlackQueenSide bool
}

// AllCastlingRights returns the starting-position rights.
func AllCastlingRights() CastlingRights {
	return CastlingRights{
		WhiteKingSide:  true,
		WhiteQueenSide: true,
		BlackKingSide:  true,
		BlackQueenSide: true,
	}
}

// None reports whether no right remains.
func (cr CastlingRights) None() bool {
	return !cr.WhiteKingSide && !cr.WhiteQueenSide && !cr.BlackKingSide && !cr.BlackQueenSide
}

// FEN encodes the rights as the FEN castling field, "-" when none remain.
func (cr CastlingRights) FEN() string {
	if cr.None() {
		return "-"
	}
	s := ""
	if cr.WhiteKingSide {
		s += "K"
	}
	if cr.WhiteQueenSide {
		s += "Q"
	}
	if cr.BlackKingSide {
		s += "k"
	}
	if cr.BlackQueenSide {
		s += "q"
	}
	return s
}

// CastlingRightsFromFEN decodes the FEN castling field.
func CastlingRightsFromFEN(field string) (CastlingRights, error) {
	var cr CastlingRights
	if field == "-" {
		return cr, nil
	}
	if field == "" {
		return cr, fmt.Errorf("empty castling field")
	}
	for i := 0; i < len(field); i++ {
		switch field[i] {
		case 'K':
			cr.WhiteKingSide = true
		case 'Q':
			cr.WhiteQueenSide = true
		case 'k':
			cr.BlackKingSide = true
		case 'q':
			cr.BlackQueenSide = true
		default:
			return CastlingRights{}, fmt.Errorf("unrecognized castling flag %q", string(field[i]))
		}
	}
	return cr, nil
}
