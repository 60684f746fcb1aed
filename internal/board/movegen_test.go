package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustFEN(t *testing.T, fen string) Board {
	t.Helper()
	b, err := FromFEN(fen)
	require.NoError(t, err)
	return b
}

func containsMove(moves []Move, uci string) bool {
	for _, m := range moves {
		if m.String() == uci {
			return true
		}
	}
	return false
}

func TestInitialPositionHasTwentyLegalMoves(t *testing.T) {
	moves := LegalMoves(Starting())
	assert.Len(t, moves, 20)
}

func TestFoolsMateIsCheckmate(t *testing.T) {
	b := mustFEN(t, "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 0 1")
	assert.True(t, IsInCheck(b))
	assert.True(t, IsCheckmate(b))
	assert.Empty(t, LegalMoves(b))
}

func TestPawnDoublePushNeedsEmptyPath(t *testing.T) {
	b := mustFEN(t, "4k3/8/8/8/8/4n3/4P3/4K3 w - - 0 1")
	moves := LegalMoves(b)
	assert.False(t, containsMove(moves, "e2e3"))
	assert.False(t, containsMove(moves, "e2e4"))
}

func TestEnPassantGeneratedAgainstBoardTarget(t *testing.T) {
	b := mustFEN(t, "rnbqkbnr/ppp1pppp/8/3pP3/8/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 3")
	moves := LegalMoves(b)
	require.True(t, containsMove(moves, "e5d6"))
	for _, m := range moves {
		if m.String() == "e5d6" {
			assert.True(t, m.IsEnPassant)
		}
	}
}

func TestPromotionGeneratesAllFourPieceTypes(t *testing.T) {
	b := mustFEN(t, "8/P6k/8/8/8/8/7K/8 w - - 0 1")
	moves := LegalMoves(b)
	for _, uci := range []string{"a7a8q", "a7a8r", "a7a8b", "a7a8n"} {
		assert.True(t, containsMove(moves, uci), uci)
	}
}

func TestCastlingGeneration(t *testing.T) {
	t.Run("both sides available", func(t *testing.T) {
		b := mustFEN(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
		moves := LegalMoves(b)
		assert.True(t, containsMove(moves, "e1g1"))
		assert.True(t, containsMove(moves, "e1c1"))
	})

	t.Run("blocked by occupied square", func(t *testing.T) {
		b := mustFEN(t, "4k3/8/8/8/8/8/8/4KB1R w K - 0 1")
		moves := LegalMoves(b)
		assert.False(t, containsMove(moves, "e1g1"))
	})

	t.Run("forbidden while in check", func(t *testing.T) {
		b := mustFEN(t, "4k3/8/8/8/8/8/4r3/4K2R w K - 0 1")
		moves := LegalMoves(b)
		assert.False(t, containsMove(moves, "e1g1"))
	})

	t.Run("forbidden through attacked transit square", func(t *testing.T) {
		b := mustFEN(t, "4k3/8/8/8/8/8/5r2/4K2R w K - 0 1")
		moves := LegalMoves(b)
		assert.False(t, containsMove(moves, "e1g1"))
	})

	t.Run("rights revoked after rook move", func(t *testing.T) {
		b := mustFEN(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
		next, err := b.MakeMove(Move{From: A1, To: B1})
		require.NoError(t, err)
		assert.False(t, next.Castling().WhiteQueenSide)
		assert.True(t, next.Castling().WhiteKingSide)
	})

	// Rights bookkeeping is the only defense against a vanished rook; a board
	// holding the K right without a rook on h1 still generates the castle.
	t.Run("rights-only rook bookkeeping", func(t *testing.T) {
		b := mustFEN(t, "4k3/8/8/8/8/8/8/4K3 w K - 0 1")
		moves := LegalMoves(b)
		assert.True(t, containsMove(moves, "e1g1"))
	})
}

func TestLegalMovesFiltersSelfCheck(t *testing.T) {
	// The e-file rook pins the white knight on e4.
	b := mustFEN(t, "4k3/8/4r3/8/4N3/8/8/4K3 w - - 0 1")
	e4, _ := ParseSquare("e4")
	for _, m := range LegalMoves(b) {
		assert.NotEqual(t, e4, m.From, "pinned knight must not move")
	}
}

func TestIsSquareAttacked(t *testing.T) {
	b := mustFEN(t, "4k3/8/8/8/8/2b5/3P4/4K3 w - - 0 1")
	d2, _ := ParseSquare("d2")
	b4, _ := ParseSquare("b4")
	e3, _ := ParseSquare("e3")
	assert.True(t, IsSquareAttacked(b, d2, Black), "bishop attacks d2")
	assert.True(t, IsSquareAttacked(b, b4, Black), "bishop attacks b4")
	assert.True(t, IsSquareAttacked(b, e3, White), "pawn attacks e3")
	assert.False(t, IsSquareAttacked(b, e3, Black), "no black piece reaches e3")

	// Sliding attacks stop at the first occupied square.
	blocked := mustFEN(t, "4k3/8/8/8/4r3/4P3/8/4K3 w - - 0 1")
	e2, _ := ParseSquare("e2")
	assert.False(t, IsSquareAttacked(blocked, e2, Black), "rook blocked by pawn on e3")
}
