package engine

import (
	"testing"

	"github.com/hydrochess/search/internal/chess"
	"github.com/hydrochess/search/internal/rules"
)

func TestHashStableAcrossCalls(t *testing.T) {
	b := rules.NewStartingBoard()
	h1 := HashPosition(b)
	h2 := HashPosition(b)
	if h1 != h2 {
		t.Fatalf("hashing the same position twice gave different values: %x vs %x", h1, h2)
	}
}

func TestHashChangesAfterMove(t *testing.T) {
	b := rules.NewStartingBoard()
	re := rules.NewEngine()
	before := HashPosition(b)

	m := re.LegalMoves(b)[0]
	re.Make(b, m)
	after := HashPosition(b)

	if before == after {
		t.Fatalf("hash did not change after a move was made")
	}
}

func TestHashRestoredByUnmake(t *testing.T) {
	b := rules.NewStartingBoard()
	re := rules.NewEngine()
	before := HashPosition(b)

	for _, m := range re.LegalMoves(b) {
		re.Make(b, m)
		re.Unmake(b)
		if got := HashPosition(b); got != before {
			t.Fatalf("hash after make+unmake(%s) = %x, want %x", m, got, before)
		}
	}
}

func TestHashFoldsDistantCoordinates(t *testing.T) {
	// A position with coordinates far beyond the fold boundary should
	// still resolve to a finite, deterministic key rather than panicking
	// or overflowing.
	farBoard := rules.NewEmptyBoard()
	farBoard.Place(chess.Coordinate{X: 10_000, Y: -10_000}, chess.NewPiece(chess.King, chess.White))
	farBoard.Place(chess.Coordinate{X: 8, Y: 8}, chess.NewPiece(chess.King, chess.Black))

	h1 := HashPosition(farBoard)
	h2 := HashPosition(farBoard)
	if h1 != h2 {
		t.Fatalf("hashing a position with far-out coordinates was not stable")
	}
}
