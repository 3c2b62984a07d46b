package engine

import (
	"testing"

	"github.com/hydrochess/search/internal/chess"
	"github.com/hydrochess/search/internal/rules"
)

// TestQuiescenceStandPatFloor checks that quiescence
// still respects the stand-pat floor: a position whose only capture hangs
// material should not score worse than simply standing pat when the
// capture is clearly bad for the side to move.
func TestQuiescenceStandPatFloor(t *testing.T) {
	b := rules.NewEmptyBoard()
	sq := func(x, y int64) chess.Coordinate { return chess.Coordinate{X: x, Y: y} }

	b.Place(sq(1, 1), chess.NewPiece(chess.King, chess.White))
	b.Place(sq(8, 8), chess.NewPiece(chess.King, chess.Black))
	b.Place(sq(4, 4), chess.NewPiece(chess.Pawn, chess.White))
	b.Place(sq(5, 5), chess.NewPiece(chess.Pawn, chess.Black))
	// A guarding black queen makes capturing on (5,5) a loss of material.
	b.Place(sq(6, 6), chess.NewPiece(chess.Queen, chess.Black))

	s := NewSearcher(rules.NewEngine(), NewTranspositionTable(1))
	standPat := int32(Evaluate(b))
	score := s.quiescence(b, -Infinity, Infinity, 0)

	if score < standPat {
		t.Fatalf("quiescence score %d fell below the stand-pat floor %d", score, standPat)
	}
}

func TestQuiescenceNoLegalCapturesReturnsStandPat(t *testing.T) {
	b := rules.NewStartingBoard()
	s := NewSearcher(rules.NewEngine(), NewTranspositionTable(1))

	standPat := int32(Evaluate(b))
	score := s.quiescence(b, -Infinity, Infinity, 0)
	if score != standPat {
		t.Fatalf("expected quiescence with no captures to return the static eval, got %d want %d", score, standPat)
	}
}
