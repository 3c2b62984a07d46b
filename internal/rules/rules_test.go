package rules

import (
	"testing"

	"github.com/hydrochess/search/internal/chess"
)

func TestStartingPositionMoveCount(t *testing.T) {
	b := NewStartingBoard()
	re := NewEngine()
	moves := re.LegalMoves(b)
	if len(moves) != 20 {
		t.Fatalf("expected 20 legal moves from the classical start, got %d", len(moves))
	}
}

func TestMakeUnmakeRoundTrip(t *testing.T) {
	b := NewStartingBoard()
	re := NewEngine()
	before := snapshot(b)

	for _, m := range re.LegalMoves(b) {
		re.Make(b, m)
		re.Unmake(b)
		after := snapshot(b)
		if !boardsEqual(before, after) {
			t.Fatalf("unmake(%s) did not restore the board", m)
		}
	}
}

func TestMakeNullUnmakeRoundTrip(t *testing.T) {
	b := NewStartingBoard()
	re := NewEngine()
	before := snapshot(b)
	sideBefore := b.SideToMove()

	re.MakeNull(b)
	if b.SideToMove() == sideBefore {
		t.Fatalf("MakeNull did not flip the side to move")
	}
	re.Unmake(b)
	if b.SideToMove() != sideBefore {
		t.Fatalf("Unmake after MakeNull did not restore the side to move")
	}
	if !boardsEqual(before, snapshot(b)) {
		t.Fatalf("Unmake after MakeNull did not restore the board")
	}
}

func TestFoolsMateIsCheckmate(t *testing.T) {
	b := NewStartingBoard()
	re := NewEngine()

	playSAN := func(from, to chess.Coordinate) {
		m := re.GenerateMove(b, chess.MoveDraft{From: from, To: to})
		re.Make(b, m)
	}

	sq := func(x, y int64) chess.Coordinate { return chess.Coordinate{X: x, Y: y} }

	playSAN(sq(6, 2), sq(6, 3)) // f2-f3
	playSAN(sq(5, 7), sq(5, 6)) // e7-e6
	playSAN(sq(7, 2), sq(7, 4)) // g2-g4
	playSAN(sq(4, 8), sq(8, 4)) // Qd8-h4#

	if !b.InCheck() {
		t.Fatalf("expected white to be in check after fool's mate sequence")
	}
	if len(re.LegalMoves(b)) != 0 {
		t.Fatalf("expected no legal moves (checkmate), got %d", len(re.LegalMoves(b)))
	}
}

func TestStalemateHasNoLegalMoves(t *testing.T) {
	b := NewEmptyBoard()
	sq := func(x, y int64) chess.Coordinate { return chess.Coordinate{X: x, Y: y} }

	// The textbook KQK stalemate: White Kf7, Qg6, Black Kh8 to move.
	b.Place(sq(6, 7), chess.NewPiece(chess.King, chess.White))
	b.Place(sq(7, 6), chess.NewPiece(chess.Queen, chess.White))
	b.Place(sq(8, 8), chess.NewPiece(chess.King, chess.Black))
	b.side = chess.Black

	re := NewEngine()
	if b.InCheck() {
		t.Fatalf("expected the stalemated side not to be in check")
	}
	if len(re.LegalMoves(b)) != 0 {
		t.Fatalf("expected 0 legal moves in the stalemate position, got %d", len(re.LegalMoves(b)))
	}
}

func TestEnPassantCapture(t *testing.T) {
	b := NewEmptyBoard()
	sq := func(x, y int64) chess.Coordinate { return chess.Coordinate{X: x, Y: y} }

	b.Place(sq(1, 1), chess.NewPiece(chess.King, chess.White))
	b.Place(sq(8, 8), chess.NewPiece(chess.King, chess.Black))
	b.Place(sq(5, 2), chess.NewPiece(chess.Pawn, chess.White))
	b.Place(sq(4, 4), chess.NewPiece(chess.Pawn, chess.Black))

	re := NewEngine()
	re.Make(b, re.GenerateMove(b, chess.MoveDraft{From: sq(5, 2), To: sq(5, 4)}))

	ep := re.GenerateMove(b, chess.MoveDraft{From: sq(4, 4), To: sq(5, 3)})
	if !ep.EnPassant || !ep.Capture {
		t.Fatalf("expected the generated move to be an en-passant capture, got %+v", ep)
	}
	re.Make(b, ep)
	if _, ok := b.PieceAt(sq(5, 4)); ok {
		t.Fatalf("expected the captured pawn to be removed from its square")
	}
	re.Unmake(b)
	if p, ok := b.PieceAt(sq(5, 4)); !ok || p.Type() != chess.Pawn {
		t.Fatalf("expected unmake to restore the captured pawn")
	}
}

func TestPromotionChoicesAllFourPieces(t *testing.T) {
	b := NewEmptyBoard()
	sq := func(x, y int64) chess.Coordinate { return chess.Coordinate{X: x, Y: y} }

	b.Place(sq(1, 1), chess.NewPiece(chess.King, chess.White))
	b.Place(sq(8, 8), chess.NewPiece(chess.King, chess.Black))
	b.Place(sq(1, 7), chess.NewPiece(chess.Pawn, chess.White))

	re := NewEngine()
	moves := re.LegalMoves(b)
	promos := map[chess.PieceType]bool{}
	for _, m := range moves {
		if m.From == sq(1, 7) && m.HasPromotion {
			promos[m.Promotion] = true
		}
	}
	for _, want := range []chess.PieceType{chess.Knight, chess.Bishop, chess.Rook, chess.Queen} {
		if !promos[want] {
			t.Errorf("missing promotion choice %s", want)
		}
	}
}

func snapshot(b *Board) map[chess.Coordinate]chess.Piece {
	out := make(map[chess.Coordinate]chess.Piece, len(b.pieces))
	for c, p := range b.pieces {
		out[c] = p
	}
	return out
}

func boardsEqual(a, b map[chess.Coordinate]chess.Piece) bool {
	if len(a) != len(b) {
		return false
	}
	for c, p := range a {
		if b[c] != p {
			return false
		}
	}
	return true
}
