package rules

import "github.com/hydrochess/search/internal/chess"

// NewStartingBoard lays out a classical 8x8 opening array embedded in the
// unbounded coordinate space: files 1..8, white's back rank at Y=1,
// black's at Y=8. Nothing stops a caller from placing pieces further out
// — this is just a convenient, familiar starting point for tests and the
// CLI's default position.
func NewStartingBoard() *Board {
	b := NewBoard(
		map[chess.Color]int64{chess.White: 8, chess.Black: 1},
		map[chess.Color]int64{chess.White: 2, chess.Black: 7},
	)

	backRank := []chess.PieceType{
		chess.Rook, chess.Knight, chess.Bishop, chess.Queen,
		chess.King, chess.Bishop, chess.Knight, chess.Rook,
	}
	for x, pt := range backRank {
		b.Place(chess.Coordinate{X: int64(x + 1), Y: 1}, chess.NewPiece(pt, chess.White))
		b.Place(chess.Coordinate{X: int64(x + 1), Y: 8}, chess.NewPiece(pt, chess.Black))
	}
	for x := int64(1); x <= 8; x++ {
		b.Place(chess.Coordinate{X: x, Y: 2}, chess.NewPiece(chess.Pawn, chess.White))
		b.Place(chess.Coordinate{X: x, Y: 7}, chess.NewPiece(chess.Pawn, chess.Black))
	}
	return b
}

// NewEmptyBoard creates a board with no pieces, for hand-built test
// positions. promotionRank/pawnHomeRank default to the classical 8/1 and
// 2/7 split used by NewStartingBoard.
func NewEmptyBoard() *Board {
	return NewBoard(
		map[chess.Color]int64{chess.White: 8, chess.Black: 1},
		map[chess.Color]int64{chess.White: 2, chess.Black: 7},
	)
}
