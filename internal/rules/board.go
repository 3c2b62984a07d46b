// Package rules is a concrete, playable rules engine for the infinite
// board variant described in spec.md §3. It exists to make
// internal/engine exercisable and testable; the search core never
// imports this package, only cmd/hydrosearch and internal/protocol wire
// them together through the chess.Position / chess.RulesEngine contract.
//
// Coordinates are unbounded, but every generated move lands inside the
// smallest rectangle that contains all pieces currently on the board.
package rules

import "github.com/hydrochess/search/internal/chess"

// Board is a sparse infinite-board position: pieces are stored in a map
// keyed by coordinate rather than a fixed-size array, since the board has
// no edges.
type Board struct {
	pieces map[chess.Coordinate]chess.Piece
	side   chess.Color

	// promotionRank[c] is the Y rank a pawn of color c promotes upon
	// reaching (spec.md §4.C treats pawn ranks as relative to the king,
	// but a pawn still needs a concrete promotion line; see DESIGN.md).
	promotionRank map[chess.Color]int64

	// pawnHomeRank[c] is the Y rank pawns of color c start on, the only
	// rank from which a double step is legal.
	pawnHomeRank map[chess.Color]int64

	// enPassant is the capture-target square created by the most recent
	// pawn double step, or nil.
	enPassant *chess.Coordinate

	undo []undoRecord
}

type undoRecord struct {
	move           *chess.Move // nil for a null move
	captured       chess.Piece
	hadCaptured    bool
	capturedAt     chess.Coordinate
	prevEnPassant  *chess.Coordinate
	prevSide       chess.Color
	movedFromPiece chess.Piece
}

// NewBoard creates an empty board with the given promotion/home ranks.
func NewBoard(promotionRank, pawnHomeRank map[chess.Color]int64) *Board {
	return &Board{
		pieces:        make(map[chess.Coordinate]chess.Piece),
		side:          chess.White,
		promotionRank: promotionRank,
		pawnHomeRank:  pawnHomeRank,
	}
}

// Place sets a piece on a square directly (board setup only, not a move).
func (b *Board) Place(c chess.Coordinate, p chess.Piece) {
	b.pieces[c] = p
}

// SetSideToMove overrides the side to move directly (board setup only,
// not a move) — for hand-built positions where the side to move isn't
// simply whoever moves second from the classical start.
func (b *Board) SetSideToMove(c chess.Color) {
	b.side = c
}

// SideToMove implements chess.Position.
func (b *Board) SideToMove() chess.Color {
	return b.side
}

// PieceAt implements chess.Position.
func (b *Board) PieceAt(c chess.Coordinate) (chess.Piece, bool) {
	p, ok := b.pieces[c]
	return p, ok
}

// AllPieceCoords implements chess.Position.
func (b *Board) AllPieceCoords() []chess.Coordinate {
	coords := make([]chess.Coordinate, 0, len(b.pieces))
	for c := range b.pieces {
		coords = append(coords, c)
	}
	return coords
}

// InCheck implements chess.Position: true if any royal piece of the side
// to move is attacked.
func (b *Board) InCheck() bool {
	return b.inCheck(b.side)
}

func (b *Board) inCheck(side chess.Color) bool {
	for c, p := range b.pieces {
		if p.Color() == side && p.Type().IsRoyal() {
			if b.isAttacked(c, side.Other()) {
				return true
			}
		}
	}
	return false
}

// Copy returns a deep copy of the board, including its undo history.
func (b *Board) Copy() *Board {
	nb := &Board{
		pieces:        make(map[chess.Coordinate]chess.Piece, len(b.pieces)),
		side:          b.side,
		promotionRank: b.promotionRank,
		pawnHomeRank:  b.pawnHomeRank,
	}
	for c, p := range b.pieces {
		nb.pieces[c] = p
	}
	if b.enPassant != nil {
		ep := *b.enPassant
		nb.enPassant = &ep
	}
	nb.undo = append([]undoRecord(nil), b.undo...)
	return nb
}
