package chess

// Position is the read-only contract the search core needs from a
// position: side to move, check status, and piece placement. It is
// deliberately narrow — spec.md §1 treats the rules engine as an
// external collaborator and §9 calls for "an abstract handle and a
// capability bundle". The core never looks past these methods.
type Position interface {
	SideToMove() Color
	InCheck() bool
	PieceAt(c Coordinate) (Piece, bool)
	AllPieceCoords() []Coordinate
}

// RulesEngine is the set of mutating/generating operations the search
// core may invoke, and no others (spec.md §4.A).
type RulesEngine interface {
	// LegalMoves returns every legal move for the side to move.
	LegalMoves(pos Position) []*Move

	// Make mutates pos in place, applying m.
	Make(pos Position, m *Move)

	// Unmake rewinds the most recently applied move (real or null).
	Unmake(pos Position)

	// MakeNull flips the side to move without altering pieces. Must be
	// rewound by Unmake like any other move.
	MakeNull(pos Position)

	// GenerateMove materializes full flags/fields from a minimal draft.
	GenerateMove(pos Position, draft MoveDraft) *Move

	// FilterCaptures returns the subset of moves that are captures or
	// en-passant captures.
	FilterCaptures(pos Position, moves []*Move) []*Move
}
