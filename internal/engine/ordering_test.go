package engine

import (
	"testing"

	"github.com/hydrochess/search/internal/chess"
)

func move(fx, fy, tx, ty int64) *chess.Move {
	return &chess.Move{From: chess.Coordinate{X: fx, Y: fy}, To: chess.Coordinate{X: tx, Y: ty}}
}

func noPieceTypes(*chess.Move) (chess.PieceType, chess.PieceType) { return chess.Pawn, chess.Pawn }

func TestOrderMovesPVFirst(t *testing.T) {
	mo := NewMoveOrderer()
	a, b, c := move(1, 2, 1, 4), move(2, 1, 3, 3), move(7, 7, 7, 6)

	ordered := mo.OrderMoves([]*chess.Move{a, b, c}, 0, nil, b, nil, noPieceTypes, true)
	if ordered[0] != b {
		t.Fatalf("expected the PV move first, got %v", ordered[0])
	}
}

func TestOrderMovesTTBeatsOrdinaryQuiet(t *testing.T) {
	mo := NewMoveOrderer()
	tt, other := move(1, 2, 1, 4), move(2, 1, 3, 3)

	ordered := mo.OrderMoves([]*chess.Move{other, tt}, 0, tt, nil, nil, noPieceTypes, false)
	if ordered[0] != tt {
		t.Fatalf("expected the TT move first, got %v", ordered[0])
	}
}

func TestOrderMovesMVVLVA(t *testing.T) {
	mo := NewMoveOrderer()

	captureQueen := &chess.Move{From: chess.Coordinate{X: 1, Y: 1}, To: chess.Coordinate{X: 4, Y: 4}, Capture: true}
	capturePawn := &chess.Move{From: chess.Coordinate{X: 2, Y: 2}, To: chess.Coordinate{X: 3, Y: 3}, Capture: true}

	pieceTypes := func(m *chess.Move) (chess.PieceType, chess.PieceType) {
		if m == captureQueen {
			return chess.Knight, chess.Queen
		}
		return chess.Knight, chess.Pawn
	}

	ordered := mo.OrderMoves([]*chess.Move{capturePawn, captureQueen}, 0, nil, nil, nil, pieceTypes, false)
	if ordered[0] != captureQueen {
		t.Fatalf("expected capturing the higher-value victim to be ordered first")
	}
}

func TestKillerSlotsStayDistinct(t *testing.T) {
	mo := NewMoveOrderer()
	a, b, c := move(1, 1, 1, 2), move(2, 2, 2, 3), move(3, 3, 3, 4)

	mo.AddKiller(5, a)
	mo.AddKiller(5, b)

	if !chess.SameCoords(mo.killers[5][0], b) || !chess.SameCoords(mo.killers[5][1], a) {
		t.Fatalf("expected b in slot 0 and a in slot 1, got %v / %v", mo.killers[5][0], mo.killers[5][1])
	}

	// Re-adding the current slot-0 occupant must not duplicate it into slot 1.
	mo.AddKiller(5, b)
	if chess.SameCoords(mo.killers[5][1], b) {
		t.Fatalf("re-adding the slot-0 killer leaked a duplicate into slot 1")
	}

	mo.AddKiller(5, c)
	if chess.SameCoords(mo.killers[5][0], mo.killers[5][1]) {
		t.Fatalf("killer slots at the same ply must never hold the same move")
	}
}

func TestHistoryClampedToRange(t *testing.T) {
	mo := NewMoveOrderer()
	m := move(1, 1, 1, 2)

	for i := 0; i < 100; i++ {
		mo.UpdateHistory(m, 10, true)
	}
	if v := mo.history[m.Key()]; v != historyMax {
		t.Fatalf("history should clamp at historyMax=%d, got %d", historyMax, v)
	}

	for i := 0; i < 100; i++ {
		mo.UpdateHistory(m, 10, false)
	}
	if v := mo.history[m.Key()]; v < 0 {
		t.Fatalf("history should never go negative, got %d", v)
	}
}

func TestDecayShrinksHistoryMonotonically(t *testing.T) {
	mo := NewMoveOrderer()
	m := move(1, 1, 1, 2)
	mo.UpdateHistory(m, 10, true)
	before := mo.history[m.Key()]

	mo.Decay()
	after := mo.history[m.Key()]

	if after >= before {
		t.Fatalf("expected decay to shrink history (%d -> %d)", before, after)
	}
}
