package engine

import "github.com/hydrochess/search/internal/chess"

// victimClassBonus implements the MVV part of MVV/LVA: a flat bonus per
// victim class, independent of the attacker.
func victimClassBonus(pt chess.PieceType) int {
	switch pt {
	case chess.Queen, chess.RoyalQueen, chess.Amazon:
		return 5000
	case chess.Rook, chess.Chancellor:
		return 4000
	case chess.Bishop, chess.Archbishop:
		return 3000
	case chess.Knight, chess.Knightrider:
		return 2000
	case chess.Pawn:
		return 1000
	default:
		return 500
	}
}

// promotionClassBonus scores a quiet (non-capturing) promotion by the
// class of piece promoted to.
func promotionClassBonus(pt chess.PieceType) int {
	switch pt {
	case chess.Queen:
		return 4000
	case chess.Rook:
		return 3000
	case chess.Bishop:
		return 2000
	case chess.Knight:
		return 1000
	default:
		return 0
	}
}

// moveKeyHash folds a MoveKey's four coordinate fields into one 64-bit
// value so it can be XORed into a continuation-history key.
func moveKeyHash(k chess.MoveKey) uint64 {
	h := uint64(uint32(k.FromX)) * hashPrimeX
	h ^= rotl64(uint64(uint32(k.FromY))*hashPrimeY, 13)
	h ^= rotl64(uint64(uint32(k.ToX))*hashPrimePiece, 29)
	h ^= rotl64(uint64(uint32(k.ToY))*hashPrimeX, 41)
	return h
}

// MoveOrderer ranks candidate moves for a search. Its tables — killers,
// butterfly history, counter moves, continuation history — persist across
// a single search, are cleared at the start of each search, and the two
// history tables are decayed between its iterative-deepening iterations.
type MoveOrderer struct {
	killers [MaxPly][2]*chess.Move

	history      map[chess.MoveKey]int
	counterMoves map[chess.MoveKey]*chess.Move
	continuation map[uint64]int
}

// NewMoveOrderer creates an empty orderer.
func NewMoveOrderer() *MoveOrderer {
	return &MoveOrderer{
		history:      make(map[chess.MoveKey]int),
		counterMoves: make(map[chess.MoveKey]*chess.Move),
		continuation: make(map[uint64]int),
	}
}

// Clear resets all tables for a fresh search.
func (mo *MoveOrderer) Clear() {
	for i := range mo.killers {
		mo.killers[i][0] = nil
		mo.killers[i][1] = nil
	}
	mo.history = make(map[chess.MoveKey]int)
	mo.counterMoves = make(map[chess.MoveKey]*chess.Move)
	mo.continuation = make(map[uint64]int)
}

// Decay applies the history decay policy between iterative-deepening
// iterations: a monotone multiplicative shrink so recent cutoff evidence
// dominates without being wiped outright.
func (mo *MoveOrderer) Decay() {
	for k, v := range mo.history {
		mo.history[k] = v * historyDecayNum / historyDecayDen
	}
	for k, v := range mo.continuation {
		mo.continuation[k] = v * historyDecayNum / historyDecayDen
	}
}

func (mo *MoveOrderer) isKiller(ply int, m *chess.Move) bool {
	return chess.SameCoords(mo.killers[ply][0], m) || chess.SameCoords(mo.killers[ply][1], m)
}

// killerSlot reports which killer slot (0 or 1) m occupies at ply, or -1.
func (mo *MoveOrderer) killerSlot(ply int, m *chess.Move) int {
	if chess.SameCoords(mo.killers[ply][0], m) {
		return 0
	}
	if chess.SameCoords(mo.killers[ply][1], m) {
		return 1
	}
	return -1
}

// AddKiller records a quiet move that caused a beta cutoff at ply, shifting
// the prior slot-0 occupant into slot 1. A move already present is not
// re-inserted, preserving the "slot0 != slot1" invariant.
func (mo *MoveOrderer) AddKiller(ply int, m *chess.Move) {
	if chess.SameCoords(mo.killers[ply][0], m) {
		return
	}
	mo.killers[ply][1] = mo.killers[ply][0]
	killerCopy := *m
	mo.killers[ply][0] = &killerCopy
}

// UpdateHistory applies the butterfly history bonus/penalty for a cutoff
// at the given depth, clamping to [0, HISTORY_MAX].
func (mo *MoveOrderer) UpdateHistory(m *chess.Move, depth int, bonus bool) {
	key := m.Key()
	delta := depth * depth * historyBonusDepth
	if !bonus {
		delta /= 2
	}
	v := mo.history[key]
	if bonus {
		v += delta
	} else {
		v -= delta
	}
	mo.history[key] = clampInt(v, 0, historyMax)
}

// SetCounterMove records that m replied to prevMove and produced a cutoff.
func (mo *MoveOrderer) SetCounterMove(prevMove, m *chess.Move) {
	if prevMove == nil {
		return
	}
	mCopy := *m
	mo.counterMoves[prevMove.Key()] = &mCopy
}

// CounterMove returns the recorded reply to prevMove, if any.
func (mo *MoveOrderer) CounterMove(prevMove *chess.Move) *chess.Move {
	if prevMove == nil {
		return nil
	}
	return mo.counterMoves[prevMove.Key()]
}

// UpdateContinuation applies a bonus/penalty to the (previous move, this
// move) pair, the same clamp as butterfly history.
func (mo *MoveOrderer) UpdateContinuation(prevMove, m *chess.Move, depth int, bonus bool) {
	if prevMove == nil {
		return
	}
	key := moveKeyHash(prevMove.Key()) ^ moveKeyHash(m.Key())
	delta := depth * depth * historyBonusDepth
	if !bonus {
		delta /= 2
	}
	v := mo.continuation[key]
	if bonus {
		v += delta
	} else {
		v -= delta
	}
	mo.continuation[key] = clampInt(v, 0, historyMax)
}

func (mo *MoveOrderer) continuationScore(prevMove, m *chess.Move) int {
	if prevMove == nil {
		return 0
	}
	key := moveKeyHash(prevMove.Key()) ^ moveKeyHash(m.Key())
	return mo.continuation[key]
}

// OrderMoves returns a copy of moves sorted highest score first (a stable
// insertion sort; moves itself is left unchanged) per the priority ladder in §4.D: PV, TT, MVV/LVA captures,
// quiet promotions, killers, counter move, continuation history, butterfly
// history.
func (mo *MoveOrderer) OrderMoves(moves []*chess.Move, ply int, ttMove, pvMove, prevMove *chess.Move, pieceTypes func(*chess.Move) (attacker, victim chess.PieceType), usePV bool) []*chess.Move {
	scores := make([]int, len(moves))
	for i, m := range moves {
		scores[i] = mo.scoreMove(m, ply, ttMove, pvMove, prevMove, pieceTypes, usePV)
	}

	ordered := append([]*chess.Move(nil), moves...)
	for i := 1; i < len(ordered); i++ {
		j := i
		for j > 0 && scores[j-1] < scores[j] {
			scores[j-1], scores[j] = scores[j], scores[j-1]
			ordered[j-1], ordered[j] = ordered[j], ordered[j-1]
			j--
		}
	}
	return ordered
}

func (mo *MoveOrderer) scoreMove(m *chess.Move, ply int, ttMove, pvMove, prevMove *chess.Move, pieceTypes func(*chess.Move) (attacker, victim chess.PieceType), usePV bool) int {
	if usePV && chess.SameCoords(pvMove, m) {
		return pvMoveBonus
	}
	if chess.SameCoords(ttMove, m) {
		return ttMoveBonus
	}

	if m.Capture {
		var attacker, victim chess.PieceType
		if pieceTypes != nil {
			attacker, victim = pieceTypes(m)
		}
		score := captureBase + victimClassBonus(victim) - 10*int(attacker)
		if m.HasPromotion {
			score += promotionClassBonus(m.Promotion)
		}
		return score
	}

	if m.HasPromotion {
		return promotionBase + promotionClassBonus(m.Promotion)
	}

	score := 0
	switch mo.killerSlot(ply, m) {
	case 0:
		score += killerBonus1
	case 1:
		score += killerBonus2
	}

	if chess.SameCoords(mo.CounterMove(prevMove), m) {
		score += counterBonus
	}

	score += mo.continuationScore(prevMove, m) / 32
	score += 1500 * mo.history[m.Key()] / historyMax
	return score
}
