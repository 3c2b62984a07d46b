package engine

import (
	"math"
	"time"

	"github.com/hydrochess/search/internal/chess"
)

// Searcher holds all per-search state: the heuristic tables, the
// transposition table, node/time bookkeeping and the triangular PV. One
// Searcher runs one search at a time; FindBestMove resets it per call.
type Searcher struct {
	rules chess.RulesEngine
	tt    *TranspositionTable
	orderer *MoveOrderer

	nodes    int64
	deadline time.Time
	stopped  bool

	pv    [MaxPly][MaxPly]*chess.Move
	pvLen [MaxPly]int

	followPV bool
	scorePV  bool

	// prevMove[ply] is the move made from the position at ply, recorded
	// before recursing to ply+1; at ply, the move that led to the current
	// position is prevMove[ply-1]. Used for counter-move and
	// continuation-history lookups.
	prevMove [MaxPly]*chess.Move

	ttHits int64
}

// NewSearcher builds a searcher over the given rules engine and
// transposition table. The rules engine is the only way the searcher ever
// touches concrete position state (spec.md §4.A).
func NewSearcher(rules chess.RulesEngine, tt *TranspositionTable) *Searcher {
	return &Searcher{
		rules:   rules,
		tt:      tt,
		orderer: NewMoveOrderer(),
	}
}

// deadlineExceeded reports whether the deadline has passed and, if so,
// sets the stop flag every caller checks after unmaking a move.
func (s *Searcher) deadlineExceeded() bool {
	if !s.deadline.IsZero() && time.Now().After(s.deadline) {
		s.stopped = true
		return true
	}
	return false
}

// pieceTypesForMove looks up the mover's and the captured piece's types
// before a move is applied — ordering needs this for MVV/LVA, and the
// move itself carries only coordinates and flags, not piece identity.
func pieceTypesForMove(pos chess.Position, m *chess.Move) (attacker, victim chess.PieceType) {
	if p, ok := pos.PieceAt(m.From); ok {
		attacker = p.Type()
	}
	if v, ok := pos.PieceAt(m.To); ok {
		victim = v.Type()
	}
	return
}

// hasNonPawnMaterial reports whether the side to move has any piece beyond
// pawns and the king. The reference implementation this module is
// descended from always returned true here, making the null-move guard a
// no-op; this module keeps it a real predicate (see DESIGN.md).
func hasNonPawnMaterial(pos chess.Position) bool {
	side := pos.SideToMove()
	for _, c := range pos.AllPieceCoords() {
		p, ok := pos.PieceAt(c)
		if !ok || p.Color() != side {
			continue
		}
		switch p.Type() {
		case chess.Pawn, chess.King, chess.RoyalQueen, chess.RoyalCentaur, chess.Obstacle, chess.Void:
			continue
		default:
			return true
		}
	}
	return false
}

// lmrReduction computes the late-move reduction per spec.md §4.F:
// clamp(1 + floor(ln(movesSearched))/2, 0, depth-1).
func lmrReduction(movesSearched, depth int) int {
	if movesSearched < 1 {
		return 0
	}
	r := 1 + int(math.Log(float64(movesSearched)))/2
	return clampInt(r, 0, depth-1)
}

// negamax is the core alpha-beta/PVS recursion (spec.md §4.F). It returns
// either a centipawn score or the timeUp sentinel.
func (s *Searcher) negamax(pos chess.Position, depth int, alpha, beta int32, ply int, nullOK bool) int32 {
	pvNode := (beta - alpha) > 1
	isRoot := ply == 0

	s.nodes++
	if ply >= MaxPly {
		return int32(Evaluate(pos))
	}
	s.pvLen[ply] = ply

	if !isRoot {
		if alpha < -MateScore {
			alpha = -MateScore
		}
		if beta > MateScore-1 {
			beta = MateScore - 1
		}
		if alpha >= beta {
			return alpha
		}
	}

	if depth <= 0 {
		return s.quiescence(pos, alpha, beta, ply)
	}

	inCheck := pos.InCheck()
	if inCheck {
		depth++
	}

	hash := HashPosition(pos)

	var ttMove *chess.Move
	if !isRoot && !pvNode {
		if entry, ok := s.tt.Probe(hash); ok {
			s.ttHits++
			if int(entry.Depth) >= depth {
				score := AdjustScoreFromTT(entry.Score, ply)
				switch entry.Flag {
				case TTExact:
					return score
				case TTLowerBound:
					if score >= beta {
						return score
					}
				case TTUpperBound:
					if score <= alpha {
						return score
					}
				}
			}
			if entry.HasMove {
				mv := entry.BestMove
				ttMove = &mv
			}
		}
	}

	if s.nodes%nodeCheckInterval == 0 && s.deadlineExceeded() {
		return timeUp
	}

	e := int32(Evaluate(pos))

	if !inCheck && !pvNode {
		if depth < 3 && abs(int(beta)) < MateScore {
			if e-int32(reverseFutilityMargin*depth) >= beta {
				if e < beta {
					return e
				}
				return beta
			}
		}
		if depth < 3 && abs(int(alpha)) < MateScore {
			if e+int32(futilityMargin*depth) <= alpha {
				q := s.quiescence(pos, alpha, beta, ply)
				if q <= alpha {
					return q
				}
			}
		}
		if nullOK && depth >= nmpMinDepth && hasNonPawnMaterial(pos) {
			r := 2
			if depth > nmpVerifyMin {
				r = 3
			}
			s.rules.MakeNull(pos)
			nullScore := -s.negamax(pos, depth-1-r, -beta, -beta+1, ply+1, false)
			s.rules.Unmake(pos)

			if nullScore == timeUp || s.stopped {
				return timeUp
			}
			if nullScore >= beta {
				if depth > nmpVerifyMin && nullScore >= MateScore {
					verify := s.negamax(pos, depth-nmpVerifyR, alpha, beta, ply, false)
					if verify == timeUp {
						return timeUp
					}
					if verify >= beta {
						return beta
					}
				} else {
					return beta
				}
			}
		}
		if depth == 1 && e+razorMargin < beta {
			q := s.quiescence(pos, alpha, beta, ply)
			if q < beta {
				return maxInt32(q, e+razorMargin)
			}
		}
	}

	if !inCheck {
		if e >= beta {
			return beta
		}
		if e > alpha {
			alpha = e
		}
	}

	moves := s.rules.LegalMoves(pos)
	if len(moves) == 0 {
		if inCheck {
			return int32(-MateScore + ply)
		}
		return 0
	}

	var pvMove *chess.Move
	if isRoot && s.followPV && s.pvLen[0] > 0 {
		pvMove = s.pv[0][0]
	}
	usePV := s.scorePV && pvMove != nil
	if usePV {
		s.scorePV = false
	}

	pieceTypes := func(m *chess.Move) (chess.PieceType, chess.PieceType) {
		return pieceTypesForMove(pos, m)
	}
	var lastMove *chess.Move
	if ply > 0 {
		lastMove = s.prevMove[ply-1]
	}
	ordered := s.orderer.OrderMoves(moves, ply, ttMove, pvMove, lastMove, pieceTypes, usePV)

	bestScore := int32(-Infinity)
	var bestMove *chess.Move
	hashFlag := TTLowerBound
	movesSearched := 0
	var triedQuiets []*chess.Move

	for _, m := range ordered {
		if m == nil {
			continue
		}
		full := s.rules.GenerateMove(pos, chess.MoveDraft{
			From: m.From, To: m.To, Promotion: m.Promotion, HasPromotion: m.HasPromotion,
		})
		isQuiet := full.IsQuiet()
		isKillerMove := s.orderer.isKiller(ply, full)

		if !isRoot && bestScore > -Infinity && depth < lmpMaxDepth && isQuiet && !isKillerMove &&
			int(alpha)+97*depth <= int(beta) && abs(int(alpha)) < Infinity-100 &&
			movesSearched > lmpBase+lmpPerDepth*depth {
			continue
		}

		if isQuiet {
			triedQuiets = append(triedQuiets, full)
		}

		s.rules.Make(pos, full)
		s.prevMove[ply] = full

		var score int32
		if movesSearched == 0 {
			score = -s.negamax(pos, depth-1, -beta, -alpha, ply+1, true)
		} else {
			eligible := movesSearched >= lmrMinMoves && depth >= lmrMinDepth && !inCheck && isQuiet && !full.HasPromotion
			r := 0
			if eligible {
				r = lmrReduction(movesSearched, depth)
			}
			if r > 0 {
				score = -s.negamax(pos, depth-1-r, -alpha-1, -alpha, ply+1, true)
				if score > alpha {
					score = -s.negamax(pos, depth-1, -alpha-1, -alpha, ply+1, true)
				}
			} else {
				score = -s.negamax(pos, depth-1, -alpha-1, -alpha, ply+1, true)
			}
			if score > alpha && score < beta && pvNode {
				score = -s.negamax(pos, depth-1, -beta, -alpha, ply+1, true)
			}
		}

		s.rules.Unmake(pos)

		if score == timeUp || s.stopped {
			return timeUp
		}

		movesSearched++
		if score > bestScore {
			bestScore = score
			bestMove = full
		}

		if score > alpha {
			hashFlag = TTExact
			alpha = score

			s.pv[ply][ply] = full
			for i := ply + 1; i < s.pvLen[ply+1]; i++ {
				s.pv[ply][i] = s.pv[ply+1][i]
			}
			s.pvLen[ply] = s.pvLen[ply+1]

			if isQuiet && ply > 0 {
				s.orderer.UpdateHistory(full, depth, true)
				s.orderer.SetCounterMove(s.prevMove[ply-1], full)
				s.orderer.UpdateContinuation(s.prevMove[ply-1], full, depth, true)
			}
		}

		if score >= beta {
			s.tt.Store(hash, depth, AdjustScoreToTT(beta, ply), TTUpperBound, bestMove)
			if isQuiet {
				s.orderer.AddKiller(ply, full)
				s.orderer.UpdateHistory(full, depth, true)
				if ply > 0 {
					s.orderer.SetCounterMove(s.prevMove[ply-1], full)
					s.orderer.UpdateContinuation(s.prevMove[ply-1], full, depth, true)
				}
				for _, q := range triedQuiets {
					if q != full {
						s.orderer.UpdateHistory(q, depth, false)
					}
				}
			}
			return beta
		}
	}

	s.tt.Store(hash, depth, AdjustScoreToTT(alpha, ply), hashFlag, bestMove)
	return alpha
}

func maxInt32(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}
