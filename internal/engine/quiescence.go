package engine

import "github.com/hydrochess/search/internal/chess"

// quiescence extends search past depth 0 through captures only, to damp
// the horizon effect of stopping mid-exchange. No pruning family applies
// here (spec.md §4.E) — only the stand-pat window.
func (s *Searcher) quiescence(pos chess.Position, alpha, beta int32, ply int) int32 {
	s.nodes++
	if s.nodes%nodeCheckInterval == 0 && s.deadlineExceeded() {
		return timeUp
	}

	e := int32(Evaluate(pos))
	if e >= beta {
		return beta
	}
	if e > alpha {
		alpha = e
	}
	if ply >= MaxPly {
		return e
	}

	moves := s.rules.LegalMoves(pos)
	captures := s.rules.FilterCaptures(pos, moves)
	if len(captures) == 0 {
		return e
	}

	pieceTypes := func(m *chess.Move) (chess.PieceType, chess.PieceType) {
		return pieceTypesForMove(pos, m)
	}
	ordered := s.orderer.OrderMoves(captures, ply, nil, nil, nil, pieceTypes, false)
	for _, m := range ordered {
		s.rules.Make(pos, m)
		score := -s.quiescence(pos, -beta, -alpha, ply+1)
		s.rules.Unmake(pos)

		if score == timeUp || s.stopped {
			return timeUp
		}
		if score > alpha {
			alpha = score
		}
		if score >= beta {
			return beta
		}
	}
	return alpha
}
