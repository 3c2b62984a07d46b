package engine

import (
	"log"
	"time"

	"github.com/hydrochess/search/internal/chess"
)

// SearchInfo carries one iterative-deepening iteration's result to the
// OnInfo callback. FindBestMove also logs the last adopted iteration
// through the standard log package.
type SearchInfo struct {
	Depth int
	Score int
	Nodes int64
	Time  time.Duration
	PV    []*chess.Move
}

// Config holds the constructor-time knobs §6 calls out.
type Config struct {
	TTSizeMB        int
	SearchTimeoutMS int
}

// DefaultConfig returns the compiled-in defaults (§6): 16 MiB TT, 10s move
// budget.
func DefaultConfig() Config {
	return Config{TTSizeMB: 16, SearchTimeoutMS: 10000}
}

// Engine drives iterative deepening over a Searcher. One Engine is reused
// across searches; each FindBestMove call resets the Searcher's per-search
// state but keeps the transposition table across calls (spec.md §6: "no
// persisted state... beyond the TT age counter and... retained TT
// entries").
type Engine struct {
	searcher *Searcher
	cfg      Config
	OnInfo   func(SearchInfo)
}

// NewEngine wires a rules engine and configuration into a ready-to-use
// search driver.
func NewEngine(rules chess.RulesEngine, cfg Config) *Engine {
	tt := NewTranspositionTable(cfg.TTSizeMB)
	return &Engine{
		searcher: NewSearcher(rules, tt),
		cfg:      cfg,
	}
}

// FindBestMove runs iterative deepening from pos until the deadline or
// MAX_PLY, returning the best move found, the first legal move if no
// iteration ever completed, or nil if pos has no legal moves (spec.md §6).
func (e *Engine) FindBestMove(pos chess.Position) *chess.Move {
	s := e.searcher

	legal := s.rules.LegalMoves(pos)
	if len(legal) == 0 {
		return nil
	}
	fallback := legal[0]

	s.nodes = 0
	s.ttHits = 0
	s.stopped = false
	s.orderer.Clear()
	for i := range s.pv {
		for j := range s.pv[i] {
			s.pv[i][j] = nil
		}
		s.pvLen[i] = 0
	}
	for i := range s.prevMove {
		s.prevMove[i] = nil
	}

	timeout := time.Duration(e.cfg.SearchTimeoutMS) * time.Millisecond
	if timeout <= 0 {
		timeout = time.Duration(DefaultConfig().SearchTimeoutMS) * time.Millisecond
	}
	start := time.Now()
	s.deadline = start.Add(timeout)

	var adopted *chess.Move
	var lastDepth int
	var lastScore int32
	var lastPV []*chess.Move

	for depth := 1; depth <= MaxPly; depth++ {
		if s.deadlineExceeded() {
			break
		}

		s.pvLen[0] = 0
		s.followPV = true
		s.scorePV = true
		s.orderer.Decay()

		score := s.negamax(pos, depth, -Infinity, Infinity, 0, true)
		if score == timeUp || s.stopped {
			break
		}

		if s.pvLen[0] > 0 && s.pv[0][0] != nil {
			adopted = s.pv[0][0]
		}
		lastDepth = depth
		lastScore = score
		lastPV = append([]*chess.Move(nil), s.pv[0][:s.pvLen[0]]...)

		if e.OnInfo != nil {
			e.OnInfo(SearchInfo{
				Depth: depth,
				Score: int(score),
				Nodes: s.nodes,
				Time:  time.Since(start),
				PV:    lastPV,
			})
		}
	}

	s.tt.NewSearch()

	if adopted != nil {
		log.Printf("info depth %d nodes %d score cp %d pv %s", lastDepth, s.nodes, lastScore, pvString(lastPV))
		return adopted
	}
	return fallback
}

func pvString(moves []*chess.Move) string {
	out := ""
	for i, m := range moves {
		if i > 0 {
			out += " "
		}
		out += m.String()
	}
	return out
}
