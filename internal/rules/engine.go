package rules

import "github.com/hydrochess/search/internal/chess"

// Engine implements chess.RulesEngine against a concrete *Board. The
// search core only ever sees it through that interface.
type Engine struct{}

// NewEngine creates a rules engine. It carries no state of its own; all
// state lives on the Board passed to each call.
func NewEngine() *Engine {
	return &Engine{}
}

func (e *Engine) LegalMoves(pos chess.Position) []*chess.Move {
	return pos.(*Board).legalMoves()
}

func (e *Engine) Make(pos chess.Position, m *chess.Move) {
	pos.(*Board).make(m)
}

func (e *Engine) Unmake(pos chess.Position) {
	pos.(*Board).unmake()
}

func (e *Engine) MakeNull(pos chess.Position) {
	pos.(*Board).makeNull()
}

func (e *Engine) GenerateMove(pos chess.Position, draft chess.MoveDraft) *chess.Move {
	return pos.(*Board).generateMove(draft)
}

func (e *Engine) FilterCaptures(pos chess.Position, moves []*chess.Move) []*chess.Move {
	out := make([]*chess.Move, 0, len(moves))
	for _, m := range moves {
		if m.Capture {
			out = append(out, m)
		}
	}
	return out
}
