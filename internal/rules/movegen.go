package rules

import "github.com/hydrochess/search/internal/chess"

// blockingType reports whether the piece occupying a square stops further
// travel through it for every piece type: an obstacle or void square can
// never be landed on or passed through, regardless of color.
func blockingType(pt chess.PieceType) bool {
	return pt == chess.Obstacle || pt == chess.Void
}

// occupiedBounds returns the corners of the smallest rectangle that
// contains every piece on the board.
func (b *Board) occupiedBounds() (lo, hi chess.Coordinate) {
	first := true
	for c := range b.pieces {
		if first {
			lo, hi, first = c, c, false
		}
		lo.X, lo.Y = min(lo.X, c.X), min(lo.Y, c.Y)
		hi.X, hi.Y = max(hi.X, c.X), max(hi.Y, c.Y)
	}
	return lo, hi
}

func inRect(c, lo, hi chess.Coordinate) bool {
	return c.X >= lo.X && c.X <= hi.X && c.Y >= lo.Y && c.Y <= hi.Y
}

// slideDestinations walks each direction in dirs from `from` until it
// runs off the board's occupied pieces (leaves the rectangle spanned by
// every piece), a friendly piece, or a blocking terrain piece
// (obstacle/void); an enemy piece stops the ray too, but after being
// included as a capture.
func slideDestinations(b *Board, from chess.Coordinate, color chess.Color, dirs []chess.Coordinate) []chess.Coordinate {
	var out []chess.Coordinate
	lo, hi := b.occupiedBounds()
	for _, d := range dirs {
		cur := from
		for {
			cur = cur.Add(d)
			if !inRect(cur, lo, hi) {
				break
			}
			occ, ok := b.pieces[cur]
			if !ok {
				out = append(out, cur)
				continue
			}
			if blockingType(occ.Type()) {
				break
			}
			if occ.Color() != color {
				out = append(out, cur)
			}
			break
		}
	}
	return out
}

// leapDestinations lands on each from+offset square directly, skipping
// squares occupied by a friendly piece or blocking terrain.
func leapDestinations(b *Board, from chess.Coordinate, color chess.Color, offsets []chess.Coordinate) []chess.Coordinate {
	var out []chess.Coordinate
	for _, o := range offsets {
		dest := from.Add(o)
		occ, ok := b.pieces[dest]
		if ok {
			if blockingType(occ.Type()) || occ.Color() == color {
				continue
			}
		}
		out = append(out, dest)
	}
	return out
}

// riderDestinations repeats a leap offset along one direction until
// blocked or outside the rectangle spanned by every piece, the way a
// knightrider repeats a knight jump (spec.md §3).
func riderDestinations(b *Board, from chess.Coordinate, color chess.Color, offsets []chess.Coordinate) []chess.Coordinate {
	var out []chess.Coordinate
	lo, hi := b.occupiedBounds()
	for _, o := range offsets {
		cur := from
		for {
			cur = cur.Add(o)
			if !inRect(cur, lo, hi) {
				break
			}
			occ, ok := b.pieces[cur]
			if !ok {
				out = append(out, cur)
				continue
			}
			if blockingType(occ.Type()) {
				break
			}
			if occ.Color() != color {
				out = append(out, cur)
			}
			break
		}
	}
	return out
}

// huygenDestinations jumps along the 4 orthogonal rays to any
// prime-number distance up to 97, leaping over intervening pieces the way a
// leaper does (it does not slide and is not blocked along the way).
func huygenDestinations(b *Board, from chess.Coordinate, color chess.Color) []chess.Coordinate {
	var out []chess.Coordinate
	for _, d := range orthogonalDirs {
		for _, p := range primesUpTo97 {
			dest := from.Add(d.Scale(p))
			occ, ok := b.pieces[dest]
			if ok && (blockingType(occ.Type()) || occ.Color() == color) {
				continue
			}
			out = append(out, dest)
		}
	}
	return out
}

// roseDestinations traces the circular knight path in both rotational
// directions from every starting leap, stopping at a blocker, capture,
// or after completing the 7-step arc short of returning to start.
func roseDestinations(b *Board, from chess.Coordinate, color chess.Color) []chess.Coordinate {
	var out []chess.Coordinate
	for start := 0; start < len(knightCircle); start++ {
		for _, rotation := range []int{1, -1} {
			cur := from
			for step := 0; step < len(knightCircle)-1; step++ {
				idx := ((start+rotation*step)%len(knightCircle) + len(knightCircle)) % len(knightCircle)
				cur = cur.Add(knightCircle[idx])
				occ, ok := b.pieces[cur]
				if !ok {
					out = append(out, cur)
					continue
				}
				if blockingType(occ.Type()) || occ.Color() == color {
					break
				}
				out = append(out, cur)
				break
			}
		}
	}
	return out
}

func pawnForward(color chess.Color) int64 {
	if color == chess.White {
		return 1
	}
	return -1
}

// pawnAttackSquares returns the two diagonal squares a pawn threatens,
// used for check detection (a pawn's forward step is never an attack).
func pawnAttackSquares(from chess.Coordinate, color chess.Color) []chess.Coordinate {
	fwd := pawnForward(color)
	return []chess.Coordinate{
		{X: from.X + 1, Y: from.Y + fwd},
		{X: from.X - 1, Y: from.Y + fwd},
	}
}

// pieceAttacks returns every square p (sitting at from) threatens. For
// every piece but the pawn, "threatens" and "can move to" coincide.
func pieceAttacks(b *Board, from chess.Coordinate, p chess.Piece) []chess.Coordinate {
	color := p.Color()
	switch p.Type() {
	case chess.Pawn:
		return pawnAttackSquares(from, color)
	case chess.Knight:
		return leapDestinations(b, from, color, knightOffsets)
	case chess.Bishop:
		return slideDestinations(b, from, color, diagonalDirs)
	case chess.Rook:
		return slideDestinations(b, from, color, orthogonalDirs)
	case chess.Queen, chess.RoyalQueen:
		return slideDestinations(b, from, color, queenDirs)
	case chess.King, chess.Guard:
		return leapDestinations(b, from, color, guardOffsets)
	case chess.Amazon:
		return append(slideDestinations(b, from, color, queenDirs), leapDestinations(b, from, color, knightOffsets)...)
	case chess.Chancellor:
		return append(slideDestinations(b, from, color, orthogonalDirs), leapDestinations(b, from, color, knightOffsets)...)
	case chess.Archbishop:
		return append(slideDestinations(b, from, color, diagonalDirs), leapDestinations(b, from, color, knightOffsets)...)
	case chess.Knightrider:
		return riderDestinations(b, from, color, knightOffsets)
	case chess.Hawk:
		return leapDestinations(b, from, color, hawkOffsets)
	case chess.Rose:
		return roseDestinations(b, from, color)
	case chess.Huygen:
		return huygenDestinations(b, from, color)
	case chess.Centaur, chess.RoyalCentaur:
		return append(leapDestinations(b, from, color, knightOffsets), leapDestinations(b, from, color, guardOffsets)...)
	case chess.Camel:
		return leapDestinations(b, from, color, camelOffsets)
	case chess.Zebra:
		return leapDestinations(b, from, color, zebraOffsets)
	case chess.Giraffe:
		return leapDestinations(b, from, color, giraffeOffsets)
	default: // Obstacle, Void
		return nil
	}
}

// isAttacked reports whether `target` is threatened by any piece of
// `bySide`.
func (b *Board) isAttacked(target chess.Coordinate, bySide chess.Color) bool {
	for c, p := range b.pieces {
		if p.Color() != bySide {
			continue
		}
		for _, sq := range pieceAttacks(b, c, p) {
			if sq == target {
				return true
			}
		}
	}
	return false
}

// buildMove fills in the capture flag for a plain (non-pawn,
// non-en-passant) move.
func (b *Board) buildMove(from, to chess.Coordinate) *chess.Move {
	// pieceAttacks never returns a square occupied by a friendly piece
	// or blocking terrain, so any occupied destination here is a capture.
	_, ok := b.pieces[to]
	return &chess.Move{From: from, To: to, Capture: ok}
}

var promotionChoices = []chess.PieceType{chess.Knight, chess.Bishop, chess.Rook, chess.Queen}

func (b *Board) isPromotionRank(color chess.Color, y int64) bool {
	return y == b.promotionRank[color]
}

// pawnMoves generates every pseudo-legal pawn move from `from`,
// including double steps, en passant and promotion.
func (b *Board) pawnMoves(from chess.Coordinate, color chess.Color) []*chess.Move {
	var out []*chess.Move
	fwd := pawnForward(color)
	one := chess.Coordinate{X: from.X, Y: from.Y + fwd}

	if _, occupied := b.pieces[one]; !occupied {
		if b.isPromotionRank(color, one.Y) {
			for _, pt := range promotionChoices {
				out = append(out, &chess.Move{From: from, To: one, Promotion: pt, HasPromotion: true})
			}
		} else {
			out = append(out, &chess.Move{From: from, To: one})
			if from.Y == b.pawnHomeRank[color] {
				two := chess.Coordinate{X: from.X, Y: from.Y + 2*fwd}
				if _, blocked := b.pieces[two]; !blocked {
					out = append(out, &chess.Move{From: from, To: two})
				}
			}
		}
	}

	for _, dx := range []int64{-1, 1} {
		target := chess.Coordinate{X: from.X + dx, Y: from.Y + fwd}
		occ, ok := b.pieces[target]
		switch {
		case ok && occ.Color() != color && !blockingType(occ.Type()):
			if b.isPromotionRank(color, target.Y) {
				for _, pt := range promotionChoices {
					out = append(out, &chess.Move{From: from, To: target, Promotion: pt, HasPromotion: true, Capture: true})
				}
			} else {
				out = append(out, &chess.Move{From: from, To: target, Capture: true})
			}
		case !ok && b.enPassant != nil && *b.enPassant == target:
			out = append(out, &chess.Move{From: from, To: target, Capture: true, EnPassant: true})
		}
	}
	return out
}

// pseudoMoves returns every pseudo-legal move for `side`, without
// filtering moves that leave the mover's own royal piece in check. Every
// destination lies inside the rectangle spanned by the pieces on the
// board; leaps and pawn steps that would land outside it are dropped.
func (b *Board) pseudoMoves(side chess.Color) []*chess.Move {
	var out []*chess.Move
	for from, p := range b.pieces {
		if p.Color() != side {
			continue
		}
		switch p.Type() {
		case chess.Obstacle, chess.Void:
			continue
		case chess.Pawn:
			out = append(out, b.pawnMoves(from, side)...)
		default:
			for _, to := range pieceAttacks(b, from, p) {
				out = append(out, b.buildMove(from, to))
			}
		}
	}
	lo, hi := b.occupiedBounds()
	inside := out[:0]
	for _, m := range out {
		if inRect(m.To, lo, hi) {
			inside = append(inside, m)
		}
	}
	return inside
}

// legalMoves filters pseudoMoves down to those that don't leave the
// mover's own royal piece(s) in check.
func (b *Board) legalMoves() []*chess.Move {
	side := b.side
	candidates := b.pseudoMoves(side)
	out := make([]*chess.Move, 0, len(candidates))
	for _, m := range candidates {
		b.make(m)
		if !b.inCheck(side) {
			out = append(out, m)
		}
		b.unmake()
	}
	return out
}

// epCapturedSquare returns the square of the pawn actually captured by
// an en-passant move (the square behind the destination).
func epCapturedSquare(m *chess.Move, color chess.Color) chess.Coordinate {
	return chess.Coordinate{X: m.To.X, Y: m.To.Y - pawnForward(color)}
}

// make applies m to the board, pushing an undo record. Every exit path
// of the search core eventually pairs this with exactly one unmake.
func (b *Board) make(m *chess.Move) {
	mover, _ := b.pieces[m.From]
	rec := undoRecord{move: m, prevSide: b.side, prevEnPassant: b.enPassant, movedFromPiece: mover}

	if m.EnPassant {
		capSq := epCapturedSquare(m, mover.Color())
		if cap, ok := b.pieces[capSq]; ok {
			rec.hadCaptured = true
			rec.captured = cap
			rec.capturedAt = capSq
			delete(b.pieces, capSq)
		}
	} else if cap, ok := b.pieces[m.To]; ok {
		rec.hadCaptured = true
		rec.captured = cap
		rec.capturedAt = m.To
	}

	delete(b.pieces, m.From)
	placed := mover
	if m.HasPromotion {
		placed = chess.NewPiece(m.Promotion, mover.Color())
	}
	b.pieces[m.To] = placed

	var newEP *chess.Coordinate
	if mover.Type() == chess.Pawn {
		fwd := pawnForward(mover.Color())
		if m.To.Y-m.From.Y == 2*fwd {
			ep := chess.Coordinate{X: m.From.X, Y: m.From.Y + fwd}
			newEP = &ep
		}
	}
	b.enPassant = newEP
	b.side = b.side.Other()
	b.undo = append(b.undo, rec)
}

// makeNull flips the side to move without altering any piece.
func (b *Board) makeNull() {
	b.undo = append(b.undo, undoRecord{move: nil, prevSide: b.side, prevEnPassant: b.enPassant})
	b.enPassant = nil
	b.side = b.side.Other()
}

// unmake rewinds the most recently applied move or null move.
func (b *Board) unmake() {
	n := len(b.undo)
	rec := b.undo[n-1]
	b.undo = b.undo[:n-1]
	b.side = rec.prevSide
	b.enPassant = rec.prevEnPassant

	if rec.move == nil {
		return
	}
	m := rec.move
	delete(b.pieces, m.To)
	b.pieces[m.From] = rec.movedFromPiece
	if rec.hadCaptured {
		b.pieces[rec.capturedAt] = rec.captured
	}
}

// generateMove materializes a draft into a full move by consulting the
// board for the capture/en-passant flags.
func (b *Board) generateMove(draft chess.MoveDraft) *chess.Move {
	m := &chess.Move{From: draft.From, To: draft.To, Promotion: draft.Promotion, HasPromotion: draft.HasPromotion}
	mover, ok := b.pieces[draft.From]
	if !ok {
		return m
	}
	if mover.Type() == chess.Pawn && b.enPassant != nil && *b.enPassant == draft.To {
		if _, occupied := b.pieces[draft.To]; !occupied {
			m.Capture = true
			m.EnPassant = true
			return m
		}
	}
	if occ, ok := b.pieces[draft.To]; ok && !blockingType(occ.Type()) {
		m.Capture = true
	}
	return m
}
