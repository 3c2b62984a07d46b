// Package engine implements the move-search core: evaluation, ordering,
// the transposition table, quiescence, negamax/PVS and the
// iterative-deepening driver. It never imports a concrete rules engine —
// everything it knows about a position comes through chess.Position.
package engine

import (
	"sort"

	"github.com/hydrochess/search/internal/chess"
)

// Development/back-rank/shield bonuses. Centipawns.
const (
	developmentBonus = 6
	backRankBonus    = 25
	pawnShieldBonus  = 20
	pawnAdvanceBonus = 10
	passedPawnBonus  = 15

	queenProximityMax  = 30
	knightProximityMax = 10
	knightCentralityMax = 5

	centroidSampleStride = 20
)

// pieceBucket groups a side's pieces by the classical raw type the
// evaluator cares about; fairy pieces contribute material only (§4.C).
type pieceBucket struct {
	king    *chess.Coordinate
	knights []chess.Coordinate
	bishops []chess.Coordinate
	rooks   []chess.Coordinate
	queens  []chess.Coordinate
	pawns   []chess.Coordinate
}

// Evaluate returns a centipawn score for pos from the side-to-move's
// perspective: positive favors the mover, negative favors the opponent.
func Evaluate(pos chess.Position) int {
	coords := pos.AllPieceCoords()

	material := 0
	var white, black pieceBucket
	var allCoords []chess.Coordinate

	for _, c := range coords {
		p, ok := pos.PieceAt(c)
		if !ok {
			continue
		}
		allCoords = append(allCoords, c)

		v := chess.PieceValue[p.Type()]
		if p.Color() == chess.White {
			material += v
		} else {
			material -= v
		}

		bucket := &white
		if p.Color() == chess.Black {
			bucket = &black
		}
		switch p.Type() {
		case chess.King, chess.RoyalQueen, chess.RoyalCentaur:
			cc := c
			bucket.king = &cc
		case chess.Knight:
			bucket.knights = append(bucket.knights, c)
		case chess.Bishop:
			bucket.bishops = append(bucket.bishops, c)
		case chess.Rook:
			bucket.rooks = append(bucket.rooks, c)
		case chess.Queen:
			bucket.queens = append(bucket.queens, c)
		case chess.Pawn:
			bucket.pawns = append(bucket.pawns, c)
		}
	}

	score := material
	centroid := centroidOf(allCoords)
	avgD2 := sampleAvgSquaredDistance(allCoords)

	if white.king != nil {
		score += positional(&white, black.king, black.pawns, centroid, avgD2, chess.White)
	}
	if black.king != nil {
		score -= positional(&black, white.king, white.pawns, centroid, avgD2, chess.Black)
	}

	if pos.SideToMove() == chess.White {
		return score
	}
	return -score
}

// centroidOf is the arithmetic mean of every occupied coordinate, used as
// "centre" on a board with no fixed edges.
func centroidOf(coords []chess.Coordinate) chess.Coordinate {
	if len(coords) == 0 {
		return chess.Coordinate{}
	}
	var sx, sy int64
	for _, c := range coords {
		sx += c.X
		sy += c.Y
	}
	n := int64(len(coords))
	return chess.Coordinate{X: sx / n, Y: sy / n}
}

// sampleAvgSquaredDistance estimates the board's spread by averaging
// squared pairwise distance over a fixed-stride sample of up to 20 pieces,
// rather than every pair (quadratic in piece count otherwise). The sample
// is deterministic — sorted coordinates, fixed stride — not actually
// randomized, so repeated evaluation of the same position is stable.
func sampleAvgSquaredDistance(coords []chess.Coordinate) int64 {
	if len(coords) < 2 {
		return 100
	}
	sorted := append([]chess.Coordinate(nil), coords...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].X != sorted[j].X {
			return sorted[i].X < sorted[j].X
		}
		return sorted[i].Y < sorted[j].Y
	})

	sampleSize := centroidSampleStride
	if sampleSize > len(sorted) {
		sampleSize = len(sorted)
	}
	stride := len(sorted) / sampleSize
	if stride == 0 {
		stride = 1
	}
	var sample []chess.Coordinate
	for i := 0; i < len(sorted) && len(sample) < sampleSize; i += stride {
		sample = append(sample, sorted[i])
	}

	var sum, pairs int64
	for i := 0; i < len(sample); i++ {
		for j := i + 1; j < len(sample); j++ {
			sum += sample[i].SquaredDistance(sample[j])
			pairs++
		}
	}
	if pairs == 0 {
		return 100
	}
	avg := sum / pairs
	if avg < 100 {
		avg = 100
	}
	return avg
}

// pawnForward is the classical direction a color's pawns advance in,
// matching the convention the reference rules engine lays the board out
// with (white toward +Y, black toward -Y).
func pawnForward(c chess.Color) int64 {
	if c == chess.White {
		return 1
	}
	return -1
}

func backRankReached(queenY, kingY int64, color chess.Color) bool {
	if color == chess.White {
		return queenY >= kingY
	}
	return queenY <= kingY
}

// positional computes one side's positional score (king-proximity,
// centrality, development, back-rank, pawn advancement and shield) to be
// added (white) or subtracted (black) from material.
func positional(b *pieceBucket, enemyKing *chess.Coordinate, enemyPawns []chess.Coordinate, centroid chess.Coordinate, avgD2 int64, color chess.Color) int {
	score := 0

	if enemyKing != nil {
		for _, q := range b.queens {
			score += proximityBonus(q, *enemyKing, avgD2, queenProximityMax)
		}
		for _, n := range b.knights {
			score += proximityBonus(n, *enemyKing, avgD2, knightProximityMax)
		}
	}

	for _, n := range b.knights {
		score += centralityBonus(n, centroid, avgD2)
	}

	forward := pawnForward(color)
	homeRank := homeRankFor(color)
	minorMajor := append(append(append([]chess.Coordinate{}, b.knights...), b.bishops...), b.rooks...)
	minorMajor = append(minorMajor, b.queens...)
	for _, c := range minorMajor {
		if c.Y != homeRank {
			score += developmentBonus
		}
	}

	if b.king != nil {
		for _, q := range b.queens {
			if backRankReached(q.Y, enemyKingY(enemyKing, b.king), color) {
				score += backRankBonus
			}
		}
	}

	if b.king != nil {
		startRank := b.king.Y + forward
		for _, p := range b.pawns {
			advance := forward * (p.Y - startRank)
			if advance < 0 {
				advance = 0
			}
			if advance == 0 {
				continue
			}
			score += int(advance) * pawnAdvanceBonus
			if isPassed(p, forward, enemyPawns) {
				score += int(advance) * passedPawnBonus
			}
		}

		for _, p := range b.pawns {
			if p.ChebyshevDistance(*b.king) <= 1 {
				score += pawnShieldBonus
			}
		}
	}

	return score
}

// homeRankFor is the fixed back rank a side's minor/major pieces start on
// (spec.md §4.C: white rank 1, black rank 8), matching the layout
// NewStartingBoard places them on.
func homeRankFor(color chess.Color) int64 {
	if color == chess.White {
		return 1
	}
	return 8
}

func enemyKingY(enemyKing, ownKing *chess.Coordinate) int64 {
	if enemyKing != nil {
		return enemyKing.Y
	}
	return ownKing.Y
}

// proximityBonus rewards a piece for standing close to the enemy king,
// scaled by the board's overall spread so the bonus means the same thing
// whether pieces are clustered near the origin or scattered far out.
func proximityBonus(p, king chess.Coordinate, avgD2 int64, maxBonus int) int {
	d2 := p.SquaredDistance(king)
	if d2 > avgD2 {
		d2 = avgD2
	}
	return int(int64(maxBonus) * (avgD2 - d2) / avgD2)
}

func centralityBonus(p, centroid chess.Coordinate, avgD2 int64) int {
	d2 := p.SquaredDistance(centroid)
	bonus := knightCentralityMax - int(5*d2/(2*avgD2))
	if bonus < 0 {
		return 0
	}
	return bonus
}

// isPassed reports whether pawn p has no opposing pawn on its own or an
// adjacent file anywhere ahead of it in its direction of travel.
func isPassed(p chess.Coordinate, forward int64, enemyPawns []chess.Coordinate) bool {
	for _, e := range enemyPawns {
		if e.X < p.X-1 || e.X > p.X+1 {
			continue
		}
		ahead := (e.Y - p.Y) * forward
		if ahead > 0 {
			return false
		}
	}
	return true
}
