package rules

import "github.com/hydrochess/search/internal/chess"

// This file collects the direction and leap-offset tables used by
// movegen.go. Sliders walk a direction until blocked; leapers land on a
// single offset; riders repeat a leap offset along one direction until
// blocked, the way a knightrider repeats a knight jump.

var orthogonalDirs = []chess.Coordinate{
	{X: 0, Y: 1}, {X: 0, Y: -1}, {X: 1, Y: 0}, {X: -1, Y: 0},
}

var diagonalDirs = []chess.Coordinate{
	{X: 1, Y: 1}, {X: 1, Y: -1}, {X: -1, Y: 1}, {X: -1, Y: -1},
}

var queenDirs = append(append([]chess.Coordinate{}, orthogonalDirs...), diagonalDirs...)

var knightOffsets = []chess.Coordinate{
	{X: 1, Y: 2}, {X: 2, Y: 1}, {X: 2, Y: -1}, {X: 1, Y: -2},
	{X: -1, Y: -2}, {X: -2, Y: -1}, {X: -2, Y: 1}, {X: -1, Y: 2},
}

// knightCircle is knightOffsets, which are already ordered clockwise by
// angle so that consecutive entries are neighbouring knight directions;
// the rose's circular path steps through them in order.
var knightCircle = knightOffsets

var camelOffsets = leaperFamily(1, 3)
var zebraOffsets = leaperFamily(2, 3)
var giraffeOffsets = leaperFamily(1, 4)

var guardOffsets = queenDirs // one-step king-like leap, every direction

// hawkOffsets: long-range royal-adjacent leaps at (2,0), (3,0), (2,2), (3,3)
// and their sign/axis variants (grounded on the infinite-chess fairy
// catalogue named in spec.md §3).
var hawkOffsets = buildHawkOffsets()

func buildHawkOffsets() []chess.Coordinate {
	var out []chess.Coordinate
	add := func(x, y int64) {
		out = append(out, chess.Coordinate{X: x, Y: y})
	}
	for _, base := range [][2]int64{{2, 0}, {3, 0}, {2, 2}, {3, 3}} {
		bx, by := base[0], base[1]
		if bx == by {
			// (n,n): four diagonal sign variants.
			add(bx, by)
			add(bx, -by)
			add(-bx, by)
			add(-bx, -by)
			continue
		}
		if by == 0 {
			// (n,0): axis + swapped axis, four variants each.
			add(bx, 0)
			add(-bx, 0)
			add(0, bx)
			add(0, -bx)
			continue
		}
	}
	return out
}

// leaperFamily returns the 8 sign/axis-swap variants of an (a,b) leap
// with a != b (the knight/camel/zebra/giraffe shape family).
func leaperFamily(a, b int64) []chess.Coordinate {
	return []chess.Coordinate{
		{X: a, Y: b}, {X: b, Y: a},
		{X: -a, Y: b}, {X: -b, Y: a},
		{X: a, Y: -b}, {X: b, Y: -a},
		{X: -a, Y: -b}, {X: -b, Y: -a},
	}
}

// primesUpTo97 are the prime distances a huygen may jump along an
// orthogonal ray (spec.md §3's catalogue includes the huygen; its move
// is grounded on the infinite-chess "prime leaper" piece of the same
// name referenced by _examples/original_source).
var primesUpTo97 = []int64{2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41, 43, 47, 53, 59, 61, 67, 71, 73, 79, 83, 89, 97}
