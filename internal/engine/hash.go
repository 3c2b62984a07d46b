package engine

import "github.com/hydrochess/search/internal/chess"

// Hashing on an unbounded board can't index a flat [square][piece] Zobrist
// table the way a fixed 8x8 board does — there is no bound on a coordinate.
// Instead each coordinate is folded into a small number of buckets per sign
// before it touches the key table, so the table stays finite while distant
// squares still hash distinctly from nearby ones most of the time.
const (
	hashCoordBound   = 150
	hashModuloBucket = 8
	goldenRatioPrime = 0x9E3779B9
)

// Fixed primes used to spread the folded coordinate/piece/color tuple across
// the key space before XOR-folding it into the running hash.
const (
	hashPrimeX     = 0x9E3779B97F4A7C15
	hashPrimeY     = 0xC2B2AE3D27D4EB4F
	hashPrimePiece = 0x165667B19E3779F9
)

// prng is a small xorshift64* generator, used only to seed the piece-type
// key table at init time. Deterministic seed, so hashes are reproducible
// across runs (and across processes comparing the same position).
type prng struct {
	state uint64
}

func newPRNG(seed uint64) *prng {
	return &prng{state: seed}
}

func (p *prng) next() uint64 {
	p.state ^= p.state >> 12
	p.state ^= p.state << 25
	p.state ^= p.state >> 27
	return p.state * 0x2545F4914F6CDD1D
}

// pieceTypeKey[pt] is an independent random constant per piece type, folded
// into the per-square contribution so that e.g. a knight and a bishop on
// the same folded bucket don't collide trivially.
var pieceTypeKey [chess.N]uint64

func init() {
	rng := newPRNG(0x98F107A2BEEF1234)
	for i := range pieceTypeKey {
		pieceTypeKey[i] = rng.next()
	}
}

func rotl64(x uint64, k uint) uint64 {
	return (x << k) | (x >> (64 - k))
}

// foldCoord maps an unbounded coordinate value into hashModuloBucket buckets
// per sign, so |value| beyond hashCoordBound still lands in a small, stable
// range instead of spreading the key space over the entire int64 domain.
func foldCoord(v int64) int64 {
	sign := int64(1)
	if v < 0 {
		sign = -1
		v = -v
	}
	if v > hashCoordBound {
		v = hashCoordBound + (v % hashModuloBucket)
	}
	return sign * v
}

// squareKey combines a folded coordinate and a piece identity into a single
// 64-bit contribution via prime multiplication and a rotate-XOR, the same
// shape as a classical Zobrist piece-square key but built for coordinates
// that aren't bounded to a fixed array.
func squareKey(c chess.Coordinate, p chess.Piece) uint64 {
	fx := uint64(foldCoord(c.X)) * hashPrimeX
	fy := uint64(foldCoord(c.Y)) * hashPrimeY
	pk := pieceTypeKey[p.Type()] * hashPrimePiece

	h := fx ^ rotl64(fy, 17) ^ rotl64(pk, 31)
	if p.Color() == chess.Black {
		h = rotl64(h, 5) ^ goldenRatioPrime
	}
	return h
}

// HashPosition computes a 64-bit hash of the position: every occupied
// square's contribution XORed together, then the side to move folded in.
// XOR makes the result independent of piece enumeration order, which
// matters since chess.Position.AllPieceCoords gives no ordering guarantee.
func HashPosition(pos chess.Position) uint64 {
	var h uint64
	for _, c := range pos.AllPieceCoords() {
		p, ok := pos.PieceAt(c)
		if !ok {
			continue
		}
		h ^= squareKey(c, p)
	}
	if pos.SideToMove() == chess.Black {
		h ^= goldenRatioPrime
	}
	return h
}
