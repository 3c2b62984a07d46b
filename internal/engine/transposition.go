package engine

import "github.com/hydrochess/search/internal/chess"

// TTFlag indicates the type of bound stored in the transposition table.
type TTFlag uint8

const (
	TTExact      TTFlag = iota // Exact score (some move raised alpha)
	TTLowerBound               // Stored by negamax when no move raised alpha
	TTUpperBound               // Stored by negamax on a beta cutoff
)

// Replacement weights. MUST be preserved for parity with the reference.
const (
	depthPreference = 4
	agePreference   = 2
	exactPreference = 8
)

// TTEntry represents an entry in the transposition table.
type TTEntry struct {
	Key      uint32 // upper 32 bits of the position hash, for verification
	BestMove chess.Move
	HasMove  bool
	Score    int32
	Depth    int8
	Flag     TTFlag
	Age      uint8
}

// TranspositionTable is a hash table for storing search results.
type TranspositionTable struct {
	entries []TTEntry
	size    uint64
	mask    uint64
	age     uint8

	hits   uint64
	probes uint64
}

// NewTranspositionTable creates a transposition table with the given size in MB.
func NewTranspositionTable(sizeMB int) *TranspositionTable {
	const entrySize = uint64(32) // approximate size of TTEntry
	numEntries := (uint64(sizeMB) * 1024 * 1024) / entrySize
	numEntries = roundDownToPowerOf2(numEntries)
	if numEntries == 0 {
		numEntries = 1
	}
	return &TranspositionTable{
		entries: make([]TTEntry, numEntries),
		size:    numEntries,
		mask:    numEntries - 1,
	}
}

// roundDownToPowerOf2 rounds n down to the nearest power of 2.
func roundDownToPowerOf2(n uint64) uint64 {
	if n == 0 {
		return 0
	}
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n |= n >> 32
	return (n + 1) >> 1
}

// Probe looks up a position in the transposition table.
// Returns the entry and true if found, otherwise returns empty entry and false.
func (tt *TranspositionTable) Probe(hash uint64) (TTEntry, bool) {
	tt.probes++

	idx := hash & tt.mask
	entry := tt.entries[idx]

	if entry.Key == uint32(hash>>32) && entry.Depth > 0 {
		tt.hits++
		return entry, true
	}

	return TTEntry{}, false
}

// Store saves a position in the transposition table, combining depth, age,
// exact-bound and occupancy into a single weighted replacement decision.
func (tt *TranspositionTable) Store(hash uint64, depth int, score int32, flag TTFlag, best *chess.Move) {
	idx := hash & tt.mask
	slot := &tt.entries[idx]

	incoming := depth*depthPreference + agePreference
	if flag == TTExact {
		incoming += exactPreference
	}

	existing := int(slot.Depth) * depthPreference
	if slot.Flag == TTExact {
		existing += exactPreference
	}
	if slot.Age == tt.age {
		existing += agePreference
	}

	if slot.Depth == 0 || slot.Age != tt.age || incoming >= existing {
		slot.Key = uint32(hash >> 32)
		slot.Score = score
		slot.Depth = int8(depth)
		slot.Flag = flag
		slot.Age = tt.age
		if best != nil {
			slot.BestMove = *best
			slot.HasMove = true
		} else {
			slot.HasMove = false
		}
	}
}

// NewSearch increments the age counter for a new search.
func (tt *TranspositionTable) NewSearch() {
	tt.age++
}

// Clear clears the transposition table.
func (tt *TranspositionTable) Clear() {
	for i := range tt.entries {
		tt.entries[i] = TTEntry{}
	}
	tt.age = 0
	tt.hits = 0
	tt.probes = 0
}

// HashFull returns the permille (parts per thousand) of the table that is used.
func (tt *TranspositionTable) HashFull() int {
	used := 0
	sampleSize := 1000
	if uint64(sampleSize) > tt.size {
		sampleSize = int(tt.size)
	}
	for i := 0; i < sampleSize; i++ {
		if tt.entries[i].Depth > 0 && tt.entries[i].Age == tt.age {
			used++
		}
	}
	return (used * 1000) / sampleSize
}

// HitRate returns the cache hit rate as a percentage.
func (tt *TranspositionTable) HitRate() float64 {
	if tt.probes == 0 {
		return 0
	}
	return float64(tt.hits) / float64(tt.probes) * 100
}

// Hits returns the number of successful probes since the last ResetStats.
func (tt *TranspositionTable) Hits() uint64 {
	return tt.hits
}

// ResetStats zeroes the probe/hit counters without touching stored entries.
func (tt *TranspositionTable) ResetStats() {
	tt.hits = 0
	tt.probes = 0
}

// Size returns the number of entries in the table.
func (tt *TranspositionTable) Size() uint64 {
	return tt.size
}

// AdjustScoreFromTT adjusts a score read from the transposition table back
// to the current ply: mate scores need shifting because the table stores
// them normalised to "distance from the position that stored them".
func AdjustScoreFromTT(score int32, ply int) int32 {
	if score > MateScore-MaxPly {
		return score - int32(ply)
	}
	if score < -MateScore+MaxPly {
		return score + int32(ply)
	}
	return score
}

// AdjustScoreToTT normalises a score for storage in the transposition table.
func AdjustScoreToTT(score int32, ply int) int32 {
	if score > MateScore-MaxPly {
		return score + int32(ply)
	}
	if score < -MateScore+MaxPly {
		return score - int32(ply)
	}
	return score
}
