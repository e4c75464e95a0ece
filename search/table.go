package search

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash"
	"github.com/pbnjay/memory"
	"github.com/rs/zerolog/log"

	"github.com/fourply/fourply/equity"
	"github.com/fourply/fourply/game"
)

// tableEntry caches the result of one searched configuration together with
// the window it was computed under. A cached score is directly reusable only
// when the querying window is contained in [alpha, beta]; forced wins and
// losses are stored with the widest window since they are window-independent.
type tableEntry struct {
	occupied uint64
	owner    uint64
	alpha    int32
	beta     int32
	score    int32
	used     bool
}

const entrySize = 40 // unsafe.Sizeof(tableEntry{}) with padding

// TranspositionTable maps (occupied, owner) configurations to scored
// windows. It is a fixed power-of-two bucket array indexed by a hash of the
// full key; colliding keys simply overwrite. The full key is stored and
// verified on lookup, so a collision can never surface a wrong score.
//
// A table belongs to exactly one search at a time. Entries are read then
// conditionally written non-atomically; concurrent searchers must each own
// their own table.
type TranspositionTable struct {
	entries  []tableEntry
	sizeMask uint64
}

// NewTranspositionTable sizes the table to roughly fractionOfMemory of
// system memory, rounded down to a power of two.
func NewTranspositionTable(fractionOfMemory float64) *TranspositionTable {
	desired := fractionOfMemory * float64(memory.TotalMemory()) / float64(entrySize)
	power := int(math.Log2(desired))
	if power < 16 {
		power = 16
	}
	if power > 28 {
		power = 28
	}
	t := NewTranspositionTableSized(power)
	log.Debug().Int("size-power-of-2", power).
		Int("estimated-bytes", len(t.entries)*entrySize).
		Msg("transposition-table-size")
	return t
}

// NewTranspositionTableSized allocates 2^power entries. Tests use small
// powers directly.
func NewTranspositionTableSized(power int) *TranspositionTable {
	n := 1 << power
	return &TranspositionTable{
		entries:  make([]tableEntry, n),
		sizeMask: uint64(n - 1),
	}
}

func (t *TranspositionTable) index(occupied, owner uint64) uint64 {
	var b [16]byte
	binary.LittleEndian.PutUint64(b[0:], occupied)
	binary.LittleEndian.PutUint64(b[8:], owner)
	return xxhash.Sum64(b[:]) & t.sizeMask
}

func (t *TranspositionTable) lookup(pos game.Position) (tableEntry, bool) {
	occupied, owner := pos.Words()
	e := t.entries[t.index(occupied, owner)]
	if !e.used || e.occupied != occupied || e.owner != owner {
		return tableEntry{}, false
	}
	return e, true
}

// store writes an entry for pos, relaxing the bounds to the full window when
// the score is a forced outcome.
func (t *TranspositionTable) store(pos game.Position, alpha, beta, score int32) {
	if score == equity.ScoreWon || score == equity.ScoreLost {
		alpha, beta = equity.ScoreLost, equity.ScoreWon
	}
	occupied, owner := pos.Words()
	t.entries[t.index(occupied, owner)] = tableEntry{
		occupied: occupied,
		owner:    owner,
		alpha:    alpha,
		beta:     beta,
		score:    score,
		used:     true,
	}
}
