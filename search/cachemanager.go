package search

import (
	"math/bits"

	"github.com/fourply/fourply/board"
	"github.com/fourply/fourply/game"
)

// DefaultCachePhaseThreshold is the men-per-rank count both players must
// reach (in some rank each) before transpositions become likely enough for
// caching to pay off. Empirically tuned in the reference engine; keep it
// configurable rather than re-deriving it.
const DefaultCachePhaseThreshold = 2

type cachePhase uint8

const (
	phaseAccumulating cachePhase = iota
	phaseActive
)

// cacheManager tracks, along one root-to-node path, whether the search has
// entered the cacheable phase. Before that phase every node is visited at
// most once and caching is pure overhead.
//
// It is a small value type with two variants: Accumulating carries per-rank
// men counts for both players; Active is terminal. advance returns the
// successor state, so each recursion branch owns an independent copy.
type cacheManager struct {
	phase     cachePhase
	threshold uint8
	// rankCounts[color][row]
	rankCounts [2][board.MaxDim]uint8
	// reached[color]: some rank already holds >= threshold men
	reached [2]bool
}

// newCacheManager seeds the state machine from an arbitrary root position.
func newCacheManager(g *board.Geometry, pos game.Position, threshold int) cacheManager {
	cm := cacheManager{threshold: uint8(threshold)}
	for colorIdx, c := range []game.Color{game.White, game.Black} {
		for m := uint64(pos.ColorMask(c)); m != 0; m &= m - 1 {
			row := g.RowOfSquare(bits.TrailingZeros64(m))
			cm.rankCounts[colorIdx][row]++
			if cm.rankCounts[colorIdx][row] >= cm.threshold {
				cm.reached[colorIdx] = true
			}
		}
	}
	if cm.reached[0] && cm.reached[1] {
		cm.phase = phaseActive
	}
	return cm
}

func (cm cacheManager) active() bool { return cm.phase == phaseActive }

// advance transitions the state machine for a move played by the side to
// move of pos.
func (cm cacheManager) advance(g *board.Geometry, pos game.Position, m board.Mask) cacheManager {
	if cm.phase == phaseActive {
		return cm
	}
	colorIdx := 0
	if !pos.WhiteToMove() {
		colorIdx = 1
	}
	row := g.RowOfSquare(m.SquareID())
	cm.rankCounts[colorIdx][row]++
	if cm.rankCounts[colorIdx][row] >= cm.threshold {
		cm.reached[colorIdx] = true
	}
	if cm.reached[0] && cm.reached[1] {
		cm.phase = phaseActive
	}
	return cm
}
