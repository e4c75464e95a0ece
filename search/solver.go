// Package search implements the negamax alpha-beta driver over bit-packed
// positions, with killer-move pruning and transposition caching restricted
// to the cacheable phase of the game.
package search

import (
	"github.com/fourply/fourply/board"
	"github.com/fourply/fourply/equity"
	"github.com/fourply/fourply/game"
)

// thanks Wikipedia:
/*
function negamax(node, depth, α, β, color) is
    if depth = 0 or node is a terminal node then
        return color × the heuristic value of node

    childNodes := generateMoves(node)
    childNodes := orderMoves(childNodes)
    value := −∞
    foreach child in childNodes do
        value := max(value, −negamax(child, depth − 1, −β, −α, −color))
        α := max(α, value)
        if α ≥ β then
            break (* cut-off *)
    return value
(* Initial call for Player A's root node *)
negamax(rootNode, depth, −∞, +∞, 1)
**/

// Solver runs fail-soft negamax over one game tree. A Solver is owned by a
// single goroutine; parallel root evaluation uses one Solver (and one
// transposition table) per worker.
type Solver struct {
	g    *board.Geometry
	eval equity.Evaluator

	table          *TranspositionTable // nil disables caching
	phaseThreshold int

	observer Observer
	stats    Stats
}

// NewSolver returns a solver with caching disabled and no observer.
func NewSolver(g *board.Geometry, eval equity.Evaluator) *Solver {
	return &Solver{g: g, eval: eval, phaseThreshold: DefaultCachePhaseThreshold}
}

// SetTranspositionTable enables caching through the given table. Pass nil to
// disable. The table must not be shared with another live solver.
func (s *Solver) SetTranspositionTable(t *TranspositionTable) { s.table = t }

// SetCachePhaseThreshold overrides the men-per-rank count that opens the
// cacheable phase.
func (s *Solver) SetCachePhaseThreshold(n int) { s.phaseThreshold = n }

// SetObserver installs a per-child callback; nil removes it.
func (s *Solver) SetObserver(o Observer) { s.observer = o }

// Stats returns the counters accumulated since the last ResetStats.
func (s *Solver) Stats() Stats { return s.stats }

// ResetStats zeroes the counters.
func (s *Solver) ResetStats() { s.stats = Stats{} }

// Negamax evaluates pos to the given depth inside the fail-soft window
// [alpha, beta], from the perspective of the side to move. lastMove is the
// move that produced pos (zero at a true root) and narrows the terminal
// check to the lines it touches.
//
// Calling this on a position that was already decided before lastMove is a
// contract violation with undefined results; the hot path carries no
// defensive checks.
func (s *Solver) Negamax(pos game.Position, depth int, alpha, beta int32, lastMove board.Mask) int32 {
	cm := newCacheManager(s.g, pos, s.phaseThreshold)
	return s.negamax(pos, depth, alpha, beta, lastMove, cm)
}

func (s *Solver) negamax(pos game.Position, depth int, alpha, beta int32, lastMove board.Mask, cm cacheManager) int32 {
	s.stats.Nodes++

	outcome, _ := pos.DetermineState(s.g, lastMove)
	if outcome == game.Won {
		// The man just placed won, so the side to move here lost.
		return equity.ScoreLost
	}
	if outcome == game.Drawn {
		return 0
	}
	if depth <= 0 {
		v := s.eval.Evaluate(s.g, pos)
		if !pos.WhiteToMove() {
			v = -v
		}
		return v
	}

	// Caching is skipped at the last plies, where a full evaluation is
	// cheaper than the cache round-trip, and before the cacheable phase.
	useCache := s.table != nil && depth > 1 && cm.active()
	var cached tableEntry
	haveCached := false
	if useCache {
		s.stats.Lookups++
		if e, ok := s.table.lookup(pos); ok {
			s.stats.Hits++
			if alpha >= e.alpha && beta <= e.beta {
				return e.score
			}
			cached, haveCached = e, true
		}
	}

	value := s.expand(pos, depth, alpha, beta, cm)

	if useCache {
		s.stats.Stores++
		switch {
		case value == equity.ScoreWon || value == equity.ScoreLost:
			// store relaxes the bounds itself for forced outcomes.
			s.table.store(pos, alpha, beta, value)
		case haveCached && value == cached.score && alpha <= cached.beta && cached.alpha <= beta:
			// Same score under an overlapping window: widen monotonically.
			s.table.store(pos, min(cached.alpha, alpha), max(cached.beta, beta), value)
		default:
			s.table.store(pos, alpha, beta, value)
		}
	}
	return value
}

// expand runs the fail-soft alpha-beta loop over the children of pos.
func (s *Solver) expand(pos game.Position, depth int, alpha, beta int32, cm cacheManager) int32 {
	moves := pos.NextMoves(s.g)
	if depth > 1 {
		moves = s.killerFilter(pos, moves)
	}

	best := equity.ScoreLost
	for _, m := range moves {
		child := pos.Apply(m)
		v := -s.negamax(child, depth-1, -beta, -alpha, m, cm.advance(s.g, pos, m))
		if s.observer != nil {
			s.observer.NodeVisited(pos, m, depth, alpha, beta, v)
		}
		if v > best {
			best = v
		}
		if best >= beta {
			s.stats.Cutoffs++
			return best
		}
		if best > alpha {
			alpha = best
		}
	}
	return best
}

func min(x, y int32) int32 {
	if x < y {
		return x
	}
	return y
}

func max(x, y int32) int32 {
	if x < y {
		return y
	}
	return x
}
