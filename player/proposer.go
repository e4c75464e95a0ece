// Package player picks moves: it orchestrates the search over all root
// moves, with adaptive depth fallback when a forced loss is on the board.
package player

import (
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/fourply/fourply/board"
	"github.com/fourply/fourply/equity"
	"github.com/fourply/fourply/game"
	"github.com/fourply/fourply/search"
)

// ErrNoLegalMoves is returned when asked to move on a full board.
var ErrNoLegalMoves = errors.New("no legal moves")

// Proposer evaluates root moves with a fresh transposition table per call.
type Proposer struct {
	g    *board.Geometry
	eval equity.Evaluator

	tableSizePower int
	phaseThreshold int
	observer       search.Observer
}

// Proposal is the outcome of one ProposeMove call.
type Proposal struct {
	Move  board.Mask
	Value int32
	Depth int // the depth actually searched, after any fallback
	Stats search.Stats
}

// NewProposer builds a proposer. tableSizePower sizes each per-call
// transposition table as 2^power entries; pass 0 to size from system memory.
func NewProposer(g *board.Geometry, eval equity.Evaluator, tableSizePower int) *Proposer {
	return &Proposer{
		g:              g,
		eval:           eval,
		tableSizePower: tableSizePower,
		phaseThreshold: search.DefaultCachePhaseThreshold,
	}
}

// SetCachePhaseThreshold overrides the cache-phase entry heuristic.
func (pr *Proposer) SetCachePhaseThreshold(n int) { pr.phaseThreshold = n }

// SetObserver forwards an observer to every search this proposer runs.
func (pr *Proposer) SetObserver(o search.Observer) { pr.observer = o }

func (pr *Proposer) newTable() *search.TranspositionTable {
	if pr.tableSizePower > 0 {
		return search.NewTranspositionTableSized(pr.tableSizePower)
	}
	return search.NewTranspositionTable(0.1)
}

func (pr *Proposer) newSolver(table *search.TranspositionTable) *search.Solver {
	s := search.NewSolver(pr.g, pr.eval)
	s.SetTranspositionTable(table)
	s.SetCachePhaseThreshold(pr.phaseThreshold)
	s.SetObserver(pr.observer)
	return s
}

// ProposeMove searches every legal root move to depth-1 plies and returns
// the best one. The first root move is searched with the full window and
// each subsequent one with [ScoreLost, -alpha]; a later move with a merely
// equal score may look equal only because of a cut branch, so the best move
// is replaced on strictly better values only.
//
// When the best achievable value is the loss sentinel and depth leaves room,
// the search retries at roughly half depth: provable optimality is already
// gone, and the shallower search plays more usefully against opponents who
// may err.
func (pr *Proposer) ProposeMove(pos game.Position, depth int) (Proposal, error) {
	moves := pos.NextMoves(pr.g)
	if len(moves) == 0 {
		return Proposal{}, ErrNoLegalMoves
	}

	solver := pr.newSolver(pr.newTable())

	bestMove := moves[0]
	bestValue := equity.ScoreNone
	alpha := equity.ScoreLost
	for _, m := range moves {
		child := pos.Apply(m)
		v := -solver.Negamax(child, depth-1, -equity.ScoreWon, -alpha, m)
		log.Debug().Int("column", pr.g.Column(m)).Int32("value", v).Msg("root-move")
		if v > bestValue {
			bestValue = v
			bestMove = m
		}
		if v > alpha {
			alpha = v
		}
	}

	if bestValue == equity.ScoreLost && depth > 4 {
		reduced := depth / 2
		if depth > 8 {
			reduced -= 2
		}
		if reduced < 2 {
			reduced = 2
		}
		log.Info().Int("depth", depth).Int("reduced-depth", reduced).
			Msg("forced-loss-detected-retrying-shallower")
		prop, err := pr.ProposeMove(pos, reduced)
		prop.Stats.Merge(solver.Stats())
		return prop, err
	}

	return Proposal{
		Move:  bestMove,
		Value: bestValue,
		Depth: depth,
		Stats: solver.Stats(),
	}, nil
}
