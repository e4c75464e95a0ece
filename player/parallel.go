package player

import (
	"context"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/fourply/fourply/equity"
	"github.com/fourply/fourply/game"
	"github.com/fourply/fourply/search"
)

// ProposeMoveParallel splits the root moves across workers, each with its
// own solver and transposition table. Cache entries are read then
// conditionally written non-atomically, so tables are never shared.
//
// Every root move is searched with the full window, which makes each value
// exact; ties break toward the lowest root-move index, so the chosen value
// always equals what the serial ProposeMove would return. The loss-sentinel
// depth fallback applies the same way.
func (pr *Proposer) ProposeMoveParallel(ctx context.Context, pos game.Position, depth, workers int) (Proposal, error) {
	moves := pos.NextMoves(pr.g)
	if len(moves) == 0 {
		return Proposal{}, ErrNoLegalMoves
	}
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	if workers > len(moves) {
		workers = len(moves)
	}

	values := make([]int32, len(moves))
	var mu sync.Mutex
	var merged search.Stats

	g, ctx := errgroup.WithContext(ctx)
	next := make(chan int, len(moves))
	for i := range moves {
		next <- i
	}
	close(next)

	for w := 0; w < workers; w++ {
		g.Go(func() error {
			solver := pr.newSolver(pr.newTable())
			for {
				select {
				case <-ctx.Done():
					return ctx.Err()
				case i, ok := <-next:
					if !ok {
						mu.Lock()
						merged.Merge(solver.Stats())
						mu.Unlock()
						return nil
					}
					child := pos.Apply(moves[i])
					values[i] = -solver.Negamax(child, depth-1, equity.ScoreLost, equity.ScoreWon, moves[i])
				}
			}
		})
	}
	if err := g.Wait(); err != nil {
		return Proposal{}, err
	}

	bestIdx := 0
	for i := 1; i < len(values); i++ {
		if values[i] > values[bestIdx] {
			bestIdx = i
		}
	}
	bestValue := values[bestIdx]

	if bestValue == equity.ScoreLost && depth > 4 {
		reduced := depth / 2
		if depth > 8 {
			reduced -= 2
		}
		if reduced < 2 {
			reduced = 2
		}
		prop, err := pr.ProposeMoveParallel(ctx, pos, reduced, workers)
		prop.Stats.Merge(merged)
		return prop, err
	}

	return Proposal{
		Move:  moves[bestIdx],
		Value: bestValue,
		Depth: depth,
		Stats: merged,
	}, nil
}
