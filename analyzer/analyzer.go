// Package analyzer exhaustively enumerates every terminal board
// configuration reachable from the empty board, with its own memoization
// set independent of the search engine's transposition cache.
//
// The configuration count explodes with board size; this is practical for
// the small end of the supported range.
package analyzer

import (
	"context"

	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/stat"

	"github.com/fourply/fourply/board"
	"github.com/fourply/fourply/game"
)

type posKey struct {
	occupied uint64
	owner    uint64
}

// Summary aggregates one enumeration run.
type Summary struct {
	Rows           int     `yaml:"rows"`
	Cols           int     `yaml:"cols"`
	Configurations uint64  `yaml:"configurations"`
	Terminal       uint64  `yaml:"terminal"`
	WhiteWins      uint64  `yaml:"white_wins"`
	BlackWins      uint64  `yaml:"black_wins"`
	Draws          uint64  `yaml:"draws"`
	MinPlies       int     `yaml:"min_plies"`
	MaxPlies       int     `yaml:"max_plies"`
	MeanPlies      float64 `yaml:"mean_plies"`
	StddevPlies    float64 `yaml:"stddev_plies"`
}

// TerminalFunc receives every distinct terminal configuration once.
type TerminalFunc func(pos game.Position, outcome game.Outcome, line board.Mask, plies int) error

// Analyzer walks the full game tree depth-first.
type Analyzer struct {
	g    *board.Geometry
	memo map[posKey]struct{}

	plies []float64
	sum   Summary
}

// New returns an analyzer for one board size.
func New(g *board.Geometry) *Analyzer {
	return &Analyzer{
		g:    g,
		memo: make(map[posKey]struct{}),
	}
}

// Run enumerates all terminal configurations, invoking onTerminal (which may
// be nil) for each. The context is checked between expansions so long runs
// can be abandoned.
func (a *Analyzer) Run(ctx context.Context, onTerminal TerminalFunc) (Summary, error) {
	a.sum = Summary{Rows: a.g.Rows(), Cols: a.g.Cols(), MinPlies: a.g.Squares() + 1}
	a.plies = a.plies[:0]

	err := a.walk(ctx, game.NewPosition(), 0, onTerminal)
	if err != nil {
		return Summary{}, err
	}

	if len(a.plies) > 0 {
		a.sum.MeanPlies = stat.Mean(a.plies, nil)
		a.sum.StddevPlies = stat.StdDev(a.plies, nil)
	}
	log.Info().
		Uint64("configurations", a.sum.Configurations).
		Uint64("terminal", a.sum.Terminal).
		Uint64("white-wins", a.sum.WhiteWins).
		Uint64("black-wins", a.sum.BlackWins).
		Uint64("draws", a.sum.Draws).
		Msg("enumeration-complete")
	return a.sum, nil
}

func (a *Analyzer) walk(ctx context.Context, pos game.Position, lastMove board.Mask, onTerminal TerminalFunc) error {
	occupied, owner := pos.Words()
	key := posKey{occupied, owner}
	if _, seen := a.memo[key]; seen {
		return nil
	}
	a.memo[key] = struct{}{}
	a.sum.Configurations++
	if a.sum.Configurations%(1<<20) == 0 {
		if err := ctx.Err(); err != nil {
			return err
		}
		log.Debug().Uint64("configurations", a.sum.Configurations).Msg("enumeration-progress")
	}

	outcome, line := pos.DetermineState(a.g, lastMove)
	if outcome != game.NotFinished {
		a.recordTerminal(pos, outcome, line)
		if onTerminal != nil {
			return onTerminal(pos, outcome, line, pos.MenCount())
		}
		return nil
	}

	for _, m := range pos.NextMoves(a.g) {
		if err := a.walk(ctx, pos.Apply(m), m, onTerminal); err != nil {
			return err
		}
	}
	return nil
}

func (a *Analyzer) recordTerminal(pos game.Position, outcome game.Outcome, line board.Mask) {
	a.sum.Terminal++
	plies := pos.MenCount()
	a.plies = append(a.plies, float64(plies))
	if plies < a.sum.MinPlies {
		a.sum.MinPlies = plies
	}
	if plies > a.sum.MaxPlies {
		a.sum.MaxPlies = plies
	}
	switch outcome {
	case game.Drawn:
		a.sum.Draws++
	case game.Won:
		if pos.Winner(line) == game.White {
			a.sum.WhiteWins++
		} else {
			a.sum.BlackWins++
		}
	}
}
