// Package equity holds the static evaluation strategies. Every evaluator
// maps a position to a White-oriented score: positive favors White,
// magnitude stays inside (ScoreLost, ScoreWon) except at forced outcomes,
// and the result negates under a color swap of the position.
package equity

import (
	"fmt"
	"math"

	"github.com/fourply/fourply/board"
	"github.com/fourply/fourply/game"
)

const (
	// ScoreWon / ScoreLost are the forced-outcome extremes. The search
	// returns them exactly for decided positions; evaluators stay strictly
	// inside them.
	ScoreWon  = int32(math.MaxInt32)
	ScoreLost = -ScoreWon

	// ScoreNone is the reserved "nothing evaluated yet" sentinel. No
	// evaluator may ever return it.
	ScoreNone = int32(math.MinInt32)
)

// Evaluator scores a position heuristically. Implementations are pure:
// same geometry and position, same score.
type Evaluator interface {
	Evaluate(g *board.Geometry, pos game.Position) int32
	Name() string
}

// LinesOfThreeParams are the tuning constants of the default evaluator.
// They are heuristic knobs, not semantic contracts.
type LinesOfThreeParams struct {
	WinningScale int32 // value of one winning square in a column
	ParityFactor int32 // multiplier when two stacked winning squares are parity-compatible
	TieBreak     int32 // scale of the occupied-square weight sum
}

// DefaultLinesOfThreeParams mirrors the reference tuning.
func DefaultLinesOfThreeParams() LinesOfThreeParams {
	return LinesOfThreeParams{WinningScale: 1000, ParityFactor: 2, TieBreak: 10}
}

// ByName constructs an evaluator from its configured name.
func ByName(name string, seed uint64, params LinesOfThreeParams) (Evaluator, error) {
	switch name {
	case "fixed":
		return Fixed{}, nil
	case "random":
		return NewRandom(seed), nil
	case "squareweights", "weights":
		return SquareWeights{}, nil
	case "linesofthree", "lines3", "":
		return LinesOfThree{Params: params}, nil
	}
	return nil, fmt.Errorf("unknown evaluator %q", name)
}
