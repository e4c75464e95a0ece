package player_test

import (
	"context"
	"os"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"

	"github.com/fourply/fourply/board"
	"github.com/fourply/fourply/equity"
	"github.com/fourply/fourply/game"
	"github.com/fourply/fourply/player"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.Disabled)
	os.Exit(m.Run())
}

func geom(t *testing.T, rows, cols int) *board.Geometry {
	t.Helper()
	g, err := board.NewGeometry(rows, cols)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func mustPos(t *testing.T, g *board.Geometry, cols ...int) game.Position {
	t.Helper()
	p, err := game.FromMoveList(g, cols...)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func defaultEval() equity.Evaluator {
	return equity.LinesOfThree{Params: equity.DefaultLinesOfThreeParams()}
}

func TestProposeMoveTakesTheWin(t *testing.T) {
	is := is.New(t)
	g := geom(t, 6, 7)
	pos := mustPos(t, g, 3, 0, 3, 0, 3, 0)

	pr := player.NewProposer(g, defaultEval(), 12)
	prop, err := pr.ProposeMove(pos, 6)
	is.NoErr(err)
	is.Equal(g.Column(prop.Move), 3)
	is.Equal(prop.Value, equity.ScoreWon)
	is.Equal(prop.Depth, 6)
	is.True(prop.Stats.Nodes > 0)
}

func TestProposeMoveBlocksTheThreat(t *testing.T) {
	is := is.New(t)
	g := geom(t, 6, 7)
	// Black threatens to finish the bottom row at column 3. Every other
	// reply loses immediately, so the block must come out on top.
	pos := mustPos(t, g, 4, 0, 4, 1, 6, 2)

	pr := player.NewProposer(g, defaultEval(), 12)
	prop, err := pr.ProposeMove(pos, 4)
	is.NoErr(err)
	is.Equal(g.Column(prop.Move), 3)
	is.True(prop.Value > equity.ScoreLost)
}

func TestProposeMoveReportsForcedLoss(t *testing.T) {
	is := is.New(t)
	g := geom(t, 6, 7)
	// Black has an open three on the bottom row; White cannot cover both
	// completing squares.
	pos := mustPos(t, g, 6, 2, 2, 3, 3, 4)

	pr := player.NewProposer(g, defaultEval(), 12)
	prop, err := pr.ProposeMove(pos, 4)
	is.NoErr(err)
	is.Equal(prop.Value, equity.ScoreLost)
	is.Equal(prop.Depth, 4)
}

func TestProposeMoveFallsBackOnForcedLoss(t *testing.T) {
	is := is.New(t)
	g := geom(t, 6, 7)
	pos := mustPos(t, g, 6, 2, 2, 3, 3, 4)

	pr := player.NewProposer(g, defaultEval(), 12)
	prop, err := pr.ProposeMove(pos, 8)
	is.NoErr(err)
	// depth 8 halves to 4, where the fallback stops even though the value
	// is still the loss sentinel.
	is.Equal(prop.Depth, 4)
	is.Equal(prop.Value, equity.ScoreLost)
}

func TestProposeMoveOnFullBoard(t *testing.T) {
	is := is.New(t)
	g := geom(t, 4, 4)
	pos := mustPos(t, g, 0, 2, 1, 3, 2, 0, 3, 1, 0, 2, 1, 3, 2, 0, 3, 1)

	pr := player.NewProposer(g, defaultEval(), 10)
	_, err := pr.ProposeMove(pos, 4)
	is.Equal(err, player.ErrNoLegalMoves)

	_, err = pr.ProposeMoveParallel(context.Background(), pos, 4, 2)
	is.Equal(err, player.ErrNoLegalMoves)
}

// The parallel proposer searches every root move with the full window, so
// its values are exact and its pick must match the serial search.
func TestParallelMatchesSerial(t *testing.T) {
	is := is.New(t)
	g := geom(t, 6, 7)
	pr := player.NewProposer(g, defaultEval(), 12)

	for _, cols := range [][]int{
		{},
		{3},
		{4, 3, 2, 2, 3, 4, 1, 5},
		{6, 2, 2, 3, 3, 4},
	} {
		pos := mustPos(t, g, cols...)
		serial, err := pr.ProposeMove(pos, 5)
		is.NoErr(err)
		parallel, err := pr.ProposeMoveParallel(context.Background(), pos, 5, 3)
		is.NoErr(err)
		is.Equal(parallel.Value, serial.Value)
		is.Equal(parallel.Move, serial.Move)
		is.Equal(parallel.Depth, serial.Depth)
	}
}

func TestParallelTakesTheWin(t *testing.T) {
	is := is.New(t)
	g := geom(t, 6, 7)
	pos := mustPos(t, g, 3, 0, 3, 0, 3, 0)

	pr := player.NewProposer(g, defaultEval(), 12)
	prop, err := pr.ProposeMoveParallel(context.Background(), pos, 6, 0)
	is.NoErr(err)
	is.Equal(g.Column(prop.Move), 3)
	is.Equal(prop.Value, equity.ScoreWon)
	is.True(prop.Stats.Nodes > 0)
}
