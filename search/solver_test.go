package search

import (
	"os"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"

	"github.com/fourply/fourply/board"
	"github.com/fourply/fourply/equity"
	"github.com/fourply/fourply/game"
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

// White has three men stacked in the center column; any depth finds the win.
func TestImmediateWinScoresWon(t *testing.T) {
	is := is.New(t)
	g := geom(t, 6, 7)
	pos := mustPos(t, g, 3, 0, 3, 0, 3, 0)

	for depth := 1; depth <= 5; depth++ {
		s := NewSolver(g, equity.Fixed{})
		is.Equal(s.Negamax(pos, depth, equity.ScoreLost, equity.ScoreWon, 0), equity.ScoreWon)
	}
}

// Black holds an open three on the bottom row with White to move. White can
// block one end but not both, so from depth two onward the position is a
// known loss.
func TestDoubleThreatScoresLost(t *testing.T) {
	is := is.New(t)
	g := geom(t, 6, 7)
	pos := mustPos(t, g, 6, 2, 2, 3, 3, 4)

	for depth := 2; depth <= 5; depth++ {
		s := NewSolver(g, equity.Fixed{})
		is.Equal(s.Negamax(pos, depth, equity.ScoreLost, equity.ScoreWon, 0), equity.ScoreLost)
	}
}

// A filled-but-for-two 4x4 board with no winning line left for anyone is a
// draw no matter how the last two men fall.
func TestForcedDrawScoresZero(t *testing.T) {
	is := is.New(t)
	g := geom(t, 4, 4)
	pos := mustPos(t, g, 0, 2, 1, 3, 2, 0, 3, 1, 0, 2, 1, 3, 2, 0)

	s := NewSolver(g, equity.LinesOfThree{Params: equity.DefaultLinesOfThreeParams()})
	is.Equal(s.Negamax(pos, 4, equity.ScoreLost, equity.ScoreWon, 0), int32(0))
}

func TestHeuristicLeafNegatesForBlack(t *testing.T) {
	is := is.New(t)
	g := geom(t, 6, 7)
	eval := equity.SquareWeights{}

	white := mustPos(t, g, 3, 0) // White to move
	black := mustPos(t, g, 3)    // Black to move

	s := NewSolver(g, eval)
	is.Equal(s.Negamax(white, 0, equity.ScoreLost, equity.ScoreWon, 0), eval.Evaluate(g, white))
	is.Equal(s.Negamax(black, 0, equity.ScoreLost, equity.ScoreWon, 0), -eval.Evaluate(g, black))
}

func TestKillerFilterImmediateWin(t *testing.T) {
	is := is.New(t)
	g := geom(t, 6, 7)
	pos := mustPos(t, g, 3, 0, 3, 0, 3, 0)

	s := NewSolver(g, equity.Fixed{})
	filtered := s.killerFilter(pos, pos.NextMoves(g))
	is.Equal(len(filtered), 1)
	is.Equal(g.Column(filtered[0]), 3)
	is.Equal(s.Stats().KillerWins, uint64(1))
}

func TestKillerFilterForcedBlock(t *testing.T) {
	is := is.New(t)
	g := geom(t, 6, 7)
	// Black threatens to complete the bottom row at column 3 and nowhere
	// else; every White reply but the block loses on the spot.
	pos := mustPos(t, g, 4, 0, 4, 1, 6, 2)

	s := NewSolver(g, equity.Fixed{})
	filtered := s.killerFilter(pos, pos.NextMoves(g))
	is.Equal(len(filtered), 1)
	is.Equal(g.Column(filtered[0]), 3)
	is.Equal(s.Stats().ForcedBlocks, uint64(1))
}

func TestKillerFilterQuietPositionUntouched(t *testing.T) {
	is := is.New(t)
	g := geom(t, 6, 7)
	pos := mustPos(t, g, 3, 3)

	s := NewSolver(g, equity.Fixed{})
	moves := pos.NextMoves(g)
	is.Equal(s.killerFilter(pos, moves), moves)
	is.Equal(s.Stats().KillerWins, uint64(0))
	is.Equal(s.Stats().ForcedBlocks, uint64(0))
}

func TestCacheManagerPhase(t *testing.T) {
	is := is.New(t)
	g := geom(t, 6, 7)

	// Empty board: nobody near the threshold.
	is.True(!newCacheManager(g, game.NewPosition(), 2).active())

	// Two men per color spread over the bottom rank: both reach it.
	is.True(newCacheManager(g, mustPos(t, g, 0, 1, 2, 3), 2).active())

	// Two men per color stacked in one column sit in different ranks and
	// do not reach the threshold.
	is.True(!newCacheManager(g, mustPos(t, g, 0, 1, 0, 1), 2).active())
}

func TestCacheManagerAdvance(t *testing.T) {
	is := is.New(t)
	g := geom(t, 6, 7)
	pos := mustPos(t, g, 0, 1, 2) // White has rank 0 covered, Black does not

	cm := newCacheManager(g, pos, 2)
	is.True(!cm.active())

	m := board.Mask(1) << uint(g.SquareID(0, 3)) // Black to move drops on the rank
	next := cm.advance(g, pos, m)
	is.True(next.active())
	is.True(!cm.active()) // value semantics: the original is untouched

	// Once active the state is terminal.
	is.True(next.advance(g, pos.Apply(m), board.Mask(1)<<uint(g.SquareID(0, 5))).active())
}

func TestTableStoreLookup(t *testing.T) {
	is := is.New(t)
	g := geom(t, 6, 7)
	table := NewTranspositionTableSized(8)

	pos := mustPos(t, g, 3, 2, 4)
	_, ok := table.lookup(pos)
	is.True(!ok)

	table.store(pos, -5, 5, 3)
	e, ok := table.lookup(pos)
	is.True(ok)
	is.Equal(e.alpha, int32(-5))
	is.Equal(e.beta, int32(5))
	is.Equal(e.score, int32(3))

	// A different position misses even if it hashes to the same bucket,
	// because the full key is verified.
	_, ok = table.lookup(pos.Apply(board.Mask(1) << uint(g.SquareID(0, 0))))
	is.True(!ok)
}

func TestTableRelaxesForcedOutcomes(t *testing.T) {
	is := is.New(t)
	g := geom(t, 6, 7)
	table := NewTranspositionTableSized(8)
	pos := mustPos(t, g, 3, 2, 4)

	table.store(pos, -5, 5, equity.ScoreWon)
	e, ok := table.lookup(pos)
	is.True(ok)
	is.Equal(e.alpha, equity.ScoreLost)
	is.Equal(e.beta, equity.ScoreWon)
	is.Equal(e.score, equity.ScoreWon)

	table.store(pos, -5, 5, equity.ScoreLost)
	e, ok = table.lookup(pos)
	is.True(ok)
	is.Equal(e.alpha, equity.ScoreLost)
	is.Equal(e.beta, equity.ScoreWon)
	is.Equal(e.score, equity.ScoreLost)
}

// Caching must never change the search value, only the node count.
func TestCacheTransparency(t *testing.T) {
	is := is.New(t)
	g := geom(t, 6, 7)
	// A mid-game position well inside the cacheable phase.
	pos := mustPos(t, g, 4, 3, 2, 2, 3, 4, 1, 5)
	eval := equity.LinesOfThree{Params: equity.DefaultLinesOfThreeParams()}

	plain := NewSolver(g, eval)
	want := plain.Negamax(pos, 6, equity.ScoreLost, equity.ScoreWon, 0)

	cached := NewSolver(g, eval)
	cached.SetTranspositionTable(NewTranspositionTableSized(16))
	got := cached.Negamax(pos, 6, equity.ScoreLost, equity.ScoreWon, 0)

	is.Equal(got, want)
	st := cached.Stats()
	is.True(st.Lookups > 0)
	is.True(st.Stores > 0)
	is.True(st.Nodes <= plain.Stats().Nodes)
}

func TestObserverSeesChildren(t *testing.T) {
	is := is.New(t)
	g := geom(t, 6, 7)
	pos := mustPos(t, g, 3)

	var visits int
	s := NewSolver(g, equity.Fixed{})
	s.SetObserver(ObserverFunc(func(parent game.Position, move board.Mask, depth int, alpha, beta, value int32) {
		visits++
		is.True(depth >= 1)
		is.True(move != 0)
	}))
	s.Negamax(pos, 2, equity.ScoreLost, equity.ScoreWon, 0)
	is.True(visits > 0)

	s.SetObserver(nil)
	s.ResetStats()
	before := visits
	s.Negamax(pos, 2, equity.ScoreLost, equity.ScoreWon, 0)
	is.Equal(visits, before)
}

func TestStatsMerge(t *testing.T) {
	is := is.New(t)
	a := Stats{Nodes: 3, Lookups: 2, Hits: 1, Stores: 2, Cutoffs: 5, KillerWins: 1, ForcedBlocks: 2}
	b := Stats{Nodes: 10, Hits: 4}
	a.Merge(b)
	is.Equal(a.Nodes, uint64(13))
	is.Equal(a.Hits, uint64(5))
	is.Equal(a.Cutoffs, uint64(5))
}
