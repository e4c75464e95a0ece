package equity

import (
	"github.com/fourply/fourply/board"
	"github.com/fourply/fourply/game"
)

// Fixed scores every position zero. Useful as a search baseline in tests:
// with it, only forced outcomes move the needle.
type Fixed struct{}

func (Fixed) Evaluate(*board.Geometry, game.Position) int32 { return 0 }

func (Fixed) Name() string { return "fixed" }
