package search

import (
	"github.com/fourply/fourply/board"
	"github.com/fourply/fourply/game"
)

// Observer is an optional hook fired once per evaluated child move. The
// graphviz exporter hangs off this; the default is no observer and the hot
// path pays a single nil check for it.
type Observer interface {
	NodeVisited(parent game.Position, move board.Mask, depth int, alpha, beta, value int32)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(parent game.Position, move board.Mask, depth int, alpha, beta, value int32)

func (f ObserverFunc) NodeVisited(parent game.Position, move board.Mask, depth int, alpha, beta, value int32) {
	f(parent, move, depth, alpha, beta, value)
}
