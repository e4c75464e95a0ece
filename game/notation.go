package game

import (
	"fmt"

	"github.com/fourply/fourply/board"
)

// FromMoveList replays a sequence of column drops from the empty board,
// validating each drop. Handy for setting up positions in tests and tools;
// the search itself never goes through here.
func FromMoveList(g *board.Geometry, cols ...int) (Position, error) {
	p := NewPosition()
	for i, col := range cols {
		if col < 0 || col >= g.Cols() {
			return Position{}, fmt.Errorf("move %d: column %d out of range", i, col)
		}
		sq, ok := p.LowestFreeSquareInColumn(g, col)
		if !ok {
			return Position{}, fmt.Errorf("move %d: column %d is full", i, col)
		}
		p = p.Apply(board.Mask(1) << uint(sq))
	}
	return p, nil
}
