// Package game holds the bit-packed Connect Four position and the operations
// the search is built on: move enumeration, move application, and outcome
// detection. Positions are immutable values; Apply returns a new Position.
package game

import (
	"math/bits"

	"github.com/fourply/fourply/board"
)

// Color identifies a player. White moves first.
type Color uint8

const (
	White Color = iota
	Black
)

func (c Color) String() string {
	if c == White {
		return "White"
	}
	return "Black"
}

// Other returns the opposing color.
func (c Color) Other() Color { return c ^ 1 }

// turnBit is the most significant bit of the owner word. It is not part of
// the 0..55 square range and must be masked off before board inspection.
// 0 means White to move.
const turnBit = uint64(1) << 63

// Position packs a full game state into two words: occupied marks filled
// squares, owner marks which of those belong to Black (plus the turn bit).
// An owner bit is meaningful only where the occupied bit is set.
//
// Squares fill bottom-up per column. Apply relies on that invariant instead
// of re-validating it; only feed it masks produced by NextMoves or
// equivalent.
type Position struct {
	occupied uint64
	owner    uint64
}

// NewPosition returns the empty board with White to move.
func NewPosition() Position { return Position{} }

// Words exposes the raw (occupied, owner) pair. The owner word includes the
// turn bit, so the pair fully identifies the position; it is the
// transposition cache key.
func (p Position) Words() (occupied, owner uint64) { return p.occupied, p.owner }

// Occupied returns the mask of filled squares.
func (p Position) Occupied() board.Mask { return board.Mask(p.occupied) }

// SideToMove returns whose turn it is.
func (p Position) SideToMove() Color {
	if p.owner&turnBit == 0 {
		return White
	}
	return Black
}

// WhiteToMove reports whether it is White's turn.
func (p Position) WhiteToMove() bool { return p.owner&turnBit == 0 }

// ColorMask returns the squares owned by one color.
func (p Position) ColorMask(c Color) board.Mask {
	ownerBits := p.owner &^ turnBit
	if c == Black {
		return board.Mask(p.occupied & ownerBits)
	}
	return board.Mask(p.occupied &^ ownerBits)
}

// MenCount returns the total number of placed men.
func (p Position) MenCount() int { return bits.OnesCount64(p.occupied) }

// Apply drops a man on the square selected by m and flips the turn.
//
// Precondition, unchecked for performance: m selects exactly one empty
// square whose column predecessor is filled (or is in the bottom row).
func (p Position) Apply(m board.Mask) Position {
	p.occupied |= uint64(m)
	if p.owner&turnBit != 0 {
		p.owner |= uint64(m)
	}
	p.owner ^= turnBit
	return p
}

// ColorSwap returns the position with every man's owner flipped and the turn
// handed to the other player. Evaluators must negate under this transform.
func (p Position) ColorSwap() Position {
	p.owner ^= p.occupied | turnBit
	return p
}

// LowestFreeSquareInColumn returns the square id a man dropped into col
// would land on, or false when the column is full. Convenience lookup for
// human input paths; the search uses NextMoves instead.
func (p Position) LowestFreeSquareInColumn(g *board.Geometry, col int) (int, bool) {
	free := uint64(g.ColumnMask(col)) &^ p.occupied
	if free == 0 {
		return 0, false
	}
	return bits.TrailingZeros64(free), true
}
