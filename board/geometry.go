// Package board holds the precomputed, immutable geometry for a Connect Four
// board of a given size: every bitmask needed for legality checks and
// win detection, plus the static square weights the evaluators use.
//
// A Geometry is computed once per board size and shared read-only across all
// positions of that size. Nothing in here is allocated per move.
package board

import (
	"fmt"
	"math/bits"

	"github.com/rs/zerolog/log"
)

const (
	MinDim = 4
	MaxDim = 8
	// MaxSquares keeps the whole board plus the turn bit inside one word.
	MaxSquares = 56

	// WinLength is the number of contiguous squares that form a win.
	WinLength = 4
)

// Orientation indexes the four families of win masks.
type Orientation int

const (
	Horizontal Orientation = iota
	Vertical
	DiagonalUp   // ↗: row and column both increase
	DiagonalDown // ↘: row decreases as column increases
	NumOrientations
)

func (o Orientation) String() string {
	switch o {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	case DiagonalUp:
		return "diagonal-up"
	case DiagonalDown:
		return "diagonal-down"
	}
	return "unknown"
}

// Geometry is the immutable per-size lookup structure. Square ids are
// row-major with row 0 at the bottom and column 0 at the left:
// id = row*cols + col.
type Geometry struct {
	rows    int
	cols    int
	squares int

	full        Mask
	columnMasks []Mask

	// winMasks[o] lists every 4-contiguous mask of orientation o.
	winMasks [NumOrientations][]Mask
	// winMasksBySquare[id] is the reverse index: every win mask covering id.
	winMasksBySquare [][]Mask

	// squareWeight[id] counts the win masks covering the square.
	squareWeight []int32
	// essentialWeight[id] counts the maximal lines through the square whose
	// every 4-window contains it; such squares are required to ever complete
	// that line.
	essentialWeight []int32
}

// NewGeometry builds the geometry for a rows x cols board. Dimensions must
// each be within [MinDim, MaxDim] and rows*cols must not exceed MaxSquares.
func NewGeometry(rows, cols int) (*Geometry, error) {
	if rows < MinDim || rows > MaxDim || cols < MinDim || cols > MaxDim {
		return nil, fmt.Errorf("board dimensions %dx%d outside [%d,%d]", rows, cols, MinDim, MaxDim)
	}
	if rows*cols > MaxSquares {
		return nil, fmt.Errorf("board %dx%d has %d squares, more than %d", rows, cols, rows*cols, MaxSquares)
	}
	g := &Geometry{
		rows:    rows,
		cols:    cols,
		squares: rows * cols,
	}
	g.columnMasks = make([]Mask, cols)
	for c := 0; c < cols; c++ {
		var m Mask
		for r := 0; r < rows; r++ {
			m |= g.SquareMask(r, c)
		}
		g.columnMasks[c] = m
	}
	g.full = Mask(1)<<uint(g.squares) - 1

	g.buildWinMasks()
	g.buildReverseIndex()
	g.buildWeights()

	log.Debug().Int("rows", rows).Int("cols", cols).
		Int("win-masks", len(g.AllWinMasks())).
		Msg("built-geometry")
	return g, nil
}

func (g *Geometry) buildWinMasks() {
	for _, l := range g.lines() {
		for i := 0; i+WinLength <= len(l.squares); i++ {
			var m Mask
			for _, sq := range l.squares[i : i+WinLength] {
				m |= Mask(1) << uint(sq)
			}
			g.winMasks[l.orientation] = append(g.winMasks[l.orientation], m)
		}
	}
}

// line is a maximal run of squares in one orientation, ordered.
type line struct {
	orientation Orientation
	squares     []int
}

// lines enumerates every maximal line on the board, including ones too short
// to hold a win (those contribute no masks and no essential squares).
func (g *Geometry) lines() []line {
	var out []line
	// Rows.
	for r := 0; r < g.rows; r++ {
		sq := make([]int, 0, g.cols)
		for c := 0; c < g.cols; c++ {
			sq = append(sq, g.SquareID(r, c))
		}
		out = append(out, line{Horizontal, sq})
	}
	// Columns.
	for c := 0; c < g.cols; c++ {
		sq := make([]int, 0, g.rows)
		for r := 0; r < g.rows; r++ {
			sq = append(sq, g.SquareID(r, c))
		}
		out = append(out, line{Vertical, sq})
	}
	// Up diagonals: row-col is constant.
	for d := -(g.cols - 1); d < g.rows; d++ {
		var sq []int
		for c := 0; c < g.cols; c++ {
			r := d + c
			if r >= 0 && r < g.rows {
				sq = append(sq, g.SquareID(r, c))
			}
		}
		if len(sq) > 0 {
			out = append(out, line{DiagonalUp, sq})
		}
	}
	// Down diagonals: row+col is constant.
	for s := 0; s < g.rows+g.cols-1; s++ {
		var sq []int
		for c := 0; c < g.cols; c++ {
			r := s - c
			if r >= 0 && r < g.rows {
				sq = append(sq, g.SquareID(r, c))
			}
		}
		if len(sq) > 0 {
			out = append(out, line{DiagonalDown, sq})
		}
	}
	return out
}

func (g *Geometry) buildReverseIndex() {
	g.winMasksBySquare = make([][]Mask, g.squares)
	for o := Orientation(0); o < NumOrientations; o++ {
		for _, m := range g.winMasks[o] {
			for _, sq := range m.Squares() {
				g.winMasksBySquare[sq] = append(g.winMasksBySquare[sq], m)
			}
		}
	}
}

func (g *Geometry) buildWeights() {
	g.squareWeight = make([]int32, g.squares)
	for sq := range g.winMasksBySquare {
		g.squareWeight[sq] = int32(len(g.winMasksBySquare[sq]))
	}

	g.essentialWeight = make([]int32, g.squares)
	for _, l := range g.lines() {
		n := len(l.squares)
		if n < WinLength {
			continue
		}
		// The intersection of all 4-windows over a line of length n is the
		// index range [n-4, 3]; empty once the line is longer than 7.
		lo := n - WinLength
		hi := WinLength - 1
		for i := lo; i <= hi; i++ {
			g.essentialWeight[l.squares[i]]++
		}
	}
}

// Rows returns the number of rows.
func (g *Geometry) Rows() int { return g.rows }

// Cols returns the number of columns.
func (g *Geometry) Cols() int { return g.cols }

// Squares returns rows*cols.
func (g *Geometry) Squares() int { return g.squares }

// SquareID maps (row, col) to the square's bit index.
func (g *Geometry) SquareID(row, col int) int { return row*g.cols + col }

// SquareMask returns the single-bit mask for (row, col).
func (g *Geometry) SquareMask(row, col int) Mask {
	return Mask(1) << uint(g.SquareID(row, col))
}

// RowOfSquare returns the row of a square id.
func (g *Geometry) RowOfSquare(sq int) int { return sq / g.cols }

// ColOfSquare returns the column of a square id.
func (g *Geometry) ColOfSquare(sq int) int { return sq % g.cols }

// FullMask covers every square on the board.
func (g *Geometry) FullMask() Mask { return g.full }

// ColumnMask covers every square in a column.
func (g *Geometry) ColumnMask(col int) Mask { return g.columnMasks[col] }

// WinMasks returns all win masks of one orientation.
func (g *Geometry) WinMasks(o Orientation) []Mask { return g.winMasks[o] }

// AllWinMasks returns every win mask on the board.
func (g *Geometry) AllWinMasks() []Mask {
	var out []Mask
	for o := Orientation(0); o < NumOrientations; o++ {
		out = append(out, g.winMasks[o]...)
	}
	return out
}

// WinMasksCovering returns every win mask that includes the given square.
// After a move only these lines can have changed.
func (g *Geometry) WinMasksCovering(sq int) []Mask { return g.winMasksBySquare[sq] }

// SquareWeight is the number of win masks covering the square.
func (g *Geometry) SquareWeight(sq int) int32 { return g.squareWeight[sq] }

// EssentialWeight is the number of lines through the square for which the
// square appears in every possible 4-window.
func (g *Geometry) EssentialWeight(sq int) int32 { return g.essentialWeight[sq] }

// Column returns the column index of a mask whose squares all lie within a
// single column. Passing a mask that spans multiple columns (or an empty
// mask) is a programming error and panics.
func (g *Geometry) Column(m Mask) int {
	if m == 0 {
		panic("board: Column called with empty mask")
	}
	col := g.ColOfSquare(bits.TrailingZeros64(uint64(m)))
	if m&^g.columnMasks[col] != 0 {
		panic(fmt.Sprintf("board: mask %#x spans multiple columns", uint64(m)))
	}
	return col
}
