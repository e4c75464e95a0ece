package board

import (
	"testing"

	"github.com/matryer/is"
	"github.com/stretchr/testify/assert"
)

func TestNewGeometryValidation(t *testing.T) {
	for _, tc := range []struct {
		rows, cols int
		ok         bool
	}{
		{6, 7, true},
		{4, 4, true},
		{8, 7, true},
		{3, 7, false},
		{6, 9, false},
		{8, 8, false}, // 64 squares > 56
		{7, 8, true},  // exactly 56
	} {
		_, err := NewGeometry(tc.rows, tc.cols)
		if tc.ok {
			assert.NoError(t, err, "%dx%d", tc.rows, tc.cols)
		} else {
			assert.Error(t, err, "%dx%d", tc.rows, tc.cols)
		}
	}
}

func TestWinMaskCounts(t *testing.T) {
	is := is.New(t)
	g, err := NewGeometry(6, 7)
	is.NoErr(err)
	is.Equal(len(g.WinMasks(Horizontal)), 24) // 6 rows * 4 windows
	is.Equal(len(g.WinMasks(Vertical)), 21)   // 7 cols * 3 windows
	is.Equal(len(g.WinMasks(DiagonalUp)), 12)
	is.Equal(len(g.WinMasks(DiagonalDown)), 12)
	is.Equal(len(g.AllWinMasks()), 69)

	for _, o := range []Orientation{Horizontal, Vertical, DiagonalUp, DiagonalDown} {
		for _, m := range g.WinMasks(o) {
			is.Equal(m.Count(), WinLength)
		}
	}
}

func TestReverseIndexConsistent(t *testing.T) {
	is := is.New(t)
	g, err := NewGeometry(5, 6)
	is.NoErr(err)
	total := 0
	for sq := 0; sq < g.Squares(); sq++ {
		for _, m := range g.WinMasksCovering(sq) {
			is.True(m.Contains(Mask(1) << uint(sq)))
		}
		total += len(g.WinMasksCovering(sq))
	}
	// Every win mask appears once per square it covers.
	is.Equal(total, len(g.AllWinMasks())*WinLength)
}

func TestSquareWeights(t *testing.T) {
	is := is.New(t)
	g, err := NewGeometry(6, 7)
	is.NoErr(err)
	// Corner: one row window, one column window, one diagonal window.
	is.Equal(g.SquareWeight(g.SquareID(0, 0)), int32(3))
	// The famous 13-line square in the middle of the board.
	is.Equal(g.SquareWeight(g.SquareID(2, 3)), int32(13))
	is.Equal(g.SquareWeight(g.SquareID(3, 3)), int32(13))
}

func TestEssentialWeights(t *testing.T) {
	is := is.New(t)
	g, err := NewGeometry(6, 7)
	is.NoErr(err)

	// Corner is essential for nothing.
	is.Equal(g.EssentialWeight(g.SquareID(0, 0)), int32(0))
	// (2,3) is essential for its row (len 7), column (len 6), and both
	// diagonals (len 6 each).
	is.Equal(g.EssentialWeight(g.SquareID(2, 3)), int32(4))
	// (0,3): row center (1), column rows 2..3 only (0), diagonals through it
	// have length 4 containing every square (up: (0,3)..(3,6), down:
	// (3,0)..(0,3)) so both count.
	is.Equal(g.EssentialWeight(g.SquareID(0, 3)), int32(3))
}

func TestColumn(t *testing.T) {
	is := is.New(t)
	g, err := NewGeometry(6, 7)
	is.NoErr(err)
	for c := 0; c < 7; c++ {
		is.Equal(g.Column(g.ColumnMask(c)), c)
		is.Equal(g.Column(g.SquareMask(3, c)), c)
	}
}

func TestColumnPanicsOnMultiColumnMask(t *testing.T) {
	g, err := NewGeometry(6, 7)
	if err != nil {
		t.Fatal(err)
	}
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for multi-column mask")
		}
	}()
	g.Column(g.SquareMask(0, 1) | g.SquareMask(0, 2))
}

func TestMaskSquares(t *testing.T) {
	is := is.New(t)
	m := Mask(0b101001)
	is.Equal(m.Count(), 3)
	is.Equal(m.Squares(), []int{0, 3, 5})
	is.Equal(Mask(1 << 7).SquareID(), 7)
	is.True(m.Contains(Mask(0b1001)))
	is.True(!m.Contains(Mask(0b10)))
}
