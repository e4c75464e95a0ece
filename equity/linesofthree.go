package equity

import (
	"github.com/fourply/fourply/board"
	"github.com/fourply/fourply/game"
)

// LinesOfThree is the default and strongest evaluator. For every empty
// square it checks whether dropping a man of either color there would
// complete a win; such squares are "winning positions" for that color,
// tallied per column. At most two winning positions per column per color are
// tracked; more don't change the parity-forcing logic. When a column holds
// two winning positions for one color an odd number of rows apart,
// alternating drops cannot avoid the lower one, so that column's tally is
// scaled up. A flat weighted sum over occupied squares breaks ties.
type LinesOfThree struct {
	Params LinesOfThreeParams
}

const maxWinningPerColumn = 2

func (e LinesOfThree) Evaluate(g *board.Geometry, pos game.Position) int32 {
	p := e.Params
	if p.WinningScale == 0 && p.ParityFactor == 0 && p.TieBreak == 0 {
		p = DefaultLinesOfThreeParams()
	}

	white := uint64(pos.ColorMask(game.White))
	black := uint64(pos.ColorMask(game.Black))
	occupied := uint64(pos.Occupied())

	// winningRows[color][col] holds up to two rows, ascending, at which a
	// drop would complete a win for that color.
	var winningRows [2][board.MaxDim][]int

	for sq := 0; sq < g.Squares(); sq++ {
		bit := uint64(1) << uint(sq)
		if occupied&bit != 0 {
			continue
		}
		col := g.ColOfSquare(sq)
		row := g.RowOfSquare(sq)
		if completesWin(g, sq, bit, white) && len(winningRows[0][col]) < maxWinningPerColumn {
			winningRows[0][col] = append(winningRows[0][col], row)
		}
		if completesWin(g, sq, bit, black) && len(winningRows[1][col]) < maxWinningPerColumn {
			winningRows[1][col] = append(winningRows[1][col], row)
		}
	}

	tally := func(colorIdx int) int32 {
		var t int32
		for col := 0; col < g.Cols(); col++ {
			rows := winningRows[colorIdx][col]
			if len(rows) == 0 {
				continue
			}
			contribution := int32(len(rows))
			if len(rows) == 2 && (rows[1]-rows[0])%2 == 1 {
				contribution *= p.ParityFactor
			}
			t += contribution
		}
		return t
	}

	score := p.WinningScale * (tally(0) - tally(1))

	for w := white; w != 0; w &= w - 1 {
		score += p.TieBreak * g.SquareWeight(board.Mask(w&-w).SquareID())
	}
	for b := black; b != 0; b &= b - 1 {
		score -= p.TieBreak * g.SquareWeight(board.Mask(b&-b).SquareID())
	}
	return score
}

// completesWin reports whether placing a man of the given color on sq would
// finish a four-in-a-row, checking only the lines through sq.
func completesWin(g *board.Geometry, sq int, bit, colorMask uint64) bool {
	for _, wm := range g.WinMasksCovering(sq) {
		rest := uint64(wm) &^ bit
		if colorMask&rest == rest {
			return true
		}
	}
	return false
}

func (LinesOfThree) Name() string { return "linesofthree" }
