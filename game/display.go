package game

import (
	"strings"

	"github.com/fourply/fourply/board"
)

const (
	emptyRune = '·'
	whiteRune = 'X'
	blackRune = 'O'
)

// ToDisplayText renders the board as a text grid, top row first, with a
// column index footer.
func (p Position) ToDisplayText(g *board.Geometry) string {
	var sb strings.Builder
	ownerBits := p.owner &^ turnBit
	for r := g.Rows() - 1; r >= 0; r-- {
		for c := 0; c < g.Cols(); c++ {
			bit := uint64(1) << uint(g.SquareID(r, c))
			switch {
			case p.occupied&bit == 0:
				sb.WriteRune(emptyRune)
			case ownerBits&bit != 0:
				sb.WriteRune(blackRune)
			default:
				sb.WriteRune(whiteRune)
			}
			if c < g.Cols()-1 {
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
	}
	for c := 0; c < g.Cols(); c++ {
		sb.WriteByte(byte('0' + c))
		if c < g.Cols()-1 {
			sb.WriteByte(' ')
		}
	}
	sb.WriteByte('\n')
	return sb.String()
}
