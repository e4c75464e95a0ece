package equity

import (
	"github.com/fourply/fourply/board"
	"github.com/fourply/fourply/game"
)

// SquareWeights scores each man by squareWeight*essentialWeight of the
// square it sits on, White minus Black. The weight of the best still-open
// square is credited to the side to move: that player can actually take it
// next, which cancels the bias from the mover counts differing by one.
type SquareWeights struct{}

func (SquareWeights) Evaluate(g *board.Geometry, pos game.Position) int32 {
	white := uint64(pos.ColorMask(game.White))
	black := uint64(pos.ColorMask(game.Black))
	occupied := uint64(pos.Occupied())

	var score int32
	var bestOpen int32
	for sq := 0; sq < g.Squares(); sq++ {
		bit := uint64(1) << uint(sq)
		w := g.SquareWeight(sq) * g.EssentialWeight(sq)
		switch {
		case white&bit != 0:
			score += w
		case black&bit != 0:
			score -= w
		case occupied&bit == 0 && w > bestOpen:
			bestOpen = w
		}
	}
	if pos.WhiteToMove() {
		score += bestOpen
	} else {
		score -= bestOpen
	}
	return score
}

func (SquareWeights) Name() string { return "squareweights" }
