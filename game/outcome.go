package game

import "github.com/fourply/fourply/board"

// Outcome classifies a position.
type Outcome uint8

const (
	NotFinished Outcome = iota
	Drawn
	Won
)

func (o Outcome) String() string {
	switch o {
	case NotFinished:
		return "not-finished"
	case Drawn:
		return "drawn"
	case Won:
		return "won"
	}
	return "unknown"
}

// DetermineState reports whether the game is over. On a win the returned
// mask is the exact four-square line.
//
// When lastMove is nonzero only the win masks covering that square are
// checked. That is correct only when called immediately after the move that
// produced lastMove on a game that was not already decided; callers breaking
// that contract get whatever the reduced scan finds.
func (p Position) DetermineState(g *board.Geometry, lastMove board.Mask) (Outcome, board.Mask) {
	var masks []board.Mask
	if lastMove != 0 {
		masks = g.WinMasksCovering(lastMove.SquareID())
	} else {
		masks = g.AllWinMasks()
	}
	ownerBits := p.owner &^ turnBit
	for _, wm := range masks {
		w := uint64(wm)
		if p.occupied&w != w {
			continue
		}
		if o := ownerBits & w; o == w || o == 0 {
			return Won, wm
		}
	}
	if p.occupied == uint64(g.FullMask()) {
		return Drawn, 0
	}
	return NotFinished, 0
}

// Winner returns the owner of a winning line previously returned by
// DetermineState.
func (p Position) Winner(line board.Mask) Color {
	if p.owner&^turnBit&uint64(line) != 0 {
		return Black
	}
	return White
}
