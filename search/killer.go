package search

import (
	"github.com/fourply/fourply/board"
	"github.com/fourply/fourply/game"
)

// killerFilter narrows the move list when the outcome is forced one ply out:
// an immediately winning move makes every sibling irrelevant, and when
// exactly one move denies the opponent an immediate win next turn, that move
// is forced. Otherwise the list comes back unchanged.
//
// This is a lookahead optimization, not a correctness requirement; it is
// applied only at depth > 1, where the scan is cheaper than the subtree it
// prunes.
func (s *Solver) killerFilter(pos game.Position, moves []board.Mask) []board.Mask {
	for _, m := range moves {
		if s.winsImmediately(pos, m) {
			s.stats.KillerWins++
			return []board.Mask{m}
		}
	}
	var block board.Mask
	safe := 0
	for _, m := range moves {
		if !s.opponentWinsNext(pos.Apply(m)) {
			safe++
			if safe > 1 {
				return moves
			}
			block = m
		}
	}
	if safe == 1 && len(moves) > 1 {
		s.stats.ForcedBlocks++
		return []board.Mask{block}
	}
	return moves
}

func (s *Solver) winsImmediately(pos game.Position, m board.Mask) bool {
	outcome, _ := pos.Apply(m).DetermineState(s.g, m)
	return outcome == game.Won
}

func (s *Solver) opponentWinsNext(pos game.Position) bool {
	for _, m := range pos.NextMoves(s.g) {
		if s.winsImmediately(pos, m) {
			return true
		}
	}
	return false
}
