package game

import "github.com/fourply/fourply/board"

// NextMoves enumerates one legal move per non-full column: the mask of the
// lowest free square. Columns come out center-first (column cols/2, then
// alternately one right, one left, expanding outward), which is the move
// ordering that feeds alpha-beta cutoffs. Each call returns a fresh slice.
func (p Position) NextMoves(g *board.Geometry) []board.Mask {
	moves := make([]board.Mask, 0, g.Cols())
	for _, col := range centerOutColumns(g.Cols()) {
		free := uint64(g.ColumnMask(col)) &^ p.occupied
		if free == 0 {
			continue
		}
		// Bottom-up filling keeps the free squares of a column contiguous,
		// so the lowest set bit is the landing square.
		moves = append(moves, board.Mask(free&-free))
	}
	return moves
}

// centerOutColumns returns column indexes in center-out visiting order,
// e.g. 3,4,2,5,1,6,0 for seven columns.
func centerOutColumns(cols int) []int {
	order := make([]int, 0, cols)
	mid := cols / 2
	order = append(order, mid)
	for step := 1; ; step++ {
		right := mid + step
		left := mid - step
		if right < cols {
			order = append(order, right)
		}
		if left >= 0 {
			order = append(order, left)
		}
		if right >= cols && left < 0 {
			break
		}
	}
	return order
}
