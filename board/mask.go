package board

import "math/bits"

// Mask is a set of squares packed into one word, one bit per square id.
// It is a plain value type; all operations are allocation-free.
type Mask uint64

// SquareID returns the id of the single square selected by the mask.
// Meaningful only for single-bit masks.
func (m Mask) SquareID() int { return bits.TrailingZeros64(uint64(m)) }

// Count returns the number of squares in the set.
func (m Mask) Count() int { return bits.OnesCount64(uint64(m)) }

// Contains reports whether every square of other is in m.
func (m Mask) Contains(other Mask) bool { return m&other == other }

// Squares expands the mask into square ids, ascending.
func (m Mask) Squares() []int {
	out := make([]int, 0, m.Count())
	for w := uint64(m); w != 0; w &= w - 1 {
		out = append(out, bits.TrailingZeros64(w))
	}
	return out
}
