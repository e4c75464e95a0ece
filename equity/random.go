package equity

import (
	"encoding/binary"

	"lukechampine.com/frand"

	"github.com/fourply/fourply/board"
	"github.com/fourply/fourply/game"
)

// Random scores positions with a seeded PRNG in [-10, 10]. It exists to give
// the stronger evaluators a baseline opponent in tests.
//
// The generator is keyed on the canonical form of the position so the score
// is pure and negates under a color swap, like every other evaluator.
type Random struct {
	seed uint64
}

// NewRandom returns a Random evaluator keyed on seed.
func NewRandom(seed uint64) Random { return Random{seed: seed} }

func (r Random) Evaluate(g *board.Geometry, pos game.Position) int32 {
	occ, owner := pos.Words()
	_, swapped := pos.ColorSwap().Words()

	// Canonicalize: score the lexicographically smaller owner word and flip
	// the sign when that meant scoring the swapped position.
	sign := int32(1)
	if swapped < owner {
		owner = swapped
		sign = -1
	}

	var key [32]byte
	binary.LittleEndian.PutUint64(key[0:], r.seed)
	binary.LittleEndian.PutUint64(key[8:], occ)
	binary.LittleEndian.PutUint64(key[16:], owner)
	rng := frand.NewCustom(key[:], 32, 12)
	return sign * (int32(rng.Intn(21)) - 10)
}

func (r Random) Name() string { return "random" }
