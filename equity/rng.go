package equity

import (
	"lukechampine.com/frand"
)

// SeedSize is the length of the seeds accepted by NewRNG.
const SeedSize = 32

// NewRNG returns a deterministic generator for a 32-byte seed, or an
// entropy-seeded one when seed is nil.
func NewRNG(seed []byte) *frand.RNG {
	if seed == nil {
		return frand.New()
	}
	return frand.NewCustom(seed, 1024, 12)
}

// SubSeed derives a distinct seed per player from a game seed so that
// scorers in one game do not share a random stream.
func SubSeed(seed []byte, player int) []byte {
	if seed == nil {
		return nil
	}
	out := make([]byte, SeedSize)
	copy(out, seed)
	out[SeedSize-1] ^= byte(player + 1)
	return out
}
