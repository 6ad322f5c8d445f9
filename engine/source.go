package engine

import "math/rand/v2"

// TileSource produces drawable tiles on demand. Implementations must return
// exactly n drawable colors; duplicates are expected.
type TileSource interface {
	Draw(n int) []Tile
}

// RandomSource draws colors uniformly with replacement from a seeded PCG
// generator. The same seed always yields the same sequence.
type RandomSource struct {
	rng *rand.Rand
}

// NewRandomSource creates a RandomSource seeded with seed.
func NewRandomSource(seed uint64) *RandomSource {
	return &RandomSource{rng: rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15))}
}

// Draw implements TileSource.
func (s *RandomSource) Draw(n int) []Tile {
	out := make([]Tile, n)
	for i := range out {
		out[i] = Colors[s.rng.IntN(NumColors)]
	}
	return out
}
