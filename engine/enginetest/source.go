// Package enginetest provides deterministic helpers for testing code built on
// the engine package.
package enginetest

import (
	"sync"

	"github.com/SabbeRubbish/azul-ai/engine"
)

// SequenceSource is a TileSource that replays a fixed tile sequence,
// wrapping around when it reaches the end. It records how many tiles were
// drawn so tests can assert on refills.
type SequenceSource struct {
	mu    sync.Mutex
	tiles []engine.Tile
	next  int
	drawn int
}

// NewSequenceSource creates a source that replays tiles in order.
// It panics if tiles is empty or contains a non-color.
func NewSequenceSource(tiles ...engine.Tile) *SequenceSource {
	if len(tiles) == 0 {
		panic("enginetest: empty tile sequence")
	}
	for _, t := range tiles {
		if !t.IsColor() {
			panic("enginetest: sequence contains non-color " + t.Name())
		}
	}
	return &SequenceSource{tiles: append([]engine.Tile(nil), tiles...)}
}

// Draw implements engine.TileSource.
func (s *SequenceSource) Draw(n int) []engine.Tile {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]engine.Tile, n)
	for i := range out {
		out[i] = s.tiles[s.next]
		s.next = (s.next + 1) % len(s.tiles)
	}
	s.drawn += n
	return out
}

// Drawn returns the total number of tiles handed out.
func (s *SequenceSource) Drawn() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.drawn
}

// Monochrome returns a source that only ever yields color.
func Monochrome(color engine.Tile) *SequenceSource {
	return NewSequenceSource(color)
}

// FactoryColors returns a source that fills factory i (in deal order) with
// four tiles of colors[i % len(colors)].
func FactoryColors(colors ...engine.Tile) *SequenceSource {
	seq := make([]engine.Tile, 0, 4*len(colors))
	for _, c := range colors {
		seq = append(seq, c, c, c, c)
	}
	return NewSequenceSource(seq...)
}
