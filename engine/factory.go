package engine

import "fmt"

// TileBag is an unordered multiset of drawable tiles, counted per color in
// palette order.
type TileBag [NumColors]int

// Add puts n tiles of color into the bag. Non-colors are ignored.
func (b *TileBag) Add(color Tile, n int) {
	if !color.IsColor() || n <= 0 {
		return
	}
	b[color.colorIndex()] += n
}

// Count returns how many tiles of color the bag holds.
func (b *TileBag) Count(color Tile) int {
	if !color.IsColor() {
		return 0
	}
	return b[color.colorIndex()]
}

// Total returns the number of tiles in the bag.
func (b *TileBag) Total() int {
	n := 0
	for _, c := range b {
		n += c
	}
	return n
}

// Merge adds every tile of other into b.
func (b *TileBag) Merge(other TileBag) {
	for i, c := range other {
		b[i] += c
	}
}

// Present returns the colors with at least one tile, in palette order.
func (b *TileBag) Present() []Tile {
	var out []Tile
	for i, c := range b {
		if c > 0 {
			out = append(out, Colors[i])
		}
	}
	return out
}

// Tiles expands the bag into a slice, grouped by color in palette order.
func (b *TileBag) Tiles() []Tile {
	out := make([]Tile, 0, b.Total())
	for i, c := range b {
		for j := 0; j < c; j++ {
			out = append(out, Colors[i])
		}
	}
	return out
}

// take removes and returns every tile of color.
func (b *TileBag) take(color Tile) (int, error) {
	n := b.Count(color)
	if n == 0 {
		return 0, fmt.Errorf("%w: %s", ErrColorNotPresent, color.Name())
	}
	b[color.colorIndex()] = 0
	return n, nil
}

// ---------------------------------------------------------------------------
// Factory
// ---------------------------------------------------------------------------

// Factory is a small display of tiles refilled at the start of every round.
type Factory struct {
	Bag TileBag
}

// ProduceTiles replaces the factory contents with n tiles drawn from src.
// A source that yields anything but the five colors breaks the TileSource
// contract: the factory is left empty and ErrInvariantViolation is returned.
func (f *Factory) ProduceTiles(src TileSource, n int) error {
	f.Bag = TileBag{}
	drawn := src.Draw(n)
	for _, t := range drawn {
		if !t.IsColor() {
			return fmt.Errorf("%w: tile source yielded %s", ErrInvariantViolation, t.Name())
		}
	}
	for _, t := range drawn {
		f.Bag.Add(t, 1)
	}
	return nil
}

// HasTiles reports whether the factory still offers any tile.
func (f *Factory) HasTiles() bool { return f.Bag.Total() > 0 }

// TakeTiles removes every tile of color and returns the count. The remaining
// tiles stay put until the caller drains them into the pool.
func (f *Factory) TakeTiles(color Tile) (int, error) {
	return f.Bag.take(color)
}

// Drain empties the factory and returns what it held.
func (f *Factory) Drain() TileBag {
	rest := f.Bag
	f.Bag = TileBag{}
	return rest
}

// Tiles returns the factory contents for display.
func (f *Factory) Tiles() []Tile { return f.Bag.Tiles() }

// ---------------------------------------------------------------------------
// Pool
// ---------------------------------------------------------------------------

// Pool is the shared center area. It collects factory leftovers during a
// round and holds the first-player marker until someone drafts from it.
type Pool struct {
	Bag       TileBag
	HasMarker bool
}

// Reset empties the pool and puts the marker back.
func (p *Pool) Reset() {
	p.Bag = TileBag{}
	p.HasMarker = true
}

// DepositRemainder adds factory leftovers to the pool.
func (p *Pool) DepositRemainder(rest TileBag) {
	p.Bag.Merge(rest)
}

// HasTiles reports whether the pool offers any drawable tile. The marker on
// its own does not count.
func (p *Pool) HasTiles() bool { return p.Bag.Total() > 0 }

// TakeTiles removes every tile of color. If the marker is still in the pool it
// is handed out with the take and marker is true.
func (p *Pool) TakeTiles(color Tile) (count int, marker bool, err error) {
	count, err = p.Bag.take(color)
	if err != nil {
		return 0, false, err
	}
	marker = p.HasMarker
	p.HasMarker = false
	return count, marker, nil
}

// Tiles returns the pool contents for display, marker first when present.
func (p *Pool) Tiles() []Tile {
	out := p.Bag.Tiles()
	if p.HasMarker {
		out = append([]Tile{TileFirstPlayer}, out...)
	}
	return out
}
