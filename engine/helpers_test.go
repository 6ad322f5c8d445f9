package engine

import "testing"

// seqSource replays a fixed tile sequence, wrapping around at the end.
type seqSource struct {
	tiles []Tile
	next  int
}

func newSeqSource(tiles ...Tile) *seqSource {
	return &seqSource{tiles: tiles}
}

func (s *seqSource) Draw(n int) []Tile {
	out := make([]Tile, n)
	for i := range out {
		out[i] = s.tiles[s.next]
		s.next = (s.next + 1) % len(s.tiles)
	}
	return out
}

// factoryColors fills factory i with four tiles of colors[i % len(colors)].
func factoryColors(colors ...Tile) *seqSource {
	var seq []Tile
	for _, c := range colors {
		seq = append(seq, c, c, c, c)
	}
	return newSeqSource(seq...)
}

// newTestGame builds a standard game for n players on src.
func newTestGame(t *testing.T, n uint8, src TileSource) *GameState {
	t.Helper()
	rules := DefaultHouseRules()
	rules.NumPlayers = n
	g, err := NewGame(rules, src)
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	return g
}

// mustApply applies a and fails the test on error.
func mustApply(t *testing.T, g *GameState, a Action) {
	t.Helper()
	if err := g.ApplyAction(a); err != nil {
		t.Fatalf("ApplyAction(%s): %v", a, err)
	}
}

// fillWallRow sets wall row r of b to the standard pattern, skipping the
// listed columns.
func fillWallRow(b *PlayerBoard, r int, skip ...int) {
	for c := 0; c < WallSize; c++ {
		skipped := false
		for _, s := range skip {
			if s == c {
				skipped = true
			}
		}
		if !skipped {
			b.Wall[r][c] = b.Pattern[r][c]
		}
	}
}

// containsRow returns true if row is in rows.
func containsRow(rows []int, row int) bool {
	for _, r := range rows {
		if r == row {
			return true
		}
	}
	return false
}
