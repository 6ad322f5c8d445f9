package engine

import (
	"errors"
	"testing"
)

func TestProduceTilesFillsFactory(t *testing.T) {
	var f Factory
	f.ProduceTiles(newSeqSource(TileBlue, TileRed, TileBlue, TileWhite), 4)

	if !f.HasTiles() {
		t.Fatal("expected factory to have tiles")
	}
	if got := f.Bag.Total(); got != 4 {
		t.Errorf("Total = %d, want 4", got)
	}
	if got := f.Bag.Count(TileBlue); got != 2 {
		t.Errorf("Count(blue) = %d, want 2", got)
	}
	want := []Tile{TileBlue, TileRed, TileWhite}
	got := f.Bag.Present()
	if len(got) != len(want) {
		t.Fatalf("Present = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Present[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

// TestProduceTilesReplacesContents verifies a refill never stacks on leftovers.
func TestProduceTilesReplacesContents(t *testing.T) {
	var f Factory
	f.ProduceTiles(newSeqSource(TileRed), 4)
	f.ProduceTiles(newSeqSource(TileBlack), 4)
	if f.Bag.Count(TileRed) != 0 || f.Bag.Count(TileBlack) != 4 {
		t.Errorf("bag = %v, want only 4 black", f.Bag)
	}
}

func TestProduceTilesRejectsNonColors(t *testing.T) {
	for _, bad := range []Tile{TileEmpty, TileFirstPlayer} {
		var f Factory
		err := f.ProduceTiles(newSeqSource(TileBlue, TileBlue, bad, TileRed), 4)
		if !errors.Is(err, ErrInvariantViolation) {
			t.Errorf("%s: err = %v, want ErrInvariantViolation", bad.Name(), err)
		}
		if f.HasTiles() {
			t.Errorf("%s: factory kept %v after a bad draw", bad.Name(), f.Bag)
		}
	}
}

func TestFactoryTakeTiles(t *testing.T) {
	var f Factory
	f.ProduceTiles(newSeqSource(TileBlue, TileBlue, TileBlue, TileYellow), 4)

	n, err := f.TakeTiles(TileBlue)
	if err != nil {
		t.Fatalf("TakeTiles: %v", err)
	}
	if n != 3 {
		t.Errorf("took %d, want 3", n)
	}
	if f.Bag.Count(TileBlue) != 0 {
		t.Error("blue should be gone after take")
	}

	rest := f.Drain()
	if rest.Count(TileYellow) != 1 || rest.Total() != 1 {
		t.Errorf("remainder = %v, want 1 yellow", rest)
	}
	if f.HasTiles() {
		t.Error("factory should be empty after Drain")
	}
}

func TestFactoryTakeTilesMissingColor(t *testing.T) {
	var f Factory
	f.ProduceTiles(newSeqSource(TileRed), 4)

	_, err := f.TakeTiles(TileBlue)
	if !errors.Is(err, ErrColorNotPresent) {
		t.Fatalf("err = %v, want ErrColorNotPresent", err)
	}
	if f.Bag.Count(TileRed) != 4 {
		t.Error("failed take must not change the factory")
	}
}

// TestPoolMarkerHandedOutOnce verifies the marker goes to the first taker only.
func TestPoolMarkerHandedOutOnce(t *testing.T) {
	var p Pool
	p.Reset()
	p.DepositRemainder(TileBag{1, 0, 2, 0, 0}) // 1 blue, 2 red

	if !p.HasMarker {
		t.Fatal("Reset should seed the marker")
	}
	n, marker, err := p.TakeTiles(TileRed)
	if err != nil {
		t.Fatalf("TakeTiles: %v", err)
	}
	if n != 2 || !marker {
		t.Errorf("got (%d, %v), want (2, true)", n, marker)
	}

	n, marker, err = p.TakeTiles(TileBlue)
	if err != nil {
		t.Fatalf("TakeTiles: %v", err)
	}
	if n != 1 || marker {
		t.Errorf("got (%d, %v), want (1, false)", n, marker)
	}
}

// TestPoolMarkerAloneIsNotTiles verifies HasTiles ignores the marker.
func TestPoolMarkerAloneIsNotTiles(t *testing.T) {
	var p Pool
	p.Reset()
	if p.HasTiles() {
		t.Error("pool with only the marker should report no tiles")
	}
	if got := p.Tiles(); len(got) != 1 || got[0] != TileFirstPlayer {
		t.Errorf("Tiles = %v, want [marker]", got)
	}
	if _, _, err := p.TakeTiles(TileFirstPlayer); !errors.Is(err, ErrColorNotPresent) {
		t.Errorf("taking the marker alone: err = %v, want ErrColorNotPresent", err)
	}
	if !p.HasMarker {
		t.Error("failed take must leave the marker in place")
	}
}

func TestRandomSourceDeterministic(t *testing.T) {
	a := NewRandomSource(7).Draw(40)
	b := NewRandomSource(7).Draw(40)
	for i := range a {
		if !a[i].IsColor() {
			t.Fatalf("draw %d is not a color: %s", i, a[i])
		}
		if a[i] != b[i] {
			t.Fatalf("draw %d differs for the same seed: %s vs %s", i, a[i], b[i])
		}
	}
}
