package agent

import (
	"testing"

	engine "github.com/SabbeRubbish/azul-ai/engine"
	"github.com/SabbeRubbish/azul-ai/engine/enginetest"
)

func newTestGame(t *testing.T, n uint8, src engine.TileSource) *engine.GameState {
	t.Helper()
	rules := engine.DefaultHouseRules()
	rules.NumPlayers = n
	g, err := engine.NewGame(rules, src)
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	return g
}

func monochromeFactories() engine.TileSource {
	return enginetest.FactoryColors(engine.TileBlue, engine.TileRed, engine.TileYellow, engine.TileBlack, engine.TileWhite)
}

func TestNumActions(t *testing.T) {
	if NumActions != 300 {
		t.Errorf("NumActions = %d, want 300", NumActions)
	}
	if MaskWords != 5 {
		t.Errorf("MaskWords = %d, want 5", MaskWords)
	}
}

func TestEncodeActionKnownIndices(t *testing.T) {
	cases := []struct {
		a    engine.Action
		want uint16
	}{
		{engine.Action{Source: 0, Color: engine.TileBlue, Row: 0}, 0},
		{engine.Action{Source: 0, Color: engine.TileBlue, Row: engine.RowFloor}, 5},
		{engine.Action{Source: 1, Color: engine.TileYellow, Row: 2}, 38},
		{engine.Action{Source: engine.SourcePool, Color: engine.TileWhite, Row: engine.RowFloor}, 299},
	}
	for _, tc := range cases {
		got, ok := EncodeAction(tc.a)
		if !ok || got != tc.want {
			t.Errorf("EncodeAction(%s) = (%d, %v), want (%d, true)", tc.a, got, ok, tc.want)
		}
	}
}

func TestEncodeActionRejects(t *testing.T) {
	cases := []engine.Action{
		{Source: engine.MaxFactories, Color: engine.TileBlue, Row: 0},
		{Source: -2, Color: engine.TileBlue, Row: 0},
		{Source: 0, Color: engine.TileFirstPlayer, Row: 0},
		{Source: 0, Color: engine.TileEmpty, Row: 0},
		{Source: 0, Color: engine.TileBlue, Row: engine.NumRows},
		{Source: 0, Color: engine.TileBlue, Row: -3},
	}
	for _, a := range cases {
		if _, ok := EncodeAction(a); ok {
			t.Errorf("EncodeAction(%+v) should fail", a)
		}
	}
}

// TestActionIndexBijection checks every index decodes to an action that
// encodes back to the same index.
func TestActionIndexBijection(t *testing.T) {
	for i := uint16(0); i < NumActions; i++ {
		a, ok := DecodeAction(i)
		if !ok {
			t.Fatalf("DecodeAction(%d) failed", i)
		}
		back, ok := EncodeAction(a)
		if !ok || back != i {
			t.Fatalf("index %d -> %s -> (%d, %v)", i, a, back, ok)
		}
	}
	if _, ok := DecodeAction(NumActions); ok {
		t.Error("DecodeAction(NumActions) should fail")
	}
}

func TestLegalMaskMatchesLegalActions(t *testing.T) {
	g := newTestGame(t, 4, engine.NewRandomSource(17))
	legal := g.LegalActions()

	var mask [NumActions]bool
	ActionMask(LegalMask(g), &mask)

	count := 0
	for _, set := range mask {
		if set {
			count++
		}
	}
	if count != len(legal) {
		t.Errorf("mask has %d bits, want %d", count, len(legal))
	}
	for _, a := range legal {
		idx, _ := EncodeAction(a)
		if !mask[idx] {
			t.Errorf("legal action %s missing from mask", a)
		}
	}
}

func TestEncodeFreshGame(t *testing.T) {
	g := newTestGame(t, 2, monochromeFactories())
	var out [InputDim]float32
	Encode(g, &out)

	if InputDim != 288 {
		t.Fatalf("InputDim = %d, want 288", InputDim)
	}
	if out[0] != 1 || out[SeatDim] != 1 {
		t.Error("both seats should be flagged present")
	}
	if out[2*SeatDim] != 0 || out[3*SeatDim] != 0 {
		t.Error("empty seats should stay zero")
	}

	factories := MaxSeats * SeatDim
	if out[factories+0] != 1 {
		t.Errorf("factory 0 blue = %v, want 1", out[factories])
	}
	// Factory 1 is red, palette slot 2.
	if out[factories+engine.NumColors+2] != 1 {
		t.Errorf("factory 1 red = %v, want 1", out[factories+engine.NumColors+2])
	}
	// Factories 5-8 do not exist in a 2-player game.
	for i := 5 * engine.NumColors; i < FactoryDim; i++ {
		if out[factories+i] != 0 {
			t.Fatalf("absent factory feature %d = %v", i, out[factories+i])
		}
	}

	pool := factories + FactoryDim
	if out[pool+engine.NumColors] != 1 {
		t.Error("pool marker flag should be set")
	}
	if got := out[InputDim-1]; got != 0.1 {
		t.Errorf("round feature = %v, want 0.1", got)
	}
}

// TestEncodeRotatesSeats checks the acting player's board is always first.
func TestEncodeRotatesSeats(t *testing.T) {
	g := newTestGame(t, 2, monochromeFactories())
	if err := g.ApplyAction(engine.Action{Source: 0, Color: engine.TileBlue, Row: 1}); err != nil {
		t.Fatalf("ApplyAction: %v", err)
	}

	var out [InputDim]float32
	Encode(g, &out)

	// Player 1 acts now, so player 0's board sits in seat 1.
	rows := SeatDim + 1 + engine.WallSize*engine.WallSize
	row1 := rows + (engine.NumColors + 1)
	if out[row1+0] != 1 {
		t.Errorf("seat 1 row 1 blue = %v, want 1", out[row1])
	}
	if out[row1+engine.NumColors] != 1 {
		t.Errorf("seat 1 row 1 fill = %v, want 1", out[row1+engine.NumColors])
	}
	penalty := SeatDim + SeatDim - 3
	if want := float32(2) / 7; out[penalty] != want {
		t.Errorf("seat 1 penalty = %v, want %v", out[penalty], want)
	}
	// Seat 0 (player 1) has nothing staged yet.
	for i := 1 + engine.WallSize*engine.WallSize; i < SeatDim-3; i++ {
		if out[i] != 0 {
			t.Fatalf("seat 0 staging feature %d = %v, want 0", i, out[i])
		}
	}
}
