package agent

import engine "github.com/SabbeRubbish/azul-ai/engine"

// Observation layout, always from the acting player's seat. Seats are rotated
// so the acting player's board comes first; absent seats stay zero.
const (
	MaxSeats = engine.MaxPlayers

	// Per seat: present flag, wall occupancy (25), staging rows (5 x 6),
	// penalty fill, marker flag, score.
	SeatDim = 1 + engine.WallSize*engine.WallSize + engine.NumRows*(engine.NumColors+1) + 3

	FactoryDim = engine.MaxFactories * engine.NumColors
	PoolDim    = engine.NumColors + 1

	InputDim = MaxSeats*SeatDim + FactoryDim + PoolDim + 1

	// Normalisers.
	penaltySlots = 7
	scoreScale   = 100
	poolScale    = 20
	roundScale   = 10
)

// Encode writes the InputDim feature vector for the acting player into out.
// out is zeroed before writing.
func Encode(g *engine.GameState, out *[InputDim]float32) {
	*out = [InputDim]float32{}
	offset := 0

	n := int(g.NumPlayers())
	me := int(g.ActingPlayer())
	for seat := 0; seat < MaxSeats; seat++ {
		if seat < n {
			encodeSeat(&g.Boards[(me+seat)%n], out[offset:offset+SeatDim])
		}
		offset += SeatDim
	}
	// offset = MaxSeats*SeatDim

	factoryTiles := float32(g.Rules.FactoryTiles)
	for i := 0; i < engine.MaxFactories; i++ {
		if i < len(g.Factories) {
			for c, color := range engine.Colors {
				out[offset+c] = float32(g.Factories[i].Bag.Count(color)) / factoryTiles
			}
		}
		offset += engine.NumColors
	}

	for c, color := range engine.Colors {
		out[offset+c] = clamp01(float32(g.Pool.Bag.Count(color)) / poolScale)
	}
	offset += engine.NumColors
	if g.Pool.HasMarker {
		out[offset] = 1
	}
	offset++

	out[offset] = clamp01(float32(g.Round) / roundScale)
}

// encodeSeat fills one SeatDim slice for board b.
func encodeSeat(b *engine.PlayerBoard, out []float32) {
	out[0] = 1
	offset := 1

	for r := 0; r < engine.WallSize; r++ {
		for c := 0; c < engine.WallSize; c++ {
			if b.Wall[r][c] != engine.TileEmpty {
				out[offset] = 1
			}
			offset++
		}
	}

	// Staging rows: color one-hot then fill fraction.
	for _, row := range b.Rows {
		if !row.IsEmpty() {
			out[offset+colorSlot(row.Color)] = 1
			out[offset+engine.NumColors] = float32(row.Count) / float32(row.Capacity)
		}
		offset += engine.NumColors + 1
	}

	out[offset] = clamp01(float32(len(b.Penalty)) / penaltySlots)
	if b.HasMarker() {
		out[offset+1] = 1
	}
	out[offset+2] = clamp01(float32(b.Score) / scoreScale)
}

func clamp01(v float32) float32 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

// LegalMask returns the legal actions of g as a bitmask over the flat index.
func LegalMask(g *engine.GameState) [MaskWords]uint64 {
	var mask [MaskWords]uint64
	for _, a := range g.LegalActions() {
		if idx, ok := EncodeAction(a); ok {
			mask[idx/64] |= 1 << (idx % 64)
		}
	}
	return mask
}

// ActionMask expands a LegalMask bitmask into out.
func ActionMask(legal [MaskWords]uint64, out *[NumActions]bool) {
	*out = [NumActions]bool{}
	for i := uint16(0); i < NumActions; i++ {
		word := i / 64
		bit := i % 64
		if legal[word]&(1<<bit) != 0 {
			out[i] = true
		}
	}
}
