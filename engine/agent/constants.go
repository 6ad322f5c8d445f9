package agent

import engine "github.com/SabbeRubbish/azul-ai/engine"

// Flat action space: every (source, color, destination) triple gets an index.
//
//	index = (source*NumColors + color)*NumDestinations + destination
//
// Sources 0-8 are factories and source 9 is the pool. Destinations 0-4 are
// staging rows and destination 5 is the penalty track.
const (
	NumSources      = engine.MaxFactories + 1 // 10
	PoolSlot        = NumSources - 1          // 9
	NumDestinations = engine.NumRows + 1      // 6
	FloorSlot       = NumDestinations - 1     // 5
	NumActions      = NumSources * engine.NumColors * NumDestinations
	MaskWords       = (NumActions + 63) / 64
)

// EncodeAction maps an engine action to its flat index. ok is false when the
// action cannot exist in any game.
func EncodeAction(a engine.Action) (idx uint16, ok bool) {
	var src int
	switch {
	case a.FromPool():
		src = PoolSlot
	case a.Source >= 0 && a.Source < engine.MaxFactories:
		src = a.Source
	default:
		return 0, false
	}

	if !a.Color.IsColor() {
		return 0, false
	}
	color := colorSlot(a.Color)

	var dst int
	switch {
	case a.Row == engine.RowFloor:
		dst = FloorSlot
	case a.Row >= 0 && a.Row < engine.NumRows:
		dst = a.Row
	default:
		return 0, false
	}
	return uint16((src*engine.NumColors+color)*NumDestinations + dst), true
}

// DecodeAction is the inverse of EncodeAction.
func DecodeAction(idx uint16) (engine.Action, bool) {
	if idx >= NumActions {
		return engine.Action{}, false
	}
	i := int(idx)
	dst := i % NumDestinations
	i /= NumDestinations
	color := engine.Colors[i%engine.NumColors]
	src := i / engine.NumColors

	a := engine.Action{Source: src, Color: color, Row: dst}
	if src == PoolSlot {
		a.Source = engine.SourcePool
	}
	if dst == FloorSlot {
		a.Row = engine.RowFloor
	}
	return a, true
}

// colorSlot returns the palette index of a drawable color.
func colorSlot(c engine.Tile) int {
	for i, p := range engine.Colors {
		if p == c {
			return i
		}
	}
	return -1
}
