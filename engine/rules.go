package engine

import "fmt"

const (
	MinPlayers = 2
	MaxPlayers = 4
	// MaxFactories is the factory count of a full table (2*MaxPlayers + 1).
	MaxFactories = 2*MaxPlayers + 1
)

// HouseRules holds configurable game rule settings.
type HouseRules struct {
	NumPlayers   uint8      // 2-4
	Difficulty   Difficulty // fixed for the whole game
	FactoryTiles uint8      // tiles produced per factory each round

	// FloorPenalties is the escalating cost per penalty-track slot. Tiles past
	// the end of the table cost the last entry.
	FloorPenalties []int

	RowBonus    int // per complete horizontal wall row
	ColumnBonus int // per complete vertical wall column
	ColorBonus  int // per color placed five times
}

// DefaultHouseRules returns the standard rules for a two-player game.
func DefaultHouseRules() HouseRules {
	return HouseRules{
		NumPlayers:     2,
		Difficulty:     DifficultyStandard,
		FactoryTiles:   4,
		FloorPenalties: []int{-1, -1, -2, -2, -2, -3, -3},
		RowBonus:       2,
		ColumnBonus:    7,
		ColorBonus:     10,
	}
}

// Validate reports whether the rules describe a playable game.
func (r *HouseRules) Validate() error {
	if n := r.NumPlayers; n < MinPlayers || n > MaxPlayers {
		return fmt.Errorf("%w: number of players must be %d-%d, got %d", ErrInvalidConfiguration, MinPlayers, MaxPlayers, n)
	}
	if r.Difficulty != DifficultyStandard && r.Difficulty != DifficultyFreeWall {
		return fmt.Errorf("%w: unknown difficulty %d", ErrInvalidConfiguration, r.Difficulty)
	}
	if r.FactoryTiles == 0 {
		return fmt.Errorf("%w: factories must hold at least one tile", ErrInvalidConfiguration)
	}
	if len(r.FloorPenalties) == 0 {
		return fmt.Errorf("%w: floor penalty table is empty", ErrInvalidConfiguration)
	}
	for i, p := range r.FloorPenalties {
		if p > 0 {
			return fmt.Errorf("%w: floor penalty %d is positive (%d)", ErrInvalidConfiguration, i, p)
		}
	}
	return nil
}

// numFactories returns 2N+1.
func (r *HouseRules) numFactories() int {
	return 2*int(r.NumPlayers) + 1
}

// clone returns a copy that shares no slices with r.
func (r *HouseRules) clone() HouseRules {
	c := *r
	c.FloorPenalties = append([]int(nil), r.FloorPenalties...)
	return c
}
