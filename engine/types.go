package engine

import "fmt"

// Tile is a single tile value. The zero value is TileEmpty, which doubles as
// the "unset" color of an empty staging row and an empty wall cell.
type Tile uint8

const (
	TileEmpty       Tile = iota // 0
	TileBlue                    // 1
	TileYellow                  // 2
	TileRed                     // 3
	TileBlack                   // 4
	TileWhite                   // 5
	TileFirstPlayer             // 6: first-player marker, never drawable
)

// NumColors is the number of drawable tile colors.
const NumColors = 5

// Colors lists the drawable colors in palette order. Row 0 of the standard
// wall uses exactly this order; each following row is shifted one cell right.
var Colors = [NumColors]Tile{TileBlue, TileYellow, TileRed, TileBlack, TileWhite}

// IsColor reports whether t is one of the five drawable colors.
func (t Tile) IsColor() bool { return t >= TileBlue && t <= TileWhite }

// colorIndex returns the palette position of a drawable color (0-4).
func (t Tile) colorIndex() int { return int(t) - 1 }

// String returns a one-letter code for the tile.
func (t Tile) String() string {
	switch t {
	case TileEmpty:
		return "."
	case TileBlue:
		return "B"
	case TileYellow:
		return "Y"
	case TileRed:
		return "R"
	case TileBlack:
		return "K"
	case TileWhite:
		return "W"
	case TileFirstPlayer:
		return "1"
	default:
		return "?"
	}
}

// Name returns the lowercase color name, used by JSON views and logs.
func (t Tile) Name() string {
	switch t {
	case TileEmpty:
		return "empty"
	case TileBlue:
		return "blue"
	case TileYellow:
		return "yellow"
	case TileRed:
		return "red"
	case TileBlack:
		return "black"
	case TileWhite:
		return "white"
	case TileFirstPlayer:
		return "first_player"
	default:
		return "unknown"
	}
}

// ParseTile converts a name produced by Name back into a Tile.
func ParseTile(name string) (Tile, bool) {
	for t := TileEmpty; t <= TileFirstPlayer; t++ {
		if t.Name() == name {
			return t, true
		}
	}
	return TileEmpty, false
}

// Difficulty selects how the wall constrains color placement.
type Difficulty uint8

const (
	// DifficultyStandard uses the fixed diagonal palette printed on the wall.
	DifficultyStandard Difficulty = iota
	// DifficultyFreeWall has no predefined colors; any cell may take any color
	// as long as no row or column repeats a color.
	DifficultyFreeWall
)

func (d Difficulty) String() string {
	switch d {
	case DifficultyStandard:
		return "standard"
	case DifficultyFreeWall:
		return "free"
	default:
		return "unknown"
	}
}

// ParseDifficulty converts the name produced by Difficulty.String.
func ParseDifficulty(s string) (Difficulty, error) {
	switch s {
	case "standard":
		return DifficultyStandard, nil
	case "free":
		return DifficultyFreeWall, nil
	default:
		return 0, fmt.Errorf("%w: unknown difficulty %q", ErrInvalidConfiguration, s)
	}
}

// ---------------------------------------------------------------------------
// Actions
// ---------------------------------------------------------------------------

const (
	// SourcePool selects the shared pool as the draft source.
	SourcePool = -1
	// RowFloor sends the whole take straight to the penalty track. It is only
	// offered when no staging row can accept any available color.
	RowFloor = -1
)

// Action is a single draft: take every tile of Color from Source and place
// them in staging row Row.
type Action struct {
	Source int // factory index, or SourcePool
	Color  Tile
	Row    int // staging row 0-4, or RowFloor
}

// FromPool reports whether the action drafts from the shared pool.
func (a Action) FromPool() bool { return a.Source == SourcePool }

func (a Action) String() string {
	src := "pool"
	if !a.FromPool() {
		src = fmt.Sprintf("factory %d", a.Source)
	}
	dst := "floor"
	if a.Row != RowFloor {
		dst = fmt.Sprintf("row %d", a.Row)
	}
	return fmt.Sprintf("%s from %s to %s", a.Color.Name(), src, dst)
}

// LastActionInfo is a public summary of the most recently applied action.
type LastActionInfo struct {
	Action     Action
	Player     uint8
	Taken      int  // tiles of Action.Color removed from the source
	Placed     int  // tiles that landed in the staging row
	Overflow   int  // tiles sent to the penalty track
	TookMarker bool // the first-player marker came along with the take
	RoundEnded bool
}
