package engine

import (
	"fmt"
	"strings"
)

const (
	WallSize = 5
	NumRows  = 5
)

// StagingRow is one pattern line. Capacity is index+1 and is fixed when the
// board is built.
type StagingRow struct {
	Color    Tile // TileEmpty while Count == 0
	Count    uint8
	Capacity uint8
}

// IsEmpty reports whether the row holds no tiles.
func (r StagingRow) IsEmpty() bool { return r.Count == 0 }

// IsComplete reports whether the row is filled to capacity.
func (r StagingRow) IsComplete() bool { return r.Count == r.Capacity }

// Free returns the remaining capacity.
func (r StagingRow) Free() int { return int(r.Capacity) - int(r.Count) }

// Wall is the 5x5 scoring grid. A filled cell is never cleared.
type Wall [WallSize][WallSize]Tile

// RowHas reports whether color already sits anywhere in wall row row.
func (w *Wall) RowHas(row int, color Tile) bool {
	for c := 0; c < WallSize; c++ {
		if w[row][c] == color {
			return true
		}
	}
	return false
}

// ColumnHas reports whether color already sits anywhere in column col.
func (w *Wall) ColumnHas(col int, color Tile) bool {
	for r := 0; r < WallSize; r++ {
		if w[r][col] == color {
			return true
		}
	}
	return false
}

// RowComplete reports whether every cell of row is filled.
func (w *Wall) RowComplete(row int) bool {
	for c := 0; c < WallSize; c++ {
		if w[row][c] == TileEmpty {
			return false
		}
	}
	return true
}

// ColumnComplete reports whether every cell of col is filled.
func (w *Wall) ColumnComplete(col int) bool {
	for r := 0; r < WallSize; r++ {
		if w[r][col] == TileEmpty {
			return false
		}
	}
	return true
}

// ColorCount returns how many cells hold color.
func (w *Wall) ColorCount(color Tile) int {
	n := 0
	for r := 0; r < WallSize; r++ {
		for c := 0; c < WallSize; c++ {
			if w[r][c] == color {
				n++
			}
		}
	}
	return n
}

// Filled returns the number of occupied cells.
func (w *Wall) Filled() int {
	n := 0
	for r := 0; r < WallSize; r++ {
		for c := 0; c < WallSize; c++ {
			if w[r][c] != TileEmpty {
				n++
			}
		}
	}
	return n
}

// standardPattern returns the pre-printed palette: row r is Colors rotated
// right by r cells.
func standardPattern() Wall {
	var p Wall
	for r := 0; r < WallSize; r++ {
		for i, color := range Colors {
			p[r][(i+r)%WallSize] = color
		}
	}
	return p
}

// ---------------------------------------------------------------------------
// PlayerBoard
// ---------------------------------------------------------------------------

// PlayerBoard holds one player's wall, staging rows, penalty track and score.
type PlayerBoard struct {
	Wall    Wall
	Pattern Wall // allowed color per cell; all TileEmpty in free-wall mode
	Rows    [NumRows]StagingRow
	Penalty []Tile
	Score   int

	Difficulty Difficulty
}

// NewPlayerBoard builds an empty board for the given difficulty.
func NewPlayerBoard(d Difficulty) PlayerBoard {
	b := PlayerBoard{Difficulty: d}
	for i := range b.Rows {
		b.Rows[i].Capacity = uint8(i + 1)
	}
	if d == DifficultyStandard {
		b.Pattern = standardPattern()
	}
	return b
}

// wallColumn returns the column where color would land in wall row row.
// Standard boards use the printed palette; free-wall boards take the leftmost
// empty cell whose column does not hold color yet.
func (b *PlayerBoard) wallColumn(w *Wall, row int, color Tile) (int, error) {
	if w.RowHas(row, color) {
		return 0, fmt.Errorf("%w: %s already in wall row %d", ErrInvariantViolation, color.Name(), row)
	}
	if b.Difficulty == DifficultyStandard {
		for c := 0; c < WallSize; c++ {
			if b.Pattern[row][c] == color && w[row][c] == TileEmpty {
				return c, nil
			}
		}
		return 0, fmt.Errorf("%w: no cell for %s in wall row %d", ErrInvariantViolation, color.Name(), row)
	}
	for c := 0; c < WallSize; c++ {
		if w[row][c] == TileEmpty && !w.ColumnHas(c, color) {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w: no free column for %s in wall row %d", ErrInvariantViolation, color.Name(), row)
}

// RowsAcceptingColor returns, in ascending order, the staging rows that can
// receive color:
//   - a row holding a different color is excluded;
//   - a row holding color with spare capacity is included;
//   - an empty row is included unless color is already in that wall row.
//
// On free-wall boards an empty row is also excluded when no wall cell in that
// row could ever take color.
func (b *PlayerBoard) RowsAcceptingColor(color Tile) []int {
	if !color.IsColor() {
		return nil
	}
	var rows []int
	for p := range b.Rows {
		row := b.Rows[p]
		switch {
		case !row.IsEmpty() && row.Color != color:
			continue
		case !row.IsEmpty():
			if row.Count < row.Capacity && !b.Wall.RowHas(p, color) {
				rows = append(rows, p)
			}
		default:
			if _, err := b.wallColumn(&b.Wall, p, color); err == nil {
				rows = append(rows, p)
			}
		}
	}
	return rows
}

// PlaceTiles puts n tiles of color into staging row row. It is the strict
// primitive: the whole amount must fit and the color may not be active in
// another row. A rejected call leaves the board unchanged.
func (b *PlayerBoard) PlaceTiles(row int, color Tile, n int) error {
	if row < 0 || row >= NumRows {
		return fmt.Errorf("%w: row %d out of range", ErrIllegalAction, row)
	}
	if !color.IsColor() {
		return fmt.Errorf("%w: %s is not a drawable color", ErrIllegalAction, color.Name())
	}
	if n < 1 {
		return fmt.Errorf("%w: must place at least one tile, got %d", ErrIllegalAction, n)
	}
	r := &b.Rows[row]
	if int(r.Count)+n > int(r.Capacity) {
		return fmt.Errorf("%w: row %d holds %d/%d, cannot add %d", ErrRowFull, row, r.Count, r.Capacity, n)
	}
	if !r.IsEmpty() && r.Color != color {
		return fmt.Errorf("%w: row %d holds %s", ErrColorConflict, row, r.Color.Name())
	}
	for p := range b.Rows {
		if p != row && !b.Rows[p].IsEmpty() && b.Rows[p].Color == color {
			return fmt.Errorf("%w: %s is active in row %d", ErrColorAlreadyStaged, color.Name(), p)
		}
	}
	if b.Wall.RowHas(row, color) {
		return fmt.Errorf("%w: %s in wall row %d", ErrColorAlreadyOnWall, color.Name(), row)
	}
	b.stage(row, color, n)
	return nil
}

// stage places as many of n tiles as fit into row and returns the overflow.
// Legality is the caller's concern; ApplyAction only calls it for rows taken
// from RowsAcceptingColor.
func (b *PlayerBoard) stage(row int, color Tile, n int) (placed, overflow int) {
	r := &b.Rows[row]
	placed = min(n, r.Free())
	if placed > 0 {
		r.Color = color
		r.Count += uint8(placed)
	}
	return placed, n - placed
}

// AddPenalty appends tiles to the penalty track.
func (b *PlayerBoard) AddPenalty(tile Tile, n int) {
	for i := 0; i < n; i++ {
		b.Penalty = append(b.Penalty, tile)
	}
}

// HasMarker reports whether the first-player marker is on this board's
// penalty track.
func (b *PlayerBoard) HasMarker() bool {
	for _, t := range b.Penalty {
		if t == TileFirstPlayer {
			return true
		}
	}
	return false
}

// clone returns a deep copy.
func (b *PlayerBoard) clone() PlayerBoard {
	c := *b
	c.Penalty = append([]Tile(nil), b.Penalty...)
	return c
}

// String renders the wall next to the staging rows, one line per row, then
// the penalty track and score.
func (b *PlayerBoard) String() string {
	var sb strings.Builder
	for r := 0; r < WallSize; r++ {
		for c := 0; c < WallSize; c++ {
			sb.WriteString(b.Wall[r][c].String())
		}
		sb.WriteByte(' ')
		row := b.Rows[r]
		sb.WriteString(strings.Repeat(".", row.Free()))
		sb.WriteString(strings.Repeat(row.Color.String(), int(row.Count)))
		sb.WriteByte('\n')
	}
	sb.WriteString("floor: ")
	for _, t := range b.Penalty {
		sb.WriteString(t.String())
	}
	fmt.Fprintf(&sb, "\nscore: %d\n", b.Score)
	return sb.String()
}
