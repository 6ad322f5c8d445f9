package engine

// placementScore returns the points for a tile just set at (row, col):
// 1 for the tile plus every contiguous neighbour to the left and right plus
// every contiguous neighbour above and below.
func placementScore(w *Wall, row, col int) int {
	score := 1
	for c := col - 1; c >= 0 && w[row][c] != TileEmpty; c-- {
		score++
	}
	for c := col + 1; c < WallSize && w[row][c] != TileEmpty; c++ {
		score++
	}
	for r := row - 1; r >= 0 && w[r][col] != TileEmpty; r-- {
		score++
	}
	for r := row + 1; r < WallSize && w[r][col] != TileEmpty; r++ {
		score++
	}
	return score
}

// TileWall moves every complete staging row onto the wall, top row first, and
// adds the placement points to Score. Incomplete rows are left alone.
//
// On free-wall boards a complete row whose color fits no remaining column is
// emptied onto the penalty track. On standard boards that situation breaks the
// board invariants: the board is left untouched and ErrInvariantViolation is
// returned.
func (b *PlayerBoard) TileWall() (int, error) {
	wall := b.Wall
	var placed, spilled [NumRows]bool
	gained := 0
	for p := range b.Rows {
		row := b.Rows[p]
		if row.IsEmpty() || !row.IsComplete() {
			continue
		}
		col, err := b.wallColumn(&wall, p, row.Color)
		if err != nil {
			if b.Difficulty != DifficultyFreeWall {
				return 0, err
			}
			spilled[p] = true
			continue
		}
		wall[p][col] = row.Color
		gained += placementScore(&wall, p, col)
		placed[p] = true
	}

	b.Wall = wall
	for p := range b.Rows {
		if !placed[p] && !spilled[p] {
			continue
		}
		if spilled[p] {
			b.AddPenalty(b.Rows[p].Color, int(b.Rows[p].Count))
		}
		b.Rows[p].Color = TileEmpty
		b.Rows[p].Count = 0
	}
	b.Score += gained
	return gained, nil
}

// penaltyFor sums the cost of n penalty tiles against costs. Slots past the
// end of the table cost the last entry.
func penaltyFor(costs []int, n int) int {
	if len(costs) == 0 {
		return 0
	}
	total := 0
	for i := 0; i < n; i++ {
		total += costs[min(i, len(costs)-1)]
	}
	return total
}

// ApplyPenalty charges the penalty track against costs, clamps the score at
// zero and clears the track. It returns the (non-positive) penalty charged.
// The marker occupies a slot like any other tile.
func (b *PlayerBoard) ApplyPenalty(costs []int) int {
	penalty := penaltyFor(costs, len(b.Penalty))
	b.Score = max(b.Score+penalty, 0)
	b.Penalty = nil
	return penalty
}

// EndGameBonus returns the bonus for complete rows, complete columns and
// colors placed five times.
func (b *PlayerBoard) EndGameBonus(r *HouseRules) int {
	bonus := 0
	for i := 0; i < WallSize; i++ {
		if b.Wall.RowComplete(i) {
			bonus += r.RowBonus
		}
		if b.Wall.ColumnComplete(i) {
			bonus += r.ColumnBonus
		}
	}
	for _, color := range Colors {
		if b.Wall.ColorCount(color) == WallSize {
			bonus += r.ColorBonus
		}
	}
	return bonus
}

// CompleteRows returns the number of filled wall rows.
func (b *PlayerBoard) CompleteRows() int {
	n := 0
	for i := 0; i < WallSize; i++ {
		if b.Wall.RowComplete(i) {
			n++
		}
	}
	return n
}
